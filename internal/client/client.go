package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"runtui/internal/messages"
	"runtui/sdk/runfeed"
)

// Transport selects how run frames are delivered.
type Transport string

const (
	TransportSSE Transport = "sse"
	TransportWS  Transport = "ws"
)

// Client talks to the agent backend: it opens run streams and issues
// fire-and-forget commands. It never mutates run state itself; the UI only
// changes when the backend pushes frames back.
type Client struct {
	baseURL    string
	transport  Transport
	httpClient *http.Client
	log        *runfeed.Logger
}

// New creates a client for the given backend URL.
func New(baseURL string, transport Transport) *Client {
	return &Client{
		baseURL:    baseURL,
		transport:  transport,
		httpClient: &http.Client{},
		log:        runfeed.GetLogger().With("component", "client"),
	}
}

// StreamRun starts a run and streams its frames into the program via p.Send,
// using the configured transport.
func (c *Client) StreamRun(ctx context.Context, req RunRequest, p *tea.Program) tea.Cmd {
	if c.transport == TransportWS {
		return c.streamRunWS(ctx, req, p)
	}
	return c.streamRunSSE(ctx, req, p)
}

// routeFrame decodes one streamed frame into its UI message. Unknown frame
// names are dropped with a debug log rather than breaking the stream.
func (c *Client) routeFrame(event string, data []byte) tea.Msg {
	switch event {
	case "status":
		var f statusFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Warn("bad status frame", "error", err)
			return nil
		}
		return messages.StatusMsg{RunID: f.RunID, Status: f.Status, Summary: f.Summary, Error: f.Error}

	case "steps":
		var f stepsFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Warn("bad steps frame", "error", err)
			return nil
		}
		return messages.StepsMsg{RunID: f.RunID, Steps: f.Steps}

	case "event":
		var f eventFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Warn("bad event frame", "error", err)
			return nil
		}
		return messages.EventMsg{RunID: f.RunID, Event: f.Event}

	case "token":
		var f tokenFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Warn("bad token frame", "error", err)
			return nil
		}
		return messages.TokenMsg{Content: f.Content}

	case "error":
		var f errorFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return messages.ErrorMsg{Message: string(data)}
		}
		return messages.ErrorMsg{Message: f.Message}

	case "done":
		return messages.StreamEndMsg{}
	}

	c.log.Debug("dropping unknown frame", "event", event)
	return nil
}

// Cancel asks the backend to cancel a run. Fire and forget: success means the
// request was accepted, not that the run stopped; the stream will push
// cancelling/cancelled statuses if it does.
func (c *Client) Cancel(ctx context.Context, runID string) error {
	return c.postCommand(ctx, fmt.Sprintf("/runs/%s/cancel", runID), nil)
}

// Retry asks the backend to re-run the original user message as a fresh run.
func (c *Client) Retry(ctx context.Context, runID, userMessage string) error {
	return c.postCommand(ctx, "/runs", RunRequest{Message: userMessage, RetryOfRun: &runID})
}

// Execute hands a python segment verbatim to the sandbox collaborator.
// Results come back through the event stream.
func (c *Client) Execute(ctx context.Context, runID, code string) error {
	body := map[string]string{"run_id": runID, "code": code}
	return c.postCommand(ctx, "/execute", body)
}

// CancelCmd wraps Cancel as a command. Failures surface as a transport error
// message; success produces nothing, the stream speaks next.
func (c *Client) CancelCmd(runID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Cancel(ctx, runID); err != nil {
			return messages.ErrorMsg{Message: fmt.Sprintf("cancel failed: %v", err)}
		}
		return nil
	}
}

// ExecuteCmd wraps Execute as a command.
func (c *Client) ExecuteCmd(runID, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Execute(ctx, runID, code); err != nil {
			return messages.ErrorMsg{Message: fmt.Sprintf("execute failed: %v", err)}
		}
		return nil
	}
}

func (c *Client) postCommand(ctx context.Context, path string, payload any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("encoding command: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending command: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("command %s returned status %d", path, resp.StatusCode)
	}
	c.log.Debug("command accepted", "path", path)
	return nil
}

// HealthCheck checks if the backend is available.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}
