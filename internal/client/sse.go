package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"runtui/internal/messages"
)

// streamRunSSE starts a run over POST and consumes the SSE frame stream,
// delivering each frame to the program as it arrives.
func (c *Client) streamRunSSE(ctx context.Context, runReq RunRequest, p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		body, err := json.Marshal(runReq)
		if err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("failed to marshal request: %v", err)})
			return messages.StreamEndMsg{}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/runs", bytes.NewReader(body))
		if err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("failed to create request: %v", err)})
			return messages.StreamEndMsg{}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")
		req.Header.Set("Cache-Control", "no-cache")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("request failed: %v", err)})
			return messages.StreamEndMsg{}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("server returned status %d", resp.StatusCode)})
			return messages.StreamEndMsg{}
		}

		p.Send(messages.StreamStartMsg{RunID: resp.Header.Get("X-Run-Id")})

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		var currentEvent string
		var dataBuffer strings.Builder
		for scanner.Scan() {
			line := scanner.Text()

			select {
			case <-ctx.Done():
				return messages.StreamEndMsg{}
			default:
			}

			switch {
			case strings.HasPrefix(line, "event:"):
				currentEvent = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				dataBuffer.WriteString(strings.TrimPrefix(line, "data:"))
			case line == "" && currentEvent != "":
				if msg := c.routeFrame(currentEvent, []byte(strings.TrimSpace(dataBuffer.String()))); msg != nil {
					p.Send(msg)
				}
				currentEvent = ""
				dataBuffer.Reset()
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("stream error: %v", err)})
		}
		return messages.StreamEndMsg{}
	}
}
