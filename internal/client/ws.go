package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"runtui/internal/messages"
)

// streamRunWS starts a run over the websocket endpoint. The backend sends the
// same frames the SSE stream carries, wrapped in a {event, data} envelope.
func (c *Client) streamRunWS(ctx context.Context, runReq RunRequest, p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		wsURL, err := websocketURL(c.baseURL)
		if err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("bad backend url: %v", err)})
			return messages.StreamEndMsg{}
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("websocket dial failed: %v", err)})
			return messages.StreamEndMsg{}
		}
		defer conn.Close()

		if err := conn.WriteJSON(runReq); err != nil {
			p.Send(messages.ErrorMsg{Message: fmt.Sprintf("failed to send run request: %v", err)})
			return messages.StreamEndMsg{}
		}

		p.Send(messages.StreamStartMsg{})

		// Close the connection when the context is cancelled so the read
		// loop below unblocks.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()

		for {
			var frame wsFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return messages.StreamEndMsg{}
				}
				p.Send(messages.ErrorMsg{Message: fmt.Sprintf("stream error: %v", err)})
				return messages.StreamEndMsg{}
			}
			if frame.Event == "done" {
				return messages.StreamEndMsg{}
			}
			if msg := c.routeFrame(frame.Event, frame.Data); msg != nil {
				p.Send(msg)
			}
		}
	}
}

func websocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/runs/ws"
	return u.String(), nil
}
