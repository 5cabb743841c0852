package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"runtui/internal/messages"
)

func TestCommands(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = nil
		if r.Method != http.MethodPost && r.URL.Path != "/health" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, TransportSSE)
	ctx := context.Background()

	t.Run("cancel", func(t *testing.T) {
		if err := c.Cancel(ctx, "run-9"); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if gotPath != "/runs/run-9/cancel" {
			t.Errorf("path = %q", gotPath)
		}
	})

	t.Run("retry carries original message", func(t *testing.T) {
		if err := c.Retry(ctx, "run-9", "original prompt"); err != nil {
			t.Fatalf("Retry() error = %v", err)
		}
		if gotPath != "/runs" {
			t.Errorf("path = %q", gotPath)
		}
		if gotBody["message"] != "original prompt" {
			t.Errorf("body = %v", gotBody)
		}
		if gotBody["retry_of_run"] != "run-9" {
			t.Errorf("retry_of_run = %v", gotBody["retry_of_run"])
		}
	})

	t.Run("execute sends code verbatim", func(t *testing.T) {
		code := "print('hi')\n# raw\ttext"
		if err := c.Execute(ctx, "run-9", code); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if gotPath != "/execute" {
			t.Errorf("path = %q", gotPath)
		}
		if gotBody["code"] != code {
			t.Errorf("code altered in transit: %v", gotBody["code"])
		}
	})

	t.Run("health", func(t *testing.T) {
		if err := c.HealthCheck(ctx); err != nil {
			t.Fatalf("HealthCheck() error = %v", err)
		}
	})
}

func TestCommandErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL, TransportSSE)
	if err := c.Cancel(context.Background(), "run-1"); err == nil {
		t.Errorf("Cancel() accepted a 409")
	}
}

func TestRouteFrame(t *testing.T) {
	c := New("http://localhost", TransportSSE)

	tests := []struct {
		name  string
		event string
		data  string
		check func(t *testing.T, msg interface{})
	}{
		{
			name:  "status",
			event: "status",
			data:  `{"run_id":"r1","status":"running"}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(messages.StatusMsg)
				if !ok || m.RunID != "r1" || m.Status != "running" {
					t.Errorf("msg = %#v", msg)
				}
			},
		},
		{
			name:  "event",
			event: "event",
			data:  `{"run_id":"r1","event":{"type":"action","content":{"tool":"read"},"timestamp":7}}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(messages.EventMsg)
				if !ok || m.Event.Type != "action" || m.Event.Timestamp != 7 {
					t.Errorf("msg = %#v", msg)
				}
			},
		},
		{
			name:  "token",
			event: "token",
			data:  `{"content":"hel"}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(messages.TokenMsg)
				if !ok || m.Content != "hel" {
					t.Errorf("msg = %#v", msg)
				}
			},
		},
		{
			name:  "error",
			event: "error",
			data:  `{"message":"boom"}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(messages.ErrorMsg)
				if !ok || m.Message != "boom" {
					t.Errorf("msg = %#v", msg)
				}
			},
		},
		{
			name:  "unknown frame dropped",
			event: "heartbeat",
			data:  `{}`,
			check: func(t *testing.T, msg interface{}) {
				if msg != nil {
					t.Errorf("msg = %#v, want nil", msg)
				}
			},
		},
		{
			name:  "malformed status dropped",
			event: "status",
			data:  `{"run_id":`,
			check: func(t *testing.T, msg interface{}) {
				if msg != nil {
					t.Errorf("msg = %#v, want nil", msg)
				}
			},
		},
		{
			name:  "malformed token dropped",
			event: "token",
			data:  `{"content":`,
			check: func(t *testing.T, msg interface{}) {
				if msg != nil {
					t.Errorf("msg = %#v, want nil", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, c.routeFrame(tt.event, []byte(tt.data)))
		})
	}
}
