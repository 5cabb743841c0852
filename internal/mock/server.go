package mock

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/sjson"

	"runtui/sdk/runfeed"
)

// Server is a scripted backend for developing the TUI against. It replays a
// full run — status walk, plan, tool events and a streamed markdown answer
// whose document fence arrives split across many token frames — over the
// same SSE and websocket endpoints the real backend exposes.
type Server struct {
	port int
	log  *runfeed.Logger
}

// NewServer creates a demo server on the given port.
func NewServer(port int) *Server {
	return &Server{port: port, log: runfeed.GetLogger().With("component", "mock")}
}

// Start blocks serving the demo endpoints.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/runs", s.runsHandler)
	mux.HandleFunc("/runs/ws", s.wsHandler)
	mux.HandleFunc("/execute", s.acceptHandler)
	mux.HandleFunc("/runs/", s.acceptHandler) // /runs/{id}/cancel

	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("Demo backend listening on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// acceptHandler acknowledges fire-and-forget commands.
func (s *Server) acceptHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.log.Info("command accepted", "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
}

// frame is one scripted SSE/websocket frame.
type frame struct {
	event string
	data  string
	delay time.Duration
}

func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Run-Id", "demo-run-1")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	for _, f := range buildScript("demo-run-1") {
		time.Sleep(f.delay)
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", f.event, f.data)
		flusher.Flush()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// The first client message is the run request; its contents do not
	// matter to the script.
	if _, _, err := conn.ReadMessage(); err != nil {
		return
	}

	for _, f := range buildScript("demo-run-1") {
		time.Sleep(f.delay)
		envelope, _ := sjson.Set("{}", "event", f.event)
		envelope, _ = sjson.SetRaw(envelope, "data", f.data)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(envelope)); err != nil {
			return
		}
	}
	envelope, _ := sjson.Set("{}", "event", "done")
	_ = conn.WriteMessage(websocket.TextMessage, []byte(envelope))
}

// buildScript assembles the demo run. Payloads are built with sjson so the
// script reads as data, not as string concatenation.
func buildScript(runID string) []frame {
	now := time.Now().Unix()

	status := func(st string, extra map[string]string, delay time.Duration) frame {
		data, _ := sjson.Set("{}", "run_id", runID)
		data, _ = sjson.Set(data, "status", st)
		for k, v := range extra {
			data, _ = sjson.Set(data, k, v)
		}
		return frame{event: "status", data: data, delay: delay}
	}

	event := func(typ string, content map[string]any, delay time.Duration) frame {
		data, _ := sjson.Set("{}", "run_id", runID)
		data, _ = sjson.Set(data, "event.type", typ)
		data, _ = sjson.Set(data, "event.timestamp", now)
		now++
		for k, v := range content {
			data, _ = sjson.Set(data, "event.content."+k, v)
		}
		return frame{event: "event", data: data, delay: delay}
	}

	frames := []frame{
		status("starting", nil, 0),
		status("queued", nil, 400*time.Millisecond),
		status("planning", nil, 600*time.Millisecond),
		event("plan", map[string]any{
			"steps": []any{"Load the quarterly figures", "Summarize the findings", "Produce the report"},
		}, 500*time.Millisecond),
	}

	stepsData, _ := sjson.Set("{}", "run_id", runID)
	stepsData, _ = sjson.Set(stepsData, "steps.0.title", "Load the quarterly figures")
	stepsData, _ = sjson.Set(stepsData, "steps.1.title", "Summarize the findings")
	stepsData, _ = sjson.Set(stepsData, "steps.2.title", "Produce the report")
	frames = append(frames, frame{event: "steps", data: stepsData, delay: 100 * time.Millisecond})

	frames = append(frames,
		status("running", nil, 300*time.Millisecond),
		event("action", map[string]any{"tool": "load_data", "input": map[string]any{"source": "q4.xlsx"}}, 400*time.Millisecond),
		event("observation", map[string]any{"output": "1,204 rows loaded", "status": "ok"}, 700*time.Millisecond),
		event("action", map[string]any{"tool": "summarize", "input": map[string]any{"metric": "revenue"}}, 400*time.Millisecond),
		event("observation", map[string]any{"output": "revenue +12%, costs -3%", "status": "ok", "confidence": 0.9}, 700*time.Millisecond),
	)

	// The answer streams in small chunks. The document fence deliberately
	// carries raw newlines inside its content field to exercise the
	// client's recovery path.
	answer := "I analyzed the quarterly data.\n\n" +
		"```document\n" +
		"{\"type\":\"word\",\"title\":\"Q4 Summary\",\"content\":\"Revenue grew 12%.\nCosts fell 3%.\nHeadcount flat.\"}\n" +
		"```\n\n" +
		"You can reproduce the numbers yourself:\n\n" +
		"```python\nimport csv\n\nwith open(\"q4.csv\") as f:\n    rows = list(csv.reader(f))\nprint(len(rows))\n```\n\n" +
		"The report is attached above."

	for _, chunk := range chunked(answer, 9) {
		data, _ := sjson.Set("{}", "content", chunk)
		frames = append(frames, frame{event: "token", data: data, delay: 60 * time.Millisecond})
	}

	frames = append(frames,
		status("verifying", nil, 300*time.Millisecond),
		event("result", map[string]any{"output": "report generated", "status": "ok"}, 500*time.Millisecond),
		status("completed", map[string]string{"summary": "Q4 summary produced with one document artifact."}, 400*time.Millisecond),
		frame{event: "done", data: "{}", delay: 100 * time.Millisecond},
	)
	return frames
}

func chunked(s string, size int) []string {
	var out []string
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
