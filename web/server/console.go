package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel,
// or to a sink function when one is set
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	sink        func(ConsoleMessage)
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// newRenderLogger creates a logger that writes straight into the server's
// console history
func (s *Server) newRenderLogger(renderID string) core.Logger {
	return &WebLogger{
		renderID: renderID,
		sink:     s.record,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.renderID, message)

	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}

	if wl.sink != nil {
		wl.sink(msg)
		return
	}
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- msg:
	default:
		// Channel full, skip (don't block the render)
	}
}

// record appends msg to the history, keeping the newest consoleHistory entries
func (s *Server) record(msg ConsoleMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, msg)
	if excess := len(s.recent) - consoleHistory; excess > 0 {
		s.recent = append([]ConsoleMessage(nil), s.recent[excess:]...)
	}
}

// consoleMessages returns the history, optionally limited to one render
func (s *Server) consoleMessages(renderID string) []ConsoleMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]ConsoleMessage, 0, len(s.recent))
	for _, msg := range s.recent {
		if renderID == "" || msg.RenderID == renderID {
			messages = append(messages, msg)
		}
	}
	return messages
}

// handleConsole returns recent render log lines. ?id= selects one render.
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	renderID := strings.TrimSpace(r.URL.Query().Get("id"))
	writeJSON(w, http.StatusOK, s.consoleMessages(renderID))
}
