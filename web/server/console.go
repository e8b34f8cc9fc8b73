package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// DefaultConsoleSize is the number of messages kept by NewServer
const DefaultConsoleSize = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// ConsoleLog keeps the most recent console messages in a ring
type ConsoleLog struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
}

// NewConsoleLog creates a log holding at most size messages
func NewConsoleLog(size int) *ConsoleLog {
	if size < 1 {
		size = 1
	}
	return &ConsoleLog{messages: make([]ConsoleMessage, size)}
}

// Append records msg, overwriting the oldest message when full
func (c *ConsoleLog) Append(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages[c.next] = msg
	c.next = (c.next + 1) % len(c.messages)
	if c.next == 0 {
		c.full = true
	}
}

// Messages returns the retained messages, oldest first
func (c *ConsoleLog) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.full {
		return append([]ConsoleMessage{}, c.messages[:c.next]...)
	}
	out := make([]ConsoleMessage, 0, len(c.messages))
	out = append(out, c.messages[c.next:]...)
	return append(out, c.messages[:c.next]...)
}

// WebLogger implements renderer.Logger by writing to the server log and
// the console
type WebLogger struct {
	renderID string
	console  *ConsoleLog
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, console *ConsoleLog) *WebLogger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
	}
}

// Printf implements renderer.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, message)

	if wl.console != nil {
		wl.console.Append(ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}

// handleConsole returns the retained console messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}
