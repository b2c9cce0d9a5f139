// Package notify is the diagnostic channel for the doctags pipeline.
//
// Every user-visible condition (unreadable file, duplicate tag, completed
// write) flows through a Notifier rather than being returned up the call
// stack, so a single failing file never aborts its siblings. The default
// Logger writes to the standard logger on stderr; stdout is reserved for
// the MCP transport.
package notify

import (
	"log"
	"sync"
)

// Severity classifies a diagnostic message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the severity label used in log output.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Notifier is the sink for user-visible diagnostics.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Logger emits diagnostics through the standard logger.
type Logger struct{}

func (Logger) Notify(message string, severity Severity) {
	log.Printf("[%s] %s", severity, message)
}

// Discard drops all diagnostics.
type Discard struct{}

func (Discard) Notify(string, Severity) {}

// Message is one captured diagnostic.
type Message struct {
	Text     string
	Severity Severity
}

// Capture records diagnostics for inspection in tests. Safe for
// concurrent use.
type Capture struct {
	mu       sync.Mutex
	messages []Message
}

func (c *Capture) Notify(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Text: message, Severity: severity})
}

// All returns a copy of the captured messages in arrival order.
func (c *Capture) All() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// BySeverity returns the captured messages matching the given severity.
func (c *Capture) BySeverity(severity Severity) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Message
	for _, m := range c.messages {
		if m.Severity == severity {
			out = append(out, m)
		}
	}
	return out
}
