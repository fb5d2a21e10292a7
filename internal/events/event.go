package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	GenerationStart = "events:generation:start"
	GenerationDone  = "events:generation:done"
	Regeneration    = "events:generation:retry"
	Evaluation      = "events:evaluation:result"
)

// Event is a simple struct representing a backend event payload
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "negar/events/session"

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateEvent(eventType EventType, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info Event.
func NewInfo(message string) Event {
	return CreateEvent(EventInfo, message)
}

// NewWarn creates a warn Event.
func NewWarn(message string) Event {
	return CreateEvent(EventWarn, message)
}

// NewError creates an error Event.
func NewError(message string) Event {
	return CreateEvent(EventError, message)
}

// NewSuccess creates a success Event.
func NewSuccess(message string) Event {
	return CreateEvent(EventSuccess, message)
}
