package commbus

import (
	"context"
	"sync"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
)

// =============================================================================
// LOGGING MIDDLEWARE
// =============================================================================

// LoggingMiddleware logs every message that passes through the bus.
type LoggingMiddleware struct {
	logger applog.Logger
}

// NewLoggingMiddleware creates a LoggingMiddleware.
func NewLoggingMiddleware(logger applog.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = applog.Nop()
	}
	return &LoggingMiddleware{logger: logger.Bind("component", "commbus")}
}

func (m *LoggingMiddleware) Before(ctx context.Context, message Message) (Message, error) {
	m.logger.Debug("message_received",
		"message_type", GetMessageType(message),
		"category", message.Category())
	return message, nil
}

func (m *LoggingMiddleware) After(ctx context.Context, message Message, result any, err error) (any, error) {
	if err != nil {
		m.logger.Warn("message_failed",
			"message_type", GetMessageType(message),
			"error", err.Error())
		return result, nil
	}
	m.logger.Debug("message_handled", "message_type", GetMessageType(message))
	return result, nil
}

// =============================================================================
// COUNTING MIDDLEWARE
// =============================================================================

// CountingMiddleware keeps per-type message counts. Useful for health
// reporting and tests.
type CountingMiddleware struct {
	mu     sync.Mutex
	seen   map[string]int
	failed map[string]int
}

// NewCountingMiddleware creates a CountingMiddleware.
func NewCountingMiddleware() *CountingMiddleware {
	return &CountingMiddleware{
		seen:   make(map[string]int),
		failed: make(map[string]int),
	}
}

func (m *CountingMiddleware) Before(ctx context.Context, message Message) (Message, error) {
	m.mu.Lock()
	m.seen[GetMessageType(message)]++
	m.mu.Unlock()
	return message, nil
}

func (m *CountingMiddleware) After(ctx context.Context, message Message, result any, err error) (any, error) {
	if err != nil {
		m.mu.Lock()
		m.failed[GetMessageType(message)]++
		m.mu.Unlock()
	}
	return result, nil
}

// Seen returns how many messages of the given type passed through the bus.
func (m *CountingMiddleware) Seen(messageType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[messageType]
}

// Failed returns how many messages of the given type ended in a handler error.
func (m *CountingMiddleware) Failed(messageType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed[messageType]
}
