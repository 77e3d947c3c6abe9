// Package commbus provides the in-process communication bus for the claims
// review engine.
//
// Components depend on these protocols, not on the implementation. Three
// messaging patterns are provided:
//   - Publish(event): fire-and-forget, fan-out to all subscribers
//   - Send(command): fire-and-forget, single handler
//   - QuerySync(query): request-response, single handler
package commbus

import (
	"context"
	"fmt"
	"reflect"
)

// Message is the protocol for all bus messages. Every message (event, query,
// command) declares its category.
type Message interface {
	// Category returns "event", "query", or "command".
	Category() string
}

// Query is the protocol for messages that expect a response.
type Query interface {
	Message
	// IsQuery is a marker method distinguishing queries from other messages.
	IsQuery()
}

// Handler processes messages and optionally returns responses (for queries).
type Handler interface {
	Handle(ctx context.Context, message Message) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, message Message) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, message Message) (any, error) {
	return f(ctx, message)
}

// Middleware intercepts messages around handling. Used for logging and
// telemetry.
type Middleware interface {
	// Before is called before a message is handled. Returning a nil
	// message aborts processing.
	Before(ctx context.Context, message Message) (Message, error)

	// After is called after a message is handled and may replace the result.
	After(ctx context.Context, message Message, result any, err error) (any, error)
}

// GetMessageType returns the routing key for a message: its concrete type
// name without the package prefix.
func GetMessageType(m Message) string {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// TypeName returns the routing key for a message type, for subscribing
// without an instance.
func TypeName[T Message]() string {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// =============================================================================
// ERRORS
// =============================================================================

// NoHandlerError is returned when no handler is registered for a message type.
type NoHandlerError struct {
	MessageType string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler registered for %s", e.MessageType)
}

// HandlerAlreadyRegisteredError is returned on duplicate handler registration.
type HandlerAlreadyRegisteredError struct {
	MessageType string
}

func (e *HandlerAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("handler already registered for %s", e.MessageType)
}

// QueryTimeoutError is returned when a query handler does not respond in time.
type QueryTimeoutError struct {
	MessageType string
	Timeout     float64 // seconds
}

func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("query %s timed out after %.2fs", e.MessageType, e.Timeout)
}
