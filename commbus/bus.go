package commbus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
)

// InMemoryCommBus is the in-memory implementation of the bus protocols.
//
// Thread-safe message bus for single-process deployments.
//
// Features:
//   - Event fan-out to multiple subscribers
//   - Query request-response with timeout
//   - Command fire-and-forget
//   - Middleware chain for cross-cutting concerns
//
// Usage:
//
//	bus := commbus.NewInMemoryCommBus(logger, 5*time.Second)
//	unsub := bus.Subscribe("StageCompleted", feedHandler)
//	_ = bus.Publish(ctx, &commbus.StageCompleted{...})
type subscription struct {
	fn HandlerFunc
}

type InMemoryCommBus struct {
	handlers     map[string]HandlerFunc
	subscribers  map[string][]*subscription
	middleware   []Middleware
	queryTimeout time.Duration
	logger       applog.Logger
	mu           sync.RWMutex
}

// NewInMemoryCommBus creates a new InMemoryCommBus.
func NewInMemoryCommBus(logger applog.Logger, queryTimeout time.Duration) *InMemoryCommBus {
	if logger == nil {
		logger = applog.Nop()
	}
	return &InMemoryCommBus{
		handlers:     make(map[string]HandlerFunc),
		subscribers:  make(map[string][]*subscription),
		middleware:   make([]Middleware, 0),
		queryTimeout: queryTimeout,
		logger:       logger.Bind("component", "commbus"),
	}
}

// =============================================================================
// MESSAGING
// =============================================================================

// Publish publishes an event to all subscribers. Subscribers run
// concurrently; individual subscriber errors are logged but do not stop the
// others or fail the publish.
func (b *InMemoryCommBus) Publish(ctx context.Context, event Message) error {
	eventType := GetMessageType(event)

	processed, err := b.runMiddlewareBefore(ctx, event)
	if err != nil {
		return err
	}
	if processed == nil {
		b.logger.Debug("event_aborted_by_middleware", "event_type", eventType)
		return nil
	}

	b.mu.RLock()
	subscribers := make([]*subscription, len(b.subscribers[eventType]))
	copy(subscribers, b.subscribers[eventType])
	b.mu.RUnlock()

	if len(subscribers) == 0 {
		_, _ = b.runMiddlewareAfter(ctx, event, nil, nil)
		return nil
	}

	var wg sync.WaitGroup
	for i, sub := range subscribers {
		wg.Add(1)
		go func(idx int, h HandlerFunc) {
			defer wg.Done()
			if _, err := h(ctx, processed); err != nil {
				b.logger.Warn("subscriber_failed",
					"event_type", eventType, "subscriber", idx, "error", err.Error())
			}
		}(i, sub.fn)
	}
	wg.Wait()

	_, _ = b.runMiddlewareAfter(ctx, event, nil, nil)
	return nil
}

// Send dispatches a command to its single registered handler.
func (b *InMemoryCommBus) Send(ctx context.Context, command Message) error {
	commandType := GetMessageType(command)

	processed, err := b.runMiddlewareBefore(ctx, command)
	if err != nil {
		return err
	}
	if processed == nil {
		return nil
	}

	b.mu.RLock()
	handler, ok := b.handlers[commandType]
	b.mu.RUnlock()
	if !ok {
		return &NoHandlerError{MessageType: commandType}
	}

	_, err = handler(ctx, processed)
	_, _ = b.runMiddlewareAfter(ctx, command, nil, err)
	return err
}

// QuerySync sends a query and waits for its response, bounded by the bus
// query timeout.
func (b *InMemoryCommBus) QuerySync(ctx context.Context, query Query) (any, error) {
	queryType := GetMessageType(query)

	processed, err := b.runMiddlewareBefore(ctx, query)
	if err != nil {
		return nil, err
	}
	if processed == nil {
		return nil, fmt.Errorf("query %s aborted by middleware", queryType)
	}

	b.mu.RLock()
	handler, ok := b.handlers[queryType]
	b.mu.RUnlock()
	if !ok {
		return nil, &NoHandlerError{MessageType: queryType}
	}

	type queryResult struct {
		value any
		err   error
	}

	ctx, cancel := context.WithTimeout(ctx, b.queryTimeout)
	defer cancel()

	resultCh := make(chan queryResult, 1)
	go func() {
		value, err := handler(ctx, processed)
		resultCh <- queryResult{value: value, err: err}
	}()

	select {
	case res := <-resultCh:
		result, err := b.runMiddlewareAfter(ctx, query, res.value, res.err)
		if res.err != nil {
			return nil, res.err
		}
		return result, err
	case <-ctx.Done():
		return nil, &QueryTimeoutError{MessageType: queryType, Timeout: b.queryTimeout.Seconds()}
	}
}

// =============================================================================
// REGISTRATION
// =============================================================================

// Subscribe adds an event subscriber and returns an unsubscribe function.
func (b *InMemoryCommBus) Subscribe(eventType string, handler HandlerFunc) func() {
	sub := &subscription{fn: handler}
	b.mu.Lock()
	b.subscribers[eventType] = append(b.subscribers[eventType], sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs := b.subscribers[eventType]
			for i, s := range subs {
				if s == sub {
					b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// RegisterHandler registers the single handler for a command or query type.
func (b *InMemoryCommBus) RegisterHandler(messageType string, handler HandlerFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.handlers[messageType]; exists {
		return &HandlerAlreadyRegisteredError{MessageType: messageType}
	}
	b.handlers[messageType] = handler
	return nil
}

// AddMiddleware appends middleware to the chain.
func (b *InMemoryCommBus) AddMiddleware(middleware Middleware) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middleware = append(b.middleware, middleware)
}

// HasHandler reports whether a handler is registered for the message type.
func (b *InMemoryCommBus) HasHandler(messageType string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.handlers[messageType]
	return ok
}

// GetRegisteredTypes returns the registered handler types, sorted.
func (b *InMemoryCommBus) GetRegisteredTypes() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	types := make([]string, 0, len(b.handlers))
	for t := range b.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Clear removes all handlers, subscribers and middleware. Intended for tests.
func (b *InMemoryCommBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string]HandlerFunc)
	b.subscribers = make(map[string][]*subscription)
	b.middleware = make([]Middleware, 0)
}

// =============================================================================
// MIDDLEWARE CHAIN
// =============================================================================

func (b *InMemoryCommBus) runMiddlewareBefore(ctx context.Context, message Message) (Message, error) {
	b.mu.RLock()
	chain := make([]Middleware, len(b.middleware))
	copy(chain, b.middleware)
	b.mu.RUnlock()

	current := message
	for _, mw := range chain {
		next, err := mw.Before(ctx, current)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		current = next
	}
	return current, nil
}

func (b *InMemoryCommBus) runMiddlewareAfter(ctx context.Context, message Message, result any, err error) (any, error) {
	b.mu.RLock()
	chain := make([]Middleware, len(b.middleware))
	copy(chain, b.middleware)
	b.mu.RUnlock()

	current := result
	for i := len(chain) - 1; i >= 0; i-- {
		next, afterErr := chain[i].After(ctx, message, current, err)
		if afterErr != nil {
			return current, afterErr
		}
		current = next
	}
	return current, nil
}
