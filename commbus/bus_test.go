package commbus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
)

func newTestBus() *InMemoryCommBus {
	return NewInMemoryCommBus(applog.Nop(), 100*time.Millisecond)
}

// =============================================================================
// PUBLISH / SUBSCRIBE
// =============================================================================

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	bus := newTestBus()

	var calls int32
	handler := func(ctx context.Context, m Message) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}
	bus.Subscribe(TypeName[*RunStarted](), handler)
	bus.Subscribe(TypeName[*RunStarted](), handler)
	bus.Subscribe(TypeName[*RunStarted](), handler)

	err := bus.Publish(context.Background(), &RunStarted{RunID: "run_1", ClaimID: "AC-2025-00124"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublishWithNoSubscribersIsNoOp(t *testing.T) {
	bus := newTestBus()
	assert.NoError(t, bus.Publish(context.Background(), &RunStarted{RunID: "run_1"}))
}

func TestSubscriberErrorDoesNotStopOthers(t *testing.T) {
	bus := newTestBus()

	var ok int32
	bus.Subscribe(TypeName[*StageStarted](), func(ctx context.Context, m Message) (any, error) {
		return nil, errors.New("boom")
	})
	bus.Subscribe(TypeName[*StageStarted](), func(ctx context.Context, m Message) (any, error) {
		atomic.AddInt32(&ok, 1)
		return nil, nil
	})

	require.NoError(t, bus.Publish(context.Background(), &StageStarted{RunID: "run_1"}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&ok))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := newTestBus()

	var calls int32
	unsub := bus.Subscribe(TypeName[*RunCompleted](), func(ctx context.Context, m Message) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})

	require.NoError(t, bus.Publish(context.Background(), &RunCompleted{RunID: "run_1"}))
	unsub()
	unsub() // second call is a no-op
	require.NoError(t, bus.Publish(context.Background(), &RunCompleted{RunID: "run_2"}))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestUnsubscribeOutOfOrder(t *testing.T) {
	bus := newTestBus()

	var mu sync.Mutex
	seen := map[string]int{}
	sub := func(name string) func() {
		return bus.Subscribe(TypeName[*RunStarted](), func(ctx context.Context, m Message) (any, error) {
			mu.Lock()
			seen[name]++
			mu.Unlock()
			return nil, nil
		})
	}
	unsubA := sub("a")
	_ = sub("b")
	unsubC := sub("c")

	unsubA()
	unsubC()
	require.NoError(t, bus.Publish(context.Background(), &RunStarted{RunID: "run_1"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]int{"b": 1}, seen)
}

// =============================================================================
// COMMANDS AND QUERIES
// =============================================================================

func TestSendRequiresHandler(t *testing.T) {
	bus := newTestBus()
	err := bus.Send(context.Background(), &ClaimRemoved{ClaimID: "AC-2025-00124"})

	var noHandler *NoHandlerError
	require.ErrorAs(t, err, &noHandler)
	assert.Equal(t, "ClaimRemoved", noHandler.MessageType)
}

func TestRegisterHandlerRejectsDuplicate(t *testing.T) {
	bus := newTestBus()
	handler := func(ctx context.Context, m Message) (any, error) { return nil, nil }

	require.NoError(t, bus.RegisterHandler(TypeName[*GetClaim](), handler))
	err := bus.RegisterHandler(TypeName[*GetClaim](), handler)

	var dup *HandlerAlreadyRegisteredError
	assert.ErrorAs(t, err, &dup)
}

func TestQuerySyncReturnsHandlerResult(t *testing.T) {
	bus := newTestBus()
	require.NoError(t, bus.RegisterHandler(TypeName[*GetClaim](),
		func(ctx context.Context, m Message) (any, error) {
			q := m.(*GetClaim)
			return "claim:" + q.ClaimID, nil
		}))

	result, err := bus.QuerySync(context.Background(), &GetClaim{ClaimID: "AC-2025-00124"})
	require.NoError(t, err)
	assert.Equal(t, "claim:AC-2025-00124", result)
}

func TestQuerySyncTimesOut(t *testing.T) {
	bus := newTestBus()
	require.NoError(t, bus.RegisterHandler(TypeName[*GetRunSnapshot](),
		func(ctx context.Context, m Message) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}))

	_, err := bus.QuerySync(context.Background(), &GetRunSnapshot{})

	var timeout *QueryTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "GetRunSnapshot", timeout.MessageType)
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

// abortingMiddleware drops every message whose type matches.
type abortingMiddleware struct {
	dropType string
}

func (m *abortingMiddleware) Before(ctx context.Context, message Message) (Message, error) {
	if GetMessageType(message) == m.dropType {
		return nil, nil
	}
	return message, nil
}

func (m *abortingMiddleware) After(ctx context.Context, message Message, result any, err error) (any, error) {
	return result, nil
}

func TestMiddlewareCanAbortMessage(t *testing.T) {
	bus := newTestBus()
	bus.AddMiddleware(&abortingMiddleware{dropType: "RunStarted"})

	var calls int32
	bus.Subscribe(TypeName[*RunStarted](), func(ctx context.Context, m Message) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})

	require.NoError(t, bus.Publish(context.Background(), &RunStarted{RunID: "run_1"}))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCountingMiddleware(t *testing.T) {
	bus := newTestBus()
	counter := NewCountingMiddleware()
	bus.AddMiddleware(counter)
	bus.AddMiddleware(NewLoggingMiddleware(applog.Nop()))

	require.NoError(t, bus.Publish(context.Background(), &RunStarted{RunID: "run_1"}))
	require.NoError(t, bus.Publish(context.Background(), &RunStarted{RunID: "run_2"}))

	assert.Equal(t, 2, counter.Seen("RunStarted"))
	assert.Zero(t, counter.Failed("RunStarted"))
}

// =============================================================================
// INTROSPECTION
// =============================================================================

func TestRegisteredTypesAndClear(t *testing.T) {
	bus := newTestBus()
	handler := func(ctx context.Context, m Message) (any, error) { return nil, nil }
	require.NoError(t, bus.RegisterHandler("GetClaim", handler))
	require.NoError(t, bus.RegisterHandler("GetRunSnapshot", handler))

	assert.Equal(t, []string{"GetClaim", "GetRunSnapshot"}, bus.GetRegisteredTypes())
	assert.True(t, bus.HasHandler("GetClaim"))

	bus.Clear()
	assert.Empty(t, bus.GetRegisteredTypes())
	assert.False(t, bus.HasHandler("GetClaim"))
}

func TestGetMessageType(t *testing.T) {
	assert.Equal(t, "StageCompleted", GetMessageType(&StageCompleted{}))
	assert.Equal(t, "StageCompleted", TypeName[*StageCompleted]())
}
