package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventHandler is a mock implementation of shared.EventHandler
type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventHandler) EventTypes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) SaveResult(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, payload, ttl)
	return args.Error(0)
}

func (m *MockIdempotencyStore) GetResult(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newMemoryStore(t *testing.T) *cache.InMemoryIdempotencyStore {
	t.Helper()
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestIdempotentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("redelivery is skipped", func(t *testing.T) {
		inner := new(MockEventHandler)
		event := newSyncedEvent(t)
		inner.On("Handle", mock.Anything, event).Return(nil).Once()

		h := NewIdempotentHandler(inner, newMemoryStore(t), nil)

		for i := 0; i < 3; i++ {
			require.NoError(t, h.Handle(ctx, event))
		}

		inner.AssertExpectations(t)
		assert.Equal(t, IdempotencyStats{EventsProcessed: 1, EventsDuplicate: 2}, h.Metrics().Stats())
	})

	t.Run("handler failure is returned and the key kept", func(t *testing.T) {
		inner := new(MockEventHandler)
		event := newSyncedEvent(t)
		handlerErr := errors.New("metrics backend down")
		inner.On("Handle", mock.Anything, event).Return(handlerErr).Once()
		store := newMemoryStore(t)

		h := NewIdempotentHandler(inner, store, nil)

		assert.ErrorIs(t, h.Handle(ctx, event), handlerErr)
		assert.NoError(t, h.Handle(ctx, event))

		processed, err := store.IsProcessed(ctx, h.Key(event))
		require.NoError(t, err)
		assert.True(t, processed)
		assert.Equal(t, int64(1), h.Metrics().EventsFailed.Load())
		inner.AssertExpectations(t)
	})

	t.Run("store failure still delivers", func(t *testing.T) {
		inner := new(MockEventHandler)
		store := new(MockIdempotencyStore)
		event := newSyncedEvent(t)
		h := NewIdempotentHandler(inner, store, nil)

		store.On("MarkProcessed", mock.Anything, h.Key(event), 24*time.Hour).Return(false, errors.New("redis timeout"))
		inner.On("Handle", mock.Anything, event).Return(nil)

		require.NoError(t, h.Handle(ctx, event))
		store.AssertExpectations(t)
		inner.AssertExpectations(t)
	})

	t.Run("disabled passes every delivery through", func(t *testing.T) {
		inner := new(MockEventHandler)
		store := new(MockIdempotencyStore)
		event := newSyncedEvent(t)
		inner.On("Handle", mock.Anything, event).Return(nil).Times(2)

		h := NewIdempotentHandler(inner, store, nil,
			WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: false}))

		require.NoError(t, h.Handle(ctx, event))
		require.NoError(t, h.Handle(ctx, event))

		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, IdempotencyStats{}, h.Metrics().Stats())
	})
}

func TestIdempotentHandler_KeysAreScopedPerHandler(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	counters := &IdempotencyMetrics{}
	event := newSyncedEvent(t)

	first := new(MockEventHandler)
	second := new(MockEventHandler)
	first.On("Handle", mock.Anything, event).Return(nil).Once()
	second.On("Handle", mock.Anything, event).Return(nil).Once()

	a := NewIdempotentHandler(first, store, nil, WithHandlerName("metrics"), WithIdempotencyMetrics(counters))
	b := NewIdempotentHandler(second, store, nil, WithHandlerName("audit"), WithIdempotencyMetrics(counters))

	require.NoError(t, a.Handle(ctx, event))
	require.NoError(t, b.Handle(ctx, event))

	assert.NotEqual(t, a.Key(event), b.Key(event))
	assert.Equal(t, int64(2), counters.EventsProcessed.Load())
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestIdempotentHandler_EventTypesAndUnwrap(t *testing.T) {
	inner := new(MockEventHandler)
	inner.On("EventTypes").Return([]string{sale.EventTypeProjectCreatedFromSale})

	h := NewIdempotentHandler(inner, newMemoryStore(t), nil)

	assert.Equal(t, []string{sale.EventTypeProjectCreatedFromSale}, h.EventTypes())
	assert.Same(t, inner, h.Unwrap())
	assert.Contains(t, h.Key(newSyncedEvent(t)), "MockEventHandler")
}

func TestIdempotentHandler_ConcurrentRedelivery(t *testing.T) {
	inner := new(MockEventHandler)
	event := newLoadedEvent(t)
	inner.On("Handle", mock.Anything, event).Return(nil).Once()

	h := NewIdempotentHandler(inner, newMemoryStore(t), nil)

	const deliveries = 50
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Handle(context.Background(), event))
		}()
	}
	wg.Wait()

	inner.AssertExpectations(t)
	assert.Equal(t, int64(1), h.Metrics().EventsProcessed.Load())
	assert.Equal(t, int64(deliveries-1), h.Metrics().EventsDuplicate.Load())
}
