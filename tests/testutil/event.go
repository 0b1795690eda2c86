package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRecorder is a shared.EventHandler that keeps every event it receives.
type EventRecorder struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewEventRecorder creates a recorder subscribed to eventTypes, or to every event when none are given.
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{eventTypes: eventTypes}
}

// EventTypes returns the event types this recorder subscribes to.
func (r *EventRecorder) EventTypes() []string {
	return r.eventTypes
}

// Handle records the event and returns the configured error.
func (r *EventRecorder) Handle(_ context.Context, event shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, event)
	return r.err
}

// Handled returns a copy of the recorded events.
func (r *EventRecorder) Handled() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shared.DomainEvent, len(r.handled))
	copy(out, r.handled)
	return out
}

// Count returns how many events of eventType were recorded. An empty type counts all.
func (r *EventRecorder) Count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if eventType == "" {
		return len(r.handled)
	}
	n := 0
	for _, e := range r.handled {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

// Synced returns the project synchronization events, in order.
func (r *EventRecorder) Synced() []*sale.ProjectSyncedEvent {
	var out []*sale.ProjectSyncedEvent
	for _, e := range r.Handled() {
		if synced, ok := e.(*sale.ProjectSyncedEvent); ok {
			out = append(out, synced)
		}
	}
	return out
}

// SetError makes Handle fail with err.
func (r *EventRecorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Reset clears the recorded events and the error.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = nil
	r.err = nil
}

// TestEvent is a bare domain event.
type TestEvent struct {
	shared.BaseDomainEvent
	Data string
}

// NewTestEvent creates an event of eventType owned by companyID.
func NewTestEvent(eventType string, companyID uuid.UUID) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), companyID),
		Data:            "test-data",
	}
}

// WaitForEventCount waits until at least count events of eventType were recorded.
func WaitForEventCount(t *testing.T, r *EventRecorder, eventType string, count int, timeout time.Duration) bool {
	t.Helper()
	return WaitForCondition(t, func() bool { return r.Count(eventType) >= count }, timeout, 10*time.Millisecond)
}
