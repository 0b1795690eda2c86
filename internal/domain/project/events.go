package project

import (
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeWork = "Work"

// Event type constants
const (
	EventTypeProjectCreated = "ProjectCreated"
)

// ProjectCreatedEvent is raised when a new project root is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID  `json:"project_id"`
	Name      string     `json:"name"`
	PartyID   *uuid.UUID `json:"party_id,omitempty"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(w *Work) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeWork, w.ID, w.CompanyID),
		ProjectID:       w.ID,
		Name:            w.Name,
		PartyID:         w.PartyID,
	}
}

// EventType returns the event type name
func (e *ProjectCreatedEvent) EventType() string {
	return EventTypeProjectCreated
}
