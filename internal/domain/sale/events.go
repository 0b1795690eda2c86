package sale

import (
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCreated                = "SaleCreated"
	EventTypeSaleQuoted                 = "SaleQuoted"
	EventTypeSaleConfirmed              = "SaleConfirmed"
	EventTypeSaleProcessed              = "SaleProcessed"
	EventTypeSaleDone                   = "SaleDone"
	EventTypeSaleCancelled              = "SaleCancelled"
	EventTypeSaleResetToDraft           = "SaleResetToDraft"
	EventTypeSalePartyChanged           = "SalePartyChanged"
	EventTypeProjectCreatedFromSale     = "ProjectCreatedFromSale"
	EventTypeSaleLinesLoadedFromProject = "SaleLinesLoadedFromProject"
)

// SaleCreatedEvent is raised when a new sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID    uuid.UUID `json:"sale_id"`
	Number    string    `json:"number"`
	PartyID   uuid.UUID `json:"party_id"`
	PartyName string    `json:"party_name"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, s.ID, s.CompanyID),
		SaleID:          s.ID,
		Number:          s.Number,
		PartyID:         s.PartyID,
		PartyName:       s.PartyName,
	}
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return EventTypeSaleCreated
}

// SaleStateChangedEvent is raised by every state transition; Type tells which one
type SaleStateChangedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID  `json:"sale_id"`
	Number        string     `json:"number"`
	FromState     State      `json:"from_state"`
	ToState       State      `json:"to_state"`
	WorkID        *uuid.UUID `json:"work_id,omitempty"`
	CreateProject bool       `json:"create_project"`
}

// NewSaleStateChangedEvent creates a state change event of the given type
func NewSaleStateChangedEvent(s *Sale, eventType string, from State) *SaleStateChangedEvent {
	return &SaleStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSale, s.ID, s.CompanyID),
		SaleID:          s.ID,
		Number:          s.Number,
		FromState:       from,
		ToState:         s.State,
		WorkID:          s.WorkID,
		CreateProject:   s.CreateProject,
	}
}

// SalePartyChangedEvent is raised by the change party wizard
type SalePartyChangedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	OldPartyID uuid.UUID `json:"old_party_id"`
	NewPartyID uuid.UUID `json:"new_party_id"`
}

// NewSalePartyChangedEvent creates a new SalePartyChangedEvent
func NewSalePartyChangedEvent(s *Sale, oldParty uuid.UUID) *SalePartyChangedEvent {
	return &SalePartyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalePartyChanged, AggregateTypeSale, s.ID, s.CompanyID),
		SaleID:          s.ID,
		OldPartyID:      oldParty,
		NewPartyID:      s.PartyID,
	}
}

// EventType returns the event type name
func (e *SalePartyChangedEvent) EventType() string {
	return EventTypeSalePartyChanged
}

// ProjectSyncedEvent is raised after a sale and its project tree were synchronized,
// in either direction
type ProjectSyncedEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID `json:"sale_id"`
	ProjectID    uuid.UUID `json:"project_id"`
	TasksCreated int       `json:"tasks_created"`
	TasksUpdated int       `json:"tasks_updated"`
	LinesCreated int       `json:"lines_created"`
}

// NewProjectCreatedFromSaleEvent reports a sale to project synchronization
func NewProjectCreatedFromSaleEvent(s *Sale, projectID uuid.UUID, created, updated int) *ProjectSyncedEvent {
	return &ProjectSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreatedFromSale, AggregateTypeSale, s.ID, s.CompanyID),
		SaleID:          s.ID,
		ProjectID:       projectID,
		TasksCreated:    created,
		TasksUpdated:    updated,
	}
}

// NewSaleLinesLoadedFromProjectEvent reports a project to sale synchronization
func NewSaleLinesLoadedFromProjectEvent(s *Sale, projectID uuid.UUID, lines int) *ProjectSyncedEvent {
	return &ProjectSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleLinesLoadedFromProject, AggregateTypeSale, s.ID, s.CompanyID),
		SaleID:          s.ID,
		ProjectID:       projectID,
		LinesCreated:    lines,
	}
}
