package sale

import (
	"fmt"
	"sort"
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State represents the state of a sale
type State string

const (
	StateDraft      State = "draft"
	StateQuotation  State = "quotation"
	StateConfirmed  State = "confirmed"
	StateProcessing State = "processing"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"
)

// IsValid checks if the state is known
func (s State) IsValid() bool {
	switch s {
	case StateDraft, StateQuotation, StateConfirmed, StateProcessing, StateDone, StateCancelled:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateDraft:
		return target == StateQuotation || target == StateCancelled
	case StateQuotation:
		return target == StateConfirmed || target == StateDraft || target == StateCancelled
	case StateConfirmed:
		return target == StateProcessing || target == StateDraft
	case StateProcessing:
		return target == StateProcessing || target == StateDone
	case StateDone:
		return target == StateProcessing || target == StateDraft
	case StateCancelled:
		return target == StateDraft
	}
	return false
}

// InvoiceMethod is when invoices are created for a sale
type InvoiceMethod string

const (
	InvoiceMethodManual   InvoiceMethod = "manual"
	InvoiceMethodOrder    InvoiceMethod = "order"
	InvoiceMethodShipment InvoiceMethod = "shipment"
)

// IsValid checks if the invoice method is known
func (m InvoiceMethod) IsValid() bool {
	switch m {
	case InvoiceMethodManual, InvoiceMethodOrder, InvoiceMethodShipment:
		return true
	}
	return false
}

// ShipmentMethod is when shipments are created for a sale
type ShipmentMethod string

const (
	ShipmentMethodManual  ShipmentMethod = "manual"
	ShipmentMethodOrder   ShipmentMethod = "order"
	ShipmentMethodInvoice ShipmentMethod = "invoice"
)

// IsValid checks if the shipment method is known
func (m ShipmentMethod) IsValid() bool {
	switch m {
	case ShipmentMethodManual, ShipmentMethodOrder, ShipmentMethodInvoice:
		return true
	}
	return false
}

// Sale is a customer order whose lines may be synchronized with a project tree
type Sale struct {
	shared.CompanyAggregateRoot
	Number         string
	Description    string
	PartyID        uuid.UUID
	PartyName      string
	InvoiceMethod  InvoiceMethod
	ShipmentMethod ShipmentMethod
	State          State
	WorkID         *uuid.UUID
	CreateProject  bool
	Lines          []SaleLine
	QuotedAt       *time.Time
	ConfirmedAt    *time.Time
	ProcessedAt    *time.Time
	DoneAt         *time.Time
	CancelledAt    *time.Time
}

// NewSale creates a new draft sale
func NewSale(companyID uuid.UUID, number string, partyID uuid.UUID, partyName string) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party cannot be empty")
	}
	if partyName == "" {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party name cannot be empty")
	}

	s := &Sale{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		PartyID:              partyID,
		PartyName:            partyName,
		InvoiceMethod:        InvoiceMethodOrder,
		ShipmentMethod:       ShipmentMethodOrder,
		State:                StateDraft,
		Lines:                make([]SaleLine, 0),
	}

	s.AddDomainEvent(NewSaleCreatedEvent(s))

	return s, nil
}

// Name is how the sale is referred to in messages and in generated projects
func (s *Sale) Name() string {
	return s.Number
}

// IsDraft returns true if the sale is a draft
func (s *Sale) IsDraft() bool {
	return s.State == StateDraft
}

// CanModify reports whether header fields may still be edited
func (s *Sale) CanModify() bool {
	return s.State == StateDraft || s.State == StateQuotation
}

// MethodsManual reports whether both invoice and shipment methods are manual
func (s *Sale) MethodsManual() bool {
	return s.InvoiceMethod == InvoiceMethodManual && s.ShipmentMethod == ShipmentMethodManual
}

// HasProject reports whether the sale carries a project or intends to create one
func (s *Sale) HasProject() bool {
	return s.CreateProject || s.WorkID != nil
}

// Update updates the descriptive header fields
func (s *Sale) Update(description string) error {
	if !s.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify sale in %s state", s.State))
	}
	s.Description = description
	s.UpdatedAt = time.Now()
	return nil
}

// SetMethods sets the invoice and shipment methods. Project fields are dropped
// as soon as either method stops being manual.
func (s *Sale) SetMethods(invoice InvoiceMethod, shipment ShipmentMethod) error {
	if !s.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change methods of sale in %s state", s.State))
	}
	if !invoice.IsValid() {
		return shared.NewDomainError("INVALID_INVOICE_METHOD", fmt.Sprintf("Unknown invoice method %q", invoice))
	}
	if !shipment.IsValid() {
		return shared.NewDomainError("INVALID_SHIPMENT_METHOD", fmt.Sprintf("Unknown shipment method %q", shipment))
	}

	s.InvoiceMethod = invoice
	s.ShipmentMethod = shipment
	if !s.MethodsManual() {
		s.WorkID = nil
		s.CreateProject = false
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Sale) checkProjectEditable() error {
	if !s.CanModify() {
		return shared.NewDomainError(ErrCodeProjectReadonly, fmt.Sprintf("Project fields of sale %q cannot be changed in %s state", s.Name(), s.State))
	}
	if !s.MethodsManual() {
		return shared.NewDomainError(ErrCodeProjectReadonly, fmt.Sprintf("Project fields of sale %q require manual invoice and shipment methods", s.Name()))
	}
	return nil
}

// SetWork links the sale to an existing project root and drops the create-project flag.
// The project must be a root of project type owned by the same company and party.
func (s *Sale) SetWork(w *project.Work) error {
	if err := s.checkProjectEditable(); err != nil {
		return err
	}
	if w == nil {
		s.WorkID = nil
		s.UpdatedAt = time.Now()
		return nil
	}
	if !w.IsProject() || !w.IsRoot() {
		return shared.NewDomainError(ErrCodeInvalidWork, fmt.Sprintf("Work %q is not a project", w.Name))
	}
	if w.CompanyID != s.CompanyID {
		return shared.NewDomainError(ErrCodeInvalidWork, fmt.Sprintf("Project %q belongs to another company", w.Name))
	}
	if w.PartyID != nil && *w.PartyID != s.PartyID {
		return shared.NewDomainError(ErrCodeInvalidWork, fmt.Sprintf("Project %q belongs to another party", w.Name))
	}

	id := w.ID
	s.WorkID = &id
	s.CreateProject = false
	s.UpdatedAt = time.Now()
	return nil
}

// SetCreateProject toggles project generation on processing. Turning it on drops the project link.
func (s *Sale) SetCreateProject(create bool) error {
	if err := s.checkProjectEditable(); err != nil {
		return err
	}
	s.CreateProject = create
	if create {
		s.WorkID = nil
	}
	s.UpdatedAt = time.Now()
	return nil
}

// AttachCreatedProject records the project generated while processing
func (s *Sale) AttachCreatedProject(workID uuid.UUID) {
	s.WorkID = &workID
	s.UpdatedAt = time.Now()
}

// CheckProject rejects sales tied to a project whose methods are not both manual
func (s *Sale) CheckProject() error {
	if s.HasProject() && !s.MethodsManual() {
		return NewProjectMethodsError(s.Name())
	}
	return nil
}

// CanLoadProject reports whether the lines of the linked project may be loaded
func (s *Sale) CanLoadProject() bool {
	return s.State == StateDraft && s.WorkID != nil && len(s.Lines) == 0
}

// Quote moves the sale from draft to quotation
func (s *Sale) Quote() error {
	if !s.State.CanTransitionTo(StateQuotation) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot quote sale in %s state", s.State))
	}
	if err := s.CheckProject(); err != nil {
		return err
	}

	now := time.Now()
	s.State = StateQuotation
	s.QuotedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleQuoted, StateDraft))

	return nil
}

// Confirm moves the sale from quotation to confirmed
func (s *Sale) Confirm() error {
	if s.State != StateQuotation {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm sale in %s state", s.State))
	}
	if err := s.CheckProject(); err != nil {
		return err
	}

	now := time.Now()
	s.State = StateConfirmed
	s.ConfirmedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleConfirmed, StateQuotation))

	return nil
}

// Process moves a confirmed sale to processing. Processing again is allowed.
func (s *Sale) Process() error {
	if s.State != StateConfirmed && s.State != StateProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process sale in %s state", s.State))
	}

	from := s.State
	now := time.Now()
	s.State = StateProcessing
	s.ProcessedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleProcessed, from))

	return nil
}

// Done marks a processing sale as done
func (s *Sale) Done() error {
	if s.State != StateProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish sale in %s state", s.State))
	}

	now := time.Now()
	s.State = StateDone
	s.DoneAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleDone, StateProcessing))

	return nil
}

// Cancel cancels a draft or quoted sale
func (s *Sale) Cancel() error {
	if !s.State.CanTransitionTo(StateCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s state", s.State))
	}

	from := s.State
	now := time.Now()
	s.State = StateCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleCancelled, from))

	return nil
}

// Draft resets the sale to draft. For a done sale, enforceManual requires both
// methods to be manual before the reset is allowed.
func (s *Sale) Draft(enforceManual bool) error {
	if !s.State.CanTransitionTo(StateDraft) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reset sale in %s state to draft", s.State))
	}
	if s.State == StateDone && enforceManual && !s.MethodsManual() {
		return NewBackToDraftError(s.Name())
	}

	from := s.State
	s.State = StateDraft
	s.QuotedAt = nil
	s.ConfirmedAt = nil
	s.ProcessedAt = nil
	s.DoneAt = nil
	s.CancelledAt = nil
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleStateChangedEvent(s, EventTypeSaleResetToDraft, from))

	return nil
}

// ChangeParty moves the sale to another party
func (s *Sale) ChangeParty(partyID uuid.UUID, partyName string) error {
	if s.State == StateDone || s.State == StateCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change party of sale in %s state", s.State))
	}
	if partyID == uuid.Nil || partyName == "" {
		return shared.NewDomainError("INVALID_PARTY", "Party cannot be empty")
	}
	if partyID == s.PartyID {
		return shared.NewDomainError("INVALID_PARTY", "Sale already belongs to this party")
	}

	oldParty := s.PartyID
	s.PartyID = partyID
	s.PartyName = partyName
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSalePartyChangedEvent(s, oldParty))

	return nil
}

// Copy duplicates the sale as a new draft. Line task links are not copied.
// A sale that generated its own project is copied without it so that the copy
// generates a fresh one.
func (s *Sale) Copy(number string) (*Sale, error) {
	c, err := NewSale(s.CompanyID, number, s.PartyID, s.PartyName)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = s.CreatedBy
	c.Description = s.Description
	c.InvoiceMethod = s.InvoiceMethod
	c.ShipmentMethod = s.ShipmentMethod
	c.CreateProject = s.CreateProject
	if !s.CreateProject && s.WorkID != nil {
		id := *s.WorkID
		c.WorkID = &id
	}

	// lines are re-parented onto their copies
	ids := make(map[uuid.UUID]uuid.UUID, len(s.Lines))
	c.Lines = make([]SaleLine, len(s.Lines))
	for i := range s.Lines {
		c.Lines[i] = s.Lines[i].Copy(c.ID)
		ids[s.Lines[i].ID] = c.Lines[i].ID
	}
	for i := range c.Lines {
		if c.Lines[i].ParentID != nil {
			p := ids[*c.Lines[i].ParentID]
			c.Lines[i].ParentID = &p
		}
	}
	return c, nil
}

// AddLine appends a line under its parent. Lines can only be edited in draft.
// The returned line is a copy; address lines by ID afterwards.
func (s *Sale) AddLine(spec LineSpec) (*SaleLine, error) {
	if s.State != StateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft sale")
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if spec.ParentID != nil && s.lineIndex(*spec.ParentID) < 0 {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent line does not belong to this sale")
	}

	now := time.Now()
	line := SaleLine{
		ID:        uuid.New(),
		SaleID:    s.ID,
		Sequence:  len(s.children(spec.ParentID)) + 1,
		CreatedAt: now,
	}
	line.apply(spec)

	s.Lines = append(s.Lines, line)
	s.UpdatedAt = now

	return &line, nil
}

// UpdateLine replaces the editable fields of a line
func (s *Sale) UpdateLine(lineID uuid.UUID, spec LineSpec) error {
	if s.State != StateDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines of a non-draft sale")
	}
	i := s.lineIndex(lineID)
	if i < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", "Sale line not found")
	}
	if err := spec.validate(); err != nil {
		return err
	}
	if spec.ParentID != nil {
		if s.lineIndex(*spec.ParentID) < 0 {
			return shared.NewDomainError("INVALID_PARENT", "Parent line does not belong to this sale")
		}
		if *spec.ParentID == lineID || s.isDescendant(*spec.ParentID, lineID) {
			return shared.NewDomainError("INVALID_PARENT", "A line cannot be moved below itself")
		}
	}

	s.Lines[i].apply(spec)
	s.UpdatedAt = time.Now()
	return nil
}

// RemoveLine removes a line together with its descendants
func (s *Sale) RemoveLine(lineID uuid.UUID) error {
	if s.State != StateDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft sale")
	}
	if s.lineIndex(lineID) < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", "Sale line not found")
	}

	remove := map[uuid.UUID]bool{lineID: true}
	for changed := true; changed; {
		changed = false
		for _, l := range s.Lines {
			if l.ParentID != nil && remove[*l.ParentID] && !remove[l.ID] {
				remove[l.ID] = true
				changed = true
			}
		}
	}

	kept := s.Lines[:0]
	for _, l := range s.Lines {
		if !remove[l.ID] {
			kept = append(kept, l)
		}
	}
	s.Lines = kept
	s.UpdatedAt = time.Now()
	return nil
}

// Line returns a copy of the line with the given ID
func (s *Sale) Line(lineID uuid.UUID) (SaleLine, bool) {
	i := s.lineIndex(lineID)
	if i < 0 {
		return SaleLine{}, false
	}
	return s.Lines[i], true
}

// ChildLines returns the IDs of the direct children of parentID in sequence
// order; a nil parent selects the top-level lines.
func (s *Sale) ChildLines(parentID *uuid.UUID) []uuid.UUID {
	kids := s.children(parentID)
	out := make([]uuid.UUID, len(kids))
	for i, k := range kids {
		out[i] = s.Lines[k].ID
	}
	return out
}

// LinkTask links a line to a project node
func (s *Sale) LinkTask(lineID, taskID uuid.UUID) error {
	i := s.lineIndex(lineID)
	if i < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", "Sale line not found")
	}
	s.Lines[i].TaskID = &taskID
	s.Lines[i].UpdatedAt = time.Now()
	return nil
}

// TotalAmount sums the amounts of the priced lines
func (s *Sale) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Lines {
		total = total.Add(s.Lines[i].Amount())
	}
	return total
}

func (s *Sale) lineIndex(id uuid.UUID) int {
	for i := range s.Lines {
		if s.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Sale) children(parentID *uuid.UUID) []int {
	var out []int
	for i := range s.Lines {
		p := s.Lines[i].ParentID
		if (parentID == nil && p == nil) || (parentID != nil && p != nil && *p == *parentID) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return s.Lines[out[a]].Sequence < s.Lines[out[b]].Sequence
	})
	return out
}

// isDescendant reports whether candidate sits below ancestor
func (s *Sale) isDescendant(candidate, ancestor uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool)
	for cur := candidate; ; {
		i := s.lineIndex(cur)
		if i < 0 || s.Lines[i].ParentID == nil || seen[cur] {
			return false
		}
		seen[cur] = true
		cur = *s.Lines[i].ParentID
		if cur == ancestor {
			return true
		}
	}
}
