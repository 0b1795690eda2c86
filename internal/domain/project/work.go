package project

import (
	"fmt"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkType distinguishes the project roots from the tasks below them
type WorkType string

const (
	WorkTypeProject WorkType = "project"
	WorkTypeTask    WorkType = "task"
)

// IsValid checks if the work type is known
func (t WorkType) IsValid() bool {
	return t == WorkTypeProject || t == WorkTypeTask
}

// InvoiceProductType tells whether a work is billed as time or as goods
type InvoiceProductType string

const (
	InvoiceProductService InvoiceProductType = "service"
	InvoiceProductGoods   InvoiceProductType = "goods"
)

// InvoiceMethod is how a project is invoiced
type InvoiceMethod string

const (
	InvoiceMethodManual   InvoiceMethod = "manual"
	InvoiceMethodEffort   InvoiceMethod = "effort"
	InvoiceMethodProgress InvoiceMethod = "progress"
)

// IsValid checks if the invoice method is known
func (m InvoiceMethod) IsValid() bool {
	switch m {
	case InvoiceMethodManual, InvoiceMethodEffort, InvoiceMethodProgress:
		return true
	}
	return false
}

var secondsPerHour = decimal.NewFromInt(3600)

// Work is one node of a project tree. The root of a tree has type project,
// its descendants are usually tasks. Nodes are stored flat and linked by ParentID;
// RootID lets a whole tree be loaded in one query.
type Work struct {
	shared.CompanyAggregateRoot
	RootID               uuid.UUID
	ParentID             *uuid.UUID
	Sequence             int
	Type                 WorkType
	Name                 string
	PartyID              *uuid.UUID
	ProductID            *uuid.UUID // service product
	ProductGoodsID       *uuid.UUID
	InvoiceProductType   InvoiceProductType
	ProjectInvoiceMethod InvoiceMethod
	UoMCode              string
	Quantity             decimal.Decimal
	EffortDuration       time.Duration
	Progress             decimal.Decimal
	ListPrice            decimal.Decimal
	CostPrice            decimal.Decimal

	// SaleLineIDs are the sale lines linked to this work. Read only: the link is owned by the line.
	SaleLineIDs []uuid.UUID
}

// NewProject creates a project root
func NewProject(companyID uuid.UUID, name string, partyID *uuid.UUID) (*Work, error) {
	if err := validateWorkName(name); err != nil {
		return nil, err
	}

	w := &Work{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Type:                 WorkTypeProject,
		Name:                 name,
		PartyID:              partyID,
		InvoiceProductType:   InvoiceProductService,
		ProjectInvoiceMethod: InvoiceMethodManual,
		Quantity:             decimal.Zero,
		Progress:             decimal.Zero,
		ListPrice:            decimal.Zero,
		CostPrice:            decimal.Zero,
	}
	w.RootID = w.ID

	w.AddDomainEvent(NewProjectCreatedEvent(w))

	return w, nil
}

// NewWork creates a detached node of the given type. Attach it to a Tree to place it.
func NewWork(companyID uuid.UUID, workType WorkType, name string) (*Work, error) {
	if !workType.IsValid() {
		return nil, shared.NewDomainError("INVALID_WORK_TYPE", fmt.Sprintf("Unknown work type %q", workType))
	}
	if err := validateWorkName(name); err != nil {
		return nil, err
	}

	w := &Work{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Type:                 workType,
		Name:                 name,
		InvoiceProductType:   InvoiceProductService,
		ProjectInvoiceMethod: InvoiceMethodManual,
		Quantity:             decimal.Zero,
		Progress:             decimal.Zero,
		ListPrice:            decimal.Zero,
		CostPrice:            decimal.Zero,
	}
	w.RootID = w.ID
	return w, nil
}

// IsRoot reports whether the node has no parent
func (w *Work) IsRoot() bool {
	return w.ParentID == nil
}

// IsProject reports whether the node is of project type
func (w *Work) IsProject() bool {
	return w.Type == WorkTypeProject
}

// IsService reports whether the node is billed as time
func (w *Work) IsService() bool {
	return w.InvoiceProductType == InvoiceProductService
}

// SetService turns the node into a time-billed work of the given effort
func (w *Work) SetService(productID *uuid.UUID, effort time.Duration) error {
	if effort < 0 {
		return shared.NewDomainError("INVALID_EFFORT", "Effort duration cannot be negative")
	}
	w.InvoiceProductType = InvoiceProductService
	w.ProductID = productID
	w.ProductGoodsID = nil
	w.EffortDuration = effort
	w.UpdatedAt = time.Now()
	return nil
}

// SetGoods turns the node into a goods work
func (w *Work) SetGoods(productID uuid.UUID, uomCode string, quantity, listPrice decimal.Decimal) error {
	if uomCode == "" {
		return shared.NewDomainError("INVALID_UNIT", "Goods work requires a unit")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	w.InvoiceProductType = InvoiceProductGoods
	w.ProductGoodsID = &productID
	w.UoMCode = uomCode
	w.Quantity = quantity
	w.ListPrice = listPrice
	w.UpdatedAt = time.Now()
	return nil
}

// SetQuantity replaces the aggregate quantity
func (w *Work) SetQuantity(quantity decimal.Decimal) {
	w.Quantity = quantity
	w.UpdatedAt = time.Now()
}

// SetEffortDuration replaces the planned effort
func (w *Work) SetEffortDuration(d time.Duration) {
	w.EffortDuration = d
	w.UpdatedAt = time.Now()
}

// SetPrices sets the list and cost prices
func (w *Work) SetPrices(listPrice, costPrice decimal.Decimal) error {
	if listPrice.IsNegative() || costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	w.ListPrice = listPrice
	w.CostPrice = costPrice
	w.UpdatedAt = time.Now()
	return nil
}

// SetInvoiceMethod sets how the project is invoiced
func (w *Work) SetInvoiceMethod(method InvoiceMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_INVOICE_METHOD", fmt.Sprintf("Unknown invoice method %q", method))
	}
	w.ProjectInvoiceMethod = method
	w.UpdatedAt = time.Now()
	return nil
}

// EffortHours returns the effort expressed in hours
func (w *Work) EffortHours() decimal.Decimal {
	seconds := decimal.NewFromInt(int64(w.EffortDuration)).Div(decimal.NewFromInt(int64(time.Second)))
	return seconds.Div(secondsPerHour)
}

// BilledQuantity is the quantity the work is billed on: hours for services, Quantity for goods
func (w *Work) BilledQuantity() decimal.Decimal {
	if w.IsService() {
		return w.EffortHours()
	}
	return w.Quantity
}

// SaleProductID returns the product a sale line for this work would carry
func (w *Work) SaleProductID() *uuid.UUID {
	if w.IsService() {
		return w.ProductID
	}
	return w.ProductGoodsID
}

// HasQuantity reports whether there is anything to bill on the node itself
func (w *Work) HasQuantity() bool {
	return !w.BilledQuantity().IsZero()
}

// LinkSaleLine records a sale line as feeding into this work
func (w *Work) LinkSaleLine(lineID uuid.UUID) {
	for _, id := range w.SaleLineIDs {
		if id == lineID {
			return
		}
	}
	w.SaleLineIDs = append(w.SaleLineIDs, lineID)
}

// HasSaleLines reports whether any sale line is linked
func (w *Work) HasSaleLines() bool {
	return len(w.SaleLineIDs) > 0
}

// ReplaceParty moves the work from one party to another. Nodes that belong to a different party are left alone.
func (w *Work) ReplaceParty(oldParty *uuid.UUID, newParty uuid.UUID) bool {
	if w.PartyID != nil && oldParty != nil && *w.PartyID != *oldParty {
		return false
	}
	w.PartyID = &newParty
	w.UpdatedAt = time.Now()
	return true
}

// Copy duplicates the node. The copy has its own identity and no sale lines;
// the caller places it in a tree.
func (w *Work) Copy() *Work {
	c := *w
	c.CompanyAggregateRoot = shared.NewCompanyAggregateRoot(w.CompanyID)
	c.CreatedBy = w.CreatedBy
	c.RootID = c.ID
	c.ParentID = nil
	c.SaleLineIDs = nil
	c.Progress = decimal.Zero
	return &c
}

func validateWorkName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Work name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Work name cannot exceed 255 characters")
	}
	return nil
}
