package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineType is the kind of a sale line
type LineType string

const (
	LineTypeLine     LineType = "line"
	LineTypeSubtotal LineType = "subtotal"
	LineTypeTitle    LineType = "title"
	LineTypeComment  LineType = "comment"
)

// IsValid checks if the line type is known
func (t LineType) IsValid() bool {
	switch t {
	case LineTypeLine, LineTypeSubtotal, LineTypeTitle, LineTypeComment:
		return true
	}
	return false
}

// String returns the string representation of LineType
func (t LineType) String() string {
	return string(t)
}

// SaleLine is one row of a sale. Lines form a tree through ParentID and are
// ordered by Sequence within their parent.
type SaleLine struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	Sequence    int
	Type        LineType
	ParentID    *uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitCode    string
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
	TaskID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineSpec carries the editable fields of a sale line
type LineSpec struct {
	Type        LineType
	ParentID    *uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitCode    string
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
}

func (s LineSpec) validate() error {
	if !s.Type.IsValid() {
		return shared.NewDomainError("INVALID_LINE_TYPE", fmt.Sprintf("Unknown line type %q", s.Type))
	}
	if s.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if s.UnitPrice.IsNegative() || s.CostPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	if s.Type != LineTypeLine && s.ProductID != nil {
		return shared.NewDomainError("INVALID_LINE", "Only lines of type line can carry a product")
	}
	if s.Type == LineTypeLine && s.ProductID == nil && s.Description == "" {
		return shared.NewDomainError("INVALID_LINE", "A line without product needs a description")
	}
	return nil
}

// IsLine reports whether the line is a priced item
func (l *SaleLine) IsLine() bool {
	return l.Type == LineTypeLine
}

// HasUnit reports whether the line carries a unit
func (l *SaleLine) HasUnit() bool {
	return l.UnitCode != ""
}

// Amount returns quantity times unit price
func (l *SaleLine) Amount() decimal.Decimal {
	if !l.IsLine() {
		return decimal.Zero
	}
	return l.Quantity.Mul(l.UnitPrice)
}

// Name is how the line is referred to in messages
func (l *SaleLine) Name() string {
	if l.Description != "" {
		return l.Description
	}
	return fmt.Sprintf("#%d", l.Sequence)
}

// Copy duplicates the line for another sale. The task link is not carried over.
func (l *SaleLine) Copy(saleID uuid.UUID) SaleLine {
	c := *l
	now := time.Now()
	c.ID = uuid.New()
	c.SaleID = saleID
	c.TaskID = nil
	c.CreatedAt = now
	c.UpdatedAt = now
	return c
}

func (l *SaleLine) apply(spec LineSpec) {
	l.Type = spec.Type
	l.ParentID = spec.ParentID
	l.ProductID = spec.ProductID
	l.Description = spec.Description
	l.Quantity = spec.Quantity
	l.UnitCode = strings.ToUpper(strings.TrimSpace(spec.UnitCode))
	l.UnitPrice = spec.UnitPrice
	l.CostPrice = spec.CostPrice
	l.UpdatedAt = time.Now()
}
