package models

import (
	"time"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	CompanyAggregateModel
	Number         string              `gorm:"type:varchar(50);not null;index"`
	Description    string              `gorm:"type:text"`
	PartyID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	PartyName      string              `gorm:"type:varchar(200);not null"`
	InvoiceMethod  sale.InvoiceMethod  `gorm:"type:varchar(20);not null;default:'order'"`
	ShipmentMethod sale.ShipmentMethod `gorm:"type:varchar(20);not null;default:'order'"`
	State          sale.State          `gorm:"type:varchar(20);not null;default:'draft';index"`
	WorkID         *uuid.UUID          `gorm:"type:uuid;index"`
	CreateProject  bool                `gorm:"not null;default:false"`
	Lines          []SaleLineModel     `gorm:"foreignKey:SaleID;references:ID"`
	QuotedAt       *time.Time
	ConfirmedAt    *time.Time
	ProcessedAt    *time.Time
	DoneAt         *time.Time
	CancelledAt    *time.Time
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sale.Sale {
	s := &sale.Sale{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Number:               m.Number,
		Description:          m.Description,
		PartyID:              m.PartyID,
		PartyName:            m.PartyName,
		InvoiceMethod:        m.InvoiceMethod,
		ShipmentMethod:       m.ShipmentMethod,
		State:                m.State,
		WorkID:               m.WorkID,
		CreateProject:        m.CreateProject,
		QuotedAt:             m.QuotedAt,
		ConfirmedAt:          m.ConfirmedAt,
		ProcessedAt:          m.ProcessedAt,
		DoneAt:               m.DoneAt,
		CancelledAt:          m.CancelledAt,
		Lines:                make([]sale.SaleLine, len(m.Lines)),
	}
	for i := range m.Lines {
		s.Lines[i] = m.Lines[i].ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *sale.Sale) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.Number = s.Number
	m.Description = s.Description
	m.PartyID = s.PartyID
	m.PartyName = s.PartyName
	m.InvoiceMethod = s.InvoiceMethod
	m.ShipmentMethod = s.ShipmentMethod
	m.State = s.State
	m.WorkID = s.WorkID
	m.CreateProject = s.CreateProject
	m.QuotedAt = s.QuotedAt
	m.ConfirmedAt = s.ConfirmedAt
	m.ProcessedAt = s.ProcessedAt
	m.DoneAt = s.DoneAt
	m.CancelledAt = s.CancelledAt
	m.Lines = make([]SaleLineModel, len(s.Lines))
	for i := range s.Lines {
		m.Lines[i] = *SaleLineModelFromDomain(&s.Lines[i])
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *sale.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleLineModel is the persistence model for a sale line. Lines form a tree
// through ParentID; TaskID is the owning side of the line/task link.
type SaleLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Sequence    int             `gorm:"not null;default:0"`
	Type        sale.LineType   `gorm:"type:varchar(20);not null;default:'line'"`
	ParentID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCode    string          `gorm:"type:varchar(20)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaskID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts the persistence model to a domain SaleLine
func (m *SaleLineModel) ToDomain() sale.SaleLine {
	return sale.SaleLine{
		ID:          m.ID,
		SaleID:      m.SaleID,
		Sequence:    m.Sequence,
		Type:        m.Type,
		ParentID:    m.ParentID,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitCode:    m.UnitCode,
		UnitPrice:   m.UnitPrice,
		CostPrice:   m.CostPrice,
		TaskID:      m.TaskID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SaleLineModelFromDomain creates a new persistence model from a domain SaleLine
func SaleLineModelFromDomain(l *sale.SaleLine) *SaleLineModel {
	return &SaleLineModel{
		ID:          l.ID,
		SaleID:      l.SaleID,
		Sequence:    l.Sequence,
		Type:        l.Type,
		ParentID:    l.ParentID,
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitCode:    l.UnitCode,
		UnitPrice:   l.UnitPrice,
		CostPrice:   l.CostPrice,
		TaskID:      l.TaskID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
