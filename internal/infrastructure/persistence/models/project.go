package models

import (
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkModel is the persistence model for one node of a project tree.
// Trees are stored flat; root_id lets a whole tree be loaded in one query.
type WorkModel struct {
	CompanyAggregateModel
	RootID               uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ParentID             *uuid.UUID                 `gorm:"type:uuid;index"`
	Sequence             int                        `gorm:"not null;default:0"`
	Type                 project.WorkType           `gorm:"type:varchar(20);not null;default:'task'"`
	Name                 string                     `gorm:"type:varchar(200);not null"`
	PartyID              *uuid.UUID                 `gorm:"type:uuid;index"`
	ProductID            *uuid.UUID                 `gorm:"type:uuid"`
	ProductGoodsID       *uuid.UUID                 `gorm:"type:uuid"`
	InvoiceProductType   project.InvoiceProductType `gorm:"type:varchar(20);not null;default:'service'"`
	ProjectInvoiceMethod project.InvoiceMethod      `gorm:"type:varchar(20);not null;default:'manual'"`
	UoMCode              string                     `gorm:"column:uom_code;type:varchar(20)"`
	Quantity             decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	EffortSeconds        int64                      `gorm:"not null;default:0"`
	Progress             decimal.Decimal            `gorm:"type:decimal(9,4);not null;default:0"`
	ListPrice            decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice            decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (WorkModel) TableName() string {
	return "works"
}

// ToDomain converts the persistence model to a domain Work.
// SaleLineIDs are filled by the repository from sale_lines.
func (m *WorkModel) ToDomain() *project.Work {
	return &project.Work{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		RootID:               m.RootID,
		ParentID:             m.ParentID,
		Sequence:             m.Sequence,
		Type:                 m.Type,
		Name:                 m.Name,
		PartyID:              m.PartyID,
		ProductID:            m.ProductID,
		ProductGoodsID:       m.ProductGoodsID,
		InvoiceProductType:   m.InvoiceProductType,
		ProjectInvoiceMethod: m.ProjectInvoiceMethod,
		UoMCode:              m.UoMCode,
		Quantity:             m.Quantity,
		EffortDuration:       time.Duration(m.EffortSeconds) * time.Second,
		Progress:             m.Progress,
		ListPrice:            m.ListPrice,
		CostPrice:            m.CostPrice,
	}
}

// FromDomain populates the persistence model from a domain Work
func (m *WorkModel) FromDomain(w *project.Work) {
	m.FromDomainCompanyAggregateRoot(w.CompanyAggregateRoot)
	m.RootID = w.RootID
	m.ParentID = w.ParentID
	m.Sequence = w.Sequence
	m.Type = w.Type
	m.Name = w.Name
	m.PartyID = w.PartyID
	m.ProductID = w.ProductID
	m.ProductGoodsID = w.ProductGoodsID
	m.InvoiceProductType = w.InvoiceProductType
	m.ProjectInvoiceMethod = w.ProjectInvoiceMethod
	m.UoMCode = w.UoMCode
	m.Quantity = w.Quantity
	m.EffortSeconds = int64(w.EffortDuration / time.Second)
	m.Progress = w.Progress
	m.ListPrice = w.ListPrice
	m.CostPrice = w.CostPrice
}

// WorkModelFromDomain creates a new persistence model from a domain Work
func WorkModelFromDomain(w *project.Work) *WorkModel {
	m := &WorkModel{}
	m.FromDomain(w)
	return m
}
