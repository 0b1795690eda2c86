package models

import (
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	CompanyAggregateModel
	Code           string              `gorm:"type:varchar(50);not null;index"`
	Name           string              `gorm:"type:varchar(200);not null"`
	Description    string              `gorm:"type:text"`
	Type           catalog.ProductType `gorm:"type:varchar(20);not null;default:'goods'"`
	Salable        bool                `gorm:"not null"`
	Active         bool                `gorm:"not null"`
	DefaultUoMCode string              `gorm:"column:default_uom_code;type:varchar(20);not null"`
	ListPrice      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Code:                 m.Code,
		Name:                 m.Name,
		Description:          m.Description,
		Type:                 m.Type,
		Salable:              m.Salable,
		Active:               m.Active,
		DefaultUoMCode:       m.DefaultUoMCode,
		ListPrice:            m.ListPrice,
		CostPrice:            m.CostPrice,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Description = p.Description
	m.Type = p.Type
	m.Salable = p.Salable
	m.Active = p.Active
	m.DefaultUoMCode = p.DefaultUoMCode
	m.ListPrice = p.ListPrice
	m.CostPrice = p.CostPrice
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// UoMModel is the persistence model for a unit of measure. Units are global
// and keyed by code.
type UoMModel struct {
	Code      string          `gorm:"type:varchar(20);primary_key"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Category  string          `gorm:"type:varchar(50);not null;index"`
	Rate      decimal.Decimal `gorm:"type:decimal(24,12);not null"`
	Digits    int32           `gorm:"not null;default:2"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UoMModel) TableName() string {
	return "uoms"
}

// ToDomain converts the persistence model to a UoM value object
func (m *UoMModel) ToDomain() (valueobject.UoM, error) {
	return valueobject.NewUoM(m.Code, m.Name, m.Category, m.Rate, m.Digits)
}

// UoMModelFromDomain creates a persistence model from a UoM value object
func UoMModelFromDomain(u valueobject.UoM) *UoMModel {
	return &UoMModel{
		Code:     u.Code(),
		Name:     u.Name(),
		Category: u.Category(),
		Rate:     u.Rate(),
		Digits:   u.Digits(),
	}
}
