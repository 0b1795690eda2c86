package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType tells how a product is fulfilled
type ProductType string

const (
	ProductTypeService ProductType = "service"
	ProductTypeGoods   ProductType = "goods"
	ProductTypeAssets  ProductType = "assets"
)

// IsValid checks if the product type is known
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeService, ProductTypeGoods, ProductTypeAssets:
		return true
	}
	return false
}

// String returns the string representation of ProductType
func (t ProductType) String() string {
	return string(t)
}

// Product is a sellable or purchasable item of the catalog
type Product struct {
	shared.CompanyAggregateRoot
	Code           string
	Name           string
	Description    string
	Type           ProductType
	Salable        bool
	Active         bool
	DefaultUoMCode string
	ListPrice      decimal.Decimal
	CostPrice      decimal.Decimal
}

// NewProduct creates a new active, salable product
func NewProduct(companyID uuid.UUID, code, name string, productType ProductType, defaultUoM string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", fmt.Sprintf("Unknown product type %q", productType))
	}
	if strings.TrimSpace(defaultUoM) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Default unit cannot be empty")
	}

	product := &Product{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Name:                 name,
		Type:                 productType,
		Salable:              true,
		Active:               true,
		DefaultUoMCode:       strings.ToUpper(strings.TrimSpace(defaultUoM)),
		ListPrice:            decimal.Zero,
		CostPrice:            decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the descriptive fields
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrices sets the list (selling) and cost prices
func (p *Product) SetPrices(listPrice, costPrice decimal.Decimal) error {
	if listPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	p.ListPrice = listPrice
	p.CostPrice = costPrice
	p.UpdatedAt = time.Now()
	return nil
}

// SetSalable toggles whether the product may appear on sale lines
func (p *Product) SetSalable(salable bool) {
	p.Salable = salable
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from new documents
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	return nil
}

// IsService reports whether the product is sold as time spent
func (p *Product) IsService() bool {
	return p.Type == ProductTypeService
}

// CanBeSold reports whether the product may be put on a sale line
func (p *Product) CanBeSold() bool {
	return p.Active && p.Salable
}

// validateProductCode validates the product code
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
