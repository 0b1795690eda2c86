package catalog

import (
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Type        string           `json:"type" binding:"required,oneof=service goods assets"`
	Unit        string           `json:"unit" binding:"required,min=1,max=20"`
	ListPrice   *decimal.Decimal `json:"list_price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	Salable     *bool            `json:"salable"`
	CreatedBy   *uuid.UUID       `json:"-"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Unit        string          `json:"unit"`
	ListPrice   decimal.Decimal `json:"list_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Salable     bool            `json:"salable"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=service goods assets"`
	Salable  *bool  `form:"salable"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=code name type created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UoMResponse represents a unit of measure in API responses
type UoMResponse struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
	Digits   int32           `json:"digits"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type.String(),
		Unit:        p.DefaultUoMCode,
		ListPrice:   p.ListPrice,
		CostPrice:   p.CostPrice,
		Salable:     p.Salable,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of domain Products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToUoMResponses converts units of measure to responses
func ToUoMResponses(uoms []valueobject.UoM) []UoMResponse {
	responses := make([]UoMResponse, len(uoms))
	for i, u := range uoms {
		responses[i] = UoMResponse{
			Code:     u.Code(),
			Name:     u.Name(),
			Category: u.Category(),
			Rate:     u.Rate(),
			Digits:   u.Digits(),
		}
	}
	return responses
}
