package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	uomRepo     catalog.UoMRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, uomRepo catalog.UoMRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		uomRepo:     uomRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, companyID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, companyID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	uom, err := s.uomRepo.FindByCode(ctx, req.Unit)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UOM_NOT_FOUND", fmt.Sprintf("Unit of measure %q not found", req.Unit))
		}
		return nil, err
	}

	productType := catalog.ProductType(req.Type)
	// services are sold as time, the sync converts their quantities to seconds
	if productType == catalog.ProductTypeService && !uom.IsTime() {
		return nil, shared.NewDomainError("INVALID_UNIT", "A service product must use a time unit")
	}

	product, err := catalog.NewProduct(companyID, req.Code, req.Name, productType, uom.Code())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	listPrice, costPrice := decimal.Zero, decimal.Zero
	if req.ListPrice != nil {
		listPrice = *req.ListPrice
	}
	if req.CostPrice != nil {
		costPrice = *req.CostPrice
	}
	if err := product.SetPrices(listPrice, costPrice); err != nil {
		return nil, err
	}
	if req.Salable != nil {
		product.SetSalable(*req.Salable)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code),
		zap.String("type", product.Type.String()),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, companyID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForCompany(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, companyID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "code"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Salable != nil {
		domainFilter.Filters["salable"] = *filter.Salable
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}
