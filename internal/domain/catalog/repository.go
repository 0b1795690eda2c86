package catalog

import (
	"context"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForCompany finds a product by ID within a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Product, error)

	// FindByIDs loads several products at once; missing IDs are skipped
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindAllForCompany lists products with filtering and pagination
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Product, error)

	// CountForCompany counts products matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a product code is taken within a company
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// UoMRepository gives access to the units of measure shared by all companies
type UoMRepository interface {
	// FindByCode finds a unit by its code
	FindByCode(ctx context.Context, code string) (valueobject.UoM, error)

	// FindAll lists every unit ordered by category then rate
	FindAll(ctx context.Context) ([]valueobject.UoM, error)

	// SaveAll inserts or updates units by code
	SaveAll(ctx context.Context, uoms []valueobject.UoM) error
}
