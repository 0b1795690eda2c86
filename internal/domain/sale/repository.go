package sale

import (
	"context"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByIDForCompany finds a sale with its lines
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Sale, error)

	// FindAllForCompany lists sales with filtering; lines are not loaded
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// CountForCompany counts sales matching the filter
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// FindLinesByTasks returns every sale line of the company linked to one of the tasks
	FindLinesByTasks(ctx context.Context, companyID uuid.UUID, taskIDs []uuid.UUID) ([]SaleLine, error)

	// FindByWork lists the sales linked to a project root
	FindByWork(ctx context.Context, companyID, workID uuid.UUID) ([]Sale, error)

	// Save creates a sale or updates it with its lines
	Save(ctx context.Context, s *Sale) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, s *Sale) error

	// GenerateNumber generates the next sale number for a company
	GenerateNumber(ctx context.Context, companyID uuid.UUID) (string, error)
}
