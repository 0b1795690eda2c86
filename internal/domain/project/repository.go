package project

import (
	"context"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
)

// WorkRepository defines the interface for project tree persistence
type WorkRepository interface {
	// FindByIDForCompany finds a single node
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Work, error)

	// FindTree loads the whole tree under a project root, sale line links included
	FindTree(ctx context.Context, companyID, rootID uuid.UUID) (*Tree, error)

	// FindRootsForCompany lists project roots
	FindRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Work, error)

	// CountRootsForCompany counts project roots
	CountRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a single node
	Save(ctx context.Context, work *Work) error

	// SaveTree creates or updates every node of a tree
	SaveTree(ctx context.Context, tree *Tree) error
}
