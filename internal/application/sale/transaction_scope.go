package sale

import (
	"context"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
)

// TransactionScope runs a unit of work over the sale and project repositories.
// A sale and the project tree it synchronizes with are committed together or
// not at all.
type TransactionScope interface {
	// Execute runs fn in a transaction; an error rolls everything back
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to one transaction
type TransactionalRepositories interface {
	SaleRepo() sale.SaleRepository
	WorkRepo() project.WorkRepository
}

// CatalogRepositories is implemented by transactional repositories that can
// also read the product catalog on the same connection
type CatalogRepositories interface {
	ProductRepo() catalog.ProductRepository
	UoMRepo() catalog.UoMRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in tests and where atomicity is not required.
type NoOpTransactionScope struct {
	saleRepo sale.SaleRepository
	workRepo project.WorkRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(saleRepo sale.SaleRepository, workRepo project.WorkRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{saleRepo: saleRepo, workRepo: workRepo}
}

// Execute calls fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sale.SaleRepository { return s.saleRepo }

// WorkRepo returns the work repository
func (s *NoOpTransactionScope) WorkRepo() project.WorkRepository { return s.workRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
