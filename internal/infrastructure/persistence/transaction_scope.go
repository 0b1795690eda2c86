package persistence

import (
	"context"

	appsale "github.com/erp/saleproject/internal/application/sale"
	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// A sale and its project tree are written in the same transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsale.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() sale.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// WorkRepo returns the work repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WorkRepo() project.WorkRepository {
	return NewGormWorkRepository(r.tx)
}

// ProductRepo reads products on the transaction connection.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// UoMRepo reads units of measure on the transaction connection.
func (r *gormTransactionalRepositories) UoMRepo() catalog.UoMRepository {
	return NewGormUoMRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appsale.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appsale.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

var _ appsale.CatalogRepositories = (*gormTransactionalRepositories)(nil)
