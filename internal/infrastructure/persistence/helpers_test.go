package persistence

import (
	"testing"
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func newTestSale(t *testing.T, companyID uuid.UUID, number string) *sale.Sale {
	t.Helper()
	s, err := sale.NewSale(companyID, number, uuid.New(), "Acme Corp")
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func addTestLine(t *testing.T, s *sale.Sale, parentID *uuid.UUID, desc string, qty int64, unit string) uuid.UUID {
	t.Helper()
	line, err := s.AddLine(sale.LineSpec{
		Type:        sale.LineTypeLine,
		ParentID:    parentID,
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		UnitCode:    unit,
		UnitPrice:   decimal.NewFromInt(50),
		CostPrice:   decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return line.ID
}

// newTestTree builds a project root with one task carrying 2h of effort
func newTestTree(t *testing.T, companyID uuid.UUID, name string) (*project.Tree, *project.Work) {
	t.Helper()
	root, err := project.NewProject(companyID, name, nil)
	require.NoError(t, err)
	root.ClearDomainEvents()
	tree := project.NewTree(root)

	task, err := project.NewWork(companyID, project.WorkTypeTask, name+" - design")
	require.NoError(t, err)
	require.NoError(t, task.SetService(nil, 2*time.Hour))
	require.NoError(t, tree.Attach(root.ID, task))
	return tree, task
}
