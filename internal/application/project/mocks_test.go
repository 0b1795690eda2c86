package project

import (
	"context"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindLinesByTasks(ctx context.Context, companyID uuid.UUID, taskIDs []uuid.UUID) ([]sale.SaleLine, error) {
	args := m.Called(ctx, companyID, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.SaleLine), args.Error(1)
}

func (m *MockSaleRepository) FindByWork(ctx context.Context, companyID, workID uuid.UUID) ([]sale.Sale, error) {
	args := m.Called(ctx, companyID, workID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) GenerateNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

// MockWorkRepository is a mock implementation of WorkRepository
type MockWorkRepository struct {
	mock.Mock
}

func (m *MockWorkRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*project.Work, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Work), args.Error(1)
}

func (m *MockWorkRepository) FindTree(ctx context.Context, companyID, rootID uuid.UUID) (*project.Tree, error) {
	args := m.Called(ctx, companyID, rootID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Tree), args.Error(1)
}

func (m *MockWorkRepository) FindRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]project.Work, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Work), args.Error(1)
}

func (m *MockWorkRepository) CountRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkRepository) Save(ctx context.Context, work *project.Work) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockWorkRepository) SaveTree(ctx context.Context, tree *project.Tree) error {
	args := m.Called(ctx, tree)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockUoMRepository is a mock implementation of UoMRepository
type MockUoMRepository struct {
	mock.Mock
}

func (m *MockUoMRepository) FindByCode(ctx context.Context, code string) (valueobject.UoM, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(valueobject.UoM), args.Error(1)
}

func (m *MockUoMRepository) FindAll(ctx context.Context) ([]valueobject.UoM, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]valueobject.UoM), args.Error(1)
}

func (m *MockUoMRepository) SaveAll(ctx context.Context, uoms []valueobject.UoM) error {
	args := m.Called(ctx, uoms)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
