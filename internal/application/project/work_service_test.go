package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	workRepo    *MockWorkRepository
	saleRepo    *MockSaleRepository
	productRepo *MockProductRepository
	uomRepo     *MockUoMRepository
	publisher   *MockEventPublisher
	svc         *WorkService
}

func newTestDeps() *testDeps {
	d := &testDeps{
		workRepo:    new(MockWorkRepository),
		saleRepo:    new(MockSaleRepository),
		productRepo: new(MockProductRepository),
		uomRepo:     new(MockUoMRepository),
		publisher:   new(MockEventPublisher),
	}
	d.svc = NewWorkService(d.workRepo, d.saleRepo, d.productRepo, d.uomRepo)
	d.svc.SetEventPublisher(d.publisher)
	return d
}

// loadedTree returns the tree the way the repository hands it back: no node is new
func loadedTree(t *testing.T, tree *project.Tree) *project.Tree {
	t.Helper()
	loaded, err := project.BuildTree(tree.Nodes())
	require.NoError(t, err)
	return loaded
}

func newRoot(t *testing.T, companyID uuid.UUID) *project.Work {
	t.Helper()
	partyID := uuid.New()
	root, err := project.NewProject(companyID, "SO-00001 - Acme", &partyID)
	require.NoError(t, err)
	root.ClearDomainEvents()
	return root
}

func newServiceTask(t *testing.T, companyID uuid.UUID, name string, effort time.Duration, cost int64) *project.Work {
	t.Helper()
	w, err := project.NewWork(companyID, project.WorkTypeTask, name)
	require.NoError(t, err)
	require.NoError(t, w.SetService(nil, effort))
	require.NoError(t, w.SetPrices(decimal.Zero, decimal.NewFromInt(cost)))
	return w
}

func TestWorkService_CreateProject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("creates a root and publishes its creation", func(t *testing.T) {
		d := newTestDeps()
		partyID := uuid.New()
		userID := uuid.New()

		d.workRepo.On("Save", mock.Anything, mock.AnythingOfType("*project.Work")).Return(nil)
		d.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == project.EventTypeProjectCreated
		})).Return(nil)

		resp, err := d.svc.CreateProject(ctx, companyID, CreateProjectRequest{
			Name:          "Website",
			PartyID:       &partyID,
			InvoiceMethod: "effort",
			CreatedBy:     &userID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Website", resp.Name)
		assert.Equal(t, "project", resp.Type)
		assert.Equal(t, "effort", resp.InvoiceMethod)
		assert.Equal(t, resp.ID, resp.RootID)
		assert.Nil(t, resp.ParentID)
		assert.Equal(t, partyID, *resp.PartyID)
		assert.Empty(t, resp.SaleLineIDs)

		saved := d.workRepo.Calls[0].Arguments.Get(1).(*project.Work)
		assert.Equal(t, userID, *saved.CreatedBy)
		d.publisher.AssertExpectations(t)
	})

	t.Run("rejects unknown invoice method", func(t *testing.T) {
		d := newTestDeps()

		_, err := d.svc.CreateProject(ctx, companyID, CreateProjectRequest{Name: "Website", InvoiceMethod: "weekly"})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "INVALID_INVOICE_METHOD"))
		d.workRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure is returned", func(t *testing.T) {
		d := newTestDeps()
		dbErr := errors.New("connection reset")
		d.workRepo.On("Save", mock.Anything, mock.Anything).Return(dbErr)

		_, err := d.svc.CreateProject(ctx, companyID, CreateProjectRequest{Name: "Website"})

		assert.ErrorIs(t, err, dbErr)
		d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestWorkService_GetTree(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	d := newTestDeps()

	root := newRoot(t, companyID)
	tree := project.NewTree(root)
	phase := newServiceTask(t, companyID, "Phase 1", 0, 0)
	require.NoError(t, tree.Attach(root.ID, phase))
	task := newServiceTask(t, companyID, "Design", 90*time.Minute, 40)
	require.NoError(t, tree.Attach(phase.ID, task))

	d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, tree), nil)

	resp, err := d.svc.GetTree(ctx, companyID, root.ID)

	require.NoError(t, err)
	assert.Equal(t, root.ID, resp.ID)
	require.Len(t, resp.Children, 1)
	assert.Equal(t, "Phase 1", resp.Children[0].Name)
	require.Len(t, resp.Children[0].Children, 1)
	leaf := resp.Children[0].Children[0]
	assert.Equal(t, "Design", leaf.Name)
	assert.True(t, leaf.EffortHours.Equal(decimal.NewFromFloat(1.5)))
	assert.Equal(t, *root.PartyID, *leaf.PartyID, "tasks inherit the party of their project")
}

func TestWorkService_GetTree_NotARoot(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	d := newTestDeps()

	root := newRoot(t, companyID)
	tree := project.NewTree(root)
	task := newServiceTask(t, companyID, "Design", time.Hour, 0)
	require.NoError(t, tree.Attach(root.ID, task))

	d.workRepo.On("FindTree", mock.Anything, companyID, task.ID).Return(loadedTree(t, tree), nil)
	missing := uuid.New()
	d.workRepo.On("FindTree", mock.Anything, companyID, missing).Return(nil, shared.ErrNotFound)

	_, err := d.svc.GetTree(ctx, companyID, task.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = d.svc.GetTree(ctx, companyID, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWorkService_List(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	partyID := uuid.New()
	d := newTestDeps()

	root := newRoot(t, companyID)
	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "site" && f.Filters["party_id"] == partyID && f.PageSize == 5 && f.OrderBy == "name"
	})
	d.workRepo.On("FindRootsForCompany", mock.Anything, companyID, matchFilter).Return([]project.Work{*root}, nil)
	d.workRepo.On("CountRootsForCompany", mock.Anything, companyID, matchFilter).Return(int64(1), nil)

	items, total, err := d.svc.List(ctx, companyID, ProjectListFilter{
		Search: "site", PartyID: &partyID, PageSize: 5, OrderBy: "name",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, root.ID, items[0].ID)
}

func TestWorkService_AddTask(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	serviceProduct, err := catalog.NewProduct(companyID, "SRV-DEV", "Development", catalog.ProductTypeService, "H")
	require.NoError(t, err)
	require.NoError(t, serviceProduct.SetPrices(decimal.NewFromInt(100), decimal.NewFromInt(60)))

	goodsProduct, err := catalog.NewProduct(companyID, "CABLE", "Cable", catalog.ProductTypeGoods, "U")
	require.NoError(t, err)
	require.NoError(t, goodsProduct.SetPrices(decimal.NewFromInt(5), decimal.NewFromInt(2)))

	unit := valueobject.MustNewUoM("U", "Unit", valueobject.CategoryUnit, decimal.NewFromInt(1), 0)

	t.Run("service task under the root", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		tree := loadedTree(t, project.NewTree(root))

		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(tree, nil)
		d.productRepo.On("FindByIDForCompany", mock.Anything, companyID, serviceProduct.ID).Return(serviceProduct, nil)
		d.workRepo.On("SaveTree", mock.Anything, tree).Return(nil)

		resp, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{
			Name:        "Backend",
			ProductID:   &serviceProduct.ID,
			EffortHours: decimal.NewFromFloat(2.5),
		})

		require.NoError(t, err)
		require.Len(t, resp.Children, 1)
		task := resp.Children[0]
		assert.Equal(t, "task", task.Type)
		assert.Equal(t, "service", task.ProductType)
		assert.Equal(t, serviceProduct.ID, *task.ProductID)
		assert.True(t, task.EffortHours.Equal(decimal.NewFromFloat(2.5)))
		assert.True(t, task.ListPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, task.CostPrice.Equal(decimal.NewFromInt(60)), "cost defaults to the product cost")
		assert.Equal(t, 1, task.Sequence)

		added := tree.Added()
		require.Len(t, added, 1, "only the new node is inserted")
		d.workRepo.AssertExpectations(t)
	})

	t.Run("goods task under a nested parent", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		built := project.NewTree(root)
		phase := newServiceTask(t, companyID, "Phase", 0, 0)
		require.NoError(t, built.Attach(root.ID, phase))
		tree := loadedTree(t, built)

		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(tree, nil)
		d.productRepo.On("FindByIDForCompany", mock.Anything, companyID, goodsProduct.ID).Return(goodsProduct, nil)
		d.uomRepo.On("FindByCode", mock.Anything, "U").Return(unit, nil)
		d.workRepo.On("SaveTree", mock.Anything, tree).Return(nil)

		resp, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{
			ParentID:    &phase.ID,
			Name:        "Cabling",
			ProductType: "goods",
			ProductID:   &goodsProduct.ID,
			Quantity:    decimal.NewFromInt(12),
			CostPrice:   decimal.NewFromInt(3),
		})

		require.NoError(t, err)
		require.Len(t, resp.Children, 1)
		require.Len(t, resp.Children[0].Children, 1)
		task := resp.Children[0].Children[0]
		assert.Equal(t, "goods", task.ProductType)
		assert.Equal(t, "U", task.Unit, "unit defaults to the product unit")
		assert.True(t, task.Quantity.Equal(decimal.NewFromInt(12)))
		assert.True(t, task.CostPrice.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, phase.ID, *task.ParentID)
		assert.Equal(t, root.ID, task.RootID)
	})

	t.Run("parent outside the project", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, project.NewTree(root)), nil)

		stranger := uuid.New()
		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{ParentID: &stranger, Name: "Lost"})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "INVALID_PARENT"))
		d.workRepo.AssertNotCalled(t, "SaveTree", mock.Anything, mock.Anything)
	})

	t.Run("goods task needs a product", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, project.NewTree(root)), nil)

		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{Name: "Cabling", ProductType: "goods"})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "INVALID_PRODUCT"))
	})

	t.Run("service task refuses a goods product", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, project.NewTree(root)), nil)
		d.productRepo.On("FindByIDForCompany", mock.Anything, companyID, goodsProduct.ID).Return(goodsProduct, nil)

		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{Name: "Cabling", ProductID: &goodsProduct.ID})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "INVALID_PRODUCT"))
	})

	t.Run("unknown product", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		missing := uuid.New()
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, project.NewTree(root)), nil)
		d.productRepo.On("FindByIDForCompany", mock.Anything, companyID, missing).Return(nil, shared.ErrNotFound)

		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{Name: "Ghost", ProductID: &missing})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "PRODUCT_NOT_FOUND"))
	})

	t.Run("effort beyond the duration range", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, project.NewTree(root)), nil)

		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{Name: "Forever", EffortHours: decimal.NewFromInt(3_000_000)})

		require.Error(t, err)
		assert.True(t, shared.HasCode(err, "INVALID_EFFORT"))
		d.workRepo.AssertNotCalled(t, "SaveTree", mock.Anything, mock.Anything)
	})

	t.Run("stale tree is reported", func(t *testing.T) {
		d := newTestDeps()
		root := newRoot(t, companyID)
		tree := loadedTree(t, project.NewTree(root))
		d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(tree, nil)
		d.workRepo.On("SaveTree", mock.Anything, tree).Return(shared.ErrConcurrencyConflict)

		_, err := d.svc.AddTask(ctx, companyID, root.ID, AddTaskRequest{Name: "Backend", EffortHours: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestWorkService_Cost(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	d := newTestDeps()

	root := newRoot(t, companyID)
	built := project.NewTree(root)

	// fed by a sale line costing 30 per hour
	design := newServiceTask(t, companyID, "Design", 2*time.Hour, 50)
	lineID := uuid.New()
	design.LinkSaleLine(lineID)
	require.NoError(t, built.Attach(root.ID, design))

	// 3 units at 10 plus its child
	cabling, err := project.NewWork(companyID, project.WorkTypeTask, "Cabling")
	require.NoError(t, err)
	require.NoError(t, cabling.SetGoods(uuid.New(), "U", decimal.NewFromInt(3), decimal.Zero))
	require.NoError(t, cabling.SetPrices(decimal.Zero, decimal.NewFromInt(10)))
	require.NoError(t, built.Attach(root.ID, cabling))

	qa := newServiceTask(t, companyID, "Testing", time.Hour, 20)
	require.NoError(t, built.Attach(cabling.ID, qa))

	d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(loadedTree(t, built), nil)
	d.saleRepo.On("FindLinesByTasks", mock.Anything, companyID, []uuid.UUID{design.ID}).Return([]sale.SaleLine{
		{ID: lineID, CostPrice: decimal.NewFromInt(30)},
	}, nil)

	resp, err := d.svc.Cost(ctx, companyID, root.ID)

	require.NoError(t, err)
	assert.Equal(t, root.ID, resp.ProjectID)
	require.Len(t, resp.Nodes, 4)

	costs := make(map[uuid.UUID]decimal.Decimal)
	for _, n := range resp.Nodes {
		costs[n.ID] = n.Cost
	}
	assert.True(t, costs[design.ID].Equal(decimal.NewFromInt(60)), "linked task uses the line cost: %s", costs[design.ID])
	assert.True(t, costs[qa.ID].Equal(decimal.NewFromInt(20)))
	assert.True(t, costs[cabling.ID].Equal(decimal.NewFromInt(50)), "own cost plus children: %s", costs[cabling.ID])
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(110)), "total: %s", resp.Total)
	d.saleRepo.AssertExpectations(t)
}

func TestWorkService_Copy(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	d := newTestDeps()

	root := newRoot(t, companyID)
	built := project.NewTree(root)
	phase := newServiceTask(t, companyID, "Phase", 0, 0)
	require.NoError(t, built.Attach(root.ID, phase))
	task := newServiceTask(t, companyID, "Design", 3*time.Hour, 45)
	task.LinkSaleLine(uuid.New())
	task.Progress = decimal.NewFromFloat(0.5)
	require.NoError(t, built.Attach(phase.ID, task))
	original := loadedTree(t, built)

	var saved *project.Tree
	d.workRepo.On("FindTree", mock.Anything, companyID, root.ID).Return(original, nil)
	d.workRepo.On("SaveTree", mock.Anything, mock.AnythingOfType("*project.Tree")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*project.Tree) }).
		Return(nil)
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := d.svc.Copy(ctx, companyID, root.ID)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 3, saved.Len())
	assert.Len(t, saved.Added(), 3, "every node of the copy is new")

	assert.NotEqual(t, root.ID, resp.ID)
	assert.Equal(t, root.Name, resp.Name)
	require.Len(t, resp.Children, 1)
	require.Len(t, resp.Children[0].Children, 1)
	copiedTask := resp.Children[0].Children[0]
	assert.NotEqual(t, task.ID, copiedTask.ID)
	assert.Equal(t, resp.ID, copiedTask.RootID)
	assert.Equal(t, resp.Children[0].ID, *copiedTask.ParentID)
	assert.Empty(t, copiedTask.SaleLineIDs, "sale links are not copied")
	assert.True(t, copiedTask.Progress.IsZero())
	assert.True(t, copiedTask.EffortHours.Equal(decimal.NewFromInt(3)))

	// the original is untouched
	assert.Len(t, task.SaleLineIDs, 1)
	d.publisher.AssertExpectations(t)
}
