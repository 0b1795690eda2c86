package salesync

import (
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
	"github.com/stretchr/testify/require"
)

var (
	testCompanyID = uuid.New()
	testPartyID   = uuid.New()
)

type fixture struct {
	sync    *Synchronizer
	service *catalog.Product
	goods   *catalog.Product
	hidden  *catalog.Product
}

func testUnits() []valueobject.UoM {
	return []valueobject.UoM{
		valueobject.MustNewUoM("S", "Second", valueobject.CategoryTime, decimal.NewFromInt(1), 0),
		valueobject.MustNewUoM("MIN", "Minute", valueobject.CategoryTime, decimal.NewFromInt(60), 2),
		valueobject.MustNewUoM("H", "Hour", valueobject.CategoryTime, decimal.NewFromInt(3600), 2),
		valueobject.MustNewUoM("D", "Day", valueobject.CategoryTime, decimal.NewFromInt(86400), 2),
		valueobject.MustNewUoM("U", "Unit", valueobject.CategoryUnit, decimal.NewFromInt(1), 0),
		valueobject.MustNewUoM("DZ", "Dozen", valueobject.CategoryUnit, decimal.NewFromInt(12), 2),
		valueobject.MustNewUoM("KG", "Kilogram", valueobject.CategoryWeight, decimal.NewFromInt(1), 3),
	}
}

func newFixture(t *testing.T) *fixture {
	service, err := catalog.NewProduct(testCompanyID, "SRV-DEV", "Development", catalog.ProductTypeService, "H")
	require.NoError(t, err)
	require.NoError(t, service.SetPrices(decimal.NewFromInt(80), decimal.NewFromInt(45)))

	goods, err := catalog.NewProduct(testCompanyID, "GDS-CABLE", "Cable", catalog.ProductTypeGoods, "U")
	require.NoError(t, err)
	require.NoError(t, goods.SetPrices(decimal.NewFromInt(10), decimal.NewFromInt(4)))

	hidden, err := catalog.NewProduct(testCompanyID, "SRV-INT", "Internal", catalog.ProductTypeService, "H")
	require.NoError(t, err)
	hidden.SetSalable(false)

	c := NewCatalog([]catalog.Product{*service, *goods, *hidden}, testUnits(), DefaultUnits())
	return &fixture{sync: New(c), service: service, goods: goods, hidden: hidden}
}

func newSale(t *testing.T) *sale.Sale {
	s, err := sale.NewSale(testCompanyID, "SO-0001", testPartyID, "ACME")
	require.NoError(t, err)
	require.NoError(t, s.SetMethods(sale.InvoiceMethodManual, sale.ShipmentMethodManual))
	return s
}

func addServiceLine(t *testing.T, s *sale.Sale, parent *uuid.UUID, desc string, qty int64, unit string) uuid.UUID {
	line, err := s.AddLine(sale.LineSpec{
		Type:        sale.LineTypeLine,
		ParentID:    parent,
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		UnitCode:    unit,
		UnitPrice:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	return line.ID
}

func line(t *testing.T, s *sale.Sale, id uuid.UUID) sale.SaleLine {
	l, ok := s.Line(id)
	require.True(t, ok)
	return l
}

func newProjectTree(t *testing.T, _ *fixture, s *sale.Sale) *project.Tree {
	root, err := NewProjectForSale(s)
	require.NoError(t, err)
	return project.NewTree(root)
}

// ============================================
// Sale to project
// ============================================

func TestNewProjectForSale(t *testing.T) {
	s := newSale(t)

	root, err := NewProjectForSale(s)
	require.NoError(t, err)
	assert.Equal(t, "SO-0001", root.Name)
	assert.True(t, root.IsProject())
	assert.True(t, root.IsRoot())
	assert.Equal(t, testPartyID, *root.PartyID)
	assert.Equal(t, project.InvoiceMethodProgress, root.ProjectInvoiceMethod)
	assert.True(t, root.IsService())
	assert.True(t, root.Quantity.IsZero())
}

func TestTaskFromLine(t *testing.T) {
	f := newFixture(t)
	s := newSale(t)

	t.Run("service line in hours", func(t *testing.T) {
		id := addServiceLine(t, s, nil, "Design", 2, "H")
		l := line(t, s, id)
		task, err := f.sync.TaskFromLine(s, &l)
		require.NoError(t, err)
		assert.Equal(t, project.WorkTypeTask, task.Type)
		assert.Equal(t, "Design", task.Name)
		assert.Equal(t, 2*time.Hour, task.EffortDuration)
		assert.True(t, task.Quantity.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, testPartyID, *task.PartyID)
		assert.True(t, task.ListPrice.Equal(decimal.NewFromInt(50)))
	})

	t.Run("service line in minutes", func(t *testing.T) {
		id := addServiceLine(t, s, nil, "Call", 90, "MIN")
		l := line(t, s, id)
		task, err := f.sync.TaskFromLine(s, &l)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, task.EffortDuration)
		assert.True(t, task.Quantity.Equal(decimal.NewFromFloat(1.5)))
	})

	t.Run("service line in a non time unit", func(t *testing.T) {
		id := addServiceLine(t, s, nil, "Odd", 2, "U")
		l := line(t, s, id)
		_, err := f.sync.TaskFromLine(s, &l)
		assert.True(t, shared.HasCode(err, sale.ErrCodeUnsupportedServiceUnit))
	})

	t.Run("line without unit", func(t *testing.T) {
		id := addServiceLine(t, s, nil, "No unit", 2, "")
		l := line(t, s, id)
		_, err := f.sync.TaskFromLine(s, &l)
		assert.True(t, shared.HasCode(err, sale.ErrCodeMissingUnit))
	})

	t.Run("goods line", func(t *testing.T) {
		pid := f.goods.ID
		l, err := s.AddLine(sale.LineSpec{
			Type:      sale.LineTypeLine,
			ProductID: &pid,
			Quantity:  decimal.NewFromInt(4),
			UnitCode:  "U",
			UnitPrice: decimal.NewFromInt(10),
			CostPrice: decimal.NewFromInt(4),
		})
		require.NoError(t, err)
		task, err := f.sync.TaskFromLine(s, l)
		require.NoError(t, err)
		assert.Equal(t, "Cable", task.Name)
		assert.False(t, task.IsService())
		assert.Equal(t, f.goods.ID, *task.ProductGoodsID)
		assert.Equal(t, "U", task.UoMCode)
		assert.True(t, task.Quantity.Equal(decimal.NewFromInt(4)))
		assert.True(t, task.CostPrice.Equal(decimal.NewFromInt(4)))
	})

	t.Run("title line", func(t *testing.T) {
		l, err := s.AddLine(sale.LineSpec{Type: sale.LineTypeTitle, Description: "Phase 1"})
		require.NoError(t, err)
		node, err := f.sync.TaskFromLine(s, l)
		require.NoError(t, err)
		assert.True(t, node.IsProject())
		assert.Equal(t, "Phase 1", node.Name)
	})

	t.Run("comment line", func(t *testing.T) {
		l, err := s.AddLine(sale.LineSpec{Type: sale.LineTypeComment, Description: "Note"})
		require.NoError(t, err)
		node, err := f.sync.TaskFromLine(s, l)
		require.NoError(t, err)
		assert.Nil(t, node)
	})
}

func TestCreateProjectFromSale_NestedLines(t *testing.T) {
	f := newFixture(t)
	s := newSale(t)
	parent := addServiceLine(t, s, nil, "Parent", 5, "H")
	child := addServiceLine(t, s, &parent, "Child", 3, "H")
	tree := newProjectTree(t, f, s)

	result, err := f.sync.CreateProjectFromSale(s, tree, nil)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Updated)

	root := tree.Root()
	top := tree.Children(root.ID)
	require.Len(t, top, 1)
	assert.Equal(t, "Parent", top[0].Name)
	assert.Equal(t, 5*time.Hour, top[0].EffortDuration)

	below := tree.Children(top[0].ID)
	require.Len(t, below, 1)
	assert.Equal(t, "Child", below[0].Name)
	assert.Equal(t, 3*time.Hour, below[0].EffortDuration)

	assert.Equal(t, top[0].ID, *line(t, s, parent).TaskID)
	assert.Equal(t, below[0].ID, *line(t, s, child).TaskID)
	assert.Equal(t, []uuid.UUID{parent}, top[0].SaleLineIDs)
	assert.Equal(t, root.ID, below[0].RootID)
}

func TestCreateProjectFromSale_Idempotent(t *testing.T) {
	f := newFixture(t)
	s := newSale(t)
	parent := addServiceLine(t, s, nil, "Parent", 5, "H")
	addServiceLine(t, s, &parent, "Child", 3, "H")
	tree := newProjectTree(t, f, s)

	_, err := f.sync.CreateProjectFromSale(s, tree, nil)
	require.NoError(t, err)
	size := tree.Len()

	result, err := f.sync.CreateProjectFromSale(s, tree, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Equal(t, size, tree.Len())

	top := tree.Children(tree.Root().ID)
	require.Len(t, top, 1)
	assert.Equal(t, 5*time.Hour, top[0].EffortDuration)
	assert.Equal(t, []uuid.UUID{parent}, top[0].SaleLineIDs)
}

func TestCreateProjectFromSale_SkippedLines(t *testing.T) {
	f := newFixture(t)

	t.Run("lines below a title line are not mirrored", func(t *testing.T) {
		s := newSale(t)
		title, err := s.AddLine(sale.LineSpec{Type: sale.LineTypeTitle, Description: "Phase"})
		require.NoError(t, err)
		child := addServiceLine(t, s, &title.ID, "Work", 2, "H")
		tree := newProjectTree(t, f, s)

		result, err := f.sync.CreateProjectFromSale(s, tree, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Nil(t, line(t, s, title.ID).TaskID)
		assert.Nil(t, line(t, s, child).TaskID)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("lines below a zero quantity line are not mirrored", func(t *testing.T) {
		s := newSale(t)
		empty := addServiceLine(t, s, nil, "Nothing", 0, "H")
		below := addServiceLine(t, s, &empty, "Something", 1, "H")
		tree := newProjectTree(t, f, s)

		result, err := f.sync.CreateProjectFromSale(s, tree, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Nil(t, line(t, s, empty).TaskID)
		assert.Nil(t, line(t, s, below).TaskID)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("siblings of skipped lines are still mirrored", func(t *testing.T) {
		s := newSale(t)
		title, err := s.AddLine(sale.LineSpec{Type: sale.LineTypeTitle, Description: "Phase"})
		require.NoError(t, err)
		addServiceLine(t, s, &title.ID, "Hidden", 2, "H")
		visible := addServiceLine(t, s, nil, "Visible", 4, "H")
		tree := newProjectTree(t, f, s)

		result, err := f.sync.CreateProjectFromSale(s, tree, nil)
		require.NoError(t, err)
		require.Len(t, result.Created, 1)
		assert.Equal(t, "Visible", result.Created[0].Name)
		assert.Equal(t, result.Created[0].ID, *line(t, s, visible).TaskID)
		assert.Equal(t, 2, tree.Len())
	})
}

func TestCreateProjectFromSale_EffortOutOfRange(t *testing.T) {
	f := newFixture(t)

	t.Run("single line too large", func(t *testing.T) {
		s := newSale(t)
		addServiceLine(t, s, nil, "Forever", 3_000_000, "H")
		tree := newProjectTree(t, f, s)

		_, err := f.sync.CreateProjectFromSale(s, tree, nil)
		assert.True(t, shared.HasCode(err, sale.ErrCodeEffortOutOfRange), "got %v", err)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("linked lines summing past the limit", func(t *testing.T) {
		s := newSale(t)
		first := addServiceLine(t, s, nil, "Half", 2_000_000, "H")
		tree := newProjectTree(t, f, s)
		_, err := f.sync.CreateProjectFromSale(s, tree, nil)
		require.NoError(t, err)

		second := addServiceLine(t, s, nil, "Other half", 2_000_000, "H")
		require.NoError(t, s.LinkTask(second, *line(t, s, first).TaskID))

		_, err = f.sync.CreateProjectFromSale(s, tree, nil)
		assert.True(t, shared.HasCode(err, sale.ErrCodeEffortOutOfRange), "got %v", err)
	})
}

func TestCreateProjectFromSale_Aggregation(t *testing.T) {
	f := newFixture(t)
	pid := f.goods.ID

	setup := func(t *testing.T) (*sale.Sale, *project.Tree, *project.Work) {
		s := newSale(t)
		l, err := s.AddLine(sale.LineSpec{
			Type:      sale.LineTypeLine,
			ProductID: &pid,
			Quantity:  decimal.NewFromInt(2),
			UnitCode:  "U",
			UnitPrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		tree := newProjectTree(t, f, s)
		_, err = f.sync.CreateProjectFromSale(s, tree, nil)
		require.NoError(t, err)
		task, ok := tree.Node(*line(t, s, l.ID).TaskID)
		require.True(t, ok)
		return s, tree, task
	}

	t.Run("sums lines of other sales", func(t *testing.T) {
		s, tree, task := setup(t)
		other := sale.SaleLine{
			ID: uuid.New(), SaleID: uuid.New(), Type: sale.LineTypeLine, ProductID: &pid,
			Quantity: decimal.NewFromInt(1), UnitCode: "DZ", TaskID: &task.ID,
		}

		result, err := f.sync.CreateProjectFromSale(s, tree, []sale.SaleLine{other})
		require.NoError(t, err)
		assert.Equal(t, []*project.Work{task}, result.Updated)
		assert.True(t, task.Quantity.Equal(decimal.NewFromInt(14)), "got %s", task.Quantity)
	})

	t.Run("rejects lines of another unit category", func(t *testing.T) {
		s, tree, task := setup(t)
		other := sale.SaleLine{
			ID: uuid.New(), SaleID: uuid.New(), Type: sale.LineTypeLine, ProductID: &pid,
			Quantity: decimal.NewFromInt(1), UnitCode: "KG", TaskID: &task.ID,
		}

		_, err := f.sync.CreateProjectFromSale(s, tree, []sale.SaleLine{other})
		assert.True(t, shared.HasCode(err, "UOM_CATEGORY_MISMATCH"))
	})

	t.Run("rejects a task with another product", func(t *testing.T) {
		s := newSale(t)
		tree := newProjectTree(t, f, s)
		task, err := project.NewWork(testCompanyID, project.WorkTypeTask, "Dev")
		require.NoError(t, err)
		sid := f.service.ID
		require.NoError(t, task.SetService(&sid, time.Hour))
		require.NoError(t, tree.Attach(tree.Root().ID, task))

		l, err := s.AddLine(sale.LineSpec{
			Type: sale.LineTypeLine, ProductID: &pid, Quantity: decimal.NewFromInt(1), UnitCode: "U",
		})
		require.NoError(t, err)
		require.NoError(t, s.LinkTask(l.ID, task.ID))

		_, err = f.sync.CreateProjectFromSale(s, tree, nil)
		assert.True(t, shared.HasCode(err, sale.ErrCodeTaskProductMismatch))
	})
}

func TestCreateProjectFromSale_ForeignTask(t *testing.T) {
	f := newFixture(t)
	s := newSale(t)
	id := addServiceLine(t, s, nil, "Dev", 1, "H")
	require.NoError(t, s.LinkTask(id, uuid.New()))
	tree := newProjectTree(t, f, s)

	_, err := f.sync.CreateProjectFromSale(s, tree, nil)
	assert.True(t, shared.HasCode(err, sale.ErrCodeInvalidWork))
}

// ============================================
// Project to sale
// ============================================

func buildProject(t *testing.T, f *fixture) (*project.Tree, *project.Work, *project.Work) {
	root, err := project.NewProject(testCompanyID, "Website", nil)
	require.NoError(t, err)
	tree := project.NewTree(root)

	sid := f.service.ID
	parent, err := project.NewWork(testCompanyID, project.WorkTypeTask, "Parent")
	require.NoError(t, err)
	require.NoError(t, parent.SetService(&sid, 5*time.Hour))
	require.NoError(t, tree.Attach(root.ID, parent))

	child, err := project.NewWork(testCompanyID, project.WorkTypeTask, "Child")
	require.NoError(t, err)
	require.NoError(t, child.SetService(&sid, 3*time.Hour))
	require.NoError(t, child.SetPrices(decimal.NewFromInt(60), decimal.Zero))
	require.NoError(t, tree.Attach(parent.ID, child))

	return tree, parent, child
}

func linkedSale(t *testing.T, tree *project.Tree) *sale.Sale {
	s := newSale(t)
	require.NoError(t, s.SetWork(tree.Root()))
	return s
}

func TestCreateLinesFromProject(t *testing.T) {
	f := newFixture(t)
	tree, parent, child := buildProject(t, f)
	s := linkedSale(t, tree)

	created, err := f.sync.CreateLinesFromProject(s, tree)
	require.NoError(t, err)
	require.Len(t, created, 2)

	top := line(t, s, created[0])
	assert.Nil(t, top.ParentID)
	assert.Equal(t, parent.ID, *top.TaskID)
	assert.Equal(t, "Parent", top.Description)
	assert.True(t, top.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "H", top.UnitCode)
	assert.True(t, top.UnitPrice.Equal(decimal.NewFromInt(80)), "falls back to the product price")
	assert.True(t, top.CostPrice.Equal(decimal.NewFromInt(45)))

	sub := line(t, s, created[1])
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, top.ID, *sub.ParentID, "parent is the line of the parent task")
	assert.NotEqual(t, tree.Root().ID, *sub.ParentID)
	assert.Equal(t, child.ID, *sub.TaskID)
	assert.True(t, sub.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, sub.UnitPrice.Equal(decimal.NewFromInt(60)))

	assert.Equal(t, []uuid.UUID{top.ID}, parent.SaleLineIDs)
}

func TestCreateLinesFromProject_Titles(t *testing.T) {
	f := newFixture(t)
	tree, parent, _ := buildProject(t, f)
	phase, err := project.NewWork(testCompanyID, project.WorkTypeProject, "Phase 2")
	require.NoError(t, err)
	require.NoError(t, tree.Attach(tree.Root().ID, phase))
	s := linkedSale(t, tree)

	created, err := f.sync.CreateLinesFromProject(s, tree)
	require.NoError(t, err)
	require.Len(t, created, 3)

	title := line(t, s, created[2])
	assert.Equal(t, sale.LineTypeTitle, title.Type)
	assert.Equal(t, "Phase 2", title.Description)
	assert.Equal(t, phase.ID, *title.TaskID)
	assert.Equal(t, parent.ID, *line(t, s, created[0]).TaskID)
}

func TestCreateLinesFromProject_Rejects(t *testing.T) {
	f := newFixture(t)

	t.Run("sale with lines", func(t *testing.T) {
		tree, _, _ := buildProject(t, f)
		s := linkedSale(t, tree)
		addServiceLine(t, s, nil, "Existing", 1, "H")

		_, err := f.sync.CreateLinesFromProject(s, tree)
		assert.True(t, shared.HasCode(err, sale.ErrCodeCannotLoadProject))
	})

	t.Run("sale without project", func(t *testing.T) {
		tree, _, _ := buildProject(t, f)
		_, err := f.sync.CreateLinesFromProject(newSale(t), tree)
		assert.True(t, shared.HasCode(err, sale.ErrCodeCannotLoadProject))
	})

	t.Run("non salable product", func(t *testing.T) {
		tree, parent, _ := buildProject(t, f)
		hid := f.hidden.ID
		require.NoError(t, parent.SetService(&hid, time.Hour))
		s := linkedSale(t, tree)

		_, err := f.sync.CreateLinesFromProject(s, tree)
		assert.True(t, shared.HasCode(err, sale.ErrCodeProductNotSalable))
		assert.ErrorContains(t, err, "Internal")
		assert.ErrorContains(t, err, "Parent")
	})

	t.Run("goods task without unit", func(t *testing.T) {
		tree, parent, _ := buildProject(t, f)
		parent.InvoiceProductType = project.InvoiceProductGoods
		parent.UoMCode = ""
		parent.ProductGoodsID = nil
		parent.SetQuantity(decimal.NewFromInt(1))
		s := linkedSale(t, tree)

		_, err := f.sync.CreateLinesFromProject(s, tree)
		assert.True(t, shared.HasCode(err, sale.ErrCodeMissingUnit))
	})
}

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)
	tree, parent, child := buildProject(t, f)
	s := linkedSale(t, tree)
	size := tree.Len()

	_, err := f.sync.CreateLinesFromProject(s, tree)
	require.NoError(t, err)

	result, err := f.sync.CreateProjectFromSale(s, tree, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Updated, 2)
	assert.Equal(t, size, tree.Len())
	assert.Equal(t, 5*time.Hour, parent.EffortDuration)
	assert.Equal(t, 3*time.Hour, child.EffortDuration)
	assert.Equal(t, parent.ID, tree.Parent(child.ID).ID)
}
