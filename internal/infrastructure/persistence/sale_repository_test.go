package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_FindByIDForCompany_SQL(t *testing.T) {
	t.Run("scopes the lookup to the company", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		saleID := uuid.New()

		// scopes are applied after the explicit conditions
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id = \$1 AND company_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(saleID, companyID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		s, err := repo.FindByIDForCompany(context.Background(), companyID, saleID)

		assert.Nil(t, s)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the database for lines of no task", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		lines, err := repo.FindLinesByTasks(context.Background(), uuid.New(), nil)

		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	s := newTestSale(t, companyID, "SO-00001")
	parent := addTestLine(t, s, nil, "Consulting", 5, "H")
	child := addTestLine(t, s, &parent, "Workshop", 3, "H")
	require.NoError(t, repo.Save(ctx, s))

	t.Run("loads the sale with its line tree", func(t *testing.T) {
		found, err := repo.FindByIDForCompany(ctx, companyID, s.ID)
		require.NoError(t, err)

		assert.Equal(t, "SO-00001", found.Number)
		assert.Equal(t, sale.StateDraft, found.State)
		assert.Equal(t, 1, found.Version)
		require.Len(t, found.Lines, 2)

		line, ok := found.Line(child)
		require.True(t, ok)
		require.NotNil(t, line.ParentID)
		assert.Equal(t, parent, *line.ParentID)
		assert.True(t, line.Quantity.Equal(s.Lines[1].Quantity))
		assert.Equal(t, "H", line.UnitCode)
	})

	t.Run("hides the sale from other companies", func(t *testing.T) {
		_, err := repo.FindByIDForCompany(ctx, uuid.New(), s.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	s := newTestSale(t, companyID, "SO-00001")
	first := addTestLine(t, s, nil, "Consulting", 5, "H")
	second := addTestLine(t, s, nil, "Travel", 1, "U")
	require.NoError(t, repo.Save(ctx, s))

	t.Run("bumps the version and syncs lines", func(t *testing.T) {
		require.NoError(t, s.RemoveLine(second))
		taskID := uuid.New()
		require.NoError(t, s.LinkTask(first, taskID))
		require.NoError(t, s.Update("Updated"))

		require.NoError(t, repo.SaveWithLock(ctx, s))
		assert.Equal(t, 2, s.Version)

		found, err := repo.FindByIDForCompany(ctx, companyID, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
		assert.Equal(t, "Updated", found.Description)
		require.Len(t, found.Lines, 1)
		require.NotNil(t, found.Lines[0].TaskID)
		assert.Equal(t, taskID, *found.Lines[0].TaskID)
	})

	t.Run("refuses a stale copy", func(t *testing.T) {
		stale, err := repo.FindByIDForCompany(ctx, companyID, s.ID)
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, s))

		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("unknown sale", func(t *testing.T) {
		ghost := newTestSale(t, companyID, "SO-99999")
		err := repo.SaveWithLock(ctx, ghost)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_FindAllForCompany(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	for _, number := range []string{"SO-00001", "SO-00002", "SO-00003"} {
		s := newTestSale(t, companyID, number)
		if number == "SO-00002" {
			require.NoError(t, s.Quote())
		}
		require.NoError(t, repo.Save(ctx, s))
	}
	require.NoError(t, repo.Save(ctx, newTestSale(t, uuid.New(), "SO-00001")))

	t.Run("filters by state", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["state"] = "quotation"

		sales, err := repo.FindAllForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "SO-00002", sales[0].Number)
	})

	t.Run("searches and paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "so-0000"
		filter.OrderBy = "number"
		filter.OrderDir = "asc"
		filter.PageSize = 2

		sales, err := repo.FindAllForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, "SO-00001", sales[0].Number)

		count, err := repo.CountForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestGormSaleRepository_ProjectLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	workID := uuid.New()
	taskID := uuid.New()

	linked := newTestSale(t, companyID, "SO-00001")
	lineID := addTestLine(t, linked, nil, "Consulting", 5, "H")
	require.NoError(t, linked.LinkTask(lineID, taskID))
	linked.WorkID = &workID
	require.NoError(t, repo.Save(ctx, linked))

	other := newTestSale(t, uuid.New(), "SO-00001")
	otherLine := addTestLine(t, other, nil, "Consulting", 1, "H")
	require.NoError(t, other.LinkTask(otherLine, taskID))
	require.NoError(t, repo.Save(ctx, other))

	t.Run("finds lines by task within the company", func(t *testing.T) {
		lines, err := repo.FindLinesByTasks(ctx, companyID, []uuid.UUID{taskID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, lineID, lines[0].ID)
		assert.Equal(t, linked.ID, lines[0].SaleID)
	})

	t.Run("finds sales by work", func(t *testing.T) {
		sales, err := repo.FindByWork(ctx, companyID, workID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, linked.ID, sales[0].ID)
		assert.Len(t, sales[0].Lines, 1)
	})
}

func TestGormSaleRepository_GenerateNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	number, err := repo.GenerateNumber(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, "SO-00001", number)

	require.NoError(t, repo.Save(ctx, newTestSale(t, companyID, number)))
	require.NoError(t, repo.Save(ctx, newTestSale(t, companyID, "SO-00041")))

	number, err = repo.GenerateNumber(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, "SO-00042", number)

	number, err = repo.GenerateNumber(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "SO-00001", number)
}
