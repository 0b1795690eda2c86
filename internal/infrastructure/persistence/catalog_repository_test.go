package persistence

import (
	"context"
	"testing"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	service, err := catalog.NewProduct(companyID, "svc-dev", "Development", catalog.ProductTypeService, "H")
	require.NoError(t, err)
	goods, err := catalog.NewProduct(companyID, "CABLE", "Network cable", catalog.ProductTypeGoods, "U")
	require.NoError(t, err)
	goods.Salable = false
	goods.ListPrice = decimal.RequireFromString("12.5")
	require.NoError(t, repo.Save(ctx, service))
	require.NoError(t, repo.Save(ctx, goods))

	t.Run("round trips a product", func(t *testing.T) {
		found, err := repo.FindByIDForCompany(ctx, companyID, goods.ID)
		require.NoError(t, err)
		assert.Equal(t, "CABLE", found.Code)
		assert.False(t, found.Salable)
		assert.True(t, found.Active)
		assert.True(t, found.ListPrice.Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, "U", found.DefaultUoMCode)
	})

	t.Run("loads several products and skips unknown IDs", func(t *testing.T) {
		products, err := repo.FindByIDs(ctx, companyID, []uuid.UUID{service.ID, goods.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = repo.FindByIDs(ctx, uuid.New(), []uuid.UUID{service.ID})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("checks codes case-insensitively", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, companyID, "svc-dev")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, uuid.New(), "SVC-DEV")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("filters by type", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["type"] = string(catalog.ProductTypeService)

		products, err := repo.FindAllForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, service.ID, products[0].ID)

		count, err := repo.CountForCompany(ctx, companyID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := repo.FindByIDForCompany(ctx, companyID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUoMRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUoMRepository(db)
	ctx := context.Background()

	units := []valueobject.UoM{
		valueobject.MustNewUoM("H", "Hour", valueobject.CategoryTime, decimal.NewFromInt(3600), 2),
		valueobject.MustNewUoM("S", "Second", valueobject.CategoryTime, decimal.NewFromInt(1), 0),
		valueobject.MustNewUoM("U", "Unit", valueobject.CategoryUnit, decimal.NewFromInt(1), 0),
	}
	require.NoError(t, repo.SaveAll(ctx, units))

	t.Run("lists by category then rate", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "S", all[0].Code())
		assert.Equal(t, "H", all[1].Code())
		assert.Equal(t, "U", all[2].Code())
	})

	t.Run("upserts by code", func(t *testing.T) {
		renamed := valueobject.MustNewUoM("H", "Hours", valueobject.CategoryTime, decimal.NewFromInt(3600), 3)
		require.NoError(t, repo.SaveAll(ctx, []valueobject.UoM{renamed}))

		h, err := repo.FindByCode(ctx, "h")
		require.NoError(t, err)
		assert.Equal(t, "Hours", h.Name())
		assert.Equal(t, int32(3), h.Digits())
		assert.True(t, h.Rate().Equal(decimal.NewFromInt(3600)))
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, "LY")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
