package catalog

import (
	"testing"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(companyID, "svc-dev", "Development", ProductTypeService, "h")
		require.NoError(t, err)

		assert.Equal(t, companyID, product.CompanyID)
		assert.Equal(t, "SVC-DEV", product.Code)
		assert.Equal(t, "H", product.DefaultUoMCode)
		assert.True(t, product.Salable)
		assert.True(t, product.Active)
		assert.True(t, product.IsService())
		assert.True(t, product.ListPrice.IsZero())
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(companyID, "BOLT", "Bolt", ProductTypeGoods, "U")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, ProductTypeGoods, event.Type)
		assert.Equal(t, companyID, event.CompanyID())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name     string
			code     string
			prodName string
			typ      ProductType
			uom      string
			wantCode string
		}{
			{"empty code", "", "Bolt", ProductTypeGoods, "U", "INVALID_CODE"},
			{"bad characters", "BO@LT", "Bolt", ProductTypeGoods, "U", "INVALID_CODE"},
			{"empty name", "BOLT", "", ProductTypeGoods, "U", "INVALID_NAME"},
			{"unknown type", "BOLT", "Bolt", ProductType("rental"), "U", "INVALID_PRODUCT_TYPE"},
			{"no unit", "BOLT", "Bolt", ProductTypeGoods, " ", "INVALID_UNIT"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewProduct(companyID, tt.code, tt.prodName, tt.typ, tt.uom)
				require.Error(t, err)
				assert.True(t, shared.HasCode(err, tt.wantCode), "got %v", err)
			})
		}
	})
}

func TestProduct_SetPrices(t *testing.T) {
	product, err := NewProduct(uuid.New(), "BOLT", "Bolt", ProductTypeGoods, "U")
	require.NoError(t, err)

	require.NoError(t, product.SetPrices(decimal.NewFromInt(12), decimal.NewFromInt(7)))
	assert.True(t, decimal.NewFromInt(12).Equal(product.ListPrice))
	assert.True(t, decimal.NewFromInt(7).Equal(product.CostPrice))

	err = product.SetPrices(decimal.NewFromInt(-1), decimal.Zero)
	assert.True(t, shared.HasCode(err, "INVALID_PRICE"))
}

func TestProduct_CanBeSold(t *testing.T) {
	product, err := NewProduct(uuid.New(), "BOLT", "Bolt", ProductTypeGoods, "U")
	require.NoError(t, err)
	assert.True(t, product.CanBeSold())

	product.SetSalable(false)
	assert.False(t, product.CanBeSold())

	product.SetSalable(true)
	require.NoError(t, product.Deactivate())
	assert.False(t, product.CanBeSold())
	assert.Error(t, product.Deactivate())
}
