package project

import (
	"testing"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	companyID := uuid.New()
	partyID := uuid.New()

	t.Run("creates a root of project type", func(t *testing.T) {
		w, err := NewProject(companyID, "Website", &partyID)
		require.NoError(t, err)

		assert.Equal(t, WorkTypeProject, w.Type)
		assert.Equal(t, w.ID, w.RootID)
		assert.True(t, w.IsRoot())
		assert.True(t, w.IsService())
		assert.Equal(t, &partyID, w.PartyID)

		events := w.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProjectCreated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProject(companyID, "", nil)
		assert.True(t, shared.HasCode(err, "INVALID_NAME"))
	})
}

func TestWork_BilledQuantity(t *testing.T) {
	w, err := NewWork(uuid.New(), WorkTypeTask, "Design")
	require.NoError(t, err)

	require.NoError(t, w.SetService(nil, 90*time.Minute))
	assert.True(t, decimal.NewFromFloat(1.5).Equal(w.BilledQuantity()))
	assert.True(t, w.HasQuantity())

	productID := uuid.New()
	require.NoError(t, w.SetGoods(productID, "U", decimal.NewFromInt(4), decimal.NewFromInt(10)))
	assert.False(t, w.IsService())
	assert.True(t, decimal.NewFromInt(4).Equal(w.BilledQuantity()))
	assert.Equal(t, &productID, w.SaleProductID())

	assert.True(t, shared.HasCode(w.SetGoods(productID, "", decimal.Zero, decimal.Zero), "INVALID_UNIT"))
	assert.True(t, shared.HasCode(w.SetService(nil, -time.Second), "INVALID_EFFORT"))
}

func TestWork_LinkSaleLine(t *testing.T) {
	w, err := NewWork(uuid.New(), WorkTypeTask, "Design")
	require.NoError(t, err)

	lineID := uuid.New()
	w.LinkSaleLine(lineID)
	w.LinkSaleLine(lineID)
	assert.Equal(t, []uuid.UUID{lineID}, w.SaleLineIDs)
	assert.True(t, w.HasSaleLines())
}

func TestWork_Copy(t *testing.T) {
	w, err := NewWork(uuid.New(), WorkTypeTask, "Design")
	require.NoError(t, err)
	w.LinkSaleLine(uuid.New())
	w.Progress = decimal.NewFromFloat(0.5)

	c := w.Copy()
	assert.NotEqual(t, w.ID, c.ID)
	assert.Equal(t, c.ID, c.RootID)
	assert.Nil(t, c.ParentID)
	assert.Empty(t, c.SaleLineIDs)
	assert.True(t, c.Progress.IsZero())
	assert.Equal(t, w.Name, c.Name)
	assert.Len(t, w.SaleLineIDs, 1)
}

func TestWork_ReplaceParty(t *testing.T) {
	oldParty, newParty, other := uuid.New(), uuid.New(), uuid.New()

	w, _ := NewWork(uuid.New(), WorkTypeTask, "A")
	w.PartyID = &oldParty
	assert.True(t, w.ReplaceParty(&oldParty, newParty))
	assert.Equal(t, newParty, *w.PartyID)

	foreign, _ := NewWork(uuid.New(), WorkTypeTask, "B")
	foreign.PartyID = &other
	assert.False(t, foreign.ReplaceParty(&oldParty, newParty))
	assert.Equal(t, other, *foreign.PartyID)
}
