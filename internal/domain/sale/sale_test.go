package sale

import (
	"testing"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCompanyID = uuid.New()
	testPartyID   = uuid.New()
)

func createTestSale(t *testing.T) *Sale {
	s, err := NewSale(testCompanyID, "SO-0001", testPartyID, "ACME")
	require.NoError(t, err)
	return s
}

func createManualSale(t *testing.T) *Sale {
	s := createTestSale(t)
	require.NoError(t, s.SetMethods(InvoiceMethodManual, ShipmentMethodManual))
	return s
}

func addLine(t *testing.T, s *Sale, parent *uuid.UUID, desc string, qty int64) uuid.UUID {
	line, err := s.AddLine(LineSpec{
		Type:        LineTypeLine,
		ParentID:    parent,
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		UnitCode:    "H",
		UnitPrice:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	return line.ID
}

// ============================================
// State Tests
// ============================================

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from State
		to   State
		want bool
	}{
		{StateDraft, StateQuotation, true},
		{StateDraft, StateConfirmed, false},
		{StateQuotation, StateConfirmed, true},
		{StateQuotation, StateDraft, true},
		{StateConfirmed, StateProcessing, true},
		{StateProcessing, StateProcessing, true},
		{StateProcessing, StateDone, true},
		{StateDone, StateDraft, true},
		{StateDone, StateCancelled, false},
		{StateCancelled, StateDraft, true},
		{StateCancelled, StateQuotation, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewSale(t *testing.T) {
	s := createTestSale(t)
	assert.Equal(t, StateDraft, s.State)
	assert.Equal(t, InvoiceMethodOrder, s.InvoiceMethod)
	assert.Equal(t, ShipmentMethodOrder, s.ShipmentMethod)
	assert.False(t, s.HasProject())
	require.Len(t, s.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeSaleCreated, s.GetDomainEvents()[0].EventType())

	_, err := NewSale(testCompanyID, "", testPartyID, "ACME")
	assert.True(t, shared.HasCode(err, "INVALID_NUMBER"))
	_, err = NewSale(testCompanyID, "SO-1", uuid.Nil, "ACME")
	assert.True(t, shared.HasCode(err, "INVALID_PARTY"))
}

// ============================================
// Project field rules
// ============================================

func TestSale_ProjectFields(t *testing.T) {
	t.Run("readonly unless methods are manual", func(t *testing.T) {
		s := createTestSale(t)
		err := s.SetCreateProject(true)
		assert.True(t, shared.HasCode(err, ErrCodeProjectReadonly))
	})

	t.Run("setting work clears create project", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))

		w, err := project.NewProject(testCompanyID, "P", &testPartyID)
		require.NoError(t, err)
		require.NoError(t, s.SetWork(w))
		assert.Equal(t, w.ID, *s.WorkID)
		assert.False(t, s.CreateProject)
	})

	t.Run("create project clears work", func(t *testing.T) {
		s := createManualSale(t)
		w, _ := project.NewProject(testCompanyID, "P", nil)
		require.NoError(t, s.SetWork(w))
		require.NoError(t, s.SetCreateProject(true))
		assert.Nil(t, s.WorkID)
		assert.True(t, s.CreateProject)
	})

	t.Run("leaving manual methods drops project fields", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))
		require.NoError(t, s.SetMethods(InvoiceMethodOrder, ShipmentMethodManual))
		assert.False(t, s.CreateProject)
		assert.Nil(t, s.WorkID)
	})

	t.Run("work must be a project root of the same company and party", func(t *testing.T) {
		s := createManualSale(t)
		otherParty := uuid.New()

		task, _ := project.NewWork(testCompanyID, project.WorkTypeTask, "T")
		foreign, _ := project.NewProject(uuid.New(), "F", nil)
		otherCustomer, _ := project.NewProject(testCompanyID, "O", &otherParty)

		for _, w := range []*project.Work{task, foreign, otherCustomer} {
			assert.True(t, shared.HasCode(s.SetWork(w), ErrCodeInvalidWork), w.Name)
		}
	})

	t.Run("readonly after quotation", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.Quote())
		require.NoError(t, s.Confirm())
		assert.True(t, shared.HasCode(s.SetCreateProject(true), ErrCodeProjectReadonly))
	})
}

// ============================================
// Transitions
// ============================================

func TestSale_QuoteChecksProject(t *testing.T) {
	t.Run("manual methods with create project passes", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))
		require.NoError(t, s.Quote())
		assert.Equal(t, StateQuotation, s.State)
		assert.NotNil(t, s.QuotedAt)
	})

	t.Run("non manual invoice method with create project fails", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))
		// bypass the on-change rule the way a direct data import would
		s.InvoiceMethod = InvoiceMethodOrder

		err := s.Quote()
		require.Error(t, err)
		assert.True(t, shared.HasCode(err, ErrCodeProjectMethods))
		assert.Contains(t, err.Error(), `"SO-0001"`)
		assert.Equal(t, StateDraft, s.State)
	})

	t.Run("confirm checks again", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))
		require.NoError(t, s.Quote())
		s.ShipmentMethod = ShipmentMethodOrder
		assert.True(t, shared.HasCode(s.Confirm(), ErrCodeProjectMethods))
	})

	t.Run("sale without project is not checked", func(t *testing.T) {
		s := createTestSale(t)
		require.NoError(t, s.Quote())
		require.NoError(t, s.Confirm())
	})
}

func TestSale_Lifecycle(t *testing.T) {
	s := createManualSale(t)
	require.NoError(t, s.Quote())
	require.NoError(t, s.Confirm())
	require.NoError(t, s.Process())
	require.NoError(t, s.Process(), "processing again is allowed")
	require.NoError(t, s.Done())
	assert.Equal(t, StateDone, s.State)

	assert.Error(t, s.Cancel())
	require.NoError(t, s.Draft(true))
	assert.Equal(t, StateDraft, s.State)
	assert.Nil(t, s.ConfirmedAt)

	var types []string
	for _, e := range s.GetDomainEvents() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{
		EventTypeSaleCreated, EventTypeSaleQuoted, EventTypeSaleConfirmed,
		EventTypeSaleProcessed, EventTypeSaleProcessed, EventTypeSaleDone, EventTypeSaleResetToDraft,
	}, types)
}

func TestSale_DraftGuard(t *testing.T) {
	done := func(t *testing.T) *Sale {
		s := createTestSale(t)
		require.NoError(t, s.Quote())
		require.NoError(t, s.Confirm())
		require.NoError(t, s.Process())
		require.NoError(t, s.Done())
		return s
	}

	t.Run("not enforced", func(t *testing.T) {
		s := done(t)
		require.NotNil(t, s.ProcessedAt)
		require.NotNil(t, s.DoneAt)
		require.NoError(t, s.Draft(false))

		assert.Equal(t, StateDraft, s.State)
		assert.Nil(t, s.QuotedAt)
		assert.Nil(t, s.ConfirmedAt)
		assert.Nil(t, s.ProcessedAt)
		assert.Nil(t, s.DoneAt)
		assert.Nil(t, s.CancelledAt)
	})

	t.Run("enforced rejects non manual methods", func(t *testing.T) {
		s := done(t)
		err := s.Draft(true)
		assert.True(t, shared.HasCode(err, ErrCodeBackToDraft))
		assert.Equal(t, StateDone, s.State)
	})

	t.Run("processing cannot go back to draft", func(t *testing.T) {
		s := createTestSale(t)
		require.NoError(t, s.Quote())
		require.NoError(t, s.Confirm())
		require.NoError(t, s.Process())
		assert.True(t, shared.HasCode(s.Draft(false), "INVALID_STATE"))
	})
}

// ============================================
// Lines
// ============================================

func TestSale_Lines(t *testing.T) {
	s := createTestSale(t)
	parent := addLine(t, s, nil, "Parent", 5)
	child := addLine(t, s, &parent, "Child", 3)
	second := addLine(t, s, nil, "Second", 1)

	assert.Equal(t, []uuid.UUID{parent, second}, s.ChildLines(nil))
	assert.Equal(t, []uuid.UUID{child}, s.ChildLines(&parent))
	assert.True(t, decimal.NewFromInt(450).Equal(s.TotalAmount()))

	t.Run("cannot move a line below itself", func(t *testing.T) {
		line, _ := s.Line(parent)
		spec := LineSpec{Type: line.Type, ParentID: &child, Description: line.Description, Quantity: line.Quantity}
		assert.True(t, shared.HasCode(s.UpdateLine(parent, spec), "INVALID_PARENT"))
	})

	t.Run("foreign parent is rejected", func(t *testing.T) {
		other := uuid.New()
		_, err := s.AddLine(LineSpec{Type: LineTypeComment, ParentID: &other})
		assert.True(t, shared.HasCode(err, "INVALID_PARENT"))
	})

	t.Run("non line types cannot carry a product", func(t *testing.T) {
		p := uuid.New()
		_, err := s.AddLine(LineSpec{Type: LineTypeTitle, ProductID: &p})
		assert.True(t, shared.HasCode(err, "INVALID_LINE"))
	})

	t.Run("unit codes are normalized", func(t *testing.T) {
		line, err := s.AddLine(LineSpec{Type: LineTypeLine, Description: "Extra", Quantity: decimal.NewFromInt(1), UnitCode: " min "})
		require.NoError(t, err)
		assert.Equal(t, "MIN", line.UnitCode)
		require.NoError(t, s.RemoveLine(line.ID))
	})

	t.Run("remove cascades to children", func(t *testing.T) {
		require.NoError(t, s.RemoveLine(parent))
		assert.Len(t, s.Lines, 1)
		_, ok := s.Line(child)
		assert.False(t, ok)
	})

	t.Run("lines are frozen outside draft", func(t *testing.T) {
		require.NoError(t, s.Quote())
		_, err := s.AddLine(LineSpec{Type: LineTypeComment})
		assert.True(t, shared.HasCode(err, "INVALID_STATE"))
	})
}

func TestSale_CanLoadProject(t *testing.T) {
	s := createManualSale(t)
	assert.False(t, s.CanLoadProject())

	w, _ := project.NewProject(testCompanyID, "P", nil)
	require.NoError(t, s.SetWork(w))
	assert.True(t, s.CanLoadProject())

	addLine(t, s, nil, "L", 1)
	assert.False(t, s.CanLoadProject())
}

func TestSale_Copy(t *testing.T) {
	t.Run("copy drops task links and keeps tree", func(t *testing.T) {
		s := createManualSale(t)
		parent := addLine(t, s, nil, "Parent", 5)
		child := addLine(t, s, &parent, "Child", 3)
		require.NoError(t, s.LinkTask(child, uuid.New()))

		c, err := s.Copy("SO-0002")
		require.NoError(t, err)
		assert.Equal(t, StateDraft, c.State)
		require.Len(t, c.Lines, 2)
		for _, l := range c.Lines {
			assert.Nil(t, l.TaskID)
			assert.Equal(t, c.ID, l.SaleID)
		}
		assert.Equal(t, c.Lines[0].ID, *c.Lines[1].ParentID)
		assert.NotEqual(t, parent, c.Lines[0].ID)
	})

	t.Run("generated project is not shared with the copy", func(t *testing.T) {
		s := createManualSale(t)
		require.NoError(t, s.SetCreateProject(true))
		s.AttachCreatedProject(uuid.New())

		c, err := s.Copy("SO-0003")
		require.NoError(t, err)
		assert.True(t, c.CreateProject)
		assert.Nil(t, c.WorkID)
	})

	t.Run("linked project is kept", func(t *testing.T) {
		s := createManualSale(t)
		w, _ := project.NewProject(testCompanyID, "P", nil)
		require.NoError(t, s.SetWork(w))

		c, err := s.Copy("SO-0004")
		require.NoError(t, err)
		require.NotNil(t, c.WorkID)
		assert.Equal(t, w.ID, *c.WorkID)
	})
}

func TestSale_ChangeParty(t *testing.T) {
	s := createTestSale(t)
	newParty := uuid.New()

	require.NoError(t, s.ChangeParty(newParty, "Globex"))
	assert.Equal(t, newParty, s.PartyID)
	assert.Equal(t, "Globex", s.PartyName)

	events := s.GetDomainEvents()
	ev, ok := events[len(events)-1].(*SalePartyChangedEvent)
	require.True(t, ok)
	assert.Equal(t, testPartyID, ev.OldPartyID)

	assert.True(t, shared.HasCode(s.ChangeParty(newParty, "Globex"), "INVALID_PARTY"))

	require.NoError(t, s.Cancel())
	assert.True(t, shared.HasCode(s.ChangeParty(uuid.New(), "X"), "INVALID_STATE"))
}
