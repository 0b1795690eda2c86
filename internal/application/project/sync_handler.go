package project

import (
	"context"
	"fmt"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProjectSyncedHandler reacts to the sale/project synchronizations. It counts
// the nodes and lines each one wrote and logs it.
type ProjectSyncedHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewProjectSyncedHandler creates a new handler. metrics may be nil.
func NewProjectSyncedHandler(metrics *telemetry.BusinessMetrics) *ProjectSyncedHandler {
	return &ProjectSyncedHandler{metrics: metrics}
}

// EventTypes returns the event types this handler is interested in
func (h *ProjectSyncedHandler) EventTypes() []string {
	return []string{
		sale.EventTypeProjectCreatedFromSale,
		sale.EventTypeSaleLinesLoadedFromProject,
	}
}

// Handle processes a ProjectSyncedEvent
func (h *ProjectSyncedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	synced, ok := event.(*sale.ProjectSyncedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %T", sale.EventTypeProjectCreatedFromSale, event)
	}

	var direction telemetry.SyncDirection
	switch event.EventType() {
	case sale.EventTypeProjectCreatedFromSale:
		direction = telemetry.SyncSaleToProject
	case sale.EventTypeSaleLinesLoadedFromProject:
		direction = telemetry.SyncProjectToSale
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if h.metrics != nil {
		h.metrics.RecordSyncedNodes(ctx, event.CompanyID(), direction,
			synced.TasksCreated, synced.TasksUpdated, synced.LinesCreated)
	}

	logger.L(ctx).Info("sale and project synchronized",
		zap.String("event_id", event.EventID().String()),
		zap.String("direction", string(direction)),
		zap.String("company_id", event.CompanyID().String()),
		zap.String("sale_id", synced.SaleID.String()),
		zap.String("project_id", synced.ProjectID.String()),
		zap.Int("tasks_created", synced.TasksCreated),
		zap.Int("tasks_updated", synced.TasksUpdated),
		zap.Int("lines_created", synced.LinesCreated),
	)
	return nil
}

// Ensure ProjectSyncedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ProjectSyncedHandler)(nil)
