package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// SyncDirection labels which side of a sale and project synchronization was written
type SyncDirection string

const (
	SyncSaleToProject SyncDirection = "sale_to_project"
	SyncProjectToSale SyncDirection = "project_to_sale"
)

// BusinessMetrics records sale and project synchronization metrics.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	saleCreatedTotal    *Counter
	saleAmountTotal     *Counter
	saleTransitionTotal *Counter
	syncTotal           *Counter
	syncFailureTotal    *Counter
	tasksCreatedTotal   *Counter
	tasksUpdatedTotal   *Counter
	linesCreatedTotal   *Counter
	syncDuration        *Histogram
	salesByState        *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	saleProvider SaleMetricsProvider
}

// SaleMetricsProvider reports sale counts without the telemetry layer
// depending on the persistence layer.
type SaleMetricsProvider interface {
	CountSalesByState(ctx context.Context, companyID uuid.UUID) (map[string]int64, error)
}

// CompanyProvider lists the companies to collect gauges for.
type CompanyProvider interface {
	GetActiveCompanyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter        metric.Meter
	Logger       *zap.Logger
	SaleProvider SaleMetricsProvider
}

// ErrMeterNil is returned when no meter is configured.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError is a metrics setup error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// NewBusinessMetrics creates the business instruments on cfg.Meter.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:        cfg.Meter,
		logger:       logger,
		stopChan:     make(chan struct{}),
		saleProvider: cfg.SaleProvider,
	}

	counters := []struct {
		target     **Counter
		name, desc string
		unit       string
	}{
		{&bm.saleCreatedTotal, "erp_sale_created_total", "Total number of sales created", "{sales}"},
		{&bm.saleAmountTotal, "erp_sale_amount_total", "Total amount of created sales in cents", "{cents}"},
		{&bm.saleTransitionTotal, "erp_sale_transition_total", "Total number of sale state transitions", "{transitions}"},
		{&bm.syncTotal, "erp_project_sync_total", "Total number of sale and project synchronizations", "{syncs}"},
		{&bm.syncFailureTotal, "erp_project_sync_failure_total", "Total number of failed synchronizations", "{syncs}"},
		{&bm.tasksCreatedTotal, "erp_project_tasks_created_total", "Project nodes created from sale lines", "{tasks}"},
		{&bm.tasksUpdatedTotal, "erp_project_tasks_updated_total", "Project nodes refreshed from sale lines", "{tasks}"},
		{&bm.linesCreatedTotal, "erp_sale_lines_loaded_total", "Sale lines created from project nodes", "{lines}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	var err error
	bm.syncDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "erp_project_sync_duration_seconds",
		Description: "Duration of sale and project synchronizations",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.salesByState, err = NewGauge(cfg.Meter, "erp_sales_by_state", "Current number of sales per state", "{sales}")
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordSaleCreated counts a new sale and its total amount
func (bm *BusinessMetrics) RecordSaleCreated(ctx context.Context, companyID uuid.UUID, amount decimal.Decimal) {
	company := AttrCompanyID.String(companyID.String())
	bm.saleCreatedTotal.Inc(ctx, company)
	bm.saleAmountTotal.Add(ctx, amount.Mul(decimal.NewFromInt(100)).IntPart(), company)
}

// RecordSaleTransition counts a sale reaching state
func (bm *BusinessMetrics) RecordSaleTransition(ctx context.Context, companyID uuid.UUID, state string) {
	bm.saleTransitionTotal.Inc(ctx,
		AttrCompanyID.String(companyID.String()),
		AttrSaleState.String(state),
	)
}

// RecordProjectSync records a successful synchronization and how long it took
func (bm *BusinessMetrics) RecordProjectSync(ctx context.Context, companyID uuid.UUID, direction SyncDirection, d time.Duration) {
	attrs := syncAttrs(companyID, direction)
	bm.syncTotal.Inc(ctx, attrs...)
	bm.syncDuration.RecordDuration(ctx, d, attrs...)
}

// RecordSyncedNodes counts the project nodes and sale lines a synchronization wrote
func (bm *BusinessMetrics) RecordSyncedNodes(ctx context.Context, companyID uuid.UUID, direction SyncDirection, tasksCreated, tasksUpdated, linesCreated int) {
	attrs := syncAttrs(companyID, direction)
	if tasksCreated > 0 {
		bm.tasksCreatedTotal.Add(ctx, int64(tasksCreated), attrs...)
	}
	if tasksUpdated > 0 {
		bm.tasksUpdatedTotal.Add(ctx, int64(tasksUpdated), attrs...)
	}
	if linesCreated > 0 {
		bm.linesCreatedTotal.Add(ctx, int64(linesCreated), attrs...)
	}
}

func syncAttrs(companyID uuid.UUID, direction SyncDirection) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrCompanyID.String(companyID.String()),
		AttrSyncDirection.String(string(direction)),
	}
}

// RecordSyncFailure counts a failed synchronization, labelled with the domain
// error code when there is one
func (bm *BusinessMetrics) RecordSyncFailure(ctx context.Context, companyID uuid.UUID, direction SyncDirection, err error) {
	attrs := append(syncAttrs(companyID, direction), AttrErrorCode.String(ErrorCode(err)))
	bm.syncFailureTotal.Inc(ctx, attrs...)
}

// ErrorCode returns the domain error code of err, or "internal"
func ErrorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal"
}

// StartPeriodicCollection refreshes the sale gauges every interval until Stop
// is called or ctx ends. It only starts once.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, companies CompanyProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, companies, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, companies CompanyProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectSaleMetrics(ctx, companies)
	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectSaleMetrics(ctx, companies)
		}
	}
}

func (bm *BusinessMetrics) collectSaleMetrics(ctx context.Context, companies CompanyProvider) {
	if bm.saleProvider == nil {
		return
	}
	ids, err := companies.GetActiveCompanyIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to list companies for metrics collection", zap.Error(err))
		return
	}
	for _, id := range ids {
		counts, err := bm.saleProvider.CountSalesByState(ctx, id)
		if err != nil {
			bm.logger.Warn("Failed to count sales", zap.String("company_id", id.String()), zap.Error(err))
			continue
		}
		for state, n := range counts {
			bm.salesByState.Record(ctx, n, AttrCompanyID.String(id.String()), AttrSaleState.String(state))
		}
	}
}

// Stop stops the periodic collection
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}
