package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string
	// TracerProvider overrides the global provider for statement spans
	TracerProvider trace.TracerProvider
}

// DefaultDBTracingConfig returns the default database tracing configuration.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin registers otelgorm and marks slow or failed statements on their spans.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a DBTracingPlugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// RegisterOtelGorm installs the otelgorm plugin and the slow query callbacks on db.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerCallbacks(db, "otel_timing", markStart(queryStartTimeKey), func(string) func(*gorm.DB) {
		return p.afterStatement
	}); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func (p *DBTracingPlugin) afterStatement(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

const (
	queryStartTimeKey     contextKey = "otel_query_start_time"
	dbMetricsStartTimeKey contextKey = "db_metrics_start_time"
)

func markStart(key contextKey) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		db.Statement.Context = context.WithValue(ctx, key, time.Now())
	}
}

// registerCallbacks registers before and after hooks named prefix:before_op and
// prefix:after_op around every GORM processor. after receives the SQL verb of
// the processor, or "" for row and raw statements.
func registerCallbacks(db *gorm.DB, prefix string, before func(*gorm.DB), after func(op string) func(*gorm.DB)) error {
	cb := db.Callback()
	steps := []struct {
		name string
		verb string
		reg  func() (beforeReg, afterReg gormRegisterer)
	}{
		{"create", "INSERT", func() (gormRegisterer, gormRegisterer) {
			return cb.Create().Before("gorm:create"), cb.Create().After("gorm:create")
		}},
		{"query", "SELECT", func() (gormRegisterer, gormRegisterer) {
			return cb.Query().Before("gorm:query"), cb.Query().After("gorm:query")
		}},
		{"update", "UPDATE", func() (gormRegisterer, gormRegisterer) {
			return cb.Update().Before("gorm:update"), cb.Update().After("gorm:update")
		}},
		{"delete", "DELETE", func() (gormRegisterer, gormRegisterer) {
			return cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete")
		}},
		{"row", "", func() (gormRegisterer, gormRegisterer) {
			return cb.Row().Before("gorm:row"), cb.Row().After("gorm:row")
		}},
		{"raw", "", func() (gormRegisterer, gormRegisterer) {
			return cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw")
		}},
	}
	for _, s := range steps {
		b, a := s.reg()
		if err := b.Register(prefix+":before_"+s.name, before); err != nil {
			return err
		}
		if err := a.Register(prefix+":after_"+s.name, after(s.verb)); err != nil {
			return err
		}
	}
	return nil
}

type gormRegisterer interface {
	Register(name string, fn func(*gorm.DB)) error
}
