// Package telemetry wires OpenTelemetry instrumentation into the database
// layer.
package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	ServiceName     string
	SlowQueryThresh time.Duration
}

// DefaultDBTracingConfig returns the default database tracing configuration.
// Query variables are never included in spans.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		ServiceName:     "retailcore-backend",
		SlowQueryThresh: 200 * time.Millisecond,
	}
}

// DBTracing registers otelgorm spans plus a slow query marker on a GORM
// connection
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing creates a new DBTracing
func NewDBTracing(cfg DBTracingConfig, logger *zap.Logger) *DBTracing {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracing{config: cfg, logger: logger}
}

// Register installs the otelgorm plugin and the slow query callbacks.
// A no-op when tracing is disabled.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.config.Enabled {
		t.logger.Debug("database tracing disabled")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(t.config.ServiceName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	if err := t.registerTimingCallbacks(db); err != nil {
		return err
	}

	t.logger.Info("database tracing enabled",
		zap.Duration("slow_query_threshold", t.config.SlowQueryThresh))
	return nil
}

type contextKey string

const queryStartKey contextKey = "db_query_start"

func (t *DBTracing) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

// after annotates the active span with row counts and table name, marks
// errors, and flags queries slower than the threshold
func (t *DBTracing) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		elapsed := time.Since(start)
		if elapsed > t.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}

func (t *DBTracing) registerTimingCallbacks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("db_timing:before_create", t.before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("db_timing:after_create", t.after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("db_timing:before_query", t.before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("db_timing:after_query", t.after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("db_timing:before_update", t.before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("db_timing:after_update", t.after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("db_timing:before_delete", t.before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("db_timing:after_delete", t.after); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("db_timing:before_row", t.before); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("db_timing:after_row", t.after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("db_timing:before_raw", t.before); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("db_timing:after_raw", t.after)
}
