package database

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/utafrali/storefront-api/pkg/database"

var slowOpCfg struct {
	mu        sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}

// SetSlowOperationLogging logs every store operation slower than threshold
// as a warning. A zero threshold turns it off.
func SetSlowOperationLogging(threshold time.Duration, logger *slog.Logger) {
	slowOpCfg.mu.Lock()
	defer slowOpCfg.mu.Unlock()
	slowOpCfg.threshold = threshold
	slowOpCfg.logger = logger
}

func slowOperationConfig() (time.Duration, *slog.Logger) {
	slowOpCfg.mu.RLock()
	defer slowOpCfg.mu.RUnlock()
	return slowOpCfg.threshold, slowOpCfg.logger
}

// Operation describes one store call.
type Operation struct {
	System     string // mongodb, postgresql, redis, memory
	Name       string // e.g. find, insert
	Collection string
}

// TraceOperation opens a client span for op and returns the function that
// closes it. The closer also records OperationDuration and handles slow
// operation logging:
//
//	ctx, end := database.TraceOperation(ctx, database.Operation{System: "mongodb", Name: "find", Collection: "product"})
//	defer func() { end(err) }()
//
// Errors matching any of ignore (such as a not-found sentinel) are not marked
// as span errors.
func TraceOperation(ctx context.Context, op Operation, ignore ...error) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, op.System+"."+op.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", op.System),
			attribute.String("db.operation", op.Name),
			attribute.String("db.collection.name", op.Collection),
		),
	)

	return ctx, func(err error) {
		elapsed := time.Since(start)

		status := "ok"
		if err != nil && !matchesAny(err, ignore) {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			OperationErrors.WithLabelValues(op.System, op.Name, op.Collection).Inc()
		}
		span.End()
		OperationDuration.WithLabelValues(op.System, op.Name, op.Collection, status).Observe(elapsed.Seconds())

		threshold, logger := slowOperationConfig()
		if threshold <= 0 || logger == nil || elapsed < threshold {
			return
		}
		attrs := []any{
			slog.String("system", op.System),
			slog.String("operation", op.Name),
			slog.String("collection", op.Collection),
			slog.Duration("duration", elapsed),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		logger.WarnContext(ctx, "slow store operation", attrs...)
	}
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
