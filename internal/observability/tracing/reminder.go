package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-reminder/internal/service"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartDueSweepSpan(ctx context.Context, from, to time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.due_sweep",
		trace.WithAttributes(
			attribute.String("sweep.from", from.Format(time.RFC3339)),
			attribute.String("sweep.to", to.Format(time.RFC3339)),
			attribute.Int64("sweep.lookahead_seconds", int64(to.Sub(from).Seconds())),
		),
	)
}

func StartProximityCheckSpan(ctx context.Context, ownerID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.proximity_check",
		trace.WithAttributes(
			attribute.String("owner_id", ownerID),
			attribute.Bool("scoped", ownerID != ""),
		),
	)
}

func StartStoreOperationSpan(ctx context.Context, system, operation string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.store."+operation,
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDueSweepResult(span trace.Span, matched, notified, failed int, err error) {
	span.SetAttributes(
		attribute.Int("sweep.matched_count", matched),
		attribute.Int("sweep.notified_count", notified),
		attribute.Int("sweep.failed_count", failed),
	)
	recordStatus(span, err)
}

func RecordProximityCheckResult(span trace.Span, candidates, triggered, failed int, err error) {
	span.SetAttributes(
		attribute.Int("proximity.candidate_count", candidates),
		attribute.Int("proximity.triggered_count", triggered),
		attribute.Int("proximity.failed_count", failed),
	)
	recordStatus(span, err)
}

func RecordError(span trace.Span, err error) {
	recordStatus(span, err)
}

func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
