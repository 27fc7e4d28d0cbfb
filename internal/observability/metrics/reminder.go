package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	sweepRuns             metric.Int64Counter
	sweepDuration         metric.Float64Histogram
	notificationsEmitted  metric.Int64Counter
	notificationFailures  metric.Int64Counter
	proximityChecks       metric.Int64Counter
	proximityMatches      metric.Int64Counter
	proximityCheckLatency metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	sweepRuns, err := meter.Int64Counter(
		"reminder_due_sweep_runs_total",
		metric.WithDescription("Total number of due-time sweeps"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	sweepDuration, err := meter.Float64Histogram(
		"reminder_due_sweep_duration_seconds",
		metric.WithDescription("Due-time sweep duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	notificationsEmitted, err := meter.Int64Counter(
		"reminder_notifications_total",
		metric.WithDescription("Total number of notifications emitted"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationFailures, err := meter.Int64Counter(
		"reminder_notification_failures_total",
		metric.WithDescription("Total number of reminders whose notification or flag update failed"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	proximityChecks, err := meter.Int64Counter(
		"reminder_proximity_checks_total",
		metric.WithDescription("Total number of proximity checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	proximityMatches, err := meter.Int64Counter(
		"reminder_proximity_matches_total",
		metric.WithDescription("Total number of reminders triggered by proximity"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	proximityCheckLatency, err := meter.Float64Histogram(
		"reminder_proximity_check_duration_seconds",
		metric.WithDescription("Proximity check duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		sweepRuns:             sweepRuns,
		sweepDuration:         sweepDuration,
		notificationsEmitted:  notificationsEmitted,
		notificationFailures:  notificationFailures,
		proximityChecks:       proximityChecks,
		proximityMatches:      proximityMatches,
		proximityCheckLatency: proximityCheckLatency,
	}, nil
}

func (m *ReminderMetrics) RecordSweep(ctx context.Context, outcome string, duration time.Duration) {
	m.sweepRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.sweepDuration.Record(ctx, duration.Seconds())
}

func (m *ReminderMetrics) RecordNotificationEmitted(ctx context.Context, kind string) {
	m.notificationsEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *ReminderMetrics) RecordNotificationFailure(ctx context.Context, kind, stage string) {
	m.notificationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("stage", stage),
	))
}

func (m *ReminderMetrics) RecordProximityCheck(ctx context.Context, scoped bool, matched int, duration time.Duration) {
	m.proximityChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("scoped", scoped),
	))
	if matched > 0 {
		m.proximityMatches.Add(ctx, int64(matched))
	}
	m.proximityCheckLatency.Record(ctx, duration.Seconds())
}
