//go:build !gcloud

package eventrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
)

const notificationMeasurement = "notification_event"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.NotificationEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "notification event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, notification event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "notification event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordEvents(ctx context.Context, records []domain.NotificationEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		if err := r.writeAPI.WritePoint(ctx, toPoint(record)); err != nil {
			slog.WarnContext(ctx, "failed to write notification event to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("kind", record.Kind),
				slog.String("reminder_id", record.ReminderID),
			)
		}
	}

	return nil
}

func toPoint(record domain.NotificationEventRecord) *write.Point {
	occurredAt := record.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return influxdb2.NewPoint(
		notificationMeasurement,
		map[string]string{
			"kind":     record.Kind,
			"owner_id": record.OwnerID,
		},
		map[string]any{
			"reminder_id":     record.ReminderID,
			"distance_meters": record.DistanceMeters,
			"due_unix":        record.DueDate.Unix(),
			"lead_seconds":    record.DueDate.Sub(occurredAt).Seconds(),
		},
		occurredAt,
	)
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
