//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-reminder/internal/config"
	"github.com/KasumiMercury/primind-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-reminder/internal/observability/logging"
)

func initTaskQueue(ctx context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	cloudTasksClient, err := taskqueue.NewCloudTasksClient(ctx, taskqueue.CloudTasksConfig{
		ProjectID:  cfg.TaskQueue.GCloudProjectID,
		LocationID: cfg.TaskQueue.GCloudLocationID,
		QueueID:    cfg.TaskQueue.GCloudQueueID,
		TargetURL:  cfg.TaskQueue.GCloudTargetURL,
		MaxRetries: cfg.TaskQueue.MaxRetries,
		Endpoint:   cfg.TaskQueue.GCloudEndpoint,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("push task queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.TaskQueue.GCloudProjectID),
		slog.String("location", cfg.TaskQueue.GCloudLocationID),
		slog.String("queue", cfg.TaskQueue.GCloudQueueID),
		slog.String("target_url", cfg.TaskQueue.GCloudTargetURL),
	)

	return cloudTasksClient, cloudTasksClient.Close, nil
}

// Cloud Run sets K_SERVICE and K_REVISION.
func platformIdentity() identity {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return identity{
		serviceName: envOr("K_SERVICE", defaultServiceName),
		env:         logging.Environment(envOr("ENV", string(logging.EnvProd))),
		revision:    os.Getenv("K_REVISION"),
		projectID:   projectID,
	}
}
