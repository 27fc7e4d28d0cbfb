//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-reminder/internal/config"
	"github.com/KasumiMercury/primind-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-reminder/internal/observability/logging"
)

// Push delivery is optional locally; without PRIMIND_TASKS_URL notifications
// only reach the log and event recorder sinks.
func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, push notifications disabled")
		return nil, nil, nil
	}

	tq := taskqueue.NewPrimindTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("push task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
		slog.Int("max_retries", cfg.TaskQueue.MaxRetries),
	)

	return tq, tq.Close, nil
}

func platformIdentity() identity {
	return identity{
		serviceName: envOr("SERVICE_NAME", defaultServiceName),
		env:         logging.Environment(envOr("ENV", string(logging.EnvDev))),
		revision:    os.Getenv("REVISION"),
	}
}
