package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue hands a notification to the push delivery worker.
type TaskQueue interface {
	EnqueueNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	Close() error
}
