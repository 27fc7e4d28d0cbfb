package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

// withRetry runs op up to maxRetries times with exponential backoff.
func withRetry[T any](ctx context.Context, maxRetries int, task *NotificationTask, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying task registration",
				slog.String("reminder_id", task.ReminderID),
				slog.String("owner_id", task.OwnerID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := op(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for task registration",
		slog.String("reminder_id", task.ReminderID),
		slog.String("owner_id", task.OwnerID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return zero, fmt.Errorf("failed to register task after %d retries: %w", maxRetries, lastErr)
}
