//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// gcpTraceAttrs is a no-op outside Google Cloud; traces go to the OTLP collector.
func gcpTraceAttrs(_ context.Context, _ string) []slog.Attr {
	return nil
}
