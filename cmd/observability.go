package main

import (
	"context"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-reminder/internal/observability"
	"github.com/KasumiMercury/primind-reminder/internal/observability/logging"
)

const defaultServiceName = "reminder"

// identity is what the deployment platform tells us about this instance.
type identity struct {
	serviceName string
	env         logging.Environment
	revision    string
	projectID   string
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	id := platformIdentity()

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     id.serviceName,
			Version:  Version,
			Revision: id.revision,
		},
		Environment:   id.env,
		GCPProjectID:  id.projectID,
		SamplingRate:  samplingRate(),
		DefaultModule: serviceModule,
	})
}

// samplingRate reads OTEL_TRACES_SAMPLER_ARG, falling back to sampling everything.
func samplingRate() float64 {
	if raw := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
			return v
		}
	}
	return 1.0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
