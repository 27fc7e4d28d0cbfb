package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks everything the server needs before it starts listening.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Store.Backend == StoreBackendRedis {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cfg.Sweep.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}
