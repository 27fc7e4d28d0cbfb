//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Validate requires the full Cloud Tasks queue coordinates; the gcloud build
// has no disabled-push mode.
func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		value string
		err   error
	}{
		{c.GCloudProjectID, ErrGCloudProjectIDMissing},
		{c.GCloudLocationID, ErrGCloudLocationIDMissing},
		{c.GCloudQueueID, ErrGCloudQueueIDMissing},
		{c.GCloudTargetURL, ErrGCloudTargetURLMissing},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, r.err)
		}
	}
	if c.MaxRetries <= 0 {
		errs = append(errs, ErrInvalidMaxRetries)
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
