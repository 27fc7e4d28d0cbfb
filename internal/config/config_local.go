//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; push delivery is then disabled.
func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL != "" && c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	return nil
}
