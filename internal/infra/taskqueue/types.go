package taskqueue

import (
	"fmt"
	"time"
)

const defaultMaxRetries = 3

// NotificationTask is the payload delivered to the push worker.
type NotificationTask struct {
	ReminderID     string    `json:"reminder_id"`
	OwnerID        string    `json:"owner_id"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	DueDate        time.Time `json:"due_date"`
	LocationName   string    `json:"location_name,omitempty"`
	DistanceMeters int64     `json:"distance_meters,omitempty"`

	ScheduleAt time.Time `json:"-"`
}

// TaskID is stable per reminder and trigger kind so a queue that deduplicates
// by name drops repeated triggers of the same notification.
func (t *NotificationTask) TaskID() string {
	return fmt.Sprintf("%s-%s", t.ReminderID, t.Kind)
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
