package duesweep

import "time"

// DefaultLookahead is how far ahead of now a reminder may fall due to be notified.
const DefaultLookahead = 5 * time.Minute

type ResultItem struct {
	ReminderID string    `json:"reminder_id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

type Result struct {
	From          time.Time    `json:"from"`
	To            time.Time    `json:"to"`
	MatchedCount  int          `json:"matched_count"`
	NotifiedCount int          `json:"notified_count"`
	FailedCount   int          `json:"failed_count"`
	Results       []ResultItem `json:"results"`
}
