package proximity

type TriggeredReminder struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	LocationName string `json:"location_name"`
	// Distance is rounded to whole meters.
	Distance int64 `json:"distance"`
}

type Result struct {
	CandidateCount int                 `json:"candidate_count"`
	FailedCount    int                 `json:"failed_count"`
	Triggered      []TriggeredReminder `json:"reminders"`
}
