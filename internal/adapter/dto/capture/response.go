package capture

import "time"

// CaptureResponse represents a live capture job
type CaptureResponse struct {
	ID            string     `json:"id"`
	MeetURL       string     `json:"meet_url"`
	Title         string     `json:"title"`
	MeetingType   string     `json:"meeting_type"`
	Status        string     `json:"status"`
	MeetingID     *string    `json:"meeting_id,omitempty"`
	FragmentCount int        `json:"fragment_count"`
	LastError     *string    `json:"last_error,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
