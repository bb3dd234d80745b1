package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
)

// ActionItemResponse is one extracted task
type ActionItemResponse struct {
	Task    string `json:"task"`
	Owner   string `json:"owner"`
	DueDate string `json:"due_date"`
}

// AgendaItemResponse is one agenda topic
type AgendaItemResponse struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// SummaryResponse is the structured meeting summary
type SummaryResponse struct {
	Summary     string               `json:"summary"`
	KeyPoints   []string             `json:"key_points"`
	Decisions   []string             `json:"decisions"`
	ActionItems []ActionItemResponse `json:"action_items"`
	Agenda      []AgendaItemResponse `json:"agenda"`
}

// MeetingResponse represents a stored meeting
type MeetingResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	MeetingType string          `json:"meeting_type"`
	Source      string          `json:"source"`
	Transcript  string          `json:"transcript"`
	HasUpload   bool            `json:"has_upload"`
	Summary     SummaryResponse `json:"summary"`
	Provider    string          `json:"provider,omitempty"`
	Fallback    bool            `json:"fallback"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MeetingListItem is the short form used in listings
type MeetingListItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MeetingType string    `json:"meeting_type"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// MeetingListResponse represents a paginated meeting list
type MeetingListResponse struct {
	Meetings   []*MeetingListItem         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}
