package entities

import (
	"time"

	"github.com/google/uuid"
)

// CaptureJobStatus represents the status of a live caption capture job
type CaptureJobStatus string

const (
	CaptureJobStatusPending     CaptureJobStatus = "pending"     // Waiting for a worker
	CaptureJobStatusCapturing   CaptureJobStatus = "capturing"   // Polling captions from the call
	CaptureJobStatusSummarizing CaptureJobStatus = "summarizing" // Transcript captured, extracting summary
	CaptureJobStatusCompleted   CaptureJobStatus = "completed"   // Meeting record stored
	CaptureJobStatusFailed      CaptureJobStatus = "failed"      // Capture produced nothing or crashed
)

// CaptureJob tracks one live call from join request to stored meeting
type CaptureJob struct {
	ID            uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetURL       string           `json:"meet_url" gorm:"type:text;not null"`
	Title         string           `json:"title" gorm:"type:varchar(200);not null"`
	MeetingType   string           `json:"meeting_type" gorm:"type:varchar(100);not null"`
	Status        CaptureJobStatus `json:"status" gorm:"type:varchar(30);not null;index;default:'pending'"`
	MeetingID     *uuid.UUID       `json:"meeting_id,omitempty" gorm:"type:uuid"`
	FragmentCount int              `json:"fragment_count" gorm:"default:0"`
	LastError     *string          `json:"last_error,omitempty" gorm:"type:text"`
	StartedAt     *time.Time       `json:"started_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CaptureJob) TableName() string {
	return "capture_jobs"
}

// NewCaptureJob creates a pending capture job
func NewCaptureJob(meetURL, title, meetingType string) *CaptureJob {
	if title == "" {
		title = "Live Meeting Capture"
	}
	if meetingType == "" {
		meetingType = DefaultMeetingType
	}
	return &CaptureJob{
		ID:          uuid.New(),
		MeetURL:     meetURL,
		Title:       title,
		MeetingType: meetingType,
		Status:      CaptureJobStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// IsTerminal reports whether the job has finished
func (j *CaptureJob) IsTerminal() bool {
	return j.Status == CaptureJobStatusCompleted || j.Status == CaptureJobStatusFailed
}
