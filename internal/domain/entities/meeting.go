package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingSource tells where a meeting's transcript came from
type MeetingSource string

const (
	MeetingSourceText   MeetingSource = "text"   // Pasted transcript
	MeetingSourceUpload MeetingSource = "upload" // Uploaded audio/video or text file
	MeetingSourceLive   MeetingSource = "live"   // Captions captured from a live call
)

const (
	DefaultMeetingTitle = "Untitled Meeting"
	DefaultMeetingType  = "Team meeting"
)

// Meeting is the persisted meeting record: transcript plus its resolved summary
type Meeting struct {
	ID          uuid.UUID                         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string                            `json:"title" gorm:"type:varchar(200);not null"`
	MeetingType string                            `json:"meeting_type" gorm:"type:varchar(100);not null"`
	Source      MeetingSource                     `json:"source" gorm:"type:varchar(20);not null;default:'text'"`
	Transcript  string                            `json:"transcript" gorm:"type:text"`
	FileObject  *string                           `json:"file_object,omitempty" gorm:"type:text"`
	Summary     datatypes.JSONType[SummaryRecord] `json:"summary" gorm:"type:jsonb;not null"`
	Provider    string                            `json:"provider" gorm:"type:varchar(50)"`
	Fallback    bool                              `json:"fallback" gorm:"default:false"`
	CreatedAt   time.Time                         `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting with defaults applied to empty title and type
func NewMeeting(title, meetingType string, source MeetingSource) *Meeting {
	if title == "" {
		title = DefaultMeetingTitle
	}
	if meetingType == "" {
		meetingType = DefaultMeetingType
	}
	return &Meeting{
		ID:          uuid.New(),
		Title:       title,
		MeetingType: meetingType,
		Source:      source,
		Summary:     datatypes.NewJSONType(NoTranscriptSummary()),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// SetSummary normalizes and stores the summary record
func (m *Meeting) SetSummary(rec SummaryRecord) {
	rec.Normalize()
	m.Summary = datatypes.NewJSONType(rec)
}

// SummaryRecord returns the stored summary
func (m *Meeting) SummaryRecord() SummaryRecord {
	return m.Summary.Data()
}
