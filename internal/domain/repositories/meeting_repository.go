package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create stores a new meeting with its resolved summary
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting; returns entities.ErrMeetingNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List retrieves meetings, newest first
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// Delete removes a meeting; returns entities.ErrMeetingNotFound when absent
	Delete(ctx context.Context, id uuid.UUID) error
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	MeetingType string
	Source      entities.MeetingSource
	Search      string // Search in title and transcript
	Limit       int
	Offset      int
}
