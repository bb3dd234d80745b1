package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// CaptureJobRepository defines the interface for live capture job data access
type CaptureJobRepository interface {
	Create(ctx context.Context, job *entities.CaptureJob) error

	// FindByID returns entities.ErrCaptureJobNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.CaptureJob, error)

	// ListPending returns the oldest pending jobs
	ListPending(ctx context.Context, limit int) ([]entities.CaptureJob, error)

	// Claim moves a job from pending to capturing. It reports false when
	// another worker claimed the job first.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.CaptureJobStatus) error
	MarkCompleted(ctx context.Context, id, meetingID uuid.UUID, fragmentCount int) error
	MarkFailed(ctx context.Context, id uuid.UUID, fragmentCount int, errMsg string) error

	// FailStale fails jobs left capturing or summarizing since before cutoff
	FailStale(ctx context.Context, cutoff time.Time, errMsg string) (int64, error)
}
