package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// captureJobRepository implements the CaptureJobRepository interface
type captureJobRepository struct {
	db *gorm.DB
}

// NewCaptureJobRepository creates a new capture job repository
func NewCaptureJobRepository(db *gorm.DB) repositories.CaptureJobRepository {
	return &captureJobRepository{db: db}
}

// Create creates a new capture job
func (r *captureJobRepository) Create(ctx context.Context, job *entities.CaptureJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID retrieves a capture job by ID
func (r *captureJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.CaptureJob, error) {
	var job entities.CaptureJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrCaptureJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ListPending retrieves the oldest pending jobs
func (r *captureJobRepository) ListPending(ctx context.Context, limit int) ([]entities.CaptureJob, error) {
	var jobs []entities.CaptureJob
	if limit == 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.CaptureJobStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Claim atomically moves a pending job to capturing
func (r *captureJobRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.CaptureJob{}).
		Where("id = ? AND status = ?", id, entities.CaptureJobStatusPending).
		Updates(map[string]interface{}{
			"status":     entities.CaptureJobStatusCapturing,
			"started_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus updates the status of a capture job
func (r *captureJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.CaptureJobStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.CaptureJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// MarkCompleted links the stored meeting and completes the job
func (r *captureJobRepository) MarkCompleted(ctx context.Context, id, meetingID uuid.UUID, fragmentCount int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.CaptureJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         entities.CaptureJobStatusCompleted,
			"meeting_id":     meetingID,
			"fragment_count": fragmentCount,
			"completed_at":   now,
			"updated_at":     now,
		}).Error
}

// MarkFailed marks a job as failed with error message
func (r *captureJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, fragmentCount int, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.CaptureJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         entities.CaptureJobStatusFailed,
			"fragment_count": fragmentCount,
			"last_error":     errMsg,
			"completed_at":   now,
			"updated_at":     now,
		}).Error
}

// FailStale fails jobs a crashed worker left in flight
func (r *captureJobRepository) FailStale(ctx context.Context, cutoff time.Time, errMsg string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.CaptureJob{}).
		Where("status IN ? AND updated_at < ?",
			[]entities.CaptureJobStatus{entities.CaptureJobStatusCapturing, entities.CaptureJobStatusSummarizing},
			cutoff).
		Updates(map[string]interface{}{
			"status":       entities.CaptureJobStatusFailed,
			"last_error":   errMsg,
			"completed_at": now,
			"updated_at":   now,
		})
	return result.RowsAffected, result.Error
}
