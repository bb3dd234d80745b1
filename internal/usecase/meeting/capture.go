package meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/caption"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

const (
	captureJobType = "live_capture"
	// captureGrace covers the driver join and the summary call on top of the capture window
	captureGrace = 2 * time.Minute
	staleError   = "capture abandoned by worker"
)

// StartWorkerPool starts the capture workers and the stale job janitor
func (s *meetingService) StartWorkerPool(ctx context.Context) error {
	if s.captures == nil {
		return entities.ErrCaptureDisabled
	}

	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool already running")
	}

	workerCount := s.cfg.Workers
	if workerCount < 1 {
		workerCount = 1
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})

	if s.logger != nil {
		s.logger.Info("🚀 Starting capture worker pool",
			zap.Int("worker_count", workerCount),
		)
	}

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.captureWorker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.cleanupStaleJobs(ctx)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *meetingService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping capture worker pool...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	if s.logger != nil {
		s.logger.Info("✅ Capture worker pool stopped")
	}
	return nil
}

// captureWorker polls for pending capture jobs and runs them one at a time
func (s *meetingService) captureWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	interval := s.cfg.JobPollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Stop the running job when the pool stops
	workerCtx, cancel := context.WithCancel(parentCtx)
	defer cancel()
	go func() {
		select {
		case <-s.workerStopChan:
			cancel()
		case <-workerCtx.Done():
		}
	}()

	if s.logger != nil {
		s.logger.Info("👷 Capture worker started", zap.Int("worker_id", workerID))
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Capture worker stopping", zap.Int("worker_id", workerID))
			}
			return
		case <-parentCtx.Done():
			return
		case <-ticker.C:
			s.pollPending(workerCtx, workerID)
		}
	}
}

// pollPending claims the oldest pending job, if any, and runs it
func (s *meetingService) pollPending(ctx context.Context, workerID int) {
	jobs, err := s.captures.ListPending(ctx, 1)
	if err != nil {
		if s.logger != nil && ctx.Err() == nil {
			s.logger.Error("❌ Failed to poll capture jobs",
				zap.Int("worker_id", workerID),
				zap.Error(err),
			)
		}
		return
	}
	if len(jobs) == 0 {
		return
	}
	job := jobs[0]

	claimed, err := s.captures.Claim(ctx, job.ID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to claim capture job",
				zap.String("capture_id", job.ID.String()),
				zap.Error(err),
			)
		}
		return
	}
	if !claimed {
		if s.logger != nil {
			s.logger.Info("⏭️ Capture job already claimed by another worker",
				zap.String("capture_id", job.ID.String()),
			)
		}
		return
	}

	if s.logger != nil {
		s.logger.Info("👷 Worker claimed capture job",
			zap.Int("worker_id", workerID),
			zap.String("capture_id", job.ID.String()),
		)
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, job.ID, captureJobType, workerID, jobcontext.Options{
		Timeout:    s.cfg.Duration + captureGrace,
		MaxRetries: 1,
	})
	defer cancel()

	var (
		meeting   *entities.Meeting
		fragments int
	)
	err = jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		var runErr error
		meeting, fragments, runErr = s.runCapture(ctx, &job)
		return runErr
	})

	// Job bookkeeping outlives the job deadline
	bookCtx, bookCancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer bookCancel()

	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Capture job failed",
				zap.String("capture_id", job.ID.String()),
				zap.Int("fragments", fragments),
				zap.Error(err),
			)
		}
		if markErr := s.captures.MarkFailed(bookCtx, job.ID, fragments, failureMessage(err)); markErr != nil && s.logger != nil {
			s.logger.Error("❌ Failed to mark capture job failed", zap.Error(markErr))
		}
		return
	}

	if markErr := s.captures.MarkCompleted(bookCtx, job.ID, meeting.ID, fragments); markErr != nil && s.logger != nil {
		s.logger.Error("❌ Failed to mark capture job completed", zap.Error(markErr))
		return
	}

	if s.logger != nil {
		s.logger.Info("✅ Capture job completed",
			zap.String("capture_id", job.ID.String()),
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("fragments", fragments),
		)
	}
}

// runCapture joins the call, aggregates captions for the capture window and
// stores the summarized meeting
func (s *meetingService) runCapture(ctx context.Context, job *entities.CaptureJob) (m *entities.Meeting, fragments int, err error) {
	ctx, span := startSpan(ctx, spanCapture, attribute.String(attrCaptureID, job.ID.String()))
	defer func() {
		span.SetAttributes(attribute.Int(attrFragments, fragments))
		endSpan(span, err)
	}()

	jobID := job.ID.String()
	defer func() {
		if clearErr := s.snapshots.Clear(context.WithoutCancel(ctx), jobID); clearErr != nil && s.logger != nil {
			s.logger.Warn("Failed to clear caption snapshot", zap.String("capture_id", jobID), zap.Error(clearErr))
		}
	}()

	if s.driver != nil {
		if err := s.driver.Join(ctx, jobID, job.MeetURL, s.cfg.Duration); err != nil {
			return nil, 0, fmt.Errorf("driver join failed: %w", err)
		}
	}

	session, err := caption.NewSession(caption.SessionConfig{
		PollInterval: s.cfg.PollInterval,
		Duration:     s.cfg.Duration,
	}, s.logger)
	if err != nil {
		return nil, 0, err
	}

	agg := caption.NewAggregator()
	if err := session.RunInto(ctx, caption.NewSnapshotSource(s.snapshots, jobID), agg); err != nil {
		return nil, agg.Len(), err
	}

	fragments = agg.Len()
	if fragments == 0 {
		return nil, 0, entities.ErrNoCaptions
	}

	if err := s.captures.UpdateStatus(ctx, job.ID, entities.CaptureJobStatusSummarizing); err != nil {
		return nil, fragments, fmt.Errorf("failed to update capture status: %w", err)
	}

	m = entities.NewMeeting(job.Title, job.MeetingType, entities.MeetingSourceLive)
	m.Transcript = agg.Transcript()
	s.summarize(ctx, m)

	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fragments, fmt.Errorf("failed to create meeting: %w", err)
	}
	return m, fragments, nil
}

// cleanupStaleJobs fails jobs a crashed worker left capturing or summarizing
func (s *meetingService) cleanupStaleJobs(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-parentCtx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * (s.cfg.Duration + captureGrace))
			n, err := s.captures.FailStale(parentCtx, cutoff, staleError)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to clean up stale capture jobs", zap.Error(err))
				}
				continue
			}
			if n > 0 && s.logger != nil {
				s.logger.Warn("🧹 Failed stale capture jobs", zap.Int64("count", n))
			}
		}
	}
}

// failureMessage keeps the stored job error short for the known cases
func failureMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrNoCaptions):
		return entities.ErrNoCaptions.Error()
	case errors.Is(err, context.Canceled):
		return "capture cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "capture timed out"
	}
	return err.Error()
}
