package caption

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// SessionConfig controls polling cadence and the capture window
type SessionConfig struct {
	PollInterval time.Duration
	Duration     time.Duration
}

// Session runs a bounded caption capture against one Source
type Session struct {
	cfg    SessionConfig
	logger *zap.Logger
}

// NewSession creates a capture session
func NewSession(cfg SessionConfig, logger *zap.Logger) (*Session, error) {
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("capture duration must be positive")
	}
	return &Session{cfg: cfg, logger: logger}, nil
}

// Run polls src until the capture window closes or ctx is cancelled and
// returns the aggregated transcript. Poll failures are logged and skipped.
// On cancellation the transcript built so far is returned with ctx.Err().
func (s *Session) Run(ctx context.Context, src Source) (string, error) {
	agg := NewAggregator()
	err := s.RunInto(ctx, src, agg)
	return agg.Transcript(), err
}

// RunInto is Run with a caller-owned aggregator
func (s *Session) RunInto(ctx context.Context, src Source, agg *Aggregator) error {
	deadline := time.NewTimer(s.cfg.Duration)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	poll := 0
	for {
		poll++
		s.pollOnce(ctx, src, agg, poll)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if s.logger != nil {
				s.logger.Info("🎙️ Caption capture window closed",
					zap.Int("polls", poll),
					zap.Int("fragments", agg.Len()))
			}
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Session) pollOnce(ctx context.Context, src Source, agg *Aggregator, poll int) {
	texts, err := src.Poll(ctx)
	if err != nil {
		pollErr := &entities.SourcePollError{Poll: poll, Err: err}
		if s.logger != nil {
			s.logger.Warn("Caption poll failed, continuing", zap.Error(pollErr))
		}
		return
	}
	if added := agg.Observe(texts); added > 0 && s.logger != nil {
		s.logger.Debug("Captions observed", zap.Int("poll", poll), zap.Int("new", added))
	}
}
