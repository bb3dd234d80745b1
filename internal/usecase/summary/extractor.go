package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Generator is a text generation backend
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// named is implemented by backends that report their provider name
type named interface {
	Name() string
}

// SelectProvider resolves the configured provider name. It falls back to mock
// when the name is unknown or its credential is missing.
func SelectProvider(cfg config.AIConfig) string {
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderGemini, config.ProviderGroq:
		if cfg.APIKeyFor(cfg.Provider) != "" {
			return cfg.Provider
		}
	}
	return config.ProviderMock
}

// Extractor turns transcripts into summary records. Each extractor owns its backend.
type Extractor struct {
	cfg       config.AIConfig
	provider  string
	generator Generator
	logger    *zap.Logger
	metrics   *Metrics
}

// New builds an extractor and its backend from cfg
func New(ctx context.Context, cfg config.AIConfig, logger *zap.Logger, metrics *Metrics) (*Extractor, error) {
	provider := SelectProvider(cfg)

	var (
		gen Generator
		err error
	)
	switch provider {
	case config.ProviderOpenAI:
		gen, err = ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case config.ProviderGroq:
		gen, err = ai.NewGroqGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	case config.ProviderGemini:
		gen, err = ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", provider, err)
	}
	if n, ok := gen.(named); ok {
		provider = n.Name()
	}

	if logger != nil {
		if provider != cfg.Provider {
			logger.Warn("⚠️ Summary provider unavailable, using mock",
				zap.String("configured", cfg.Provider))
		} else {
			logger.Info("🤖 Summary extractor ready", zap.String("provider", provider))
		}
	}

	return &Extractor{cfg: cfg, provider: provider, generator: gen, logger: logger, metrics: metrics}, nil
}

// NewWithGenerator builds an extractor around an existing backend.
// A nil generator yields the mock provider; an empty provider is taken from the backend's Name.
func NewWithGenerator(cfg config.AIConfig, provider string, gen Generator, logger *zap.Logger, metrics *Metrics) *Extractor {
	if gen == nil {
		provider = config.ProviderMock
	} else if n, ok := gen.(named); ok && provider == "" {
		provider = n.Name()
	}
	return &Extractor{cfg: cfg, provider: provider, generator: gen, logger: logger, metrics: metrics}
}

// Provider returns the resolved provider name
func (e *Extractor) Provider() string {
	return e.provider
}

// Extract returns a normalized summary record for transcript. It never fails:
// backend and parse failures resolve to the mock record.
func (e *Extractor) Extract(ctx context.Context, transcript, meetingType string) entities.SummaryRecord {
	rec, _ := e.Run(ctx, transcript, meetingType)
	return rec
}

// Run is Extract that also reports how the attempt went
func (e *Extractor) Run(ctx context.Context, transcript, meetingType string) (entities.SummaryRecord, entities.GenerationAttempt) {
	attempt := entities.GenerationAttempt{Provider: e.provider}
	attempt.Advance(entities.StateBackendSelected)

	if e.provider == config.ProviderMock || e.generator == nil {
		attempt.Outcome = entities.OutcomeMock
		attempt.Advance(entities.StateResolved)
		e.metrics.observeOutcome(e.provider, attempt.Outcome)
		return Mock(meetingType), attempt
	}

	attempt.Prompt = BuildPrompt(truncate(transcript, e.cfg.MaxTranscriptChars), meetingType)
	attempt.Advance(entities.StateRequested)

	callCtx := ctx
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := e.generator.Generate(callCtx, attempt.Prompt)
	e.metrics.observeBackend(e.provider, time.Since(start))

	var rec entities.SummaryRecord
	if err != nil {
		attempt.Err = &entities.BackendCallError{Provider: e.provider, Err: err}
		attempt.Outcome = entities.OutcomeCallFailed
		attempt.Advance(entities.StateCallFailed)
	} else {
		attempt.RawResponse = raw
		rec, err = ParseResponse(raw)
		if err != nil {
			attempt.Err = err
			attempt.Outcome = entities.OutcomeMalformed
			var perr *entities.ResponseParseError
			if errors.As(err, &perr) && perr.Reason == entities.ParseReasonEmpty {
				attempt.Outcome = entities.OutcomeEmpty
			}
			attempt.Advance(entities.StateParseFailed)
		} else {
			attempt.Outcome = entities.OutcomeOK
			attempt.Advance(entities.StateParsedOK)
		}
	}

	switch entities.KindOf(attempt.Err) {
	case entities.KindBackendCall:
		if e.logger != nil {
			e.logger.Warn("⚠️ Summary backend call failed, using mock summary",
				zap.String("provider", e.provider),
				zap.Error(attempt.Err))
		}
		rec = Mock(meetingType)
	case entities.KindResponseParse:
		if e.logger != nil {
			e.logger.Warn("⚠️ Summary response could not be parsed, using mock summary",
				zap.String("provider", e.provider),
				zap.String("outcome", string(attempt.Outcome)),
				zap.Error(attempt.Err))
		}
		rec = Mock(meetingType)
	}

	rec.Normalize()
	attempt.Advance(entities.StateResolved)
	e.metrics.observeOutcome(e.provider, attempt.Outcome)
	return rec, attempt
}
