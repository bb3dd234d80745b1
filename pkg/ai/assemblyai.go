package ai

import (
	"context"
	"fmt"
	"io"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Transcriber turns uploaded audio into a plain transcript
type Transcriber interface {
	Transcribe(ctx context.Context, r io.Reader) (string, error)
}

// AssemblyAITranscriber transcribes audio with the AssemblyAI SDK
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
	logger   *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber; language may be empty for auto detection
func NewAssemblyAITranscriber(apiKey, language string, logger *zap.Logger) (*AssemblyAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assemblyai: %w", ErrMissingAPIKey)
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClient(apiKey),
		language: language,
		logger:   logger,
	}, nil
}

// Transcribe uploads the audio, waits for the transcript and returns its text
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, r io.Reader) (string, error) {
	uploadURL, err := t.client.Upload(ctx, r)
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}
	if t.logger != nil {
		t.logger.Info("✅ File uploaded to AssemblyAI", zap.String("upload_url", uploadURL))
	}

	params := &aai.TranscriptOptionalParams{}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	var transcript aai.Transcript
	transcribeFn := func() error {
		var err error
		transcript, err = t.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(transcribeFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	var text string
	if transcript.Text != nil {
		text = *transcript.Text
	}
	if t.logger != nil {
		t.logger.Info("🎙️ Transcription completed", zap.Int("chars", len(text)))
	}
	return text, nil
}
