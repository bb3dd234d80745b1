package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/executor"
)

var (
	audioExtensions = map[string]bool{".mp3": true, ".wav": true, ".m4a": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true}
)

// IsMedia reports whether filename is an audio or video file we can transcribe
func IsMedia(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return audioExtensions[ext] || videoExtensions[ext]
}

// IsVideo reports whether filename needs its audio track extracted first
func IsVideo(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Transcoder extracts 16 kHz mono WAV audio with ffmpeg
type Transcoder struct {
	exec   executor.Executor
	ffmpeg string
	logger *zap.Logger
}

// NewTranscoder creates a transcoder that runs the given ffmpeg binary
func NewTranscoder(exec executor.Executor, ffmpegPath string, logger *zap.Logger) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Transcoder{exec: exec, ffmpeg: ffmpegPath, logger: logger}
}

// ExtractAudio writes a WAV next to inputPath and returns its path.
// The caller removes the output file.
func (t *Transcoder) ExtractAudio(ctx context.Context, inputPath string) (string, error) {
	audioPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_audio.wav"

	args := []string{
		"-i", inputPath,
		"-vn",          // No video
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := t.exec.Execute(ctx, t.ffmpeg, args...); err != nil {
		_ = os.Remove(audioPath)
		return "", &entities.TranscodeError{Input: filepath.Base(inputPath), Err: fmt.Errorf("ffmpeg extract audio: %w", err)}
	}

	if t.logger != nil {
		t.logger.Info("🎞️ Audio extracted", zap.String("input", filepath.Base(inputPath)))
	}
	return audioPath, nil
}
