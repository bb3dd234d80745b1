package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/internal/usecase/summary"
)

// summarySuffix marks the files written next to each summarized transcript
const summarySuffix = ".summary.json"

func newWatchCmd() *cobra.Command {
	var (
		dir           string
		meetingType   string
		provider      string
		maxConcurrent int
		settle        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Summarize transcripts dropped into a directory",
		Long: `Watch monitors a directory and writes <file>.summary.json next to every
transcript (.txt .md .vtt .srt) created in it. Transcripts present at startup
without a summary are processed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(provider)
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			extractor, err := summary.New(ctx, cfg.AI, logger, nil)
			if err != nil {
				return err
			}

			w := &dirWatcher{
				fs:          afero.NewOsFs(),
				dir:         dir,
				meetingType: meetingType,
				extractor:   extractor,
				settle:      settle,
				semaphore:   make(chan struct{}, max(maxConcurrent, 1)),
				logger:      logger,
				out:         cmd.OutOrStdout(),
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to watch")
	cmd.Flags().StringVarP(&meetingType, "type", "t", entities.DefaultMeetingType, "Meeting type used in the prompt")
	cmd.Flags().StringVar(&provider, "provider", "", "Override AI_PROVIDER (openai, gemini, groq, mock)")
	cmd.Flags().IntVar(&maxConcurrent, "concurrency", 2, "Transcripts summarized at the same time")
	cmd.Flags().DurationVar(&settle, "settle", 500*time.Millisecond, "Wait after a create event before reading the file")

	return cmd
}

// dirWatcher summarizes transcript files appearing in a directory
type dirWatcher struct {
	fs          afero.Fs
	dir         string
	meetingType string
	extractor   meeting.Extractor
	settle      time.Duration
	semaphore   chan struct{}
	logger      *zap.Logger
	out         io.Writer
	outMu       sync.Mutex
	wg          sync.WaitGroup
}

// Run processes the backlog then handles create events until ctx is done
func (w *dirWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}

	if err := w.processBacklog(ctx); err != nil {
		return err
	}

	w.logger.Info("👀 Watching for transcripts", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create && wantsSummary(event.Name) {
				w.dispatch(ctx, event.Name, w.settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// processBacklog summarizes transcripts that have no summary file yet
func (w *dirWatcher) processBacklog(ctx context.Context) error {
	infos, err := afero.ReadDir(w.fs, w.dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, info := range infos {
		if info.IsDir() || !wantsSummary(info.Name()) {
			continue
		}
		path := filepath.Join(w.dir, info.Name())
		if exists, _ := afero.Exists(w.fs, path+summarySuffix); exists {
			continue
		}
		w.dispatch(ctx, path, 0)
	}
	return nil
}

// dispatch runs process in a goroutine, bounded by the semaphore
func (w *dirWatcher) dispatch(ctx context.Context, path string, delay time.Duration) {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
		if err := w.process(ctx, path); err != nil {
			w.logger.Error("Failed to summarize transcript", zap.String("file", path), zap.Error(err))
			w.printf("❌ %s: %v\n", filepath.Base(path), err)
		}
	}()
}

// process summarizes one transcript and writes the summary file next to it
func (w *dirWatcher) process(ctx context.Context, path string) error {
	transcript, err := loadTranscript(w.fs, path)
	if err != nil {
		return err
	}

	rec, attempt := summarizeTranscript(ctx, w.extractor, transcript, w.meetingType)

	f, err := w.fs.Create(path + summarySuffix)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	if err := writeJSON(f, rec); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close summary file: %w", err)
	}

	w.printf("✅ %s (%s, %s)\n", filepath.Base(path), attempt.Provider, attempt.Outcome)
	return nil
}

func (w *dirWatcher) printf(format string, args ...interface{}) {
	if w.out == nil {
		return
	}
	w.outMu.Lock()
	defer w.outMu.Unlock()
	fmt.Fprintf(w.out, format, args...)
}

// wantsSummary skips our own output and anything that is not a transcript
func wantsSummary(name string) bool {
	return !strings.HasSuffix(name, summarySuffix) && meeting.IsTranscriptFile(name)
}
