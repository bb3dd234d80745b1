package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/internal/usecase/summary"
)

func newSummarizeCmd() *cobra.Command {
	var (
		file        string
		meetingType string
		provider    string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a transcript file",
		Long: `Summarize reads a transcript (.txt .md .vtt .srt, or "-" for stdin) and prints
the structured summary. Output is JSON when --json is set or stdout is not a terminal.`,
		Example: `  notesctl summarize --file standup.txt --type "Daily standup"
  cat notes.md | notesctl summarize --file - --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(provider)
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			extractor, err := summary.New(ctx, cfg.AI, logger, nil)
			if err != nil {
				return err
			}

			var transcript string
			if file == "-" {
				transcript, err = readTranscript(cmd.InOrStdin())
			} else {
				transcript, err = loadTranscript(afero.NewOsFs(), file)
			}
			if err != nil {
				return err
			}

			rec, attempt := summarizeTranscript(ctx, extractor, transcript, meetingType)

			out := cmd.OutOrStdout()
			if jsonOutput || !isTerminal(out) {
				return writeJSON(out, rec)
			}
			fmt.Fprint(out, renderSummary(rec, attempt))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Transcript file, or - for stdin")
	cmd.Flags().StringVarP(&meetingType, "type", "t", entities.DefaultMeetingType, "Meeting type used in the prompt")
	cmd.Flags().StringVar(&provider, "provider", "", "Override AI_PROVIDER (openai, gemini, groq, mock)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary record as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// loadTranscript reads and decodes a transcript file
func loadTranscript(fs afero.Fs, path string) (string, error) {
	if !meeting.IsTranscriptFile(path) {
		return "", fmt.Errorf("%s: unsupported transcript type %q", path, filepath.Ext(path))
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return meeting.DecodeTranscript(data)
}

// readTranscript decodes a transcript from stdin
func readTranscript(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return meeting.DecodeTranscript(data)
}

// summarizeTranscript skips the backend for an empty transcript
func summarizeTranscript(ctx context.Context, ext meeting.Extractor, transcript, meetingType string) (entities.SummaryRecord, entities.GenerationAttempt) {
	if strings.TrimSpace(transcript) == "" {
		return entities.NoTranscriptSummary(), entities.GenerationAttempt{Outcome: entities.OutcomeMock}
	}
	return ext.Run(ctx, transcript, meetingType)
}

func writeJSON(w io.Writer, rec entities.SummaryRecord) error {
	rec.Normalize()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
