package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/summary"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func mockExtractor() *summary.Extractor {
	cfg := config.AIConfig{Provider: config.ProviderMock, MaxTranscriptChars: 4000, Timeout: time.Second}
	return summary.NewWithGenerator(cfg, config.ProviderMock, nil, nil, nil)
}

func newTestWatcher(fs afero.Fs, dir string, out *bytes.Buffer) *dirWatcher {
	return &dirWatcher{
		fs:          fs,
		dir:         dir,
		meetingType: "Retrospective",
		extractor:   mockExtractor(),
		semaphore:   make(chan struct{}, 2),
		logger:      zap.NewNop(),
		out:         out,
	}
}

// The genai client pulls in opencensus, which starts a stats worker at init.
var ignoreStatsWorker = goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start")

func TestLoadTranscript(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/standup.txt", []byte("\xEF\xBB\xBFAlice: shipped\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/call.mp3", []byte("ID3"), 0o644))

	got, err := loadTranscript(fs, "/in/standup.txt")
	require.NoError(t, err)
	assert.Equal(t, "Alice: shipped", got)

	_, err = loadTranscript(fs, "/in/call.mp3")
	assert.ErrorContains(t, err, "unsupported transcript type")

	_, err = loadTranscript(fs, "/in/missing.txt")
	assert.Error(t, err)
}

func TestReadTranscript(t *testing.T) {
	got, err := readTranscript(strings.NewReader("  Bob: hello  "))
	require.NoError(t, err)
	assert.Equal(t, "Bob: hello", got)
}

func TestSummarizeTranscript(t *testing.T) {
	ext := mockExtractor()

	rec, attempt := summarizeTranscript(context.Background(), ext, "   ", "Standup")
	assert.Equal(t, entities.NoTranscriptMessage, rec.Summary)
	assert.Empty(t, rec.KeyPoints)
	assert.False(t, attempt.FellBack())

	rec, attempt = summarizeTranscript(context.Background(), ext, "Alice: hi", "Standup")
	assert.Equal(t, summary.Mock("Standup"), rec)
	assert.Equal(t, entities.OutcomeMock, attempt.Outcome)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, entities.SummaryRecord{Summary: " s "}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "s", decoded["summary"])
	for _, key := range []string{"key_points", "decisions", "action_items", "agenda"} {
		assert.Equal(t, []interface{}{}, decoded[key], key)
	}
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(summary.Mock("Standup"), entities.GenerationAttempt{Provider: "mock", Outcome: entities.OutcomeMock})
	for _, want := range []string{"Meeting Summary", "provider: mock", "Key points", "Decisions", "Action items", "Agenda", "Prepare project proposal", "John Doe"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "generation failed")

	out = renderSummary(entities.NoTranscriptSummary(), entities.GenerationAttempt{Provider: "openai", Outcome: entities.OutcomeCallFailed})
	assert.Contains(t, out, "generation failed")
	assert.Contains(t, out, "none")
}

func TestWantsSummary(t *testing.T) {
	assert.True(t, wantsSummary("a.txt"))
	assert.True(t, wantsSummary("a.VTT"))
	assert.False(t, wantsSummary("a.txt"+summarySuffix))
	assert.False(t, wantsSummary("a.mp4"))
}

func TestDirWatcher_ProcessWritesSummary(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreStatsWorker)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/inbox/retro.md", []byte("Alice: more tests"), 0o644))

	var out bytes.Buffer
	w := newTestWatcher(fs, "/inbox", &out)
	require.NoError(t, w.process(context.Background(), "/inbox/retro.md"))

	data, err := afero.ReadFile(fs, "/inbox/retro.md"+summarySuffix)
	require.NoError(t, err)
	var rec entities.SummaryRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, summary.Mock("Retrospective"), rec)
	assert.Contains(t, out.String(), "retro.md (mock, mock)")
}

func TestDirWatcher_Backlog(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreStatsWorker)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/inbox/new.txt", []byte("Alice: hi"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/done.txt", []byte("Bob: hi"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/done.txt"+summarySuffix, []byte("{}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/clip.mp4", []byte("x"), 0o644))

	var out bytes.Buffer
	w := newTestWatcher(fs, "/inbox", &out)
	require.NoError(t, w.processBacklog(context.Background()))
	w.wg.Wait()

	exists, err := afero.Exists(fs, "/inbox/new.txt"+summarySuffix)
	require.NoError(t, err)
	assert.True(t, exists)

	untouched, err := afero.ReadFile(fs, "/inbox/done.txt"+summarySuffix)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(untouched))

	exists, err = afero.Exists(fs, "/inbox/clip.mp4"+summarySuffix)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDirWatcher_RunPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(afero.NewOsFs(), dir, &bytes.Buffer{})
	w.settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Either the backlog scan or the create event picks the file up
	target := filepath.Join(dir, "standup.txt")
	require.NoError(t, os.WriteFile(target, []byte("Alice: shipped"), 0o644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(target + summarySuffix)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
