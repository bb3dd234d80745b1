package meeting

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

type memMeetings struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entities.Meeting
	createErr error
}

func newMemMeetings() *memMeetings {
	return &memMeetings{items: map[uuid.UUID]*entities.Meeting{}}
}

func (r *memMeetings) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.items[m.ID] = m
	return nil
}

func (r *memMeetings) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return m, nil
}

func (r *memMeetings) List(_ context.Context, f repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memMeetings) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memMeetings) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeExtractor struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeExtractor) Run(_ context.Context, transcript, meetingType string) (entities.SummaryRecord, entities.GenerationAttempt) {
	f.mu.Lock()
	f.calls = append(f.calls, transcript)
	f.mu.Unlock()
	rec := entities.SummaryRecord{Summary: "summary of " + meetingType, KeyPoints: []string{transcript}}
	return rec, entities.GenerationAttempt{Provider: "fake", Outcome: entities.OutcomeOK}
}

func (f *fakeExtractor) Provider() string { return "fake" }

func (f *fakeExtractor) transcripts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, name string, r io.Reader, size int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return errors.New("size mismatch")
	}
	s.mu.Lock()
	s.objects[name] = data
	s.mu.Unlock()
	return nil
}

func (s *fakeStorage) GetFile(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, name string) error {
	s.mu.Lock()
	delete(s.objects, name)
	s.mu.Unlock()
	return nil
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

type fakeTranscriber struct {
	got  []byte
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.got = data
	return f.text, f.err
}

type fakeAudio struct {
	fs afero.Fs
}

func (a fakeAudio) ExtractAudio(_ context.Context, in string) (string, error) {
	out := strings.TrimSuffix(in, ".mp4") + "_audio.wav"
	return out, afero.WriteFile(a.fs, out, []byte("RIFF-audio"), 0o644)
}

type fixture struct {
	svc      Service
	meetings *memMeetings
	ext      *fakeExtractor
	storage  *fakeStorage
	fs       afero.Fs
}

func newFixture(t *testing.T, transcriber *fakeTranscriber) *fixture {
	t.Helper()
	f := &fixture{
		meetings: newMemMeetings(),
		ext:      &fakeExtractor{},
		storage:  newFakeStorage(),
		fs:       afero.NewMemMapFs(),
	}
	deps := Deps{
		Meetings:  f.meetings,
		Extractor: f.ext,
		Storage:   f.storage,
		Audio:     fakeAudio{fs: f.fs},
		Fs:        f.fs,
	}
	if transcriber != nil {
		deps.Transcriber = transcriber
	}
	svc, err := NewService(deps, config.CaptureConfig{}, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewService_RequiresCollaborators(t *testing.T) {
	_, err := NewService(Deps{}, config.CaptureConfig{}, nil)
	assert.Error(t, err)

	_, err = NewService(Deps{Meetings: newMemMeetings(), Extractor: &fakeExtractor{}, Captures: newMemCaptures()}, config.CaptureConfig{}, nil)
	assert.Error(t, err)
}

func TestCreate_PastedTranscript(t *testing.T) {
	f := newFixture(t, nil)

	m, err := f.svc.Create(context.Background(), CreateInput{
		Title:       "  Weekly sync ",
		MeetingType: "Standup",
		Transcript:  "  We agreed to ship on Friday.  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Weekly sync", m.Title)
	assert.Equal(t, entities.MeetingSourceText, m.Source)
	assert.Equal(t, "We agreed to ship on Friday.", m.Transcript)
	assert.Equal(t, "fake", m.Provider)
	assert.False(t, m.Fallback)
	assert.Equal(t, "summary of Standup", m.SummaryRecord().Summary)
	assert.Equal(t, []string{"We agreed to ship on Friday."}, f.ext.transcripts())
	assert.Equal(t, 1, f.meetings.count())
}

func TestCreate_NoTranscriptSkipsExtractor(t *testing.T) {
	f := newFixture(t, nil)

	m, err := f.svc.Create(context.Background(), CreateInput{Transcript: "   "})

	require.NoError(t, err)
	assert.Equal(t, entities.DefaultMeetingTitle, m.Title)
	assert.Equal(t, entities.DefaultMeetingType, m.MeetingType)
	assert.Equal(t, entities.NoTranscriptSummary(), m.SummaryRecord())
	assert.Empty(t, m.Provider)
	assert.Empty(t, f.ext.transcripts())
}

func TestCreate_TextUpload(t *testing.T) {
	f := newFixture(t, nil)

	m, err := f.svc.Create(context.Background(), CreateInput{
		Title: "Retro",
		Upload: &Upload{
			Filename:    "../team notes.txt",
			ContentType: "text/plain",
			Body:        strings.NewReader("\xEF\xBB\xBFAlice will draft the plan.\n"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entities.MeetingSourceUpload, m.Source)
	assert.Equal(t, "Alice will draft the plan.", m.Transcript)
	require.NotNil(t, m.FileObject)
	assert.Equal(t, "uploads/"+m.ID.String()+"/team_notes.txt", *m.FileObject)
	assert.Equal(t, []string{*m.FileObject}, f.storage.keys())

	rc, name, err := f.svc.OpenUpload(context.Background(), m.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "team_notes.txt", name)

	// spool files are removed
	entries, _ := afero.ReadDir(f.fs, afero.GetTempDir(f.fs, ""))
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "upload-"), e.Name())
	}
}

func TestCreate_TextUploadKeepsPastedTranscript(t *testing.T) {
	f := newFixture(t, nil)

	m, err := f.svc.Create(context.Background(), CreateInput{
		Transcript: "pasted",
		Upload:     &Upload{Filename: "notes.md", Body: strings.NewReader("from file")},
	})

	require.NoError(t, err)
	assert.Equal(t, "pasted", m.Transcript)
}

func TestCreate_MediaWithoutTranscriber(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Create(context.Background(), CreateInput{
		Upload: &Upload{Filename: "call.mp3", Body: strings.NewReader("ID3")},
	})

	assert.ErrorIs(t, err, entities.ErrTranscriberMissing)
	assert.Empty(t, f.storage.keys())
	assert.Equal(t, 0, f.meetings.count())
}

func TestCreate_VideoUploadIsTranscribed(t *testing.T) {
	tr := &fakeTranscriber{text: " Bob owns the release. "}
	f := newFixture(t, tr)

	m, err := f.svc.Create(context.Background(), CreateInput{
		Transcript: "ignored once transcribed",
		Upload:     &Upload{Filename: "demo.mp4", Body: strings.NewReader("video-bytes")},
	})

	require.NoError(t, err)
	assert.Equal(t, "RIFF-audio", string(tr.got))
	assert.Equal(t, "Bob owns the release.", m.Transcript)
	assert.Equal(t, []string{"Bob owns the release."}, f.ext.transcripts())
}

func TestCreate_FailureRemovesStoredUpload(t *testing.T) {
	tests := []struct {
		name        string
		transcriber *fakeTranscriber
		createErr   error
	}{
		{"transcription fails", &fakeTranscriber{err: errors.New("asr down")}, nil},
		{"row write fails", &fakeTranscriber{text: "hello"}, errors.New("db down")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.transcriber)
			f.meetings.createErr = tc.createErr

			_, err := f.svc.Create(context.Background(), CreateInput{
				Upload: &Upload{Filename: "call.wav", Body: strings.NewReader("RIFF")},
			})

			require.Error(t, err)
			assert.Empty(t, f.storage.keys())
			assert.Equal(t, 0, f.meetings.count())
		})
	}
}

func TestDelete_RemovesUpload(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, CreateInput{Upload: &Upload{Filename: "a.txt", Body: strings.NewReader("hi")}})
	require.NoError(t, err)
	require.Len(t, f.storage.keys(), 1)

	require.NoError(t, f.svc.Delete(ctx, m.ID))
	assert.Empty(t, f.storage.keys())

	_, err = f.svc.Get(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, m.ID), entities.ErrMeetingNotFound)
}

func TestList_ClampsLimit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, CreateInput{Transcript: "t"})
		require.NoError(t, err)
	}

	items, total, err := f.svc.List(ctx, repositories.MeetingFilters{Limit: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	items, _, err = f.svc.List(ctx, repositories.MeetingFilters{Limit: 2, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestOpenUpload_NoFile(t *testing.T) {
	f := newFixture(t, nil)
	m, err := f.svc.Create(context.Background(), CreateInput{Transcript: "t"})
	require.NoError(t, err)

	_, _, err = f.svc.OpenUpload(context.Background(), m.ID)
	assert.ErrorIs(t, err, entities.ErrUploadNotFound)
}

func TestExport(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	m, err := f.svc.Create(ctx, CreateInput{Title: "Design review", Transcript: "t"})
	require.NoError(t, err)

	txt, err := f.svc.Export(ctx, m.ID, "TXT")
	require.NoError(t, err)
	assert.Equal(t, "Design_review_"+m.ID.String()[:8]+".txt", txt.Name)
	assert.Contains(t, string(txt.Data), "Meeting Summary: Design review")

	doc, err := f.svc.Export(ctx, m.ID, FormatDocx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("PK")), "docx is a zip archive")
	assert.True(t, strings.HasSuffix(doc.Name, ".docx"))

	pdf, err := f.svc.Export(ctx, m.ID, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF-")))
	assert.True(t, strings.HasSuffix(pdf.Name, ".pdf"))

	_, err = f.svc.Export(ctx, m.ID, "odt")
	assert.ErrorIs(t, err, entities.ErrUnsupportedFormat)

	_, err = f.svc.Export(ctx, uuid.New(), FormatText)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
}
