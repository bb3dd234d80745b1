package meeting

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

type memCaptures struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entities.CaptureJob
}

func newMemCaptures() *memCaptures {
	return &memCaptures{jobs: map[uuid.UUID]*entities.CaptureJob{}}
}

func (r *memCaptures) Create(_ context.Context, job *entities.CaptureJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *memCaptures) FindByID(_ context.Context, id uuid.UUID) (*entities.CaptureJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, entities.ErrCaptureJobNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *memCaptures) ListPending(_ context.Context, limit int) ([]entities.CaptureJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.CaptureJob
	for _, job := range r.jobs {
		if job.Status == entities.CaptureJobStatusPending {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCaptures) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.Status != entities.CaptureJobStatusPending {
		return false, nil
	}
	now := time.Now()
	job.Status = entities.CaptureJobStatusCapturing
	job.StartedAt = &now
	return true, nil
}

func (r *memCaptures) UpdateStatus(_ context.Context, id uuid.UUID, status entities.CaptureJobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id].Status = status
	return nil
}

func (r *memCaptures) MarkCompleted(_ context.Context, id, meetingID uuid.UUID, fragmentCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job := r.jobs[id]
	job.Status = entities.CaptureJobStatusCompleted
	job.MeetingID = &meetingID
	job.FragmentCount = fragmentCount
	return nil
}

func (r *memCaptures) MarkFailed(_ context.Context, id uuid.UUID, fragmentCount int, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job := r.jobs[id]
	job.Status = entities.CaptureJobStatusFailed
	job.FragmentCount = fragmentCount
	job.LastError = &errMsg
	return nil
}

func (r *memCaptures) FailStale(_ context.Context, cutoff time.Time, errMsg string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, job := range r.jobs {
		if (job.Status == entities.CaptureJobStatusCapturing || job.Status == entities.CaptureJobStatusSummarizing) &&
			job.StartedAt != nil && job.StartedAt.Before(cutoff) {
			job.Status = entities.CaptureJobStatusFailed
			job.LastError = &errMsg
			n++
		}
	}
	return n, nil
}

type fakeDriver struct {
	mu    sync.Mutex
	joins []string
}

func (d *fakeDriver) Join(_ context.Context, captureID, meetURL string, _ time.Duration) error {
	d.mu.Lock()
	d.joins = append(d.joins, captureID+" "+meetURL)
	d.mu.Unlock()
	return nil
}

func (d *fakeDriver) joined() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.joins...)
}

type captureFixture struct {
	svc      Service
	meetings *memMeetings
	captures *memCaptures
	driver   *fakeDriver
	ext      *fakeExtractor
	close    func()
}

func newCaptureFixture(t *testing.T) *captureFixture {
	t.Helper()
	store := cache.NewMemoryStore(time.Minute)

	f := &captureFixture{
		meetings: newMemMeetings(),
		captures: newMemCaptures(),
		driver:   &fakeDriver{},
		ext:      &fakeExtractor{},
		close:    store.Close,
	}
	svc, err := NewService(Deps{
		Meetings:  f.meetings,
		Captures:  f.captures,
		Extractor: f.ext,
		Snapshots: cache.NewMemorySnapshotStore(store, time.Minute),
		Driver:    f.driver,
	}, config.CaptureConfig{
		PollInterval:    5 * time.Millisecond,
		Duration:        60 * time.Millisecond,
		Workers:         2,
		JobPollInterval: 5 * time.Millisecond,
	}, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *captureFixture) waitTerminal(t *testing.T, id uuid.UUID) *entities.CaptureJob {
	t.Helper()
	var job *entities.CaptureJob
	require.Eventually(t, func() bool {
		var err error
		job, err = f.svc.GetCapture(context.Background(), id)
		return err == nil && job.IsTerminal()
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

// The genai client pulls in opencensus, which starts a stats worker at init.
var ignoreStatsWorker = goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start")

func TestCaptureWorker_CompletesJob(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreStatsWorker)

	f := newCaptureFixture(t)
	defer f.close()
	ctx := context.Background()

	job, err := f.svc.StartCapture(ctx, CaptureInput{MeetURL: "https://meet.google.com/abc-defg-hij", MeetingType: "Planning"})
	require.NoError(t, err)
	assert.Equal(t, entities.CaptureJobStatusPending, job.Status)
	assert.Equal(t, "Live Meeting Capture", job.Title)

	require.NoError(t, f.svc.PushCaptions(ctx, job.ID, []string{"Alice: hello", "", "Bob: ship it", "Alice: hello"}))

	require.NoError(t, f.svc.StartWorkerPool(ctx))
	done := f.waitTerminal(t, job.ID)
	require.NoError(t, f.svc.StopWorkerPool())

	require.Equal(t, entities.CaptureJobStatusCompleted, done.Status, "last error: %v", done.LastError)
	assert.Equal(t, 2, done.FragmentCount)
	require.NotNil(t, done.MeetingID)

	m, err := f.svc.Get(ctx, *done.MeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingSourceLive, m.Source)
	assert.Equal(t, "Alice: hello Bob: ship it", m.Transcript)
	assert.Equal(t, "summary of Planning", m.SummaryRecord().Summary)
	assert.Equal(t, []string{job.ID.String() + " https://meet.google.com/abc-defg-hij"}, f.driver.joined())

	assert.ErrorIs(t, f.svc.PushCaptions(ctx, job.ID, []string{"late"}), entities.ErrCaptureNotActive)
}

func TestCaptureWorker_NoCaptionsFailsJob(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreStatsWorker)

	f := newCaptureFixture(t)
	defer f.close()
	ctx := context.Background()

	job, err := f.svc.StartCapture(ctx, CaptureInput{MeetURL: "https://meet.google.com/xyz"})
	require.NoError(t, err)

	require.NoError(t, f.svc.StartWorkerPool(ctx))
	done := f.waitTerminal(t, job.ID)
	require.NoError(t, f.svc.StopWorkerPool())

	assert.Equal(t, entities.CaptureJobStatusFailed, done.Status)
	require.NotNil(t, done.LastError)
	assert.Equal(t, "no captions captured", *done.LastError)
	assert.Equal(t, 0, f.meetings.count())
	assert.Empty(t, f.ext.transcripts())
}

func TestWorkerPool_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreStatsWorker)

	f := newCaptureFixture(t)
	defer f.close()
	ctx := context.Background()

	assert.Error(t, f.svc.StopWorkerPool())
	require.NoError(t, f.svc.StartWorkerPool(ctx))
	assert.Error(t, f.svc.StartWorkerPool(ctx))
	require.NoError(t, f.svc.StopWorkerPool())
}

func TestStartCapture_Validation(t *testing.T) {
	f := newCaptureFixture(t)
	defer f.close()

	_, err := f.svc.StartCapture(context.Background(), CaptureInput{MeetURL: "  "})
	assert.ErrorIs(t, err, entities.ErrInvalidRequest)

	assert.ErrorIs(t, f.svc.PushCaptions(context.Background(), uuid.New(), nil), entities.ErrCaptureJobNotFound)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "no captions captured", failureMessage(entities.ErrNoCaptions))
	assert.Equal(t, "capture timed out", failureMessage(context.DeadlineExceeded))
	assert.Equal(t, "capture cancelled", failureMessage(context.Canceled))
}

func TestLiveCaptureDisabled(t *testing.T) {
	svc, err := NewService(Deps{Meetings: newMemMeetings(), Extractor: &fakeExtractor{}}, config.CaptureConfig{}, nil)
	require.NoError(t, err)

	_, err = svc.StartCapture(context.Background(), CaptureInput{MeetURL: "https://meet.google.com/x"})
	assert.ErrorIs(t, err, entities.ErrCaptureDisabled)
	assert.ErrorIs(t, svc.StartWorkerPool(context.Background()), entities.ErrCaptureDisabled)
	_, err = svc.GetCapture(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrCaptureJobNotFound)
}
