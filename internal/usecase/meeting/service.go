package meeting

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/media"
	"github.com/johnquangdev/meeting-notes/internal/usecase/caption"
	pkgai "github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Extractor turns a transcript into a summary record
type Extractor interface {
	Run(ctx context.Context, transcript, meetingType string) (entities.SummaryRecord, entities.GenerationAttempt)
	Provider() string
}

// ObjectStore keeps uploaded source files
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFile(ctx context.Context, objectName string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// AudioExtractor pulls the audio track out of a video file
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, inputPath string) (string, error)
}

// Driver asks the call automation driver to join a live meeting
type Driver interface {
	Join(ctx context.Context, captureID, meetURL string, duration time.Duration) error
}

// Deps are the collaborators of the meeting service. Storage, Transcriber,
// Audio and Driver are optional.
type Deps struct {
	Meetings    repositories.MeetingRepository
	Captures    repositories.CaptureJobRepository
	Extractor   Extractor
	Snapshots   caption.SnapshotStore
	Storage     ObjectStore
	Transcriber pkgai.Transcriber
	Audio       AudioExtractor
	Driver      Driver
	Fs          afero.Fs
}

// Upload is a file attached to a create request
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateInput holds the fields of a new meeting
type CreateInput struct {
	Title       string
	MeetingType string
	Transcript  string
	Upload      *Upload
}

// CaptureInput holds the fields of a live capture request
type CaptureInput struct {
	MeetURL     string
	Title       string
	MeetingType string
}

// Service defines meeting operations
type Service interface {
	Create(ctx context.Context, in CreateInput) (*entities.Meeting, error)
	List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, id uuid.UUID, format string) (*ExportFile, error)
	OpenUpload(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)

	StartCapture(ctx context.Context, in CaptureInput) (*entities.CaptureJob, error)
	GetCapture(ctx context.Context, id uuid.UUID) (*entities.CaptureJob, error)
	PushCaptions(ctx context.Context, id uuid.UUID, texts []string) error
	StartWorkerPool(ctx context.Context) error
	StopWorkerPool() error
}

type meetingService struct {
	meetings    repositories.MeetingRepository
	captures    repositories.CaptureJobRepository
	extractor   Extractor
	snapshots   caption.SnapshotStore
	storage     ObjectStore
	transcriber pkgai.Transcriber
	audio       AudioExtractor
	driver      Driver
	fs          afero.Fs
	cfg         config.CaptureConfig
	logger      *zap.Logger

	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
}

// NewService constructs the meeting service
func NewService(deps Deps, cfg config.CaptureConfig, logger *zap.Logger) (Service, error) {
	if deps.Meetings == nil || deps.Extractor == nil {
		return nil, fmt.Errorf("meeting repository and extractor are required")
	}
	if deps.Captures != nil && deps.Snapshots == nil {
		return nil, fmt.Errorf("live capture needs a snapshot store")
	}
	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &meetingService{
		meetings:    deps.Meetings,
		captures:    deps.Captures,
		extractor:   deps.Extractor,
		snapshots:   deps.Snapshots,
		storage:     deps.Storage,
		transcriber: deps.Transcriber,
		audio:       deps.Audio,
		driver:      deps.Driver,
		fs:          fs,
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Create stores a meeting with its summary. A stored upload is removed again
// when anything fails before the meeting row is written.
func (s *meetingService) Create(ctx context.Context, in CreateInput) (m *entities.Meeting, err error) {
	source := entities.MeetingSourceText
	if in.Upload != nil {
		source = entities.MeetingSourceUpload
	}
	m = entities.NewMeeting(strings.TrimSpace(in.Title), strings.TrimSpace(in.MeetingType), source)

	ctx, span := startSpan(ctx, spanCreate,
		attribute.String(attrMeetingID, m.ID.String()),
		attribute.String(attrSource, string(source)),
	)
	defer func() { endSpan(span, err) }()

	transcript := strings.TrimSpace(in.Transcript)

	if in.Upload != nil {
		var objectKey string
		transcript, objectKey, err = s.ingestUpload(ctx, m.ID, in.Upload, transcript)
		if objectKey != "" {
			m.FileObject = &objectKey
			defer func() {
				if err != nil {
					s.removeObject(objectKey)
				}
			}()
		}
		if err != nil {
			return nil, err
		}
	}

	m.Transcript = transcript
	s.summarize(ctx, m)

	if err = s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📝 Meeting created",
			zap.String("meeting_id", m.ID.String()),
			zap.String("source", string(m.Source)),
			zap.String("provider", m.Provider),
			zap.Bool("fallback", m.Fallback),
		)
	}
	return m, nil
}

// summarize fills the summary, provider and fallback fields from m.Transcript
func (s *meetingService) summarize(ctx context.Context, m *entities.Meeting) {
	if m.Transcript == "" {
		m.SetSummary(entities.NoTranscriptSummary())
		m.Provider = ""
		return
	}

	ctx, span := startSpan(ctx, spanSummarize,
		attribute.String(attrMeetingType, m.MeetingType),
		attribute.String(attrProvider, s.extractor.Provider()),
	)
	rec, attempt := s.extractor.Run(ctx, m.Transcript, m.MeetingType)
	span.SetAttributes(
		attribute.String(attrOutcome, string(attempt.Outcome)),
		attribute.Bool(attrFallback, attempt.FellBack()),
	)
	endSpan(span, attempt.Err)

	m.SetSummary(rec)
	m.Provider = attempt.Provider
	m.Fallback = attempt.FellBack()
}

// ingestUpload spools the upload, stores it and derives the transcript.
// It returns the object key whenever the file reached storage, even on error.
func (s *meetingService) ingestUpload(ctx context.Context, meetingID uuid.UUID, up *Upload, pasted string) (string, string, error) {
	name := sanitizeFilename(up.Filename)
	isMedia := media.IsMedia(name)
	if isMedia && s.transcriber == nil {
		return pasted, "", entities.ErrTranscriberMissing
	}

	spooled, size, err := s.spool(name, up.Body)
	if err != nil {
		return pasted, "", err
	}
	defer func() {
		spooled.Close()
		s.fs.Remove(spooled.Name())
	}()

	var objectKey string
	if s.storage != nil {
		if _, err := spooled.Seek(0, io.SeekStart); err != nil {
			return pasted, "", fmt.Errorf("failed to rewind upload: %w", err)
		}
		key := path.Join("uploads", meetingID.String(), name)
		contentType := up.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.storage.UploadFile(ctx, key, spooled, size, contentType); err != nil {
			return pasted, "", fmt.Errorf("failed to store upload: %w", err)
		}
		objectKey = key
	}

	switch {
	case isMedia:
		text, err := s.transcribeFile(ctx, spooled.Name(), name)
		if err != nil {
			return pasted, objectKey, err
		}
		if text != "" {
			return text, objectKey, nil
		}
		return pasted, objectKey, nil

	case IsTranscriptFile(name) && pasted == "":
		data, err := afero.ReadFile(s.fs, spooled.Name())
		if err != nil {
			return pasted, objectKey, fmt.Errorf("failed to read upload: %w", err)
		}
		text, err := DecodeTranscript(data)
		if err != nil {
			return pasted, objectKey, err
		}
		return text, objectKey, nil
	}

	return pasted, objectKey, nil
}

func (s *meetingService) spool(name string, body io.Reader) (afero.File, int64, error) {
	f, err := afero.TempFile(s.fs, "", "upload-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create spool file: %w", err)
	}
	size, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		s.fs.Remove(f.Name())
		return nil, 0, fmt.Errorf("failed to read upload: %w", err)
	}
	return f, size, nil
}

// transcribeFile runs ASR on a spooled media file, extracting audio from video first
func (s *meetingService) transcribeFile(ctx context.Context, filePath, name string) (text string, err error) {
	ctx, span := startSpan(ctx, spanTranscribe)
	defer func() { endSpan(span, err) }()

	audioPath := filePath
	if media.IsVideo(name) && s.audio != nil {
		audioPath, err = s.audio.ExtractAudio(ctx, filePath)
		if err != nil {
			return "", err
		}
		defer s.fs.Remove(audioPath)
	}

	f, err := s.fs.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	if s.logger != nil {
		s.logger.Info("🎧 Transcribing upload", zap.String("file", name))
	}

	text, err = s.transcriber.Transcribe(ctx, f)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe upload: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// removeObject deletes a stored upload on a detached context
func (s *meetingService) removeObject(key string) {
	if s.storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.storage.DeleteFile(ctx, key); err != nil && s.logger != nil {
		s.logger.Warn("Failed to remove stored upload",
			zap.String("object", key),
			zap.Error(err),
		)
	}
}

// List returns meetings, newest first
func (s *meetingService) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.meetings.List(ctx, filters)
}

// Get returns one meeting
func (s *meetingService) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return s.meetings.FindByID(ctx, id)
}

// Delete removes a meeting and its stored upload
func (s *meetingService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.meetings.Delete(ctx, id); err != nil {
		return err
	}
	if m.FileObject != nil {
		s.removeObject(*m.FileObject)
	}

	if s.logger != nil {
		s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	}
	return nil
}

// Export renders a meeting summary as txt, docx or pdf
func (s *meetingService) Export(ctx context.Context, id uuid.UUID, format string) (file *ExportFile, err error) {
	format = strings.ToLower(strings.TrimSpace(format))
	ctx, span := startSpan(ctx, spanExport,
		attribute.String(attrMeetingID, id.String()),
		attribute.String(attrFormat, format),
	)
	defer func() { endSpan(span, err) }()

	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, entities.ErrUnsupportedFormat
	}

	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatDocx:
		data, err = RenderDocx(m)
	case FormatPDF:
		data, err = RenderPDF(m)
	default:
		data = []byte(RenderText(m))
	}
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        exportFilename(m, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// OpenUpload streams the stored source file of a meeting and returns its file name
func (s *meetingService) OpenUpload(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if m.FileObject == nil || s.storage == nil {
		return nil, "", entities.ErrUploadNotFound
	}
	rc, err := s.storage.GetFile(ctx, *m.FileObject)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	return rc, path.Base(*m.FileObject), nil
}

// StartCapture queues a live capture job for the worker pool
func (s *meetingService) StartCapture(ctx context.Context, in CaptureInput) (*entities.CaptureJob, error) {
	if s.captures == nil {
		return nil, entities.ErrCaptureDisabled
	}
	meetURL := strings.TrimSpace(in.MeetURL)
	if meetURL == "" {
		return nil, fmt.Errorf("%w: meet url is required", entities.ErrInvalidRequest)
	}

	job := entities.NewCaptureJob(meetURL, strings.TrimSpace(in.Title), strings.TrimSpace(in.MeetingType))
	if err := s.captures.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create capture job: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📡 Capture job queued",
			zap.String("capture_id", job.ID.String()),
			zap.String("meet_url", meetURL),
		)
	}
	return job, nil
}

// GetCapture returns one capture job
func (s *meetingService) GetCapture(ctx context.Context, id uuid.UUID) (*entities.CaptureJob, error) {
	if s.captures == nil {
		return nil, entities.ErrCaptureJobNotFound
	}
	return s.captures.FindByID(ctx, id)
}

// PushCaptions stores the driver's current visible-caption snapshot for a running job
func (s *meetingService) PushCaptions(ctx context.Context, id uuid.UUID, texts []string) error {
	job, err := s.GetCapture(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != entities.CaptureJobStatusPending && job.Status != entities.CaptureJobStatusCapturing {
		return entities.ErrCaptureNotActive
	}
	if err := s.snapshots.Put(ctx, id.String(), texts); err != nil {
		return fmt.Errorf("failed to store caption snapshot: %w", err)
	}
	return nil
}
