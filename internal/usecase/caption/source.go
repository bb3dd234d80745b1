package caption

import "context"

// Source yields the caption text currently visible in a live meeting.
// Each call returns zero or more fragments; earlier fragments may repeat.
type Source interface {
	Poll(ctx context.Context) ([]string, error)
}

// SourceFunc adapts a plain function to Source
type SourceFunc func(ctx context.Context) ([]string, error)

// Poll calls f
func (f SourceFunc) Poll(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// SnapshotStore keeps the latest caption snapshot pushed for a capture job
type SnapshotStore interface {
	Put(ctx context.Context, jobID string, texts []string) error
	Latest(ctx context.Context, jobID string) ([]string, error)
	Clear(ctx context.Context, jobID string) error
}

// SnapshotSource polls the newest snapshot a driver pushed for a job
type SnapshotSource struct {
	store SnapshotStore
	jobID string
}

// NewSnapshotSource creates a source reading snapshots for jobID
func NewSnapshotSource(store SnapshotStore, jobID string) *SnapshotSource {
	return &SnapshotSource{store: store, jobID: jobID}
}

// Poll returns the latest snapshot, or nothing if none was pushed yet
func (s *SnapshotSource) Poll(ctx context.Context) ([]string, error) {
	return s.store.Latest(ctx, s.jobID)
}
