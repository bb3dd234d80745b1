package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type memoryItem struct {
	value      []string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store that sweeps expired items every cleanupInterval
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		stop:  make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.wg.Add(1)
		go store.cleanupExpired(cleanupInterval)
	}

	return store
}

// Set stores a value with expiration; a non-positive expiration never expires
func (ms *MemoryStore) Set(key string, value []string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item := &memoryItem{value: append([]string(nil), value...)}
	if expiration > 0 {
		item.expireTime = time.Now().Add(expiration)
	}
	ms.items[key] = item
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(key string) ([]string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false
	}
	return append([]string(nil), item.value...), true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.stopOnce.Do(func() { close(ms.stop) })
	ms.wg.Wait()
}

func (it *memoryItem) expired(now time.Time) bool {
	return !it.expireTime.IsZero() && now.After(it.expireTime)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	defer ms.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := time.Now()
			for key, item := range ms.items {
				if item.expired(now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

// MemorySnapshotStore keeps caption snapshots in process, for development and tests
type MemorySnapshotStore struct {
	store *MemoryStore
	ttl   time.Duration
}

// NewMemorySnapshotStore wraps a MemoryStore as a caption snapshot store
func NewMemorySnapshotStore(store *MemoryStore, ttl time.Duration) *MemorySnapshotStore {
	return &MemorySnapshotStore{store: store, ttl: ttl}
}

// Put replaces the snapshot for jobID
func (s *MemorySnapshotStore) Put(_ context.Context, jobID string, texts []string) error {
	s.store.Set(snapshotKey(jobID), texts, s.ttl)
	return nil
}

// Latest returns the newest snapshot for jobID, or nil if none was pushed
func (s *MemorySnapshotStore) Latest(_ context.Context, jobID string) ([]string, error) {
	texts, _ := s.store.Get(snapshotKey(jobID))
	return texts, nil
}

// Clear removes the snapshot for jobID
func (s *MemorySnapshotStore) Clear(_ context.Context, jobID string) error {
	s.store.Delete(snapshotKey(jobID))
	return nil
}
