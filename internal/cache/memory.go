package cache

import (
	"context"
	"sync"
	"time"
)

// snapshot is one stored dataset with its fetch time.
type snapshot struct {
	data      []byte
	fetchedAt time.Time
}

// MemoryStore is the in-memory SnapshotStore. Replacement swaps the whole
// entry under the mutex, so concurrent readers always see either the old or
// the new snapshot, never a partial one.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]snapshot
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]snapshot),
	}
}

// Load implements SnapshotStore.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[key]
	if !ok {
		return nil, time.Time{}, false, nil
	}

	data := make([]byte, len(snap.data))
	copy(data, snap.data)
	return data, snap.fetchedAt, true, nil
}

// Store implements SnapshotStore.
func (s *MemoryStore) Store(ctx context.Context, key string, data []byte, fetchedAt time.Time) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = snapshot{data: buf, fetchedAt: fetchedAt}
	return nil
}

// Clear implements SnapshotStore.
func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}
