package cache

import (
	"context"
	"time"
)

// SnapshotStore holds whole-dataset snapshots keyed by name ("inventory",
// "promos"). Unlike a generic key/value cache, a snapshot is replaced
// atomically as one unit and is NEVER evicted by age: the services serve
// stale snapshots when a refresh fails, so expiry is the caller's decision
// (it compares the stored fetch time against its own TTL). Only an explicit
// Clear, or process restart for the memory backend, removes a snapshot.
//
// This abstraction allows swapping between the in-memory store (single
// instance) and Redis (shared across instances) without changing the
// services.
type SnapshotStore interface {
	// Load returns the snapshot bytes and the time they were fetched.
	// ok is false when no snapshot exists.
	Load(ctx context.Context, key string) (data []byte, fetchedAt time.Time, ok bool, err error)

	// Store atomically replaces the snapshot.
	Store(ctx context.Context, key string, data []byte, fetchedAt time.Time) error

	// Clear removes the snapshot so the next read forces a refresh.
	Clear(ctx context.Context, key string) error
}

// Snapshot keys shared by the services.
const (
	KeyInventory = "inventory"
	KeyPromos    = "promos"
)
