// Package canvascache caches per-document canvas metadata.
//
// Fetching a document's canvas size means a network round trip to the
// canvas size provider, so resolved sizes (plus the document's layout and
// master identifiers) are kept in a time-boxed cache keyed by document id.
// Entries are immutable snapshots: a Set overwrites the previous entry
// wholesale, and any structural mutation of the document must call
// Invalidate so the next read re-fetches.
//
// There is no background eviction; expired entries are treated as absent
// and purged on the read that finds them.
//
// Three backends implement [Store]: [MemoryStore] for single-process use,
// [FileStore] for keeping CLI runs warm across processes, and [RedisStore]
// for multi-instance deployments.
package canvascache

import (
	"context"
	"time"

	"github.com/deckplan/deckplan/pkg/geometry"
)

// DefaultTTL bounds the lifetime of a cache entry.
const DefaultTTL = 5 * time.Minute

// Entry is a snapshot of a document's canvas metadata. Entries are never
// mutated after being written; replace the whole entry to update it.
type Entry struct {
	Dimensions geometry.Size `json:"dimensions"`
	Layouts    []string      `json:"layouts,omitempty"`
	Masters    []string      `json:"masters,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Store is the interface for canvas metadata storage backends.
type Store interface {
	// Get retrieves the entry for a document.
	// Returns nil, nil when no live entry exists (missing or expired).
	Get(ctx context.Context, documentID string) (*Entry, error)

	// Set stores an entry, overwriting any previous one.
	Set(ctx context.Context, documentID string, entry Entry) error

	// Invalidate removes the entry unconditionally. Every external
	// mutation path touching the document must call this.
	Invalidate(ctx context.Context, documentID string) error

	// Close releases backend resources.
	Close() error
}
