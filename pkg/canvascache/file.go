package canvascache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore is a file-backed implementation of [Store] for CLI usage,
// keeping canvas metadata warm across process runs. Each entry is one JSON
// file named by the hash of its document id.
type FileStore struct {
	dir string
	ttl time.Duration

	// now is replaceable for tests.
	now func() time.Time
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created if it doesn't exist. A non-positive ttl falls back to
// [DefaultTTL].
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Get implements [Store]. Expired or unreadable entries are removed and
// reported as a miss.
func (s *FileStore) Get(_ context.Context, documentID string) (*Entry, error) {
	path := s.path(documentID)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, nil
	}
	if s.now().Sub(entry.Timestamp) > s.ttl {
		_ = os.Remove(path)
		return nil, nil
	}

	return &entry, nil
}

// Set implements [Store].
func (s *FileStore) Set(_ context.Context, documentID string, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(documentID), data, 0o644)
}

// Invalidate implements [Store].
func (s *FileStore) Invalidate(_ context.Context, documentID string) error {
	err := os.Remove(s.path(documentID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close implements [Store]. FileStore holds no open resources.
func (s *FileStore) Close() error {
	return nil
}

// path hashes the document id into a filename so arbitrary ids cannot
// escape the cache directory.
func (s *FileStore) path(documentID string) string {
	sum := sha256.Sum256([]byte(documentID))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

var _ Store = (*FileStore)(nil)
