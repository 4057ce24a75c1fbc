package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore keeps one file per fingerprint under Dir. Entries survive
// process restarts; a missing or corrupt entry file is a cache miss.
type FileStore struct {
	Dir string
	// DefaultTTL applies when Put is called without a positive ttl.
	// Zero means entries never expire.
	DefaultTTL time.Duration
}

// entryFile is the on-disk envelope. The payload is the raw response body.
type entryFile struct {
	CreatedAt  time.Time `json:"created_at"`
	TTLSeconds int64     `json:"ttl_seconds"`
	Payload    []byte    `json:"payload"`
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string, defaultTTL time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{Dir: dir, DefaultTTL: defaultTTL}, nil
}

func (f *FileStore) path(fingerprint string) string {
	return filepath.Join(f.Dir, fingerprint+".json")
}

func (f *FileStore) Get(fingerprint string) ([]byte, bool) {
	raw, err := os.ReadFile(f.path(fingerprint))
	if err != nil {
		return nil, false
	}
	var e entryFile
	if err := json.Unmarshal(raw, &e); err != nil {
		// Corrupt entry: drop it and report a miss.
		logf("removing corrupt entry %s: %v", fingerprint, err)
		_ = os.Remove(f.path(fingerprint))
		return nil, false
	}
	if e.TTLSeconds > 0 && time.Since(e.CreatedAt) > time.Duration(e.TTLSeconds)*time.Second {
		logf("entry %s expired", fingerprint)
		_ = os.Remove(f.path(fingerprint))
		return nil, false
	}
	return e.Payload, true
}

// Put writes the entry atomically: the envelope goes to a uniquely named
// temp file in the cache directory and is renamed over the final path, so a
// concurrent reader never observes a partially written entry.
func (f *FileStore) Put(fingerprint string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = f.DefaultTTL
	}
	e := entryFile{
		CreatedAt:  time.Now(),
		TTLSeconds: int64(ttl / time.Second),
		Payload:    payload,
	}
	raw, err := json.Marshal(e)
	if err != nil {
		logf("encode entry %s: %v", fingerprint, err)
		return
	}
	tmp := f.path(fingerprint) + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		logf("write entry %s: %v", fingerprint, err)
		return
	}
	if err := os.Rename(tmp, f.path(fingerprint)); err != nil {
		logf("rename entry %s: %v", fingerprint, err)
		_ = os.Remove(tmp)
	}
}

func (f *FileStore) Invalidate(fingerprint string) {
	_ = os.Remove(f.path(fingerprint))
}

// Clear removes every entry file, leaving other files in the directory
// alone.
func (f *FileStore) Clear() error {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cache dir: %w", err)
	}
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(f.Dir, name)); err != nil {
			return fmt.Errorf("remove cache entry %s: %w", name, err)
		}
	}
	return nil
}
