package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores entries as files under a directory, grouped by
// artifact kind. Keys follow the Keyer convention "kind:digest", which
// maps to <dir>/<kind>/<digest>.json, so descriptions and snapshots
// stay separated on disk and `speed cache clear` can report what it
// removed per kind.
type FileCache struct {
	dir string
}

// NewFileCache creates the directory if needed and returns a file cache
// rooted there.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk form of one entry. Cached values are JSON
// documents (serialized descriptions); they are stored under Document
// so a cache file stays inspectable with standard JSON tools. Payloads
// that are not valid JSON fall back to the base64-encoded Raw field.
// JSON payloads come back compacted.
type fileEntry struct {
	ExpiresAt time.Time       `json:"expires_at,omitempty"`
	Document  json.RawMessage `json:"document,omitempty"`
	Raw       []byte          `json:"raw,omitempty"`
}

func (e *fileEntry) payload() []byte {
	if e.Document != nil {
		return e.Document
	}
	return e.Raw
}

func (e *fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get retrieves a value. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.payload(), true, nil
}

// Set stores a value with the given TTL. A TTL of zero or less stores
// the entry without expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var entry fileEntry
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	if json.Valid(data) {
		entry.Document = json.RawMessage(data)
	} else {
		entry.Raw = data
	}

	encoded, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps "kind:digest" to <dir>/<kind>/<digest>.json. The digest
// part is re-hashed so arbitrary key content (scoped prefixes) never
// escapes the cache directory; keys without a usable kind land in "misc".
func (c *FileCache) entryPath(key string) string {
	kind, rest, ok := strings.Cut(key, ":")
	if !ok || kind == "" || strings.ContainsAny(kind, `/\.`) {
		kind, rest = "misc", key
	}
	return filepath.Join(c.dir, kind, Hash([]byte(rest))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
