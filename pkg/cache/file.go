package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// headerLen is the fixed prefix of every cache file: the expiry deadline
// as big-endian unix nanoseconds, zero meaning "never".
const headerLen = 8

// FileCache stores entries on disk for CLI usage, one file per key under
// the user's XDG cache directory. Artifacts are binary (PNG, PDF), so the
// payload is written raw behind a fixed expiry header instead of being
// re-encoded. Files shard into 256 subdirectories by the first hash byte
// to keep any single directory small.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get reads the entry for key. Expired or corrupt files are removed and
// reported as a miss; the caller recomputes and overwrites them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if deadline := int64(binary.BigEndian.Uint64(raw[:headerLen])); deadline != 0 {
		if time.Now().UnixNano() > deadline {
			_ = os.Remove(path)
			return nil, false, nil
		}
	}

	return raw[headerLen:], true, nil
}

// Set writes the entry for key. The file lands via rename so a concurrent
// Get never observes a half-written entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	buf := make([]byte, headerLen+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(buf[:headerLen], uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(buf[headerLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation opens and closes its own file.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its shard directory and file name. Keys are hashed
// first, so arbitrary key strings never reach the filesystem.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:])
}

var _ Cache = (*FileCache)(nil)
