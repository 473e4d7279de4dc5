package irep

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the payload format changes.
const exportSchemaVersion uint16 = 1

// Digest keys cached exports; callers hash whatever identifies the input
// program (front end output, config, target).
type Digest [sha256.Size]byte

// DigestOf hashes raw bytes into a cache key.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// ExportCache stores serialized symbol-table documents on disk so unchanged
// programs skip the lower-and-serialize step. Thread-safe for concurrent
// access.
type ExportCache struct {
	mu  sync.RWMutex
	dir string
}

type exportPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	// Architecture of the machine model the document was lowered against.
	// A document for the wrong target is a miss, not an error.
	Architecture string

	Document []byte
}

// OpenExportCache initializes the cache at the standard location.
func OpenExportCache(app string) (*ExportCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ExportCache{dir: dir}, nil
}

func (c *ExportCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "exports", hex.EncodeToString(key[:])+".mp")
}

// Put writes a document atomically.
func (c *ExportCache) Put(key Digest, architecture string, document []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&exportPayload{
		Schema:       exportSchemaVersion,
		Architecture: architecture,
		Document:     document,
	}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the cached document for key, or (nil, false) on a miss. Stale
// schema or a different target architecture count as misses.
func (c *ExportCache) Get(key Digest, architecture string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload exportPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != exportSchemaVersion || payload.Architecture != architecture {
		return nil, false, nil
	}
	return payload.Document, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *ExportCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
