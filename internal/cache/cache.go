// Package cache persists normalization results between runs, keyed by
// the source bytes and the target size.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion invalidates older payload layouts. Bump it whenever
// the payload struct changes.
const schemaVersion uint16 = 2

// Entry is the outcome of one normalization worth keeping.
type Entry struct {
	Output    string
	Resized   bool
	SkipCount uint32
}

// payload is the on-disk layout.
type payload struct {
	Schema    uint16
	Size      float64
	Mode      uint8
	Resized   bool
	SkipCount uint32
	Output    string
}

// Cache stores entries as msgpack files under a single directory.
// A nil *Cache is valid and caches nothing. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at the standard user location:
// $XDG_CACHE_HOME/app, or ~/.cache/app when the variable is unset.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it as needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir reports where entries are stored.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// key derives the file name from the source bytes, the target size
// and the error mode. The mode matters: a strict run must not be
// answered with the outcome of a lenient one.
func (c *Cache) key(source []byte, size float64, mode uint8) string {
	h := sha256.New()
	h.Write(source)
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(size))
	buf[8] = mode
	h.Write(buf[:])
	return hex.EncodeToString(h.Sum(nil)) + ".mp"
}

// Get looks an entry up. A miss is (Entry{}, false, nil); corrupt
// files and foreign schemas count as misses so a later Put can heal
// them.
func (c *Cache) Get(source []byte, size float64, mode uint8) (Entry, bool, error) {
	if c == nil {
		return Entry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(filepath.Join(c.dir, c.key(source, size, mode)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return Entry{}, false, nil
	}
	if p.Schema != schemaVersion || p.Size != size || p.Mode != mode {
		return Entry{}, false, nil
	}
	return Entry{Output: p.Output, Resized: p.Resized, SkipCount: p.SkipCount}, true, nil
}

// Put writes an entry, atomically replacing any previous one.
func (c *Cache) Put(source []byte, size float64, mode uint8, e Entry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload{
		Schema:    schemaVersion,
		Size:      size,
		Mode:      mode,
		Resized:   e.Resized,
		SkipCount: e.SkipCount,
		Output:    e.Output,
	}); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), filepath.Join(c.dir, c.key(source, size, mode)))
}

// Drop removes every cached entry, keeping the directory usable.
func (c *Cache) Drop() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".mp" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, ent.Name())); err != nil {
			return err
		}
	}
	return nil
}
