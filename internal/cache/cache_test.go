package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

var sample = Entry{
	Output:    `<svg width="24" height="24" viewBox="0 0 24 24"><path d="M0 0h24"/></svg>`,
	Resized:   true,
	SkipCount: 2,
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte(`<svg viewBox="0 0 48 48"><path d="M0 0h48"/></svg>`)

	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(src, 24, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got != sample {
		t.Fatalf("got %+v, expected %+v", got, sample)
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := c.Get([]byte("never stored"), 24, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestCacheKeySeparatesSizes(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte(`<svg viewBox="0 0 48 48"/>`)
	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(src, 48, 0); ok {
		t.Fatal("an entry stored for size 24 answered a size 48 lookup")
	}
}

func TestCacheKeySeparatesErrorModes(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte(`<svg viewBox="0 0 48 48"><path d="M10 ?"/></svg>`)
	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(src, 24, 2); ok {
		t.Fatal("an entry stored for one error mode answered another mode's lookup")
	}
	if _, ok, _ := c.Get(src, 24, 0); !ok {
		t.Fatal("the entry is gone for its own mode")
	}
}

func TestCacheSchemaInvalidation(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("source")
	stale, err := msgpack.Marshal(payload{
		Schema: schemaVersion + 1,
		Size:   24,
		Output: "from the future",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, c.key(src, 24, 0)), stale, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(src, 24, 0); err != nil || ok {
		t.Fatalf("expected a clean miss for a foreign schema, got ok=%v err=%v", ok, err)
	}
}

func TestCacheCorruptFile(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("source")
	if err := os.WriteFile(filepath.Join(c.dir, c.key(src, 24, 0)), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(src, 24, 0); err != nil || ok {
		t.Fatalf("expected a clean miss for a corrupt file, got ok=%v err=%v", ok, err)
	}
	// and Put heals it
	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(src, 24, 0); !ok {
		t.Fatal("expected a hit after rewriting the corrupt entry")
	}
}

func TestCacheDrop(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("source")
	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	if err := c.Drop(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(src, 24, 0); ok {
		t.Fatal("expected a miss after Drop")
	}
	// the directory stays usable
	if err := c.Put(src, 24, 0, sample); err != nil {
		t.Fatal(err)
	}
}

func TestCacheNil(t *testing.T) {
	var c *Cache
	if _, ok, err := c.Get([]byte("x"), 24, 0); ok || err != nil {
		t.Fatalf("nil cache Get: ok=%v err=%v", ok, err)
	}
	if err := c.Put([]byte("x"), 24, 0, sample); err != nil {
		t.Fatal(err)
	}
	if err := c.Drop(); err != nil {
		t.Fatal(err)
	}
	if c.Dir() != "" {
		t.Fatal("nil cache has no directory")
	}
}
