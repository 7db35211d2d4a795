package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iconfit/iconfit/internal/cache"
	"github.com/iconfit/iconfit/internal/config"
)

func TestWriteResultCreatesDirectories(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "a", "b", "icon.svg")
	if err := writeResult(dst, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "<svg/>" {
		t.Fatalf("wrote %q", raw)
	}
}

func TestOpenCache(t *testing.T) {
	cfg := config.Default()
	if openCache(cfg, true) != nil {
		t.Error("--no-cache must win")
	}
	cfg.Cache.Enabled = false
	if openCache(cfg, false) != nil {
		t.Error("a disabled cache must stay closed")
	}

	cfg = config.Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	c := openCache(cfg, false)
	if c == nil {
		t.Fatal("expected a cache")
	}
	if c.Dir() != cfg.Cache.Dir {
		t.Errorf("cache landed in %q", c.Dir())
	}
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	manifest := filepath.Join(dir, "iconfit.toml")
	if err := os.WriteFile(manifest, []byte("[cache]\ndir = \""+cacheDir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := cache.OpenDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put([]byte("doc"), 24, 0, cache.Entry{Output: "out"}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"clean", "--config", manifest})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get([]byte("doc"), 24, 0); hit {
		t.Error("entry survived the clean")
	}
	if !strings.Contains(out.String(), cacheDir) {
		t.Errorf("output %q does not name the cache directory", out.String())
	}
}

func TestNormalizeStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	doc := `<svg viewBox="0 0 48 48"><path d="M0 0L48 48"/></svg>`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"normalize", "--stdout", "--no-cache", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := `<svg width="24" height="24" viewBox="0 0 24 24"><path d="M0 0L24 24"/></svg>`
	if got := out.String(); got != want {
		t.Fatalf("stdout:\n%s\nexpected:\n%s", got, want)
	}
}
