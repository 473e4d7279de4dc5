package irep

import (
	"bytes"
	"testing"
)

func TestExportCachePutGet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenExportCache("gotoc-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	key := DigestOf([]byte("program"))
	doc := []byte(`{"symbolTable":{}}`)
	if err := cache.Put(key, "x86_64", doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := cache.Get(key, "x86_64")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !bytes.Equal(got, doc) {
		t.Fatalf("document mismatch: %q", got)
	}
}

func TestExportCacheMissesOnUnknownKey(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenExportCache("gotoc-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := cache.Get(DigestOf([]byte("never stored")), "x86_64"); err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestExportCacheMissesOnDifferentArchitecture(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenExportCache("gotoc-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := DigestOf([]byte("program"))
	if err := cache.Put(key, "x86_64", []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, err := cache.Get(key, "aarch64"); err != nil || ok {
		t.Fatalf("wrong-target document must be a miss, got ok=%v err=%v", ok, err)
	}
}

func TestExportCacheDropAll(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenExportCache("gotoc-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := DigestOf([]byte("program"))
	if err := cache.Put(key, "x86_64", []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, err := cache.Get(key, "x86_64"); err == nil && ok {
		t.Fatalf("document survived DropAll")
	}
}
