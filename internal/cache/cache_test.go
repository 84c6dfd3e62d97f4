package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("https://example.com/stopwords.txt")
	b := Key("https://example.com/stopwords.txt")
	c := Key("https://example.com/other.txt")

	if a != b {
		t.Errorf("Expected stable keys, got %q and %q", a, b)
	}
	if a == c {
		t.Error("Expected distinct keys for distinct sources")
	}
	if !strings.HasPrefix(a, "sentistream:lexicon:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", a)
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("source")

	if _, found := c.Get(key); found {
		t.Error("Expected miss on empty cache")
	}

	if err := c.Set(key, []byte("the\nand\nor"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get(key)
	if !found {
		t.Fatal("Expected hit after set")
	}
	if string(val) != "the\nand\nor" {
		t.Errorf("Expected stored value, got %q", val)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_ExpiredEntryDropped(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("source")

	if err := c.Set(key, []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to be dropped")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Hour, time.Hour)
	key := Key("source")

	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "payload" {
		t.Errorf("Expected hit with payload, got %q found=%v", val, found)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Hour, dir, time.Hour)
	key := Key("source")

	// Seed only the disk layer, as a previous process would have.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("persisted"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := layered.Get(key)
	if !found || string(val) != "persisted" {
		t.Fatalf("Expected disk hit through the layered cache, got %q found=%v", val, found)
	}

	// Remove the disk entry; the promoted copy must still serve.
	if err := disk.Delete(key); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("Expected promoted memory hit after disk delete")
	}
}
