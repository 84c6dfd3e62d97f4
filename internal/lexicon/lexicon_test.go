package lexicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/sentistream/internal/cache"
	"github.com/ppiankov/sentistream/internal/logging"
)

func TestDefault_EmbeddedList(t *testing.T) {
	words := Default()
	if len(words) == 0 {
		t.Fatal("Expected a non-empty embedded stopword list")
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, want := range []string{"the", "is", "and", "don't"} {
		if _, ok := set[want]; !ok {
			t.Errorf("Expected embedded list to contain %q", want)
		}
	}

	// Default returns a copy; mutating it must not leak.
	words[0] = "mutated"
	if Default()[0] == "mutated" {
		t.Error("Expected Default to return a fresh copy")
	}
}

func TestStopwords_EmbeddedSource(t *testing.T) {
	for _, source := range []string{"", "embedded"} {
		l := NewLoader(source, nil, logging.Discard())
		words, err := l.Stopwords(context.Background())
		if err != nil {
			t.Fatalf("Expected no error for source %q, got %v", source, err)
		}
		if len(words) == 0 {
			t.Errorf("Expected words for source %q", source)
		}
	}
}

func TestStopwords_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# comment line\nThe\n\nAnd\nor\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	l := NewLoader(path, nil, logging.Discard())
	words, err := l.Stopwords(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"the", "and", "or"}
	if len(words) != len(want) {
		t.Fatalf("Expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("Expected word %d to be %q, got %q", i, want[i], words[i])
		}
	}
}

func TestStopwords_FileSourceMissing(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.txt"), nil, logging.Discard())
	if _, err := l.Stopwords(context.Background()); err == nil {
		t.Error("Expected error for missing stopword file")
	}
}

func TestStopwords_RemoteSourceCached(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		case "/stopwords.txt":
			fetches++
			_, _ = w.Write([]byte("the\nand\nor\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := cache.NewDiskCache(t.TempDir(), time.Hour)
	l := NewLoader(srv.URL+"/stopwords.txt", c, logging.Discard())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		words, err := l.Stopwords(ctx)
		if err != nil {
			t.Fatalf("Expected no error on call %d, got %v", i, err)
		}
		if len(words) != 3 {
			t.Errorf("Expected 3 words on call %d, got %v", i, words)
		}
	}

	if fetches != 1 {
		t.Errorf("Expected exactly 1 remote fetch, got %d", fetches)
	}
}

func TestStopwords_RemoteSourceRespectsRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		_, _ = w.Write([]byte("the\n"))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/stopwords.txt", nil, logging.Discard())
	if _, err := l.Stopwords(context.Background()); err == nil {
		t.Error("Expected error when robots.txt disallows the fetch")
	}
}

func TestStopwords_RemoteSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/stopwords.txt", nil, logging.Discard())
	if _, err := l.Stopwords(context.Background()); err == nil {
		t.Error("Expected error for non-2xx lexicon response")
	}
}
