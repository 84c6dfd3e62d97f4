package lexicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/ppiankov/sentistream/internal/cache"
	"github.com/ppiankov/sentistream/internal/logging"
)

const (
	defaultUserAgent = "Sentistream/0.1 (+https://github.com/ppiankov/sentistream)"
	maxLexiconBytes  = 1 << 20 // 1 MiB is far beyond any stopword list
)

// Loader resolves a stopword source. Remote sources are fetched at most
// once per cache TTL; the fetch honors the host's robots.txt.
type Loader struct {
	source     string
	cache      cache.Cache
	httpClient *http.Client
	userAgent  string
	log        *logging.Logger
}

// NewLoader creates a Loader for the given source. An empty source or
// "embedded" selects the built-in English list. cache may be nil, in
// which case remote sources are fetched every run.
func NewLoader(source string, c cache.Cache, log *logging.Logger) *Loader {
	return &Loader{
		source:     source,
		cache:      c,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
		log:        log,
	}
}

// Stopwords returns the stopword list for the configured source.
func (l *Loader) Stopwords(ctx context.Context) ([]string, error) {
	switch {
	case l.source == "" || l.source == "embedded":
		return Default(), nil
	case strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://"):
		return l.fetch(ctx)
	default:
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("read stopword file: %w", err)
		}
		return parseWordList(data), nil
	}
}

// fetch downloads the remote stopword list, consulting the cache first.
func (l *Loader) fetch(ctx context.Context) ([]string, error) {
	key := cache.Key(l.source)

	if l.cache != nil {
		if data, ok := l.cache.Get(key); ok {
			l.log.Debugf("lexicon cache hit for %s", l.source)
			return parseWordList(data), nil
		}
	}

	if allowed := l.allowedByRobots(ctx); !allowed {
		return nil, fmt.Errorf("lexicon fetch disallowed by robots.txt: %s", l.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch lexicon: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch lexicon: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLexiconBytes))
	if err != nil {
		return nil, fmt.Errorf("read lexicon body: %w", err)
	}

	words := parseWordList(data)
	if len(words) == 0 {
		return nil, fmt.Errorf("lexicon source yielded no words: %s", l.source)
	}

	if l.cache != nil {
		if err := l.cache.Set(key, data, 0); err != nil {
			l.log.Warnf("failed to cache lexicon: %v", err)
		}
	}

	l.log.Infof("fetched %d stopwords from %s", len(words), l.source)
	return words, nil
}

// allowedByRobots checks the source host's robots.txt. Failures to fetch
// or parse robots.txt default to allowed.
func (l *Loader) allowedByRobots(ctx context.Context) bool {
	parsed, err := url.Parse(l.source)
	if err != nil {
		return false
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return true
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return true
	}

	return data.TestAgent(parsed.Path, l.userAgent)
}
