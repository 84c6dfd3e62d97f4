// Package normalize prepares record text for the sentiment engine:
// lowercase, strip punctuation except the polarity signals ! ? ', drop
// stopwords, rejoin on single spaces.
package normalize

import (
	"context"
	"strings"
	"sync"
)

// strippedPunctuation is ASCII punctuation minus the characters the
// scoring engine treats as polarity/intensity signals (! ? ').
const strippedPunctuation = "\"#$%&()*+,-./:;<=>@[\\]^_`{|}~"

// StopwordSource supplies the stopword lexicon on first use.
type StopwordSource interface {
	Stopwords(ctx context.Context) ([]string, error)
}

// Normalizer holds a lazily-populated stopword set. The lexicon is
// loaded exactly once; EnsureLoaded is idempotent and safe to call
// repeatedly.
type Normalizer struct {
	source StopwordSource

	once    sync.Once
	loadErr error
	stops   map[string]struct{}
}

// New creates a Normalizer backed by the given stopword source.
func New(source StopwordSource) *Normalizer {
	return &Normalizer{source: source}
}

// EnsureLoaded triggers the one-time lexicon load. Subsequent calls
// return the cached result.
func (n *Normalizer) EnsureLoaded(ctx context.Context) error {
	n.once.Do(func() {
		words, err := n.source.Stopwords(ctx)
		if err != nil {
			n.loadErr = err
			return
		}
		n.stops = make(map[string]struct{}, len(words))
		for _, w := range words {
			n.stops[strings.ToLower(w)] = struct{}{}
		}
	})
	return n.loadErr
}

// Normalize lowercases text, strips punctuation except ! ? ', removes
// stopword tokens, and rejoins the remainder with single spaces. Empty
// input normalizes to the empty string; Normalize never fails. The
// transform is idempotent.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, t := range tokens {
		if _, stop := n.stops[t]; stop {
			continue
		}
		kept = append(kept, t)
	}

	return strings.Join(kept, " ")
}
