// Package sentiment scores normalized text for polarity and applies the
// three-way labeling rule. The numeric scoring itself is delegated to an
// Engine; the builtin lexical engine is a pure function of its input.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/sentistream/internal/model"
)

// Engine produces polarity scores for a piece of text. Neg, Neu, Pos
// are in [0,1]; Compound is in [-1,1].
type Engine interface {
	// Name returns the engine name.
	Name() string

	// PolarityScores scores the given text.
	PolarityScores(ctx context.Context, text string) (model.Scores, error)
}

// NewEngine creates an Engine from configuration. An empty provider
// selects the builtin lexical engine.
func NewEngine(cfg model.EngineConfig) (Engine, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "lexical":
		return NewLexicalEngine(), nil

	case "openai":
		return NewOpenAIEngine(cfg)

	default:
		return nil, fmt.Errorf("unknown sentiment engine: %s (supported: lexical, openai)", cfg.Provider)
	}
}
