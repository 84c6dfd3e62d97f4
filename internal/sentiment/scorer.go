package sentiment

import (
	"context"
	"fmt"
	"math"

	"github.com/ppiankov/sentistream/internal/model"
)

// Labeling thresholds. These are load-bearing constants of the labeling
// rule, not tunable defaults.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Label applies the three-way partition to a compound score.
func Label(compound float64) model.Sentiment {
	switch {
	case compound >= positiveThreshold:
		return model.SentimentPositive
	case compound <= negativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Scorer turns normalized records into scored ones using an Engine.
type Scorer struct {
	engine Engine
}

// NewScorer creates a Scorer backed by the given engine.
func NewScorer(engine Engine) *Scorer {
	return &Scorer{engine: engine}
}

// Engine returns the underlying engine.
func (s *Scorer) Engine() Engine { return s.engine }

// Score scores one normalized record. Non-finite compound values from
// the engine are coerced to 0.0 before labeling.
func (s *Scorer) Score(ctx context.Context, rec model.NormalizedRecord) (model.ScoredRecord, error) {
	scores, err := s.engine.PolarityScores(ctx, rec.ProcessedText)
	if err != nil {
		return model.ScoredRecord{}, fmt.Errorf("polarity scores: %w", err)
	}

	if math.IsNaN(scores.Compound) || math.IsInf(scores.Compound, 0) {
		scores.Compound = 0.0
	}

	return model.ScoredRecord{
		NormalizedRecord: rec,
		Scores:           scores,
		Sentiment:        Label(scores.Compound),
	}, nil
}
