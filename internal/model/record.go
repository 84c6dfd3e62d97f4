package model

// Record is one validated input event. Text and Timestamp are guaranteed
// non-empty by the validator; a record that fails that invariant never
// enters the pipeline. Extra holds any passthrough fields from the source
// line, stringified. Records are never mutated after creation.
type Record struct {
	Text      string            `json:"text"`
	Timestamp string            `json:"timestamp"`
	Extra     map[string]string `json:"extra,omitempty"` // passthrough fields
	Line      int               `json:"line"`            // 1-based source line, for diagnostics
}

// NormalizedRecord is a Record plus its normalized text, immutable once
// computed.
type NormalizedRecord struct {
	Record
	ProcessedText string `json:"processed_text"`
}

// Scores holds the raw polarity scores returned by the scoring engine.
// Neg, Neu, Pos are in [0,1]; Compound is in [-1,1].
type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// ScoredRecord is the terminal representation of one record.
type ScoredRecord struct {
	NormalizedRecord
	Scores
	Sentiment Sentiment `json:"sentiment"`
}

// Sentiment is the three-way polarity label.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// SentimentOrder is the canonical label ordering used by reports and
// charts.
var SentimentOrder = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// Batch is an ordered group of records processed together, at most one
// chunk in size.
type Batch []Record
