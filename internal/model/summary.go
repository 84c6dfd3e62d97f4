package model

// Summary aggregates a finalized dataset for the plain-text report.
type Summary struct {
	Total        int               `json:"total"`
	Counts       map[Sentiment]int `json:"counts"`
	MeanCompound float64           `json:"mean_compound"`
}

// Percent returns the share of records carrying the given label, in
// [0,100]. Zero-total summaries report 0 for every label.
func (s Summary) Percent(label Sentiment) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[label]) / float64(s.Total) * 100
}
