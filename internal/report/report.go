// Package report summarizes a finalized dataset snapshot into the
// plain-text summary artifact.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/sentistream/internal/model"
	"github.com/ppiankov/sentistream/internal/store"
)

// FileName is the summary artifact name inside the output directory.
const FileName = "summary_report.txt"

// ErrEmptyDataset is returned when a summary is requested for a dataset
// with no rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// Summarize aggregates a snapshot: total count, per-label counts, mean
// compound score. The snapshot must carry sentiment and compound
// columns.
func Summarize(snap *store.Snapshot) (model.Summary, error) {
	if missing := snap.MissingColumns("sentiment", "compound"); len(missing) > 0 {
		return model.Summary{}, fmt.Errorf("%w: %s", store.ErrMissingColumns, strings.Join(missing, ", "))
	}
	if snap.Len() == 0 {
		return model.Summary{}, ErrEmptyDataset
	}

	sum := model.Summary{
		Total:  snap.Len(),
		Counts: make(map[model.Sentiment]int),
	}

	var compoundTotal float64
	for i := 0; i < snap.Len(); i++ {
		sum.Counts[model.Sentiment(snap.Value(i, "sentiment"))]++

		c, err := snap.Float(i, "compound")
		if err != nil {
			return model.Summary{}, fmt.Errorf("summarize: %w", err)
		}
		compoundTotal += c
	}
	sum.MeanCompound = compoundTotal / float64(sum.Total)

	return sum, nil
}

// Render formats the summary as the plain-text report. Labels appear in
// the canonical order Positive, Negative, Neutral.
func Render(sum model.Summary) string {
	rule := strings.Repeat("=", 40)

	var b strings.Builder
	b.WriteString("Sentiment Analysis Summary Report\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total messages analysed: %d\n\n", sum.Total)
	b.WriteString("Sentiment distribution:\n")
	for _, label := range model.SentimentOrder {
		fmt.Fprintf(&b, "  %s: %d (%.2f%%)\n", label, sum.Counts[label], sum.Percent(label))
	}
	fmt.Fprintf(&b, "\nAverage compound score: %.4f\n", sum.MeanCompound)
	b.WriteString(rule + "\n")
	return b.String()
}

// Write renders the summary and writes the artifact to path.
func Write(sum model.Summary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(sum)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
