// Package visual renders chart artifacts from a finalized dataset
// snapshot: compound-over-time line, sentiment distribution bars, mean
// score bars, a distribution pie, and an HTML dashboard embedding them.
package visual

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/sentistream/internal/logging"
	"github.com/ppiankov/sentistream/internal/model"
	"github.com/ppiankov/sentistream/internal/store"
)

// Artifact file names inside the output directory.
const (
	OvertimeFile     = "sentiment_overtime.svg"
	DistributionFile = "sentiment_distribution_count.svg"
	AverageFile      = "average_sentiment_scores.svg"
	PieFile          = "sentiment_distribution_pie.svg"
	DashboardFile    = "index.html"
)

// chartOrder is the label ordering used by the distribution charts.
var chartOrder = []model.Sentiment{model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative}

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Renderer is the visualisation sink. It accepts complete, persisted
// snapshots only.
type Renderer struct {
	outDir string
	log    *logging.Logger
}

// NewRenderer creates a Renderer writing artifacts into outDir.
func NewRenderer(outDir string, log *logging.Logger) *Renderer {
	return &Renderer{outDir: outDir, log: log}
}

// Render writes all chart artifacts for the snapshot. It fails fast when
// the timestamp, compound, or sentiment column is missing. Rows whose
// timestamps cannot be parsed fall back to index-based time labels with
// a warning rather than failing the run.
func (r *Renderer) Render(snap *store.Snapshot) error {
	if missing := snap.MissingColumns("timestamp", "compound", "sentiment"); len(missing) > 0 {
		return fmt.Errorf("%w for visualisation: %s", store.ErrMissingColumns, strings.Join(missing, ", "))
	}

	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	n := snap.Len()
	compounds := make([]float64, n)
	sentiments := make([]model.Sentiment, n)
	for i := 0; i < n; i++ {
		c, err := snap.Float(i, "compound")
		if err != nil {
			return fmt.Errorf("visualise: %w", err)
		}
		compounds[i] = c
		sentiments[i] = model.Sentiment(snap.Value(i, "sentiment"))
	}

	labels := r.timeLabels(snap)

	counts := make(map[model.Sentiment]int, len(chartOrder))
	for _, s := range sentiments {
		counts[s]++
	}

	artifacts := map[string]string{
		OvertimeFile:     lineSVG(compounds, labels),
		DistributionFile: barsSVG(counts),
		PieFile:          pieSVG(counts),
	}

	// Mean neg/neu/pos bars need the raw score columns; they are not part
	// of the sink's required shape, so their absence only skips the chart.
	if missing := snap.MissingColumns("neg", "neu", "pos"); len(missing) == 0 {
		averages, err := meanScores(snap, sentiments)
		if err != nil {
			return fmt.Errorf("visualise: %w", err)
		}
		artifacts[AverageFile] = groupedBarsSVG(averages)
	} else {
		r.log.Warnf("score columns missing (%s); skipping average scores chart", strings.Join(missing, ", "))
	}

	artifacts[DashboardFile] = dashboardHTML(n, artifacts)

	for name, content := range artifacts {
		path := filepath.Join(r.outDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	r.log.Debugf("saved %d chart artifacts to %s", len(artifacts), r.outDir)
	return nil
}

// timeLabels produces one x-axis label per row. If not a single
// timestamp parses, the row index is used instead and a warning is
// logged.
func (r *Renderer) timeLabels(snap *store.Snapshot) []string {
	n := snap.Len()
	labels := make([]string, n)
	parsed := 0

	for i := 0; i < n; i++ {
		if t, ok := parseTimestamp(snap.Value(i, "timestamp")); ok {
			labels[i] = t.Format("15:04")
			parsed++
		}
	}

	if parsed == 0 && n > 0 {
		r.log.Warnf("all timestamps are invalid; using row index for the time axis")
		for i := range labels {
			labels[i] = fmt.Sprintf("%d", i)
		}
		return labels
	}

	for i := range labels {
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("%d", i)
		}
	}
	return labels
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// meanScores computes the mean neg/neu/pos per sentiment label.
func meanScores(snap *store.Snapshot, sentiments []model.Sentiment) (map[model.Sentiment][3]float64, error) {
	sums := make(map[model.Sentiment][3]float64)
	counts := make(map[model.Sentiment]int)

	for i := 0; i < snap.Len(); i++ {
		var vals [3]float64
		for j, col := range []string{"neg", "neu", "pos"} {
			v, err := snap.Float(i, col)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		label := sentiments[i]
		s := sums[label]
		for j := range s {
			s[j] += vals[j]
		}
		sums[label] = s
		counts[label]++
	}

	for label, s := range sums {
		for j := range s {
			s[j] /= float64(counts[label])
		}
		sums[label] = s
	}
	return sums, nil
}
