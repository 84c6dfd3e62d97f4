package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/sentistream/internal/model"
	"github.com/ppiankov/sentistream/internal/store"
)

func snapshotFromCSV(t *testing.T, csv string) *store.Snapshot {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	snap, err := store.NewDataset(path).Read()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return snap
}

func TestSummarize_CountsAndMean(t *testing.T) {
	snap := snapshotFromCSV(t, strings.Join([]string{
		"text,timestamp,compound,sentiment",
		"a,2026-01-01,0.8,Positive",
		"b,2026-01-01,0.2,Positive",
		"c,2026-01-01,-0.6,Negative",
		"d,2026-01-01,0,Neutral",
		"",
	}, "\n"))

	sum, err := Summarize(snap)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sum.Total != 4 {
		t.Errorf("Expected total 4, got %d", sum.Total)
	}
	if sum.Counts[model.SentimentPositive] != 2 {
		t.Errorf("Expected 2 Positive, got %d", sum.Counts[model.SentimentPositive])
	}
	if sum.Counts[model.SentimentNegative] != 1 {
		t.Errorf("Expected 1 Negative, got %d", sum.Counts[model.SentimentNegative])
	}
	if sum.Counts[model.SentimentNeutral] != 1 {
		t.Errorf("Expected 1 Neutral, got %d", sum.Counts[model.SentimentNeutral])
	}

	wantMean := (0.8 + 0.2 - 0.6 + 0) / 4
	if diff := sum.MeanCompound - wantMean; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected mean %v, got %v", wantMean, sum.MeanCompound)
	}
}

func TestSummarize_EmptyDataset(t *testing.T) {
	snap := snapshotFromCSV(t, "text,timestamp,compound,sentiment\n")

	if _, err := Summarize(snap); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Expected ErrEmptyDataset, got %v", err)
	}
}

func TestSummarize_MissingColumns(t *testing.T) {
	snap := snapshotFromCSV(t, "text,timestamp\na,2026-01-01\n")

	_, err := Summarize(snap)
	if !errors.Is(err, store.ErrMissingColumns) {
		t.Fatalf("Expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "sentiment") || !strings.Contains(err.Error(), "compound") {
		t.Errorf("Expected both missing columns named, got %v", err)
	}
}

func TestRender_Format(t *testing.T) {
	sum := model.Summary{
		Total: 4,
		Counts: map[model.Sentiment]int{
			model.SentimentPositive: 2,
			model.SentimentNegative: 1,
			model.SentimentNeutral:  1,
		},
		MeanCompound: 0.1,
	}

	got := Render(sum)
	want := strings.Join([]string{
		"Sentiment Analysis Summary Report",
		strings.Repeat("=", 40),
		"Total messages analysed: 4",
		"",
		"Sentiment distribution:",
		"  Positive: 2 (50.00%)",
		"  Negative: 1 (25.00%)",
		"  Neutral: 1 (25.00%)",
		"",
		"Average compound score: 0.1000",
		strings.Repeat("=", 40),
		"",
	}, "\n")

	if got != want {
		t.Errorf("Expected report:\n%s\ngot:\n%s", want, got)
	}
}

func TestRender_ZeroCountLabelsStillListed(t *testing.T) {
	sum := model.Summary{
		Total:  1,
		Counts: map[model.Sentiment]int{model.SentimentPositive: 1},
	}

	got := Render(sum)
	if !strings.Contains(got, "  Negative: 0 (0.00%)") {
		t.Errorf("Expected zero-count Negative line, got:\n%s", got)
	}
	if !strings.Contains(got, "  Neutral: 0 (0.00%)") {
		t.Errorf("Expected zero-count Neutral line, got:\n%s", got)
	}
}

func TestWrite_CreatesArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", FileName)

	sum := model.Summary{Total: 1, Counts: map[model.Sentiment]int{model.SentimentNeutral: 1}}
	if err := Write(sum, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected report file, got %v", err)
	}
	if !strings.Contains(string(data), "Total messages analysed: 1") {
		t.Errorf("Expected rendered report in file, got:\n%s", data)
	}
}
