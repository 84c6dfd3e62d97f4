// Package store persists the accumulated dataset: a single flat CSV
// file, written once in batch mode or appended to per chunk in simulated
// mode, and reread in full to produce consistent snapshots for the
// report and chart sinks.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ppiankov/sentistream/internal/model"
)

// FileName is the dataset file name inside the output directory.
const FileName = "sentiment_results.csv"

// ErrMissingColumns marks a dataset whose shape does not satisfy a
// consumer's required columns. Shape problems are fatal to the run.
var ErrMissingColumns = errors.New("dataset missing required columns")

// derivedColumns are appended after the record's own fields, in this
// fixed order.
var derivedColumns = []string{"processed_text", "neg", "neu", "pos", "compound", "sentiment"}

// Dataset is the on-disk accumulated dataset. It is owned by the
// pipeline orchestrator: single writer, grows append-only within a run.
type Dataset struct {
	path string
}

// NewDataset creates a Dataset handle for the given file path.
func NewDataset(path string) *Dataset {
	return &Dataset{path: path}
}

// Path returns the dataset file path.
func (d *Dataset) Path() string { return d.path }

// Exists reports whether the dataset file is present on disk.
func (d *Dataset) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// WriteAll writes the entire dataset in one pass, header first,
// replacing any previous file. Batch-mode semantics: this run's whole
// output.
func (d *Dataset) WriteAll(records []model.ScoredRecord) error {
	columns := columnsFor(records)
	return d.write(columns, records, true)
}

// Append adds records to the dataset. The first append creates the file
// with a header row; later appends write headerless rows aligned to the
// header already on disk.
func (d *Dataset) Append(records []model.ScoredRecord) error {
	if len(records) == 0 {
		return nil
	}

	if !d.Exists() {
		return d.write(columnsFor(records), records, true)
	}

	columns, err := d.header()
	if err != nil {
		return err
	}
	return d.write(columns, records, false)
}

func (d *Dataset) write(columns []string, records []model.ScoredRecord, create bool) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if create {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(d.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if create {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, rec := range records {
		if err := w.Write(rowFor(rec, columns)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// header reads the column header from the file on disk.
func (d *Dataset) header() ([]string, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	return header, nil
}

// Read rereads the whole dataset from disk and returns an authoritative
// snapshot. This is deliberate O(total size) work: the sinks must only
// ever observe the complete persisted dataset.
func (d *Dataset) Read() (*Snapshot, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(all) == 0 {
		return &Snapshot{}, nil
	}

	snap := &Snapshot{
		Columns: all[0],
		rows:    all[1:],
		index:   make(map[string]int, len(all[0])),
	}
	for i, col := range all[0] {
		snap.index[col] = i
	}
	return snap, nil
}

// columnsFor derives the column layout: the fixed required fields, the
// sorted union of passthrough keys, then the derived score columns.
func columnsFor(records []model.ScoredRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec.Extra {
			seen[k] = struct{}{}
		}
	}
	extras := make([]string, 0, len(seen))
	for k := range seen {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	columns := append([]string{"text", "timestamp"}, extras...)
	return append(columns, derivedColumns...)
}

// rowFor renders one record into the given column layout. Columns the
// record does not carry are written empty.
func rowFor(rec model.ScoredRecord, columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case "text":
			row[i] = rec.Text
		case "timestamp":
			row[i] = rec.Timestamp
		case "processed_text":
			row[i] = rec.ProcessedText
		case "neg":
			row[i] = formatFloat(rec.Neg)
		case "neu":
			row[i] = formatFloat(rec.Neu)
		case "pos":
			row[i] = formatFloat(rec.Pos)
		case "compound":
			row[i] = formatFloat(rec.Compound)
		case "sentiment":
			row[i] = string(rec.Sentiment)
		default:
			row[i] = rec.Extra[col]
		}
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Snapshot is a read-only view of the dataset as reread from disk.
type Snapshot struct {
	Columns []string

	rows  [][]string
	index map[string]int
}

// Len returns the number of data rows.
func (s *Snapshot) Len() int { return len(s.rows) }

// HasColumn reports whether the snapshot carries the named column.
func (s *Snapshot) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// MissingColumns returns which of the given columns are absent.
func (s *Snapshot) MissingColumns(required ...string) []string {
	var missing []string
	for _, col := range required {
		if !s.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// Value returns the string value at row i for the named column, or ""
// when the column is absent or the row is ragged.
func (s *Snapshot) Value(i int, col string) string {
	idx, ok := s.index[col]
	if !ok || i < 0 || i >= len(s.rows) || idx >= len(s.rows[i]) {
		return ""
	}
	return s.rows[i][idx]
}

// Float parses the value at row i for the named column.
func (s *Snapshot) Float(i int, col string) (float64, error) {
	raw := s.Value(i, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: %w", i, col, err)
	}
	return v, nil
}
