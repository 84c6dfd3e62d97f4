package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/sentistream/internal/logging"
)

func writeSource(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.jsonl")
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line + "\n")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Expected no error writing source, got %v", err)
	}
	return path
}

func validLine(text string) string {
	return fmt.Sprintf(`{"text":%q,"timestamp":"2026-01-01T10:00:00Z"}`, text)
}

func TestReadAll_SkipsInvalidLinesInOrder(t *testing.T) {
	path := writeSource(t,
		validLine("first"),
		`{"text":"no timestamp"}`,
		`not json at all`,
		validLine("second"),
		"",
		validLine("third"),
	)

	log := logging.New(&bytes.Buffer{}, false)
	r := NewReader(path, Options{}, log)

	records, err := r.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 valid records, got %d", len(records))
	}
	for i, want := range []string{"first", "second", "third"} {
		if records[i].Text != want {
			t.Errorf("Expected record %d to be %q, got %q", i, want, records[i].Text)
		}
	}

	// One warning per rejected line; blank lines are not rejections.
	if log.Warnings() != 2 {
		t.Errorf("Expected 2 warnings, got %d", log.Warnings())
	}
}

func TestStream_ChunksWithShortFinalBatch(t *testing.T) {
	path := writeSource(t,
		validLine("a"), validLine("b"), validLine("c"), validLine("d"), validLine("e"),
	)

	r := NewReader(path, Options{ChunkSize: 2}, logging.Discard())
	stream, err := r.Open()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = stream.Close() }()

	ctx := context.Background()
	var sizes []int
	for {
		batch, err := stream.Next(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if batch == nil {
			break
		}
		sizes = append(sizes, len(batch))
	}

	want := []int{2, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("Expected %d chunks, got %v", len(want), sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("Expected chunk %d of size %d, got %d", i, want[i], sizes[i])
		}
	}
	if stream.ValidCount() != 5 {
		t.Errorf("Expected 5 valid records counted, got %d", stream.ValidCount())
	}
}

func TestStream_ExhaustedReturnsNil(t *testing.T) {
	path := writeSource(t, validLine("only"))

	r := NewReader(path, Options{}, logging.Discard())
	stream, err := r.Open()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = stream.Close() }()

	ctx := context.Background()
	if batch, _ := stream.Next(ctx); len(batch) != 1 {
		t.Fatalf("Expected one record, got %v", batch)
	}
	for i := 0; i < 2; i++ {
		batch, err := stream.Next(ctx)
		if err != nil {
			t.Fatalf("Expected no error after exhaustion, got %v", err)
		}
		if batch != nil {
			t.Errorf("Expected nil batch after exhaustion, got %v", batch)
		}
	}
}

func TestOpen_MissingSource(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "absent.jsonl"), Options{}, logging.Discard())

	if _, err := r.Open(); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestReadAll_EmptySourceIsNotAnError(t *testing.T) {
	path := writeSource(t)

	log := logging.New(&bytes.Buffer{}, false)
	r := NewReader(path, Options{}, log)

	records, err := r.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for empty source, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
	if log.Warnings() != 1 {
		t.Errorf("Expected the zero-valid warning, got %d warnings", log.Warnings())
	}
}

func TestReadAll_AllLinesInvalid(t *testing.T) {
	path := writeSource(t, `garbage`, `{"text":""}`, `{}`)

	var buf bytes.Buffer
	log := logging.New(&buf, false)
	r := NewReader(path, Options{}, log)

	records, err := r.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
	// Three rejections plus the zero-valid diagnostic.
	if log.Warnings() != 4 {
		t.Errorf("Expected 4 warnings, got %d", log.Warnings())
	}
}

func TestStream_PacingDelaysSubsequentChunks(t *testing.T) {
	path := writeSource(t,
		validLine("a"), validLine("b"), validLine("c"), validLine("d"),
	)

	delay := 50 * time.Millisecond
	r := NewReader(path, Options{ChunkSize: 2, Delay: delay, Paced: true}, logging.Discard())
	stream, err := r.Open()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = stream.Close() }()

	ctx := context.Background()

	// Burst 1: the first full chunk is released without waiting.
	if batch, err := stream.Next(ctx); err != nil || len(batch) != 2 {
		t.Fatalf("Expected first chunk of 2, got %v (err %v)", batch, err)
	}
	first := time.Now()

	if batch, err := stream.Next(ctx); err != nil || len(batch) != 2 {
		t.Fatalf("Expected second chunk of 2, got %v (err %v)", batch, err)
	}
	if elapsed := time.Since(first); elapsed < delay-10*time.Millisecond {
		t.Errorf("Expected second chunk no earlier than ~%v after the first, got %v", delay, elapsed)
	}
}

func TestStream_PacingHonorsCancellation(t *testing.T) {
	path := writeSource(t, validLine("a"), validLine("b"))

	r := NewReader(path, Options{ChunkSize: 1, Delay: time.Minute, Paced: true}, logging.Discard())
	stream, err := r.Open()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer func() { _ = stream.Close() }()

	ctx, cancel := context.WithCancel(context.Background())

	if batch, err := stream.Next(ctx); err != nil || len(batch) != 1 {
		t.Fatalf("Expected first chunk, got %v (err %v)", batch, err)
	}

	cancel()
	if _, err := stream.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled from the pacing wait, got %v", err)
	}
}

func TestStream_MaxRecords(t *testing.T) {
	path := writeSource(t,
		validLine("a"), validLine("b"), validLine("c"), validLine("d"),
	)

	r := NewReader(path, Options{ChunkSize: 10, MaxRecords: 2}, logging.Discard())
	records, err := r.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records with MaxRecords=2, got %d", len(records))
	}
}
