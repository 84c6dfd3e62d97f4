package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/sentistream/internal/logging"
	"github.com/ppiankov/sentistream/internal/model"
)

// ErrSourceNotFound is returned by Open when the input source does not
// exist. This is fatal to the run and happens before any records are
// produced.
var ErrSourceNotFound = errors.New("input source not found")

// Options configures a Reader.
type Options struct {
	// ChunkSize is the number of valid records buffered before the batch
	// is released. Defaults to 1.
	ChunkSize int

	// Delay is the inter-chunk pacing interval, honored only when Paced
	// is set.
	Delay time.Duration

	// Paced enables the pacing suspension between full chunks.
	Paced bool

	// MaxRecords bounds the number of valid records read; 0 means
	// unbounded.
	MaxRecords int
}

// Reader produces a lazy sequence of validated record batches from a
// line-delimited source. A Reader is a factory: each Open starts a fresh
// pass over the source.
type Reader struct {
	path      string
	opts      Options
	validator *Validator
	log       *logging.Logger
}

// NewReader creates a Reader for the given source path.
func NewReader(path string, opts Options, log *logging.Logger) *Reader {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1
	}
	return &Reader{
		path:      path,
		opts:      opts,
		validator: NewValidator(),
		log:       log,
	}
}

// Open opens the source and returns a Stream positioned at the start.
// A missing source fails with ErrSourceNotFound.
func (r *Reader) Open() (*Stream, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, r.path)
		}
		return nil, fmt.Errorf("open source: %w", err)
	}

	s := &Stream{
		reader:  r,
		file:    f,
		scanner: bufio.NewScanner(f),
	}
	if r.opts.Paced && r.opts.Delay > 0 {
		// Burst 1: the first full chunk is released immediately, each
		// subsequent one waits out the pacing interval.
		s.limiter = rate.NewLimiter(rate.Every(r.opts.Delay), 1)
	}
	return s, nil
}

// ReadAll drains the whole source in one pass with pacing disabled, the
// batch-mode entry point.
func (r *Reader) ReadAll(ctx context.Context) ([]model.Record, error) {
	drain := *r
	drain.opts.Paced = false

	stream, err := drain.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = stream.Close() }()

	var records []model.Record
	for {
		batch, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return records, nil
		}
		records = append(records, batch...)
	}
}

// Stream is one sequential pass over the source. It is not restartable;
// reopen the Reader for a fresh pass.
type Stream struct {
	reader  *Reader
	file    *os.File
	scanner *bufio.Scanner
	limiter *rate.Limiter

	line     int
	valid    int
	rejected int
	done     bool
}

// Next returns the next batch of valid records, suspending for the
// pacing interval between full chunks when pacing is on. The final batch
// may be shorter than the chunk size. After the source is exhausted Next
// returns (nil, nil); zero valid records in total is not an error.
func (s *Stream) Next(ctx context.Context) (model.Batch, error) {
	if s.done {
		return nil, nil
	}

	opts := s.reader.opts
	var buf model.Batch

	for s.scanner.Scan() {
		s.line++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		rec, rej := s.reader.validator.Validate(line, s.line)
		if rej != nil {
			s.rejected++
			s.reader.log.Warnf("skipping %s", rej)
			continue
		}

		s.valid++
		buf = append(buf, rec)

		if opts.MaxRecords > 0 && s.valid >= opts.MaxRecords {
			s.finish()
			return buf, nil
		}

		if len(buf) >= opts.ChunkSize {
			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					return nil, fmt.Errorf("pacing wait: %w", err)
				}
			}
			return buf, nil
		}
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	s.finish()
	if len(buf) == 0 {
		return nil, nil
	}
	return buf, nil
}

// finish marks the stream exhausted and logs the zero-valid diagnostic.
func (s *Stream) finish() {
	if s.done {
		return
	}
	s.done = true
	if s.valid == 0 {
		s.reader.log.Warnf("no valid records found in %s", s.reader.path)
	}
}

// ValidCount reports how many valid records have been produced so far.
func (s *Stream) ValidCount() int { return s.valid }

// RejectedCount reports how many lines have been rejected so far.
func (s *Stream) RejectedCount() int { return s.rejected }

// Close releases the underlying source.
func (s *Stream) Close() error {
	return s.file.Close()
}
