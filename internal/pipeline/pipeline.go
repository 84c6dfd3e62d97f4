// Package pipeline wires the full run: ingestion, normalization,
// scoring, the accumulated dataset, and the report and chart sinks.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/ppiankov/sentistream/internal/cache"
	"github.com/ppiankov/sentistream/internal/ingest"
	"github.com/ppiankov/sentistream/internal/lexicon"
	"github.com/ppiankov/sentistream/internal/logging"
	"github.com/ppiankov/sentistream/internal/model"
	"github.com/ppiankov/sentistream/internal/normalize"
	"github.com/ppiankov/sentistream/internal/report"
	"github.com/ppiankov/sentistream/internal/sentiment"
	"github.com/ppiankov/sentistream/internal/store"
	"github.com/ppiankov/sentistream/internal/visual"
)

// Pipeline is the single-run orchestrator. Stages run sequentially in
// one logical thread; record order is the source's line order
// throughout.
type Pipeline struct {
	cfg        *model.Config
	log        *logging.Logger
	reader     *ingest.Reader
	normalizer *normalize.Normalizer
	scorer     *sentiment.Scorer
	dataset    *store.Dataset
	charts     *visual.Renderer
	runID      string
}

// New assembles a Pipeline from configuration.
func New(cfg *model.Config, log *logging.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var lexCache cache.Cache
	if cfg.Lexicon.CacheDir != "" {
		lexCache = cache.NewLayeredCache(cfg.Lexicon.CacheTTL, cfg.Lexicon.CacheDir, cfg.Lexicon.CacheTTL)
	}
	loader := lexicon.NewLoader(cfg.Lexicon.Source, lexCache, log)

	engine, err := sentiment.NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	reader := ingest.NewReader(cfg.Input, ingest.Options{
		ChunkSize:  cfg.ChunkSize,
		Delay:      cfg.Delay,
		Paced:      cfg.Simulate,
		MaxRecords: cfg.MaxRecords,
	}, log)

	return &Pipeline{
		cfg:        cfg,
		log:        log,
		reader:     reader,
		normalizer: normalize.New(loader),
		scorer:     sentiment.NewScorer(engine),
		dataset:    store.NewDataset(filepath.Join(cfg.OutputDir, store.FileName)),
		charts:     visual.NewRenderer(cfg.OutputDir, log),
		runID:      ulid.Make().String(),
	}, nil
}

// RunID returns this run's unique identifier.
func (p *Pipeline) RunID() string { return p.runID }

// Run executes the pipeline in the configured mode. Fatal errors are
// logged with run context before being returned; the partial dataset
// stays on disk for inspection.
func (p *Pipeline) Run(ctx context.Context) error {
	p.log.Infof("run %s starting: input=%s engine=%s simulate=%v",
		p.runID, p.cfg.Input, p.scorer.Engine().Name(), p.cfg.Simulate)

	if err := p.run(ctx); err != nil {
		p.log.Errorf("run %s failed: %v", p.runID, err)
		return err
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context) error {
	if err := p.normalizer.EnsureLoaded(ctx); err != nil {
		return fmt.Errorf("load stopword lexicon: %w", err)
	}

	if p.cfg.Simulate {
		return p.runSimulated(ctx)
	}
	return p.runBatch(ctx)
}

// runBatch drains the source in one pass, writes the whole dataset with
// a fresh header, then produces the report and charts from a full
// reread.
func (p *Pipeline) runBatch(ctx context.Context) error {
	records, err := p.reader.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		p.log.Infof("run %s: nothing to analyse, no artifacts written", p.runID)
		return nil
	}

	scored, err := p.process(ctx, records)
	if err != nil {
		return err
	}

	if err := p.dataset.WriteAll(scored); err != nil {
		return err
	}
	p.log.Infof("run %s: wrote %d records to %s", p.runID, len(scored), p.dataset.Path())

	snap, err := p.dataset.Read()
	if err != nil {
		return err
	}
	if err := p.writeReport(snap); err != nil {
		return err
	}
	if err := p.charts.Render(snap); err != nil {
		return err
	}

	p.log.Infof("run %s complete: %d records analysed", p.runID, snap.Len())
	return nil
}

// runSimulated consumes the source chunk by chunk with pacing on,
// appending each scored chunk and re-rendering charts from a full
// reread, then writes the report once at the end.
func (p *Pipeline) runSimulated(ctx context.Context) error {
	stream, err := p.reader.Open()
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	chunks := 0
	for {
		batch, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		if batch == nil {
			break
		}

		scored, err := p.process(ctx, batch)
		if err != nil {
			return err
		}

		if err := p.dataset.Append(scored); err != nil {
			return err
		}

		snap, err := p.dataset.Read()
		if err != nil {
			return err
		}
		if err := p.charts.Render(snap); err != nil {
			return err
		}

		chunks++
		p.log.Infof("run %s: chunk %d appended (%d records, %d total)",
			p.runID, chunks, len(scored), snap.Len())
	}

	if stream.ValidCount() == 0 {
		p.log.Infof("run %s: nothing to analyse, no artifacts written", p.runID)
		return nil
	}

	// The last chunk iteration already rendered charts from the final
	// snapshot; only the summary report remains.
	snap, err := p.dataset.Read()
	if err != nil {
		return err
	}
	if err := p.writeReport(snap); err != nil {
		return err
	}

	p.log.Infof("run %s complete: %d records analysed", p.runID, snap.Len())
	return nil
}

// process normalizes and scores a batch, preserving order.
func (p *Pipeline) process(ctx context.Context, records []model.Record) ([]model.ScoredRecord, error) {
	scored := make([]model.ScoredRecord, 0, len(records))
	for _, rec := range records {
		normalized := model.NormalizedRecord{
			Record:        rec,
			ProcessedText: p.normalizer.Normalize(rec.Text),
		}

		sr, err := p.scorer.Score(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("score line %d: %w", rec.Line, err)
		}

		p.log.Debugf("line %d scored %s (compound %.4f)", rec.Line, sr.Sentiment, sr.Compound)
		scored = append(scored, sr)
	}
	return scored, nil
}

// writeReport summarizes the persisted snapshot and writes the summary
// artifact.
func (p *Pipeline) writeReport(snap *store.Snapshot) error {
	sum, err := report.Summarize(snap)
	if err != nil {
		return err
	}

	reportPath := filepath.Join(p.cfg.OutputDir, report.FileName)
	if err := report.Write(sum, reportPath); err != nil {
		return err
	}
	p.log.Infof("run %s: summary report written to %s", p.runID, reportPath)
	return nil
}
