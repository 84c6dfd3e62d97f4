package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ppiankov/sentistream/internal/logging"
	"github.com/ppiankov/sentistream/internal/model"
	"github.com/ppiankov/sentistream/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outputDir     string
	logDir        string
	simulate      bool
	chunkSize     int
	delay         time.Duration
	maxRecords    int
	lexiconSource string
	lexiconCache  string
	engineName    string
	engineModel   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <input.jsonl>",
	Short: "Analyse a JSONL stream and write the dataset, report, and charts",
	Long: `Run executes the full analysis pipeline over a line-delimited JSON
source:
- Validate each line (text and timestamp are required)
- Normalize the text and remove stopwords
- Score sentiment polarity and label each record
- Accumulate results into a CSV dataset
- Write a plain-text summary report and chart artifacts

Example:
  sentistream run messages.jsonl
  sentistream run messages.jsonl --simulate --chunk-size 5 --delay 2s
  sentistream run messages.jsonl --engine openai --engine-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./sentistream-out", "directory for the dataset, report, and charts")
	runCmd.Flags().StringVar(&logDir, "log-dir", "", "directory for pipeline.log (default: <output-dir>/logs)")

	// Stream flags
	runCmd.Flags().BoolVar(&simulate, "simulate", false, "consume the source as a paced incremental stream")
	runCmd.Flags().IntVar(&chunkSize, "chunk-size", 1, "records per chunk in simulated mode")
	runCmd.Flags().DurationVar(&delay, "delay", 0, "pacing interval between chunks in simulated mode")
	runCmd.Flags().IntVar(&maxRecords, "max-records", 0, "stop after this many valid records (0 = unbounded)")

	// Lexicon flags
	runCmd.Flags().StringVar(&lexiconSource, "lexicon", "", "stopword source: embedded, a file path, or an http(s) URL")
	runCmd.Flags().StringVar(&lexiconCache, "lexicon-cache", "", "cache directory for remote lexicons (default: <output-dir>/.cache)")

	// Engine flags
	runCmd.Flags().StringVar(&engineName, "engine", "lexical", "sentiment engine (lexical, openai)")
	runCmd.Flags().StringVar(&engineModel, "engine-model", "", "model name for remote engines")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Input = args[0]
	cfg.OutputDir = outputDir
	cfg.ChunkSize = chunkSize
	cfg.Delay = delay
	cfg.Simulate = simulate
	cfg.Verbose = verbose
	cfg.MaxRecords = maxRecords

	cfg.LogDir = logDir
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.OutputDir, "logs")
	}

	if lexiconSource != "" {
		cfg.Lexicon.Source = lexiconSource
	}
	cfg.Lexicon.CacheDir = lexiconCache
	if cfg.Lexicon.CacheDir == "" {
		cfg.Lexicon.CacheDir = filepath.Join(cfg.OutputDir, ".cache")
	}

	cfg.Engine.Provider = engineName
	if engineModel != "" {
		cfg.Engine.Model = engineModel
	}
	if cfg.Engine.Provider == "openai" {
		cfg.Engine.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Engine.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	log, closeLog, err := logging.Open(cfg.LogDir, cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
