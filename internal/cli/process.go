package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/model"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/pipeline"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/store"
)

var (
	outJSON     string
	outMD       string
	outputDir   string
	timeout     time.Duration
	workers     int
	noCache     bool
	cacheDir    string
	noMarkdown  bool
	noHistory   bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <case-folder>",
	Short: "Consolidate one case folder into a structured case record",
	Long: `Process reads every document in a case folder to:
- Extract candidate parties, dates, and case identity per document
- Classify each party's role under the FCRA
- Merge all documents into one case record by source priority
- Synthesize causes of action against the final defendants
- Validate the record and calculate a confidence score

Example:
  satori process ./cases/youssef-v-equifax
  satori process ./cases/youssef-v-equifax --json record.json --md record.md
  satori process ./cases/youssef-v-equifax --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: <output-dir>/<case-id>.json)")
	processCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	processCmd.Flags().StringVar(&outputDir, "output-dir", "./satori-records", "output directory for records")

	// Processing flags
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().IntVar(&workers, "workers", 4, "concurrent extraction workers")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
	processCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the extraction cache on disk at this path")
	processCmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "skip the Markdown digest")
	processCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording the run in history")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	caseDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger := newLogger()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := p.ProcessCase(ctx, caseDir)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	jsonPath := outJSON
	if jsonPath == "" {
		jsonPath = filepath.Join(outputDir, result.CaseID+".json")
	}
	mdPath := outMD
	if mdPath == "" && !noMarkdown {
		mdPath = filepath.Join(outputDir, result.CaseID+".md")
	}

	if err := p.RenderResult(result, jsonPath, mdPath, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !noHistory {
		recordHistory(logger, result, jsonPath, start)
	}

	return nil
}

// recordHistory appends the run to the history database. History is best
// effort and never fails a run.
func recordHistory(logger *slog.Logger, result *pipeline.CaseResult, jsonPath string, start time.Time) {
	path, err := historyPath()
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := store.Open(ctx, path, nil)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return
	}
	defer s.Close()

	run := store.Run{
		CaseID:          result.CaseID,
		RecordID:        result.Record.RecordID,
		ConfidenceScore: result.Record.ConfidenceScore,
		DefendantCount:  len(result.Record.Parties.Defendants),
		CauseCount:      len(result.Record.CausesOfAction),
		WarningCount:    len(result.Record.Warnings),
		DocumentCount:   result.DocumentCount,
		OutputPath:      jsonPath,
		StartedAt:       start,
		Duration:        time.Since(start),
	}
	if err := s.RecordRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

// historyPath returns the default history database location.
func historyPath() (string, error) {
	if p := viper.GetString("history_db"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".satori", "history.db"), nil
}

// buildConfig assembles the effective configuration from defaults, the
// config file, and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	cfg.Concurrency.ExtractionWorkers = workers
	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeMarkdown = !noMarkdown
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	return cfg, nil
}
