package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/pipeline"
)

var (
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <cases-root>",
	Short: "Process every case folder under a directory",
	Long: `Batch processes every immediate subdirectory of the given root as a
case folder. Each case produces its own record in the output directory.
Documents within a case are extracted concurrently; cases run one at a
time so that their console summaries stay readable.

Example:
  satori batch ./cases
  satori batch ./cases --output-dir ./records --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./satori-records", "output directory for records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntVar(&workers, "workers", 4, "concurrent extraction workers per case")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the extraction cache on disk at this path")
	batchCmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "skip the Markdown digests")
	batchCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording runs in history")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	logger := newLogger()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read cases root: %w", err)
	}

	var caseDirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			caseDirs = append(caseDirs, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(caseDirs)

	if len(caseDirs) == 0 {
		return fmt.Errorf("no case folders found under %s", root)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Processing %d case folders from %s\n\n", len(caseDirs), root)

	successCount := 0
	failureCount := 0

	for _, dir := range caseDirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		result, err := p.ProcessCase(ctx, dir)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(dir), err)
			continue
		}

		jsonPath := filepath.Join(outputDir, result.CaseID+".json")
		mdPath := ""
		if !noMarkdown {
			mdPath = filepath.Join(outputDir, result.CaseID+".md")
		}

		if err := p.RenderResult(result, jsonPath, mdPath, verbose); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: render failed: %v\n", result.CaseID, err)
			continue
		}

		if !noHistory {
			recordHistory(logger, result, jsonPath, start)
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (score: %.0f/100, defendants: %d)\n",
			result.CaseID, result.Record.ConfidenceScore, len(result.Record.Parties.Defendants))
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed, output in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d cases failed", failureCount, len(caseDirs))
	}
	return nil
}
