package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/export"
	"github.com/adestefa/satori-tm-legal-system-sub002/internal/pipeline"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <case-folder>",
	Short: "Consolidate a case folder and export it as an XLSX workbook",
	Long: `Export runs the full consolidation pipeline on a case folder and
writes the resulting record as a spreadsheet with Case, Defendants, and
Causes sheets.

Example:
  satori export ./cases/youssef-v-equifax
  satori export ./cases/youssef-v-equifax --out youssef.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "output XLSX path (default: <case-id>.xlsx)")
	exportCmd.Flags().IntVar(&workers, "workers", 4, "concurrent extraction workers")
	exportCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
}

func runExport(cmd *cobra.Command, args []string) error {
	caseDir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := newLogger()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.LLM.Provider = "" // Never call out during exports

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.ProcessCase(ctx, caseDir)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	out := exportOut
	if out == "" {
		out = result.CaseID + ".xlsx"
	}
	if filepath.Ext(out) == "" {
		out += ".xlsx"
	}

	svc := export.NewService(logger)
	if err := svc.ExportCaseFile(result.Record, out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Wrote workbook: %s\n", out)
	return nil
}
