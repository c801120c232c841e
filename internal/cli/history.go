package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/store"
)

var (
	historyCase  string
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past processing runs",
	Long: `History lists past pipeline runs recorded in the local database,
newest first.

Example:
  satori history
  satori history --case youssef-v-equifax --limit 5`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyCase, "case", "", "filter by case ID")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := historyPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Println("No run history recorded yet.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := store.Open(ctx, path, newLogger())
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(ctx, historyCase, historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No run history recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tCASE\tSCORE\tDEFENDANTS\tCOUNTS\tWARNINGS\tDURATION\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.CaseID, r.ConfidenceScore, r.DefendantCount, r.CauseCount,
			r.WarningCount, r.Duration.Round(time.Millisecond), r.OutputPath)
	}
	return w.Flush()
}
