package cli

import (
	"fmt"

	"github.com/ppiankov/sentistream/internal/report"
	"github.com/ppiankov/sentistream/internal/store"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <dataset.csv>",
	Short: "Print the summary report for an existing dataset",
	Long: `Report rereads a previously written dataset and prints the summary:
total record count, per-label sentiment distribution, and the average
compound score.

Example:
  sentistream report sentistream-out/sentiment_results.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := store.NewDataset(args[0]).Read()
		if err != nil {
			return err
		}

		sum, err := report.Summarize(snap)
		if err != nil {
			return err
		}

		fmt.Print(report.Render(sum))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
