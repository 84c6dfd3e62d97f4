package cli

import (
	"fmt"

	"github.com/ppiankov/sentistream/internal/logging"
	"github.com/ppiankov/sentistream/internal/store"
	"github.com/ppiankov/sentistream/internal/visual"
	"github.com/spf13/cobra"
)

var chartsOutputDir string

// chartsCmd represents the charts command
var chartsCmd = &cobra.Command{
	Use:   "charts <dataset.csv>",
	Short: "Render chart artifacts for an existing dataset",
	Long: `Charts rereads a previously written dataset and renders the chart
artifacts: compound score over time, sentiment distribution bars and
pie, average scores per label, and the HTML dashboard embedding them.

Example:
  sentistream charts sentistream-out/sentiment_results.csv -o charts/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := store.NewDataset(args[0]).Read()
		if err != nil {
			return err
		}

		log := logging.New(cmd.ErrOrStderr(), verbose)
		if err := visual.NewRenderer(chartsOutputDir, log).Render(snap); err != nil {
			return err
		}

		fmt.Printf("Charts written to %s\n", chartsOutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVarP(&chartsOutputDir, "output-dir", "o", "./sentistream-out", "directory for the chart artifacts")
}
