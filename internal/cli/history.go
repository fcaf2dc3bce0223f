package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amehta/credlens/internal/history"
)

var historyLimit int

// historyCmd lists past verdicts recorded by the TUI and one-shot runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		if cfg.HistoryPath == "" {
			return errors.New("history is disabled (no history path configured)")
		}

		entries, err := history.Load(cfg.HistoryPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("No analyses recorded yet.")
				return nil
			}
			return fmt.Errorf("load history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No analyses recorded yet.")
			return nil
		}

		for _, entry := range history.Recent(entries, historyLimit) {
			fmt.Printf("%s  %3d  %-8s  %s\n",
				entry.AnalyzedAt.Local().Format("2006-01-02 15:04"),
				entry.Score,
				entry.Modality,
				entry.Input,
			)
			if entry.Summary != "" {
				fmt.Printf("                       %s\n", history.Preview(entry.Summary, 100))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}
