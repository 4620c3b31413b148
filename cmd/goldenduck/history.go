package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/golden-duck/internal/duck"
	"github.com/vovakirdan/golden-duck/internal/present"
	"github.com/vovakirdan/golden-duck/internal/storage"
)

var (
	flagHistoryTop   bool
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show local run history",
	Long: `Display recent runs recorded on this machine, or the best ones.

Balances are the values the backend reported when each run ended.

Examples:
  goldenduck history
  goldenduck history --top --limit 5
  goldenduck history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryTop, "top", false, "Show best runs instead of recent ones")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the run history")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			fail("%v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	var runs []storage.Run
	title := "Recent runs"
	if flagHistoryTop {
		title = "Best runs"
		runs, err = store.TopRuns(flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	decimals := loadDuckConfig().Display.Decimals

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'goldenduck play' to start your history!")
		return
	}

	fmt.Printf("  %-3s  %-12s  %-5s  %-4s  %-8s  %-9s  %s\n", "#", "Duck", "Score", "Eggs", "Result", "Earned", "Date")
	fmt.Printf("  %-3s  %-12s  %-5s  %-4s  %-8s  %-9s  %s\n", "-", "----", "-----", "----", "------", "------", "----")
	for i, r := range runs {
		result := r.Reason
		if r.Outcome == "finished" {
			result = "win"
		}
		fmt.Printf("  %-3d  %-12s  %-5d  %-4d  %-8s  %-9s  %s\n",
			i+1, duck.DisplayName(r.DuckKey), r.Score, r.Collected, result,
			present.Truncate(r.Earned().String(), decimals), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Avg: %.1f  Eggs: %d  Earned: $%s\n",
			stats.Runs, stats.Wins, stats.HighScore, stats.AvgScore, stats.Collected,
			present.Truncate(stats.Earned.String(), decimals))
		if last := runs[0]; !flagHistoryTop && last.USDT != "" {
			fmt.Printf("Last balance: %s\n", present.FormatLine(last.Eggs, last.USDT, decimals))
		}
	}
}
