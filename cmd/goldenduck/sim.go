package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/duck"
	"github.com/vovakirdan/golden-duck/internal/games/flappyduck"
	"github.com/vovakirdan/golden-duck/internal/platform/headless"
	"github.com/vovakirdan/golden-duck/internal/present"
	"github.com/vovakirdan/golden-duck/internal/storage"
)

var (
	flagSimRuns   int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play a session",
	Long: `Play without a terminal UI: a simple autopilot flies the duck and every
session call is made against the backend as in a real run. Prints the
outcome of each run.

Examples:
  goldenduck sim --offline
  goldenduck sim --runs 10 --seed 42 --offline
  goldenduck sim --api http://127.0.0.1:8787 --token dev --record`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of sessions to play")
	simCmd.Flags().StringVar(&flagDuck, "duck", "", "Duck to fly")
	simCmd.Flags().BoolVar(&flagOffline, "offline", false, "Use a built-in fake backend")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save runs to the local history")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "sim")

	backend := loadBackend()
	if flagOffline {
		var local *localBackend
		backend, local = useOffline(backend, logger)
		defer local.Close()
	}

	key, ok := duck.Normalize(flagDuck)
	if flagDuck != "" && !ok {
		logger.Warn("unknown duck, using default", "duck", flagDuck, "fallback", key)
	}
	d, _ := duck.ByKey(key)

	var store *storage.Store
	if flagSimRecord {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	duckCfg := loadDuckConfig()
	client := newClient(backend, logger)
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for i := 0; i < flagSimRuns; i++ {
		runner := &headless.Runner{
			Game:    flappyduck.New(duckCfg),
			API:     client,
			Logger:  logger,
			Timeout: backend.Timeout,
			Skin:    d.ID,
		}
		rep, err := runner.Run(ctx, core.RuntimeConfig{TickRate: flagFPS, Seed: seed + int64(i)})
		printReport(i+1, rep, duckCfg.Display.Decimals)
		if err != nil && !errors.Is(err, headless.ErrTickLimit) {
			fail("run %d: %v", i+1, err)
		}
		if store != nil && rep.SessionID != "" {
			record(store, d, rep)
		}
	}
}

func printReport(n int, rep headless.Report, decimals int) {
	result := rep.State.Reason.String()
	if rep.State.Status == core.StatusFinished {
		result = "win"
	}
	fmt.Printf("Run %d: session %s  score %d  eggs %d  %s  (%.1fs)\n",
		n, rep.SessionID, rep.State.Score, rep.State.Collected, result,
		float64(rep.Ticks)/float64(max(flagFPS, 1)))
	fmt.Printf("  collects sent/applied/failed: %d/%d/%d  win_next: %v\n",
		rep.CollectsSent, rep.CollectsApplied, rep.CollectsFailed, rep.WinNext)
	if !rep.Final.IsZero() {
		fmt.Printf("  balance: %s  earned: $%s\n",
			present.FormatLine(rep.Final.Eggs, rep.Final.USDT, decimals),
			present.Truncate(rep.Earned.String(), decimals))
	}
	if rep.EndErr != nil {
		fmt.Printf("  end failed: %v\n", rep.EndErr)
	}
}

func record(store *storage.Store, d duck.Duck, rep headless.Report) {
	run := storage.Run{
		SessionID: rep.SessionID,
		DuckKey:   d.Key,
		Score:     rep.State.Score,
		Collected: rep.State.Collected,
		Outcome:   rep.State.Status.String(),
		Reason:    rep.State.Reason.String(),
		Eggs:      rep.Final.Eggs,
		USDT:      rep.Final.USDT,
		StartUSDT: rep.Start.USDT,
	}
	if _, err := store.SaveRun(run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
	}
}
