package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/duck"
	"github.com/vovakirdan/golden-duck/internal/platform/tui"
)

var (
	flagDuck    string
	flagOffline bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a duck and play",
	Long: `Start the Golden Duck client.

Pick a duck, then press Space to start a session and fly. Each egg is
credited by the backend; the balance appears after the first egg.

Controls:
  Space/Up/W/Click  - Flap (first flap starts the session)
  R                 - Play again after a run / retry a failed start
  B/Esc             - Back to the duck picker
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  goldenduck play
  goldenduck play --duck "Blue Duck"
  goldenduck play --offline
  goldenduck play --api https://example.com/api --token $TOKEN`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDuck, "duck", "", "Skip the picker and fly this duck")
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Play against a built-in fake backend")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, logFile := fileLogger()
	defer logFile.Close()

	duckCfg := loadDuckConfig()
	backend := loadBackend()
	if flagOffline {
		var local *localBackend
		backend, local = useOffline(backend, logger)
		defer local.Close()
	}
	if backend.Token == "" {
		fmt.Fprintln(os.Stderr, "Warning: no backend token set (GOLDENDUCK_TOKEN or --token); sessions will be rejected.")
	}

	var start *duck.Duck
	if flagDuck != "" {
		key, ok := duck.Normalize(flagDuck)
		if !ok {
			logger.Warn("unknown duck, using default", "duck", flagDuck, "fallback", key)
			fmt.Fprintf(os.Stderr, "Warning: unknown duck %q, flying %s\n", flagDuck, duck.DisplayName(key))
		}
		d, _ := duck.ByKey(key)
		start = &d
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(logger)
	deps := tui.Deps{
		Duck:    duckCfg,
		API:     newClient(backend, logger),
		Store:   store,
		Logger:  logger,
		Timeout: backend.Timeout,
	}
	logger.Info("client starting", "api", backend.APIURL, "offline", flagOffline)

	runErr := tui.Run(deps, cfg, start)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
