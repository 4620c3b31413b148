// goldenduck is a terminal client for the Golden Duck Flappy Duck game.
//
// Usage:
//
//	goldenduck play           - Pick a duck and play
//	goldenduck ducks          - List available ducks
//	goldenduck history        - Show local run history
//	goldenduck serve          - Start SSH server for remote play
//	goldenduck mock-api       - Run a local fake backend
//	goldenduck sim            - Let the autopilot play a session
//	goldenduck config         - Print the game tuning
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.goldenduck/duck.db)
//	--config <path>   - Game tuning YAML
//	--api <url>       - Backend base URL (env GOLDENDUCK_API_URL)
//	--token <token>   - Backend bearer token (env GOLDENDUCK_TOKEN)
//	--env <path>      - .env file with backend settings (default: .env)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagAPIURL  string
	flagToken   string
	flagEnvFile string
	flagTimeout time.Duration
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "goldenduck",
	Short: "Golden Duck - fly the duck, collect the eggs",
	Long: `Golden Duck is a terminal client for the Flappy Duck game.

Every run is a backend session: eggs you collect are credited by the
server and shown as your EGGS and USDT balance.

Available commands:
  play      - Pick a duck and play
  ducks     - List available ducks
  history   - Show local run history
  serve     - Start SSH server for remote play
  mock-api  - Run a local fake backend
  sim       - Let the autopilot play a session
  config    - Print the game tuning

Examples:
  goldenduck play
  goldenduck play --duck blue
  goldenduck play --offline
  goldenduck mock-api --listen :8787
  goldenduck sim --runs 5`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.goldenduck/duck.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api", "", "Backend base URL (overrides GOLDENDUCK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Backend bearer token (overrides GOLDENDUCK_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to .env file with backend settings")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-call backend timeout (overrides GOLDENDUCK_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(ducksCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
