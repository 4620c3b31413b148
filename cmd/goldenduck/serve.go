package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/golden-duck/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Golden Duck SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own duck picker, game and backend session.
All connections share the backend token and the run history of this server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.goldenduck/host_key

Examples:
  goldenduck serve                           # Listen on :23234 with auto-generated key
  goldenduck serve --ssh :2222               # Listen on port 2222
  goldenduck serve --host-key ./my_host_key  # Use specific host key
  goldenduck serve --offline                 # Use the built-in fake backend

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagOffline, "offline", false, "Use a built-in fake backend")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "goldenduck-ssh")

	backend := loadBackend()
	if flagOffline {
		var local *localBackend
		backend, local = useOffline(backend, logger)
		defer local.Close()
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, tui.Deps{
		Duck:    loadDuckConfig(),
		API:     newClient(backend, logger),
		Store:   store,
		Logger:  logger,
		Timeout: backend.Timeout,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Golden Duck SSH server on %s\n", cfg.Address)
	fmt.Printf("Backend: %s\n", backend.APIURL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
