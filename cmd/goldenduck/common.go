package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/golden-duck/internal/api"
	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/mockapi"
	"github.com/vovakirdan/golden-duck/internal/storage"
)

// offlineToken is used against the in-process backend when no token is set.
const offlineToken = "offline"

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger in the style used across the commands.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.goldenduck/duck.log since the terminal belongs to
// Bubble Tea. The returned closer must be called on exit.
func fileLogger() (*log.Logger, io.Closer) {
	path := config.UserPath("duck.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return newLogger(f, "goldenduck"), f
}

// loadDuckConfig loads the game tuning or exits.
func loadDuckConfig() config.DuckConfig {
	cfg, err := config.LoadDuck(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// loadBackend resolves backend settings from flags, environment and .env.
func loadBackend() config.Backend {
	b, err := config.LoadBackend(flagEnvFile, config.Backend{
		APIURL:  flagAPIURL,
		Token:   flagToken,
		Timeout: flagTimeout,
	})
	if err != nil {
		fail("%v", err)
	}
	return b
}

// newClient creates the backend client for the resolved settings.
func newClient(b config.Backend, logger *log.Logger) *api.Client {
	return api.New(b.APIURL, b.Token,
		api.WithLogger(logger.WithPrefix("api")),
		api.WithTimeout(b.Timeout),
	)
}

// openStore opens the history database. Errors are reported and the
// client continues without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// localBackend is a fake backend served on a loopback port.
type localBackend struct {
	URL    string
	server *http.Server
}

// startLocalBackend serves mockapi on 127.0.0.1 with a random port.
func startLocalBackend(cfg mockapi.Config, logger *log.Logger) (*localBackend, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("cannot listen: %w", err)
	}
	srv := &http.Server{
		Handler:           mockapi.New(cfg, logger.WithPrefix("mock-api")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("local backend stopped", "err", err)
		}
	}()
	return &localBackend{URL: "http://" + ln.Addr().String(), server: srv}, nil
}

// Close stops the local backend.
func (b *localBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return b.server.Shutdown(ctx)
}

// useOffline points the backend settings at a local fake backend.
func useOffline(b config.Backend, logger *log.Logger) (config.Backend, *localBackend) {
	local, err := startLocalBackend(mockapi.DefaultConfig(), logger)
	if err != nil {
		fail("starting local backend: %v", err)
	}
	b.APIURL = local.URL
	if b.Token == "" {
		b.Token = offlineToken
	}
	return b, local
}
