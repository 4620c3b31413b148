package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/golden-duck/internal/mockapi"
)

var (
	flagMockListen     string
	flagMockEggValue   string
	flagMockWinChance  float64
	flagMockFailStarts int
	flagMockStartUSDT  string
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Run a local fake backend",
	Long: `Serve GET /game/start and GET /game/check with an in-memory economy.

Accounts are keyed by bearer token. Every coin credits one egg and the
configured USDT value. Use it to develop and test the client without the
real backend.

Examples:
  goldenduck mock-api
  goldenduck mock-api --listen :9000 --egg-value 0.25
  goldenduck mock-api --token secret --win-chance 0.5
  GOLDENDUCK_API_URL=http://127.0.0.1:8787 GOLDENDUCK_TOKEN=dev goldenduck play`,
	Run: runMockAPI,
}

func init() {
	mockAPICmd.Flags().StringVar(&flagMockListen, "listen", "127.0.0.1:8787", "Address to listen on")
	mockAPICmd.Flags().StringVar(&flagMockEggValue, "egg-value", "0.10", "USDT credited per egg")
	mockAPICmd.Flags().Float64Var(&flagMockWinChance, "win-chance", 1, "Probability that win_next is true")
	mockAPICmd.Flags().IntVar(&flagMockFailStarts, "fail-starts", 0, "Reject this many starts with 503 first")
	mockAPICmd.Flags().StringVar(&flagMockStartUSDT, "start-usdt", "0", "Starting USDT balance per account")
}

func runMockAPI(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "mock-api")

	eggValue, err := decimal.NewFromString(flagMockEggValue)
	if err != nil {
		fail("invalid --egg-value %q: %v", flagMockEggValue, err)
	}
	startUSDT, err := decimal.NewFromString(flagMockStartUSDT)
	if err != nil {
		fail("invalid --start-usdt %q: %v", flagMockStartUSDT, err)
	}

	cfg := mockapi.DefaultConfig()
	cfg.Token = flagToken
	cfg.EggValue = eggValue
	cfg.WinChance = flagMockWinChance
	cfg.FailStarts = flagMockFailStarts
	cfg.StartUSDT = startUSDT
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	srv := &http.Server{
		Addr:              flagMockListen,
		Handler:           mockapi.New(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("listening", "address", flagMockListen, "egg_value", eggValue, "win_chance", cfg.WinChance)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}
}
