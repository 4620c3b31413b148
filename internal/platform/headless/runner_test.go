package headless

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/golden-duck/internal/api"
	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/games/flappyduck"
	"github.com/vovakirdan/golden-duck/internal/mockapi"
)

func newRunner(t *testing.T, cfg mockapi.Config) (*Runner, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New(cfg, nil)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return &Runner{
		Game: flappyduck.New(config.DefaultDuckConfig()),
		API:  api.New(srv.URL, "sim-token"),
		Skin: 1,
	}, backend
}

func TestRunAgainstMockBackend(t *testing.T) {
	r, backend := newRunner(t, mockapi.DefaultConfig())

	rep, err := r.Run(context.Background(), core.RuntimeConfig{TickRate: 60, Seed: 7})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !rep.State.Status.Terminal() {
		t.Fatalf("run should end, got %v", rep.State.Status)
	}
	if rep.SessionID == "" || !rep.WinNext {
		t.Errorf("session = %q win_next=%v", rep.SessionID, rep.WinNext)
	}
	if rep.CollectsSent != rep.State.Collected || rep.CollectsApplied != rep.State.Collected {
		t.Errorf("collects sent/applied = %d/%d, collected %d", rep.CollectsSent, rep.CollectsApplied, rep.State.Collected)
	}
	if got := backend.Collects("sim-token"); got != rep.State.Collected {
		t.Errorf("backend saw %d collects, game collected %d", got, rep.State.Collected)
	}

	want := decimal.RequireFromString("0.10").Mul(decimal.NewFromInt(int64(rep.State.Collected)))
	if !rep.Earned.Equal(want) {
		t.Errorf("earned = %s, want %s", rep.Earned, want)
	}
	if rep.EndErr != nil {
		t.Errorf("end failed: %v", rep.EndErr)
	}
}

func TestRunStartFailure(t *testing.T) {
	cfg := mockapi.DefaultConfig()
	cfg.FailStarts = 1
	r, _ := newRunner(t, cfg)

	rep, err := r.Run(context.Background(), core.RuntimeConfig{TickRate: 60, Seed: 7})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 503 {
		t.Fatalf("err = %v, want 503 api error", err)
	}
	if rep.State.Status != core.StatusIdle {
		t.Errorf("game must not run after a failed start, got %v", rep.State.Status)
	}
}

func TestRunTickLimitClosesSession(t *testing.T) {
	r, _ := newRunner(t, mockapi.DefaultConfig())
	r.MaxTicks = 60

	rep, err := r.Run(context.Background(), core.RuntimeConfig{TickRate: 60, Seed: 7})
	if !errors.Is(err, ErrTickLimit) {
		t.Fatalf("err = %v, want ErrTickLimit", err)
	}
	if rep.SessionID == "" {
		t.Error("session should have started")
	}
}

func TestRunCanceled(t *testing.T) {
	r, _ := newRunner(t, mockapi.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, core.RuntimeConfig{TickRate: 60, Seed: 7}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
