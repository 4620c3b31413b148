// Package headless plays Flappy Duck without a terminal: the autopilot
// flies, and session calls are made synchronously between ticks. It backs
// the sim command and end-to-end tests against a backend.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/games/flappyduck"
	"github.com/vovakirdan/golden-duck/internal/session"
)

// ErrTickLimit is returned when the run had to be cut off.
var ErrTickLimit = errors.New("headless: tick limit reached")

// Runner drives one game and its session.
type Runner struct {
	Game     *flappyduck.Game
	API      session.API
	Logger   *log.Logger   // nil: discard
	Timeout  time.Duration // per call, 5s if zero
	MaxTicks int           // 0: ten simulated minutes
	Skin     int           // duck id sent to start

	machine *session.Machine
}

// Report summarizes a finished run.
type Report struct {
	State           core.GameState
	Ticks           int
	SessionID       string
	WinNext         bool
	Start           session.Balances
	Final           session.Balances
	Earned          decimal.Decimal
	CollectsSent    int
	CollectsApplied int
	CollectsFailed  int
	EndErr          error
}

// Run plays one session to its end. The returned report is filled in as
// far as the run got, also on error.
func (r *Runner) Run(ctx context.Context, rc core.RuntimeConfig) (Report, error) {
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}
	if r.Timeout <= 0 {
		r.Timeout = 5 * time.Second
	}
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	maxTicks := r.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 600 * rc.TickRate
	}
	r.machine = session.NewMachine(r.Logger)
	r.Game.Reset(rc)

	var rep Report
	var runErr error
	for rep.Ticks = 0; rep.Ticks < maxTicks && !r.machine.Ended(); rep.Ticks++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		result := r.Game.Step(r.Game.Autopilot())
		rep.State = result.State
		if err := r.handleEvents(ctx, result.Events); err != nil {
			runErr = err
			break
		}
	}

	// Close a session that is still open so the backend is not left waiting
	if runErr == nil && !r.machine.Ended() {
		runErr = ErrTickLimit
		if req, err := r.machine.End(core.StatusOver); err == nil {
			r.call(ctx, req)
		}
	}

	r.fill(&rep)
	return rep, runErr
}

func (r *Runner) handleEvents(ctx context.Context, events []core.Event) error {
	for _, e := range events {
		switch e.Kind {
		case core.EventStart:
			req, err := r.machine.Start(r.Skin)
			if err != nil {
				return fmt.Errorf("headless: start: %w", err)
			}
			r.call(ctx, req)
			if err := r.machine.StartErr(); err != nil {
				return fmt.Errorf("headless: start: %w", err)
			}
			r.Game.SetLosing(!r.machine.WinNext())
			r.Game.Begin()

		case core.EventCollected:
			if req, err := r.machine.Collect(); err == nil {
				r.call(ctx, req)
			}

		case core.EventTierUp:
			r.Logger.Info("tier up", "tier", e.Tier, "collected", e.Count)

		case core.EventOver, core.EventFinished:
			outcome := core.StatusOver
			if e.Kind == core.EventFinished {
				outcome = core.StatusFinished
			}
			if req, err := r.machine.End(outcome); err == nil {
				r.call(ctx, req)
			}
		}
	}
	return nil
}

func (r *Runner) call(ctx context.Context, req session.Request) {
	callCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	r.machine.Apply(session.Do(callCtx, r.API, req))
}

func (r *Runner) fill(rep *Report) {
	m := r.machine
	rep.SessionID = string(m.SessionID())
	rep.WinNext = m.WinNext()
	rep.Start = m.InitialBalances()
	rep.Final = m.Balances()
	rep.EndErr = m.EndErr()
	rep.CollectsSent, rep.CollectsApplied, rep.CollectsFailed = m.CollectStats()

	earned, err := rep.Final.Earned(rep.Start)
	if err != nil {
		r.Logger.Warn("cannot compute earnings", "err", err)
		earned = decimal.Zero
	}
	rep.Earned = earned
}
