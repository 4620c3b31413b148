// Package flappyduck implements the Flappy Duck run: a duck flaps through
// procedurally generated pipes collecting eggs until it collects them all,
// crashes, or stalls.
//
// The simulation works in world pixels with a fixed time step. It has no
// knowledge of the backend; the platform turns the events returned by Step
// into session calls and reports the session start back through Begin.
package flappyduck

import (
	"math/rand"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
)

// Game implements the Flappy Duck game logic.
type Game struct {
	cfg     config.DuckConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	dt      float64 // Seconds per tick

	obstacles *ObstacleGenerator
	items     *ItemSpawner
	guard     *IdleGuard

	duckY    float64 // Duck centre
	duckVY   float64 // Vertical velocity, px/s (negative = up)
	nextFlap int     // Earliest tick a flap is accepted

	status    core.Status
	reason    core.EndReason
	score     int     // Gaps passed
	collected int     // Eggs picked up
	tier      int     // Current obstacle tier
	speed     float64 // Speed given to newly spawned obstacles

	tickCount      int  // Ticks since Reset
	runTicks       int  // Ticks since Begin
	lockTicks      int  // Input is ignored for this many ticks after Reset
	startRequested bool // EventStart was emitted and Begin has not been called

	events []core.Event
}

// New creates a new Flappy Duck game with the given tuning.
func New(cfg config.DuckConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappyduck"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Duck"
}

// Config returns the tuning the game runs with.
func (g *Game) Config() config.DuckConfig {
	return g.cfg
}

// Reset initializes or restarts the game in the idle state.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc
	g.dt = 1.0 / float64(rc.TickRate)
	g.rng = rand.New(rand.NewSource(rc.Seed))

	if g.obstacles == nil {
		g.obstacles = NewObstacleGenerator(&g.cfg, g.rng, rc.TickRate)
		g.items = NewItemSpawner(&g.cfg, g.rng)
	} else {
		g.obstacles.rng = g.rng
		g.obstacles.Reset(rc.TickRate)
		g.items.rng = g.rng
		g.items.Reset()
	}
	g.guard = NewIdleGuard(g.cfg.Guard.IdleTimeout, rc.TickRate)

	g.duckY = g.cfg.World.Height / 2
	g.duckVY = 0
	g.nextFlap = 0
	g.status = core.StatusIdle
	g.reason = core.ReasonNone
	g.score = 0
	g.collected = 0
	g.tier = g.cfg.Obstacles.Gap.Tier(0)
	g.speed = g.cfg.Obstacles.BaseSpeed
	g.tickCount = 0
	g.runTicks = 0
	g.lockTicks = g.cfg.Guard.InputLockMS * rc.TickRate / 1000
	g.startRequested = false
	g.events = nil
}

// SetLosing sets the explicit losing flag from the session's prediction.
func (g *Game) SetLosing(losing bool) {
	g.obstacles.SetLosing(losing)
}

// Begin moves an idle game to running once the session has started.
// It is a no-op in any other state.
func (g *Game) Begin() {
	if g.status != core.StatusIdle {
		return
	}
	g.status = core.StatusRunning
	g.startRequested = false
	g.runTicks = 0
	g.guard.Arm(0)
	g.duckVY = g.cfg.Physics.FlapVelocity
	g.nextFlap = g.tickCount + g.cfg.Physics.FlapCooldownTicks
}

// CancelStart lets the next input request a session start again.
// Used after a failed start.
func (g *Game) CancelStart() {
	g.startRequested = false
}

// Step advances the game by one tick.
// Events in the result belong to the caller.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	g.tickCount++

	switch g.status {
	case core.StatusIdle:
		g.stepIdle(in)
	case core.StatusRunning:
		g.stepRunning(in)
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// stepIdle waits for the first input after the input lock.
func (g *Game) stepIdle(in core.InputFrame) {
	if g.tickCount <= g.lockTicks || g.startRequested {
		return
	}
	if in.Has(core.ActionFlap) || in.Has(core.ActionConfirm) {
		g.startRequested = true
		g.emit(core.Event{Kind: core.EventStart})
	}
}

// stepRunning runs one simulation tick in a fixed order: flap, integrate,
// spawn, move, score, collect, lethal checks, idle guard.
func (g *Game) stepRunning(in core.InputFrame) {
	g.runTicks++
	phys := g.cfg.Physics

	// Flap
	if in.Has(core.ActionFlap) && g.tickCount >= g.nextFlap {
		g.duckVY = phys.FlapVelocity
		g.nextFlap = g.tickCount + max(1, phys.FlapCooldownTicks)
	}

	// Integrate
	g.duckVY += phys.Gravity * g.dt
	if phys.MaxFallSpeed > 0 && g.duckVY > phys.MaxFallSpeed {
		g.duckVY = phys.MaxFallSpeed
	}
	g.duckY += g.duckVY * g.dt

	// Spawn
	if g.obstacles.Tick() {
		o := g.obstacles.Spawn(g.collected, g.speed)
		g.items.SpawnFor(o)
	}

	// Move and cull
	g.obstacles.Advance(g.dt)
	g.items.Advance(g.dt)

	box := g.DuckRect()

	// Gap scoring
	triggerW := g.cfg.Obstacles.PipeWidth + g.cfg.Obstacles.TriggerPadding
	obs := g.obstacles.Obstacles()
	for i := range obs {
		if obs[i].Scored || !box.Intersects(obs[i].TriggerRect(triggerW)) {
			continue
		}
		obs[i].Scored = true
		g.score++
		g.speed = min(g.speed+g.cfg.Obstacles.SpeedStep, g.cfg.Obstacles.MaxSpeed)
		g.guard.Progress(g.runTicks)
		g.emit(core.Event{Kind: core.EventScored, ID: obs[i].ID, Count: g.score})
	}

	// Collection; the win is latched before any lethal check
	if g.collect(box) {
		return
	}

	// Lethal checks
	if reason := g.lethal(box); reason != core.ReasonNone {
		g.end(core.StatusOver, reason)
		return
	}

	// Idle guard
	if g.guard.Expired(g.runTicks) {
		g.end(core.StatusOver, core.ReasonIdle)
	}
}

// collect picks up every overlapping egg. Returns true if the run was won.
func (g *Game) collect(box core.RectF) bool {
	size := g.cfg.Items.Size
	items := g.items.Items()
	won := false
	for i := range items {
		if items[i].Collected || !box.Intersects(items[i].Rect(size)) {
			continue
		}
		items[i].Collected = true
		g.collected++
		g.guard.Progress(g.runTicks)
		g.emit(core.Event{Kind: core.EventCollected, ID: items[i].ID, Count: g.collected})

		if tier := g.cfg.Obstacles.Gap.Tier(g.collected); tier != g.tier {
			g.tier = tier
			g.emit(core.Event{Kind: core.EventTierUp, Tier: tier, Count: g.collected})
		}

		if g.collected >= g.cfg.Items.Cap {
			won = true
			break
		}
	}
	g.items.Prune()

	if won {
		g.end(core.StatusFinished, core.ReasonWin)
	}
	return won
}

// lethal returns why the duck dies at its current position, if it does.
func (g *Game) lethal(box core.RectF) core.EndReason {
	w := g.cfg.World
	p := g.cfg.Player
	switch {
	case g.obstacles.Collides(box):
		return core.ReasonPipe
	case g.duckY+p.Size/2 >= w.Height-w.GroundHeight:
		return core.ReasonGround
	case g.duckY > w.Height-p.FloorSlack || g.duckY < p.CeilingY:
		return core.ReasonBounds
	}
	return core.ReasonNone
}

func (g *Game) end(status core.Status, reason core.EndReason) {
	g.status = status
	g.reason = reason
	kind := core.EventOver
	if status == core.StatusFinished {
		kind = core.EventFinished
	}
	g.emit(core.Event{Kind: kind, Reason: reason, Count: g.collected})
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// DuckX returns the duck's fixed horizontal lane.
func (g *Game) DuckX() float64 {
	return g.cfg.World.Width * g.cfg.Player.LaneRatio
}

// DuckRect returns the duck's collision rectangle.
func (g *Game) DuckRect() core.RectF {
	size := g.cfg.Player.Size
	return core.CenteredRectF(g.DuckX(), g.duckY, size, size)
}

// InputLocked reports whether the next tick still ignores input.
func (g *Game) InputLocked() bool {
	return g.tickCount < g.lockTicks
}

// IdleRemaining returns the seconds left before the idle guard trips.
func (g *Game) IdleRemaining() float64 {
	if g.status != core.StatusRunning {
		return g.cfg.Guard.IdleTimeout
	}
	return float64(g.guard.Remaining(g.runTicks)) * g.dt
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		Collected: g.collected,
		Tier:      g.tier,
		Status:    g.status,
		Reason:    g.reason,
	}
}
