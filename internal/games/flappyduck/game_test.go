package flappyduck

import (
	"testing"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// hoverConfig keeps the duck still and obstacles away so tests can place
// entities by hand.
func hoverConfig() config.DuckConfig {
	cfg := config.DefaultDuckConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.FlapVelocity = 0
	cfg.Obstacles.FirstSpawnDelay = 1000
	return cfg
}

func startedGame(cfg config.DuckConfig, seed int64) *Game {
	g := New(cfg)
	g.Reset(runtimeConfig(seed))
	g.Begin()
	return g
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func runAutopilot(g *Game, ticks int) []core.Event {
	var all []core.Event
	for i := 0; i < ticks; i++ {
		result := g.Step(g.Autopilot())
		all = append(all, result.Events...)
		for _, e := range result.Events {
			if e.Kind == core.EventStart {
				g.Begin()
			}
		}
		if result.State.GameOver() {
			break
		}
	}
	return all
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	cfg := config.DefaultDuckConfig()

	g1 := New(cfg)
	g1.Reset(runtimeConfig(12345))
	ev1 := runAutopilot(g1, 3000)

	g2 := New(cfg)
	g2.Reset(runtimeConfig(12345))
	ev2 := runAutopilot(g2, 3000)

	if !g1.Snapshot().Equal(g2.Snapshot()) {
		t.Errorf("Determinism failed: snapshots differ\nrun1=%+v\nrun2=%+v", g1.State(), g2.State())
	}
	if len(ev1) != len(ev2) {
		t.Fatalf("Determinism failed: %d events vs %d", len(ev1), len(ev2))
	}
	for i := range ev1 {
		if ev1[i] != ev2[i] {
			t.Errorf("event %d differs: %+v vs %+v", i, ev1[i], ev2[i])
		}
	}
}

func TestGameDifferentSeedsDiffer(t *testing.T) {
	cfg := config.DefaultDuckConfig()
	g1 := startedGame(cfg, 1)
	g2 := startedGame(cfg, 2)
	for i := 0; i < 100; i++ {
		g1.Step(g1.Autopilot())
		g2.Step(g2.Autopilot())
	}
	o1 := g1.obstacles.Obstacles()
	o2 := g2.obstacles.Obstacles()
	if len(o1) == 0 || len(o2) == 0 {
		t.Fatal("expected an obstacle after 100 ticks")
	}
	if o1[0].GapCenterY == o2[0].GapCenterY && o1[0].GapSize == o2[0].GapSize {
		t.Error("different seeds should produce different obstacles")
	}
}

func TestGameReset(t *testing.T) {
	g := New(config.DefaultDuckConfig())
	g.Reset(runtimeConfig(42))
	runAutopilot(g, 500)

	g.Reset(runtimeConfig(42))

	s := g.Snapshot()
	if s.Status != core.StatusIdle {
		t.Errorf("Reset should return to idle, got %s", s.Status)
	}
	if s.Score != 0 || s.Collected != 0 {
		t.Errorf("Reset should clear counters, got score=%d collected=%d", s.Score, s.Collected)
	}
	if len(s.Obstacles) != 0 || len(s.Items) != 0 || s.Spawned != 0 || s.Placed != 0 {
		t.Error("Reset should clear obstacles and collectibles")
	}
	if s.Speed != 300 {
		t.Errorf("Reset should restore base speed, got %g", s.Speed)
	}
	if s.Losing {
		t.Error("Reset should clear the losing flag")
	}
}

func TestInputLockAndStartRequest(t *testing.T) {
	g := New(config.DefaultDuckConfig())
	g.Reset(runtimeConfig(1))

	flap := core.NewInputFrame()
	flap.Set(core.ActionFlap)

	// 500ms at 60 ticks/s
	for i := 0; i < 30; i++ {
		result := g.Step(flap)
		if countEvents(result.Events, core.EventStart) != 0 {
			t.Fatalf("input should be locked at tick %d", i+1)
		}
	}
	if g.InputLocked() {
		t.Error("lock should be over after 30 ticks")
	}

	result := g.Step(flap)
	if countEvents(result.Events, core.EventStart) != 1 {
		t.Fatal("first input after the lock should request a start")
	}
	if result.State.Status != core.StatusIdle {
		t.Errorf("game should stay idle until Begin, got %s", result.State.Status)
	}

	result = g.Step(flap)
	if countEvents(result.Events, core.EventStart) != 0 {
		t.Error("start should only be requested once")
	}

	g.CancelStart()
	result = g.Step(flap)
	if countEvents(result.Events, core.EventStart) != 1 {
		t.Error("CancelStart should allow a new start request")
	}

	g.Begin()
	if g.State().Status != core.StatusRunning {
		t.Errorf("Begin should start the run, got %s", g.State().Status)
	}
}

func TestIdleDoesNotSimulate(t *testing.T) {
	g := New(config.DefaultDuckConfig())
	g.Reset(runtimeConfig(1))
	y := g.duckY
	for i := 0; i < 600; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.duckY != y {
		t.Error("duck should not fall while idle")
	}
	if g.obstacles.Spawned() != 0 {
		t.Error("no obstacles should spawn while idle")
	}
}

func TestGameFlapPhysics(t *testing.T) {
	g := startedGame(config.DefaultDuckConfig(), 1)
	initialY := g.duckY

	flap := core.NewInputFrame()
	flap.Set(core.ActionFlap)
	g.Step(flap)

	// Duck should have moved up (negative Y direction)
	if g.duckY >= initialY {
		t.Errorf("Flap should move duck up, was %f, now %f", initialY, g.duckY)
	}
	want := -900 + 2000.0/60
	if diff := g.duckVY - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("velocity after flap = %f, want %f", g.duckVY, want)
	}
}

func TestGameGravity(t *testing.T) {
	g := startedGame(config.DefaultDuckConfig(), 1)
	g.duckY = 400
	g.duckVY = 0

	g.Step(core.NewInputFrame())

	// Duck should have fallen (positive Y direction due to gravity)
	if g.duckY <= 400 {
		t.Errorf("Gravity should pull duck down, Y is still %f", g.duckY)
	}
	if g.duckVY <= 0 {
		t.Errorf("Velocity should be positive after gravity, got %f", g.duckVY)
	}
}

func TestSpawnCadence(t *testing.T) {
	g := startedGame(func() config.DuckConfig {
		cfg := hoverConfig()
		cfg.Obstacles.FirstSpawnDelay = 1.5
		return cfg
	}(), 7)

	spawnTicks := []int{}
	for tick := 1; tick <= 300; tick++ {
		before := g.obstacles.Spawned()
		g.Step(core.NewInputFrame())
		if g.obstacles.Spawned() > before {
			spawnTicks = append(spawnTicks, tick)
		}
	}

	if len(spawnTicks) != 2 || spawnTicks[0] != 90 || spawnTicks[1] != 300 {
		t.Errorf("spawn ticks = %v, want [90 300]", spawnTicks)
	}
}

func TestCollectOncePerEgg(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.items.add(Collectible{X: g.DuckX(), Y: g.duckY})

	result := g.Step(core.NewInputFrame())
	if n := countEvents(result.Events, core.EventCollected); n != 1 {
		t.Fatalf("expected 1 collect event, got %d", n)
	}
	if result.State.Collected != 1 {
		t.Errorf("collected = %d, want 1", result.State.Collected)
	}

	for i := 0; i < 10; i++ {
		result = g.Step(core.NewInputFrame())
		if n := countEvents(result.Events, core.EventCollected); n != 0 {
			t.Fatalf("egg collected again on tick %d", i+2)
		}
	}
	if len(g.items.Items()) != 0 {
		t.Error("collected egg should be removed")
	}
}

func TestWinBeatsLethalHitSameTick(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.collected = 49
	// Duck touches the ground and the last egg in the same tick
	g.duckY = 790
	g.items.add(Collectible{X: g.DuckX(), Y: g.duckY})

	result := g.Step(core.NewInputFrame())

	if result.State.Status != core.StatusFinished {
		t.Fatalf("status = %s, want finished", result.State.Status)
	}
	if result.State.Reason != core.ReasonWin {
		t.Errorf("reason = %s, want win", result.State.Reason)
	}
	if countEvents(result.Events, core.EventFinished) != 1 {
		t.Error("expected a finished event")
	}
	if countEvents(result.Events, core.EventOver) != 0 {
		t.Error("lethal hit must not be reported after a win")
	}
	if countEvents(result.Events, core.EventCollected) != 1 {
		t.Error("the winning egg must still be reported as collected")
	}

	// Terminal: further steps change nothing
	result = g.Step(core.NewInputFrame())
	if len(result.Events) != 0 || result.State.Status != core.StatusFinished {
		t.Error("finished run should not emit further events")
	}
}

func TestLethalCollisions(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(g *Game)
		reason core.EndReason
	}{
		{
			name: "pipe",
			setup: func(g *Game) {
				g.obstacles.obstacles = append(g.obstacles.obstacles,
					Obstacle{ID: 1, X: g.DuckX(), GapCenterY: 100, GapSize: 100, Tier: 1})
			},
			reason: core.ReasonPipe,
		},
		{
			name:   "ground",
			setup:  func(g *Game) { g.duckY = 771 },
			reason: core.ReasonGround,
		},
		{
			name:   "ceiling",
			setup:  func(g *Game) { g.duckY = -51 },
			reason: core.ReasonBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := startedGame(hoverConfig(), 1)
			tt.setup(g)
			result := g.Step(core.NewInputFrame())
			if result.State.Status != core.StatusOver {
				t.Fatalf("status = %s, want over", result.State.Status)
			}
			if result.State.Reason != tt.reason {
				t.Errorf("reason = %s, want %s", result.State.Reason, tt.reason)
			}
			if countEvents(result.Events, core.EventOver) != 1 {
				t.Error("expected exactly one over event")
			}
		})
	}
}

func TestSafeNearGround(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.duckY = 769
	if result := g.Step(core.NewInputFrame()); result.State.Status != core.StatusRunning {
		t.Errorf("duck above the ground should survive, got %s (%s)", result.State.Status, result.State.Reason)
	}
}

func TestIdleGuardEndsRun(t *testing.T) {
	g := startedGame(hoverConfig(), 1)

	// 20s at 60 ticks/s
	for i := 1; i < 1200; i++ {
		if result := g.Step(core.NewInputFrame()); result.State.GameOver() {
			t.Fatalf("run ended early at tick %d", i)
		}
	}
	result := g.Step(core.NewInputFrame())
	if result.State.Status != core.StatusOver || result.State.Reason != core.ReasonIdle {
		t.Errorf("after 20s without progress: status=%s reason=%s, want over/idle",
			result.State.Status, result.State.Reason)
	}
}

func TestProgressResetsIdleGuard(t *testing.T) {
	g := startedGame(hoverConfig(), 1)

	for i := 0; i < 1000; i++ {
		g.Step(core.NewInputFrame())
	}
	g.items.add(Collectible{X: g.DuckX(), Y: g.duckY})
	g.Step(core.NewInputFrame()) // tick 1001 collects

	for i := 0; i < 1199; i++ {
		if result := g.Step(core.NewInputFrame()); result.State.GameOver() {
			t.Fatalf("collect should restart the idle window, ended %d ticks later", i+1)
		}
	}
	if result := g.Step(core.NewInputFrame()); result.State.Reason != core.ReasonIdle {
		t.Errorf("expected idle timeout 20s after the collect, got %s", result.State.Reason)
	}
}

func TestScoringSpeedsUpNewObstaclesOnly(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{ID: 1, X: g.DuckX(), GapCenterY: g.duckY, GapSize: 300, Tier: 1, Speed: 300})

	result := g.Step(core.NewInputFrame())
	if countEvents(result.Events, core.EventScored) != 1 || result.State.Score != 1 {
		t.Fatalf("expected one score, got %+v", result.State)
	}
	if g.speed != 305 {
		t.Errorf("speed = %g, want 305", g.speed)
	}
	if got := g.obstacles.Obstacles()[0].Speed; got != 300 {
		t.Errorf("existing obstacle speed changed to %g", got)
	}

	// Still inside the trigger: no double score
	result = g.Step(core.NewInputFrame())
	if countEvents(result.Events, core.EventScored) != 0 {
		t.Error("gap scored twice")
	}

	if o := g.obstacles.Spawn(0, g.speed); o.Speed != 305 {
		t.Errorf("new obstacle speed = %g, want 305", o.Speed)
	}
}

func TestSpeedCap(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.speed = 498
	for i := 0; i < 3; i++ {
		g.obstacles.obstacles = append(g.obstacles.obstacles,
			Obstacle{ID: i + 1, X: g.DuckX(), GapCenterY: g.duckY, GapSize: 300, Tier: 1})
	}
	g.Step(core.NewInputFrame())
	if g.score != 3 {
		t.Fatalf("score = %d, want 3", g.score)
	}
	if g.speed != 500 {
		t.Errorf("speed = %g, want capped at 500", g.speed)
	}
}

func TestTierUpEvents(t *testing.T) {
	g := startedGame(hoverConfig(), 1)
	g.collected = 19
	g.items.add(Collectible{X: g.DuckX(), Y: g.duckY})

	result := g.Step(core.NewInputFrame())
	var tierUp *core.Event
	for i := range result.Events {
		if result.Events[i].Kind == core.EventTierUp {
			tierUp = &result.Events[i]
		}
	}
	if tierUp == nil || tierUp.Tier != 2 {
		t.Fatalf("expected tier-up to 2, got %+v", result.Events)
	}
}

func TestAutopilotScores(t *testing.T) {
	g := New(config.DefaultDuckConfig())
	g.Reset(runtimeConfig(99))
	events := runAutopilot(g, 60*30)
	if countEvents(events, core.EventStart) != 1 {
		t.Fatal("autopilot should request exactly one start")
	}
	if g.State().Score == 0 {
		t.Errorf("autopilot should pass at least one gap, state=%+v", g.State())
	}
}

func TestRender(t *testing.T) {
	g := startedGame(config.DefaultDuckConfig(), 3)
	for i := 0; i < 120; i++ {
		g.Step(g.Autopilot())
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Rune == DuckChar {
				found = true
			}
		}
	}
	if !found {
		t.Error("duck should be drawn")
	}
	if screen.GetCell(0, screen.Height()-1).Color != core.ColorGround {
		t.Error("bottom row should be ground")
	}
}
