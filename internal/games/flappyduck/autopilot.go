package flappyduck

import "github.com/vovakirdan/golden-duck/internal/core"

// Autopilot returns the input a simple bot would press this tick: it aims
// for the next unscored gap and flaps while falling below it.
// Used by the headless sim command and by tests.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()

	switch g.status {
	case core.StatusIdle:
		in.Set(core.ActionFlap)
		return in
	case core.StatusRunning:
	default:
		return in
	}

	target := (g.cfg.World.Height - g.cfg.World.GroundHeight) / 2
	duckX := g.DuckX()
	half := g.cfg.Obstacles.PipeWidth / 2
	for _, o := range g.obstacles.Obstacles() {
		if o.X+half+g.cfg.Player.Size/2 < duckX {
			continue
		}
		target = o.GapCenterY
		break
	}

	// A flap rises about v²/2g; aim so the arc is centred on the target.
	rise := g.cfg.Physics.FlapVelocity * g.cfg.Physics.FlapVelocity / (2 * g.cfg.Physics.Gravity)
	if g.duckVY >= 0 && g.duckY > target+rise/2 {
		in.Set(core.ActionFlap)
	}
	return in
}
