package flappyduck

import (
	"math/rand"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
)

// Obstacle is a pipe pair with a gap for the duck to pass through.
// X is the horizontal centre of the pipe.
type Obstacle struct {
	ID         int     // Monotonic, 1-based spawn order
	X          float64 // Horizontal centre
	GapCenterY float64 // Vertical centre of the gap
	GapSize    float64 // Gap height
	Tier       int     // Visual/difficulty tier 1-3
	Scored     bool    // Set once when the gap trigger is crossed
	Speed      float64 // Leftward speed captured at spawn, px/s
}

// GapTop returns the y of the gap's upper edge.
func (o Obstacle) GapTop() float64 { return o.GapCenterY - o.GapSize/2 }

// GapBottom returns the y of the gap's lower edge.
func (o Obstacle) GapBottom() float64 { return o.GapCenterY + o.GapSize/2 }

// TopRect returns the collision rectangle for the upper pipe body.
func (o Obstacle) TopRect(width float64) core.RectF {
	return core.RectF{X: o.X - width/2, Y: 0, W: width, H: o.GapTop()}
}

// BottomRect returns the collision rectangle for the lower pipe body.
func (o Obstacle) BottomRect(width, playable float64) core.RectF {
	return core.RectF{X: o.X - width/2, Y: o.GapBottom(), W: width, H: playable - o.GapBottom()}
}

// TriggerRect returns the scoring area inside the gap.
func (o Obstacle) TriggerRect(width float64) core.RectF {
	return core.CenteredRectF(o.X, o.GapCenterY, width, o.GapSize)
}

// ObstacleGenerator spawns obstacles on a fixed cadence and sizes their gaps
// from the collected count. It owns the obstacle slice.
type ObstacleGenerator struct {
	cfg       *config.DuckConfig
	rng       *rand.Rand
	obstacles []Obstacle
	spawned   int  // Obstacles created this run
	countdown int  // Ticks until next spawn
	interval  int  // Ticks between spawns
	losing    bool // Server predicted a loss for this run
}

// NewObstacleGenerator creates a generator drawing from rng.
func NewObstacleGenerator(cfg *config.DuckConfig, rng *rand.Rand, tickRate int) *ObstacleGenerator {
	og := &ObstacleGenerator{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
	og.Reset(tickRate)
	return og
}

// Reset clears all obstacles and restarts the spawn cadence.
func (og *ObstacleGenerator) Reset(tickRate int) {
	og.obstacles = og.obstacles[:0]
	og.spawned = 0
	og.losing = false
	og.countdown = secondsToTicks(og.cfg.Obstacles.FirstSpawnDelay, tickRate)
	og.interval = secondsToTicks(og.cfg.Obstacles.SpawnInterval, tickRate)
}

// SetLosing sets the explicit losing flag used by the gap override.
func (og *ObstacleGenerator) SetLosing(losing bool) {
	og.losing = losing
}

// Losing reports whether the losing override is active.
func (og *ObstacleGenerator) Losing() bool {
	return og.losing
}

// Tick advances the spawn cadence by one tick.
// Returns true when an obstacle is due this tick.
func (og *ObstacleGenerator) Tick() bool {
	og.countdown--
	if og.countdown > 0 {
		return false
	}
	og.countdown = og.interval
	return true
}

// Spawn creates an obstacle just off the right edge.
func (og *ObstacleGenerator) Spawn(collected int, speed float64) Obstacle {
	curve := og.cfg.Obstacles.Gap
	og.spawned++

	base := curve.BaseGap(collected)
	lo, hi := curve.JitterRange(base)
	jittered := lo
	if hi > lo {
		jittered = lo + og.rng.Intn(hi-lo+1)
	}
	gap := curve.Gap(float64(jittered), og.spawned, collected, og.losing)

	playable := og.cfg.World.Height - og.cfg.World.GroundHeight
	minY := gap/2 + curve.EdgeMargin
	maxY := playable - gap/2 - curve.EdgeMargin
	centerY := playable / 2
	if maxY > minY {
		centerY = minY + og.rng.Float64()*(maxY-minY)
	}

	o := Obstacle{
		ID:         og.spawned,
		X:          og.cfg.World.Width + og.cfg.Obstacles.SpawnOffset,
		GapCenterY: centerY,
		GapSize:    gap,
		Tier:       curve.Tier(collected),
		Speed:      speed,
	}
	og.obstacles = append(og.obstacles, o)
	return o
}

// Advance moves obstacles left by their own speed and drops off-screen ones.
func (og *ObstacleGenerator) Advance(dt float64) {
	valid := og.obstacles[:0]
	for _, o := range og.obstacles {
		o.X -= o.Speed * dt
		if o.X >= og.cfg.Obstacles.DespawnX {
			valid = append(valid, o)
		}
	}
	og.obstacles = valid
}

// Obstacles returns the live obstacles. Callers may flip Scored in place.
func (og *ObstacleGenerator) Obstacles() []Obstacle {
	return og.obstacles
}

// Spawned returns how many obstacles were created this run.
func (og *ObstacleGenerator) Spawned() int {
	return og.spawned
}

// Collides tests the hitbox against every pipe body.
func (og *ObstacleGenerator) Collides(box core.RectF) bool {
	width := og.cfg.Obstacles.PipeWidth
	playable := og.cfg.World.Height - og.cfg.World.GroundHeight
	for _, o := range og.obstacles {
		if box.Intersects(o.TopRect(width)) || box.Intersects(o.BottomRect(width, playable)) {
			return true
		}
	}
	return false
}

// secondsToTicks converts a duration to a whole number of ticks, at least 1.
func secondsToTicks(secs float64, tickRate int) int {
	n := int(secs*float64(tickRate) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
