package flappyduck

import (
	"math/rand"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
)

// Origin records where a collectible was placed.
type Origin int

const (
	OriginGap    Origin = iota // Inside an obstacle gap
	OriginRandom               // Free-floating between obstacles
)

// String returns a short name for the origin.
func (o Origin) String() string {
	if o == OriginRandom {
		return "random"
	}
	return "in-gap"
}

// Collectible is an egg the duck can pick up.
type Collectible struct {
	ID        int
	X, Y      float64 // Centre
	Collected bool
	Origin    Origin
	Speed     float64 // Leftward speed captured at spawn, px/s
}

// Rect returns the collectible's hitbox.
func (c Collectible) Rect(size float64) core.RectF {
	return core.CenteredRectF(c.X, c.Y, size, size)
}

// ItemSpawner places collectibles alongside obstacles, never exceeding the
// per-run cap. It does not decide the win.
type ItemSpawner struct {
	cfg   *config.DuckConfig
	rng   *rand.Rand
	items []Collectible
	total int // Placed this run, including collected and culled ones
}

// NewItemSpawner creates a spawner drawing from rng.
func NewItemSpawner(cfg *config.DuckConfig, rng *rand.Rand) *ItemSpawner {
	return &ItemSpawner{
		cfg:   cfg,
		rng:   rng,
		items: make([]Collectible, 0, 16),
	}
}

// Reset removes every collectible and the placement count.
func (is *ItemSpawner) Reset() {
	is.items = is.items[:0]
	is.total = 0
}

// SpawnFor places the collectibles that accompany a freshly spawned obstacle.
// Returns how many were placed (0-2).
func (is *ItemSpawner) SpawnFor(o Obstacle) int {
	ic := is.cfg.Items
	active := len(is.items)
	placed := 0

	if is.total < ic.Cap {
		spread := ic.InGapSpread * o.GapSize
		is.add(Collectible{
			X:      o.X,
			Y:      o.GapCenterY + uniform(is.rng, -spread, spread),
			Origin: OriginGap,
			Speed:  o.Speed,
		})
		placed++
	}

	if is.total < ic.Cap && active < ic.Cap && is.rng.Float64() < ic.RandomChance {
		playable := is.cfg.World.Height - is.cfg.World.GroundHeight
		is.add(Collectible{
			X:      o.X + uniform(is.rng, ic.RandomMinDX, ic.RandomMaxDX),
			Y:      uniform(is.rng, ic.RandomMargin, playable-ic.RandomMargin),
			Origin: OriginRandom,
			Speed:  o.Speed,
		})
		placed++
	}

	return placed
}

func (is *ItemSpawner) add(c Collectible) {
	is.total++
	c.ID = is.total
	is.items = append(is.items, c)
}

// Advance moves collectibles left and drops collected or off-screen ones.
func (is *ItemSpawner) Advance(dt float64) {
	for i := range is.items {
		is.items[i].X -= is.items[i].Speed * dt
	}
	is.Prune()
}

// Prune removes collected and off-screen collectibles without moving the rest.
func (is *ItemSpawner) Prune() {
	valid := is.items[:0]
	for _, c := range is.items {
		if !c.Collected && c.X >= is.cfg.Obstacles.DespawnX {
			valid = append(valid, c)
		}
	}
	is.items = valid
}

// Items returns the live collectibles. Callers may flip Collected in place.
func (is *ItemSpawner) Items() []Collectible {
	return is.items
}

// Total returns how many collectibles were placed this run.
func (is *ItemSpawner) Total() int {
	return is.total
}

// uniform returns a value in [lo, hi].
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
