package flappyduck

import "github.com/vovakirdan/golden-duck/internal/core"

// Snapshot is a copy of the full run state, used for rendering outside the
// game and for comparing runs.
type Snapshot struct {
	Tick      int
	DuckY     float64
	DuckVY    float64
	Score     int
	Collected int
	Tier      int
	Speed     float64
	Status    core.Status
	Reason    core.EndReason
	Losing    bool
	Spawned   int // Obstacles created
	Placed    int // Collectibles placed
	Obstacles []Obstacle
	Items     []Collectible
}

// Snapshot returns a deep copy of the current run state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tickCount,
		DuckY:     g.duckY,
		DuckVY:    g.duckVY,
		Score:     g.score,
		Collected: g.collected,
		Tier:      g.tier,
		Speed:     g.speed,
		Status:    g.status,
		Reason:    g.reason,
		Losing:    g.obstacles.Losing(),
		Spawned:   g.obstacles.Spawned(),
		Placed:    g.items.Total(),
		Obstacles: append([]Obstacle(nil), g.obstacles.Obstacles()...),
		Items:     append([]Collectible(nil), g.items.Items()...),
	}
}

// Equal reports whether two snapshots describe the same run state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.DuckY != o.DuckY || s.DuckVY != o.DuckVY ||
		s.Score != o.Score || s.Collected != o.Collected || s.Tier != o.Tier ||
		s.Speed != o.Speed || s.Status != o.Status || s.Reason != o.Reason ||
		s.Losing != o.Losing || s.Spawned != o.Spawned || s.Placed != o.Placed {
		return false
	}
	if len(s.Obstacles) != len(o.Obstacles) || len(s.Items) != len(o.Items) {
		return false
	}
	for i := range s.Obstacles {
		if s.Obstacles[i] != o.Obstacles[i] {
			return false
		}
	}
	for i := range s.Items {
		if s.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}
