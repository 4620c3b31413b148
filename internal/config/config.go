// Package config provides YAML-based game configuration loading,
// backend endpoint settings and the difficulty curves for Flappy Duck.
package config

// DuckConfig contains all tuning for the Flappy Duck game.
// Distances are world pixels, times are seconds unless noted.
type DuckConfig struct {
	World     DuckWorld     `yaml:"world"`
	Physics   DuckPhysics   `yaml:"physics"`
	Player    DuckPlayer    `yaml:"player"`
	Obstacles DuckObstacles `yaml:"obstacles"`
	Items     DuckItems     `yaml:"items"`
	Guard     DuckGuard     `yaml:"guard"`
	Display   DuckDisplay   `yaml:"display"`
}

// DuckWorld defines the simulated play field.
type DuckWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// DuckPhysics defines vertical motion parameters.
type DuckPhysics struct {
	Gravity           float64 `yaml:"gravity"`
	FlapVelocity      float64 `yaml:"flap_velocity"`
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`
	FlapCooldownTicks int     `yaml:"flap_cooldown_ticks"`
}

// DuckPlayer defines the duck's lane and hitbox.
type DuckPlayer struct {
	LaneRatio  float64 `yaml:"lane_ratio"`  // Fraction of world width
	Size       float64 `yaml:"size"`
	CeilingY   float64 `yaml:"ceiling_y"`   // y below this is out of bounds
	FloorSlack float64 `yaml:"floor_slack"` // y > height - floor_slack is out of bounds
}

// DuckObstacles defines pipe spawning and the gap-size curve.
type DuckObstacles struct {
	PipeWidth       float64  `yaml:"pipe_width"`
	TriggerPadding  float64  `yaml:"trigger_padding"`
	SpawnOffset     float64  `yaml:"spawn_offset"`
	DespawnX        float64  `yaml:"despawn_x"`
	FirstSpawnDelay float64  `yaml:"first_spawn_delay"`
	SpawnInterval   float64  `yaml:"spawn_interval"`
	BaseSpeed       float64  `yaml:"base_speed"`
	SpeedStep       float64  `yaml:"speed_step"`
	MaxSpeed        float64  `yaml:"max_speed"`
	Gap             GapCurve `yaml:"gap"`
}

// GapCurve holds every input of the gap-size function.
type GapCurve struct {
	Initial       float64     `yaml:"initial"`
	Min           float64     `yaml:"min"`
	PerItemShrink float64     `yaml:"per_item_shrink"`
	Jitter        int         `yaml:"jitter"`
	EdgeMargin    float64     `yaml:"edge_margin"`
	Order         []OrderStep `yaml:"order"`
	LateFactor    float64     `yaml:"late_factor"`
	NearComplete  int         `yaml:"near_complete"`
	NearFactor    float64     `yaml:"near_factor"`
	LosingAfter   int         `yaml:"losing_after"`
	LosingShrink  float64     `yaml:"losing_shrink"`
	LosingFloor   float64     `yaml:"losing_floor"`
	FinalFloor    float64     `yaml:"final_floor"` // Lower bound of every composed gap
	TierSteps     []int       `yaml:"tier_steps"`
}

// OrderStep scales the gap for obstacles up to and including UpTo.
type OrderStep struct {
	UpTo   int     `yaml:"up_to"`
	Factor float64 `yaml:"factor"`
}

// DuckItems defines collectible placement.
type DuckItems struct {
	Cap          int     `yaml:"cap"`
	InGapSpread  float64 `yaml:"in_gap_spread"` // Fraction of gap size
	RandomChance float64 `yaml:"random_chance"`
	RandomMinDX  float64 `yaml:"random_min_dx"`
	RandomMaxDX  float64 `yaml:"random_max_dx"`
	RandomMargin float64 `yaml:"random_margin"`
	Size         float64 `yaml:"size"`
}

// DuckGuard defines the anti-stall rules.
type DuckGuard struct {
	IdleTimeout float64 `yaml:"idle_timeout"`
	InputLockMS int     `yaml:"input_lock_ms"`
}

// DuckDisplay defines presentation timing.
type DuckDisplay struct {
	CountUpMS       int `yaml:"count_up_ms"`
	ThemeToggleSecs int `yaml:"theme_toggle_secs"`
	Decimals        int `yaml:"decimals"`
}
