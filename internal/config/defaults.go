package config

import (
	_ "embed"
)

//go:embed defaults/duck.yaml
var defaultDuckYAML []byte

// DefaultDuckConfig returns the hardcoded Flappy Duck configuration.
// It mirrors defaults/duck.yaml and is used when the embedded file cannot be parsed.
func DefaultDuckConfig() DuckConfig {
	return DuckConfig{
		World: DuckWorld{
			Width:        1280,
			Height:       1000,
			GroundHeight: 200,
		},
		Physics: DuckPhysics{
			Gravity:           2000,
			FlapVelocity:      -900,
			MaxFallSpeed:      1200,
			FlapCooldownTicks: 1,
		},
		Player: DuckPlayer{
			LaneRatio:  0.2,
			Size:       60,
			CeilingY:   -50,
			FloorSlack: 150,
		},
		Obstacles: DuckObstacles{
			PipeWidth:       80,
			TriggerPadding:  20,
			SpawnOffset:     100,
			DespawnX:        -100,
			FirstSpawnDelay: 1.5,
			SpawnInterval:   3.5,
			BaseSpeed:       300,
			SpeedStep:       5,
			MaxSpeed:        500,
			Gap: GapCurve{
				Initial:       450,
				Min:           200,
				PerItemShrink: 3.5,
				Jitter:        15,
				EdgeMargin:    80,
				Order: []OrderStep{
					{UpTo: 25, Factor: 1.25},
					{UpTo: 40, Factor: 1.10},
				},
				LateFactor:   0.90,
				NearComplete: 38,
				NearFactor:   0.85,
				LosingAfter:  3,
				LosingShrink: 40,
				LosingFloor:  180,
				FinalFloor:   180,
				TierSteps:    []int{20, 40},
			},
		},
		Items: DuckItems{
			Cap:          50,
			InGapSpread:  0.1,
			RandomChance: 0.5,
			RandomMinDX:  150,
			RandomMaxDX:  400,
			RandomMargin: 150,
			Size:         40,
		},
		Guard: DuckGuard{
			IdleTimeout: 20,
			InputLockMS: 500,
		},
		Display: DuckDisplay{
			CountUpMS:       500,
			ThemeToggleSecs: 20,
			Decimals:        2,
		},
	}
}

// DefaultYAML returns the embedded default duck.yaml.
// Used by the CLI to print a starting point for custom configs.
func DefaultYAML() []byte {
	return defaultDuckYAML
}
