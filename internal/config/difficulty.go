package config

import "math"

// The gap curve is split into independent terms: base shrink by collected
// count, spawn-order modifier, near-completion squeeze and the losing
// override. Tier is derived from collected count alone.

// BaseGap returns the collected-driven gap term, clamped to [Min, Initial].
func (g GapCurve) BaseGap(collected int) float64 {
	base := g.Initial - float64(collected)*g.PerItemShrink
	return clampF(base, g.Min, g.Initial)
}

// JitterRange returns the inclusive integer range jitter is drawn from.
// The lower bound never drops below Min.
func (g GapCurve) JitterRange(base float64) (lo, hi int) {
	b := int(math.Floor(base))
	lo = max(int(g.Min), b-g.Jitter)
	hi = b + g.Jitter
	return lo, hi
}

// OrderFactor returns the spawn-order modifier for the n-th obstacle (1-based).
func (g GapCurve) OrderFactor(n int) float64 {
	for _, step := range g.Order {
		if n <= step.UpTo {
			return step.Factor
		}
	}
	return g.LateFactor
}

// NearCompletionFactor returns the squeeze applied once the run is close to complete.
func (g GapCurve) NearCompletionFactor(collected int) float64 {
	if collected >= g.NearComplete {
		return g.NearFactor
	}
	return 1
}

// Losing applies the losing override to an already computed gap.
func (g GapCurve) Losing(gap float64, losing bool, collected int) float64 {
	if !losing || collected < g.LosingAfter {
		return gap
	}
	return math.Max(g.LosingFloor, gap-g.LosingShrink)
}

// Tier returns the obstacle tier (1-based) for a collected count.
func (g GapCurve) Tier(collected int) int {
	tier := 1
	for _, step := range g.TierSteps {
		if collected >= step {
			tier++
		}
	}
	return tier
}

// Gap composes every term for a jittered base value. The result never
// drops below FinalFloor, losing or not.
func (g GapCurve) Gap(jittered float64, n, collected int, losing bool) float64 {
	gap := jittered * g.OrderFactor(n) * g.NearCompletionFactor(collected)
	gap = g.Losing(gap, losing, collected)
	return math.Max(gap, g.FinalFloor)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
