package flappyduck

// IdleGuard ends a run that makes no scoring progress for too long.
// Time is measured in simulation ticks so runs stay deterministic.
type IdleGuard struct {
	timeout      int // Ticks without progress before the run is lost
	lastProgress int // Tick of the last score or collect
}

// NewIdleGuard creates a guard that trips after timeoutSecs of simulated time.
func NewIdleGuard(timeoutSecs float64, tickRate int) *IdleGuard {
	return &IdleGuard{timeout: secondsToTicks(timeoutSecs, tickRate)}
}

// Arm restarts the idle window at tick now.
func (ig *IdleGuard) Arm(now int) {
	ig.lastProgress = now
}

// Progress records a score or collect at tick now.
func (ig *IdleGuard) Progress(now int) {
	ig.lastProgress = now
}

// Expired reports whether the idle window has elapsed at tick now.
func (ig *IdleGuard) Expired(now int) bool {
	return now-ig.lastProgress >= ig.timeout
}

// Remaining returns the ticks left before the guard trips.
func (ig *IdleGuard) Remaining(now int) int {
	return max(0, ig.timeout-(now-ig.lastProgress))
}
