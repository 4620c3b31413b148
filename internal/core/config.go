package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status is the lifecycle state of a run.
type Status int

const (
	StatusIdle     Status = iota // Waiting for the first input / session start
	StatusRunning                // Simulation is advancing
	StatusOver                   // Lost: lethal collision or idle timeout
	StatusFinished               // Won: every collectible gathered
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusOver || s == StatusFinished
}

// EndReason explains why a run ended.
type EndReason int

const (
	ReasonNone   EndReason = iota
	ReasonPipe             // Hit an obstacle body
	ReasonGround           // Hit the ground
	ReasonBounds           // Left the play field (too high or too low)
	ReasonIdle             // No scoring progress within the idle window
	ReasonWin              // Collected the last item
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case ReasonPipe:
		return "pipe"
	case ReasonGround:
		return "ground"
	case ReasonBounds:
		return "bounds"
	case ReasonIdle:
		return "idle"
	case ReasonWin:
		return "win"
	default:
		return "none"
	}
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventStart     EventKind = iota // First input while idle; the platform should open a session
	EventScored                     // An obstacle gap was passed
	EventCollected                  // A collectible was picked up
	EventTierUp                     // Obstacle tier changed
	EventOver                       // Run lost
	EventFinished                   // Run won
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventScored:
		return "scored"
	case EventCollected:
		return "collected"
	case EventTierUp:
		return "tier_up"
	case EventOver:
		return "over"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is a notification produced by a simulation tick for the platform layer.
type Event struct {
	Kind   EventKind
	ID     int       // Obstacle or collectible ID
	Count  int       // Score for EventScored, collected count for EventCollected
	Tier   int       // New tier for EventTierUp
	Reason EndReason // Set for EventOver and EventFinished
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int       // Obstacles passed
	Collected int       // Collectibles picked up
	Tier      int       // Current obstacle tier (1-3)
	Status    Status    // Lifecycle status
	Reason    EndReason // Why the run ended, if it did
}

// GameOver reports whether the run has ended either way.
func (s GameState) GameOver() bool {
	return s.Status.Terminal()
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
