package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/systems"
)

// Status is the level lifecycle state.
type Status uint8

const (
	StatusLoading Status = iota // only while a level is being set up
	StatusPlaying
	StatusWon
	StatusLost
)

var statusNames = [...]string{"loading", "playing", "won", "lost"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Terminal reports whether the level has ended.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// State is the externally visible game state.
type State struct {
	CurrentLevel   int       // level id
	LevelStartTime time.Time // when the current attempt started
	Resets         int       // resets since the level was loaded
	PinsPulled     int       // pins pulled since the level was loaded
	Status         Status
}

// LogValue implements slog.LogValuer for structured logging.
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("level", s.CurrentLevel),
		slog.String("status", s.Status.String()),
		slog.Int("resets", s.Resets),
		slog.Int("pins_pulled", s.PinsPulled),
	)
}

// EventKind identifies a discrete game event.
type EventKind uint8

const (
	EventPull  EventKind = iota // a pin was pulled
	EventWin                    // water reached the treasure
	EventLose                   // lava or a monster reached the treasure
	EventSteam                  // water and lava reacted this tick
)

var eventNames = [...]string{"pull", "win", "lose", "steam"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a notification for audio and other collaborators.
type Event struct {
	Kind    EventKind
	LevelID int
	PinID   int             // EventPull
	Steam   int             // EventSteam: particles spawned this tick
	Outcome systems.Outcome // EventWin, EventLose
	Stars   int             // EventWin
	Elapsed float64         // EventWin, EventLose: seconds
}

// Observer receives events and state changes. Callbacks run on the goroutine
// that drives the game and must not call back into it.
type Observer interface {
	OnEvent(Event)
	OnStateChange(State)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Event func(Event)
	State func(State)
}

// OnEvent implements Observer.
func (o ObserverFuncs) OnEvent(e Event) {
	if o.Event != nil {
		o.Event(e)
	}
}

// OnStateChange implements Observer.
func (o ObserverFuncs) OnStateChange(s State) {
	if o.State != nil {
		o.State(s)
	}
}

// TickResult is what a single Tick produced.
type TickResult struct {
	Events  []Event
	State   State
	Outcome systems.Outcome
	Steps   systems.StepStats
}

// Snapshot is a deep copy of everything a renderer or HUD needs. It is never
// modified by the game after it is returned.
type Snapshot struct {
	LevelID    int
	LevelIndex int // 1-based catalog position, 0 for levels outside the catalog
	LevelCount int
	Title      string
	TargetTime float64

	Particles []components.Particle
	Pins      []components.Pin
	Obstacles []components.Obstacle
	Monsters  []components.Monster
	Treasure  components.Vec2

	State         State
	Elapsed       float64 // seconds; frozen once the level ends
	BestStars     int
	HintAvailable bool
	Hint          string
}
