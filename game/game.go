// Package game runs a level: input, physics, goal checks, session recording,
// progress and hints, one tick at a time.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/hints"
	"github.com/pthm-cable/pinflow/levels"
	"github.com/pthm-cable/pinflow/progress"
	"github.com/pthm-cable/pinflow/systems"
	"github.com/pthm-cable/pinflow/telemetry"
)

// ErrUnknownLevel is returned when a level id or index is not in the catalog.
var ErrUnknownLevel = errors.New("unknown level")

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now, for deterministic elapsed times.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithRNG sets the random source used for particle spawning and steam.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithPlayerID sets the id written to exported metrics.
func WithPlayerID(id string) Option {
	return func(g *Game) { g.playerID = id }
}

// WithOutput appends every finished session to the run's sessions.csv.
func WithOutput(om *telemetry.OutputManager) Option {
	return func(g *Game) { g.output = om }
}

// Game holds the complete game state.
// All methods except Submit must be called from the goroutine that ticks.
type Game struct {
	cfg     *config.Config
	catalog *levels.Catalog
	tracker *progress.Tracker
	hints   *hints.Advisor

	sim      systems.Simulator
	goals    systems.GoalDetector
	monsters systems.MonsterParams
	build    levels.BuildParams

	rng      *rand.Rand
	now      func() time.Time
	playerID string
	output   *telemetry.OutputManager
	recorder *telemetry.Recorder
	perf     *PerfStats

	observers    []observer
	nextObserver int
	events       []Event // emitted during the current tick

	queueMu sync.Mutex
	queue   []Command

	// Current level
	def        levels.Definition
	levelIndex int
	level      *levels.Instance
	state      State
	endElapsed float64 // elapsed time frozen at the terminal transition
}

// New creates a game and loads the first level of catalog.
func New(cfg *config.Config, catalog *levels.Catalog, tracker *progress.Tracker, opts ...Option) (*Game, error) {
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("level catalog is empty: %w", ErrUnknownLevel)
	}

	g := &Game{
		cfg:      cfg,
		catalog:  catalog,
		tracker:  tracker,
		hints:    hints.NewAdvisor(hints.PolicyFromConfig(cfg)),
		goals:    systems.GoalDetectorFromConfig(cfg),
		monsters: systems.MonsterParamsFromConfig(cfg),
		build:    levels.BuildParamsFromConfig(cfg),
		now:      time.Now,
		playerID: cfg.Telemetry.PlayerID,
		recorder: telemetry.NewRecorder(),
		perf:     NewPerfStats(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.playerID == "" {
		g.playerID = "player_" + uuid.NewString()
	}

	sim, err := systems.New(cfg.Physics.Backend, systems.ParamsFromConfig(cfg), g.rng)
	if err != nil {
		return nil, err
	}
	g.sim = sim

	if err := g.LoadByIndex(1); err != nil {
		return nil, err
	}
	return g, nil
}

type observer struct {
	id int
	Observer
}

// Subscribe registers an observer and returns a function that removes it.
func (g *Game) Subscribe(o Observer) (unsubscribe func()) {
	id := g.nextObserver
	g.nextObserver++
	g.observers = append(g.observers, observer{id: id, Observer: o})
	return func() {
		g.observers = slices.DeleteFunc(g.observers, func(ob observer) bool { return ob.id == id })
	}
}

func (g *Game) emit(e Event) {
	e.LevelID = g.def.ID
	g.events = append(g.events, e)
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}

func (g *Game) notifyStateChange() {
	for _, o := range g.observers {
		o.OnStateChange(g.state)
	}
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Definition returns a copy of the level being played.
func (g *Game) Definition() levels.Definition { return g.def.Clone() }

// LevelIndex returns the 1-based catalog position of the current level, or 0
// if it was loaded from a definition outside the catalog.
func (g *Game) LevelIndex() int { return g.levelIndex }

// Catalog returns the level catalog.
func (g *Game) Catalog() *levels.Catalog { return g.catalog }

// Tracker returns the progress tracker.
func (g *Game) Tracker() *progress.Tracker { return g.tracker }

// PlayerID returns the id used in exported metrics.
func (g *Game) PlayerID() string { return g.playerID }

// Perf returns per-phase tick timings.
func (g *Game) Perf() *PerfStats { return g.perf }

// Elapsed returns seconds since the current attempt started. It stops
// advancing once the level is won or lost.
func (g *Game) Elapsed() float64 {
	if g.state.Status.Terminal() {
		return g.endElapsed
	}
	return g.now().Sub(g.state.LevelStartTime).Seconds()
}

// HintAvailable reports whether the hint advisor suggests a hint.
func (g *Game) HintAvailable() bool { return g.hints.IsHintAvailable() }

// Hint returns the hint text for the current level.
func (g *Game) Hint() string { return g.hints.Hint(g.def) }

// Sessions returns copies of all finished sessions.
func (g *Game) Sessions() []telemetry.Session { return g.recorder.History() }

// LiveSession returns a copy of the session being recorded.
func (g *Game) LiveSession() telemetry.Session {
	if s := g.recorder.Live(); s != nil {
		return s.Clone()
	}
	return telemetry.Session{}
}

// Metrics returns the export document for all finished sessions.
func (g *Game) Metrics() telemetry.Metrics {
	return telemetry.NewMetrics(g.playerID, g.now(), g.recorder.History())
}

// ExportMetrics returns the metrics document as indented JSON.
func (g *Game) ExportMetrics() []byte {
	return g.Metrics().JSON()
}

// Snapshot returns a deep copy of the level for rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		LevelID:       g.def.ID,
		LevelIndex:    g.levelIndex,
		LevelCount:    g.catalog.Len(),
		Title:         g.def.Title,
		TargetTime:    g.def.TargetTime,
		Particles:     slices.Clone(g.sim.Particles()),
		Pins:          slices.Clone(g.level.Pins),
		Obstacles:     slices.Clone(g.level.Obstacles),
		Monsters:      slices.Clone(g.level.Monsters),
		Treasure:      g.level.Treasure,
		State:         g.state,
		Elapsed:       g.Elapsed(),
		BestStars:     g.tracker.LevelStars(g.def.ID),
		HintAvailable: g.hints.IsHintAvailable(),
		Hint:          g.hints.Hint(g.def),
	}
}
