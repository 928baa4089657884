package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/pinflow/levels"
)

// LoadByID loads the catalog level with the given id. An unknown id leaves
// the game untouched and returns ErrUnknownLevel.
func (g *Game) LoadByID(id int) error {
	def, ok := g.catalog.ByID(id)
	if !ok {
		slog.Warn("load ignored", "level_id", id, "error", ErrUnknownLevel)
		return fmt.Errorf("level id %d: %w", id, ErrUnknownLevel)
	}
	index, _ := g.catalog.IndexOf(id)
	g.load(def, index)
	return nil
}

// LoadByIndex loads the catalog level at 1-based position index.
func (g *Game) LoadByIndex(index int) error {
	def, ok := g.catalog.ByIndex(index)
	if !ok {
		slog.Warn("load ignored", "level_index", index, "error", ErrUnknownLevel)
		return fmt.Errorf("level index %d: %w", index, ErrUnknownLevel)
	}
	g.load(def, index)
	return nil
}

// LoadDefinition loads a level that need not be in the catalog, such as one
// from the editor. Invalid definitions leave the game untouched.
func (g *Game) LoadDefinition(def levels.Definition) error {
	if err := def.Validate(); err != nil {
		slog.Warn("load ignored", "level_id", def.ID, "error", err)
		return err
	}
	index, _ := g.catalog.IndexOf(def.ID)
	g.load(def.Clone(), index)
	return nil
}

// NextLevel loads the level after the current one in catalog order.
// A level loaded from outside the catalog has no successor.
func (g *Game) NextLevel() error {
	if g.levelIndex == 0 {
		slog.Warn("next level ignored", "level_id", g.def.ID, "error", ErrUnknownLevel)
		return fmt.Errorf("level %d is not in the catalog: %w", g.def.ID, ErrUnknownLevel)
	}
	return g.LoadByIndex(g.levelIndex + 1)
}

// Reset restarts the current level. The unfinished attempt is not recorded
// as a session; its reset count carries into the next one.
func (g *Game) Reset() {
	g.state.Resets++
	g.recorder.RecordReset()
	g.setup()
	g.hints.RecordReset()
	slog.Debug("level reset", "state", g.state)
	g.notifyStateChange()
}

// load switches to a new level and clears the per-level counters.
func (g *Game) load(def levels.Definition, index int) {
	g.def = def
	g.levelIndex = index
	g.state.CurrentLevel = def.ID
	g.state.Resets = 0
	g.state.PinsPulled = 0
	g.setup()
	g.hints.ResetLevel()
	slog.Info("level loaded", "level_id", def.ID, "title", def.Title, "particles", len(g.sim.Particles()))
	g.notifyStateChange()
}

// setup builds a fresh instance of the current definition and swaps it in.
func (g *Game) setup() {
	g.state.Status = StatusLoading

	inst := levels.Build(g.def, g.rng, g.build)
	g.sim.Load(inst.Particles)
	inst.Particles = nil // owned by the simulator from here on
	g.level = inst

	now := g.now()
	g.state.LevelStartTime = now
	g.endElapsed = 0
	g.recorder.Start(g.def.ID, now, g.state.Resets)

	g.state.Status = StatusPlaying
}
