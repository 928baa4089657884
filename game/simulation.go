package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pinflow/systems"
)

// Tick advances the game by dt nominal frames (1.0 = one frame of
// physics.frame_millis). Queued input is applied first. dt is clamped to
// [0, physics.max_dt] for the simulation; the hint advisor sees the unclamped
// wall time so idle detection does not slow down on long frames.
func (g *Game) Tick(dt float64) TickResult {
	g.events = nil
	var res TickResult

	start := time.Now()
	g.drainQueue()
	g.perf.Record(PhaseInput, time.Since(start))

	if dt < 0 {
		dt = 0
	}
	simDT := min(dt, g.cfg.Physics.MaxDT)

	if g.state.Status == StatusPlaying {
		t := time.Now()
		res.Steps = g.sim.Step(g.level.Obstacles, simDT)
		g.perf.Record(PhasePhysics, time.Since(t))

		t = time.Now()
		systems.StepMonsters(g.level.Monsters, g.level.Obstacles, simDT, g.monsters)
		g.perf.Record(PhaseMonsters, time.Since(t))

		if res.Steps.SteamSpawned > 0 {
			g.emit(Event{Kind: EventSteam, Steam: res.Steps.SteamSpawned})
		}

		t = time.Now()
		res.Outcome = g.goals.EvaluateSimulator(g.sim, g.level.Monsters, g.level.Treasure)
		g.perf.Record(PhaseGoals, time.Since(t))

		switch {
		case res.Outcome.Won():
			g.finish(true, res.Outcome)
		case res.Outcome.Lost():
			g.finish(false, res.Outcome)
		}
	}

	g.hints.Update(dt * g.cfg.Derived.FrameSeconds)
	g.perf.Record(PhaseTick, time.Since(start))

	res.Events = g.events
	res.State = g.state
	g.events = nil
	return res
}

// finish handles the terminal transition. Exactly one session is appended
// per call; progress is only awarded on a win.
func (g *Game) finish(success bool, outcome systems.Outcome) {
	elapsed := g.now().Sub(g.state.LevelStartTime).Seconds()
	g.endElapsed = elapsed

	stars := 0
	if success {
		g.state.Status = StatusWon
		stars = g.tracker.CompleteLevel(g.def.ID, elapsed, g.def.TargetTime)
	} else {
		g.state.Status = StatusLost
	}

	if session, ok := g.recorder.Finish(success, elapsed); ok {
		slog.Info("level finished", "outcome", outcome.String(), "stars", stars, "session", session)
		if err := g.output.WriteSession(session); err != nil {
			slog.Error("failed to write session", "error", err)
		}
	}

	kind := EventLose
	if success {
		kind = EventWin
	}
	g.emit(Event{Kind: kind, Outcome: outcome, Stars: stars, Elapsed: elapsed})
	g.notifyStateChange()
}
