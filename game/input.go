package game

import (
	"log/slog"
	"math"
	"slices"

	"github.com/pthm-cable/pinflow/components"
)

// Command is a queued player input, applied at the start of the next tick.
type Command interface {
	apply(g *Game)
}

// PullCommand pulls the pin under Pos.
type PullCommand struct{ Pos components.Vec2 }

// HoverCommand updates pin highlights for a pointer at Pos.
type HoverCommand struct{ Pos components.Vec2 }

// ResetCommand restarts the current level.
type ResetCommand struct{}

// LoadCommand loads a catalog level by id.
type LoadCommand struct{ ID int }

// NextCommand loads the next catalog level.
type NextCommand struct{}

func (c PullCommand) apply(g *Game)  { g.PullPinAt(c.Pos) }
func (c HoverCommand) apply(g *Game) { g.HoverAt(c.Pos) }
func (ResetCommand) apply(g *Game)   { g.Reset() }
func (c LoadCommand) apply(g *Game)  { _ = g.LoadByID(c.ID) }
func (NextCommand) apply(g *Game)    { _ = g.NextLevel() }

// Submit queues a command. It is safe to call from any goroutine.
func (g *Game) Submit(c Command) {
	g.queueMu.Lock()
	g.queue = append(g.queue, c)
	g.queueMu.Unlock()
}

// drainQueue applies queued commands in submission order.
func (g *Game) drainQueue() {
	g.queueMu.Lock()
	queued := g.queue
	g.queue = nil
	g.queueMu.Unlock()

	for _, c := range queued {
		c.apply(g)
	}
}

// PullPinAt pulls the first un-pulled pin, in level order, whose anchor is
// within the hit radius of pos. It only works while playing and reports
// whether a pin was pulled.
func (g *Game) PullPinAt(pos components.Vec2) bool {
	if g.state.Status != StatusPlaying {
		return false
	}
	for i := range g.level.Pins {
		pin := &g.level.Pins[i]
		if pin.Pulled {
			continue
		}
		if pin.Pos.Dist(pos) < g.cfg.Pins.HitRadius {
			g.pull(pin)
			return true
		}
	}
	return false
}

func (g *Game) pull(pin *components.Pin) {
	pin.Pulled = true
	pin.Hover = false
	g.state.PinsPulled++
	g.recorder.RecordPull(pin.ID)

	if i := pinnedObstacle(*pin, g.level.Obstacles, g.cfg.Pins.WallTolerance); i >= 0 {
		g.level.Obstacles = slices.Delete(g.level.Obstacles, i, i+1)
	}

	g.hints.RecordAction()
	slog.Debug("pin pulled", "pin", pin.ID, "obstacles", len(g.level.Obstacles))
	g.emit(Event{Kind: EventPull, PinID: pin.ID})
	g.notifyStateChange()
}

// pinnedObstacle picks the obstacle a pin holds in place: the one whose
// nearest qualifying edge is closest to the pin anchor. An edge qualifies when
// the anchor is within tol of its line and of its extent. Ties go to the
// later obstacle. Returns -1 if no obstacle qualifies.
func pinnedObstacle(pin components.Pin, obstacles []components.Obstacle, tol float64) int {
	best, bestDist := -1, math.Inf(1)
	for i := range obstacles {
		d, ok := edgeDistance(pin.Pos, obstacles[i].Rect, tol)
		if ok && d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func edgeDistance(p components.Vec2, r components.Rect, tol float64) (float64, bool) {
	d, ok := math.Inf(1), false

	if p.X >= r.Left()-tol && p.X <= r.Right()+tol {
		for _, y := range [2]float64{r.Top(), r.Bottom()} {
			if dy := math.Abs(p.Y - y); dy < tol {
				d, ok = math.Min(d, dy), true
			}
		}
	}
	if p.Y >= r.Top()-tol && p.Y <= r.Bottom()+tol {
		for _, x := range [2]float64{r.Left(), r.Right()} {
			if dx := math.Abs(p.X - x); dx < tol {
				d, ok = math.Min(d, dx), true
			}
		}
	}
	return d, ok
}

// HoverAt highlights the un-pulled pins within the hit radius of pos.
func (g *Game) HoverAt(pos components.Vec2) {
	for i := range g.level.Pins {
		pin := &g.level.Pins[i]
		pin.Hover = !pin.Pulled && pin.Pos.Dist(pos) < g.cfg.Pins.HitRadius
	}
}
