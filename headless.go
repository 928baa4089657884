package main

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pinflow/game"
)

// frameClock is a virtual clock that advances one frame per tick.
type frameClock struct {
	now   time.Time
	frame time.Duration
}

func newFrameClock(start time.Time, frameMillis float64) *frameClock {
	return &frameClock{now: start, frame: time.Duration(frameMillis * float64(time.Millisecond))}
}

func (c *frameClock) Now() time.Time { return c.now }
func (c *frameClock) Advance()       { c.now = c.now.Add(c.frame) }

// settleTicks is how long a level runs after its last pin before it is
// abandoned.
const settleTicks = 600

// runHeadless plays every level from the current one to the end of the pack,
// pulling pins in definition order every pullInterval ticks. A won or lost
// level moves on to the next; a level that neither wins nor loses after its
// last pin is abandoned.
func runHeadless(g *game.Game, clock *frameClock, maxTicks, pullInterval int) {
	pullInterval = max(pullInterval, 1)
	ticks, sinceLoad, nextPin := 0, 0, 0

	advance := func() bool {
		sinceLoad, nextPin = 0, 0
		if err := g.NextLevel(); err != nil {
			slog.Info("headless run complete", "ticks", ticks)
			return false
		}
		return true
	}

	for maxTicks == 0 || ticks < maxTicks {
		pins := g.Snapshot().Pins
		if nextPin < len(pins) && sinceLoad > 0 && sinceLoad%pullInterval == 0 {
			g.Submit(game.PullCommand{Pos: pins[nextPin].Pos})
			nextPin++
		}

		clock.Advance()
		res := g.Tick(1)
		ticks++
		sinceLoad++

		switch {
		case res.State.Status.Terminal():
			if !advance() {
				return
			}
		case nextPin >= len(pins) && sinceLoad > (len(pins)+1)*pullInterval+settleTicks:
			slog.Info("level abandoned", "level_id", res.State.CurrentLevel, "ticks", sinceLoad)
			if !advance() {
				return
			}
		}
	}
	slog.Info("max ticks reached", "ticks", ticks)
}
