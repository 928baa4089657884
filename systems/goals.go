package systems

import (
	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/config"
)

// Outcome is the result of a goal evaluation.
type Outcome uint8

const (
	OutcomeNone     Outcome = iota
	OutcomeTreasure         // water reached the treasure
	OutcomeLava             // lava reached the treasure
	OutcomeMonster          // a monster reached the treasure
)

// String returns a short name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeTreasure:
		return "treasure"
	case OutcomeLava:
		return "lava"
	case OutcomeMonster:
		return "monster"
	default:
		return "none"
	}
}

// Won reports whether the outcome wins the level.
func (o Outcome) Won() bool { return o == OutcomeTreasure }

// Lost reports whether the outcome loses the level.
func (o Outcome) Lost() bool { return o == OutcomeLava || o == OutcomeMonster }

// Contact reports whether any active particle of type t lies strictly within
// radius of target.
func Contact(ps []components.Particle, t components.FluidType, target components.Vec2, radius float64) bool {
	for i := range ps {
		p := &ps[i]
		if p.Active && p.Type == t && p.Pos.Dist(target) < radius {
			return true
		}
	}
	return false
}

// MonsterContact reports whether any active monster lies strictly within
// radius of target.
func MonsterContact(ms []components.Monster, target components.Vec2, radius float64) bool {
	for i := range ms {
		if ms[i].Active && ms[i].Pos.Dist(target) < radius {
			return true
		}
	}
	return false
}

// GoalDetector holds the contact radii for the three treasure predicates.
type GoalDetector struct {
	TreasureRadius float64
	LavaRadius     float64
	MonsterRadius  float64
}

// DefaultGoalDetector returns the standard radii.
func DefaultGoalDetector() GoalDetector {
	return GoalDetector{TreasureRadius: 15, LavaRadius: 15, MonsterRadius: 20}
}

// GoalDetectorFromConfig returns the radii configured in cfg.
func GoalDetectorFromConfig(cfg *config.Config) GoalDetector {
	return GoalDetector{
		TreasureRadius: cfg.Goals.TreasureRadius,
		LavaRadius:     cfg.Goals.LavaRadius,
		MonsterRadius:  cfg.Goals.MonsterRadius,
	}
}

// TreasureContact reports whether water touches the treasure.
func (g GoalDetector) TreasureContact(ps []components.Particle, treasure components.Vec2) bool {
	return Contact(ps, components.Water, treasure, g.TreasureRadius)
}

// LavaContact reports whether lava touches the treasure.
func (g GoalDetector) LavaContact(ps []components.Particle, treasure components.Vec2) bool {
	return Contact(ps, components.Lava, treasure, g.LavaRadius)
}

// MonsterContact reports whether a monster touches the treasure.
func (g GoalDetector) MonsterContact(ms []components.Monster, treasure components.Vec2) bool {
	return MonsterContact(ms, treasure, g.MonsterRadius)
}

// Evaluate checks water, then lava, then monsters and returns the first hit.
// When several hold in the same tick the earlier check wins.
func (g GoalDetector) Evaluate(ps []components.Particle, ms []components.Monster, treasure components.Vec2) Outcome {
	switch {
	case g.TreasureContact(ps, treasure):
		return OutcomeTreasure
	case g.LavaContact(ps, treasure):
		return OutcomeLava
	case g.MonsterContact(ms, treasure):
		return OutcomeMonster
	}
	return OutcomeNone
}

// EvaluateSimulator is Evaluate against a simulator's contact queries.
func (g GoalDetector) EvaluateSimulator(sim Simulator, ms []components.Monster, treasure components.Vec2) Outcome {
	switch {
	case sim.Contact(components.Water, treasure, g.TreasureRadius):
		return OutcomeTreasure
	case sim.Contact(components.Lava, treasure, g.LavaRadius):
		return OutcomeLava
	case g.MonsterContact(ms, treasure):
		return OutcomeMonster
	}
	return OutcomeNone
}
