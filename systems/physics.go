// Package systems contains the particle physics backends, hazard motion and
// the goal contact queries.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pinflow/components"
)

// ECSBackend stores particles as ark entities with Position, Velocity and
// Fluid components. Integration runs as a filter query; the pairwise pass
// walks entities in creation order so results match the Integrator.
type ECSBackend struct {
	stepper *Stepper
	rng     *rand.Rand

	world    *ecs.World
	mapper   *ecs.Map3[components.Position, components.Velocity, components.Fluid]
	filter   *ecs.Filter3[components.Position, components.Velocity, components.Fluid]
	entities []ecs.Entity       // creation order
	byID     map[int]ecs.Entity // particle ID -> entity

	scratch []components.Particle
}

// NewECSBackend creates an empty ark-backed simulator.
func NewECSBackend(p Params, rng *rand.Rand) *ECSBackend {
	s := &ECSBackend{
		stepper: NewStepper(p, rng, 0),
		rng:     rng,
	}
	s.resetWorld(0)
	return s
}

// resetWorld swaps in a fresh world so stale entities from the previous
// level can never be observed.
func (s *ECSBackend) resetWorld(capacity int) {
	s.world = ecs.NewWorld()
	s.mapper = ecs.NewMap3[components.Position, components.Velocity, components.Fluid](s.world)
	s.filter = ecs.NewFilter3[components.Position, components.Velocity, components.Fluid](s.world)
	s.entities = make([]ecs.Entity, 0, capacity)
	s.byID = make(map[int]ecs.Entity, capacity)
}

// Load implements Simulator.
func (s *ECSBackend) Load(particles []components.Particle) {
	s.resetWorld(len(particles))
	for _, p := range particles {
		s.add(p)
	}
	s.stepper = NewStepper(s.stepper.Params, s.rng, nextFreeID(particles))
}

func (s *ECSBackend) add(p components.Particle) {
	pos, vel, fluid := p.Split()
	e := s.mapper.NewEntity(&pos, &vel, &fluid)
	s.entities = append(s.entities, e)
	s.byID[p.ID] = e
}

// Step implements Simulator.
func (s *ECSBackend) Step(obstacles []components.Obstacle, dt float64) StepStats {
	var stats StepStats

	query := s.filter.Query()
	for query.Next() {
		pos, vel, fluid := query.Get()
		if !fluid.Active {
			continue
		}
		p := components.Join(pos, vel, fluid)
		if s.stepper.Integrate(&p, obstacles, dt) {
			stats.Deactivated++
		}
		*pos, *vel, *fluid = p.Split()
	}

	// Pairwise pass on an ordered copy; spawned steam becomes new entities
	// once the copy is written back.
	ps := s.collect(s.scratch[:0])
	n := len(ps)
	ps, interact := s.stepper.Interact(ps)
	for i, e := range s.entities[:n] {
		pos, vel, fluid := s.mapper.Get(e)
		*pos, *vel, *fluid = ps[i].Split()
	}
	for _, p := range ps[n:] {
		s.add(p)
	}
	s.scratch = ps[:0]

	stats.SteamSpawned += interact.SteamSpawned
	stats.Deactivated += interact.Deactivated
	return stats
}

func (s *ECSBackend) collect(dst []components.Particle) []components.Particle {
	for _, e := range s.entities {
		pos, vel, fluid := s.mapper.Get(e)
		dst = append(dst, components.Join(pos, vel, fluid))
	}
	return dst
}

// Particles implements Simulator. The result is freshly built on every call.
func (s *ECSBackend) Particles() []components.Particle {
	return s.collect(make([]components.Particle, 0, len(s.entities)))
}

// Position implements Simulator.
func (s *ECSBackend) Position(id int) (components.Vec2, bool) {
	e, ok := s.byID[id]
	if !ok || !s.world.Alive(e) {
		return components.Vec2{}, false
	}
	pos, _, _ := s.mapper.Get(e)
	return components.Vec2{X: pos.X, Y: pos.Y}, true
}

// Contact implements Simulator.
func (s *ECSBackend) Contact(t components.FluidType, target components.Vec2, radius float64) bool {
	query := s.filter.Query()
	for query.Next() {
		pos, _, fluid := query.Get()
		if !fluid.Active || fluid.Type != t {
			continue
		}
		if (components.Vec2{X: pos.X, Y: pos.Y}).Dist(target) < radius {
			query.Close()
			return true
		}
	}
	return false
}
