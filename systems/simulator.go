package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/pinflow/components"
)

// Simulator is a particle physics backend.
// Backends differ in storage only; they all run the Stepper kernels.
type Simulator interface {
	// Load replaces every particle. IDs of spawned particles continue after
	// the highest loaded ID.
	Load(particles []components.Particle)
	// Step advances the simulation by dt frames.
	Step(obstacles []components.Obstacle, dt float64) StepStats
	// Particles returns the particles in creation order. Callers must not
	// modify the result.
	Particles() []components.Particle
	// Position looks up a particle by ID.
	Position(id int) (components.Vec2, bool)
	// Contact reports whether an active particle of type t is strictly
	// within radius of target.
	Contact(t components.FluidType, target components.Vec2, radius float64) bool
}

// Backend names accepted by New.
const (
	BackendIntegrator = "integrator"
	BackendECS        = "ecs"
)

// New creates the named backend.
func New(backend string, p Params, rng *rand.Rand) (Simulator, error) {
	switch backend {
	case BackendIntegrator, "":
		return NewIntegrator(p, rng), nil
	case BackendECS:
		return NewECSBackend(p, rng), nil
	default:
		return nil, fmt.Errorf("unknown physics backend %q", backend)
	}
}

// StepParticles advances ps by one step and returns the (possibly grown)
// slice. It is the stateless form of Simulator.Step: nextID is advanced past
// any spawned steam.
func StepParticles(ps []components.Particle, obstacles []components.Obstacle, dt float64, p Params, rng *rand.Rand, nextID *int) ([]components.Particle, StepStats) {
	s := NewStepper(p, rng, *nextID)
	ps, stats := s.Step(ps, obstacles, dt)
	*nextID = s.NextID()
	return ps, stats
}

// Integrator is the slice-backed reference simulator.
type Integrator struct {
	stepper   *Stepper
	rng       *rand.Rand
	particles []components.Particle
	index     map[int]int // particle ID -> slice index
}

// NewIntegrator creates an empty slice-backed simulator.
func NewIntegrator(p Params, rng *rand.Rand) *Integrator {
	return &Integrator{
		stepper: NewStepper(p, rng, 0),
		rng:     rng,
		index:   make(map[int]int),
	}
}

// Load implements Simulator.
func (s *Integrator) Load(particles []components.Particle) {
	s.particles = make([]components.Particle, len(particles))
	copy(s.particles, particles)
	s.index = make(map[int]int, len(particles))
	for i, p := range s.particles {
		s.index[p.ID] = i
	}
	s.stepper = NewStepper(s.stepper.Params, s.rng, nextFreeID(particles))
}

// Step implements Simulator.
func (s *Integrator) Step(obstacles []components.Obstacle, dt float64) StepStats {
	before := len(s.particles)
	ps, stats := s.stepper.Step(s.particles, obstacles, dt)
	s.particles = ps
	for i := before; i < len(ps); i++ {
		s.index[ps[i].ID] = i
	}
	return stats
}

// Particles implements Simulator.
func (s *Integrator) Particles() []components.Particle {
	return s.particles
}

// Position implements Simulator.
func (s *Integrator) Position(id int) (components.Vec2, bool) {
	i, ok := s.index[id]
	if !ok {
		return components.Vec2{}, false
	}
	return s.particles[i].Pos, true
}

// Contact implements Simulator.
func (s *Integrator) Contact(t components.FluidType, target components.Vec2, radius float64) bool {
	return Contact(s.particles, t, target, radius)
}

func nextFreeID(ps []components.Particle) int {
	next := 0
	for _, p := range ps {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
