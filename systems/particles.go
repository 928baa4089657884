package systems

import (
	"math/rand"

	"github.com/pthm-cable/pinflow/components"
)

// StepStats summarizes what happened during one step.
type StepStats struct {
	SteamSpawned int // water+lava reactions this step
	Deactivated  int // particles removed by bounds or reactions
}

// Stepper runs the particle kernels shared by every backend.
// It owns the RNG used for steam velocities and the next free particle ID.
type Stepper struct {
	Params Params
	rng    *rand.Rand
	nextID int
}

// NewStepper creates a stepper. nextID is the first ID handed to spawned steam.
func NewStepper(p Params, rng *rand.Rand, nextID int) *Stepper {
	return &Stepper{Params: p, rng: rng, nextID: nextID}
}

// Step advances every particle by dt and then resolves reactions and
// repulsion. The returned slice may be longer than ps (spawned steam).
func (s *Stepper) Step(ps []components.Particle, obstacles []components.Obstacle, dt float64) ([]components.Particle, StepStats) {
	var stats StepStats
	for i := range ps {
		if s.Integrate(&ps[i], obstacles, dt) {
			stats.Deactivated++
		}
	}
	ps, interact := s.Interact(ps)
	stats.SteamSpawned += interact.SteamSpawned
	stats.Deactivated += interact.Deactivated
	return ps, stats
}

// Integrate advances a single particle: acceleration, semi-implicit Euler,
// damping, obstacle bounces, arena bounds. Returns true if the particle was
// deactivated by leaving the arena.
func (s *Stepper) Integrate(p *components.Particle, obstacles []components.Obstacle, dt float64) bool {
	if !p.Active {
		return false
	}
	prm := &s.Params

	switch p.Type {
	case components.Water:
		p.Vel.Y += prm.Gravity * dt
	case components.Lava:
		// Viscous: falls slower than water
		p.Vel.Y += prm.Gravity * prm.LavaGravityScale * dt
	case components.Steam, components.Gas:
		p.Vel.Y -= prm.RiseRate * dt
	}

	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y * dt

	p.Vel.X *= prm.Damping
	p.Vel.Y *= prm.Damping

	for i := range obstacles {
		CollideRect(&p.Pos, &p.Vel, obstacles[i].Rect, prm.WallMargin, prm.Restitution)
	}

	if p.Type.Rises() && p.Pos.Y < prm.ArenaTop {
		p.Active = false
		return true
	}
	if p.Pos.Y > prm.ArenaBottom {
		p.Active = false
		return true
	}
	return false
}

// Interact runs one pairwise pass over the particles that are active when
// the pass starts. Water touching lava turns both into one steam particle;
// water-water and lava-lava pairs push apart. Each unordered pair is seen
// once, and a particle consumed by a reaction takes no further part.
//
// O(n²): fine for a few hundred particles. A bucket grid would be the
// next step if counts grow tenfold.
func (s *Stepper) Interact(ps []components.Particle) ([]components.Particle, StepStats) {
	var stats StepStats
	prm := &s.Params
	n := len(ps)

	for i := 0; i < n; i++ {
		if !ps[i].Active {
			continue
		}
		for j := i + 1; j < n; j++ {
			a, b := &ps[i], &ps[j]
			if !b.Active {
				continue
			}

			d := b.Pos.Sub(a.Pos)
			dist := d.Len()

			if isReactionPair(a.Type, b.Type) {
				if dist < prm.ReactionRadius {
					mid := a.Pos.Mid(b.Pos)
					a.Active = false
					b.Active = false
					// a and b are stale after the append
					ps = append(ps, s.spawnSteam(mid))
					stats.SteamSpawned++
					stats.Deactivated += 2
					break
				}
				continue
			}

			if a.Type == b.Type && a.Type.Reactive() && dist < prm.RepulsionRadius && dist > 0 {
				force := (prm.RepulsionRadius - dist) * prm.RepulsionForce
				nx := d.X / dist
				ny := d.Y / dist
				a.Vel.X -= nx * force
				a.Vel.Y -= ny * force
				b.Vel.X += nx * force
				b.Vel.Y += ny * force
			}
		}
	}

	return ps, stats
}

// NextID returns the ID the next spawned particle will get.
func (s *Stepper) NextID() int {
	return s.nextID
}

func (s *Stepper) spawnSteam(at components.Vec2) components.Particle {
	vx := (s.rng.Float64() - 0.5) * 2
	vy := -2 - s.rng.Float64()
	p := components.Particle{
		ID:     s.nextID,
		Pos:    at,
		Vel:    components.Vec2{X: vx, Y: vy},
		Type:   components.Steam,
		Active: true,
		Mass:   s.Params.SteamMass,
	}
	s.nextID++
	return p
}

func isReactionPair(a, b components.FluidType) bool {
	return (a == components.Water && b == components.Lava) ||
		(a == components.Lava && b == components.Water)
}
