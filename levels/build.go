package levels

import (
	"math/rand"

	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/config"
)

// BuildParams controls how chamber contents are spawned.
type BuildParams struct {
	FluidMass   float64 // water and gas
	LavaMass    float64
	SpawnJitter float64 // initial velocity spread per axis, centered on zero
}

// BuildParamsFromConfig extracts spawn settings from cfg.
func BuildParamsFromConfig(cfg *config.Config) BuildParams {
	return BuildParams{
		FluidMass:   cfg.Physics.FluidMass,
		LavaMass:    cfg.Physics.LavaMass,
		SpawnJitter: cfg.Physics.SpawnJitter,
	}
}

// Instance is the mutable, playable form of a Definition.
type Instance struct {
	Pins      []components.Pin
	Obstacles []components.Obstacle
	Particles []components.Particle
	Monsters  []components.Monster
	Treasure  components.Vec2
}

// Build creates a fresh instance of d. Every collection is newly allocated so
// the caller can swap it in with a single assignment.
func Build(d Definition, rng *rand.Rand, p BuildParams) *Instance {
	inst := &Instance{
		Pins:      make([]components.Pin, 0, len(d.Pins)),
		Obstacles: make([]components.Obstacle, 0, len(d.Chambers)),
		Monsters:  make([]components.Monster, 0, len(d.Monsters)),
		Treasure:  d.Treasure.Vec(),
	}

	for _, pd := range d.Pins {
		inst.Pins = append(inst.Pins, components.Pin{
			ID:     pd.ID,
			Pos:    components.Vec2{X: pd.X, Y: pd.Y},
			Angle:  pd.Angle,
			Length: pd.Length,
		})
	}

	total := 0
	for _, c := range d.Chambers {
		total += c.ParticleCount
	}
	inst.Particles = make([]components.Particle, 0, total)

	for _, c := range d.Chambers {
		obs := components.Obstacle{Rect: c.Rect(), ParticleCount: c.ParticleCount}
		fluid, ok := c.Fluid()
		if ok {
			obs.Fill, obs.HasFill = fluid, true
		}
		inst.Obstacles = append(inst.Obstacles, obs)
		if !ok {
			continue
		}

		mass := p.FluidMass
		if fluid == components.Lava {
			mass = p.LavaMass
		}
		for i := 0; i < c.ParticleCount; i++ {
			inst.Particles = append(inst.Particles, components.Particle{
				ID: len(inst.Particles),
				Pos: components.Vec2{
					X: c.X + rng.Float64()*c.Width,
					Y: c.Y + rng.Float64()*c.Height,
				},
				Vel: components.Vec2{
					X: (rng.Float64() - 0.5) * p.SpawnJitter,
					Y: (rng.Float64() - 0.5) * p.SpawnJitter,
				},
				Type:   fluid,
				Active: true,
				Mass:   mass,
			})
		}
	}

	for _, md := range d.Monsters {
		inst.Monsters = append(inst.Monsters, components.Monster{
			ID:     md.ID,
			Pos:    components.Vec2{X: md.X, Y: md.Y},
			Type:   md.Type,
			Active: true,
		})
	}

	return inst
}
