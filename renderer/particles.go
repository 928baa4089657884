package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pinflow/components"
)

// ParticleRadius is the drawn radius of a fluid particle.
const ParticleRadius = 5

// FluidColor returns the draw color for a fluid type.
func FluidColor(t components.FluidType) rl.Color {
	switch t {
	case components.Water:
		return rl.Color{R: 66, G: 153, B: 225, A: 255}
	case components.Lava:
		return rl.Color{R: 229, G: 62, B: 62, A: 255}
	case components.Steam:
		return rl.Color{R: 160, G: 174, B: 192, A: 200}
	case components.Gas:
		return rl.Color{R: 154, G: 230, B: 180, A: 200}
	default:
		return rl.Magenta
	}
}

// glow returns c with its alpha scaled down for the halo ring.
func glow(c rl.Color) rl.Color {
	c.A /= 4
	return c
}

// ParticleRenderer renders fluid particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all active particles. Water and lava get a soft halo.
func (r *ParticleRenderer) Draw(particles []components.Particle) {
	for i := range particles {
		p := &particles[i]
		if !p.Active {
			continue
		}
		color := FluidColor(p.Type)
		x, y := int32(p.Pos.X), int32(p.Pos.Y)
		if p.Type.Reactive() {
			rl.DrawCircle(x, y, ParticleRadius*1.8, glow(color))
		}
		rl.DrawCircle(x, y, ParticleRadius, color)
	}
}
