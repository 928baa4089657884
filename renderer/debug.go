package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/systems"
)

// velocityScale stretches velocity vectors so slow drift is visible.
const velocityScale = 4

// DrawVelocities draws each active particle's velocity as a short line.
func DrawVelocities(particles []components.Particle) {
	for i := range particles {
		p := &particles[i]
		if !p.Active {
			continue
		}
		end := p.Pos.Add(p.Vel.Scale(velocityScale))
		rl.DrawLine(int32(p.Pos.X), int32(p.Pos.Y), int32(end.X), int32(end.Y), rl.DarkGray)
	}
}

// DrawGoalRadii outlines the treasure contact radius for each hazard.
func DrawGoalRadii(treasure components.Vec2, g systems.GoalDetector) {
	x, y := int32(treasure.X), int32(treasure.Y)
	rl.DrawCircleLines(x, y, float32(g.TreasureRadius), FluidColor(components.Water))
	rl.DrawCircleLines(x, y, float32(g.LavaRadius)+1, FluidColor(components.Lava))
	rl.DrawCircleLines(x, y, float32(g.MonsterRadius), monsterColor)
}
