package systems

import "github.com/pthm-cable/pinflow/components"

// StepMonsters moves hazards: they fall under gravity, bounce softly off
// obstacles and are dropped once they leave the bottom of the arena.
func StepMonsters(ms []components.Monster, obstacles []components.Obstacle, dt float64, p MonsterParams) {
	for i := range ms {
		m := &ms[i]
		if !m.Active {
			continue
		}

		m.Vel.Y += p.Gravity * dt
		m.Pos.X += m.Vel.X * dt
		m.Pos.Y += m.Vel.Y * dt
		m.Vel.X *= p.Damping
		m.Vel.Y *= p.Damping

		for j := range obstacles {
			CollideRect(&m.Pos, &m.Vel, obstacles[j].Rect, p.WallMargin, p.Restitution)
		}

		if m.Pos.Y > p.ArenaBottom {
			m.Active = false
		}
	}
}
