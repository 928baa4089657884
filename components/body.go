package components

// Fluid holds the non-kinematic state of a particle entity.
type Fluid struct {
	ID     int
	Type   FluidType
	Active bool
	Mass   float64
}

// Split breaks a particle into its ECS components.
func (p Particle) Split() (Position, Velocity, Fluid) {
	return Position{X: p.Pos.X, Y: p.Pos.Y},
		Velocity{X: p.Vel.X, Y: p.Vel.Y},
		Fluid{ID: p.ID, Type: p.Type, Active: p.Active, Mass: p.Mass}
}

// Join rebuilds a particle from its ECS components.
func Join(pos *Position, vel *Velocity, f *Fluid) Particle {
	return Particle{
		ID:     f.ID,
		Pos:    Vec2{X: pos.X, Y: pos.Y},
		Vel:    Vec2{X: vel.X, Y: vel.Y},
		Type:   f.Type,
		Active: f.Active,
		Mass:   f.Mass,
	}
}
