// Package components defines the entities of a loaded level and the ECS
// components the particle backends store them in.
package components

import "fmt"

// FluidType identifies the phase of a particle.
type FluidType uint8

const (
	Water FluidType = iota
	Lava
	Steam
	Gas
)

var fluidNames = [...]string{"water", "lava", "steam", "gas"}

// String returns the lowercase name used in level files and logs.
func (t FluidType) String() string {
	if int(t) < len(fluidNames) {
		return fluidNames[t]
	}
	return fmt.Sprintf("fluid(%d)", uint8(t))
}

// Rises reports whether the fluid is buoyant (steam and gas).
func (t FluidType) Rises() bool {
	return t == Steam || t == Gas
}

// Reactive reports whether same-type particles repel each other.
func (t FluidType) Reactive() bool {
	return t == Water || t == Lava
}

// ParseFluidType converts a level-file name to a FluidType.
func ParseFluidType(s string) (FluidType, bool) {
	for i, name := range fluidNames {
		if name == s {
			return FluidType(i), true
		}
	}
	return 0, false
}

// Particle is one fluid element.
// Once Active is false the particle is never reactivated.
type Particle struct {
	ID     int
	Pos    Vec2
	Vel    Vec2
	Type   FluidType
	Active bool
	Mass   float64
}

// Pin is a removable obstacle anchor. Pulled only ever goes false -> true.
// Hover is a highlight flag for renderers and has no gameplay effect.
type Pin struct {
	ID     int
	Pos    Vec2
	Angle  float64
	Length float64
	Pulled bool
	Hover  bool
}

// End returns the far end of the pin shaft.
func (p Pin) End() Vec2 {
	return p.Pos.Add(FromAngle(p.Angle, p.Length))
}

// Obstacle is a static chamber wall. Fill and ParticleCount describe the
// chamber's initial content; an empty chamber has HasFill false.
type Obstacle struct {
	Rect
	Fill          FluidType
	HasFill       bool
	ParticleCount int
}

// Monster is a roaming hazard that loses the level when it reaches the treasure.
type Monster struct {
	ID     int
	Pos    Vec2
	Vel    Vec2
	Type   string
	Active bool
}
