package components

import "math"

// Vec2 is a 2D point or displacement in arena units (y grows downward).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Mid returns the midpoint of v and o.
func (v Vec2) Mid(o Vec2) Vec2 { return Vec2{(v.X + o.X) / 2, (v.Y + o.Y) / 2} }

// FromAngle returns a vector of length l pointing at angle a (radians).
func FromAngle(a, l float64) Vec2 {
	return Vec2{math.Cos(a) * l, math.Sin(a) * l}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Position is the ECS position component of a particle.
type Position struct {
	X, Y float64
}

// Velocity is the ECS velocity component of a particle.
type Velocity struct {
	X, Y float64
}
