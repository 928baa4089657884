package systems

import (
	"math"

	"github.com/pthm-cable/pinflow/components"
)

// Edge flags returned by CollideRect.
const (
	EdgeBottom uint8 = 1 << iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

// CollideRect bounces a point off the edges of r.
//
// A point is near an edge when it lies within margin of it and strictly inside
// the rectangle's span on the other axis. Edges are tested bottom, top, left,
// right; each test sees the position left by the previous one. A hit clamps the
// point to margin inside the edge and reflects that velocity component scaled
// by restitution. Fast points can tunnel through thin walls.
func CollideRect(pos, vel *components.Vec2, r components.Rect, margin, restitution float64) uint8 {
	var hit uint8

	bottom := r.Bottom()
	if pos.Y+margin > bottom && pos.Y-margin < bottom && pos.X > r.Left() && pos.X < r.Right() {
		pos.Y = bottom - margin
		vel.Y = -math.Abs(vel.Y) * restitution
		hit |= EdgeBottom
	}

	top := r.Top()
	if pos.Y-margin < top && pos.Y+margin > top && pos.X > r.Left() && pos.X < r.Right() {
		pos.Y = top + margin
		vel.Y = math.Abs(vel.Y) * restitution
		hit |= EdgeTop
	}

	left := r.Left()
	if pos.X-margin < left && pos.X+margin > left && pos.Y > r.Top() && pos.Y < r.Bottom() {
		pos.X = left + margin
		vel.X = math.Abs(vel.X) * restitution
		hit |= EdgeLeft
	}

	right := r.Right()
	if pos.X+margin > right && pos.X-margin < right && pos.Y > r.Top() && pos.Y < r.Bottom() {
		pos.X = right - margin
		vel.X = -math.Abs(vel.X) * restitution
		hit |= EdgeRight
	}

	return hit
}
