package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/pinflow/components"
)

func TestPinEnd(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  components.Vec2
	}{
		{"horizontal", 0, components.Vec2{X: 400, Y: 200}},
		{"pointing down", math.Pi / 2, components.Vec2{X: 300, Y: 300}},
		{"pointing left", math.Pi, components.Vec2{X: 200, Y: 200}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := components.Pin{Pos: components.Vec2{X: 300, Y: 200}, Angle: tc.angle, Length: 100}
			got := PinEnd(p)
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("PinEnd = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFluidColor_Distinct(t *testing.T) {
	seen := map[[4]uint8]components.FluidType{}
	for _, ft := range []components.FluidType{components.Water, components.Lava, components.Steam, components.Gas} {
		c := FluidColor(ft)
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if other, ok := seen[key]; ok {
			t.Errorf("%s and %s share a color", ft, other)
		}
		seen[key] = ft
	}
}
