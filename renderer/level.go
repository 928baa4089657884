package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/game"
)

// Level colors.
var (
	chamberFill   = rl.Color{R: 20, G: 20, B: 30, A: 180}
	chamberBorder = rl.Color{R: 74, G: 85, B: 104, A: 255}
	chamberRim    = rl.Color{R: 45, G: 55, B: 72, A: 255}
	pinBody       = rl.Color{R: 236, G: 201, B: 75, A: 255}
	pinHighlight  = rl.Color{R: 255, G: 255, B: 240, A: 255}
	pinHead       = rl.Color{R: 214, G: 158, B: 46, A: 255}
	pinHover      = rl.Color{R: 255, G: 240, B: 160, A: 255}
	monsterColor  = rl.Color{R: 229, G: 62, B: 62, A: 255}
	treasureColor = rl.Color{R: 246, G: 224, B: 94, A: 255}
)

// PinEnd returns the far end of a pin shaft. Angle is in radians.
func PinEnd(p components.Pin) components.Vec2 {
	return components.Vec2{
		X: p.Pos.X + math.Cos(p.Angle)*p.Length,
		Y: p.Pos.Y + math.Sin(p.Angle)*p.Length,
	}
}

// Scene draws a game snapshot: background, chambers, fluids, pins, monsters
// and the treasure.
type Scene struct {
	background *BackgroundRenderer
	particles  *ParticleRenderer
}

// NewScene creates a scene renderer for the given screen size.
func NewScene(screenW, screenH int32) *Scene {
	return &Scene{
		background: NewBackgroundRenderer(screenW, screenH),
		particles:  NewParticleRenderer(),
	}
}

// Draw renders the snapshot. It must be called between BeginDrawing and
// EndDrawing.
func (s *Scene) Draw(snap *game.Snapshot, time float32) {
	s.background.Draw()
	for i := range snap.Obstacles {
		drawChamber(snap.Obstacles[i].Rect)
	}
	drawTreasure(snap.Treasure, time)
	s.particles.Draw(snap.Particles)
	for i := range snap.Pins {
		drawPin(snap.Pins[i])
	}
	for i := range snap.Monsters {
		drawMonster(snap.Monsters[i])
	}
}

func toRect(r components.Rect) rl.Rectangle {
	return rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.Width), Height: float32(r.Height)}
}

func drawChamber(r components.Rect) {
	inner := toRect(r)
	rl.DrawRectangleRec(inner, chamberFill)

	outer := rl.Rectangle{X: inner.X - 6, Y: inner.Y - 6, Width: inner.Width + 12, Height: inner.Height + 12}
	rl.DrawRectangleLinesEx(outer, 6, chamberBorder)
	rl.DrawRectangleLinesEx(inner, 2, chamberRim)
}

func drawPin(p components.Pin) {
	if p.Pulled {
		return
	}
	end := PinEnd(p)
	start := rl.Vector2{X: float32(p.Pos.X), Y: float32(p.Pos.Y)}
	stop := rl.Vector2{X: float32(end.X), Y: float32(end.Y)}

	body := pinBody
	if p.Hover {
		body = pinHover
	}
	rl.DrawLineEx(start, stop, 12, body)
	rl.DrawLineEx(rl.Vector2{X: start.X, Y: start.Y - 2}, rl.Vector2{X: stop.X, Y: stop.Y - 2}, 4, pinHighlight)
	rl.DrawCircleV(start, 10, pinHead)
}

func drawMonster(m components.Monster) {
	if !m.Active {
		return
	}
	x, y := int32(m.Pos.X), int32(m.Pos.Y)
	rl.DrawCircle(x, y, 10, monsterColor)
	rl.DrawCircle(x-4, y-3, 2, rl.White)
	rl.DrawCircle(x+4, y-3, 2, rl.White)
}

// drawTreasure draws a slowly pulsing chest marker.
func drawTreasure(pos components.Vec2, time float32) {
	pulse := 1 + 0.1*float32(math.Sin(float64(time)*3))
	c := rl.Vector2{X: float32(pos.X), Y: float32(pos.Y)}
	rl.DrawCircleV(c, 18*pulse, glow(treasureColor))
	rl.DrawRectangleV(rl.Vector2{X: c.X - 12, Y: c.Y - 8}, rl.Vector2{X: 24, Y: 16}, treasureColor)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: c.X - 12, Y: c.Y - 8, Width: 24, Height: 16}, 2, pinHead)
}
