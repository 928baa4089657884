package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/config"
)

func testParams(t *testing.T) Params {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return ParamsFromConfig(cfg)
}

func particle(id int, typ components.FluidType, x, y float64) components.Particle {
	return components.Particle{
		ID:     id,
		Pos:    components.Vec2{X: x, Y: y},
		Type:   typ,
		Active: true,
		Mass:   1,
	}
}

func countActive(ps []components.Particle, typ components.FluidType) int {
	n := 0
	for _, p := range ps {
		if p.Active && p.Type == typ {
			n++
		}
	}
	return n
}

// ---------- Integration ----------

func TestIntegrate_TypeAcceleration(t *testing.T) {
	prm := testParams(t)
	s := NewStepper(prm, rand.New(rand.NewSource(1)), 100)

	tests := []struct {
		typ    components.FluidType
		wantVY float64
		wantY  float64
	}{
		{components.Water, 0.5 * 0.98, 100.5},
		{components.Lava, 0.15 * 0.98, 100.15},
		{components.Steam, -0.3 * 0.98, 99.7},
		{components.Gas, -0.3 * 0.98, 99.7},
	}

	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			p := particle(1, tc.typ, 100, 100)
			if s.Integrate(&p, nil, 1) {
				t.Fatal("particle unexpectedly deactivated")
			}
			if math.Abs(p.Vel.Y-tc.wantVY) > 1e-9 {
				t.Errorf("vel.Y = %.6f, want %.6f", p.Vel.Y, tc.wantVY)
			}
			if math.Abs(p.Pos.Y-tc.wantY) > 1e-9 {
				t.Errorf("pos.Y = %.6f, want %.6f", p.Pos.Y, tc.wantY)
			}
		})
	}
}

func TestIntegrate_ScalesWithDT(t *testing.T) {
	prm := testParams(t)
	s := NewStepper(prm, rand.New(rand.NewSource(1)), 100)

	p := particle(1, components.Water, 100, 100)
	p.Vel.X = 1
	s.Integrate(&p, nil, 2)

	// v = 0 + 0.5*2 = 1, y = 100 + 1*2, x = 100 + 1*2
	if math.Abs(p.Pos.Y-102) > 1e-9 || math.Abs(p.Pos.X-102) > 1e-9 {
		t.Errorf("pos = %+v, want (102, 102)", p.Pos)
	}
}

func TestIntegrate_ArenaBounds(t *testing.T) {
	prm := testParams(t)
	s := NewStepper(prm, rand.New(rand.NewSource(1)), 100)

	steam := particle(1, components.Steam, 50, -9.9)
	steam.Vel.Y = -1
	if !s.Integrate(&steam, nil, 1) || steam.Active {
		t.Error("steam above the arena top should deactivate")
	}

	water := particle(2, components.Water, 50, 699.9)
	water.Vel.Y = 1
	if !s.Integrate(&water, nil, 1) || water.Active {
		t.Error("water below the arena bottom should deactivate")
	}

	// Water above the top is not removed; it will fall back.
	high := particle(3, components.Water, 50, -50)
	if s.Integrate(&high, nil, 1) || !high.Active {
		t.Error("water above the top should stay active")
	}
}

func TestIntegrate_InactiveNoOp(t *testing.T) {
	prm := testParams(t)
	s := NewStepper(prm, rand.New(rand.NewSource(1)), 100)

	p := particle(1, components.Water, 100, 100)
	p.Active = false
	s.Integrate(&p, nil, 1)
	if p.Pos.Y != 100 || p.Vel.Y != 0 {
		t.Errorf("inactive particle moved: %+v", p)
	}
}

// ---------- Reactions ----------

func TestStep_WaterLavaMakesOneSteam(t *testing.T) {
	prm := testParams(t)
	ps := []components.Particle{
		particle(0, components.Water, 100, 100),
		particle(1, components.Lava, 102, 100),
	}
	nextID := 2

	ps, stats := StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	if len(ps) != 3 {
		t.Fatalf("len = %d, want 3", len(ps))
	}
	if ps[0].Active || ps[1].Active {
		t.Error("water and lava should both be consumed")
	}
	steam := ps[2]
	if !steam.Active || steam.Type != components.Steam {
		t.Fatalf("spawned particle = %+v, want active steam", steam)
	}
	mid := ps[0].Pos.Mid(ps[1].Pos)
	if steam.Pos.Dist(mid) > 1e-9 {
		t.Errorf("steam at %+v, want midpoint %+v", steam.Pos, mid)
	}
	if steam.Vel.Y > -2 || steam.Vel.Y < -3 {
		t.Errorf("steam vel.Y = %.3f, want in [-3, -2]", steam.Vel.Y)
	}
	if math.Abs(steam.Vel.X) > 1 {
		t.Errorf("steam vel.X = %.3f, want in [-1, 1]", steam.Vel.X)
	}
	if steam.ID != 2 || nextID != 3 {
		t.Errorf("steam ID = %d nextID = %d, want 2 and 3", steam.ID, nextID)
	}
	if stats.SteamSpawned != 1 || stats.Deactivated != 2 {
		t.Errorf("stats = %+v, want 1 spawned 2 deactivated", stats)
	}
}

func TestStep_ParticleConsumedOnce(t *testing.T) {
	prm := testParams(t)
	// One lava in reach of two waters: only one reaction can happen.
	ps := []components.Particle{
		particle(0, components.Lava, 100, 100),
		particle(1, components.Water, 102, 100),
		particle(2, components.Water, 98, 100),
	}
	nextID := 3

	ps, stats := StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	if stats.SteamSpawned != 1 {
		t.Fatalf("steam spawned = %d, want 1", stats.SteamSpawned)
	}
	if got := countActive(ps, components.Water); got != 1 {
		t.Errorf("active water = %d, want 1", got)
	}
	if got := countActive(ps, components.Lava); got != 0 {
		t.Errorf("active lava = %d, want 0", got)
	}
	if got := countActive(ps, components.Steam); got != 1 {
		t.Errorf("active steam = %d, want 1", got)
	}
}

func TestStep_OutOfRangeNoReaction(t *testing.T) {
	prm := testParams(t)
	ps := []components.Particle{
		particle(0, components.Water, 100, 100),
		particle(1, components.Lava, 110, 100),
	}
	nextID := 2

	ps, stats := StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	if stats.SteamSpawned != 0 || len(ps) != 2 {
		t.Errorf("unexpected reaction: stats=%+v len=%d", stats, len(ps))
	}
}

func TestStep_InactiveExcluded(t *testing.T) {
	prm := testParams(t)
	water := particle(0, components.Water, 100, 100)
	water.Active = false
	ps := []components.Particle{
		water,
		particle(1, components.Lava, 101, 100),
		particle(2, components.Lava, 101.5, 100),
	}
	nextID := 3

	ps, stats := StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	if stats.SteamSpawned != 0 {
		t.Errorf("inactive water reacted: %+v", stats)
	}
	if ps[0].Pos.X != 100 || ps[0].Pos.Y != 100 {
		t.Errorf("inactive particle moved to %+v", ps[0].Pos)
	}
}

// ---------- Repulsion ----------

func TestStep_SameTypeRepulsion(t *testing.T) {
	prm := testParams(t)
	for _, typ := range []components.FluidType{components.Water, components.Lava} {
		t.Run(typ.String(), func(t *testing.T) {
			ps := []components.Particle{
				particle(0, typ, 100, 100),
				particle(1, typ, 102, 100),
			}
			nextID := 2
			ps, _ = StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

			// force = (5 - 2) * 0.1 along +x from a to b
			if math.Abs(ps[0].Vel.X+0.3) > 1e-9 {
				t.Errorf("a vel.X = %.6f, want -0.3", ps[0].Vel.X)
			}
			if math.Abs(ps[1].Vel.X-0.3) > 1e-9 {
				t.Errorf("b vel.X = %.6f, want 0.3", ps[1].Vel.X)
			}
		})
	}
}

func TestStep_NoRepulsionForRisingTypes(t *testing.T) {
	prm := testParams(t)
	ps := []components.Particle{
		particle(0, components.Steam, 100, 100),
		particle(1, components.Steam, 102, 100),
	}
	nextID := 2
	ps, _ = StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	if ps[0].Vel.X != 0 || ps[1].Vel.X != 0 {
		t.Errorf("steam repelled: %.3f %.3f", ps[0].Vel.X, ps[1].Vel.X)
	}
}

func TestStep_CoincidentParticlesSkipped(t *testing.T) {
	prm := testParams(t)
	ps := []components.Particle{
		particle(0, components.Water, 100, 100),
		particle(1, components.Water, 100, 100),
	}
	nextID := 2
	ps, _ = StepParticles(ps, nil, 1, prm, rand.New(rand.NewSource(7)), &nextID)

	for i, p := range ps {
		if math.IsNaN(p.Vel.X) || math.IsNaN(p.Vel.Y) {
			t.Fatalf("particle %d has NaN velocity", i)
		}
		if p.Vel.X != 0 {
			t.Errorf("particle %d vel.X = %f, want 0", i, p.Vel.X)
		}
	}
}

// ---------- Obstacles ----------

func TestStep_WaterRestsInChamber(t *testing.T) {
	prm := testParams(t)
	chamber := []components.Obstacle{{Rect: components.Rect{X: 100, Y: 100, Width: 100, Height: 40}}}
	ps := []components.Particle{particle(0, components.Water, 150, 120)}
	nextID := 1
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 600; i++ {
		ps, _ = StepParticles(ps, chamber, 1, prm, rng, &nextID)
	}

	p := ps[0]
	if !p.Active {
		t.Fatal("water escaped the chamber")
	}
	if p.Pos.Y > 140 {
		t.Errorf("water fell through the chamber floor: y = %.2f", p.Pos.Y)
	}
}
