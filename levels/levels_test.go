package levels

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/pinflow/components"
)

const validLevel = `{
  "id": 7,
  "title": "Test",
  "description": "d",
  "pins": [{"id": 1, "x": 400, "y": 200, "angle": 0, "length": 100}],
  "chambers": [
    {"x": 350, "y": 100, "width": 100, "height": 100, "type": "water", "particleCount": 10},
    {"x": 100, "y": 300, "width": 50, "height": 50, "type": "empty", "particleCount": 0}
  ],
  "monsters": [{"id": 1, "x": 120, "y": 320}],
  "treasure": {"x": 400, "y": 550},
  "targetTime": 60
}`

func TestParseDefinition(t *testing.T) {
	d, err := ParseDefinition([]byte(validLevel), FormatJSON)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if d.ID != 7 || d.TargetTime != 60 || d.Treasure != (Point{X: 400, Y: 550}) {
		t.Errorf("unexpected definition: %+v", d)
	}
	if len(d.Pins) != 1 || len(d.Chambers) != 2 || len(d.Monsters) != 1 {
		t.Errorf("counts: pins=%d chambers=%d monsters=%d", len(d.Pins), len(d.Chambers), len(d.Monsters))
	}
	if d.Monsters[0].Type != "blob" {
		t.Errorf("monster type = %q, want default blob", d.Monsters[0].Type)
	}
}

func TestParseDefinition_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		wantMsg string
	}{
		{"no id", `"id": 7,`, "id"},
		{"no treasure", `"treasure": {"x": 400, "y": 550},`, "treasure"},
		{"no target time", `,
  "targetTime": 60`, "targetTime"},
		{"no chamber type", `"type": "water", `, "chambers[0].type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := strings.Replace(validLevel, tc.drop, "", 1)
			if data == validLevel {
				t.Fatalf("fixture did not contain %q", tc.drop)
			}
			_, err := ParseDefinition([]byte(data), FormatJSON)
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Fatalf("err = %v, want ErrInvalidDefinition", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("err = %v, want mention of %q", err, tc.wantMsg)
			}
		})
	}
}

func TestParseDefinition_Malformed(t *testing.T) {
	_, err := ParseDefinition([]byte(`{"id": "one"`), FormatJSON)
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	d := Definition{
		ID:         0,
		TargetTime: -1,
		Pins:       []PinDef{{ID: 1}, {ID: 1}},
		Chambers:   []ChamberDef{{Width: 0, Height: 10, Type: "steam"}},
	}
	err := d.Validate()
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("err = %v, want ErrInvalidDefinition", err)
	}
	for _, want := range []string{"id must be positive", "targetTime", "duplicate id 1", "size must be positive", `unknown type "steam"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() < 5 {
		t.Fatalf("embedded pack has %d levels", c.Len())
	}
	first, ok := c.ByIndex(1)
	if !ok || first.ID != 1 {
		t.Errorf("ByIndex(1) = %d, %v", first.ID, ok)
	}
	if _, ok := c.ByIndex(0); ok {
		t.Error("ByIndex(0) should fail")
	}
	if _, ok := c.ByIndex(c.Len() + 1); ok {
		t.Error("ByIndex past the end should fail")
	}
	if _, ok := c.ByID(9999); ok {
		t.Error("ByID(9999) should fail")
	}
	if i, ok := c.IndexOf(3); !ok || i != 3 {
		t.Errorf("IndexOf(3) = %d, %v", i, ok)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()
	d, _ := c.ByID(1)
	d.Pins[0].X = -1
	d.Chambers = nil

	again, _ := c.ByID(1)
	if again.Pins[0].X == -1 || len(again.Chambers) == 0 {
		t.Error("catalog definition was mutated through a returned copy")
	}
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	d, err := ParseDefinition([]byte(validLevel), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewCatalog([]Definition{d, d}); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestLoadFile_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	defs := Default().All()[:2]

	for _, name := range []string{"pack.json", "pack.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, defs); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if len(got) != 2 || got[1].Title != defs[1].Title || len(got[1].Chambers) != len(defs[1].Chambers) {
				t.Errorf("loaded %+v", got)
			}
		})
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("- id: 1\n  title: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, tmpl := range Templates {
		t.Run(tmpl, func(t *testing.T) {
			d, err := GenerateFrom(rng, 40, tmpl)
			if err != nil {
				t.Fatalf("GenerateFrom: %v", err)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("generated level is invalid: %v", err)
			}
			if d.TargetTime < 60 || d.TargetTime >= 120 {
				t.Errorf("targetTime = %g, want [60, 120)", d.TargetTime)
			}
			if d.Treasure != (Point{X: 400, Y: 550}) {
				t.Errorf("treasure = %+v", d.Treasure)
			}
		})
	}

	if _, err := GenerateFrom(rng, 1, "maze"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestExtend(t *testing.T) {
	defs := Extend(rand.New(rand.NewSource(1)), Default().All(), 20)
	if len(defs) != 20 {
		t.Fatalf("len = %d, want 20", len(defs))
	}
	if _, err := NewCatalog(defs); err != nil {
		t.Errorf("extended pack is invalid: %v", err)
	}
}

func TestBuild(t *testing.T) {
	d, err := ParseDefinition([]byte(validLevel), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	p := BuildParams{FluidMass: 1, LavaMass: 1.2, SpawnJitter: 0.5}
	inst := Build(d, rand.New(rand.NewSource(3)), p)

	if len(inst.Obstacles) != 2 || len(inst.Pins) != 1 || len(inst.Monsters) != 1 {
		t.Fatalf("instance counts wrong: %+v", inst)
	}
	if len(inst.Particles) != 10 {
		t.Fatalf("particles = %d, want 10", len(inst.Particles))
	}
	if inst.Obstacles[1].HasFill {
		t.Error("empty chamber should have no fill")
	}

	box := d.Chambers[0].Rect()
	for i, ptc := range inst.Particles {
		if ptc.ID != i || !ptc.Active || ptc.Type != components.Water || ptc.Mass != 1 {
			t.Errorf("particle %d = %+v", i, ptc)
		}
		if ptc.Pos.X < box.Left() || ptc.Pos.X > box.Right() || ptc.Pos.Y < box.Top() || ptc.Pos.Y > box.Bottom() {
			t.Errorf("particle %d spawned outside its chamber: %+v", i, ptc.Pos)
		}
		if ptc.Vel.X < -0.25 || ptc.Vel.X > 0.25 {
			t.Errorf("particle %d jitter %g out of range", i, ptc.Vel.X)
		}
	}
	if inst.Pins[0].Pulled || !inst.Monsters[0].Active {
		t.Error("fresh instance should have no pulled pins and active monsters")
	}
}

func TestBuild_LavaMass(t *testing.T) {
	d := Definition{
		ID: 1, Title: "t", TargetTime: 10,
		Chambers: []ChamberDef{{X: 0, Y: 0, Width: 10, Height: 10, Type: ChamberLava, ParticleCount: 3}},
	}
	inst := Build(d, rand.New(rand.NewSource(1)), BuildParams{FluidMass: 1, LavaMass: 1.2})
	for _, p := range inst.Particles {
		if p.Type != components.Lava || p.Mass != 1.2 {
			t.Errorf("lava particle = %+v", p)
		}
	}
}
