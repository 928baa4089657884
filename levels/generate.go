package levels

import (
	"fmt"
	"math/rand"
)

// Template names accepted by GenerateFrom.
const (
	TemplateSimpleDrop   = "simple_drop"
	TemplateSplitPath    = "split_path"
	TemplateMonsterGuard = "monster_guard"
	TemplateGasChamber   = "gas_chamber"
)

// Templates lists the generator templates in selection order.
var Templates = []string{TemplateSimpleDrop, TemplateSplitPath, TemplateMonsterGuard, TemplateGasChamber}

// Generate builds a level with the given id from a randomly chosen template.
func Generate(rng *rand.Rand, id int) Definition {
	d, _ := GenerateFrom(rng, id, Templates[rng.Intn(len(Templates))])
	return d
}

// GenerateFrom builds a level from a named template.
func GenerateFrom(rng *rand.Rand, id int, template string) (Definition, error) {
	d := Definition{
		ID:          id,
		Title:       fmt.Sprintf("Level %d", id),
		Description: fmt.Sprintf("Procedurally generated challenge (%s)", template),
		TargetTime:  float64(60 + rng.Intn(60)),
		Treasure:    Point{X: 400, Y: 550},
	}

	switch template {
	case TemplateSimpleDrop:
		d.Pins = []PinDef{{ID: 1, X: 400, Y: 200 + rng.Float64()*100, Angle: 1.57, Length: 100}}
		d.Chambers = []ChamberDef{{X: 350, Y: 100, Width: 100, Height: 100, Type: ChamberWater, ParticleCount: 50 + rng.Intn(50)}}
		if rng.Float64() > 0.5 {
			d.Chambers = append(d.Chambers, ChamberDef{X: 200, Y: 300, Width: 100, Height: 100, Type: ChamberLava, ParticleCount: 30})
		}

	case TemplateSplitPath:
		second := ChamberWater
		if rng.Float64() > 0.5 {
			second = ChamberLava
		}
		d.Pins = []PinDef{
			{ID: 1, X: 300, Y: 200, Angle: 1.57, Length: 80},
			{ID: 2, X: 500, Y: 200, Angle: 1.57, Length: 80},
		}
		d.Chambers = []ChamberDef{
			{X: 250, Y: 100, Width: 100, Height: 80, Type: ChamberWater, ParticleCount: 40},
			{X: 450, Y: 100, Width: 100, Height: 80, Type: second, ParticleCount: 40},
		}

	case TemplateMonsterGuard:
		d.Pins = []PinDef{{ID: 1, X: 400, Y: 300, Angle: 0, Length: 120}}
		d.Chambers = []ChamberDef{{X: 350, Y: 50, Width: 100, Height: 100, Type: ChamberWater, ParticleCount: 60}}
		d.Monsters = []MonsterDef{{ID: 1, X: 200 + rng.Float64()*400, Y: 200 + rng.Float64()*100, Type: "blob"}}

	case TemplateGasChamber:
		d.Pins = []PinDef{{ID: 1, X: 400, Y: 300, Angle: 1.57, Length: 100}}
		d.Chambers = []ChamberDef{
			{X: 350, Y: 400, Width: 100, Height: 80, Type: ChamberGas, ParticleCount: 40},
			{X: 350, Y: 100, Width: 100, Height: 80, Type: ChamberWater, ParticleCount: 40},
		}

	default:
		return Definition{}, fmt.Errorf("unknown template %q", template)
	}

	return d, nil
}

// Extend appends generated levels to defs until the pack holds total levels.
// New IDs continue from the last level's ID.
func Extend(rng *rand.Rand, defs []Definition, total int) []Definition {
	next := 1
	if len(defs) > 0 {
		next = defs[len(defs)-1].ID + 1
	}
	for len(defs) < total {
		defs = append(defs, Generate(rng, next))
		next++
	}
	return defs
}
