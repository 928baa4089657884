// Package levels holds level blueprints: the JSON/YAML schema, validation,
// the embedded level pack, a procedural generator and the builder that turns
// a blueprint into a playable instance.
package levels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pinflow/components"
)

// ErrInvalidDefinition is returned (wrapped) for structurally invalid levels.
var ErrInvalidDefinition = errors.New("invalid level definition")

// Chamber content types.
const (
	ChamberWater = "water"
	ChamberLava  = "lava"
	ChamberGas   = "gas"
	ChamberEmpty = "empty"
)

// Point is a 2D coordinate in level files.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec converts to the simulation vector type.
func (p Point) Vec() components.Vec2 { return components.Vec2{X: p.X, Y: p.Y} }

// PinDef is a pin anchor. Angle is in radians.
type PinDef struct {
	ID     int     `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Angle  float64 `json:"angle" yaml:"angle"`
	Length float64 `json:"length" yaml:"length"`
}

// ChamberDef is a rectangular region that is both a collision boundary and,
// unless empty, a source of particles.
type ChamberDef struct {
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	Type          string  `json:"type" yaml:"type"`
	ParticleCount int     `json:"particleCount" yaml:"particleCount"`
}

// Rect returns the chamber bounds.
func (c ChamberDef) Rect() components.Rect {
	return components.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// Fluid returns the fluid the chamber is filled with. ok is false for empty
// chambers.
func (c ChamberDef) Fluid() (t components.FluidType, ok bool) {
	if c.Type == ChamberEmpty {
		return 0, false
	}
	return components.ParseFluidType(c.Type)
}

// MonsterDef is a hazard spawn point.
type MonsterDef struct {
	ID   int     `json:"id" yaml:"id"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Type string  `json:"type" yaml:"type"`
}

// Definition is an immutable level blueprint.
type Definition struct {
	ID          int          `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Pins        []PinDef     `json:"pins" yaml:"pins"`
	Chambers    []ChamberDef `json:"chambers" yaml:"chambers"`
	Monsters    []MonsterDef `json:"monsters,omitempty" yaml:"monsters,omitempty"`
	Treasure    Point        `json:"treasure" yaml:"treasure"`
	TargetTime  float64      `json:"targetTime" yaml:"targetTime"`
}

// Validate checks the semantic rules that hold for every playable level.
// All violations are reported together.
func (d *Definition) Validate() error {
	var errs []error
	if d.ID < 1 {
		errs = append(errs, fmt.Errorf("id must be positive, got %d", d.ID))
	}
	if d.TargetTime <= 0 {
		errs = append(errs, fmt.Errorf("targetTime must be positive, got %g", d.TargetTime))
	}
	if len(d.Chambers) == 0 {
		errs = append(errs, errors.New("at least one chamber is required"))
	}

	seen := make(map[int]bool, len(d.Pins))
	for i, p := range d.Pins {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("pins[%d]: duplicate id %d", i, p.ID))
		}
		seen[p.ID] = true
		if p.Length < 0 {
			errs = append(errs, fmt.Errorf("pins[%d]: negative length", i))
		}
	}
	for i, c := range d.Chambers {
		if c.Width <= 0 || c.Height <= 0 {
			errs = append(errs, fmt.Errorf("chambers[%d]: size must be positive, got %gx%g", i, c.Width, c.Height))
		}
		switch c.Type {
		case ChamberWater, ChamberLava, ChamberGas, ChamberEmpty:
		default:
			errs = append(errs, fmt.Errorf("chambers[%d]: unknown type %q", i, c.Type))
		}
		if c.ParticleCount < 0 {
			errs = append(errs, fmt.Errorf("chambers[%d]: negative particleCount", i))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("level %d: %w: %w", d.ID, ErrInvalidDefinition, err)
	}
	return nil
}

// rawDefinition mirrors Definition with pointer fields so that absent
// required fields can be told apart from zero values.
type rawDefinition struct {
	ID          *int          `json:"id" yaml:"id"`
	Title       *string       `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Pins        *[]rawPin     `json:"pins" yaml:"pins"`
	Chambers    *[]rawChamber `json:"chambers" yaml:"chambers"`
	Monsters    []rawMonster  `json:"monsters" yaml:"monsters"`
	Treasure    *rawPoint     `json:"treasure" yaml:"treasure"`
	TargetTime  *float64      `json:"targetTime" yaml:"targetTime"`
}

type rawPoint struct {
	X *float64 `json:"x" yaml:"x"`
	Y *float64 `json:"y" yaml:"y"`
}

type rawPin struct {
	ID     *int     `json:"id" yaml:"id"`
	X      *float64 `json:"x" yaml:"x"`
	Y      *float64 `json:"y" yaml:"y"`
	Angle  float64  `json:"angle" yaml:"angle"`
	Length float64  `json:"length" yaml:"length"`
}

type rawChamber struct {
	X             *float64 `json:"x" yaml:"x"`
	Y             *float64 `json:"y" yaml:"y"`
	Width         *float64 `json:"width" yaml:"width"`
	Height        *float64 `json:"height" yaml:"height"`
	Type          *string  `json:"type" yaml:"type"`
	ParticleCount int      `json:"particleCount" yaml:"particleCount"`
}

type rawMonster struct {
	ID   *int     `json:"id" yaml:"id"`
	X    *float64 `json:"x" yaml:"x"`
	Y    *float64 `json:"y" yaml:"y"`
	Type string   `json:"type" yaml:"type"`
}

// missing collects the names of absent required fields.
type missing []string

func (m *missing) check(present bool, name string) {
	if !present {
		*m = append(*m, name)
	}
}

func (r *rawDefinition) definition() (Definition, error) {
	var m missing
	m.check(r.ID != nil, "id")
	m.check(r.Title != nil, "title")
	m.check(r.Pins != nil, "pins")
	m.check(r.Chambers != nil, "chambers")
	m.check(r.Treasure != nil, "treasure")
	m.check(r.TargetTime != nil, "targetTime")
	if r.Treasure != nil {
		m.check(r.Treasure.X != nil, "treasure.x")
		m.check(r.Treasure.Y != nil, "treasure.y")
	}
	if r.Pins != nil {
		for i, p := range *r.Pins {
			m.check(p.ID != nil, fmt.Sprintf("pins[%d].id", i))
			m.check(p.X != nil, fmt.Sprintf("pins[%d].x", i))
			m.check(p.Y != nil, fmt.Sprintf("pins[%d].y", i))
		}
	}
	if r.Chambers != nil {
		for i, c := range *r.Chambers {
			m.check(c.X != nil, fmt.Sprintf("chambers[%d].x", i))
			m.check(c.Y != nil, fmt.Sprintf("chambers[%d].y", i))
			m.check(c.Width != nil, fmt.Sprintf("chambers[%d].width", i))
			m.check(c.Height != nil, fmt.Sprintf("chambers[%d].height", i))
			m.check(c.Type != nil, fmt.Sprintf("chambers[%d].type", i))
		}
	}
	for i, mon := range r.Monsters {
		m.check(mon.ID != nil, fmt.Sprintf("monsters[%d].id", i))
		m.check(mon.X != nil, fmt.Sprintf("monsters[%d].x", i))
		m.check(mon.Y != nil, fmt.Sprintf("monsters[%d].y", i))
	}
	if len(m) > 0 {
		return Definition{}, fmt.Errorf("%w: missing %s", ErrInvalidDefinition, strings.Join(m, ", "))
	}

	d := Definition{
		ID:          *r.ID,
		Title:       *r.Title,
		Description: r.Description,
		Treasure:    Point{X: *r.Treasure.X, Y: *r.Treasure.Y},
		TargetTime:  *r.TargetTime,
		Pins:        make([]PinDef, 0, len(*r.Pins)),
		Chambers:    make([]ChamberDef, 0, len(*r.Chambers)),
	}
	for _, p := range *r.Pins {
		d.Pins = append(d.Pins, PinDef{ID: *p.ID, X: *p.X, Y: *p.Y, Angle: p.Angle, Length: p.Length})
	}
	for _, c := range *r.Chambers {
		d.Chambers = append(d.Chambers, ChamberDef{
			X: *c.X, Y: *c.Y, Width: *c.Width, Height: *c.Height,
			Type: *c.Type, ParticleCount: c.ParticleCount,
		})
	}
	for _, mon := range r.Monsters {
		typ := mon.Type
		if typ == "" {
			typ = "blob"
		}
		d.Monsters = append(d.Monsters, MonsterDef{ID: *mon.ID, X: *mon.X, Y: *mon.Y, Type: typ})
	}

	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// Format selects the level file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the encoding from a file extension. Unknown extensions
// are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseDefinition decodes and validates a single level.
func ParseDefinition(data []byte, f Format) (Definition, error) {
	var raw rawDefinition
	if err := decode(data, f, &raw); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return raw.definition()
}

// ParsePack decodes and validates a list of levels. The first invalid level
// fails the whole pack.
func ParsePack(data []byte, f Format) ([]Definition, error) {
	var raws []rawDefinition
	if err := decode(data, f, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	defs := make([]Definition, 0, len(raws))
	for i := range raws {
		d, err := raws[i].definition()
		if err != nil {
			return nil, fmt.Errorf("pack entry %d: %w", i, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func decode(data []byte, f Format, v any) error {
	if f == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	return dec.Decode(v)
}

// LoadFile reads a level pack from disk. The encoding follows the extension.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level pack: %w", err)
	}
	defs, err := ParsePack(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return defs, nil
}

// WriteFile writes a level pack to disk. The encoding follows the extension.
func WriteFile(path string, defs []Definition) error {
	var (
		data []byte
		err  error
	)
	if FormatForPath(path) == FormatYAML {
		data, err = yaml.Marshal(defs)
	} else {
		data, err = json.MarshalIndent(defs, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding level pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing level pack: %w", err)
	}
	return nil
}
