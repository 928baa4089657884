package levels

import (
	_ "embed"
	"fmt"
	"slices"
)

//go:embed levels.json
var packJSON []byte

// Catalog is an ordered, read-only collection of levels. Index 1 is the first
// level; IDs are looked up independently of position.
type Catalog struct {
	defs []Definition
	byID map[int]int
}

// NewCatalog validates defs and builds a catalog. Level IDs must be unique.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[int]int, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate level id %d", ErrInvalidDefinition, d.ID)
		}
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d.Clone())
	}
	return c, nil
}

// Default returns the embedded level pack.
func Default() *Catalog {
	defs, err := ParsePack(packJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded pack is invalid: %v", err))
	}
	c, err := NewCatalog(defs)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded pack is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded pack if path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs)
}

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.defs) }

// ByID returns a copy of the level with the given id.
func (c *Catalog) ByID(id int) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i].Clone(), true
}

// ByIndex returns a copy of the level at 1-based position index.
func (c *Catalog) ByIndex(index int) (Definition, bool) {
	if index < 1 || index > len(c.defs) {
		return Definition{}, false
	}
	return c.defs[index-1].Clone(), true
}

// IndexOf returns the 1-based position of the level with the given id.
func (c *Catalog) IndexOf(id int) (int, bool) {
	i, ok := c.byID[id]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// All returns copies of every level in order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	for i := range c.defs {
		out[i] = c.defs[i].Clone()
	}
	return out
}

// Clone returns a deep copy.
func (d Definition) Clone() Definition {
	d.Pins = slices.Clone(d.Pins)
	d.Chambers = slices.Clone(d.Chambers)
	d.Monsters = slices.Clone(d.Monsters)
	return d
}
