// Package catalog holds the static, ordered set of lessons.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var levelsYAML []byte

// Catalog is an immutable, id-ordered list of levels.
type Catalog struct {
	levels []Level
	byID   map[int]int
}

// New validates levels and builds a catalog ordered by id.
func New(levels []Level) (*Catalog, error) {
	sorted := slices.Clone(levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if err := validateLevels(sorted); err != nil {
		return nil, err
	}

	c := &Catalog{
		levels: sorted,
		byID:   make(map[int]int, len(sorted)),
	}
	for i, l := range sorted {
		c.byID[l.ID] = i
	}
	return c, nil
}

// Parse decodes a YAML document with a top-level "levels" list.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Levels)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in fraction catalog. It panics if the embedded
// fixture is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(levelsYAML)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// All returns every level in id order.
func (c *Catalog) All() []Level {
	return slices.Clone(c.levels)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Get returns a level by id, or error if not found.
func (c *Catalog) Get(id int) (Level, error) {
	i, ok := c.byID[id]
	if !ok {
		return Level{}, fmt.Errorf("level not found: %d", id)
	}
	return c.levels[i], nil
}

// Has reports whether id names a level.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Prerequisite returns the id of the level that must be completed before id.
// ok is false for the first level and for unknown ids.
func (c *Catalog) Prerequisite(id int) (prev int, ok bool) {
	i, found := c.byID[id]
	if !found || i == 0 {
		return 0, false
	}
	return c.levels[i-1].ID, true
}

// Next returns the level after id, if any.
func (c *Catalog) Next(id int) (Level, bool) {
	i, ok := c.byID[id]
	if !ok || i+1 >= len(c.levels) {
		return Level{}, false
	}
	return c.levels[i+1], true
}

// ByDifficulty returns the levels whose difficulty equals d.
func (c *Catalog) ByDifficulty(d int) []Level {
	var out []Level
	for _, l := range c.levels {
		if l.Difficulty == d {
			out = append(out, l)
		}
	}
	return out
}

// Narrations returns the auditory narration script of every level keyed by id.
func (c *Catalog) Narrations() map[int]string {
	out := make(map[int]string, len(c.levels))
	for _, l := range c.levels {
		out[l.ID] = l.Content.Auditory.Narration
	}
	return out
}
