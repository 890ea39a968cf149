// Package catalog holds the static reference data for every competition
// category: historical registration share, result format, attempt count,
// scramble time and the tags that drive grouping and timing.
package catalog

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Format is the result format of a category.
type Format string

const (
	FormatAo5    Format = "Ao5"
	FormatMo3    Format = "Mo3"
	FormatSingle Format = "Single"
)

// Category is the immutable description of one competition event.
type Category struct {
	Name string `json:"name" yaml:"name"`
	// RegistrationPercentage is the historical share of competitors that
	// register for the category, 0 to 100.
	RegistrationPercentage float64 `json:"registration_percentage" yaml:"registration_percentage"`
	Format                 Format  `json:"format" yaml:"format"`
	Attempts               int     `json:"attempts" yaml:"attempts"`
	ScrambleSeconds        int     `json:"scramble_seconds" yaml:"scramble_seconds"`

	// Small categories seat three competitors per station in a group.
	Small bool `json:"small" yaml:"small"`
	// SingleGroup categories always run as one group.
	SingleGroup bool `json:"single_group" yaml:"single_group"`
	// FixedTime categories take FixedRoundMinutes regardless of field size.
	FixedTime bool `json:"fixed_time" yaml:"fixed_time"`
	Popular   bool `json:"popular" yaml:"popular"`
}

// RegistrationBasisPoints returns the registration percentage in hundredths
// of a percent, which keeps competitor estimates in integer arithmetic.
func (c Category) RegistrationBasisPoints() int {
	return int(math.Round(c.RegistrationPercentage * 100))
}

// Catalog is an ordered, read-only set of categories.
type Catalog struct {
	order  []string
	byName map[string]Category
}

// New builds a catalog from categories in display order. Duplicate names are
// rejected.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Category, len(categories))}
	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if _, dup := c.byName[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		if cat.Attempts < 1 {
			return nil, fmt.Errorf("category %q: attempts must be positive", cat.Name)
		}
		c.order = append(c.order, cat.Name)
		c.byName[cat.Name] = cat
	}
	return c, nil
}

// Lookup returns the category with the given name.
func (c *Catalog) Lookup(name string) (Category, bool) {
	cat, ok := c.byName[name]
	return cat, ok
}

// Has reports whether name is a known category.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns category names in display order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.order)
}

// WithRegistration returns a copy of the catalog whose registration
// percentages are replaced by the given overrides. Unknown names and values
// outside 0..100 are rejected.
func (c *Catalog) WithRegistration(overrides map[string]float64) (*Catalog, error) {
	if len(overrides) == 0 {
		return c, nil
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &Catalog{order: c.Names(), byName: make(map[string]Category, len(c.byName))}
	for name, cat := range c.byName {
		out.byName[name] = cat
	}
	for _, name := range names {
		pct := overrides[name]
		cat, ok := out.byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("category %q: registration percentage %.2f outside 0..100", name, pct)
		}
		cat.RegistrationPercentage = pct
		out.byName[name] = cat
	}
	return out, nil
}

// overrideFile is the YAML shape accepted by LoadOverrides.
type overrideFile struct {
	Registration map[string]float64 `yaml:"registration"`
}

// LoadOverrides reads a YAML document with a top-level `registration` map
// and applies it to the catalog.
func (c *Catalog) LoadOverrides(r io.Reader) (*Catalog, error) {
	var f overrideFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return c, nil
		}
		return nil, fmt.Errorf("parse catalog overrides: %w", err)
	}
	return c.WithRegistration(f.Registration)
}
