// Package planfile reads competition descriptions from YAML for offline
// planning.
package planfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/planner"
)

// File is the YAML document.
type File struct {
	Competitors  int                `yaml:"competitors"`
	MainEvent    string             `yaml:"main_event"`
	Days         []models.DayWindow `yaml:"days"`
	Categories   []Entry            `yaml:"categories"`
	Registration map[string]float64 `yaml:"registration"`
}

// Entry is one selected category. A bare string is accepted as a category
// with default settings.
type Entry struct {
	Name      string `yaml:"name"`
	Rounds    int    `yaml:"rounds"`
	Cutoff    string `yaml:"cutoff"`
	Advance   []int  `yaml:"advance"`
	FinalSize int    `yaml:"final_size"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = Entry{Name: value.Value}
		return nil
	}
	type plain Entry
	return value.Decode((*plain)(e))
}

// settings fills unset fields with the defaults of a newly selected
// category.
func (e Entry) settings() models.CategorySettings {
	s := models.DefaultSettings()
	if e.Rounds > 0 {
		s.Rounds = e.Rounds
	}
	if e.Cutoff != "" {
		s.Cutoff = e.Cutoff
	}
	if len(e.Advance) > 0 {
		s.Advance = append([]int(nil), e.Advance...)
	}
	if e.FinalSize > 0 {
		s.FinalSize = e.FinalSize
	}
	return s
}

// Plan is a parsed plan file ready for planner.Build.
type Plan struct {
	Catalog  *catalog.Catalog
	Config   models.CompetitionConfig
	Settings map[string]models.CategorySettings
}

// Load reads and parses the plan file at path against the built-in catalog.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, catalog.Default())
}

// Parse decodes a plan file. Registration overrides in the file are applied
// to base; base itself is not modified.
func Parse(r io.Reader, base *catalog.Catalog) (*Plan, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidInput("plan file is empty")
		}
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "parse plan file")
	}
	return f.resolve(base)
}

func (f *File) resolve(base *catalog.Catalog) (*Plan, error) {
	cat, err := base.WithRegistration(f.Registration)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "registration overrides")
	}

	if f.Competitors < 1 || f.Competitors > models.MaxCompetitors {
		return nil, errors.InvalidInputf("competitors must be between 1 and %d, got %d", models.MaxCompetitors, f.Competitors)
	}
	if len(f.Categories) == 0 {
		return nil, errors.InvalidInput("at least one category is required")
	}

	p := &Plan{
		Catalog:  cat,
		Settings: make(map[string]models.CategorySettings, len(f.Categories)),
	}
	names := make([]string, 0, len(f.Categories))
	for _, e := range f.Categories {
		if !cat.Has(e.Name) {
			return nil, errors.InvalidInputf("unknown category %q", e.Name)
		}
		if _, dup := p.Settings[e.Name]; dup {
			return nil, errors.InvalidInputf("category %q listed twice", e.Name)
		}
		if e.Rounds > models.MaxRoundsPerCategory {
			return nil, errors.InvalidInputf("%s: at most %d rounds are supported, got %d", e.Name, models.MaxRoundsPerCategory, e.Rounds)
		}
		p.Settings[e.Name] = e.settings()
		names = append(names, e.Name)
	}

	days := f.Days
	if len(days) == 0 {
		days = models.DefaultDays()
	}
	if len(days) > models.MaxDays {
		return nil, errors.InvalidInputf("at most %d days are supported, got %d", models.MaxDays, len(days))
	}
	for i, d := range days {
		if err := planner.ValidateWindow(i+1, d); err != nil {
			return nil, err
		}
	}

	if f.MainEvent != "" && !cat.Has(f.MainEvent) {
		return nil, errors.InvalidInputf("unknown main event %q", f.MainEvent)
	}
	if f.MainEvent != "" && !(models.CompetitionConfig{Categories: names}).HasCategory(f.MainEvent) {
		return nil, errors.InvalidInputf("main event %q is not among the categories", f.MainEvent)
	}

	p.Config = models.CompetitionConfig{
		TotalCompetitors: f.Competitors,
		Categories:       names,
		MainEvent:        models.ChooseMainEvent(f.MainEvent, names),
		Days:             days,
	}
	return p, nil
}

// Build runs the planner on the parsed file.
func (p *Plan) Build() (*planner.Plan, error) {
	plan, err := planner.Build(p.Catalog, p.Config, p.Settings)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return plan, nil
}
