// Package catalog holds the read-only reference data: exercises, store items
// and multi-day programs. It is loaded from an embedded YAML file and
// validated once, so a program referencing a missing exercise fails at load
// instead of silently substituting another exercise.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/meltforce/fitquest/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// ProgramDay is one day of a program, resolved to catalog exercises.
type ProgramDay struct {
	Day       int               `json:"day"`
	Title     string            `json:"title"`
	Exercises []models.Exercise `json:"exercises"`
}

// Program is a pre-authored multi-day plan with sequential day gating.
type Program struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Days  []ProgramDay `json:"days"`
}

// Catalog is the validated reference data.
type Catalog struct {
	exercises    []models.Exercise
	exerciseByID map[string]models.Exercise
	items        []models.StoreItem
	itemByID     map[string]models.StoreItem
	programs     []Program
	programByID  map[string]Program
}

type rawProgramDay struct {
	Day       int      `yaml:"day"`
	Title     string   `yaml:"title"`
	Exercises []string `yaml:"exercises"`
}

type rawProgram struct {
	ID    string          `yaml:"id"`
	Title string          `yaml:"title"`
	Days  []rawProgramDay `yaml:"days"`
}

type rawCatalog struct {
	Exercises []models.Exercise  `yaml:"exercises"`
	Store     []models.StoreItem `yaml:"store"`
	Programs  []rawProgram       `yaml:"programs"`
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse parses and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		exerciseByID: make(map[string]models.Exercise, len(raw.Exercises)),
		itemByID:     make(map[string]models.StoreItem, len(raw.Store)),
		programByID:  make(map[string]Program, len(raw.Programs)),
	}

	var errs []error
	for _, ex := range raw.Exercises {
		switch {
		case ex.ID == "":
			errs = append(errs, fmt.Errorf("exercise %q: missing id", ex.Name))
			continue
		case !ex.MuscleGroup.Valid():
			errs = append(errs, fmt.Errorf("exercise %s: unknown muscle group %q", ex.ID, ex.MuscleGroup))
		}
		if _, dup := c.exerciseByID[ex.ID]; dup {
			errs = append(errs, fmt.Errorf("exercise %s: duplicate id", ex.ID))
			continue
		}
		c.exerciseByID[ex.ID] = ex
		c.exercises = append(c.exercises, ex)
	}

	for _, it := range raw.Store {
		switch {
		case it.ID == "":
			errs = append(errs, fmt.Errorf("store item %q: missing id", it.Name))
			continue
		case it.Cost < 0:
			errs = append(errs, fmt.Errorf("store item %s: negative cost", it.ID))
		case it.Type != models.ItemSkin && it.Type != models.ItemBadge && it.Type != models.ItemTitle:
			errs = append(errs, fmt.Errorf("store item %s: unknown type %q", it.ID, it.Type))
		}
		if _, dup := c.itemByID[it.ID]; dup {
			errs = append(errs, fmt.Errorf("store item %s: duplicate id", it.ID))
			continue
		}
		c.itemByID[it.ID] = it
		c.items = append(c.items, it)
	}

	for _, rp := range raw.Programs {
		p, err := c.resolveProgram(rp)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.programByID[p.ID] = p
		c.programs = append(c.programs, p)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// resolveProgram turns exercise ids into catalog snapshots and checks that
// days run 1..N without gaps.
func (c *Catalog) resolveProgram(rp rawProgram) (Program, error) {
	if rp.ID == "" {
		return Program{}, fmt.Errorf("program %q: missing id", rp.Title)
	}
	if _, dup := c.programByID[rp.ID]; dup {
		return Program{}, fmt.Errorf("program %s: duplicate id", rp.ID)
	}

	days := append([]rawProgramDay(nil), rp.Days...)
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	p := Program{ID: rp.ID, Title: rp.Title}
	for i, d := range days {
		if d.Day != i+1 {
			return Program{}, fmt.Errorf("program %s: expected day %d, found day %d", rp.ID, i+1, d.Day)
		}
		if len(d.Exercises) == 0 {
			return Program{}, fmt.Errorf("program %s day %d: no exercises", rp.ID, d.Day)
		}
		pd := ProgramDay{Day: d.Day, Title: d.Title}
		for _, id := range d.Exercises {
			ex, ok := c.exerciseByID[id]
			if !ok {
				return Program{}, fmt.Errorf("program %s day %d: unknown exercise %q", rp.ID, d.Day, id)
			}
			pd.Exercises = append(pd.Exercises, ex)
		}
		p.Days = append(p.Days, pd)
	}
	return p, nil
}

// Exercises returns every catalog exercise in file order.
func (c *Catalog) Exercises() []models.Exercise {
	return append([]models.Exercise(nil), c.exercises...)
}

// Exercise looks up an exercise by id.
func (c *Catalog) Exercise(id string) (models.Exercise, bool) {
	ex, ok := c.exerciseByID[id]
	return ex, ok
}

// StoreItems returns every store item in file order.
func (c *Catalog) StoreItems() []models.StoreItem {
	return append([]models.StoreItem(nil), c.items...)
}

// StoreItem looks up a store item by id.
func (c *Catalog) StoreItem(id string) (models.StoreItem, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// Programs returns every program.
func (c *Catalog) Programs() []Program {
	return append([]Program(nil), c.programs...)
}

// Program looks up a program by id.
func (c *Catalog) Program(id string) (Program, bool) {
	p, ok := c.programByID[id]
	return p, ok
}

// Day returns day n (1-based) of the program.
func (p Program) Day(n int) (ProgramDay, bool) {
	if n < 1 || n > len(p.Days) {
		return ProgramDay{}, false
	}
	return p.Days[n-1], true
}
