package strategy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/rampart/model"
)

//go:embed layout.yaml
var defaultLayoutYAML []byte

// Layout is the fixed geometry of the strategy: where the static defense
// stands, what reactive defense expands into, and where waves launch from.
//
// Invariant: every cell is inside the arena on the local half; launch cells
// lie on one of the two bottom edges and the fallback is an opening cell.
type Layout struct {
	Turrets           []model.Cell
	Supports          []model.Cell
	UpgradePriority   []model.Cell
	ExpansionTurrets  []model.Cell
	ExpansionSupports []model.Cell
	OpeningLaunch     []model.Cell
	LaunchFan         []model.Cell
	Fallback          model.Cell
}

type layoutFile struct {
	Turrets           [][]int `yaml:"turrets"`
	Supports          [][]int `yaml:"supports"`
	UpgradePriority   [][]int `yaml:"upgrade_priority"`
	ExpansionTurrets  [][]int `yaml:"expansion_turrets"`
	ExpansionSupports [][]int `yaml:"expansion_supports"`
	OpeningLaunch     [][]int `yaml:"opening_launch"`
	LaunchFan         [][]int `yaml:"launch_fan"`
	Fallback          []int   `yaml:"fallback_launch"`
}

// DefaultLayout returns the compiled-in reference layout.
func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic(fmt.Sprintf("strategy: embedded layout invalid: %v", err))
	}
	return l
}

// LoadLayout reads a layout file. An empty path selects the default.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}

	var l Layout
	var err error
	lists := []struct {
		name string
		raw  [][]int
		dst  *[]model.Cell
	}{
		{"turrets", f.Turrets, &l.Turrets},
		{"supports", f.Supports, &l.Supports},
		{"upgrade_priority", f.UpgradePriority, &l.UpgradePriority},
		{"expansion_turrets", f.ExpansionTurrets, &l.ExpansionTurrets},
		{"expansion_supports", f.ExpansionSupports, &l.ExpansionSupports},
		{"opening_launch", f.OpeningLaunch, &l.OpeningLaunch},
		{"launch_fan", f.LaunchFan, &l.LaunchFan},
	}
	for _, list := range lists {
		if *list.dst, err = toCells(list.name, list.raw); err != nil {
			return nil, err
		}
	}
	if l.Fallback, err = toCell("fallback_launch", f.Fallback); err != nil {
		return nil, err
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func toCells(name string, raw [][]int) ([]model.Cell, error) {
	out := make([]model.Cell, 0, len(raw))
	for i, pair := range raw {
		c, err := toCell(fmt.Sprintf("%s[%d]", name, i), pair)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func toCell(name string, pair []int) (model.Cell, error) {
	if len(pair) != 2 {
		return model.Cell{}, fmt.Errorf("%s: want [x, y], got %v", name, pair)
	}
	return model.Cell{X: pair[0], Y: pair[1]}, nil
}

// Validate checks the layout invariants and reports every violation.
func (l *Layout) Validate() error {
	var errs []error
	own := func(name string, cells ...model.Cell) {
		for _, c := range cells {
			if !model.InArena(c) || c.Y >= model.HalfArena {
				errs = append(errs, fmt.Errorf("%s: %v is not on the local half", name, c))
			}
		}
	}
	launch := func(name string, cells ...model.Cell) {
		for _, c := range cells {
			if !model.OnEdge(c, model.BottomLeft) && !model.OnEdge(c, model.BottomRight) {
				errs = append(errs, fmt.Errorf("%s: %v is not on a launch edge", name, c))
			}
		}
	}

	own("turrets", l.Turrets...)
	own("supports", l.Supports...)
	own("upgrade_priority", l.UpgradePriority...)
	own("expansion_turrets", l.ExpansionTurrets...)
	own("expansion_supports", l.ExpansionSupports...)
	launch("opening_launch", l.OpeningLaunch...)
	launch("launch_fan", l.LaunchFan...)
	launch("fallback_launch", l.Fallback)

	if len(l.OpeningLaunch) == 0 {
		errs = append(errs, errors.New("opening_launch must not be empty"))
	} else if !slices.Contains(l.OpeningLaunch, l.Fallback) {
		errs = append(errs, fmt.Errorf("fallback_launch: %v is not an opening_launch cell", l.Fallback))
	}
	if len(l.LaunchFan) == 0 {
		errs = append(errs, errors.New("launch_fan must not be empty"))
	}
	return errors.Join(errs...)
}
