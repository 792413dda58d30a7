// Package tuning loads the simulation tuning file.
package tuning

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"
)

var ErrInvalidTuning = errors.New("invalid tuning")

type Tuning struct {
	Ticks           int    `yaml:"ticks" json:"ticks" jsonschema:"minimum=1,maximum=1000000"`
	EnergyPerTick   int    `yaml:"energy_per_tick" json:"energy_per_tick" jsonschema:"minimum=1,maximum=1000"`
	InterfaceBudget int    `yaml:"interface_budget" json:"interface_budget" jsonschema:"minimum=1"`
	Costs           Costs  `yaml:"costs" json:"costs"`
	Limits          Limits `yaml:"limits" json:"limits"`
	Clock           Clock  `yaml:"clock" json:"clock"`
	World           World  `yaml:"world" json:"world"`
	Robot           Robot  `yaml:"robot" json:"robot"`
}

type Costs struct {
	Move    int `yaml:"move" json:"move" jsonschema:"minimum=0"`
	Destroy int `yaml:"destroy" json:"destroy" jsonschema:"minimum=0"`
	Sense   int `yaml:"sense" json:"sense" jsonschema:"minimum=0"`
}

// Limits caps operations per specialized handle; 0 is unlimited.
type Limits struct {
	Move    int `yaml:"move" json:"move" jsonschema:"minimum=0"`
	Destroy int `yaml:"destroy" json:"destroy" jsonschema:"minimum=0"`
	Sense   int `yaml:"sense" json:"sense" jsonschema:"minimum=0"`
}

type Clock struct {
	DayTicks   int `yaml:"day_ticks" json:"day_ticks" jsonschema:"minimum=1"`
	NightTicks int `yaml:"night_ticks" json:"night_ticks" jsonschema:"minimum=1"`
}

type World struct {
	Generator string `yaml:"generator" json:"generator" jsonschema:"enum=flat,enum=procedural,enum=map"`
	Map       string `yaml:"map" json:"map"`
	Rows      int    `yaml:"rows" json:"rows" jsonschema:"minimum=1,maximum=4096"`
	Cols      int    `yaml:"cols" json:"cols" jsonschema:"minimum=1,maximum=4096"`
	Seed      int64  `yaml:"seed" json:"seed"`
}

type Robot struct {
	Name     string `yaml:"name" json:"name" jsonschema:"enum=patrol,enum=idle"`
	MaxSteps int    `yaml:"max_steps" json:"max_steps" jsonschema:"minimum=1"`
}

func Default() Tuning {
	costs := robotics.DefaultCosts()
	return Tuning{
		Ticks:           robotics.DefaultTicks,
		EnergyPerTick:   robotics.DefaultEnergyPerTick,
		InterfaceBudget: robotics.DefaultIssuanceBudget,
		Costs:           Costs{Move: costs.Move, Destroy: costs.Destroy, Sense: costs.Sense},
		Clock:           Clock{DayTicks: 12, NightTicks: 6},
		World:           World{Generator: "procedural", Rows: 16, Cols: 16, Seed: 1},
		Robot:           Robot{Name: "patrol", MaxSteps: 3},
	}
}

// Load reads a YAML tuning file over the defaults. The document is checked
// against the reflected schema before it is applied.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := Parse(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func Parse(raw []byte, t *Tuning) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if doc == nil {
		return nil
	}
	if err := validate(doc); err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if t.World.Generator == "map" && t.World.Map == "" {
		return fmt.Errorf("%w: world.map is required for the map generator", ErrInvalidTuning)
	}
	return t.Validate()
}

// Validate range-checks the decoded values; hi < 0 means no upper bound.
func (t Tuning) Validate() error {
	checks := []struct {
		name      string
		v, lo, hi int
	}{
		{"ticks", t.Ticks, 1, 1000000},
		{"energy_per_tick", t.EnergyPerTick, 1, robotics.MaxEnergyLevel},
		{"interface_budget", t.InterfaceBudget, 1, -1},
		{"costs.move", t.Costs.Move, 0, -1},
		{"costs.destroy", t.Costs.Destroy, 0, -1},
		{"costs.sense", t.Costs.Sense, 0, -1},
		{"limits.move", t.Limits.Move, 0, -1},
		{"limits.destroy", t.Limits.Destroy, 0, -1},
		{"limits.sense", t.Limits.Sense, 0, -1},
		{"world.rows", t.World.Rows, 1, 4096},
		{"world.cols", t.World.Cols, 1, 4096},
	}
	for _, c := range checks {
		if c.v < c.lo || (c.hi >= 0 && c.v > c.hi) {
			return fmt.Errorf("%w: %s out of range: %d", ErrInvalidTuning, c.name, c.v)
		}
	}
	return nil
}

func (t Tuning) RunnerConfig() robotics.RunnerConfig {
	return robotics.RunnerConfig{
		Ticks:         uint64(t.Ticks),
		EnergyPerTick: t.EnergyPerTick,
		World: robotics.Config{
			Budget: t.InterfaceBudget,
			Costs:  &robotics.Costs{Move: t.Costs.Move, Destroy: t.Costs.Destroy, Sense: t.Costs.Sense},
			Limits: robotics.UseLimits{Move: t.Limits.Move, Destroy: t.Limits.Destroy, Sense: t.Limits.Sense},
		},
		Clock: world.NewClock(world.ClockConfig{DayTicks: t.Clock.DayTicks, NightTicks: t.Clock.NightTicks}),
	}
}

// jsonValue round-trips a decoded YAML document through JSON so the validator
// sees JSON types.
func jsonValue(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
