package generator

import (
	"fmt"

	"robogrid/internal/domain/world"
)

type Config struct {
	Rows int
	Cols int
	Seed int64
}

func Names() []string {
	return []string{"flat", "procedural"}
}

// New returns the named built-in generator.
func New(name string, cfg Config) (world.Generator, error) {
	switch name {
	case "flat", "":
		return Flat{Rows: cfg.Rows, Cols: cfg.Cols}, nil
	case "procedural":
		return Procedural{Rows: cfg.Rows, Cols: cfg.Cols, Seed: cfg.Seed}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", name)
	}
}
