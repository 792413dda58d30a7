// Package generator holds the built-in world generators.
package generator

import (
	"fmt"

	"robogrid/internal/domain/world"
)

// Flat fills the grid with a single tile type.
type Flat struct {
	Rows  int
	Cols  int
	Tile  world.TileType
	Start world.Position
}

func (g Flat) Generate() (world.World, error) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return world.World{}, fmt.Errorf("%w: flat %dx%d", world.ErrInvalidWorld, g.Rows, g.Cols)
	}
	kind := g.Tile
	if kind == "" {
		kind = world.TileGrass
	}
	grid := make([][]world.Tile, g.Rows)
	for r := range grid {
		grid[r] = make([]world.Tile, g.Cols)
		for c := range grid[r] {
			grid[r][c] = world.Plain(kind)
		}
	}
	w := world.New(grid, g.Start)
	return w, w.Validate()
}
