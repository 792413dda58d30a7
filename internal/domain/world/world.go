package world

import (
	"errors"
	"fmt"
)

var ErrInvalidWorld = errors.New("invalid world")

// World is the externally visible shape of a map: the grid, its dimensions and
// where the robot stands. Generators produce it; the simulation core copies it
// into its private store and never hands the live grid back out.
type World struct {
	Grid  [][]Tile `json:"grid"`
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Robot Position `json:"robot"`
}

// New builds a World from a grid, deriving the dimensions from it.
func New(grid [][]Tile, robot Position) World {
	w := World{Grid: grid, Rows: len(grid), Robot: robot}
	if len(grid) > 0 {
		w.Cols = len(grid[0])
	}
	return w
}

func (w World) Validate() error {
	if w.Rows <= 0 || w.Cols <= 0 || len(w.Grid) != w.Rows {
		return fmt.Errorf("%w: grid is %dx%d with %d rows", ErrInvalidWorld, w.Rows, w.Cols, len(w.Grid))
	}
	for r, row := range w.Grid {
		if len(row) != w.Cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidWorld, r, len(row), w.Cols)
		}
		for c, tile := range row {
			if !tile.Type.Valid() {
				return fmt.Errorf("%w: unknown tile type %q at (%d,%d)", ErrInvalidWorld, tile.Type, r, c)
			}
			if tile.Base != "" && !tile.Base.Valid() {
				return fmt.Errorf("%w: unknown base type %q at (%d,%d)", ErrInvalidWorld, tile.Base, r, c)
			}
		}
	}
	if !w.InBounds(w.Robot) {
		return fmt.Errorf("%w: robot at %s is outside the grid", ErrInvalidWorld, w.Robot)
	}
	return nil
}

func (w World) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < w.Rows && p.Col >= 0 && p.Col < w.Cols
}

// At returns the tile at p. The caller must check bounds first.
func (w World) At(p Position) Tile {
	return w.Grid[p.Row][p.Col]
}

func (w World) Clone() World {
	grid := make([][]Tile, len(w.Grid))
	for r, row := range w.Grid {
		grid[r] = append([]Tile(nil), row...)
	}
	w.Grid = grid
	return w
}

// GlyphRows renders the grid one string per row using each tile's glyph.
func (w World) GlyphRows() []string {
	out := make([]string, len(w.Grid))
	for r, row := range w.Grid {
		line := make([]byte, len(row))
		for c, t := range row {
			line[c] = t.Type.Props().Glyph
		}
		out[r] = string(line)
	}
	return out
}
