package generator

import (
	"fmt"
	"strings"

	"robogrid/internal/domain/world"
)

// RobotGlyph marks the start cell in a row map; the cell underneath is grass.
const RobotGlyph = 'R'

// Rows builds a world from glyph rows, one byte per cell. Overlay glyphs sit
// on grass. Without an R the robot starts at Start.
type Rows struct {
	Lines []string
	Start world.Position
}

func (g Rows) Generate() (world.World, error) {
	return ParseRows(g.Lines, g.Start)
}

// ParseRows parses glyph rows. Blank lines and lines starting with ';' are
// skipped.
func ParseRows(lines []string, start world.Position) (world.World, error) {
	grid := make([][]world.Tile, 0, len(lines))
	robot := start
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		r := len(grid)
		row := make([]world.Tile, len(line))
		for c := 0; c < len(line); c++ {
			if line[c] == RobotGlyph {
				robot = world.Position{Row: r, Col: c}
				row[c] = world.Plain(world.TileGrass)
				continue
			}
			t, ok := world.TileTypeForGlyph(line[c])
			if !ok {
				return world.World{}, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", world.ErrInvalidWorld, line[c], r, c)
			}
			switch {
			case t.Props().Overlay:
				row[c] = world.Over(t, world.TileGrass)
			case t == world.TileShallowWater || t == world.TileDeepWater:
				row[c] = world.Tile{Type: t, HasWater: true}
			default:
				row[c] = world.Plain(t)
			}
		}
		grid = append(grid, row)
	}
	w := world.New(grid, robot)
	return w, w.Validate()
}
