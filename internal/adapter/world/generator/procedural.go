package generator

import (
	"fmt"
	"math"

	"robogrid/internal/domain/world"
)

type zone int

const (
	zoneCore zone = iota
	zoneRing
	zoneHighland
	zoneWild
)

// Procedural lays terrain out in rings by distance from the centre, with a
// seeded per-cell hash picking features inside each ring. The robot starts on
// the centre cell, which is always grass.
type Procedural struct {
	Rows int
	Cols int
	Seed int64
}

func (g Procedural) Generate() (world.World, error) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return world.World{}, fmt.Errorf("%w: procedural %dx%d", world.ErrInvalidWorld, g.Rows, g.Cols)
	}
	center := world.Position{Row: g.Rows / 2, Col: g.Cols / 2}
	radius := max(g.Rows, g.Cols) / 2
	grid := make([][]world.Tile, g.Rows)
	for r := range grid {
		grid[r] = make([]world.Tile, g.Cols)
		for c := range grid[r] {
			z := zoneByDistance(abs(r-center.Row)+abs(c-center.Col), radius)
			grid[r][c] = genTile(z, tileSeed(r, c, g.Seed))
		}
	}
	grid[center.Row][center.Col] = world.Plain(world.TileGrass)
	w := world.New(grid, center)
	return w, w.Validate()
}

func zoneByDistance(d, radius int) zone {
	if radius < 4 {
		radius = 4
	}
	switch {
	case d <= radius/4:
		return zoneCore
	case d <= radius/2:
		return zoneRing
	case d <= radius*3/4:
		return zoneHighland
	default:
		return zoneWild
	}
}

func genTile(z zone, seed int) world.Tile {
	switch z {
	case zoneCore:
		if seed%9 == 0 {
			return world.Over(world.TileStreet, world.TileGrass)
		}
		return world.Plain(world.TileGrass)
	case zoneRing:
		switch {
		case seed%7 == 0:
			return world.Tile{Type: world.TileShallowWater, HasWater: true}
		case seed%5 == 0:
			return world.Over(world.TileHill, world.TileGrass)
		case seed%3 == 0:
			return world.Plain(world.TileSand)
		}
		return world.Plain(world.TileGrass)
	case zoneHighland:
		switch {
		case seed%6 == 0:
			return world.Over(world.TileSnow, world.TileHill)
		case seed%2 == 0:
			return world.Over(world.TileMountain, world.TileGrass)
		}
		return world.Over(world.TileHill, world.TileGrass)
	default:
		switch {
		case seed%11 == 0:
			return world.Plain(world.TileLava)
		case seed%7 == 0:
			return world.Tile{Type: world.TileDeepWater, HasWater: true}
		case seed%5 == 0:
			return world.Over(world.TileWall, world.TileSand)
		case seed%13 == 1:
			return world.Tile{Type: world.TileGrass, OnFire: true}
		}
		return world.Plain(world.TileSand)
	}
}

func tileSeed(r, c int, seed int64) int {
	v := c*73856093 ^ r*19349663 ^ int(seed*83492791)
	return v & math.MaxInt
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
