package mock

import (
	"robogrid/internal/domain/world"
)

// Generator returns a copy of World, or Err when set. Calls counts
// invocations.
type Generator struct {
	World world.World
	Err   error
	Calls *int
}

func (g Generator) Generate() (world.World, error) {
	if g.Calls != nil {
		*g.Calls++
	}
	if g.Err != nil {
		return world.World{}, g.Err
	}
	if len(g.World.Grid) == 0 {
		return world.New([][]world.Tile{{world.Plain(world.TileGrass)}}, world.Position{}), nil
	}
	return g.World.Clone(), nil
}
