package world

// Generator produces the initial state of a world. Implementations differ only
// in how they populate the grid and must not touch any existing world.
type Generator interface {
	Generate() (World, error)
}
