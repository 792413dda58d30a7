package ports

import (
	"context"

	"robogrid/internal/domain/world"
)

// MapProvider serves hand-authored maps by name.
type MapProvider interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (world.World, error)
}
