package robotics

import "robogrid/internal/domain/world"

// BasicInterface is the only handle issued directly by a PrivateWorld. It has
// no operations of its own; every specialized handle is converted from it.
type BasicInterface struct {
	w  *PrivateWorld
	id int
}

func (b BasicInterface) Valid() bool {
	return b.w != nil
}

func (b BasicInterface) ID() int {
	return b.id
}

func (b BasicInterface) uses(limit func(UseLimits) int) *useCounter {
	if b.w == nil {
		return nil
	}
	return newUseCounter(limit(b.w.limits))
}

func (b BasicInterface) target(dir world.Direction) (*PrivateWorld, error) {
	if b.w == nil {
		return nil, ErrInvalidInterface
	}
	if !dir.Valid() {
		return nil, ErrInvalidDirection
	}
	return b.w, nil
}
