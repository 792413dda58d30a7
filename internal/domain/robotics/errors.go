package robotics

import (
	"errors"
	"fmt"

	"robogrid/internal/domain/world"
)

var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInvalidQuantity    = errors.New("invalid energy quantity")
	ErrBudgetExhausted    = errors.New("interface budget exhausted")
	ErrOutOfBounds        = errors.New("target out of bounds")
	ErrBlocked            = errors.New("target blocked")
	ErrNothingToDestroy   = errors.New("nothing to destroy")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidInterface   = errors.New("invalid interface")
	ErrHandleSpent        = errors.New("interface handle spent")
	ErrDebugDisabled      = errors.New("debug interface not compiled in")
	ErrRunnerDone         = errors.New("runner finished")
)

type InsufficientEnergyError struct {
	Required  int
	Available int
}

func (e *InsufficientEnergyError) Error() string {
	return fmt.Sprintf("%s: required %d, available %d", ErrInsufficientEnergy, e.Required, e.Available)
}

func (e *InsufficientEnergyError) Unwrap() error {
	return ErrInsufficientEnergy
}

type OutOfBoundsError struct {
	Target world.Position
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfBounds, e.Target)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

type BlockedError struct {
	Target world.Position
	Tile   world.Tile
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrBlocked, e.Target, e.Tile.Type)
}

func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}
