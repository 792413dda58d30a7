package replay

import (
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"
)

type Request struct {
	RunID string
	Limit int
	Kind  robotics.EventKind
}

// LatestState is what the returned events say about the robot. With a limit
// or kind filter it only reflects the events in the window.
type LatestState struct {
	Tick           uint64          `json:"tick"`
	Position       *world.Position `json:"position,omitempty"`
	EnergyMinted   int             `json:"energy_minted"`
	EnergyConsumed int             `json:"energy_consumed"`
	Destroyed      int             `json:"destroyed"`
	Terminated     bool            `json:"terminated"`
}

type Response struct {
	Events      []ports.RunEvent
	LatestState LatestState
}
