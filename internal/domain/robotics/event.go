package robotics

import (
	"context"

	"robogrid/internal/domain/world"
)

type EventKind string

const (
	EventReady           EventKind = "ready"
	EventTickStarted     EventKind = "tick_started"
	EventPhaseChanged    EventKind = "phase_changed"
	EventEnergyMinted    EventKind = "energy_minted"
	EventEnergyConsumed  EventKind = "energy_consumed"
	EventInterfaceIssued EventKind = "interface_issued"
	EventMoved           EventKind = "moved"
	EventTileDestroyed   EventKind = "tile_destroyed"
	EventSensed          EventKind = "sensed"
	EventTerminated      EventKind = "terminated"
)

type Event struct {
	Kind     EventKind       `json:"kind"`
	Tick     uint64          `json:"tick"`
	Position *world.Position `json:"position,omitempty"`
	Tile     *world.Tile     `json:"tile,omitempty"`
	Amount   int             `json:"amount,omitempty"`
	Detail   string          `json:"detail,omitempty"`
}

// EventSink receives the events committed during one tick, in order.
type EventSink interface {
	Record(ctx context.Context, tick uint64, events []Event) error
}

type discardSink struct{}

func (discardSink) Record(context.Context, uint64, []Event) error { return nil }

func positionRef(p world.Position) *world.Position {
	return &p
}

func tileRef(t world.Tile) *world.Tile {
	return &t
}
