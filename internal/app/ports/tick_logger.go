package ports

import (
	"time"

	"robogrid/internal/domain/robotics"
)

// TickLogEntry is one line of the compressed tick log.
type TickLogEntry struct {
	RunID  string           `json:"run_id"`
	Tick   uint64           `json:"tick"`
	At     time.Time        `json:"at"`
	Events []robotics.Event `json:"events"`
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
	Close() error
}
