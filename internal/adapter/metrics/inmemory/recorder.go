package inmemory

import (
	"sync"

	"robogrid/internal/domain/robotics"
)

type Snapshot struct {
	TicksTotal     uint64            `json:"ticks_total"`
	RunsCompleted  uint64            `json:"runs_completed"`
	RunsFailed     uint64            `json:"runs_failed"`
	EnergyMinted   uint64            `json:"energy_minted"`
	EnergyConsumed uint64            `json:"energy_consumed"`
	ByEventKind    map[string]uint64 `json:"by_event_kind"`
}

type Recorder struct {
	mu        sync.Mutex
	ticks     uint64
	completed uint64
	failed    uint64
	minted    uint64
	consumed  uint64
	byKind    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(events []robotics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range events {
		r.byKind[string(ev.Kind)]++
		switch ev.Kind {
		case robotics.EventTickStarted:
			r.ticks++
		case robotics.EventEnergyMinted:
			r.minted += uint64(ev.Amount)
		case robotics.EventEnergyConsumed:
			r.consumed += uint64(ev.Amount)
		}
	}
}

func (r *Recorder) RecordRun(robotics.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TicksTotal:     r.ticks,
		RunsCompleted:  r.completed,
		RunsFailed:     r.failed,
		EnergyMinted:   r.minted,
		EnergyConsumed: r.consumed,
		ByEventKind:    make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byKind {
		out.ByEventKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
