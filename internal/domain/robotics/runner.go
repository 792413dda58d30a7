package robotics

import (
	"context"
	"fmt"

	"robogrid/internal/domain/world"
)

const (
	DefaultTicks         = 10
	DefaultEnergyPerTick = MaxEnergyLevel
)

type RunnerConfig struct {
	Ticks         uint64
	EnergyPerTick int
	World         Config
	Clock         world.Clock
}

type RunnerOption func(*Runner)

func WithEventSink(sink EventSink) RunnerOption {
	return func(r *Runner) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// Summary tallies a run from the events it committed.
type Summary struct {
	Ticks          uint64         `json:"ticks"`
	EnergyMinted   int            `json:"energy_minted"`
	EnergyConsumed int            `json:"energy_consumed"`
	Issued         int            `json:"issued"`
	Moves          int            `json:"moves"`
	Destroyed      int            `json:"destroyed"`
	Senses         int            `json:"senses"`
	Discovered     int            `json:"discovered"`
	Events         int            `json:"events"`
	Final          world.Position `json:"final"`
}

// Runner is the only place Energy is minted. It owns the PrivateWorld and
// drives one robot through a fixed number of ticks.
type Runner struct {
	cfg     RunnerConfig
	world   *PrivateWorld
	robot   Robot
	sink    EventSink
	tick    uint64
	phase   world.Phase
	summary Summary
	done    bool
}

func NewRunner(cfg RunnerConfig, gen world.Generator, build RobotBuilder, opts ...RunnerOption) (*Runner, error) {
	if gen == nil || build == nil {
		return nil, fmt.Errorf("runner: generator and robot builder are required")
	}
	if cfg.Ticks == 0 {
		cfg.Ticks = DefaultTicks
	}
	if cfg.EnergyPerTick <= 0 {
		cfg.EnergyPerTick = DefaultEnergyPerTick
	}
	if cfg.EnergyPerTick > MaxEnergyLevel {
		cfg.EnergyPerTick = MaxEnergyLevel
	}
	if cfg.Clock == (world.Clock{}) {
		cfg.Clock = world.DefaultClock()
	}

	w, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	pw, err := NewPrivateWorld(w, cfg.World)
	if err != nil {
		return nil, err
	}
	robot, err := build(pw)
	if err != nil {
		return nil, fmt.Errorf("build robot: %w", err)
	}
	if robot == nil {
		return nil, fmt.Errorf("build robot: nil robot")
	}

	r := &Runner{cfg: cfg, world: pw, robot: robot, sink: discardSink{}}
	for _, opt := range opts {
		opt(r)
	}
	var left int
	r.phase, left = cfg.Clock.PhaseAt(0)
	pw.beginTick(0, r.phase, left)
	if h, ok := robot.(EventHandler); ok {
		pw.setNotify(h.HandleEvent)
	}
	pw.emit(Event{Kind: EventReady, Position: positionRef(w.Robot), Detail: string(r.phase)})
	return r, nil
}

func (r *Runner) Config() RunnerConfig {
	return r.cfg
}

func (r *Runner) CurrentTick() uint64 {
	return r.tick
}

func (r *Runner) Summary() Summary {
	return r.summary
}

// Snapshot returns a copy of the world as it stands between ticks.
func (r *Runner) Snapshot() world.World {
	return r.world.snapshot()
}

// Tick advances one tick: mint the allotment, hand it to the robot, flush the
// committed events to the sink.
func (r *Runner) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.done || r.tick >= r.cfg.Ticks {
		return ErrRunnerDone
	}
	r.tick++
	phase, left := r.cfg.Clock.PhaseAt(r.tick - 1)
	r.world.beginTick(r.tick, phase, left)

	started := []Event{{Kind: EventTickStarted}}
	if phase != r.phase {
		r.phase = phase
		started = append(started, Event{Kind: EventPhaseChanged, Detail: string(phase)})
	}
	allotment := newEnergy(r.cfg.EnergyPerTick)
	started = append(started, Event{Kind: EventEnergyMinted, Amount: allotment.Quantity()})
	r.world.emit(started...)

	r.robot.ProcessTick(allotment)

	r.summary.Ticks = r.tick
	return r.flush(ctx)
}

// Run drives every remaining tick, then emits terminated. A cancelled context
// stops the run between ticks; the terminated event is still recorded.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var runErr error
	for r.tick < r.cfg.Ticks && !r.done {
		if err := r.Tick(ctx); err != nil {
			runErr = err
			break
		}
	}
	detail := "completed"
	if runErr != nil {
		detail = runErr.Error()
	}
	r.done = true
	r.world.emit(Event{Kind: EventTerminated, Detail: detail})
	if err := r.flush(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		runErr = err
	}
	return r.summary, runErr
}

func (r *Runner) flush(ctx context.Context) error {
	events := r.world.drain()
	for _, ev := range events {
		r.summary.tally(ev)
	}
	r.summary.Final = r.world.robotPosition()
	r.summary.Discovered = r.world.discoveredCount()
	if len(events) == 0 {
		return nil
	}
	if err := r.sink.Record(ctx, r.tick, events); err != nil {
		return fmt.Errorf("record tick %d: %w", r.tick, err)
	}
	return nil
}

func (s *Summary) tally(ev Event) {
	s.Events++
	switch ev.Kind {
	case EventEnergyMinted:
		s.EnergyMinted += ev.Amount
	case EventEnergyConsumed:
		s.EnergyConsumed += ev.Amount
	case EventInterfaceIssued:
		s.Issued++
	case EventMoved:
		s.Moves++
	case EventTileDestroyed:
		s.Destroyed++
	case EventSensed:
		s.Senses++
	}
}
