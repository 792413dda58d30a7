package robotics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"robogrid/internal/domain/world"
)

type walker struct {
	mv     Move
	seen   []EventKind
	energy []int
}

func (w *walker) ProcessTick(e Energy) {
	w.energy = append(w.energy, e.Quantity())
	_, _ = w.mv.MoveMe(e, world.DirectionRight)
}

func (w *walker) HandleEvent(ev Event) {
	w.seen = append(w.seen, ev.Kind)
}

func TestRunner_RunMintsAndRecords(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "...."), nil
	})
	bot := &walker{}
	sink := &recordingSink{}
	r, err := NewRunner(RunnerConfig{Ticks: 3, EnergyPerTick: 50}, gen, func(is Issuer) (Robot, error) {
		b, err := is.IssueBasicInterface()
		if err != nil {
			return nil, err
		}
		bot.mv = b.Move()
		return bot, nil
	}, WithEventSink(sink))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]int{50, 50, 50}, bot.energy); diff != "" {
		t.Fatalf("minted allotments mismatch (-want +got):\n%s", diff)
	}
	want := Summary{
		Ticks:          3,
		EnergyMinted:   150,
		EnergyConsumed: 3 * DefaultMoveCost,
		Issued:         1,
		Moves:          3,
		Discovered:     1,
		Events:         len(sink.events),
		Final:          world.Position{Row: 0, Col: 3},
	}
	if diff := cmp.Diff(want, sum); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	kinds := sink.kinds()
	if kinds[0] != EventInterfaceIssued || kinds[1] != EventReady || kinds[len(kinds)-1] != EventTerminated {
		t.Fatalf("unexpected event order %v", kinds)
	}
	tickOne := []EventKind{EventTickStarted, EventEnergyMinted, EventEnergyConsumed, EventMoved}
	if diff := cmp.Diff(tickOne, kinds[2:6]); diff != "" {
		t.Fatalf("tick one events mismatch (-want +got):\n%s", diff)
	}
	if sink.events[5].Tick != 1 || sink.events[5].Position == nil || *sink.events[5].Position != (world.Position{Row: 0, Col: 1}) {
		t.Fatalf("unexpected moved event %+v", sink.events[5])
	}
	if len(bot.seen) == 0 || bot.seen[0] != EventReady {
		t.Fatalf("handler should observe events from ready on, got %v", bot.seen)
	}

	if err := r.Tick(context.Background()); !errors.Is(err, ErrRunnerDone) {
		t.Fatalf("expected ErrRunnerDone, got %v", err)
	}
}

func TestRunner_PhaseChangedAtBoundary(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "."), nil
	})
	sink := &recordingSink{}
	r, err := NewRunner(RunnerConfig{
		Ticks: 4,
		Clock: world.NewClock(world.ClockConfig{DayTicks: 2, NightTicks: 1}),
	}, gen, func(Issuer) (Robot, error) {
		return robotFunc(func(Energy) {}), nil
	}, WithEventSink(sink))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var phases []string
	var ticks []uint64
	for _, ev := range sink.events {
		if ev.Kind == EventPhaseChanged {
			phases = append(phases, ev.Detail)
			ticks = append(ticks, ev.Tick)
		}
	}
	if diff := cmp.Diff([]string{"night", "day"}, phases); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{3, 4}, ticks); diff != "" {
		t.Fatalf("phase ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_CancelledContextStillTerminates(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "."), nil
	})
	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r, err := NewRunner(RunnerConfig{Ticks: 5}, gen, func(Issuer) (Robot, error) {
		return robotFunc(func(Energy) {
			calls++
			if calls == 2 {
				cancel()
			}
		}), nil
	}, WithEventSink(sink))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	sum, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 2 || sum.Ticks != 2 {
		t.Fatalf("expected 2 ticks, got calls=%d ticks=%d", calls, sum.Ticks)
	}
	last := sink.events[len(sink.events)-1]
	if last.Kind != EventTerminated {
		t.Fatalf("expected terminated last, got %s", last.Kind)
	}
}

func TestNewRunner_Errors(t *testing.T) {
	genErr := errors.New("boom")
	failing := generatorFunc(func() (world.World, error) { return world.World{}, genErr })
	noop := func(Issuer) (Robot, error) { return robotFunc(func(Energy) {}), nil }

	if _, err := NewRunner(RunnerConfig{}, failing, noop); !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
	invalid := generatorFunc(func() (world.World, error) { return world.World{}, nil })
	if _, err := NewRunner(RunnerConfig{}, invalid, noop); !errors.Is(err, world.ErrInvalidWorld) {
		t.Fatalf("expected ErrInvalidWorld, got %v", err)
	}
	if _, err := NewRunner(RunnerConfig{}, nil, noop); err == nil {
		t.Fatalf("expected error for nil generator")
	}
}

func TestRunner_SinkErrorStopsRun(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "."), nil
	})
	sinkErr := errors.New("disk full")
	r, err := NewRunner(RunnerConfig{Ticks: 3}, gen, func(Issuer) (Robot, error) {
		return robotFunc(func(Energy) {}), nil
	}, WithEventSink(&recordingSink{err: sinkErr}))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	sum, err := r.Run(context.Background())
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if sum.Ticks != 1 {
		t.Fatalf("expected stop after first tick, got %d", sum.Ticks)
	}
}

func TestRunner_PrintWorldFollowsBuildTag(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "."), nil
	})
	r, err := NewRunner(RunnerConfig{}, gen, func(Issuer) (Robot, error) {
		return robotFunc(func(Energy) {}), nil
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	err = r.PrintWorld(&discardWriter{})
	if DebugEnabled && err != nil {
		t.Fatalf("print world: %v", err)
	}
	if !DebugEnabled && !errors.Is(err, ErrDebugDisabled) {
		t.Fatalf("expected ErrDebugDisabled, got %v", err)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRunner_ClampsAllotmentToMaxEnergyLevel(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, ".."), nil
	})
	var received []int
	sink := &recordingSink{}
	r, err := NewRunner(RunnerConfig{Ticks: 1, EnergyPerTick: 5000}, gen, func(Issuer) (Robot, error) {
		return robotFunc(func(e Energy) { received = append(received, e.Quantity()) }), nil
	}, WithEventSink(sink))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if got := r.Config().EnergyPerTick; got != MaxEnergyLevel {
		t.Fatalf("configured allotment %d, want %d", got, MaxEnergyLevel)
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]int{MaxEnergyLevel}, received); diff != "" {
		t.Fatalf("received allotments mismatch (-want +got):\n%s", diff)
	}
	if sum.EnergyMinted != MaxEnergyLevel {
		t.Fatalf("summary minted %d, want %d", sum.EnergyMinted, MaxEnergyLevel)
	}
	for _, ev := range sink.events {
		if ev.Kind == EventEnergyMinted && ev.Amount != MaxEnergyLevel {
			t.Fatalf("minted event amount %d, want %d", ev.Amount, MaxEnergyLevel)
		}
	}
}

func TestRunner_LookAtSkyFollowsClock(t *testing.T) {
	gen := generatorFunc(func() (world.World, error) {
		return gridWorld(t, world.Position{}, "."), nil
	})
	var skies []Sky
	r, err := NewRunner(RunnerConfig{
		Ticks: 3,
		Clock: world.NewClock(world.ClockConfig{DayTicks: 2, NightTicks: 1}),
	}, gen, func(is Issuer) (Robot, error) {
		b, err := is.IssueBasicInterface()
		if err != nil {
			return nil, err
		}
		s := b.Sense()
		return robotFunc(func(Energy) {
			sky, err := s.LookAtSky()
			if err != nil {
				t.Errorf("look at sky: %v", err)
			}
			skies = append(skies, sky)
		}), nil
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []Sky{
		{Tick: 1, Phase: world.PhaseDay, TicksLeft: 2},
		{Tick: 2, Phase: world.PhaseDay, TicksLeft: 1},
		{Tick: 3, Phase: world.PhaseNight, TicksLeft: 1},
	}
	if diff := cmp.Diff(want, skies); diff != "" {
		t.Fatalf("sky mismatch (-want +got):\n%s", diff)
	}
}
