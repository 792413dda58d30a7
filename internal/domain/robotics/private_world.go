package robotics

import (
	"fmt"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"robogrid/internal/domain/world"
)

type worldState struct {
	world.World
	remaining  int
	issued     int
	discovered mapset.Set[world.Position]
	tick       uint64
	sky        Sky
}

// PrivateWorld is the authoritative store behind every interface handle. Its
// state is only reachable through the handles it issues; mu is the single
// guard serializing every read and mutation.
type PrivateWorld struct {
	mu      sync.Mutex
	state   worldState
	costs   Costs
	limits  UseLimits
	pending []Event
	notify  func(Event)
}

func NewPrivateWorld(w world.World, cfg Config) (*PrivateWorld, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if cfg.Budget <= 0 {
		cfg.Budget = DefaultIssuanceBudget
	}
	discovered := mapset.New[world.Position]()
	discovered.Put(w.Robot)
	return &PrivateWorld{
		state: worldState{
			World:      w.Clone(),
			remaining:  cfg.Budget,
			discovered: discovered,
			sky:        Sky{Phase: world.PhaseDay},
		},
		costs:  cfg.resolvedCosts(),
		limits: cfg.Limits,
	}, nil
}

// IssueBasicInterface spends one slot of the issuance budget.
func (p *PrivateWorld) IssueBasicInterface() (BasicInterface, error) {
	p.mu.Lock()
	if p.state.remaining <= 0 {
		p.mu.Unlock()
		return BasicInterface{}, ErrBudgetExhausted
	}
	p.state.remaining--
	p.state.issued++
	b := BasicInterface{w: p, id: p.state.issued}
	ev := p.recordLocked(Event{Kind: EventInterfaceIssued, Amount: p.state.remaining, Detail: fmt.Sprintf("basic#%d", b.id)})
	notify := p.notify
	p.mu.Unlock()

	dispatch(notify, ev...)
	return b, nil
}

func (p *PrivateWorld) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.remaining
}

func (p *PrivateWorld) Dimensions() (rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Rows, p.state.Cols
}

// operation is one capability step: pay cost, pass check, then commit. Nothing
// is mutated and no energy is spent unless both the payment and the check pass.
type operation struct {
	cost   int
	uses   *useCounter
	check  func(s *worldState) error
	commit func(s *worldState) []Event
}

func (p *PrivateWorld) exec(energy Energy, op operation) error {
	events, notify, err := p.apply(energy, op)
	if err != nil {
		return err
	}
	dispatch(notify, events...)
	return nil
}

func (p *PrivateWorld) apply(energy Energy, op operation) ([]Event, func(Event), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if op.uses.spent() {
		return nil, nil, ErrHandleSpent
	}
	if !energy.Has(op.cost) {
		return nil, nil, &InsufficientEnergyError{Required: op.cost, Available: energy.Quantity()}
	}
	if op.check != nil {
		if err := op.check(&p.state); err != nil {
			return nil, nil, err
		}
	}
	if err := energy.consume(op.cost); err != nil {
		return nil, nil, err
	}
	op.uses.use()

	events := p.recordLocked(Event{Kind: EventEnergyConsumed, Amount: op.cost})
	if op.commit != nil {
		events = append(events, p.recordLocked(op.commit(&p.state)...)...)
	}
	return events, p.notify, nil
}

func (p *PrivateWorld) recordLocked(events ...Event) []Event {
	for i := range events {
		events[i].Tick = p.state.tick
	}
	p.pending = append(p.pending, events...)
	return events
}

func (p *PrivateWorld) emit(events ...Event) {
	p.mu.Lock()
	events = p.recordLocked(events...)
	notify := p.notify
	p.mu.Unlock()
	dispatch(notify, events...)
}

func (p *PrivateWorld) beginTick(tick uint64, phase world.Phase, left int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.tick = tick
	p.state.sky = Sky{Tick: tick, Phase: phase, TicksLeft: left}
}

func (p *PrivateWorld) setNotify(fn func(Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = fn
}

func (p *PrivateWorld) drain() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.pending
	p.pending = nil
	return out
}

func (p *PrivateWorld) snapshot() world.World {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *PrivateWorld) robotPosition() world.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Robot
}

func (p *PrivateWorld) knownMap() [][]*world.Tile {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]*world.Tile, p.state.Rows)
	for r := range out {
		out[r] = make([]*world.Tile, p.state.Cols)
	}
	p.state.discovered.Each(func(pos world.Position) {
		out[pos.Row][pos.Col] = tileRef(p.state.At(pos))
	})
	return out
}

func (p *PrivateWorld) sky() Sky {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.sky
}

func (p *PrivateWorld) discoveredCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.discovered.Size()
}

func dispatch(notify func(Event), events ...Event) {
	if notify == nil {
		return
	}
	for _, ev := range events {
		notify(ev)
	}
}
