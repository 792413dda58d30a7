package robotics

const (
	DefaultMoveCost       = 10
	DefaultDestroyCost    = 500
	DefaultSenseCost      = 3
	DefaultIssuanceBudget = 4
)

// Costs is the energy price of each capability operation.
type Costs struct {
	Move    int `json:"move"`
	Destroy int `json:"destroy"`
	Sense   int `json:"sense"`
}

func DefaultCosts() Costs {
	return Costs{
		Move:    DefaultMoveCost,
		Destroy: DefaultDestroyCost,
		Sense:   DefaultSenseCost,
	}
}

// UseLimits bounds how many operations one specialized handle may perform.
// Zero means unlimited.
type UseLimits struct {
	Move    int `json:"move"`
	Destroy int `json:"destroy"`
	Sense   int `json:"sense"`
}

// Config sets up a PrivateWorld. A nil Costs means the default price table;
// a non-nil table is taken as given, so zero costs make operations free.
type Config struct {
	Budget int
	Costs  *Costs
	Limits UseLimits
}

func DefaultConfig() Config {
	costs := DefaultCosts()
	return Config{
		Budget: DefaultIssuanceBudget,
		Costs:  &costs,
	}
}

func (cfg Config) resolvedCosts() Costs {
	def := DefaultCosts()
	if cfg.Costs == nil {
		return def
	}
	out := *cfg.Costs
	if out.Move < 0 {
		out.Move = def.Move
	}
	if out.Destroy < 0 {
		out.Destroy = def.Destroy
	}
	if out.Sense < 0 {
		out.Sense = def.Sense
	}
	return out
}

type useCounter struct {
	left    int
	limited bool
}

func newUseCounter(limit int) *useCounter {
	return &useCounter{left: limit, limited: limit > 0}
}

func (u *useCounter) spent() bool {
	return u != nil && u.limited && u.left <= 0
}

func (u *useCounter) use() {
	if u != nil && u.limited {
		u.left--
	}
}
