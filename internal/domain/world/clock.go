package world

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

type ClockConfig struct {
	DayTicks   int
	NightTicks int
}

// Clock maps a tick number onto the day/night cycle.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.DayTicks <= 0 {
		cfg.DayTicks = 12
	}
	if cfg.NightTicks <= 0 {
		cfg.NightTicks = 6
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

// PhaseAt returns the phase of the given tick and how many ticks remain in it.
func (c Clock) PhaseAt(tick uint64) (Phase, int) {
	total := uint64(c.cfg.DayTicks + c.cfg.NightTicks)
	if total == 0 {
		return PhaseDay, 0
	}
	offset := int(tick % total)
	if offset < c.cfg.DayTicks {
		return PhaseDay, c.cfg.DayTicks - offset
	}
	nightOffset := offset - c.cfg.DayTicks
	return PhaseNight, c.cfg.NightTicks - nightOffset
}

// Day returns the zero-based day index of the given tick.
func (c Clock) Day(tick uint64) uint64 {
	total := uint64(c.cfg.DayTicks + c.cfg.NightTicks)
	if total == 0 {
		return 0
	}
	return tick / total
}
