//go:build robodebug

package robotics

import "io"

const DebugEnabled = true

// Debug inspects the whole world. It is only compiled into test and debug
// builds.
type Debug struct {
	basic BasicInterface
}

func (b BasicInterface) Debug() Debug {
	return Debug{basic: b}
}

func (d Debug) Basic() BasicInterface {
	return d.basic
}

func (d Debug) PrintWorld(w io.Writer) error {
	if d.basic.w == nil {
		return ErrInvalidInterface
	}
	return d.basic.w.dump(w)
}

// PrintWorld writes the runner's world to w.
func (r *Runner) PrintWorld(w io.Writer) error {
	return r.world.dump(w)
}
