//go:build !robodebug

package robotics

import "io"

const DebugEnabled = false

func (r *Runner) PrintWorld(io.Writer) error {
	return ErrDebugDisabled
}
