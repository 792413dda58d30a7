package robotics

import (
	"bufio"
	"fmt"
	"io"

	"robogrid/internal/domain/world"
)

const robotGlyph = 'R'

func (p *PrivateWorld) dump(out io.Writer) error {
	p.mu.Lock()
	w := p.state.Clone()
	remaining := p.state.remaining
	discovered := p.state.discovered.Size()
	tick := p.state.tick
	p.mu.Unlock()

	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "tick=%d robot=%s budget=%d discovered=%d\n", tick, w.Robot, remaining, discovered)
	for r, line := range w.GlyphRows() {
		if r == w.Robot.Row {
			b := []byte(line)
			b[w.Robot.Col] = robotGlyph
			line = string(b)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	// one line per cell carrying metadata the glyph cannot show
	for r, row := range w.Grid {
		for c, t := range row {
			if t.Base == "" && !t.OnFire && !t.HasWater {
				continue
			}
			fmt.Fprintf(bw, "%s %s", world.Position{Row: r, Col: c}, t.Type)
			if t.Base != "" {
				fmt.Fprintf(bw, " base=%s", t.Base)
			}
			if t.OnFire {
				bw.WriteString(" on_fire")
			}
			if t.HasWater {
				bw.WriteString(" has_water")
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
