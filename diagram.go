package goshogi

import (
	"fmt"
	"strings"
)

// Diagram draws the position for people: files from the highest on the
// left, each piece as its owner's mark and short name, then one pool line
// per seat.
func (g *Game) Diagram() string {
	var b strings.Builder
	for x := g.ban.Width(); x >= 1; x-- {
		fmt.Fprintf(&b, "%4d", x)
	}
	b.WriteString("\n")

	for y := 1; y <= g.ban.Height(); y++ {
		for x := g.ban.Width(); x >= 1; x-- {
			b.WriteString(" " + g.Cell(NewXY(x, y)))
		}
		fmt.Fprintf(&b, " %d\n", y)
	}

	for _, d := range g.teban.Directions() {
		fmt.Fprintf(&b, "%s%s:", g.teban.Mark(d), g.teban.Name(d))
		species := g.mochigoma.Species(d)
		if len(species) == 0 {
			b.WriteString(" なし")
		}
		for _, s := range species {
			fmt.Fprintf(&b, " %s%d", g.rule.ShortName(s), g.mochigoma.Count(s, d))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Cell is the label of one cell: mark plus short name, or " ・" when empty.
func (g *Game) Cell(xy XY) string {
	k := g.ban.Get(xy)
	if k == nil {
		return " ・"
	}
	return g.teban.Mark(k.Direction) + g.rule.ShortName(k.Species)
}
