package goshogi

import (
	"fmt"
	"strings"
)

// Turn is a single line of a kifu text: one numbered command, optionally
// attributed to a seat and commented.
type Turn struct {
	Number  int
	Seat    *Direction
	Command Command
	Comment string
}

// Text returns the kifu line of the turn.
func (t *Turn) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.", t.Number)
	if t.Seat != nil {
		fmt.Fprintf(&b, " @%d", *t.Seat)
	}
	if cmd := FormatCommand(t.Command); cmd != "" {
		b.WriteString(" " + cmd)
	}
	if t.Comment != "" {
		fmt.Fprintf(&b, " { %s }", t.Comment)
	}
	return b.String()
}

// Debug is a verbose dumping of the object and its sub objects.
func (t *Turn) Debug() string {
	seat := "-"
	if t.Seat != nil {
		seat = fmt.Sprint(*t.Seat)
	}
	return fmt.Sprintf("&{%d seat:%s cmd:%+v Comment: \"%s\"}", t.Number, seat, t.Command, t.Comment)
}
