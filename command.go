package goshogi

import "fmt"

// CommandType tags a Command.
type CommandType string

const (
	CommandMove     CommandType = "move"
	CommandPut      CommandType = "put"
	CommandPass     CommandType = "pass"
	CommandResign   CommandType = "resign"
	CommandDraw     CommandType = "draw"
	CommandRollback CommandType = "rollback"
	CommandReset    CommandType = "reset"
	CommandStart    CommandType = "start"
)

// Command is one external request. Direction, when set, is the seat the
// caller acts for and is checked against turn ownership.
type Command struct {
	Type      CommandType `json:"type"`
	Direction *Direction  `json:"direction,omitempty"`
	From      *XY         `json:"from,omitempty"`
	To        *XY         `json:"to,omitempty"`
	Nari      bool        `json:"nari,omitempty"`
	Put       Species     `json:"put,omitempty"`
	ID        int         `json:"id,omitempty"`
	RuleID    int         `json:"ruleId,omitempty"`
	// Count overrides the rollback amount.
	Count int `json:"count,omitempty"`
}

// RunCommand dispatches a command onto the game.
func (g *Game) RunCommand(c Command) error {
	log.Debugw("command", "type", c.Type, "rule", g.ruleID, "turn", g.teban.Turn())

	switch c.Type {
	case CommandReset:
		return g.Reset(c.RuleID)
	case CommandStart:
		return g.Start()
	case CommandDraw:
		return g.Draw()
	case CommandPass:
		return g.Pass(c.Direction)
	}

	if err := g.ensurePlaying(); err != nil {
		return err
	}
	switch c.Type {
	case CommandResign:
		return g.Resign(c.Direction)
	case CommandRollback:
		return g.Rollback(g.RollbackAmount(c))
	}

	if c.Direction != nil {
		if err := g.teban.EnsureDirection(*c.Direction); err != nil {
			return err
		}
	}
	switch c.Type {
	case CommandMove:
		if c.From == nil || c.To == nil {
			return fmt.Errorf("%w: move needs from and to", ErrIllegalMove)
		}
		return g.Move(*c.From, *c.To, c.Nari, c.Direction)
	case CommandPut:
		if c.To == nil {
			return fmt.Errorf("%w: put needs to", ErrIllegalMove)
		}
		d := g.teban.Get()
		if c.Direction != nil {
			d = *c.Direction
		}
		return g.Put(*c.To, c.Put, d, c.ID)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
}

// RollbackAmount is the number of half-moves a rollback command undoes.
// Without an explicit Count, a requester who is on turn gets back to their
// own previous move (2), anyone else undoes the last half-move (1). The
// result never exceeds the kifu length.
func (g *Game) RollbackAmount(c Command) int {
	n := c.Count
	if n <= 0 {
		n = 1
		if c.Direction != nil && *c.Direction == g.teban.Get() {
			n = 2
		}
	}
	return min(n, g.kifu.Len())
}
