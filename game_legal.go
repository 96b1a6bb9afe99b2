package goshogi

// LegalMoves lists the move and drop commands the seat on turn may play,
// plus a pass when one is allowed. Every candidate is tried on the game and
// rolled back, so the list honours every strategy of the rule.
func (g *Game) LegalMoves() []Command {
	if g.status != StatusPlaying {
		return nil
	}
	d := g.teban.Get()
	var out []Command
	for _, c := range g.candidates(d) {
		c := c
		if g.speculate(func(t *txn) error { return g.apply(t, c) }) == nil {
			out = append(out, c)
		}
	}

	if g.moving != nil {
		if k := g.ban.Get(*g.moving); k == nil || !k.Has(StatusNoPass) {
			out = append(out, Command{Type: CommandPass, Direction: &d})
		}
	} else if g.strategy.TebanRotation.CanPass() {
		out = append(out, Command{Type: CommandPass, Direction: &d})
	}
	return out
}

// InCheck reports whether a royal piece of d is attacked by a seat still in
// the game.
func (g *Game) InCheck(d Direction) bool {
	by := func(o Direction) bool {
		return o != d && g.teban.Result(o) != ResultLose
	}
	for _, r := range g.ban.Royal(d) {
		if g.ban.IsAttacked(r.XY, by) {
			return true
		}
	}
	return false
}

// speculate runs fn inside a transaction that is always rolled back.
func (g *Game) speculate(fn func(t *txn) error) error {
	t := g.begin()
	g.speculating++
	defer func() {
		g.speculating--
		t.restore(g)
	}()
	return fn(t)
}

// hasLegalReply reports whether d could answer the position. The mover's
// multi-leg state is cleared first since the reply starts a fresh move.
func (g *Game) hasLegalReply(d Direction) bool {
	if g.strategy.TebanRotation.CanPass() && !g.InCheck(d) {
		return true
	}

	moving := g.moving
	g.moving = nil
	replies := g.candidates(d)
	g.moving = moving

	for _, c := range replies {
		c := c
		err := g.speculate(func(t *txn) error {
			g.teban.Set(d)
			g.moving = nil
			return g.apply(t, c)
		})
		if err == nil {
			return true
		}
	}
	return false
}

// candidates lists the moves and drops of d that reach a cell, without any
// strategy check.
func (g *Game) candidates(d Direction) []Command {
	var out []Command
	seat := d
	pieces := g.ban.Pieces(d)
	if g.moving != nil {
		pieces = nil
		if k := g.ban.Get(*g.moving); k != nil && k.Direction == d {
			pieces = []*Koma{k}
		}
	}

	for _, k := range pieces {
		from := k.XY
		for _, to := range g.ban.Targets(from) {
			to := to
			out = append(out, Command{Type: CommandMove, Direction: &seat, From: &from, To: &to})
			if g.strategy.Promotion.ShouldAskPromotion(g, to, from, g.ban.Exists(to), d) {
				out = append(out, Command{Type: CommandMove, Direction: &seat, From: &from, To: &to, Nari: true})
			}
		}
	}
	if g.moving != nil {
		return out
	}

	for _, s := range g.mochigoma.Species(d) {
		for x := 1; x <= g.ban.Width(); x++ {
			for y := 1; y <= g.ban.Height(); y++ {
				to := NewXY(x, y)
				if !g.ban.Exists(to) {
					out = append(out, Command{Type: CommandPut, Direction: &seat, To: &to, Put: s})
				}
			}
		}
	}
	return out
}

// apply runs a move or drop command inside an open transaction.
func (g *Game) apply(t *txn, c Command) error {
	switch c.Type {
	case CommandMove:
		if c.From == nil || c.To == nil {
			return ErrIllegalMove
		}
		return g.move(t, *c.From, *c.To, c.Nari, c.Direction)
	case CommandPut:
		if c.To == nil || c.Direction == nil {
			return ErrIllegalMove
		}
		return g.put(t, *c.To, c.Put, *c.Direction, c.ID)
	}
	return ErrUnknownCommand
}

// opponents lists the seats other than d still in the game, in turn order
// after d.
func (g *Game) opponents(d Direction) []Direction {
	n := g.teban.Count()
	var out []Direction
	for i := 1; i < n; i++ {
		o := Direction((int(d) + i) % n)
		if g.teban.Result(o) != ResultLose {
			out = append(out, o)
		}
	}
	return out
}

func (g *Game) startsWithRoyal(d Direction) bool {
	for _, p := range g.rule.Init.Ban {
		if p.Direction != d {
			continue
		}
		if pr, ok := g.rule.Piece(p.Species); ok && pr.Royal {
			return true
		}
	}
	return false
}
