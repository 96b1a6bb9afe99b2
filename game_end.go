package goshogi

import "fmt"

// Resign ends the game with seat d, or the seat on turn when d is nil, as
// the loser.
func (g *Game) Resign(d *Direction) error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	return g.atomically(func(*txn) error {
		loser := g.teban.Get()
		if d != nil {
			if !g.teban.Valid(*d) {
				return fmt.Errorf("%w: no seat %d", ErrIllegalMove, *d)
			}
			loser = *d
		}
		if err := g.RegisterEnd(loser, loser, EndResign, "投了", fmt.Sprintf("%sが投了しました", g.teban.Name(loser))); err != nil {
			return err
		}
		if err := g.finalize(); err != nil {
			return err
		}
		g.teban.Rotate()
		return nil
	})
}

// Draw ends the game without a loser.
func (g *Game) Draw() error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	return g.atomically(func(*txn) error {
		if err := g.RegisterEnd(NoDirection, NoDirection, EndDraw, "引き分け", "引き分けになりました"); err != nil {
			return err
		}
		return g.finalize()
	})
}

// Rollback undoes n half-moves. Terminal entries do not count and a trailing
// first leg of a multi-leg move is undone together with the entry after it.
func (g *Game) Rollback(n int) error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	if g.kifu.Len() == 0 {
		return ErrNothingToRollback
	}
	if n < 1 {
		return fmt.Errorf("%w: count %d", ErrNothingToRollback, n)
	}
	return g.atomically(func(*txn) error {
		seat, turn := g.teban.Get(), g.teban.Turn()
		for te := 1; te <= n && g.kifu.Len() > 0; te++ {
			e := g.kifu.Remove()
			switch e := e.(type) {
			case *TerminalEntry:
				n++
			case *MoveEntry:
				g.undo(e)
			}
			seat, turn = e.Seat(), e.TurnBefore()
			if g.kifu.LastMoving() {
				n++
			}
			g.moving = nil
		}
		g.teban.Set(seat)
		g.teban.SetTurn(turn)
		log.Debugw("rolled back", "rule", g.ruleID, "turn", turn, "seat", seat)
		return nil
	})
}

func (g *Game) undo(e *MoveEntry) {
	for _, c := range e.Cells {
		g.ban.putState(c.XY, c.Before)
	}
	for _, p := range e.Pools {
		g.mochigoma.Set(p.Species, p.Direction, p.Before)
	}
}

// RegisterEnd records that the game ends once the current command
// completes. loser is NoDirection for a draw and mark picks the notation
// prefix. Registering twice in one command fails.
func (g *Game) RegisterEnd(loser, mark Direction, cause EndCause, kifu, reason string) error {
	if g.end != nil {
		return fmt.Errorf("%w: %s, %s", ErrGameAlreadyOver, g.end.reason, reason)
	}
	g.end = &gameEnd{loser: loser, mark: mark, cause: cause, kifu: kifu, reason: reason}
	return nil
}

func (g *Game) finalize() error {
	if g.end == nil {
		return nil
	}
	e := g.end
	g.end = nil

	err := g.kifu.Add(&TerminalEntry{
		Loser:     e.loser,
		Direction: g.teban.Get(),
		Turn:      g.teban.Turn(),
		Cause:     e.cause,
		Reason:    e.reason,
		Notation:  g.teban.Mark(e.mark) + e.kifu,
	})
	if err != nil {
		return err
	}
	for _, d := range g.teban.Directions() {
		r := ResultWin
		switch {
		case e.loser == NoDirection:
			r = ResultDraw
		case d == e.loser:
			r = ResultLose
		}
		g.teban.SetResult(d, r)
	}

	now := g.now()
	g.status, g.message, g.ended = StatusEnded, e.reason, &now
	g.moving = nil
	log.Debugw("game ended", "rule", g.ruleID, "cause", e.cause, "loser", e.loser)
	return nil
}

// Loser returns the losing seat of an ended game. Draws report NoDirection.
func (g *Game) Loser() (Direction, bool) {
	e, ok := g.kifu.Last().(*TerminalEntry)
	if !ok {
		return NoDirection, false
	}
	return e.Loser, true
}
