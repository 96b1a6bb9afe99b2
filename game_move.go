package goshogi

import "fmt"

// Move moves the piece on from to to. promote is the promotion intent and
// asserted, when non-nil, is the seat the caller claims to act for. A failed
// move leaves the game untouched.
func (g *Game) Move(from, to XY, promote bool, asserted *Direction) error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	return g.atomically(func(t *txn) error {
		return g.move(t, from, to, promote, asserted)
	})
}

func (g *Game) move(t *txn, from, to XY, promote bool, asserted *Direction) error {
	if err := g.ban.EnsureExists(from); err != nil {
		return err
	}
	if !g.ban.OnBoard(to) {
		return fmt.Errorf("%w: %s", ErrIllegalPosition, to)
	}
	k := g.ban.Get(from)
	owner := k.Direction
	if asserted != nil && *asserted != owner {
		return fmt.Errorf("%w: %s belongs to seat %d", ErrWrongTurn, from, owner)
	}
	if err := g.teban.EnsureDirection(owner); err != nil {
		return err
	}

	movements := g.ban.Movements(from, to)
	if len(movements) == 0 {
		return fmt.Errorf("%w: %s cannot reach %s from %s", ErrIllegalMove, k.Species, to, from)
	}
	if err := g.ensureNoMoving(&from); err != nil {
		return err
	}

	s := g.strategy
	if err := s.Destination.ExecuteBefore(g, from, to); err != nil {
		return err
	}
	notation := g.teban.Mark(owner) + g.destinationText(to) + g.rule.ShortName(k.Species) + g.ban.MakePostfix(from, to)

	if err := s.MoveControl.ExecuteBefore(g, from); err != nil {
		return err
	}
	if err := s.MoveEffect.ExecuteBefore(g, from); err != nil {
		return err
	}
	if err := s.CaptureControl.Execute(g, g.ban.Get(to), k); err != nil {
		return err
	}

	picked, err := g.ban.Take(from)
	if err != nil {
		return err
	}
	captured, err := s.Capture.Execute(g, to, owner)
	if err != nil {
		return err
	}
	if pierces(movements) {
		for _, xy := range g.ban.Between(from, to) {
			target := g.ban.Get(xy)
			if target == nil {
				continue
			}
			if err := s.CaptureControl.Execute(g, target, picked); err != nil {
				return err
			}
			if _, err := s.Capture.Execute(g, xy, owner); err != nil {
				return err
			}
		}
	}

	if err := g.ban.Set(to, picked); err != nil {
		return err
	}
	picked.ChangeStatus(movements, captured)

	suffix, promoted, err := s.Promotion.Execute(g, to, from, captured, promote)
	if err != nil {
		return err
	}
	if err := s.MoveEffect.ExecuteAfter(g, to, captured); err != nil {
		return err
	}
	if err := s.MoveControl.ExecuteAfter(g, to); err != nil {
		return err
	}
	if err := s.Nifu.Execute(g, to); err != nil {
		return err
	}
	if err := s.Judge.Execute(g, to, false); err != nil {
		return err
	}

	err = g.kifu.Add(&MoveEntry{
		Direction: owner,
		Turn:      t.teban.turn,
		From:      &from,
		To:        &to,
		Species:   t.ban[from.X-1][from.Y-1].Species,
		Promote:   promoted,
		Cells:     g.ban.Difference(t.ban, to, &from),
		Pools:     g.mochigoma.Difference(t.pools),
		Notation:  notation + suffix,
	})
	if err != nil {
		return err
	}

	// the judge may have replaced board pieces while probing replies
	if err := s.TebanRotation.Execute(g, g.ban.Get(to), promoted, captured, to, from); err != nil {
		return err
	}
	return g.finalize()
}

// Put drops a piece of species s from seat d's pool onto to. id tells apart
// otherwise identical pooled pieces for variants that care.
func (g *Game) Put(to XY, s Species, d Direction, id int) error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	return g.atomically(func(t *txn) error {
		return g.put(t, to, s, d, id)
	})
}

func (g *Game) put(t *txn, to XY, species Species, d Direction, id int) error {
	if err := g.teban.EnsureDirection(d); err != nil {
		return err
	}
	if err := g.ensureNoMoving(nil); err != nil {
		return err
	}
	if _, ok := g.rule.Piece(species); !ok {
		return fmt.Errorf("%w: unknown species %q", ErrPieceNotAvailable, species)
	}

	s := g.strategy
	if err := s.Destination.ExecuteDrop(g, to, species, d); err != nil {
		return err
	}
	notation := g.dropNotation(to, species, d)

	if err := s.MochigomaIO.ExecuteOut(g, species, d); err != nil {
		return err
	}
	if err := g.ban.EnsureNotExists(to); err != nil {
		return err
	}
	if err := g.ban.SetAdd(to, species, d); err != nil {
		return err
	}
	if err := s.Promotion.ExecuteLegal(g, to); err != nil {
		return err
	}
	if err := s.MoveEffect.ExecuteDrop(g, to, id); err != nil {
		return err
	}
	if err := s.MoveControl.ExecuteDrop(g, to); err != nil {
		return err
	}
	if err := s.Nifu.Execute(g, to); err != nil {
		return err
	}
	if err := s.Judge.Execute(g, to, true); err != nil {
		return err
	}

	err := g.kifu.Add(&MoveEntry{
		Direction: d,
		Turn:      t.teban.turn,
		To:        &to,
		Species:   species,
		Drop:      true,
		Cells:     g.ban.Difference(t.ban, to, nil),
		Pools:     g.mochigoma.Difference(t.pools),
		Notation:  notation,
	})
	if err != nil {
		return err
	}

	g.teban.Rotate()
	return g.finalize()
}

// Pass ends the turn without moving, or ends a multi-leg move after its
// first leg.
func (g *Game) Pass(asserted *Direction) error {
	if err := g.ensurePlaying(); err != nil {
		return err
	}
	return g.atomically(func(*txn) error {
		if asserted != nil {
			if err := g.teban.EnsureDirection(*asserted); err != nil {
				return err
			}
		}

		if g.moving == nil {
			if !g.strategy.TebanRotation.CanPass() {
				return ErrPassNotAllowed
			}
			d := g.teban.Get()
			err := g.kifu.Add(&MoveEntry{
				Direction: d,
				Turn:      g.teban.Turn(),
				Pass:      true,
				Notation:  g.teban.Mark(d) + "パス",
			})
			if err != nil {
				return err
			}
			g.teban.Rotate()
			return nil
		}

		k := g.ban.Get(*g.moving)
		if k != nil && k.Has(StatusNoPass) {
			return fmt.Errorf("%w: piece on %s", ErrMustContinueMove, *g.moving)
		}
		if k != nil {
			k.Status &^= StatusMoving | StatusNoPass | StatusCaptured
		}
		g.kifu.SetLastMoving(false)
		g.moving = nil
		g.teban.Rotate()
		return nil
	})
}

// ShouldAskPromotion reports whether moving from to to leaves promotion to
// the player's choice.
func (g *Game) ShouldAskPromotion(to, from XY) bool {
	k := g.ban.Get(from)
	if k == nil {
		return false
	}
	return g.strategy.Promotion.ShouldAskPromotion(g, to, from, g.ban.Exists(to), k.Direction)
}

func (g *Game) destinationText(to XY) string {
	if last := g.kifu.LastMove(); last != nil && last.To.Equals(to) {
		return "同"
	}
	return to.Format()
}

func (g *Game) dropNotation(to XY, s Species, d Direction) string {
	text := g.teban.Mark(d) + to.Format() + g.rule.ShortName(s)
	// a piece on the board could also reach to, so say it was dropped
	if len(g.ban.AttackersOf(to, s, d)) > 0 {
		text += "打"
	}
	return text
}

func pierces(movements []Movement) bool {
	for _, m := range movements {
		if m.kind() == MovePierce {
			return true
		}
	}
	return false
}
