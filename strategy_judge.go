package goshogi

import "fmt"

func init() {
	mustRegister(RoleJudge, "Checkmate", func(cfg StrategyConfig) (any, error) {
		species := cfg.Species
		if len(species) == 0 {
			species = []Species{"fu"}
		}
		return checkmateJudge{dropMate: species}, nil
	})
	mustRegister(RoleJudge, "Capture", func(StrategyConfig) (any, error) { return captureJudge{}, nil })
	mustRegister(RoleJudge, "None", func(StrategyConfig) (any, error) { return noJudge{}, nil })

	mustRegister(RoleTebanRotation, "Normal", func(StrategyConfig) (any, error) { return normalRotation{}, nil })
	mustRegister(RoleTebanRotation, "Passable", func(StrategyConfig) (any, error) { return normalRotation{passable: true}, nil })
	mustRegister(RoleTebanRotation, "MultiStep", func(StrategyConfig) (any, error) { return multiStepRotation{}, nil })
}

// checkmateJudge rejects moves that leave the mover's royal piece attacked
// and ends the game when an opponent has no legal reply. Dropping one of
// dropMate to give mate is illegal.
type checkmateJudge struct {
	dropMate []Species
}

func (j checkmateJudge) Execute(g *Game, to XY, drop bool) error {
	k := g.ban.Get(to)
	if k == nil || k.Has(StatusMoving) {
		return nil
	}
	if g.InCheck(k.Direction) {
		return fmt.Errorf("%w: royal piece left in check", ErrIllegalMove)
	}
	if g.speculating > 0 {
		return nil
	}

	for _, d := range g.opponents(k.Direction) {
		if g.hasLegalReply(d) {
			continue
		}
		if drop && containsSpecies(j.dropMate, k.Species) && g.InCheck(d) {
			return fmt.Errorf("%w: mate by dropping %s", ErrIllegalMove, k.Species)
		}
		return g.RegisterEnd(d, d, EndCheckmate, "詰み", fmt.Sprintf("%sの負け", g.teban.Name(d)))
	}
	return nil
}

// captureJudge ends the game when a seat has lost every royal piece it
// started with.
type captureJudge struct{}

func (captureJudge) Execute(g *Game, to XY, _ bool) error {
	k := g.ban.Get(to)
	if k == nil {
		return nil
	}
	for _, d := range g.opponents(k.Direction) {
		if g.startsWithRoyal(d) && len(g.ban.Royal(d)) == 0 {
			return g.RegisterEnd(d, d, EndCapture, "玉取り", fmt.Sprintf("%sの玉が取られました", g.teban.Name(d)))
		}
	}
	return nil
}

type noJudge struct{}

func (noJudge) Execute(*Game, XY, bool) error { return nil }

// normalRotation always hands the turn on.
type normalRotation struct {
	passable bool
}

func (normalRotation) Execute(g *Game, moved *Koma, _ bool, _ *Koma, _, _ XY) error {
	if moved != nil {
		moved.Status &^= StatusMoving | StatusNoPass | StatusCaptured
	}
	g.moving = nil
	g.teban.Rotate()
	return nil
}

func (r normalRotation) CanPass() bool { return r.passable }

// multiStepRotation keeps the turn while the moved piece is between legs.
type multiStepRotation struct{}

func (multiStepRotation) Execute(g *Game, moved *Koma, _ bool, _ *Koma, _, _ XY) error {
	if moved != nil && moved.Has(StatusMoving) {
		xy := moved.XY
		g.moving = &xy
		g.kifu.SetLastMoving(true)
		return nil
	}
	g.moving = nil
	g.teban.Rotate()
	return nil
}

func (multiStepRotation) CanPass() bool { return false }
