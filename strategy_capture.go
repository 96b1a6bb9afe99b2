package goshogi

import "fmt"

func init() {
	mustRegister(RoleCapture, "Normal", func(StrategyConfig) (any, error) { return normalCapture{}, nil })
	mustRegister(RoleCapture, "Discard", func(StrategyConfig) (any, error) { return discardCapture{}, nil })

	mustRegister(RoleMochigomaIO, "Normal", func(StrategyConfig) (any, error) { return normalMochigomaIO{}, nil })
	mustRegister(RoleMochigomaIO, "Disabled", func(StrategyConfig) (any, error) { return disabledMochigomaIO{}, nil })
}

// normalCapture demotes the captured piece and hands it to the capturer.
type normalCapture struct{}

func (normalCapture) Execute(g *Game, at XY, capturer Direction) (*Koma, error) {
	k := g.ban.Get(at)
	if k == nil {
		return nil, nil
	}
	g.ban.Remove(at)
	if err := g.strategy.MochigomaIO.ExecuteIn(g, g.rule.Promoted(k.Species, PromoteFront), capturer); err != nil {
		return nil, err
	}
	return k, nil
}

// discardCapture takes captured pieces out of play.
type discardCapture struct{}

func (discardCapture) Execute(g *Game, at XY, _ Direction) (*Koma, error) {
	k := g.ban.Get(at)
	if k == nil {
		return nil, nil
	}
	g.ban.Remove(at)
	return k, nil
}

type normalMochigomaIO struct{}

func (normalMochigomaIO) ExecuteOut(g *Game, s Species, d Direction) error {
	return g.mochigoma.Add(s, d, -1)
}

func (normalMochigomaIO) ExecuteIn(g *Game, s Species, d Direction) error {
	return g.mochigoma.Add(s, d, 1)
}

// disabledMochigomaIO never lets a piece out of a pool; captured pieces are
// dropped from play.
type disabledMochigomaIO struct{}

func (disabledMochigomaIO) ExecuteOut(_ *Game, s Species, _ Direction) error {
	return fmt.Errorf("%w: drops are disabled (%s)", ErrPieceNotAvailable, s)
}

func (disabledMochigomaIO) ExecuteIn(*Game, Species, Direction) error { return nil }
