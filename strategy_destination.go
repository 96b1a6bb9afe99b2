package goshogi

import "fmt"

func init() {
	mustRegister(RoleDestination, "Normal", func(StrategyConfig) (any, error) { return normalDestination{}, nil })
	mustRegister(RoleDestination, "Free", func(StrategyConfig) (any, error) { return freeDestination{}, nil })
	mustRegister(RoleDestination, "Territory", func(StrategyConfig) (any, error) { return territoryDestination{}, nil })

	mustRegister(RoleMoveControl, "Normal", func(StrategyConfig) (any, error) { return normalMoveControl{}, nil })
	mustRegister(RoleMoveControl, "Freeze", func(cfg StrategyConfig) (any, error) {
		if len(cfg.Species) == 0 {
			return nil, fmt.Errorf("freeze needs at least one freezer species")
		}
		return freezeMoveControl{freezers: cfg.Species}, nil
	})

	mustRegister(RoleCaptureControl, "Normal", func(StrategyConfig) (any, error) { return normalCaptureControl{}, nil })
	mustRegister(RoleCaptureControl, "Protected", func(cfg StrategyConfig) (any, error) {
		return protectedCaptureControl{protected: cfg.Species}, nil
	})
}

// normalDestination forbids landing on an own piece.
type normalDestination struct{}

func (normalDestination) ExecuteBefore(g *Game, from, to XY) error {
	mover, target := g.ban.Get(from), g.ban.Get(to)
	if mover != nil && target != nil && mover.Direction == target.Direction {
		return fmt.Errorf("%w: %s holds an own piece", ErrIllegalMove, to)
	}
	return nil
}

func (normalDestination) ExecuteDrop(*Game, XY, Species, Direction) error { return nil }

// freeDestination lets a piece take its own side's pieces.
type freeDestination struct{}

func (freeDestination) ExecuteBefore(*Game, XY, XY) error               { return nil }
func (freeDestination) ExecuteDrop(*Game, XY, Species, Direction) error { return nil }

// territoryDestination only accepts drops in the dropper's own half.
type territoryDestination struct {
	normalDestination
}

func (territoryDestination) ExecuteDrop(g *Game, to XY, _ Species, d Direction) error {
	if !g.ban.InOwnHalf(d, to) {
		return fmt.Errorf("%w: %s is outside the own half", ErrIllegalMove, to)
	}
	return nil
}

type normalMoveControl struct{}

func (normalMoveControl) ExecuteBefore(*Game, XY) error { return nil }
func (normalMoveControl) ExecuteAfter(*Game, XY) error  { return nil }
func (normalMoveControl) ExecuteDrop(*Game, XY) error   { return nil }

// freezeMoveControl pins any piece standing next to an opposing freezer.
type freezeMoveControl struct {
	normalMoveControl
	freezers []Species
}

func (f freezeMoveControl) ExecuteBefore(g *Game, from XY) error {
	k := g.ban.Get(from)
	if k == nil {
		return nil
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			n := g.ban.Get(from.Add(dx, dy))
			if n == nil || n == k || n.Direction == k.Direction {
				continue
			}
			if containsSpecies(f.freezers, n.Species) {
				return fmt.Errorf("%w: %s is frozen by %s", ErrIllegalMove, from, n.XY)
			}
		}
	}
	return nil
}

type normalCaptureControl struct{}

func (normalCaptureControl) Execute(*Game, *Koma, *Koma) error { return nil }

// protectedCaptureControl makes the listed species immune to capture.
type protectedCaptureControl struct {
	protected []Species
}

func (p protectedCaptureControl) Execute(_ *Game, target, mover *Koma) error {
	if target == nil || mover == nil || target.Direction == mover.Direction {
		return nil
	}
	if containsSpecies(p.protected, target.Species) {
		return fmt.Errorf("%w: %s", ErrCaptureBlocked, target.Species)
	}
	return nil
}
