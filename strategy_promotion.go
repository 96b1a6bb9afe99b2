package goshogi

import "fmt"

const defaultPromotionZone = 3

func init() {
	zone := func(cfg StrategyConfig) int {
		if cfg.Zone > 0 {
			return cfg.Zone
		}
		return defaultPromotionZone
	}
	mustRegister(RolePromotion, "Normal", func(cfg StrategyConfig) (any, error) {
		return zonePromotion{zone: zone(cfg)}, nil
	})
	mustRegister(RolePromotion, "Forced", func(cfg StrategyConfig) (any, error) {
		return zonePromotion{zone: zone(cfg), forced: true}, nil
	})
	mustRegister(RolePromotion, "None", func(StrategyConfig) (any, error) { return noPromotion{}, nil })

	mustRegister(RoleNifu, "Normal", func(cfg StrategyConfig) (any, error) {
		species := cfg.Species
		if len(species) == 0 {
			species = []Species{"fu"}
		}
		return normalNifu{species: species}, nil
	})
	mustRegister(RoleNifu, "None", func(StrategyConfig) (any, error) { return noNifu{}, nil })
}

// zonePromotion promotes pieces moving into, within or out of the last zone
// ranks. Promotion is optional unless forced is set or the piece would have
// no move left.
type zonePromotion struct {
	zone   int
	forced bool
}

func (p zonePromotion) eligible(g *Game, s Species, d Direction, to, from XY) bool {
	return g.rule.CanPromote(s) && (g.ban.InZone(d, to, p.zone) || g.ban.InZone(d, from, p.zone))
}

func (p zonePromotion) Execute(g *Game, to, from XY, _ *Koma, intent bool) (string, bool, error) {
	k := g.ban.Get(to)
	if k == nil {
		return "", false, nil
	}
	if k.Has(StatusMoving) || !p.eligible(g, k.Species, k.Direction, to, from) {
		if intent {
			return "", false, fmt.Errorf("%w: %s cannot promote here", ErrIllegalMove, k.Species)
		}
		return "", false, nil
	}

	dead := !g.ban.HasExit(k.Species, k.Direction, to)
	if intent || dead || p.forced {
		k.Species = g.rule.Promoted(k.Species, PromoteBack)
		return "成", true, nil
	}
	return "不成", false, nil
}

func (zonePromotion) ExecuteLegal(g *Game, to XY) error {
	k := g.ban.Get(to)
	if k != nil && !g.ban.HasExit(k.Species, k.Direction, to) {
		return fmt.Errorf("%w: %s would have no move on %s", ErrIllegalMove, k.Species, to)
	}
	return nil
}

func (p zonePromotion) ShouldAskPromotion(g *Game, to, from XY, _ bool, d Direction) bool {
	k := g.ban.Get(from)
	if k == nil || p.forced {
		return false
	}
	return p.eligible(g, k.Species, d, to, from) && g.ban.HasExit(k.Species, d, to)
}

type noPromotion struct{}

func (noPromotion) Execute(_ *Game, _, _ XY, _ *Koma, intent bool) (string, bool, error) {
	if intent {
		return "", false, fmt.Errorf("%w: promotion is not part of this rule", ErrIllegalMove)
	}
	return "", false, nil
}

func (noPromotion) ExecuteLegal(*Game, XY) error                           { return nil }
func (noPromotion) ShouldAskPromotion(*Game, XY, XY, bool, Direction) bool { return false }

// normalNifu forbids two pieces of a listed species with the same owner on
// one file. Files run along the owner's forward axis.
type normalNifu struct {
	species []Species
}

func (n normalNifu) Execute(g *Game, to XY) error {
	k := g.ban.Get(to)
	if k == nil || !containsSpecies(n.species, k.Species) {
		return nil
	}
	vertical := true
	switch g.rule.Facing(k.Direction) {
	case FacingLeft, FacingRight:
		vertical = false
	}
	count := 0
	for _, o := range g.ban.Pieces(k.Direction) {
		if o.Species != k.Species {
			continue
		}
		if (vertical && o.XY.X == to.X) || (!vertical && o.XY.Y == to.Y) {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("%w: %s on %s", ErrIllegalDoublePawn, k.Species, to)
	}
	return nil
}

type noNifu struct{}

func (noNifu) Execute(*Game, XY) error { return nil }
