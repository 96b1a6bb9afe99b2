package goshogi

func init() {
	mustRegister(RoleMoveEffect, "Normal", func(StrategyConfig) (any, error) { return normalMoveEffect{}, nil })
	mustRegister(RoleMoveEffect, "Othello", func(StrategyConfig) (any, error) { return othelloMoveEffect{}, nil })
}

type normalMoveEffect struct{}

func (normalMoveEffect) ExecuteBefore(*Game, XY) error       { return nil }
func (normalMoveEffect) ExecuteAfter(*Game, XY, *Koma) error { return nil }
func (normalMoveEffect) ExecuteDrop(*Game, XY, int) error    { return nil }

// othelloMoveEffect turns over opposing pieces enclosed in a straight line
// between the arriving piece and another piece of the same owner.
type othelloMoveEffect struct {
	normalMoveEffect
}

func (o othelloMoveEffect) ExecuteAfter(g *Game, to XY, _ *Koma) error {
	o.flip(g, to)
	return nil
}

func (o othelloMoveEffect) ExecuteDrop(g *Game, to XY, _ int) error {
	o.flip(g, to)
	return nil
}

func (othelloMoveEffect) flip(g *Game, to XY) {
	k := g.ban.Get(to)
	if k == nil {
		return
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			var line []*Koma
			for cur := to.Add(dx, dy); ; cur = cur.Add(dx, dy) {
				o := g.ban.Get(cur)
				if o == nil {
					line = nil
					break
				}
				if o.Direction == k.Direction {
					break
				}
				line = append(line, o)
			}
			for _, o := range line {
				o.Direction = k.Direction
			}
		}
	}
}
