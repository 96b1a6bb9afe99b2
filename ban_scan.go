package goshogi

// each visits every piece in board order, x then y.
func (b *Ban) each(fn func(*Koma)) {
	for _, col := range b.cells {
		for _, k := range col {
			if k != nil {
				fn(k)
			}
		}
	}
}

// trace lists the cells a piece of owner d standing on from reaches with m.
// The list ends at the first blocking piece, which is included so the caller
// can decide whether it may be captured.
func (b *Ban) trace(from XY, d Direction, m Movement) []XY {
	dx, dy := b.rule.Facing(d).Orient(m.DX, m.DY)
	if dx == 0 && dy == 0 {
		return nil
	}
	limit := m.Range
	if limit <= 0 {
		limit = max(b.Width(), b.Height())
	}

	var out []XY
	cur := from
	for i := 0; i < limit; i++ {
		cur = cur.Add(dx, dy)
		if !b.OnBoard(cur) {
			break
		}
		out = append(out, cur)
		occ := b.Get(cur)
		if occ == nil {
			continue
		}
		switch m.kind() {
		case MoveJump:
			continue
		case MovePierce:
			if occ.Direction != d {
				continue
			}
		}
		return out
	}
	return out
}

// Between returns the cells strictly between from and to when both lie on
// one line, stepping by the smallest integer vector. It returns nil
// otherwise.
func (b *Ban) Between(from, to XY) []XY {
	dx, dy := to.X-from.X, to.Y-from.Y
	g := gcd(abs(dx), abs(dy))
	if g <= 1 {
		return nil
	}
	sx, sy := dx/g, dy/g
	var out []XY
	for cur := from.Add(sx, sy); !cur.Equals(to); cur = cur.Add(sx, sy) {
		out = append(out, cur)
	}
	return out
}

// Depth is the rank of xy counted from the back edge of seat d, starting at
// 1, and the length of the board along that axis.
func (b *Ban) Depth(d Direction, xy XY) (depth, extent int) {
	switch b.rule.Facing(d) {
	case FacingDown:
		return xy.Y, b.Height()
	case FacingRight:
		return xy.X, b.Width()
	case FacingLeft:
		return b.Width() - xy.X + 1, b.Width()
	}
	return b.Height() - xy.Y + 1, b.Height()
}

// InZone reports whether xy lies within the last zone ranks of seat d.
func (b *Ban) InZone(d Direction, xy XY, zone int) bool {
	depth, extent := b.Depth(d, xy)
	return depth > extent-zone
}

// InOwnHalf reports whether xy lies in the half of the board nearest seat d.
func (b *Ban) InOwnHalf(d Direction, xy XY) bool {
	depth, extent := b.Depth(d, xy)
	return depth <= extent/2
}

// HasExit reports whether a piece of species s owned by d standing on xy has
// any movement that stays on the board.
func (b *Ban) HasExit(s Species, d Direction, xy XY) bool {
	p, ok := b.rule.Piece(s)
	if !ok {
		return false
	}
	f := b.rule.Facing(d)
	for _, m := range p.Moves {
		dx, dy := f.Orient(m.DX, m.DY)
		if (dx != 0 || dy != 0) && b.OnBoard(xy.Add(dx, dy)) {
			return true
		}
	}
	return false
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
