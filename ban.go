package goshogi

import (
	"fmt"
	"strings"
)

// Ban is the board. Cells are addressed by 1-origin XY and hold at most one
// Koma. The board also carries the strategy set resolved for its rule.
type Ban struct {
	rule     *Rule
	cells    [][]*Koma
	strategy *StrategySet
}

// BanSnapshot is an immutable deep copy of every cell, indexed [x-1][y-1].
type BanSnapshot [][]*Koma

// KomaState is the serialized content of an occupied cell.
type KomaState struct {
	Species   Species    `json:"species"`
	Direction Direction  `json:"direction"`
	Status    KomaStatus `json:"status,omitempty"`
}

// CellDiff records the change of one cell. A nil side means empty.
type CellDiff struct {
	XY     XY         `json:"xy"`
	Before *KomaState `json:"before"`
	After  *KomaState `json:"after"`
}

// NewBan creates an empty board sized by the rule.
func NewBan(rule *Rule, strategy *StrategySet) *Ban {
	b := &Ban{rule: rule, strategy: strategy}
	b.cells = make([][]*Koma, rule.Width())
	for x := range b.cells {
		b.cells[x] = make([]*Koma, rule.Height())
	}
	return b
}

// Strategy is the strategy set in force on this board.
func (b *Ban) Strategy() *StrategySet { return b.strategy }

// Width is the number of files.
func (b *Ban) Width() int { return len(b.cells) }

// Height is the number of ranks.
func (b *Ban) Height() int {
	if len(b.cells) == 0 {
		return 0
	}
	return len(b.cells[0])
}

// OnBoard reports whether xy is inside the board.
func (b *Ban) OnBoard(xy XY) bool {
	return xy.X >= 1 && xy.Y >= 1 && xy.X <= b.Width() && xy.Y <= b.Height()
}

// Get returns the occupant of xy, nil when the cell is empty or off board.
func (b *Ban) Get(xy XY) *Koma {
	if !b.OnBoard(xy) {
		return nil
	}
	return b.cells[xy.X-1][xy.Y-1]
}

// Exists reports whether xy is occupied.
func (b *Ban) Exists(xy XY) bool {
	return b.Get(xy) != nil
}

// EnsureExists fails unless xy is an occupied cell.
func (b *Ban) EnsureExists(xy XY) error {
	if !b.OnBoard(xy) {
		return fmt.Errorf("%w: %s", ErrIllegalPosition, xy)
	}
	if b.Get(xy) == nil {
		return fmt.Errorf("%w: %s", ErrPositionEmpty, xy)
	}
	return nil
}

// EnsureNotExists fails unless xy is an empty cell.
func (b *Ban) EnsureNotExists(xy XY) error {
	if !b.OnBoard(xy) {
		return fmt.Errorf("%w: %s", ErrIllegalPosition, xy)
	}
	if b.Get(xy) != nil {
		return fmt.Errorf("%w: %s", ErrPositionOccupied, xy)
	}
	return nil
}

// Take removes and returns the occupant of xy.
func (b *Ban) Take(xy XY) (*Koma, error) {
	if err := b.EnsureExists(xy); err != nil {
		return nil, err
	}
	k := b.cells[xy.X-1][xy.Y-1]
	b.cells[xy.X-1][xy.Y-1] = nil
	return k, nil
}

// Set places k on an empty cell.
func (b *Ban) Set(xy XY, k *Koma) error {
	if err := b.EnsureNotExists(xy); err != nil {
		return err
	}
	k.XY = xy
	b.cells[xy.X-1][xy.Y-1] = k
	return nil
}

// SetAdd places a new piece on an empty cell.
func (b *Ban) SetAdd(xy XY, s Species, d Direction) error {
	return b.Set(xy, &Koma{Species: s, Direction: d})
}

// Add places a new piece, replacing any occupant.
func (b *Ban) Add(xy XY, s Species, d Direction) error {
	if !b.OnBoard(xy) {
		return fmt.Errorf("%w: %s", ErrIllegalPosition, xy)
	}
	b.cells[xy.X-1][xy.Y-1] = &Koma{Species: s, Direction: d, XY: xy}
	return nil
}

// Remove empties xy.
func (b *Ban) Remove(xy XY) {
	if b.OnBoard(xy) {
		b.cells[xy.X-1][xy.Y-1] = nil
	}
}

func (b *Ban) putState(xy XY, s *KomaState) {
	if !b.OnBoard(xy) {
		return
	}
	if s == nil {
		b.cells[xy.X-1][xy.Y-1] = nil
		return
	}
	b.cells[xy.X-1][xy.Y-1] = &Koma{Species: s.Species, Direction: s.Direction, Status: s.Status, XY: xy}
}

// Movements returns the movements of the piece on from that reach to.
func (b *Ban) Movements(from, to XY) []Movement {
	k := b.Get(from)
	if k == nil {
		return nil
	}
	p, _ := b.rule.Piece(k.Species)
	var out []Movement
	for _, m := range p.Moves {
		for _, xy := range b.trace(from, k.Direction, m) {
			if xy.Equals(to) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Targets returns every cell the piece on from can reach, in movement order.
func (b *Ban) Targets(from XY) []XY {
	k := b.Get(from)
	if k == nil {
		return nil
	}
	p, _ := b.rule.Piece(k.Species)
	seen := map[XY]bool{}
	var out []XY
	for _, m := range p.Moves {
		for _, xy := range b.trace(from, k.Direction, m) {
			if !seen[xy] {
				seen[xy] = true
				out = append(out, xy)
			}
		}
	}
	return out
}

// AttackersOf returns the pieces whose movement reaches target. An empty
// species or NoDirection owner matches any.
func (b *Ban) AttackersOf(target XY, s Species, owner Direction) []*Koma {
	var out []*Koma
	b.each(func(k *Koma) {
		if s != "" && k.Species != s {
			return
		}
		if owner != NoDirection && k.Direction != owner {
			return
		}
		if len(b.Movements(k.XY, target)) > 0 {
			out = append(out, k)
		}
	})
	return out
}

// IsAttacked reports whether any piece whose owner satisfies by reaches xy.
func (b *Ban) IsAttacked(xy XY, by func(Direction) bool) bool {
	attacked := false
	b.each(func(k *Koma) {
		if attacked || !by(k.Direction) {
			return
		}
		attacked = len(b.Movements(k.XY, xy)) > 0
	})
	return attacked
}

// Royal returns the royal pieces owned by d.
func (b *Ban) Royal(d Direction) []*Koma {
	var out []*Koma
	b.each(func(k *Koma) {
		if k.Direction != d {
			return
		}
		if p, ok := b.rule.Piece(k.Species); ok && p.Royal {
			out = append(out, k)
		}
	})
	return out
}

// Pieces returns the pieces owned by d in board order. NoDirection returns all.
func (b *Ban) Pieces(d Direction) []*Koma {
	var out []*Koma
	b.each(func(k *Koma) {
		if d == NoDirection || k.Direction == d {
			out = append(out, k)
		}
	})
	return out
}

// Snapshot deep-copies every cell.
func (b *Ban) Snapshot() BanSnapshot {
	snap := make(BanSnapshot, len(b.cells))
	for x, col := range b.cells {
		snap[x] = make([]*Koma, len(col))
		for y, k := range col {
			snap[x][y] = k.Clone()
		}
	}
	return snap
}

// Restore replaces the board contents with the snapshot.
func (b *Ban) Restore(snap BanSnapshot) {
	for x, col := range snap {
		for y, k := range col {
			b.cells[x][y] = k.Clone()
		}
	}
}

// Difference lists the cells that differ from before. to comes first, then
// from when given, then every other changed cell in board order.
func (b *Ban) Difference(before BanSnapshot, to XY, from *XY) []CellDiff {
	diff := func(xy XY) CellDiff {
		return CellDiff{XY: xy, Before: stateOf(before[xy.X-1][xy.Y-1]), After: stateOf(b.Get(xy))}
	}
	out := []CellDiff{diff(to)}
	if from != nil && !from.Equals(to) {
		out = append(out, diff(*from))
	}
	for x := 1; x <= b.Width(); x++ {
		for y := 1; y <= b.Height(); y++ {
			xy := NewXY(x, y)
			if xy.Equals(to) || (from != nil && xy.Equals(*from)) {
				continue
			}
			d := diff(xy)
			if !sameState(d.Before, d.After) {
				out = append(out, d)
			}
		}
	}
	return out
}

// MakePostfix returns the disambiguation suffix for moving from to to, empty
// when no other piece of the same species and owner reaches to.
func (b *Ban) MakePostfix(from, to XY) string {
	k := b.Get(from)
	if k == nil {
		return ""
	}
	var rivals []*Koma
	for _, a := range b.AttackersOf(to, k.Species, k.Direction) {
		if !a.XY.Equals(from) {
			rivals = append(rivals, a)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	f := b.rule.Facing(k.Direction)
	rel := func(p XY) (int, int) { return f.Unorient(p.X-to.X, p.Y-to.Y) }
	vertical := func(p XY) string {
		_, ry := rel(p)
		switch {
		case ry > 0:
			return "上"
		case ry < 0:
			return "引"
		}
		return "寄"
	}
	fx, _ := rel(from)
	horizontal := func(others []*Koma) string {
		right, left := true, true
		for _, o := range others {
			ox, _ := rel(o.XY)
			right = right && ox > fx
			left = left && ox < fx
		}
		switch {
		case right:
			return "右"
		case left:
			return "左"
		}
		return ""
	}

	vert := vertical(from)
	var sameVert []*Koma
	for _, r := range rivals {
		if vertical(r.XY) == vert {
			sameVert = append(sameVert, r)
		}
	}
	if len(sameVert) == 0 {
		return vert
	}
	if vert == "上" && fx == 0 {
		return "直"
	}
	if h := horizontal(rivals); h != "" {
		return h
	}
	if h := horizontal(sameVert); h != "" {
		return h + vert
	}
	return "(" + from.Format() + ")"
}

func (b *Ban) String() string {
	var s strings.Builder
	for y := 1; y <= b.Height(); y++ {
		for x := b.Width(); x >= 1; x-- {
			k := b.Get(NewXY(x, y))
			if k == nil {
				s.WriteString(" . ")
				continue
			}
			fmt.Fprintf(&s, " %d%s", k.Direction, k.Species)
		}
		s.WriteString("\n")
	}
	return s.String()
}

func stateOf(k *Koma) *KomaState {
	if k == nil {
		return nil
	}
	return &KomaState{Species: k.Species, Direction: k.Direction, Status: k.Status}
}

func sameState(a, b *KomaState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
