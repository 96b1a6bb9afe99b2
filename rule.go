package goshogi

import (
	"fmt"
	"sort"
)

// MoveType classifies how a movement travels.
type MoveType string

const (
	// MoveStep slides along the vector and is blocked by any piece in between.
	MoveStep MoveType = "step"
	// MoveJump leaps straight to the target ignoring intervening cells.
	MoveJump MoveType = "jump"
	// MovePierce slides through occupied cells and captures everything on the way.
	MovePierce MoveType = "pierce"
	// MovePartial is one leg of a multi-leg move. The piece keeps the turn
	// afterwards when the rotation strategy supports it.
	MovePartial MoveType = "partial"
)

// Movement is one vector a piece may move along. Vectors are written for a
// seat facing up the board (forward is DY < 0).
type Movement struct {
	DX     int      `json:"dx" yaml:"dx"`
	DY     int      `json:"dy" yaml:"dy"`
	Range  int      `json:"range,omitempty" yaml:"range,omitempty"` // 0 means unlimited
	Type   MoveType `json:"type,omitempty" yaml:"type,omitempty"`
	NoPass bool     `json:"nopass,omitempty" yaml:"nopass,omitempty"`
}

func (m Movement) kind() MoveType {
	if m.Type == "" {
		return MoveStep
	}
	return m.Type
}

// Facing is the board direction a seat advances towards.
type Facing string

const (
	FacingUp    Facing = "up"
	FacingDown  Facing = "down"
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// Orient rotates a vector written for FacingUp into this facing.
func (f Facing) Orient(dx, dy int) (int, int) {
	switch f {
	case FacingDown:
		return -dx, -dy
	case FacingRight:
		return -dy, dx
	case FacingLeft:
		return dy, -dx
	}
	return dx, dy
}

// Unorient is the inverse of Orient.
func (f Facing) Unorient(dx, dy int) (int, int) {
	switch f {
	case FacingDown:
		return -dx, -dy
	case FacingRight:
		return dy, -dx
	case FacingLeft:
		return -dy, dx
	}
	return dx, dy
}

// PromotionMode selects the direction of a promotion table lookup.
type PromotionMode int

const (
	// PromoteBack maps an original species to its promoted form.
	PromoteBack PromotionMode = iota
	// PromoteFront maps a promoted species back to its original form.
	PromoteFront
	// PromoteFlip maps in whichever direction applies.
	PromoteFlip
)

// PlayerRule is per-seat rule metadata.
type PlayerRule struct {
	Name   string `json:"name" yaml:"name"`
	Mark   string `json:"mark" yaml:"mark"`
	Facing Facing `json:"facing" yaml:"facing"`
}

// PieceRule describes a species.
type PieceRule struct {
	Name      string     `json:"name" yaml:"name"`
	ShortName string     `json:"shortname,omitempty" yaml:"shortname,omitempty"`
	Moves     []Movement `json:"moves" yaml:"moves"`
	Royal     bool       `json:"royal,omitempty" yaml:"royal,omitempty"`
}

// Placement puts one piece on the initial board.
type Placement struct {
	X         int       `json:"x" yaml:"x"`
	Y         int       `json:"y" yaml:"y"`
	Direction Direction `json:"direction" yaml:"direction"`
	Species   Species   `json:"species" yaml:"species"`
}

// HandPlacement puts pieces into a seat's initial pool.
type HandPlacement struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Species   Species   `json:"species" yaml:"species"`
	Count     int       `json:"count" yaml:"count"`
}

// InitialPosition is the starting board and pools.
type InitialPosition struct {
	Ban       []Placement     `json:"ban" yaml:"ban"`
	Mochigoma []HandPlacement `json:"mochigoma,omitempty" yaml:"mochigoma,omitempty"`
}

// StrategyConfig binds a role to a named implementation with its parameters.
type StrategyConfig struct {
	Name    string    `json:"name" yaml:"name"`
	Species []Species `json:"species,omitempty" yaml:"species,omitempty"`
	Zone    int       `json:"zone,omitempty" yaml:"zone,omitempty"`
}

// Rule is the full configuration of one variant.
type Rule struct {
	ID       int                     `json:"id" yaml:"id"`
	Name     string                  `json:"name" yaml:"name"`
	Size     [2]int                  `json:"size" yaml:"size"`
	Players  []PlayerRule            `json:"players" yaml:"players"`
	Komaochi bool                    `json:"komaochi,omitempty" yaml:"komaochi,omitempty"`
	Pieces   map[Species]PieceRule   `json:"pieces" yaml:"pieces"`
	Nari     map[Species]Species     `json:"nari,omitempty" yaml:"nari,omitempty"`
	Init     InitialPosition         `json:"init" yaml:"init"`
	Strategy map[Role]StrategyConfig `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// Width is the number of files.
func (r *Rule) Width() int { return r.Size[0] }

// Height is the number of ranks.
func (r *Rule) Height() int { return r.Size[1] }

// Piece returns the rule data of a species.
func (r *Rule) Piece(s Species) (PieceRule, bool) {
	p, ok := r.Pieces[s]
	return p, ok
}

// ShortName is the notation name of a species.
func (r *Rule) ShortName(s Species) string {
	p, ok := r.Pieces[s]
	if !ok {
		return string(s)
	}
	if p.ShortName != "" {
		return p.ShortName
	}
	if p.Name != "" {
		return p.Name
	}
	return string(s)
}

// Promoted looks a species up in the promotion table.
func (r *Rule) Promoted(s Species, mode PromotionMode) Species {
	for _, name := range r.nariKeys() {
		value := r.Nari[name]
		if (mode == PromoteFront || mode == PromoteFlip) && s == value {
			return name
		}
		if (mode == PromoteBack || mode == PromoteFlip) && s == name {
			if value == "" {
				return name
			}
			return value
		}
	}
	return s
}

// CanPromote reports whether s has a promoted form.
func (r *Rule) CanPromote(s Species) bool {
	v, ok := r.Nari[s]
	return ok && v != "" && v != s
}

// IsPromoted reports whether s is the promoted form of another species.
func (r *Rule) IsPromoted(s Species) bool {
	for k, v := range r.Nari {
		if v == s && k != s {
			return true
		}
	}
	return false
}

// Facing returns the facing of a seat.
func (r *Rule) Facing(d Direction) Facing {
	if d < 0 || int(d) >= len(r.Players) || r.Players[d].Facing == "" {
		if d == 1 {
			return FacingDown
		}
		return FacingUp
	}
	return r.Players[d].Facing
}

// Validate checks the internal consistency of the rule.
func (r *Rule) Validate() error {
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("rule %d: invalid size %v", r.ID, r.Size)
	}
	if len(r.Players) == 0 {
		return fmt.Errorf("rule %d: no players", r.ID)
	}
	for _, p := range r.Init.Ban {
		if p.X < 1 || p.Y < 1 || p.X > r.Width() || p.Y > r.Height() {
			return fmt.Errorf("rule %d: placement %d,%d out of board", r.ID, p.X, p.Y)
		}
		if _, ok := r.Pieces[p.Species]; !ok {
			return fmt.Errorf("rule %d: unknown species %q", r.ID, p.Species)
		}
		if p.Direction < 0 || int(p.Direction) >= len(r.Players) {
			return fmt.Errorf("rule %d: placement owner %d is not a seat", r.ID, p.Direction)
		}
	}
	for _, h := range r.Init.Mochigoma {
		if h.Count < 0 {
			return fmt.Errorf("rule %d: negative hand count for %q", r.ID, h.Species)
		}
	}
	for role, cfg := range r.Strategy {
		if cfg.Name != "" && !strategyRegistered(role, cfg.Name) {
			return fmt.Errorf("%w: %s/%s", ErrUnknownStrategy, role, cfg.Name)
		}
	}
	return nil
}

func (r *Rule) nariKeys() []Species {
	keys := make([]Species, 0, len(r.Nari))
	for k := range r.Nari {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// RuleSource supplies rule configurations by id.
type RuleSource interface {
	Rule(id int) (*Rule, error)
}

// RuleBook is an in-memory RuleSource.
type RuleBook map[int]*Rule

// Rule implements RuleSource.
func (b RuleBook) Rule(id int) (*Rule, error) {
	r, ok := b[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, id)
	}
	return r, nil
}

// IDs lists the rule ids in ascending order.
func (b RuleBook) IDs() []int {
	ids := make([]int, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
