package goshogi

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Role names an extension point of the move pipeline.
type Role string

const (
	RoleDestination    Role = "Destination"
	RoleMoveControl    Role = "MoveControl"
	RoleMoveEffect     Role = "MoveEffect"
	RoleCaptureControl Role = "CaptureControl"
	RoleCapture        Role = "Capture"
	RolePromotion      Role = "Promotion"
	RoleNifu           Role = "Nifu"
	RoleJudge          Role = "Judge"
	RoleTebanRotation  Role = "TebanRotation"
	RoleMochigomaIO    Role = "MochigomaIO"
)

// Roles lists every role in pipeline order.
var Roles = []Role{
	RoleDestination, RoleMoveControl, RoleMoveEffect, RoleCaptureControl, RoleCapture,
	RolePromotion, RoleNifu, RoleJudge, RoleTebanRotation, RoleMochigomaIO,
}

// defaultStrategy is used when a rule does not bind a role.
var defaultStrategy = map[Role]string{
	RoleJudge: "Checkmate",
}

// Destination decides whether a piece may end a move or drop on a cell.
type Destination interface {
	ExecuteBefore(g *Game, from, to XY) error
	ExecuteDrop(g *Game, to XY, s Species, d Direction) error
}

// MoveControl applies side effects keyed to movement.
type MoveControl interface {
	ExecuteBefore(g *Game, from XY) error
	ExecuteAfter(g *Game, to XY) error
	ExecuteDrop(g *Game, to XY) error
}

// MoveEffect applies side effects keyed to position.
type MoveEffect interface {
	ExecuteBefore(g *Game, from XY) error
	ExecuteAfter(g *Game, to XY, captured *Koma) error
	ExecuteDrop(g *Game, to XY, id int) error
}

// CaptureControl validates a capture before anything moves. target is nil
// when the destination is empty.
type CaptureControl interface {
	Execute(g *Game, target, mover *Koma) error
}

// Capture removes the occupant of a cell and returns it, or nil when the
// cell is empty.
type Capture interface {
	Execute(g *Game, at XY, capturer Direction) (*Koma, error)
}

// Promotion decides and applies promotion.
type Promotion interface {
	// Execute runs after the piece landed on to. It returns the notation
	// suffix and whether the piece promoted.
	Execute(g *Game, to, from XY, captured *Koma, intent bool) (string, bool, error)
	// ExecuteLegal rejects a dropped piece that may not stand on to.
	ExecuteLegal(g *Game, to XY) error
	ShouldAskPromotion(g *Game, to, from XY, captured bool, d Direction) bool
}

// Nifu restricts pawn-like pieces sharing a file.
type Nifu interface {
	Execute(g *Game, to XY) error
}

// Judge detects the end of the game after a move or drop.
type Judge interface {
	Execute(g *Game, to XY, drop bool) error
}

// TebanRotation decides how the turn advances after a move.
type TebanRotation interface {
	Execute(g *Game, moved *Koma, promoted bool, captured *Koma, to, from XY) error
	CanPass() bool
}

// MochigomaIO moves pieces into and out of the pools.
type MochigomaIO interface {
	ExecuteOut(g *Game, s Species, d Direction) error
	ExecuteIn(g *Game, s Species, d Direction) error
}

// StrategySet is the resolved implementation of every role.
type StrategySet struct {
	Destination    Destination
	MoveControl    MoveControl
	MoveEffect     MoveEffect
	CaptureControl CaptureControl
	Capture        Capture
	Promotion      Promotion
	Nifu           Nifu
	Judge          Judge
	TebanRotation  TebanRotation
	MochigomaIO    MochigomaIO

	names map[Role]string
}

// Name returns the implementation name bound to role.
func (s *StrategySet) Name(role Role) string {
	return s.names[role]
}

// StrategyFactory builds one implementation from its rule parameters.
type StrategyFactory func(cfg StrategyConfig) (any, error)

var (
	strategyMu sync.RWMutex
	strategies map[Role]map[string]StrategyFactory

	// ErrDuplicateStrategy indicates a role already has an implementation with that name.
	ErrDuplicateStrategy = errors.New("strategy already registered")
)

// RegisterStrategy binds a factory to role and name. It is safe for
// concurrent use.
func RegisterStrategy(role Role, name string, f StrategyFactory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: %s/%q", ErrUnknownStrategy, role, name)
	}

	strategyMu.Lock()
	defer strategyMu.Unlock()
	if strategies == nil {
		strategies = map[Role]map[string]StrategyFactory{}
	}
	if strategies[role] == nil {
		strategies[role] = map[string]StrategyFactory{}
	}
	if _, ok := strategies[role][name]; ok {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateStrategy, role, name)
	}
	strategies[role][name] = f
	return nil
}

func mustRegister(role Role, name string, f StrategyFactory) {
	if err := RegisterStrategy(role, name, f); err != nil {
		panic(err)
	}
}

func strategyRegistered(role Role, name string) bool {
	strategyMu.RLock()
	defer strategyMu.RUnlock()
	_, ok := strategies[role][name]
	return ok
}

// RegisteredStrategies lists the implementation names of a role.
func RegisteredStrategies(role Role) []string {
	strategyMu.RLock()
	defer strategyMu.RUnlock()
	out := make([]string, 0, len(strategies[role]))
	for name := range strategies[role] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewStrategySet resolves every role of the rule once.
func NewStrategySet(rule *Rule) (*StrategySet, error) {
	set := &StrategySet{names: map[Role]string{}}
	for _, role := range Roles {
		cfg := rule.Strategy[role]
		if cfg.Name == "" {
			cfg.Name = defaultStrategy[role]
			if cfg.Name == "" {
				cfg.Name = "Normal"
			}
		}

		strategyMu.RLock()
		f := strategies[role][cfg.Name]
		strategyMu.RUnlock()
		if f == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownStrategy, role, cfg.Name)
		}
		impl, err := f(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", role, cfg.Name, err)
		}
		if err := set.bind(role, impl); err != nil {
			return nil, fmt.Errorf("%w: %s/%s", err, role, cfg.Name)
		}
		set.names[role] = cfg.Name
	}
	return set, nil
}

func (s *StrategySet) bind(role Role, impl any) error {
	ok := false
	switch role {
	case RoleDestination:
		s.Destination, ok = impl.(Destination)
	case RoleMoveControl:
		s.MoveControl, ok = impl.(MoveControl)
	case RoleMoveEffect:
		s.MoveEffect, ok = impl.(MoveEffect)
	case RoleCaptureControl:
		s.CaptureControl, ok = impl.(CaptureControl)
	case RoleCapture:
		s.Capture, ok = impl.(Capture)
	case RolePromotion:
		s.Promotion, ok = impl.(Promotion)
	case RoleNifu:
		s.Nifu, ok = impl.(Nifu)
	case RoleJudge:
		s.Judge, ok = impl.(Judge)
	case RoleTebanRotation:
		s.TebanRotation, ok = impl.(TebanRotation)
	case RoleMochigomaIO:
		s.MochigomaIO, ok = impl.(MochigomaIO)
	}
	if !ok {
		return fmt.Errorf("%w: implementation does not fit the role", ErrUnknownStrategy)
	}
	return nil
}

func containsSpecies(list []Species, s Species) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
