package goshogi

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"
)

// GameStatus is the lifecycle state of a Game.
type GameStatus int

const (
	StatusInitial GameStatus = iota
	StatusPlaying
	StatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	}
	return "initial"
}

// Option configures a Game.
type Option func(*Game)

// WithClock overrides the clock used for start and end dates.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Game is the datastructure for a single game. It owns the board, the pools,
// the turn state and the kifu, and runs every command through the strategy
// set of its rule. A Game is not safe for concurrent use.
type Game struct {
	rules  RuleSource
	rule   *Rule
	ruleID int

	status  GameStatus
	message string
	started *time.Time
	ended   *time.Time

	ban       *Ban
	strategy  *StrategySet
	mochigoma *Mochigoma
	teban     *Teban
	kifu      *Kifu

	// moving is the cell of a piece between the legs of a multi-leg move.
	moving *XY
	end    *gameEnd

	debug  string
	system json.RawMessage

	now         func() time.Time
	speculating int
}

type gameEnd struct {
	loser  Direction
	mark   Direction
	cause  EndCause
	kifu   string
	reason string
}

// NewGame builds a game in the INITIAL state using rule ruleID.
func NewGame(rules RuleSource, ruleID int, opts ...Option) (*Game, error) {
	g := &Game{rules: rules, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	if err := g.construct(ruleID); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) construct(ruleID int) error {
	rule, err := g.rules.Rule(ruleID)
	if err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	set, err := NewStrategySet(rule)
	if err != nil {
		return err
	}

	ban := NewBan(rule, set)
	for _, p := range rule.Init.Ban {
		if err := ban.SetAdd(NewXY(p.X, p.Y), p.Species, p.Direction); err != nil {
			return fmt.Errorf("rule %d: %w", ruleID, err)
		}
	}
	mochigoma := NewMochigoma(len(rule.Players))
	for _, h := range rule.Init.Mochigoma {
		if err := mochigoma.Add(h.Species, h.Direction, h.Count); err != nil {
			return fmt.Errorf("rule %d: %w", ruleID, err)
		}
	}

	g.rule, g.ruleID = rule, ruleID
	g.ban, g.strategy, g.mochigoma = ban, set, mochigoma
	g.teban = NewTeban(rule)
	g.kifu = &Kifu{}
	g.status, g.message = StatusInitial, ""
	g.started, g.ended = nil, nil
	g.moving, g.end = nil, nil

	log.Debugw("game constructed", "rule", ruleID, "name", rule.Name)
	return nil
}

// Reset rebuilds the game with another rule. It is refused while playing.
func (g *Game) Reset(ruleID int) error {
	if g.status == StatusPlaying {
		return ErrGameInProgress
	}
	return g.construct(ruleID)
}

// Init rebuilds the game with its current rule.
func (g *Game) Init() error {
	return g.Reset(g.ruleID)
}

// Start moves an INITIAL game to PLAYING.
func (g *Game) Start() error {
	if g.status != StatusInitial {
		return ErrAlreadyStarted
	}
	now := g.now()
	g.status = StatusPlaying
	g.started = &now
	log.Debugw("game started", "rule", g.ruleID)
	return nil
}

func (g *Game) ensurePlaying() error {
	switch g.status {
	case StatusEnded:
		return ErrGameEnded
	case StatusInitial:
		return ErrNotPlaying
	}
	return nil
}

func (g *Game) ensureNoMoving(from *XY) error {
	if g.moving != nil && (from == nil || !g.moving.Equals(*from)) {
		return fmt.Errorf("%w: piece on %s must finish first", ErrMoveInProgress, *g.moving)
	}
	return nil
}

// Rule is the rule in force.
func (g *Game) Rule() *Rule { return g.rule }

// RuleID is the id of the rule in force.
func (g *Game) RuleID() int { return g.ruleID }

// Status is the lifecycle state.
func (g *Game) Status() GameStatus { return g.status }

// Message describes how the game ended.
func (g *Game) Message() string { return g.message }

// IsPlaying reports whether commands are accepted.
func (g *Game) IsPlaying() bool { return g.status == StatusPlaying }

// IsEnded reports whether the game is over.
func (g *Game) IsEnded() bool { return g.status == StatusEnded }

// Ban is the board.
func (g *Game) Ban() *Ban { return g.ban }

// Mochigoma is the captured-piece pool.
func (g *Game) Mochigoma() *Mochigoma { return g.mochigoma }

// Teban is the turn state.
func (g *Game) Teban() *Teban { return g.teban }

// Kifu is the history.
func (g *Game) Kifu() *Kifu { return g.kifu }

// Strategy is the resolved strategy set.
func (g *Game) Strategy() *StrategySet { return g.strategy }

// Moving returns the cell of the piece that is between legs of a move.
func (g *Game) Moving() (XY, bool) {
	if g.moving == nil {
		return XY{}, false
	}
	return *g.moving, true
}

// Started is the time Start was called.
func (g *Game) Started() *time.Time { return g.started }

// Ended is the time the game ended.
func (g *Game) Ended() *time.Time { return g.ended }

// System returns the opaque data stored alongside the game.
func (g *Game) System() json.RawMessage { return g.system }

// SetSystem stores opaque data that is carried through serialization.
func (g *Game) SetSystem(raw json.RawMessage) { g.system = raw }

// Kyokumen is a textual key of the current position: board then pools.
func (g *Game) Kyokumen() string {
	return g.ban.String() + g.mochigoma.String()
}

// Hash is a short hex key of the current position.
func (g *Game) Hash() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(g.Kyokumen()))
	return fmt.Sprintf("%016x", h.Sum64())
}

// txn is an immutable copy of everything a command may touch. Commands
// restore it on failure and diff against it to build kifu entries.
type txn struct {
	ban        BanSnapshot
	pools      MochigomaSnapshot
	teban      tebanState
	kifuLen    int
	lastMoving bool
	moving     *XY
	end        *gameEnd
	status     GameStatus
	message    string
	ended      *time.Time
}

func (g *Game) begin() *txn {
	t := &txn{
		ban:        g.ban.Snapshot(),
		pools:      g.mochigoma.Snapshot(),
		teban:      g.teban.snapshot(),
		kifuLen:    g.kifu.Len(),
		lastMoving: g.kifu.LastMoving(),
		end:        g.end,
		status:     g.status,
		message:    g.message,
		ended:      g.ended,
	}
	if g.moving != nil {
		xy := *g.moving
		t.moving = &xy
	}
	return t
}

func (t *txn) restore(g *Game) {
	g.ban.Restore(t.ban)
	g.mochigoma.Restore(t.pools)
	g.teban.restore(t.teban)
	g.kifu.truncate(t.kifuLen)
	g.kifu.SetLastMoving(t.lastMoving)
	g.moving = t.moving
	g.end = t.end
	g.status, g.message, g.ended = t.status, t.message, t.ended
}

// atomically runs fn and undoes every change it made if it fails.
func (g *Game) atomically(fn func(t *txn) error) error {
	t := g.begin()
	if err := fn(t); err != nil {
		t.restore(g)
		return err
	}
	return nil
}
