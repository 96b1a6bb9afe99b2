package goshogi

import (
	"encoding/json"
	"fmt"
	"time"
)

// SerializationVersion is the format version written by Serialize.
const SerializationVersion = 1

// Serialization is the full persisted state of a Game.
type Serialization struct {
	Version int             `json:"version"`
	Status  StatusJSON      `json:"status"`
	RuleID  int             `json:"ruleid"`
	Teban   Direction       `json:"teban"`
	Turn    int             `json:"turn"`
	Date    DateJSON        `json:"date"`
	Ban     [][]*KomaState  `json:"ban"`
	Moving  *MovingJSON     `json:"moving"`
	Players []PlayerJSON    `json:"players"`
	Debug   string          `json:"debug,omitempty"`
	System  json.RawMessage `json:"system,omitempty"`
	Kifu    *Kifu           `json:"kifu"`
}

// StatusJSON is the serialized lifecycle state.
type StatusJSON struct {
	Num     GameStatus `json:"num"`
	Message string     `json:"message"`
}

// DateJSON holds the start and end times.
type DateJSON struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// MovingJSON is the piece between legs of a multi-leg move.
type MovingJSON struct {
	XY     XY         `json:"xy"`
	Status KomaStatus `json:"status"`
}

// PlayerJSON is one seat.
type PlayerJSON struct {
	User      string          `json:"user"`
	Mochigoma map[Species]int `json:"mochigoma"`
	Result    Result          `json:"result"`
}

// Serialize captures the game state. The result shares the kifu with the
// game; marshal it before mutating the game again.
func (g *Game) Serialize() *Serialization {
	s := &Serialization{
		Version: SerializationVersion,
		Status:  StatusJSON{Num: g.status, Message: g.message},
		RuleID:  g.ruleID,
		Teban:   g.teban.Get(),
		Turn:    g.teban.Turn(),
		Date:    DateJSON{Start: g.started, End: g.ended},
		Debug:   g.debug,
		System:  g.system,
		Kifu:    g.kifu,
	}

	s.Ban = make([][]*KomaState, g.ban.Width())
	for x := range s.Ban {
		s.Ban[x] = make([]*KomaState, g.ban.Height())
		for y := range s.Ban[x] {
			s.Ban[x][y] = stateOf(g.ban.Get(NewXY(x+1, y+1)))
		}
	}

	if g.moving != nil {
		m := &MovingJSON{XY: *g.moving}
		if k := g.ban.Get(*g.moving); k != nil {
			m.Status = k.Status
		}
		s.Moving = m
	}

	for _, d := range g.teban.Directions() {
		s.Players = append(s.Players, PlayerJSON{
			User:      g.teban.User(d),
			Mochigoma: g.mochigoma.Hand(d),
			Result:    g.teban.Result(d),
		})
	}
	return s
}

// MarshalJSON implements json.Marshaler.
func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Serialize())
}

// Deserialize rebuilds a game from its serialized state.
func Deserialize(rules RuleSource, s *Serialization, opts ...Option) (*Game, error) {
	if s.Version > SerializationVersion {
		return nil, fmt.Errorf("unsupported serialization version %d", s.Version)
	}
	g, err := NewGame(rules, s.RuleID, opts...)
	if err != nil {
		return nil, err
	}

	if len(s.Ban) != g.ban.Width() {
		return nil, fmt.Errorf("%w: board has %d files, rule wants %d", ErrIllegalPosition, len(s.Ban), g.ban.Width())
	}
	for x, col := range s.Ban {
		if len(col) != g.ban.Height() {
			return nil, fmt.Errorf("%w: file %d has %d ranks, rule wants %d", ErrIllegalPosition, x+1, len(col), g.ban.Height())
		}
		for y, k := range col {
			if k != nil && !g.teban.Valid(k.Direction) {
				return nil, fmt.Errorf("%w: piece owner %d on %d,%d", ErrIllegalPosition, k.Direction, x+1, y+1)
			}
			g.ban.putState(NewXY(x+1, y+1), k)
		}
	}

	if len(s.Players) > g.teban.Count() {
		return nil, fmt.Errorf("%w: %d players for %d seats", ErrIllegalPosition, len(s.Players), g.teban.Count())
	}
	g.mochigoma = NewMochigoma(g.teban.Count())
	for i, p := range s.Players {
		d := Direction(i)
		g.teban.SetUser(d, p.User)
		g.teban.SetResult(d, p.Result)
		for sp, n := range p.Mochigoma {
			if n < 0 {
				return nil, fmt.Errorf("%w: negative count for %s", ErrIllegalPosition, sp)
			}
			g.mochigoma.Set(sp, d, n)
		}
	}

	if !g.teban.Valid(s.Teban) {
		return nil, fmt.Errorf("%w: no seat %d", ErrIllegalPosition, s.Teban)
	}
	g.teban.Set(s.Teban)
	g.teban.SetTurn(s.Turn)
	g.status, g.message = s.Status.Num, s.Status.Message
	g.started, g.ended = s.Date.Start, s.Date.End

	if s.Moving != nil {
		xy := s.Moving.XY
		k := g.ban.Get(xy)
		if k == nil {
			return nil, fmt.Errorf("%w: moving piece missing on %s", ErrIllegalPosition, xy)
		}
		k.Status = s.Moving.Status
		g.moving = &xy
	}
	if s.Kifu != nil {
		g.kifu = s.Kifu
	}
	g.debug, g.system = s.Debug, s.System
	return g, nil
}

// UnmarshalGame decodes JSON produced by MarshalJSON.
func UnmarshalGame(rules RuleSource, data []byte, opts ...Option) (*Game, error) {
	var s Serialization
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return Deserialize(rules, &s, opts...)
}

// Clone returns an independent deep copy made by a full serialization round
// trip.
func (g *Game) Clone() (*Game, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return UnmarshalGame(g.rules, data, WithClock(g.now))
}
