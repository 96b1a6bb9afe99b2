package goshogi

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Result is the outcome of one seat.
type Result int

const (
	ResultPending Result = iota
	ResultWin
	ResultLose
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultDraw:
		return "draw"
	}
	return "pending"
}

// Seat is one player slot in turn order.
type Seat struct {
	User   string
	Result Result
}

// Teban tracks whose turn it is. Seats are ordered by Direction and the turn
// counter only moves forward, except when rollback restores it.
type Teban struct {
	rule  *Rule
	seats []Seat
	now   Direction
	turn  int
}

// NewTeban creates the seats described by the rule. Handicap rules start with
// seat 1.
func NewTeban(rule *Rule) *Teban {
	t := &Teban{rule: rule, seats: make([]Seat, len(rule.Players))}
	if rule.Komaochi && len(t.seats) > 1 {
		t.now = 1
	}
	return t
}

// Get is the seat on turn.
func (t *Teban) Get() Direction { return t.now }

// Set moves the turn to d without touching the counter.
func (t *Teban) Set(d Direction) { t.now = d }

// Turn is the number of half-moves played.
func (t *Teban) Turn() int { return t.turn }

// SetTurn overwrites the counter.
func (t *Teban) SetTurn(n int) { t.turn = n }

// Count is the number of seats.
func (t *Teban) Count() int { return len(t.seats) }

// Directions lists every seat in turn order.
func (t *Teban) Directions() []Direction {
	out := make([]Direction, len(t.seats))
	for i := range t.seats {
		out[i] = Direction(i)
	}
	return out
}

// Valid reports whether d names a seat.
func (t *Teban) Valid(d Direction) bool {
	return d >= 0 && int(d) < len(t.seats)
}

// EnsureDirection fails unless d is on turn.
func (t *Teban) EnsureDirection(d Direction) error {
	if d != t.now {
		return fmt.Errorf("%w: seat %d, turn belongs to %d", ErrNotYourTurn, d, t.now)
	}
	return nil
}

// Rotate hands the turn to the next seat that has not lost and advances the
// counter.
func (t *Teban) Rotate() {
	n := len(t.seats)
	next := t.now
	for i := 1; i <= n; i++ {
		c := Direction((int(t.now) + i) % n)
		if t.seats[c].Result != ResultLose {
			next = c
			break
		}
	}
	t.now = next
	t.turn++
}

// Result returns the outcome of seat d.
func (t *Teban) Result(d Direction) Result {
	if !t.Valid(d) {
		return ResultPending
	}
	return t.seats[d].Result
}

// SetResult records the outcome of seat d.
func (t *Teban) SetResult(d Direction, r Result) {
	if t.Valid(d) {
		t.seats[d].Result = r
	}
}

// User returns the user seated at d.
func (t *Teban) User(d Direction) string {
	if !t.Valid(d) {
		return ""
	}
	return t.seats[d].User
}

// SetUser seats a user at d.
func (t *Teban) SetUser(d Direction, user string) {
	if t.Valid(d) {
		t.seats[d].User = user
	}
}

// Name is the seat name from the rule.
func (t *Teban) Name(d Direction) string {
	if t.Valid(d) && t.rule.Players[d].Name != "" {
		return t.rule.Players[d].Name
	}
	return fmt.Sprintf("seat %d", d)
}

// Mark is the notation prefix of a seat.
func (t *Teban) Mark(d Direction) string {
	if t.Valid(d) && t.rule.Players[d].Mark != "" {
		return t.rule.Players[d].Mark
	}
	return ""
}

// Shuffle randomly reassigns the seated users.
func (t *Teban) Shuffle(r *rand.Rand) {
	r.Shuffle(len(t.seats), func(i, j int) {
		t.seats[i].User, t.seats[j].User = t.seats[j].User, t.seats[i].User
	})
}

type tebanState struct {
	seats []Seat
	now   Direction
	turn  int
}

func (t *Teban) snapshot() tebanState {
	return tebanState{seats: append([]Seat(nil), t.seats...), now: t.now, turn: t.turn}
}

func (t *Teban) restore(s tebanState) {
	t.seats = append([]Seat(nil), s.seats...)
	t.now = s.now
	t.turn = s.turn
}
