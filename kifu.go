package goshogi

import (
	"encoding/json"
	"fmt"
)

// EndCause says why a game ended.
type EndCause string

const (
	EndResign    EndCause = "resign"
	EndDraw      EndCause = "draw"
	EndCheckmate EndCause = "checkmate"
	EndCapture   EndCause = "capture"
)

// Entry is one record of the kifu: a *MoveEntry or a *TerminalEntry.
type Entry interface {
	// Seat is the seat on turn when the entry was recorded.
	Seat() Direction
	// TurnBefore is the turn counter before the entry was recorded.
	TurnBefore() int
	Text() string
}

// MoveEntry is a move, drop or pass stored as a structural diff.
type MoveEntry struct {
	Direction Direction  `json:"direction"`
	Turn      int        `json:"turn"`
	From      *XY        `json:"from,omitempty"`
	To        *XY        `json:"to,omitempty"`
	Species   Species    `json:"species,omitempty"`
	Promote   bool       `json:"promote,omitempty"`
	Drop      bool       `json:"drop,omitempty"`
	Pass      bool       `json:"pass,omitempty"`
	Cells     []CellDiff `json:"cells,omitempty"`
	Pools     []PoolDiff `json:"pools,omitempty"`
	Notation  string     `json:"notation"`
	Moving    bool       `json:"moving,omitempty"`
}

// Seat implements Entry.
func (e *MoveEntry) Seat() Direction { return e.Direction }

// TurnBefore implements Entry.
func (e *MoveEntry) TurnBefore() int { return e.Turn }

// Text implements Entry.
func (e *MoveEntry) Text() string { return e.Notation }

// TerminalEntry marks the end of the game.
type TerminalEntry struct {
	Loser     Direction `json:"loser"`
	Direction Direction `json:"direction"`
	Turn      int       `json:"turn"`
	Cause     EndCause  `json:"cause"`
	Reason    string    `json:"reason"`
	Notation  string    `json:"notation"`
}

// Seat implements Entry.
func (e *TerminalEntry) Seat() Direction { return e.Direction }

// TurnBefore implements Entry.
func (e *TerminalEntry) TurnBefore() int { return e.Turn }

// Text implements Entry.
func (e *TerminalEntry) Text() string { return e.Notation }

// Kifu is the ordered history. Entries are only removed from the tail and
// nothing may follow a TerminalEntry.
type Kifu struct {
	entries []Entry
}

// Len is the number of entries.
func (k *Kifu) Len() int { return len(k.entries) }

// Get returns entry i, nil when out of range.
func (k *Kifu) Get(i int) Entry {
	if i < 0 || i >= len(k.entries) {
		return nil
	}
	return k.entries[i]
}

// Last returns the tail entry, nil when empty.
func (k *Kifu) Last() Entry { return k.Get(len(k.entries) - 1) }

// Entries returns a copy of the entry list.
func (k *Kifu) Entries() []Entry {
	return append([]Entry(nil), k.entries...)
}

// Add appends an entry.
func (k *Kifu) Add(e Entry) error {
	if _, ok := k.Last().(*TerminalEntry); ok {
		return fmt.Errorf("%w: kifu is closed", ErrGameEnded)
	}
	k.entries = append(k.entries, e)
	return nil
}

// Remove drops and returns the tail entry.
func (k *Kifu) Remove() Entry {
	e := k.Last()
	if e != nil {
		k.entries = k.entries[:len(k.entries)-1]
	}
	return e
}

// LastMove returns the most recent move entry that placed a piece.
func (k *Kifu) LastMove() *MoveEntry {
	for i := len(k.entries) - 1; i >= 0; i-- {
		if m, ok := k.entries[i].(*MoveEntry); ok && m.To != nil {
			return m
		}
	}
	return nil
}

// LastMoving reports whether the tail entry is the first leg of an
// unfinished move.
func (k *Kifu) LastMoving() bool {
	m, ok := k.Last().(*MoveEntry)
	return ok && m.Moving
}

// SetLastMoving sets the moving marker of the tail entry.
func (k *Kifu) SetLastMoving(v bool) {
	if m, ok := k.Last().(*MoveEntry); ok {
		m.Moving = v
	}
}

func (k *Kifu) truncate(n int) {
	if n < len(k.entries) {
		k.entries = k.entries[:n]
	}
}

type kifuRecord struct {
	Type string         `json:"type"`
	Move *MoveEntry     `json:"move,omitempty"`
	End  *TerminalEntry `json:"end,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (k *Kifu) MarshalJSON() ([]byte, error) {
	records := make([]kifuRecord, 0, len(k.entries))
	for _, e := range k.entries {
		switch e := e.(type) {
		case *MoveEntry:
			records = append(records, kifuRecord{Type: "move", Move: e})
		case *TerminalEntry:
			records = append(records, kifuRecord{Type: "end", End: e})
		}
	}
	return json.Marshal(records)
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kifu) UnmarshalJSON(data []byte) error {
	var records []kifuRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	k.entries = k.entries[:0]
	for i, r := range records {
		switch {
		case r.Type == "move" && r.Move != nil:
			k.entries = append(k.entries, r.Move)
		case r.Type == "end" && r.End != nil:
			k.entries = append(k.entries, r.End)
		default:
			return fmt.Errorf("kifu entry %d: unknown type %q", i, r.Type)
		}
	}
	return nil
}
