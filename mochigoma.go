package goshogi

import (
	"fmt"
	"sort"
	"strings"
)

// Mochigoma is the per-seat pool of captured pieces available for drops.
// Counts are never negative and zero counts are not stored.
type Mochigoma struct {
	hands map[Direction]map[Species]int
}

// MochigomaSnapshot is an immutable copy of every pool.
type MochigomaSnapshot map[Direction]map[Species]int

// PoolDiff records a change of one pool count.
type PoolDiff struct {
	Direction Direction `json:"direction"`
	Species   Species   `json:"species"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
}

// NewMochigoma creates empty pools for the given number of seats.
func NewMochigoma(seats int) *Mochigoma {
	m := &Mochigoma{hands: map[Direction]map[Species]int{}}
	for d := 0; d < seats; d++ {
		m.hands[Direction(d)] = map[Species]int{}
	}
	return m
}

// Count returns how many pieces of species the seat holds.
func (m *Mochigoma) Count(s Species, d Direction) int {
	return m.hands[d][s]
}

// Add changes the count by n. A result below zero fails with
// ErrPieceNotAvailable and leaves the pool untouched.
func (m *Mochigoma) Add(s Species, d Direction, n int) error {
	hand, ok := m.hands[d]
	if !ok {
		return fmt.Errorf("%w: seat %d has no pool", ErrIllegalMove, d)
	}
	c := hand[s] + n
	if c < 0 {
		return fmt.Errorf("%w: %s", ErrPieceNotAvailable, s)
	}
	m.set(hand, s, c)
	return nil
}

// Set overwrites a count.
func (m *Mochigoma) Set(s Species, d Direction, n int) {
	hand, ok := m.hands[d]
	if !ok {
		hand = map[Species]int{}
		m.hands[d] = hand
	}
	m.set(hand, s, n)
}

func (m *Mochigoma) set(hand map[Species]int, s Species, n int) {
	if n <= 0 {
		delete(hand, s)
		return
	}
	hand[s] = n
}

// Hand returns a copy of one seat's pool.
func (m *Mochigoma) Hand(d Direction) map[Species]int {
	out := make(map[Species]int, len(m.hands[d]))
	for s, n := range m.hands[d] {
		out[s] = n
	}
	return out
}

// Species lists the species a seat holds, sorted.
func (m *Mochigoma) Species(d Direction) []Species {
	out := make([]Species, 0, len(m.hands[d]))
	for s := range m.hands[d] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot copies every pool.
func (m *Mochigoma) Snapshot() MochigomaSnapshot {
	out := make(MochigomaSnapshot, len(m.hands))
	for d := range m.hands {
		out[d] = m.Hand(d)
	}
	return out
}

// Restore replaces every pool with the snapshot contents.
func (m *Mochigoma) Restore(snap MochigomaSnapshot) {
	m.hands = make(map[Direction]map[Species]int, len(snap))
	for d, hand := range snap {
		h := make(map[Species]int, len(hand))
		for s, n := range hand {
			h[s] = n
		}
		m.hands[d] = h
	}
}

// Difference lists the counts that differ from before, ordered by seat then
// species.
func (m *Mochigoma) Difference(before MochigomaSnapshot) []PoolDiff {
	seen := map[Direction]map[Species]bool{}
	var diffs []PoolDiff
	add := func(d Direction, s Species) {
		if seen[d] == nil {
			seen[d] = map[Species]bool{}
		}
		if seen[d][s] {
			return
		}
		seen[d][s] = true
		b, a := before[d][s], m.hands[d][s]
		if a != b {
			diffs = append(diffs, PoolDiff{Direction: d, Species: s, Before: b, After: a})
		}
	}
	for d, hand := range m.hands {
		for s := range hand {
			add(d, s)
		}
	}
	for d, hand := range before {
		for s := range hand {
			add(d, s)
		}
	}
	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i].Direction != diffs[j].Direction {
			return diffs[i].Direction < diffs[j].Direction
		}
		return diffs[i].Species < diffs[j].Species
	})
	return diffs
}

func (m *Mochigoma) String() string {
	dirs := make([]int, 0, len(m.hands))
	for d := range m.hands {
		dirs = append(dirs, int(d))
	}
	sort.Ints(dirs)

	var b strings.Builder
	for _, d := range dirs {
		fmt.Fprintf(&b, "%d:", d)
		for _, s := range m.Species(Direction(d)) {
			fmt.Fprintf(&b, " %s%d", s, m.hands[Direction(d)][s])
		}
		b.WriteString("\n")
	}
	return b.String()
}
