package goshogi

import (
	"encoding/json"
	"fmt"
)

// XY is a board coordinate. Both axes start at 1. It serializes as [x, y].
type XY struct {
	X int
	Y int
}

// NewXY builds a coordinate.
func NewXY(x, y int) XY {
	return XY{X: x, Y: y}
}

// Equals reports whether two coordinates name the same cell.
func (p XY) Equals(o XY) bool {
	return p.X == o.X && p.Y == o.Y
}

// Add offsets the coordinate by dx, dy.
func (p XY) Add(dx, dy int) XY {
	return XY{X: p.X + dx, Y: p.Y + dy}
}

// IsAdjacent reports whether o is one of the eight neighbours of p.
func (p XY) IsAdjacent(o XY) bool {
	dx, dy := abs(p.X-o.X), abs(p.Y-o.Y)
	return (dx|dy) != 0 && dx <= 1 && dy <= 1
}

// Array returns the coordinate as [x, y], the shape used in serialized state.
func (p XY) Array() [2]int {
	return [2]int{p.X, p.Y}
}

// Format renders the coordinate for notation. Boards up to 9x9 use the
// traditional two digit form.
func (p XY) Format() string {
	if p.X < 10 && p.Y < 10 {
		return fmt.Sprintf("%d%d", p.X, p.Y)
	}
	return fmt.Sprintf("%d.%d", p.X, p.Y)
}

// MarshalJSON implements json.Marshaler.
func (p XY) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Array())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *XY) UnmarshalJSON(data []byte) error {
	var a [2]int
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	p.X, p.Y = a[0], a[1]
	return nil
}

func (p XY) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func sign(i int) int {
	switch {
	case i > 0:
		return 1
	case i < 0:
		return -1
	}
	return 0
}
