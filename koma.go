package goshogi

import "fmt"

// Direction identifies a seat. Pieces are owned by a direction and the turn
// belongs to one.
type Direction int

// NoDirection is used where no seat applies, e.g. the loser of a draw.
const NoDirection Direction = -1

// Species is the opaque identifier of a kind of piece. Its capabilities live in
// the rule's piece table.
type Species string

// KomaStatus holds transient per-piece flags.
type KomaStatus uint8

const (
	// StatusMoving marks a piece that made the first leg of a multi-leg move.
	StatusMoving KomaStatus = 1 << iota
	// StatusNoPass forbids ending the turn while the piece is mid-move.
	StatusNoPass
	// StatusCaptured records that the current move captured something.
	StatusCaptured
)

// Koma is a piece on the board.
type Koma struct {
	Species   Species
	Direction Direction
	Status    KomaStatus
	XY        XY
}

// Has reports whether all bits of s are set.
func (k *Koma) Has(s KomaStatus) bool {
	return k.Status&s == s
}

// ChangeStatus updates the flags of a piece that just completed a leg using
// the movements that reached its destination.
func (k *Koma) ChangeStatus(movements []Movement, captured *Koma) {
	if k.Has(StatusMoving) {
		// second leg always finishes the move
		k.Status &^= StatusMoving | StatusNoPass | StatusCaptured
		return
	}

	partial := len(movements) > 0
	noPass := false
	for _, m := range movements {
		if m.Type != MovePartial {
			partial = false
			break
		}
		noPass = noPass || m.NoPass
	}
	if !partial {
		return
	}

	k.Status |= StatusMoving
	if noPass {
		k.Status |= StatusNoPass
	}
	if captured != nil {
		k.Status |= StatusCaptured
	}
}

// Clone returns an independent copy.
func (k *Koma) Clone() *Koma {
	if k == nil {
		return nil
	}
	c := *k
	return &c
}

func (k *Koma) String() string {
	if k == nil {
		return "__"
	}
	return fmt.Sprintf("%d(%s)", k.Direction, k.Species)
}
