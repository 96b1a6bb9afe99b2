package goshogi

import (
	"errors"
	"fmt"
)

// Domain errors returned by Game commands. They are all recoverable; callers
// match them with errors.Is since most are wrapped with extra context.
var (
	ErrNotPlaying        = errors.New("game is not in progress")
	ErrAlreadyStarted    = errors.New("game has already started")
	ErrGameInProgress    = errors.New("game is in progress")
	ErrGameEnded         = errors.New("game has ended")
	ErrWrongTurn         = errors.New("piece does not belong to the asserted seat")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrMoveInProgress    = errors.New("another piece is in the middle of a move")
	ErrIllegalMove       = errors.New("illegal move")
	ErrIllegalPosition   = errors.New("illegal position")
	ErrPositionOccupied  = errors.New("position is occupied")
	ErrPositionEmpty     = errors.New("position is empty")
	ErrPieceNotAvailable = errors.New("piece not available in hand")
	ErrIllegalDoublePawn = errors.New("illegal double pawn")
	ErrPassNotAllowed    = errors.New("passing is not allowed")
	ErrMustContinueMove  = errors.New("the moving piece must continue")
	ErrNothingToRollback = errors.New("nothing to roll back")
	ErrUnknownCommand    = errors.New("unknown command")

	ErrUnknownRule     = errors.New("unknown rule")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrGameAlreadyOver = errors.New("game end already registered")
)

// ErrCaptureBlocked is the ErrIllegalMove raised when capture control refuses
// to let a piece be taken.
var ErrCaptureBlocked = fmt.Errorf("%w: capture blocked", ErrIllegalMove)
