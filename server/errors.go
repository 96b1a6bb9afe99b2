package server

import (
	"errors"
	"net/http"

	"github.com/icco/goshogi"
	"gorm.io/gorm"
)

// statusFor maps a store or engine error onto an HTTP status. Unknown
// errors are internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotSeated),
		errors.Is(err, goshogi.ErrNotYourTurn),
		errors.Is(err, goshogi.ErrWrongTurn):
		return http.StatusForbidden
	case errors.Is(err, ErrSeatTaken),
		errors.Is(err, ErrNoFreeSeat),
		errors.Is(err, goshogi.ErrNotPlaying),
		errors.Is(err, goshogi.ErrAlreadyStarted),
		errors.Is(err, goshogi.ErrGameInProgress),
		errors.Is(err, goshogi.ErrGameEnded),
		errors.Is(err, goshogi.ErrMoveInProgress),
		errors.Is(err, goshogi.ErrMustContinueMove),
		errors.Is(err, goshogi.ErrNothingToRollback),
		errors.Is(err, goshogi.ErrGameAlreadyOver):
		return http.StatusConflict
	case errors.Is(err, goshogi.ErrIllegalMove),
		errors.Is(err, goshogi.ErrIllegalPosition),
		errors.Is(err, goshogi.ErrPositionOccupied),
		errors.Is(err, goshogi.ErrPositionEmpty),
		errors.Is(err, goshogi.ErrPieceNotAvailable),
		errors.Is(err, goshogi.ErrIllegalDoublePawn),
		errors.Is(err, goshogi.ErrPassNotAllowed),
		errors.Is(err, goshogi.ErrUnknownCommand),
		errors.Is(err, goshogi.ErrUnknownRule),
		errors.Is(err, goshogi.ErrUnknownStrategy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
