// Package lifecycle owns the booking status state machine. Every status
// change anywhere in the system goes through Transition, so the legal set
// of moves lives in exactly one place.
package lifecycle

import (
	"time"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

// transitions maps each status to the statuses it may move to. A status
// missing from the target set is an illegal move, including moving to the
// current status: a no-op request is rejected, not silently accepted.
var transitions = map[model.BookingStatus]map[model.BookingStatus]bool{
	model.StatusPending: {
		model.StatusConfirmed: true,
		model.StatusCancelled: true,
	},
	model.StatusConfirmed: {
		model.StatusCancelled: true,
	},
	// Cancelled is terminal.
	model.StatusCancelled: {},
}

// ValidInitial reports whether a booking may be created in the given status.
func ValidInitial(status model.BookingStatus) bool {
	return status == model.StatusPending || status == model.StatusConfirmed
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to model.BookingStatus) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Transition applies a status change to the booking, stamping CancelledAt
// when the booking leaves the live set. Illegal moves return an error that
// names both endpoints so the caller can report exactly what was refused.
func Transition(booking *model.Booking, to model.BookingStatus) error {
	if !CanTransition(booking.Status, to) {
		return apperrors.InvalidTransition(string(booking.Status), string(to))
	}

	booking.Status = to
	if to == model.StatusCancelled && booking.CancelledAt == nil {
		now := time.Now().UTC().Truncate(time.Millisecond)
		booking.CancelledAt = &now
	}

	return nil
}
