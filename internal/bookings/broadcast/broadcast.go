// Package broadcast announces committed booking mutations to interested
// consumers. Delivery is strictly best-effort and strictly post-commit: a
// failed or slow announcement never blocks, fails, or rolls back the
// mutation it describes.
package broadcast

import (
	"time"

	"roomly/pkg/model"
)

type Kind string

const (
	KindCreated   Kind = "booking.created"
	KindUpdated   Kind = "booking.updated"
	KindCancelled Kind = "booking.cancelled"
	KindDeleted   Kind = "booking.deleted"
)

// Event is the wire payload for a booking announcement. The booking is the
// full post-mutation document, so consumers never need a read-back to learn
// the new state.
type Event struct {
	Kind       Kind           `json:"kind"`
	Booking    *model.Booking `json:"booking"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Broadcaster publishes booking events after their mutation has committed.
// Implementations must return promptly and must not propagate delivery
// failures to the caller.
type Broadcaster interface {
	Announce(kind Kind, booking *model.Booking)
	Close() error
}
