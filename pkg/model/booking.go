package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking reserves one room for one half-open interval [StartTime, EndTime).
// CapacitySnapshot and LocationSnapshot are denormalized copies of the room
// taken at booking time, so history stays accurate if the room changes later.
type Booking struct {
	ID               string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID           string        `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	Title            string        `json:"title" bson:"title" validate:"required,min=2,max=100"`
	RequestedBy      string        `json:"requested_by" bson:"requested_by" validate:"required,min=1,max=100"`
	StartTime        time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime          time.Time     `json:"end_time" bson:"end_time" validate:"required"`
	Attendees        int           `json:"attendees" bson:"attendees" validate:"required,min=1,max=500"`
	Status           BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CapacitySnapshot int           `json:"capacity_snapshot" bson:"capacity_snapshot"`
	LocationSnapshot string        `json:"location_snapshot" bson:"location_snapshot"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// Live reports whether the booking still occupies its interval. Cancelled
// bookings are retained for history but no longer block the room.
func (b *Booking) Live() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingPatch carries only the fields a reschedule actually changes.
// The merged result is validated as a whole before any field is applied.
type BookingPatch struct {
	Title     *string    `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Attendees *int       `json:"attendees,omitempty" validate:"omitempty,min=1,max=500"`
}

func (p *BookingPatch) IsEmpty() bool {
	return p.Title == nil && p.StartTime == nil && p.EndTime == nil && p.Attendees == nil
}

// ChangesInterval reports whether the patch moves either interval bound.
func (p *BookingPatch) ChangesInterval() bool {
	return p.StartTime != nil || p.EndTime != nil
}
