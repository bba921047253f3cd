package model

import "time"

// Room is the bookable resource. Rooms are never hard-deleted; deactivation
// flips IsActive and new bookings stop resolving against the room.
type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location  string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// RoomUpdate carries only the fields a room update changes.
type RoomUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (u *RoomUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.Capacity == nil && u.IsActive == nil
}
