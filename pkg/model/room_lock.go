package model

import "time"

// RoomLock is the advisory per-room mutex held while a booking mutation runs
// its conflict check and write. The lock collection carries a unique _id
// index, so a second writer for the same room fails with a duplicate key
// error, and a TTL index on expires_at reaps locks orphaned by crashes.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
