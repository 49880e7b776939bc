package model

import "time"

// BookingLock is an advisory lock that serializes the availability check and
// insert for a single car. The _id is derived from the car, so a second
// concurrent booking attempt for the same car fails with a duplicate key.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
