package model

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking stores its own price and owner reference as computed at creation
// time. Neither field follows later changes to the car.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CarID      string    `json:"car_id" bson:"car_id" validate:"required,mongodb"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	OwnerID    string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	PickupDate time.Time `json:"pickup_date" bson:"pickup_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" bson:"return_date" validate:"required,gtfield=PickupDate"`
	Price      float64   `json:"price" bson:"price" validate:"gte=0"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the client payload for creating a booking. Dates arrive
// as strings so missing and malformed values are reported separately. Any
// client-supplied price is ignored.
type BookingRequest struct {
	CarID      string `json:"car_id"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}

// AvailabilityRequest asks whether a car is free for a date range.
type AvailabilityRequest struct {
	CarID      string `json:"car_id"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}

// StatusChangeRequest asks for a booking status transition.
type StatusChangeRequest struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}
