package model

import "time"

// Car is a listing owned by exactly one user. PricePerDay is read at booking
// creation time only; the booking keeps its own copy of the computed price.
type Car struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID         string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	Brand           string    `json:"brand" bson:"brand" validate:"required,min=1,max=60"`
	Model           string    `json:"model" bson:"model" validate:"required,min=1,max=60"`
	Year            int       `json:"year" bson:"year" validate:"required,min=1950,max=2100"`
	Category        string    `json:"category" bson:"category" validate:"required,min=2,max=40"`
	SeatingCapacity int       `json:"seating_capacity" bson:"seating_capacity" validate:"required,min=1,max=20"`
	FuelCapacity    float64   `json:"fuel_capacity" bson:"fuel_capacity" validate:"required,gt=0"`
	Transmission    string    `json:"transmission" bson:"transmission" validate:"required,oneof=manual automatic semi-automatic"`
	PricePerDay     float64   `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	Location        string    `json:"location" bson:"location" validate:"required,min=2,max=100"`
	Description     string    `json:"description" bson:"description" validate:"required,min=2,max=2000"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
