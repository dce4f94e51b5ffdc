package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a guest's booking joined with the reserved property summary.
type Reservation struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"property_id"`
	GuestID       uuid.UUID `json:"guest_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Title         string    `json:"title"`
	CostPerNight  int64     `json:"cost_per_night"`
	City          string    `json:"city"`
	AverageRating *float64  `json:"average_rating,omitempty"`
}
