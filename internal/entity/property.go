package entity

import "github.com/google/uuid"

// Property represents a listing offered for rent.
//
// CostPerNight is stored in minor currency units (cents). AverageRating is
// computed from property_reviews and is nil when the property has no reviews.
type Property struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ThumbnailPhotoURL string    `json:"thumbnail_photo_url"`
	CoverPhotoURL     string    `json:"cover_photo_url"`
	CostPerNight      int64     `json:"cost_per_night"`
	ParkingSpaces     int       `json:"parking_spaces"`
	NumberOfBathrooms int       `json:"number_of_bathrooms"`
	NumberOfBedrooms  int       `json:"number_of_bedrooms"`
	Country           string    `json:"country"`
	Street            string    `json:"street"`
	City              string    `json:"city"`
	Province          string    `json:"province"`
	PostCode          string    `json:"post_code"`
	Active            bool      `json:"active"`
	AverageRating     *float64  `json:"average_rating,omitempty"`
}
