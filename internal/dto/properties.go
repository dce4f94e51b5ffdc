package dto

import "github.com/google/uuid"

// PropertySearch holds the optional criteria for property search.
// Prices are expressed in major currency units.
type PropertySearch struct {
	City             string
	OwnerID          *uuid.UUID
	MinPricePerNight *float64
	MaxPricePerNight *float64
	MinRating        *float64
}

// CreatePropertyRequest captures a new listing. CostPerNight is in minor units.
type CreatePropertyRequest struct {
	OwnerID           uuid.UUID `json:"owner_id" validate:"required"`
	Title             string    `json:"title" validate:"required,max=255"`
	Description       string    `json:"description"`
	ThumbnailPhotoURL string    `json:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string    `json:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int64     `json:"cost_per_night" validate:"gte=0"`
	ParkingSpaces     int       `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int       `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int       `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string    `json:"country" validate:"required"`
	Street            string    `json:"street" validate:"required"`
	City              string    `json:"city" validate:"required"`
	Province          string    `json:"province" validate:"required"`
	PostCode          string    `json:"post_code" validate:"required"`
}
