package entity

import "github.com/google/uuid"

// User represents a marketplace account (guest or property owner).
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}
