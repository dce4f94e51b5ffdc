package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octobees/stays/api/internal/entity"
	"github.com/octobees/stays/api/internal/repository"
)

// ReservationService exposes a guest's reservation history.
type ReservationService struct {
	repo   repository.ReservationsRepository
	log    zerolog.Logger
	limits Limits
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(repo repository.ReservationsRepository, logger zerolog.Logger, limits Limits) *ReservationService {
	return &ReservationService{
		repo:   repo,
		log:    logger.With().Str("component", "reservations").Logger(),
		limits: limits,
	}
}

// ListForGuest returns the guest's reservations, earliest first.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]entity.Reservation, error) {
	reservations, err := s.repo.ListForGuest(ctx, guestID, s.limits.clamp(limit))
	if err != nil {
		logQueryFailure(s.log, err, "reservation lookup failed")
		return nil, err
	}
	return reservations, nil
}
