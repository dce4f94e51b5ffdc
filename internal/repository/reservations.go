package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/octobees/stays/api/internal/entity"
)

// ReservationsRepository exposes a guest's reservation history.
type ReservationsRepository interface {
	ListForGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]entity.Reservation, error)
}

// PGXReservationsRepository implements ReservationsRepository using pgx.
type PGXReservationsRepository struct {
	pool Querier
}

// NewPGXReservationsRepository wires a pgx backed repository.
func NewPGXReservationsRepository(pool Querier) *PGXReservationsRepository {
	return &PGXReservationsRepository{pool: pool}
}

const listGuestReservationsSQL = `
        SELECT
            reservations.id,
            reservations.property_id,
            reservations.guest_id,
            reservations.start_date,
            reservations.end_date,
            properties.title,
            properties.cost_per_night,
            properties.city,
            AVG(property_reviews.rating)::float8 AS average_rating
        FROM reservations
        JOIN properties ON reservations.property_id = properties.id
        JOIN property_reviews ON properties.id = property_reviews.property_id
        WHERE reservations.guest_id = $1
        GROUP BY properties.id, reservations.id
        ORDER BY reservations.start_date
        LIMIT $2
    `

// ListForGuest returns the guest's reservations ordered by start date.
func (r *PGXReservationsRepository) ListForGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]entity.Reservation, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := r.pool.Query(ctx, listGuestReservationsSQL, guestID, limit)
	if err != nil {
		return nil, &QueryExecutionError{Op: "list guest reservations", Statement: listGuestReservationsSQL, Args: []any{guestID, limit}, Err: err}
	}
	defer rows.Close()

	reservations := make([]entity.Reservation, 0)
	for rows.Next() {
		var (
			res    entity.Reservation
			rating sql.NullFloat64
		)
		err := rows.Scan(
			&res.ID,
			&res.PropertyID,
			&res.GuestID,
			&res.StartDate,
			&res.EndDate,
			&res.Title,
			&res.CostPerNight,
			&res.City,
			&rating,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.AverageRating = nullFloatToPtr(rating)
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryExecutionError{Op: "list guest reservations", Statement: listGuestReservationsSQL, Args: []any{guestID, limit}, Err: err}
	}
	return reservations, nil
}
