package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/octobees/stays/api/internal/dto"
	"github.com/octobees/stays/api/internal/entity"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrOwnerNotFound    = errors.New("property owner not found")
)

const propertyColumns = `properties.id,
    properties.owner_id,
    properties.title,
    properties.description,
    properties.thumbnail_photo_url,
    properties.cover_photo_url,
    properties.cost_per_night,
    properties.parking_spaces,
    properties.number_of_bathrooms,
    properties.number_of_bedrooms,
    properties.country,
    properties.street,
    properties.city,
    properties.province,
    properties.post_code,
    properties.active`

// PropertiesRepository describes persistence operations for listings.
type PropertiesRepository interface {
	Search(ctx context.Context, criteria dto.PropertySearch, limit int) ([]entity.Property, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	Create(ctx context.Context, property *entity.Property) (*entity.Property, error)
}

// PGXPropertiesRepository implements PropertiesRepository using pgx.
type PGXPropertiesRepository struct {
	pool Querier
}

// NewPGXPropertiesRepository wires a pgx backed repository.
func NewPGXPropertiesRepository(pool Querier) *PGXPropertiesRepository {
	return &PGXPropertiesRepository{pool: pool}
}

// Search returns reviewed properties matching criteria, cheapest first.
func (r *PGXPropertiesRepository) Search(ctx context.Context, criteria dto.PropertySearch, limit int) ([]entity.Property, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query, args := buildSearchQuery(criteria, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &QueryExecutionError{Op: "search properties", Statement: query, Args: args, Err: err}
	}
	defer rows.Close()

	properties, err := scanRatedProperties(rows)
	if err != nil {
		return nil, &QueryExecutionError{Op: "search properties", Statement: query, Args: args, Err: err}
	}
	return properties, nil
}

// FindByID loads a single property with its rating, reviewed or not.
func (r *PGXPropertiesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + `, AVG(property_reviews.rating)::float8 AS average_rating
FROM properties
LEFT JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE properties.id = $1
GROUP BY properties.id`

	var (
		property entity.Property
		rating   sql.NullFloat64
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(append(propertyScanTargets(&property), &rating)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("query property by id: %w", err)
	}
	property.AverageRating = nullFloatToPtr(rating)

	return &property, nil
}

// Create inserts a listing and returns the stored row.
func (r *PGXPropertiesRepository) Create(ctx context.Context, property *entity.Property) (*entity.Property, error) {
	if property == nil {
		return nil, fmt.Errorf("property payload is nil")
	}

	query := `
        INSERT INTO properties (
            owner_id,
            title,
            description,
            thumbnail_photo_url,
            cover_photo_url,
            cost_per_night,
            parking_spaces,
            number_of_bathrooms,
            number_of_bedrooms,
            country,
            street,
            city,
            province,
            post_code
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING ` + propertyColumns

	var stored entity.Property
	err := r.pool.QueryRow(ctx, query,
		property.OwnerID,
		property.Title,
		property.Description,
		property.ThumbnailPhotoURL,
		property.CoverPhotoURL,
		property.CostPerNight,
		property.ParkingSpaces,
		property.NumberOfBathrooms,
		property.NumberOfBedrooms,
		property.Country,
		property.Street,
		property.City,
		property.Province,
		property.PostCode,
	).Scan(propertyScanTargets(&stored)...)
	if err != nil {
		if pgErr, ok := asPgError(err, pgForeignKeyViolation); ok {
			return nil, fmt.Errorf("%w: %v", ErrOwnerNotFound, pgErr)
		}
		return nil, fmt.Errorf("insert property: %w", err)
	}

	return &stored, nil
}

// propertyScanTargets lists destinations in propertyColumns order.
func propertyScanTargets(p *entity.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}

func scanRatedProperties(rows pgx.Rows) ([]entity.Property, error) {
	properties := make([]entity.Property, 0)
	for rows.Next() {
		var (
			p      entity.Property
			rating sql.NullFloat64
		)
		if err := rows.Scan(append(propertyScanTargets(&p), &rating)...); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		p.AverageRating = nullFloatToPtr(rating)
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

func nullFloatToPtr(value sql.NullFloat64) *float64 {
	if value.Valid {
		val := value.Float64
		return &val
	}
	return nil
}
