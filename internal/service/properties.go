package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octobees/stays/api/internal/dto"
	"github.com/octobees/stays/api/internal/entity"
	"github.com/octobees/stays/api/internal/repository"
)

// PropertyService exposes search and listing management for properties.
type PropertyService struct {
	repo   repository.PropertiesRepository
	log    zerolog.Logger
	limits Limits
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertiesRepository, logger zerolog.Logger, limits Limits) *PropertyService {
	return &PropertyService{
		repo:   repo,
		log:    logger.With().Str("component", "properties").Logger(),
		limits: limits,
	}
}

// Search returns properties matching criteria. An empty slice with a nil
// error means nothing matched; execution failures are logged and returned.
func (s *PropertyService) Search(ctx context.Context, criteria dto.PropertySearch, limit int) ([]entity.Property, error) {
	criteria.City = strings.TrimSpace(criteria.City)

	properties, err := s.repo.Search(ctx, criteria, s.limits.clamp(limit))
	if err != nil {
		logQueryFailure(s.log, err, "property search failed")
		return nil, err
	}
	return properties, nil
}

// Get fetches a single property by id.
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and stores a new listing.
func (s *PropertyService) Create(ctx context.Context, req dto.CreatePropertyRequest) (*entity.Property, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.ThumbnailPhotoURL = strings.TrimSpace(req.ThumbnailPhotoURL)
	req.CoverPhotoURL = strings.TrimSpace(req.CoverPhotoURL)
	req.Country = strings.TrimSpace(req.Country)
	req.Street = strings.TrimSpace(req.Street)
	req.City = strings.TrimSpace(req.City)
	req.Province = strings.TrimSpace(req.Province)
	req.PostCode = strings.TrimSpace(req.PostCode)

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	property, err := s.repo.Create(ctx, &entity.Property{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		Country:           req.Country,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("property_id", property.ID.String()).Str("owner_id", property.OwnerID.String()).Msg("property created")
	return property, nil
}
