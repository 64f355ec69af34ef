package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
)

// LocationInput carries the fields for creating or updating a location
type LocationInput struct {
	Name        string
	Description string
	IsStorage   bool
	IsService   bool
}

// LocationService handles location management
type LocationService struct {
	locationRepo partner.LocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo partner.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Create adds a location
func (s *LocationService) Create(ctx context.Context, input LocationInput) (*partner.Location, error) {
	location, err := partner.NewLocation(input.Name, input.Description, input.IsStorage, input.IsService)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update replaces a location's fields
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, input LocationInput) (*partner.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := location.Update(input.Name, input.Description, input.IsStorage, input.IsService); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Get returns one location
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	return s.locationRepo.FindByID(ctx, id)
}

// List returns locations matching the filter
func (s *LocationService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Location], error) {
	return s.locationRepo.FindAll(ctx, filter)
}

// GetDefaultStorage returns the first active storage location by name
func (s *LocationService) GetDefaultStorage(ctx context.Context) (*partner.Location, error) {
	return s.locationRepo.FindDefaultStorage(ctx)
}

// Deactivate hides a location from active listings
func (s *LocationService) Deactivate(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Deactivate()
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a location and, via the schema's cascade, its stock rows
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
