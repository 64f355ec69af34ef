package partner

import (
	"strings"

	"github.com/barstock/backend/internal/domain/shared"
)

// Location is a physical place where stock is kept or poured: a
// walk-in, a cellar, a bar well. A location can be a storage area, a
// service area, or both.
type Location struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsStorage   bool   `gorm:"not null;default:true"`
	IsService   bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location
func NewLocation(name, description string, isStorage, isService bool) (*Location, error) {
	name = strings.TrimSpace(name)
	if err := validateLocationName(name); err != nil {
		return nil, err
	}

	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		IsStorage:         isStorage,
		IsService:         isService,
	}, nil
}

// Update replaces the location's details
func (l *Location) Update(name, description string, isStorage, isService bool) error {
	name = strings.TrimSpace(name)
	if err := validateLocationName(name); err != nil {
		return err
	}

	l.Name = name
	l.Description = description
	l.IsStorage = isStorage
	l.IsService = isService
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Deactivate hides the location from active listings
func (l *Location) Deactivate() {
	l.IsActive = false
	l.Touch()
	l.IncrementVersion()
}

// Activate restores the location to active listings
func (l *Location) Activate() {
	l.IsActive = true
	l.Touch()
	l.IncrementVersion()
}

func validateLocationName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "location name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "location name cannot exceed 100 characters")
	}
	return nil
}
