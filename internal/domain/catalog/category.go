package catalog

import (
	"strings"

	"github.com/barstock/backend/internal/domain/shared"
)

// Category groups products for reporting and filtering.
// Category names are unique across the catalog.
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the category from active listings
func (c *Category) Deactivate() {
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()
}

// Activate restores the category to active listings
func (c *Category) Activate() {
	c.IsActive = true
	c.Touch()
	c.IncrementVersion()
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "category name cannot exceed 100 characters")
	}
	return nil
}
