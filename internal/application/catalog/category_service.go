package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/shared"
)

// CategoryService handles catalog category management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*catalog.Category, error) {
	if existing, err := s.categoryRepo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.NewConflictError("a category named %q already exists", name)
	}

	category, err := catalog.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update replaces a category's fields
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get returns one category
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// List returns categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Category], error) {
	return s.categoryRepo.FindAll(ctx, filter)
}

// Delete removes a category. Categories still referenced by products
// are protected.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrDeleteProtected
	}
	return s.categoryRepo.Delete(ctx, id)
}
