package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/barstock/backend/internal/domain/partner"
	"github.com/barstock/backend/internal/domain/shared"
)

// SupplierInput carries the fields for creating or updating a supplier
type SupplierInput struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Website     string
	Notes       string
}

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*partner.Supplier, error) {
	supplier, err := partner.NewSupplier(input.Name, input.ContactName, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}
	supplier.Address = input.Address
	supplier.Website = input.Website
	supplier.Notes = input.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update replaces a supplier's fields
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, input SupplierInput) (*partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(input.Name, input.ContactName, input.Email, input.Phone,
		input.Address, input.Website, input.Notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get returns one supplier
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

// List returns suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Supplier], error) {
	return s.supplierRepo.FindAll(ctx, filter)
}

// Delete removes a supplier. Suppliers referenced by products or
// orders are protected.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	refs, err := s.supplierRepo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrDeleteProtected
	}
	return s.supplierRepo.Delete(ctx, id)
}
