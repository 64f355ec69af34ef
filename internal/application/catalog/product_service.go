package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/shared"
)

// CreateProductInput carries the fields for creating a product
type CreateProductInput struct {
	Name            string
	SKU             string
	Barcode         string
	Description     string
	Notes           string
	CategoryID      *uuid.UUID
	SupplierID      *uuid.UUID
	UnitPrice       decimal.Decimal
	UnitSize        decimal.Decimal
	UnitType        catalog.UnitType
	ParLevel        decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// UpdateProductInput carries the fields for updating a product
type UpdateProductInput struct {
	Name            string
	SKU             string
	Barcode         string
	Description     string
	Notes           string
	CategoryID      *uuid.UUID
	SupplierID      *uuid.UUID
	UnitPrice       decimal.Decimal
	UnitSize        decimal.Decimal
	UnitType        catalog.UnitType
	ParLevel        decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// ProductService handles catalog product management
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create adds a product to the catalog. SKUs are unique per supplier.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*catalog.Product, error) {
	if existing, err := s.productRepo.FindBySKU(ctx, input.SupplierID, input.SKU); err == nil && existing != nil {
		return nil, shared.NewConflictError("a product with SKU %q already exists for this supplier", input.SKU)
	}

	product, err := catalog.NewProduct(input.Name, input.SKU, input.UnitPrice, input.UnitSize, input.UnitType)
	if err != nil {
		return nil, err
	}
	product.Barcode = input.Barcode
	product.Description = input.Description
	product.Notes = input.Notes
	product.CategoryID = input.CategoryID
	product.SupplierID = input.SupplierID
	if err := product.SetReplenishment(input.ParLevel, input.ReorderPoint, input.ReorderQuantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.SKU, input.Barcode, input.Description, input.Notes,
		input.UnitPrice, input.UnitSize, input.UnitType); err != nil {
		return nil, err
	}
	if err := product.SetReplenishment(input.ParLevel, input.ReorderPoint, input.ReorderQuantity); err != nil {
		return nil, err
	}
	product.AssignCategory(input.CategoryID)
	product.AssignSupplier(input.SupplierID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return s.productRepo.FindAll(ctx, filter)
}

// ListByCategory returns a category's products
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return s.productRepo.FindByCategory(ctx, categoryID, filter)
}

// ListBySupplier returns a supplier's products
func (s *ProductService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	return s.productRepo.FindBySupplier(ctx, supplierID, filter)
}

// Deactivate hides a product from active listings
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Deactivate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and, via the schema's cascade, its stock rows
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
