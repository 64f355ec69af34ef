package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

var transactionSortFields = map[string]bool{
	"type":         true,
	"product_id":   true,
	"location_id":  true,
	"quantity":     true,
	"performed_by": true,
}

// GormTransactionRepository implements TransactionRepository using
// GORM. The ledger is append-only: there are no update or delete
// operations, corrections are recorded as new adjustment rows.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a transaction to the ledger
func (r *GormTransactionRepository) Create(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByID finds a transaction by its row ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	var tx inventory.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByTransactionID finds a transaction by its public identifier
func (r *GormTransactionRepository) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*inventory.Transaction, error) {
	var tx inventory.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAll finds all transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return r.findPage(ctx, filter, nil)
}

// FindByProduct finds all transactions for a product
func (r *GormTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("product_id = ?", productID)
	})
}

// FindByLocation finds all transactions touching a location, either as
// source or as transfer destination.
func (r *GormTransactionRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Transaction], error) {
	return r.findPage(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("location_id = ? OR destination_location_id = ?", locationID, locationID)
	})
}

func (r *GormTransactionRepository) findPage(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) (shared.Paginated[*inventory.Transaction], error) {
	query := r.db.WithContext(ctx).Model(&inventory.Transaction{})
	if scope != nil {
		query = scope(query)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR notes ILIKE ? OR performed_by ILIKE ?", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "performed_by":
			query = query.Where("performed_by = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		case "until":
			query = query.Where("created_at <= ?", value)
		}
	}
	return findPage[*inventory.Transaction](query, filter, transactionSortFields, "created_at")
}

var _ inventory.TransactionRepository = (*GormTransactionRepository)(nil)
