package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

// CreateCountInput carries the fields for opening a counting session.
// ProductIDs optionally seeds the count with item lines; their expected
// quantities are snapshotted from current stock at creation time.
type CreateCountInput struct {
	Name          string
	Description   string
	LocationID    uuid.UUID
	ScheduledDate *time.Time
	CreatedBy     string
	Notes         string
	ProductIDs    []uuid.UUID
}

// CountService drives counting sessions: opening them, marking lines,
// and the completion pass that reconciles variances into adjustment
// movements.
type CountService struct {
	scope          TransactionScope
	countRepo      inventory.CountRepository
	stockLevelRepo inventory.StockLevelRepository
	productRepo    catalog.ProductRepository
	cache          StockCache
}

// NewCountService creates a new CountService. cache may be nil.
func NewCountService(
	scope TransactionScope,
	countRepo inventory.CountRepository,
	stockLevelRepo inventory.StockLevelRepository,
	productRepo catalog.ProductRepository,
	cache StockCache,
) *CountService {
	return &CountService{
		scope:          scope,
		countRepo:      countRepo,
		stockLevelRepo: stockLevelRepo,
		productRepo:    productRepo,
		cache:          cache,
	}
}

// Create opens a counting session, optionally seeded with item lines
func (s *CountService) Create(ctx context.Context, input CreateCountInput) (*inventory.Count, error) {
	count, err := inventory.NewCount(input.Name, input.LocationID, input.CreatedBy, input.ScheduledDate, input.Description, input.Notes)
	if err != nil {
		return nil, err
	}

	for _, productID := range input.ProductIDs {
		expected, err := s.expectedQuantity(ctx, productID, input.LocationID)
		if err != nil {
			return nil, err
		}
		if _, err := count.AddItem(productID, expected); err != nil {
			return nil, err
		}
	}

	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// AddItem adds a product line with its expected quantity snapshotted
// from current stock at the count's location.
func (s *CountService) AddItem(ctx context.Context, countID, productID uuid.UUID) (*inventory.CountItem, error) {
	count, err := s.countRepo.FindByID(ctx, countID)
	if err != nil {
		return nil, err
	}

	expected, err := s.expectedQuantity(ctx, productID, count.LocationID)
	if err != nil {
		return nil, err
	}

	item, err := count.AddItem(productID, expected)
	if err != nil {
		return nil, err
	}
	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkItem records a counted quantity on one line
func (s *CountService) MarkItem(ctx context.Context, countID, itemID uuid.UUID, countedQuantity decimal.Decimal, countedBy, notes string) (*inventory.CountItem, error) {
	count, err := s.countRepo.FindByID(ctx, countID)
	if err != nil {
		return nil, err
	}

	item, err := count.MarkItem(itemID, countedQuantity, countedBy, notes)
	if err != nil {
		return nil, err
	}
	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	return item, nil
}

// Complete closes the session and reconciles it: every counted line
// with a non-zero variance becomes one adjustment movement at the
// product's current unit price. The status flip and all adjustments
// commit or roll back together.
func (s *CountService) Complete(ctx context.Context, countID uuid.UUID, completedBy string) (*inventory.Count, error) {
	var completed *inventory.Count
	var lastErr error

	for attempt := 0; attempt < maxApplyRetries; attempt++ {
		completed = nil
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			count, err := repos.CountRepo().FindByID(ctx, countID)
			if err != nil {
				return err
			}
			if err := count.Complete(completedBy); err != nil {
				return err
			}

			for _, item := range count.VarianceItems() {
				product, err := s.productRepo.FindByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				tx, err := inventory.NewTransaction(
					inventory.TransactionAdjustment,
					item.ProductID, count.LocationID, nil,
					*item.Variance(), product.UnitPrice,
					count.Reconciler(),
					"Count adjustment: "+count.Name,
					item.Notes,
				)
				if err != nil {
					return err
				}
				if err := ApplyWithRepos(ctx, repos, tx); err != nil {
					return err
				}
			}

			if err := repos.CountRepo().Save(ctx, count); err != nil {
				return err
			}
			completed = count
			return nil
		})
		if lastErr == nil {
			s.invalidateCount(ctx, completed)
			return completed, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, shared.NewConsistencyError("count %s could not be completed after %d attempts: %v",
		countID, maxApplyRetries, lastErr)
}

// Cancel closes the session without reconciling anything
func (s *CountService) Cancel(ctx context.Context, countID uuid.UUID) (*inventory.Count, error) {
	count, err := s.countRepo.FindByID(ctx, countID)
	if err != nil {
		return nil, err
	}
	if err := count.Cancel(); err != nil {
		return nil, err
	}
	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// Get returns one counting session with its items
func (s *CountService) Get(ctx context.Context, countID uuid.UUID) (*inventory.Count, error) {
	return s.countRepo.FindByID(ctx, countID)
}

// List returns counting sessions matching the filter
func (s *CountService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	return s.countRepo.FindAll(ctx, filter)
}

// ListByLocation returns a location's counting sessions
func (s *CountService) ListByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.Count], error) {
	return s.countRepo.FindByLocation(ctx, locationID, filter)
}

// ListUncountedItems returns the lines not yet counted on a session
func (s *CountService) ListUncountedItems(ctx context.Context, countID uuid.UUID) ([]*inventory.CountItem, error) {
	count, err := s.countRepo.FindByID(ctx, countID)
	if err != nil {
		return nil, err
	}
	var out []*inventory.CountItem
	for i := range count.Items {
		if !count.Items[i].IsCounted {
			out = append(out, &count.Items[i])
		}
	}
	return out, nil
}

func (s *CountService) expectedQuantity(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	level, err := s.stockLevelRepo.FindByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return level.Quantity, nil
}

func (s *CountService) invalidateCount(ctx context.Context, count *inventory.Count) {
	if s.cache == nil || count == nil {
		return
	}
	for _, item := range count.VarianceItems() {
		s.cache.Invalidate(ctx, item.ProductID, count.LocationID)
	}
}
