package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/inventory"
	"github.com/barstock/backend/internal/domain/shared"
)

// StockCache caches on-hand quantities keyed by (product, location).
// Implementations must treat the cache as advisory: the stock level
// table is authoritative and the engine invalidates after every apply.
type StockCache interface {
	Get(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, bool)
	Set(ctx context.Context, productID, locationID uuid.UUID, quantity decimal.Decimal)
	Invalidate(ctx context.Context, productID uuid.UUID, locationIDs ...uuid.UUID)
}

// ProductStock is a product's on-hand position at one location
type ProductStock struct {
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// ProductStockSummary aggregates a product's position across locations
type ProductStockSummary struct {
	ProductID     uuid.UUID       `json:"product_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	BelowParLevel bool            `json:"below_par_level"`
	NeedsReorder  bool            `json:"needs_reorder"`
	Locations     []ProductStock  `json:"locations"`
}

// StockService serves the read side of the ledger: current quantities,
// per-product breakdowns and replenishment listings.
type StockService struct {
	stockLevelRepo inventory.StockLevelRepository
	productRepo    catalog.ProductRepository
	cache          StockCache
}

// NewStockService creates a new StockService. cache may be nil.
func NewStockService(stockLevelRepo inventory.StockLevelRepository, productRepo catalog.ProductRepository, cache StockCache) *StockService {
	return &StockService{
		stockLevelRepo: stockLevelRepo,
		productRepo:    productRepo,
		cache:          cache,
	}
}

// GetStock returns the on-hand quantity for a product at a location,
// zero when no stock row exists yet.
func (s *StockService) GetStock(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	if s.cache != nil {
		if qty, ok := s.cache.Get(ctx, productID, locationID); ok {
			return qty, nil
		}
	}

	level, err := s.stockLevelRepo.FindByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, productID, locationID, level.Quantity)
	}
	return level.Quantity, nil
}

// GetProductSummary returns a product's position across all locations
func (s *StockService) GetProductSummary(ctx context.Context, productID uuid.UUID) (*ProductStockSummary, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	levels, err := s.stockLevelRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	summary := &ProductStockSummary{
		ProductID:     productID,
		TotalQuantity: decimal.Zero,
		Locations:     make([]ProductStock, 0, len(levels)),
	}
	for _, level := range levels {
		summary.TotalQuantity = summary.TotalQuantity.Add(level.Quantity)
		summary.Locations = append(summary.Locations, ProductStock{
			LocationID: level.LocationID,
			Quantity:   level.Quantity,
			Value:      level.Value(product.UnitPrice),
		})
	}
	summary.TotalValue = product.TotalValue(summary.TotalQuantity)
	summary.BelowParLevel = product.BelowParLevel(summary.TotalQuantity)
	summary.NeedsReorder = product.NeedsReorder(summary.TotalQuantity)
	return summary, nil
}

// ListByLocation returns the stock rows at one location
func (s *StockService) ListByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	return s.stockLevelRepo.FindByLocation(ctx, locationID, filter)
}

// List returns stock rows matching the filter
func (s *StockService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*inventory.StockLevel], error) {
	return s.stockLevelRepo.FindAll(ctx, filter)
}

// ListBelowPar returns the active products whose total on-hand
// quantity is under their par level.
func (s *StockService) ListBelowPar(ctx context.Context, filter shared.Filter) ([]*ProductStockSummary, error) {
	return s.listFlagged(ctx, filter, func(sum *ProductStockSummary) bool { return sum.BelowParLevel })
}

// ListNeedsReorder returns the active products at or under their
// reorder point.
func (s *StockService) ListNeedsReorder(ctx context.Context, filter shared.Filter) ([]*ProductStockSummary, error) {
	return s.listFlagged(ctx, filter, func(sum *ProductStockSummary) bool { return sum.NeedsReorder })
}

func (s *StockService) listFlagged(ctx context.Context, filter shared.Filter, keep func(*ProductStockSummary) bool) ([]*ProductStockSummary, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	var out []*ProductStockSummary
	for _, product := range products.Items {
		if !product.IsActive {
			continue
		}
		summary, err := s.GetProductSummary(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if keep(summary) {
			out = append(out, summary)
		}
	}
	return out, nil
}
