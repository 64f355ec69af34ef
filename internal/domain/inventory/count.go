package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/shared/validate"
)

// CountStatus represents the lifecycle state of a counting session
type CountStatus string

const (
	CountInProgress CountStatus = "in_progress"
	CountCompleted  CountStatus = "completed"
	CountCancelled  CountStatus = "cancelled"
)

// IsValid returns true if the status is one of the known values
func (s CountStatus) IsValid() bool {
	switch s {
	case CountInProgress, CountCompleted, CountCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s CountStatus) IsTerminal() bool {
	return s == CountCompleted || s == CountCancelled
}

// Count is a physical counting session at one location. It owns the
// per-product count items; expected quantities are snapshotted when an
// item is added so that stock moving during the counting window does
// not distort variances.
type Count struct {
	shared.BaseAggregateRoot
	Name          string      `gorm:"type:varchar(200);not null"`
	Description   string      `gorm:"type:text"`
	LocationID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status        CountStatus `gorm:"type:varchar(20);not null;default:'in_progress';index"`
	ScheduledDate *time.Time
	CompletedDate *time.Time
	CreatedBy     string `gorm:"type:varchar(100);not null"`
	CompletedBy   string `gorm:"type:varchar(100)"`
	Notes         string `gorm:"type:text"`
	Items         []CountItem `gorm:"foreignKey:CountID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Count) TableName() string {
	return "inventory_counts"
}

// CountItem is one product's line on a counting session
type CountItem struct {
	shared.BaseEntity
	CountID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_count_item_product,priority:1"`
	ProductID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_count_item_product,priority:2"`
	ExpectedQuantity decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	CountedQuantity  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsCounted        bool             `gorm:"not null;default:false"`
	CountedBy        string           `gorm:"type:varchar(100)"`
	CountedAt        *time.Time
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CountItem) TableName() string {
	return "inventory_count_items"
}

// Variance returns counted − expected, or nil while uncounted
func (i *CountItem) Variance() *decimal.Decimal {
	if !i.IsCounted || i.CountedQuantity == nil {
		return nil
	}
	v := i.CountedQuantity.Sub(i.ExpectedQuantity)
	return &v
}

// VariancePercentage returns the variance relative to the expected
// quantity, or nil while uncounted or when expected is zero.
func (i *CountItem) VariancePercentage() *decimal.Decimal {
	v := i.Variance()
	if v == nil || i.ExpectedQuantity.IsZero() {
		return nil
	}
	p := v.Div(i.ExpectedQuantity).Mul(decimal.NewFromInt(100))
	return &p
}

// NewCount creates a new counting session in progress
func NewCount(name string, locationID uuid.UUID, createdBy string, scheduledDate *time.Time, description, notes string) (*Count, error) {
	verr := &shared.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "count name cannot be empty")
	}
	if locationID == uuid.Nil {
		verr.Add("location", "location is required")
	}
	if strings.TrimSpace(createdBy) == "" {
		verr.Add("created_by", "created_by is required")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	return &Count{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		LocationID:        locationID,
		Status:            CountInProgress,
		ScheduledDate:     scheduledDate,
		CreatedBy:         strings.TrimSpace(createdBy),
		Notes:             notes,
	}, nil
}

// AddItem adds a product line with its expected-quantity snapshot.
// Each product appears at most once per count.
func (c *Count) AddItem(productID uuid.UUID, expectedQuantity decimal.Decimal) (*CountItem, error) {
	if c.Status != CountInProgress {
		return nil, shared.NewConflictError("cannot add items to a %s count", c.Status)
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product", "product is required")
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return nil, shared.NewConflictError("product is already on this count")
		}
	}

	item := CountItem{
		BaseEntity:       shared.NewBaseEntity(),
		CountID:          c.ID,
		ProductID:        productID,
		ExpectedQuantity: expectedQuantity,
	}
	c.Items = append(c.Items, item)
	c.Touch()
	c.IncrementVersion()
	return &c.Items[len(c.Items)-1], nil
}

// MarkItem records a counted quantity for an item. The counted
// timestamp is set only on the first transition to counted; recounting
// an item updates the quantity but keeps the original timestamp.
func (c *Count) MarkItem(itemID uuid.UUID, countedQuantity decimal.Decimal, countedBy, notes string) (*CountItem, error) {
	if c.Status != CountInProgress {
		return nil, shared.NewConflictError("cannot mark items on a %s count", c.Status)
	}
	if strings.TrimSpace(countedBy) == "" {
		return nil, shared.NewValidationError("counted_by", "counted_by is required")
	}

	for i := range c.Items {
		if c.Items[i].ID != itemID {
			continue
		}
		item := &c.Items[i]
		item.CountedQuantity = &countedQuantity
		item.CountedBy = strings.TrimSpace(countedBy)
		item.Notes = notes
		if !item.IsCounted {
			now := time.Now()
			item.IsCounted = true
			item.CountedAt = &now
		}
		item.Touch()
		c.Touch()
		c.IncrementVersion()
		return item, nil
	}
	return nil, shared.ErrNotFound
}

// Complete transitions the count to completed. The caller is
// responsible for creating the variance adjustments in the same atomic
// unit; VarianceItems lists what needs reconciling.
func (c *Count) Complete(completedBy string) error {
	if c.Status != CountInProgress {
		return shared.NewConflictError("cannot complete a %s count", c.Status)
	}
	if strings.TrimSpace(completedBy) == "" {
		return shared.NewValidationError("completed_by", "completed_by is required")
	}

	now := time.Now()
	c.Status = CountCompleted
	c.CompletedBy = strings.TrimSpace(completedBy)
	if c.CompletedDate == nil {
		c.CompletedDate = &now
	}
	c.Touch()
	c.IncrementVersion()
	return c.validateDates()
}

// Cancel transitions the count to cancelled
func (c *Count) Cancel() error {
	if c.Status != CountInProgress {
		return shared.NewConflictError("cannot cancel a %s count", c.Status)
	}
	c.Status = CountCancelled
	c.Touch()
	c.IncrementVersion()
	return nil
}

// VarianceItems returns the counted items whose variance is non-zero
func (c *Count) VarianceItems() []*CountItem {
	var out []*CountItem
	for i := range c.Items {
		item := &c.Items[i]
		if v := item.Variance(); v != nil && !v.IsZero() {
			out = append(out, item)
		}
	}
	return out
}

// Reconciler returns who the variance adjustments should be attributed
// to: the completer when known, otherwise the creator.
func (c *Count) Reconciler() string {
	if c.CompletedBy != "" {
		return c.CompletedBy
	}
	return c.CreatedBy
}

// TotalItems returns the number of product lines on the count
func (c *Count) TotalItems() int {
	return len(c.Items)
}

// CompletedItems returns the number of counted lines
func (c *Count) CompletedItems() int {
	n := 0
	for i := range c.Items {
		if c.Items[i].IsCounted {
			n++
		}
	}
	return n
}

// ProgressPercentage returns counted lines over total lines, 0–100
func (c *Count) ProgressPercentage() decimal.Decimal {
	total := c.TotalItems()
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(c.CompletedItems())).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
}

func (c *Count) validateDates() error {
	verr := &shared.ValidationError{}
	if c.CompletedDate != nil {
		if err := validate.NoFutureDate(*c.CompletedDate); err != nil {
			verr.Add("completed_date", err.Error())
		}
		if c.ScheduledDate != nil {
			if err := validate.DateNotBefore(*c.CompletedDate, *c.ScheduledDate); err != nil {
				verr.Add("scheduled_date", "scheduled date cannot be after completed date")
			}
		}
	}
	return verr.ErrOrNil()
}
