package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/barstock/backend/internal/domain/shared"
)

// commonSortFields contains fields common to every table
var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// validateSortOrder normalizes the sort order to ASC or DESC,
// defaulting to DESC when the input is unrecognized.
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist of
// allowed columns. Column names must never come from user input
// unchecked: they are spliced into the ORDER BY clause verbatim.
func validateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] || commonSortFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyOrdering appends a validated ORDER BY clause to the query
func applyOrdering(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	field := validateSortField(filter.OrderBy, allowedFields, defaultField)
	dir := validateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", field, dir))
}

// applyPagination appends OFFSET/LIMIT to the query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// findPage runs the count-then-fetch pair every paginated finder
// shares. The query must already carry its WHERE and search clauses.
func findPage[T any](query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) (shared.Paginated[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[T]{}, err
	}

	var items []T
	page := applyPagination(applyOrdering(query.Session(&gorm.Session{}), filter, allowedFields, defaultField), filter)
	if err := page.Find(&items).Error; err != nil {
		return shared.Paginated[T]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
