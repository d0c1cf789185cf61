package persistence

import (
	"fmt"

	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const maxPageSize = 200

// applyOrdering appends an ORDER BY clause built from the filter. The sort
// field is validated against the whitelist so callers cannot inject SQL.
func applyOrdering(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	return query.Order(fmt.Sprintf("%s %s", field, ValidateSortOrder(filter.OrderDir)))
}

// applyPagination appends OFFSET/LIMIT from the filter's page settings
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
