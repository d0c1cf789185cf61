package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/interfaces/http/dto"
)

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// parseFilter builds a shared.Filter from common list query parameters.
// Extra key/value pairs land in Filters for repository-side filtering.
func parseFilter(c *gin.Context, extraKeys ...string) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	for _, key := range extraKeys {
		if value := c.Query(key); value != "" {
			if filter.Filters == nil {
				filter.Filters = make(map[string]interface{})
			}
			filter.Filters[key] = value
		}
	}

	return filter, nil
}

// parseTimeRange reads the from/to query parameters as RFC 3339 timestamps.
// A missing "to" defaults to now; a missing "from" defaults to 30 days
// before "to".
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now()
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	return from, to, nil
}

// parseAsOf reads the optional as_of query parameter, defaulting to now
func parseAsOf(c *gin.Context) (time.Time, error) {
	if raw := c.Query("as_of"); raw != "" {
		return time.Parse(time.RFC3339, raw)
	}
	return time.Now(), nil
}

// parseOptionalUUIDQuery reads an optional UUID query parameter
func parseOptionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
