package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

// idParam parses the numeric :id path parameter.
func idParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.Validationf("invalid id %q", raw)
	}
	return uint(id), nil
}

// pageFromQuery reads the page and limit query parameters. Out-of-range values
// are clamped later by Page.Normalize.
func pageFromQuery(c *gin.Context) (repository.Page, error) {
	var (
		page repository.Page
		err  error
	)
	if page.Number, err = intQuery(c, "page", 1); err != nil {
		return page, err
	}
	if page.Size, err = intQuery(c, "limit", repository.DefaultPageSize); err != nil {
		return page, err
	}
	return page, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validationf("query parameter %q must be an integer", name)
	}
	return v, nil
}

func uintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.Validationf("query parameter %q must be a positive integer", name)
	}
	return uint(v), nil
}

func boolQuery(c *gin.Context, name string) bool {
	return c.Query(name) == "true"
}

// timeQuery accepts RFC 3339 timestamps or plain dates (2006-01-02).
func timeQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.Validationf("query parameter %q must be RFC 3339 or YYYY-MM-DD", name)
}

// orderFilterFromQuery builds the shared order filter from status, customer_id,
// from, and to query parameters.
func orderFilterFromQuery(c *gin.Context) (repository.OrderFilter, error) {
	var filter repository.OrderFilter

	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.Valid() {
			return filter, apperror.Validationf("unknown order status %q", raw)
		}
		filter.Status = status
	}

	var err error
	if filter.CustomerID, err = uintQuery(c, "customer_id"); err != nil {
		return filter, err
	}
	if filter.From, err = timeQuery(c, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = timeQuery(c, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}
