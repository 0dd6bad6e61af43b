// Package repository provides the storage interfaces the services depend
// on, together with their GORM implementations. The analytics core never
// sees these; it consumes the plain row types the repositories produce.
package repository

import (
	"errors"
	"time"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/model"
)

// Pagination bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects a result window for list queries.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps page parameters to sane bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages derives the page count for a result set.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// OrderFilter narrows order-scoped queries. Zero values mean no constraint.
// To is exclusive so day ranges compose without overlap.
type OrderFilter struct {
	Status     model.OrderStatus
	CustomerID uint
	From       time.Time
	To         time.Time
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID uint
	ActiveOnly bool
	LowStock   bool
}

// dbErr classifies a storage failure, passing already-classified errors
// through untouched.
func dbErr(message string, err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperror.Wrap(apperror.KindDatabase, message, err)
}
