package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urbangear/retail-app/validation"
)

// Integrity and guard errors translated into context-specific values so
// handlers can surface a distinct message per case.
var (
	ErrNotFound          = errors.New("not found")
	ErrSKUConflict       = errors.New("sku must be unique")
	ErrOrderCodeConflict = errors.New("order code must be unique")
	ErrVendorConflict    = errors.New("vendor already exists")
	ErrItemInUse         = errors.New("item is referenced by order lines")
)

// ValidationError carries per-field violations; the failed operation is
// aborted before any persistence call.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for field, msg := range e.Violations {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// InsufficientStockError reports the quantity actually available when a
// requested line quantity exceeds stock on hand.
type InsufficientStockError struct {
	ItemID    uint
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: %d available", e.ItemID, e.Available)
}

// isUniqueViolation detects the sqlite unique-constraint error without
// depending on driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
