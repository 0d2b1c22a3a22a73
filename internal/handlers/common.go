package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/services"
)

// writeServiceError maps service-level errors onto the JSON error shape
// used across the API.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", verr.Violations)
		return
	}
	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", map[string]any{
			"item_id":   stockErr.ItemID,
			"available": stockErr.Available,
		})
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrSKUConflict):
		httpx.JSONError(w, http.StatusConflict, "sku_conflict", nil)
	case errors.Is(err, services.ErrOrderCodeConflict):
		httpx.JSONError(w, http.StatusConflict, "order_code_conflict", nil)
	case errors.Is(err, services.ErrVendorConflict):
		httpx.JSONError(w, http.StatusConflict, "vendor_conflict", nil)
	case errors.Is(err, services.ErrItemInUse):
		httpx.JSONError(w, http.StatusConflict, "item_in_use", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// queryID parses the required id query parameter.
func queryID(r *http.Request) (uint, bool) {
	v := r.URL.Query().Get("id")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
