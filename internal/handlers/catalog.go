package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/services"
)

// CatalogHandler serves the read-only item listing.
type CatalogHandler struct {
	Svc *services.CatalogService
}

func NewCatalogHandler(svc *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// List: GET /catalog?q=&vendor_id=&sort=qty_asc|qty_desc
// Filter inputs only apply to sessions holding catalog:filter; everyone
// else gets the unfiltered listing in id order.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	filter := services.CatalogFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:   services.ParseSort(r.URL.Query().Get("sort")),
	}
	if v := r.URL.Query().Get("vendor_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.VendorID = uint(n)
		}
	}
	s := auth.SessionFrom(r.Context())
	rows, summary, err := h.Svc.Browse(s.Perms, filter)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_catalog", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "summary": summary})
}
