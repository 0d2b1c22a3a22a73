package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/services"
)

// VendorHandler lists vendors for the filter dropdown and supports the
// quick-add used from the item editor.
type VendorHandler struct {
	Catalog *services.CatalogService
	Items   *services.ItemService
}

func NewVendorHandler(catalog *services.CatalogService, items *services.ItemService) *VendorHandler {
	return &VendorHandler{Catalog: catalog, Items: items}
}

func (h *VendorHandler) List(w http.ResponseWriter, _ *http.Request) {
	rows, err := h.Catalog.Vendors()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_vendors", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title string `json:"title"`
	}
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in.Title = r.FormValue("title")
	}
	vendor, err := h.Items.AddVendor(strings.TrimSpace(in.Title))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, vendor)
}
