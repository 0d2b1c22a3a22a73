package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/services"
)

// ItemHandler exposes the item editor operations: create, update, delete,
// reference lookups and photo delivery. Photo uploads come in as the
// "photo" part of a multipart form; JSON bodies carry attribute-only
// saves.
type ItemHandler struct {
	Svc   *services.ItemService
	Store *assets.Store
}

func NewItemHandler(svc *services.ItemService, store *assets.Store) *ItemHandler {
	return &ItemHandler{Svc: svc, Store: store}
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	item, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// parseItemInput reads the save payload from either a JSON body or a
// multipart form; only the multipart path can carry a photo.
func (h *ItemHandler) parseItemInput(r *http.Request) (services.ItemInput, io.Reader, func(), bool) {
	noop := func() {}
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var in services.ItemInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return services.ItemInput{}, nil, noop, false
		}
		return in, nil, noop, true
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			return services.ItemInput{}, nil, noop, false
		}
	}
	in := services.ItemInput{
		SKU:   strings.TrimSpace(r.FormValue("sku")),
		Name:  strings.TrimSpace(r.FormValue("name")),
		About: strings.TrimSpace(r.FormValue("about")),
	}
	in.GroupID = formUint(r, "group_id")
	in.MakerID = formUint(r, "maker_id")
	in.VendorID = formUint(r, "vendor_id")
	in.MeasureID = formUint(r, "measure_id")
	in.BasePrice = formFloat(r, "base_price")
	in.Promo = formFloat(r, "promo")
	in.Qty = int(formUint(r, "qty"))
	file, _, err := r.FormFile("photo")
	if err != nil {
		return in, nil, noop, true
	}
	return in, file, func() { _ = file.Close() }, true
}

func formUint(r *http.Request, field string) uint {
	n, _ := strconv.ParseUint(r.FormValue(field), 10, 64)
	return uint(n)
}

func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(field), 64)
	return f
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, photo, done, ok := h.parseItemInput(r)
	defer done()
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	item, err := h.Svc.Save(0, in, photo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	in, photo, done, ok := h.parseItemInput(r)
	defer done()
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	item, err := h.Svc.Save(id, in, photo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ItemHandler) Refs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	refs, err := h.Svc.Refs()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_refs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, refs)
}

// Photo serves the item image, falling back to the generated placeholder
// when the item has none or the stored file went missing.
func (h *ItemHandler) Photo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	item, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	http.ServeFile(w, r, h.Store.Resolve(item.PhotoPath))
}
