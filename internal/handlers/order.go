package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/services"
)

// OrderHandler exposes the order list, the full-detail view and the
// save/delete operations of the order editor.
type OrderHandler struct {
	Svc *services.OrderService
}

func NewOrderHandler(svc *services.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, _ *http.Request) {
	rows, err := h.Svc.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	detail, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func decodeOrderInput(w http.ResponseWriter, r *http.Request) (services.OrderInput, bool) {
	var in services.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return in, false
	}
	return in, true
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeOrderInput(w, r)
	if !ok {
		return
	}
	id, err := h.Svc.Save(0, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]uint{"id": id})
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	in, ok := decodeOrderInput(w, r)
	if !ok {
		return
	}
	if _, err := h.Svc.Save(id, in); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]uint{"id": id})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *OrderHandler) Refs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	states, locations, err := h.Svc.Refs()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_refs", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"states": states, "locations": locations})
}

// Check: GET /orders/check?item_id=&qty= is the add-line stock check.
// It runs when a line is picked; saving an order never re-checks.
func (h *OrderHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.MethodNotAllowed(w, "GET")
		return
	}
	itemID, err := strconv.ParseUint(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_item_id", nil)
		return
	}
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_qty", nil)
		return
	}
	if err := h.Svc.CheckAvailability(uint(itemID), qty); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
