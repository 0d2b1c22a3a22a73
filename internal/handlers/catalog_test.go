package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/internal/services"
)

type catalogResponse struct {
	Items   []services.CatalogRow   `json:"items"`
	Summary services.CatalogSummary `json:"summary"`
}

func TestCatalogManagerFilters(t *testing.T) {
	db := setupHandlerDB(t)
	refs := seedRefs(t, db)
	seedItem(t, db, refs, "UG-A101", 7990, 12, 10)
	seedItem(t, db, refs, "UG-B210", 6490, 5, 0)

	h := NewCatalogHandler(services.NewCatalogService(db))
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog", h.List)
	wrapped := auth.Middleware(mux)

	cookie := sessionCookie(t, db, "manager")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog?q=ug-a101&sort=qty_desc", nil)
	req.AddCookie(cookie)
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp catalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].SKU != "UG-A101" {
		t.Errorf("expected filtered single row, got %+v", resp.Items)
	}
	if resp.Items[0].FinalPrice != 7191.00 {
		t.Errorf("final price = %.2f, want 7191.00", resp.Items[0].FinalPrice)
	}
}

func TestCatalogGuestSeesEverything(t *testing.T) {
	db := setupHandlerDB(t)
	refs := seedRefs(t, db)
	seedItem(t, db, refs, "UG-A101", 7990, 12, 10)
	seedItem(t, db, refs, "UG-B210", 6490, 0, 20)

	h := NewCatalogHandler(services.NewCatalogService(db))
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog", h.List)
	wrapped := auth.Middleware(mux)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog?q=ug-a101", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp catalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 {
		t.Errorf("guest must see all items, got %d", len(resp.Items))
	}
	if resp.Summary.Total != 2 || resp.Summary.OutOfStock != 1 || resp.Summary.BigPromo != 1 {
		t.Errorf("unexpected summary: %+v", resp.Summary)
	}
}
