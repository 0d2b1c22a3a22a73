package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urbangear/retail-app/internal/services"
)

func TestVendorQuickAdd(t *testing.T) {
	db := setupHandlerDB(t)
	seedRefs(t, db)
	store := testAssetStore(t)
	h := NewVendorHandler(services.NewCatalogService(db), services.NewItemService(db, store))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader(`{"title":"Север Логистик"}`))
	req.Header.Set("Content-Type", "application/json")
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate title.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader(`{"title":"Север Логистик"}`))
	req.Header.Set("Content-Type", "application/json")
	h.Create(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}

	// Listing is title-ordered and includes the new vendor.
	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/vendors", nil))
	var resp struct {
		Items []services.VendorRow `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(resp.Items))
	}
	if resp.Items[0].Title > resp.Items[1].Title {
		t.Errorf("vendors not title-ordered: %+v", resp.Items)
	}
}
