package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/db"
	"github.com/urbangear/retail-app/internal/server"
)

// The e2e test drives the real startup path: file-backed database,
// migrations, asset bootstrap, seed, then a login -> browse -> order
// flow over the assembled handler.
func setupApp(t *testing.T) http.Handler {
	t.Helper()
	base := t.TempDir()
	dbConn, err := db.ConnectAndMigrate(filepath.Join(base, "e2e.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	store := assets.NewStore(filepath.Join(base, "item_images"), filepath.Join(base, "resources"))
	if err := store.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := db.Seed(dbConn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return server.New(dbConn, store, zap.NewNop())
}

func TestLoginBrowseOrderFlow(t *testing.T) {
	app := setupApp(t)

	// Login as the seeded admin.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"root","password":"root123"}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	var sess *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			sess = c
			break
		}
	}
	if sess == nil {
		t.Fatal("no session cookie")
	}

	// Browse the seeded catalog with a filter.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/catalog?sort=qty_asc", nil)
	req.AddCookie(sess)
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200 got %d", rr.Code)
	}
	var catalog struct {
		Items []struct {
			ID        uint    `json:"id"`
			BasePrice float64 `json:"base_price"`
			Qty       int     `json:"qty"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(catalog.Items) == 0 {
		t.Fatal("expected seeded items")
	}
	for i := 1; i < len(catalog.Items); i++ {
		if catalog.Items[i].Qty < catalog.Items[i-1].Qty {
			t.Fatalf("catalog not sorted by qty ascending")
		}
	}

	// Load order refs and create an order for the first item.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders/refs", nil)
	req.AddCookie(sess)
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("refs: expected 200 got %d", rr.Code)
	}
	var refs struct {
		States []struct {
			ID uint `json:"ID"`
		} `json:"states"`
		Locations []struct {
			ID uint `json:"ID"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &refs); err != nil {
		t.Fatalf("decode refs: %v", err)
	}
	if len(refs.States) == 0 || len(refs.Locations) == 0 {
		t.Fatal("expected seeded states and locations")
	}

	item := catalog.Items[0]
	body := fmt.Sprintf(`{"order_code":"SO-E2E-1","customer_name":"Смирнов Алексей","state_id":%d,"location_id":%d,"created_on":"2026-02-01","issued_on":"2026-02-05","lines":[{"item_id":%d,"qty":1,"unit_price":%.2f}]}`,
		refs.States[0].ID, refs.Locations[0].ID, item.ID, item.BasePrice)
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sess)
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201 got %d body=%s", rr.Code, rr.Body.String())
	}
	var created map[string]uint
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	// Read it back and check the captured total.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/get?id=%d", created["id"]), nil)
	req.AddCookie(sess)
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get order: expected 200 got %d", rr.Code)
	}
	var detail struct {
		OrderCode string  `json:"order_code"`
		Total     float64 `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.OrderCode != "SO-E2E-1" || detail.Total != item.BasePrice {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}
