package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/models"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Account{}, &models.Vendor{}, &models.Maker{}, &models.Group{}, &models.Measure{},
		&models.StockItem{}, &models.OrderState{}, &models.PickupLocation{},
		&models.SalesOrder{}, &models.SalesOrderLine{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testAssetStore(t *testing.T) *assets.Store {
	t.Helper()
	base := t.TempDir()
	return assets.NewStore(filepath.Join(base, "item_images"), filepath.Join(base, "resources"))
}

// sessionCookie creates an account with the given role and returns a
// signed cookie for it.
func sessionCookie(t *testing.T, db *gorm.DB, role string) *http.Cookie {
	t.Helper()
	account := models.Account{
		Username: role + "-tester",
		PassHash: auth.Digest("secret"),
		FullName: "Test " + role,
		RoleCode: role,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	w := httptest.NewRecorder()
	auth.CreateSession(w, account.ID, role)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}
	return cookies[0]
}

type refIDs struct {
	group, maker, vendor, measure, state, location uint
}

func seedRefs(t *testing.T, db *gorm.DB) refIDs {
	t.Helper()
	group := models.Group{Title: "Куртки"}
	maker := models.Maker{Title: "Urban"}
	vendor := models.Vendor{Title: "Prime Supply"}
	measure := models.Measure{Title: "шт."}
	state := models.OrderState{Title: "Новый"}
	location := models.PickupLocation{Address: "г. Москва, ул. Ленина, 10"}
	for _, rec := range []any{&group, &maker, &vendor, &measure, &state, &location} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed ref: %v", err)
		}
	}
	return refIDs{
		group: group.ID, maker: maker.ID, vendor: vendor.ID,
		measure: measure.ID, state: state.ID, location: location.ID,
	}
}

func seedItem(t *testing.T, db *gorm.DB, refs refIDs, sku string, price float64, qty int, promo float64) models.StockItem {
	t.Helper()
	item := models.StockItem{
		SKU: sku, Name: "Товар " + sku,
		GroupID: refs.group, MakerID: refs.maker, VendorID: refs.vendor, MeasureID: refs.measure,
		BasePrice: price, Qty: qty, Promo: promo,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}
