package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
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

func testStore(t *testing.T) *assets.Store {
	t.Helper()
	base := t.TempDir()
	return assets.NewStore(filepath.Join(base, "item_images"), filepath.Join(base, "resources"))
}

type fixtures struct {
	vendors  map[string]models.Vendor
	makers   map[string]models.Maker
	groups   map[string]models.Group
	measure  models.Measure
	state    models.OrderState
	location models.PickupLocation
}

// seedFixtures inserts a minimal reference set plus a few stock items.
func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		vendors: map[string]models.Vendor{},
		makers:  map[string]models.Maker{},
		groups:  map[string]models.Group{},
	}
	for _, title := range []string{"Prime Supply", "City Stock"} {
		v := models.Vendor{Title: title}
		if err := db.Create(&v).Error; err != nil {
			t.Fatalf("vendor: %v", err)
		}
		f.vendors[title] = v
	}
	for _, title := range []string{"Urban", "Altitude"} {
		m := models.Maker{Title: title}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("maker: %v", err)
		}
		f.makers[title] = m
	}
	for _, title := range []string{"Куртки", "Кроссовки"} {
		g := models.Group{Title: title}
		if err := db.Create(&g).Error; err != nil {
			t.Fatalf("group: %v", err)
		}
		f.groups[title] = g
	}
	f.measure = models.Measure{Title: "шт."}
	if err := db.Create(&f.measure).Error; err != nil {
		t.Fatalf("measure: %v", err)
	}
	f.state = models.OrderState{Title: "Новый"}
	if err := db.Create(&f.state).Error; err != nil {
		t.Fatalf("state: %v", err)
	}
	f.location = models.PickupLocation{Address: "г. Москва, ул. Ленина, 10"}
	if err := db.Create(&f.location).Error; err != nil {
		t.Fatalf("location: %v", err)
	}
	return f
}

func (f fixtures) item(t *testing.T, db *gorm.DB, sku, name, group, maker, vendor, about string, price float64, qty int, promo float64) models.StockItem {
	t.Helper()
	it := models.StockItem{
		SKU: sku, Name: name, About: about,
		GroupID: f.groups[group].ID, MakerID: f.makers[maker].ID, VendorID: f.vendors[vendor].ID,
		MeasureID: f.measure.ID, BasePrice: price, Qty: qty, Promo: promo,
	}
	if err := db.Create(&it).Error; err != nil {
		t.Fatalf("item %s: %v", sku, err)
	}
	return it
}
