package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbangear/retail-app/internal/models"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(
		&models.Account{}, &models.Vendor{}, &models.Maker{}, &models.Group{}, &models.Measure{},
		&models.StockItem{}, &models.OrderState{}, &models.PickupLocation{},
		&models.SalesOrder{}, &models.SalesOrderLine{},
	); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSeedIdempotent(t *testing.T) {
	d := openSeedDB(t)
	if err := Seed(d); err != nil {
		t.Fatal(err)
	}
	if err := Seed(d); err != nil {
		t.Fatal(err)
	}
	var accounts, vendors, items, orders, lines int64
	d.Model(&models.Account{}).Count(&accounts)
	d.Model(&models.Vendor{}).Count(&vendors)
	d.Model(&models.StockItem{}).Count(&items)
	d.Model(&models.SalesOrder{}).Count(&orders)
	d.Model(&models.SalesOrderLine{}).Count(&lines)
	if accounts != 3 {
		t.Fatalf("expected 3 accounts got %d", accounts)
	}
	if vendors != 3 {
		t.Fatalf("expected 3 vendors got %d", vendors)
	}
	if items != 10 {
		t.Fatalf("expected 10 demo items got %d", items)
	}
	if orders != 3 || lines != 5 {
		t.Fatalf("expected 3 orders / 5 lines got %d / %d", orders, lines)
	}
	// Baseline rows exist exactly once
	var c1 int64
	d.Model(&models.StockItem{}).Where("sku = ?", "UG-A101").Count(&c1)
	if c1 != 1 {
		t.Fatalf("demo item duplicated or missing: %d", c1)
	}
}

func TestSeedCapturesUnitPrices(t *testing.T) {
	d := openSeedDB(t)
	if err := Seed(d); err != nil {
		t.Fatal(err)
	}
	var order models.SalesOrder
	if err := d.Preload("Lines").Where("order_code = ?", "SO-2026-001").First(&order).Error; err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, l := range order.Lines {
		total += float64(l.Qty) * l.UnitPrice
	}
	if total != 14580.00 {
		t.Fatalf("expected demo order total 14580.00 got %.2f", total)
	}
}
