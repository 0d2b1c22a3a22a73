package models

import (
	"math"
	"time"
)

// FinalPrice applies the promotional discount percentage to a base
// price, rounded half away from zero to 2 decimals.
func FinalPrice(base, promo float64) float64 {
	return math.Round(base*(1-promo/100.0)*100) / 100
}

// StockItem is a catalog row. BasePrice and Qty are constrained
// non-negative and Promo to 0..100 at validation time; PhotoPath points at
// a managed asset file or is empty (placeholder shown instead).
type StockItem struct {
	ID        uint    `gorm:"primaryKey"`
	SKU       string  `gorm:"column:sku;uniqueIndex;not null"`
	Name      string  `gorm:"not null"`
	GroupID   uint    `gorm:"not null"`
	Group     Group   `gorm:"foreignKey:GroupID"`
	About     string  `gorm:"not null;default:''"`
	MakerID   uint    `gorm:"not null"`
	Maker     Maker   `gorm:"foreignKey:MakerID"`
	VendorID  uint    `gorm:"not null"`
	Vendor    Vendor  `gorm:"foreignKey:VendorID"`
	BasePrice float64 `gorm:"not null"`
	MeasureID uint    `gorm:"not null"`
	Measure   Measure `gorm:"foreignKey:MeasureID"`
	Qty       int     `gorm:"not null"`
	Promo     float64 `gorm:"not null;default:0"` // discount percent 0..100
	PhotoPath string
	CreatedAt time.Time
	UpdatedAt time.Time
}
