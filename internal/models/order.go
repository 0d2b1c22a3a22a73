package models

import "time"

// DateLayout is the calendar-date format stored on order headers.
const DateLayout = "2006-01-02"

// SalesOrder is an order header. CreatedOn/IssuedOn are ISO calendar dates
// stored as text; no ordering between the two is enforced.
type SalesOrder struct {
	ID           uint             `gorm:"primaryKey"`
	OrderCode    string           `gorm:"uniqueIndex;not null"`
	CustomerName string           `gorm:"not null"`
	StateID      uint             `gorm:"not null"`
	State        OrderState       `gorm:"foreignKey:StateID"`
	LocationID   uint             `gorm:"not null"`
	Location     PickupLocation   `gorm:"foreignKey:LocationID"`
	CreatedOn    string           `gorm:"not null"`
	IssuedOn     string           `gorm:"not null"`
	Lines        []SalesOrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SalesOrderLine captures item, quantity and the unit price at time of
// sale. Lines are replaced wholesale on every order edit; identity is not
// preserved across edits.
type SalesOrderLine struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"not null;index"`
	ItemID    uint      `gorm:"not null"`
	Item      StockItem `gorm:"foreignKey:ItemID"`
	Qty       int       `gorm:"not null"`
	UnitPrice float64   `gorm:"not null"`
}
