package models

import "time"

// Reference tables: simple named rows keyed by a unique title. Created at
// bootstrap or by admin action, rarely mutated afterwards.

type Vendor struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Maker struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Measure struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderState struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"uniqueIndex;not null"`
}

type PickupLocation struct {
	ID      uint   `gorm:"primaryKey"`
	Address string `gorm:"uniqueIndex;not null"`
}
