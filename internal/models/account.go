package models

import "time"

// Role codes stored on accounts. Guest is a session-only role and never
// persisted: it exists for the unauthenticated browse path.
const (
	RoleClient  = "client"
	RoleManager = "manager"
	RoleAdmin   = "admin"
	RoleGuest   = "guest"
)

// Account is a login credential set. PassHash holds the hex sha256 digest
// of the password; login compares digests for exact equality.
type Account struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	PassHash  string `gorm:"not null"`
	FullName  string `gorm:"not null"`
	RoleCode  string `gorm:"not null"` // client, manager, admin
	CreatedAt time.Time
	UpdatedAt time.Time
}
