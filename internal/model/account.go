package model

import "time"

// Account roles.
const (
	RoleInspector = "inspector"
)

// Account represents a user who can sign in and record inspections.
type Account struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:128;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:inspector" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}
