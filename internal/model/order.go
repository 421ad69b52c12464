package model

import "time"

// Order statuses.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order represents a batch of phones to inspect. The order number is a
// system-generated 12-digit string, unique across all orders.
type Order struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	OrderNumber      string     `gorm:"uniqueIndex;size:12;not null" json:"orderNumber"`
	ExpectedQuantity int        `gorm:"not null" json:"expectedQuantity"`
	Notes            string     `json:"notes"`
	Status           string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedBy        int64      `gorm:"index" json:"createdBy"`
	CreatedAt        time.Time  `gorm:"not null" json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt"`

	// Associations
	Creator     Account      `gorm:"foreignKey:CreatedBy" json:"-"`
	Inspections []Inspection `gorm:"foreignKey:OrderID" json:"-"`
}
