package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Inspection statuses, in lifecycle order.
const (
	InspectionStatusScanning     = "scanning"
	InspectionStatusPhotographed = "photographed"
	InspectionStatusCompleted    = "completed"
)

// Inspection grades.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
)

// PhoneSpecs is the device spec snapshot denormalized onto an inspection
// at creation time.
type PhoneSpecs struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Storage string `json:"storage,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Value implements driver.Valuer, storing the snapshot as JSON text so the
// same column works on both sqlite and postgres.
func (p PhoneSpecs) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *PhoneSpecs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = PhoneSpecs{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type %T for PhoneSpecs", src)
	}
}

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

// Inspection represents a single device inspection within an order. The
// (imei, order_id) pair is unique; the composite index is the authoritative
// duplicate guard.
type Inspection struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	IMEI           string     `gorm:"size:32;not null;uniqueIndex:idx_inspections_imei_order" json:"imei"`
	OrderID        int64      `gorm:"not null;uniqueIndex:idx_inspections_imei_order" json:"orderId"`
	InspectorID    int64      `gorm:"index" json:"inspectorId"`
	PhoneSpecs     PhoneSpecs `gorm:"type:text" json:"phoneSpecs"`
	Grade          string     `gorm:"size:1" json:"grade"`
	Defects        StringList `gorm:"type:text" json:"defects"`
	Notes          string     `json:"notes"`
	Images         StringList `gorm:"type:text" json:"images"`
	Status         string     `gorm:"size:16;not null;default:scanning" json:"status"`
	ScannedAt      *time.Time `json:"scannedAt"`
	PhotographedAt *time.Time `json:"photographedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`

	// Associations
	Order     Order   `gorm:"foreignKey:OrderID" json:"-"`
	Inspector Account `gorm:"foreignKey:InspectorID" json:"-"`
}
