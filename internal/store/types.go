package store

import (
	"errors"
	"fmt"

	"phone-inspection-backend/internal/model"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound           = errors.New("record not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidOrderNumber = errors.New("order number must be exactly 12 digits")
	ErrOrderNumbers       = errors.New("could not generate a unique order number")
)

// DuplicateIMEIError reports a conflicting inspection for the same
// (imei, order) pair and carries the record that already exists.
type DuplicateIMEIError struct {
	Existing *model.Inspection
}

func (e *DuplicateIMEIError) Error() string {
	return fmt.Sprintf("imei %s already inspected for order %d", e.Existing.IMEI, e.Existing.OrderID)
}

// CreateOrderInput carries the caller-supplied fields for a new order.
// The order number is generated by the store.
type CreateOrderInput struct {
	ExpectedQuantity int
	Notes            string
	CreatedBy        int64
}

// OrderUpdate carries optional order fields for a partial update.
// Nil pointers leave the column untouched.
type OrderUpdate struct {
	OrderNumber      *string
	ExpectedQuantity *int
	Notes            *string
	Status           *string
}

// CreateInspectionInput carries the scan-time data for a new inspection.
type CreateInspectionInput struct {
	IMEI        string
	OrderID     int64
	InspectorID int64
	PhoneSpecs  model.PhoneSpecs
	Grade       string
	Defects     []string
	Notes       string
	Images      []string
}
