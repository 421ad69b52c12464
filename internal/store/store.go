package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"gorm.io/gorm"

	"phone-inspection-backend/internal/model"
)

// orderNumberAttempts bounds the generate-and-retry loop for order numbers.
const orderNumberAttempts = 5

var orderNumberPattern = regexp.MustCompile(`^\d{12}$`)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateAccount(ctx context.Context, username, passwordHash, role string) (*model.Account, error)
	AccountByUsername(ctx context.Context, username string) (*model.Account, error)
	AccountByID(ctx context.Context, id int64) (*model.Account, error)

	CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error)
	OrderByID(ctx context.Context, id int64) (*model.Order, error)
	OrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	UpdateOrder(ctx context.Context, id int64, update OrderUpdate) error
	UpdateOrderStatus(ctx context.Context, id int64, status string) error

	CreateInspection(ctx context.Context, in CreateInspectionInput) (*model.Inspection, error)
	InspectionByID(ctx context.Context, id int64) (*model.Inspection, error)
	InspectionByIMEI(ctx context.Context, imei string, orderID int64) (*model.Inspection, error)
	InspectionsByOrder(ctx context.Context, orderID int64) ([]model.Inspection, error)
	UpdateInspectionStatus(ctx context.Context, id int64, status string, at time.Time) error
	UpdateInspectionImages(ctx context.Context, id int64, images []string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Accounts ---

func (s *gormStore) CreateAccount(ctx context.Context, username, passwordHash, role string) (*model.Account, error) {
	if role == "" {
		role = model.RoleInspector
	}
	account := model.Account{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *gormStore) AccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up account %q: %w", username, err)
	}
	return &account, nil
}

func (s *gormStore) AccountByID(ctx context.Context, id int64) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up account %d: %w", id, err)
	}
	return &account, nil
}

// --- Orders ---

// randomOrderNumber returns a random 12-digit numeric string.
func randomOrderNumber() string {
	return fmt.Sprintf("%d", 100000000000+rand.Int64N(900000000000))
}

// CreateOrder inserts a new order with a generated order number, retrying a
// bounded number of times when the number collides with an existing one.
func (s *gormStore) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order := model.Order{
			OrderNumber:      randomOrderNumber(),
			ExpectedQuantity: in.ExpectedQuantity,
			Notes:            in.Notes,
			Status:           model.OrderStatusActive,
			CreatedBy:        in.CreatedBy,
		}
		err := s.db.WithContext(ctx).Create(&order).Error
		if err == nil {
			return &order, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return nil, ErrOrderNumbers
}

func (s *gormStore) OrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up order %d: %w", id, err)
	}
	return &order, nil
}

func (s *gormStore) OrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up order %q: %w", orderNumber, err)
	}
	return &order, nil
}

func (s *gormStore) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	return orders, nil
}

// UpdateOrder applies a partial update. An order number that does not match
// the 12-digit format is rejected before touching the database.
func (s *gormStore) UpdateOrder(ctx context.Context, id int64, update OrderUpdate) error {
	updates := make(map[string]any)
	if update.OrderNumber != nil {
		if !orderNumberPattern.MatchString(*update.OrderNumber) {
			return ErrInvalidOrderNumber
		}
		updates["order_number"] = *update.OrderNumber
	}
	if update.ExpectedQuantity != nil {
		updates["expected_quantity"] = *update.ExpectedQuantity
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.Status != nil {
		if !validOrderStatus(*update.Status) {
			return ErrInvalidStatus
		}
		updates["status"] = *update.Status
		if *update.Status == model.OrderStatusCompleted {
			updates["completed_at"] = time.Now()
		}
	}
	if len(updates) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("order number already in use: %w", ErrInvalidOrderNumber)
		}
		return fmt.Errorf("failed to update order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validOrderStatus(status string) bool {
	switch status {
	case model.OrderStatusActive, model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}

// UpdateOrderStatus transitions an order to the given status. The status set
// is closed; "completed" stamps the completion time.
func (s *gormStore) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if !validOrderStatus(status) {
		return ErrInvalidStatus
	}
	updates := map[string]any{"status": status}
	if status == model.OrderStatusCompleted {
		updates["completed_at"] = time.Now()
	}
	res := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Inspections ---

// CreateInspection inserts a new inspection in the "scanning" state. The
// unique index on (imei, order_id) is the duplicate guard; a violation is
// translated into a DuplicateIMEIError carrying the existing record.
func (s *gormStore) CreateInspection(ctx context.Context, in CreateInspectionInput) (*model.Inspection, error) {
	now := time.Now()
	inspection := model.Inspection{
		IMEI:        in.IMEI,
		OrderID:     in.OrderID,
		InspectorID: in.InspectorID,
		PhoneSpecs:  in.PhoneSpecs,
		Grade:       in.Grade,
		Defects:     model.StringList(in.Defects),
		Notes:       in.Notes,
		Images:      model.StringList(in.Images),
		Status:      model.InspectionStatusScanning,
		ScannedAt:   &now,
	}
	if err := s.db.WithContext(ctx).Create(&inspection).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.InspectionByIMEI(ctx, in.IMEI, in.OrderID)
			if lookupErr != nil {
				return nil, fmt.Errorf("duplicate imei for order %d but existing record not readable: %w", in.OrderID, lookupErr)
			}
			return nil, &DuplicateIMEIError{Existing: existing}
		}
		return nil, fmt.Errorf("failed to create inspection: %w", err)
	}
	return &inspection, nil
}

func (s *gormStore) InspectionByID(ctx context.Context, id int64) (*model.Inspection, error) {
	var inspection model.Inspection
	err := s.db.WithContext(ctx).First(&inspection, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up inspection %d: %w", id, err)
	}
	return &inspection, nil
}

func (s *gormStore) InspectionByIMEI(ctx context.Context, imei string, orderID int64) (*model.Inspection, error) {
	var inspection model.Inspection
	err := s.db.WithContext(ctx).
		Where("imei = ? AND order_id = ?", imei, orderID).
		First(&inspection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up inspection for imei %s order %d: %w", imei, orderID, err)
	}
	return &inspection, nil
}

func (s *gormStore) InspectionsByOrder(ctx context.Context, orderID int64) ([]model.Inspection, error) {
	var inspections []model.Inspection
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&inspections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections for order %d: %w", orderID, err)
	}
	return inspections, nil
}

// statusRank orders the inspection lifecycle. Unknown statuses rank -1.
func statusRank(status string) int {
	switch status {
	case model.InspectionStatusScanning:
		return 0
	case model.InspectionStatusPhotographed:
		return 1
	case model.InspectionStatusCompleted:
		return 2
	}
	return -1
}

// UpdateInspectionStatus transitions an inspection forward through
// scanning -> photographed -> completed, stamping the matching timestamp.
// Unknown and backward targets are rejected.
func (s *gormStore) UpdateInspectionStatus(ctx context.Context, id int64, status string, at time.Time) error {
	targetRank := statusRank(status)
	if targetRank < 0 {
		return ErrInvalidStatus
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inspection model.Inspection
		if err := tx.First(&inspection, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up inspection %d: %w", id, err)
		}

		if targetRank <= statusRank(inspection.Status) {
			return ErrInvalidStatus
		}

		updates := map[string]any{"status": status}
		switch status {
		case model.InspectionStatusPhotographed:
			updates["photographed_at"] = at
		case model.InspectionStatusCompleted:
			updates["completed_at"] = at
		}

		if err := tx.Model(&model.Inspection{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update inspection %d status: %w", id, err)
		}
		return nil
	})
}

// UpdateInspectionImages replaces the inspection's image list.
func (s *gormStore) UpdateInspectionImages(ctx context.Context, id int64, images []string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Inspection{}).
		Where("id = ?", id).
		Update("images", model.StringList(images))
	if res.Error != nil {
		return fmt.Errorf("failed to update inspection %d images: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
