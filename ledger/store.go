package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"feeportal/model"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateEntry(ctx context.Context, e *model.LedgerEntry) error {
	return s.translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *GormStore) FindByOrderID(ctx context.Context, orderID string) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no ledger entry for order %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, s.translate(err)
	}
	return &e, nil
}

func (s *GormStore) MarkPaid(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Where("order_id = ? AND status IN ?", orderID, []string{model.StatusCreated, model.StatusPending}).
		Updates(map[string]interface{}{
			"status":         model.StatusPaid,
			"payment_id":     paymentID,
			"signature":      signature,
			"payment_method": "razorpay",
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, s.translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) MarkFailed(ctx context.Context, orderID string) error {
	// paid is terminal; a late failure callback must not regress it
	return s.translate(s.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Where("order_id = ? AND status IN ?", orderID, []string{model.StatusCreated, model.StatusPending}).
		Updates(map[string]interface{}{
			"status":     model.StatusFailed,
			"updated_at": time.Now(),
		}).Error)
}

func (s *GormStore) ApplyBalance(ctx context.Context, userID uint, amount float64) error {
	res := s.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"amount_paid":    gorm.Expr("amount_paid + ?", amount),
			"pending_amount": gorm.Expr("GREATEST(pending_amount - ?, 0)", amount),
		})
	if res.Error != nil {
		return s.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no payer with id %d", ErrNotFound, userID)
	}
	return nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error) {
	var list []model.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, s.translate(err)
}

func (s *GormStore) ListAll(ctx context.Context) ([]model.LedgerEntry, error) {
	var list []model.LedgerEntry
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&list).Error
	return list, s.translate(err)
}

// translate turns a blown deadline into the typed unavailable error so
// handlers can answer 503 instead of racing queries against timers.
func (s *GormStore) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
