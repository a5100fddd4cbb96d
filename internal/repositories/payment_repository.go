package repositories

import (
	"errors"
	"time"

	"nibash_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	Upsert(payment *models.Payment) error
	FindByTranID(tranID string) (*models.Payment, error)
	FindByIDOrTranID(id string) (*models.Payment, error)
	MarkStalePendingFailed(olderThan time.Duration) (int64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// Upsert writes the payment keyed by tran_id. The gateway retries IPNs, so
// a second notification for the same transaction must update the existing
// row, not insert a duplicate.
func (r *PaymentRepositoryImpl) Upsert(payment *models.Payment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tran_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "val_id", "gateway_payload", "paid_at", "updated_at",
		}),
	}).Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByTranID(tranID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "tran_id = ?", tranID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByIDOrTranID resolves a lookup that may carry either our row id or
// the gateway transaction id.
func (r *PaymentRepositoryImpl) FindByIDOrTranID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id::text = ? OR tran_id = ?", id, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// MarkStalePendingFailed flips pending payments older than the cutoff to
// failed. Called by the payment worker.
func (r *PaymentRepositoryImpl) MarkStalePendingFailed(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := r.db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":     models.PaymentStatusFailed,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
