package repositories

import (
	"errors"

	"nibash_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfessionalNotFound = errors.New("professional not found")

type ProfessionalRepository interface {
	CreateWithTx(tx *gorm.DB, professional *models.Professional) error
	CreateWalletWithTx(tx *gorm.DB, wallet *models.Wallet) error
	FindByUserID(userID string) (*models.Professional, error)
	FindByUserIDs(userIDs []string) ([]models.Professional, error)
	SetVerified(userID string, verified bool) error
}

type ProfessionalRepositoryImpl struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) ProfessionalRepository {
	return &ProfessionalRepositoryImpl{db: db}
}

func (r *ProfessionalRepositoryImpl) CreateWithTx(tx *gorm.DB, professional *models.Professional) error {
	return tx.Create(professional).Error
}

func (r *ProfessionalRepositoryImpl) CreateWalletWithTx(tx *gorm.DB, wallet *models.Wallet) error {
	return tx.Create(wallet).Error
}

func (r *ProfessionalRepositoryImpl) FindByUserID(userID string) (*models.Professional, error) {
	var professional models.Professional
	err := r.db.First(&professional, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &professional, nil
}

// FindByUserIDs fetches the professional rows for a user set; the admin
// listing joins them to users in the application layer.
func (r *ProfessionalRepositoryImpl) FindByUserIDs(userIDs []string) ([]models.Professional, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var professionals []models.Professional
	err := r.db.Where("user_id IN ?", userIDs).Find(&professionals).Error
	return professionals, err
}

func (r *ProfessionalRepositoryImpl) SetVerified(userID string, verified bool) error {
	result := r.db.Model(&models.Professional{}).Where("user_id = ?", userID).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}
