package repositories

import (
	"errors"
	"strings"
	"time"

	"nibash_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByEmailAndRole(email string, role models.UserRole) (*models.User, error)
	Create(user *models.User) error
	CreateWithTx(tx *gorm.DB, user *models.User) error
	UpdateStatus(userID string, status models.UserStatus) error
	UpdatePassword(userID, hashed string) error
	UpdateLastActive(userID string) error
	FindAll() ([]models.User, error)
	FindWithPlaintextPasswords(limit int) ([]models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Professional").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Professional").
		First(&user, "lower(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmailAndRole(email string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Professional").
		First(&user, "lower(email) = ? AND role = ?", strings.ToLower(email), role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.CreateWithTx(r.db, user)
}

// CreateWithTx inserts the user inside the caller's transaction. The unique
// index on email is the authority on duplicates: two concurrent signups for
// the same address race past any pre-check, so the duplicate-key error is
// translated here instead.
func (r *UserRepositoryImpl) CreateWithTx(tx *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := tx.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(userID string, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, hashed string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password":   hashed,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateLastActive is best-effort bookkeeping on session validation.
func (r *UserRepositoryImpl) UpdateLastActive(userID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_active", time.Now()).Error
}

func (r *UserRepositoryImpl) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// FindWithPlaintextPasswords returns rows still holding legacy plaintext
// passwords (no bcrypt prefix). Used only by the migration worker.
func (r *UserRepositoryImpl) FindWithPlaintextPasswords(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("password NOT LIKE '$2a$%' AND password NOT LIKE '$2b$%' AND password NOT LIKE '$2y$%'").
		Limit(limit).
		Find(&users).Error
	return users, err
}
