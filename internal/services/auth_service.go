package services

import (
	"strings"

	"nibash_backend/internal/auth"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/models"
	"nibash_backend/internal/pkg/email"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/services/dto"
	"nibash_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Signup(req *dto.SignupRequest) (*dto.SignupResponse, error)
	Session(userID string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	emailProvider    email.Provider
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		db:               db,
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		emailProvider:    emailProvider,
	}
}

// Login authenticates by email and password, optionally scoped to a role.
// Unknown email, wrong password and wrong role all collapse into the same
// ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *models.User
	var err error

	if req.Role != "" {
		user, err = s.userRepo.FindByEmailAndRole(req.Email, models.UserRole(req.Role))
	} else {
		user, err = s.userRepo.FindByEmail(req.Email)
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	ok, legacy := auth.VerifyPassword(user.Password, req.Password)
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if legacy {
		logger.Warn("login against legacy plaintext password", "user_id", user.ID)
	}

	if !models.AcceptedLoginStatuses[user.Status] {
		return nil, apperrors.ErrAccountStatus(string(user.Status))
	}

	token, err := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateLastActive(user.ID); err != nil {
		logger.Warn("failed to update last_active", "user_id", user.ID, "error", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserResponse(user),
	}, nil
}

// Signup registers a customer or professional. The user row, the
// professional profile and its wallet are written in one transaction, so a
// failed profile insert never leaves an orphaned account behind.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) (*dto.SignupResponse, error) {
	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleCustomer
	}
	if role != models.UserRoleCustomer && role != models.UserRoleProfessional {
		return nil, apperrors.ErrInvalidUserRole
	}

	if role == models.UserRoleProfessional {
		if strings.TrimSpace(req.NIDNumber) == "" {
			return nil, apperrors.ValidationError("nid_number is required for professional role")
		}
		if strings.TrimSpace(req.ServiceType) == "" {
			return nil, apperrors.ValidationError("service_type is required for professional role")
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	status := models.UserStatusActive
	if role == models.UserRoleProfessional {
		// Professionals wait for admin approval before they can log in.
		status = models.UserStatusPending
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     role,
		Status:   status,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateWithTx(tx, user); err != nil {
			return err
		}
		if role != models.UserRoleProfessional {
			return nil
		}
		professional := &models.Professional{
			UserID:      user.ID,
			ServiceType: req.ServiceType,
			NIDNumber:   req.NIDNumber,
		}
		if err := s.professionalRepo.CreateWithTx(tx, professional); err != nil {
			return err
		}
		wallet := &models.Wallet{ProfessionalID: professional.ID}
		if err := s.professionalRepo.CreateWalletWithTx(tx, wallet); err != nil {
			return err
		}
		user.Professional = professional
		return nil
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SignupResponse{
		Message: "Registration successful",
		User:    buildUserResponse(user),
	}

	if status == models.UserStatusActive {
		token, err := auth.GenerateToken(user.ID, user.Email, string(user.Role))
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.Token = token
	} else {
		resp.Message = "Registration received. Your account is pending approval."
	}

	s.sendWelcomeEmail(user)

	return resp, nil
}

// Session resolves the authenticated user's current profile. The account
// status is re-checked on every call: suspending a user ends their session
// even while the token itself is still valid.
func (s *AuthServiceImpl) Session(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrTokenMalformed
		}
		return nil, apperrors.InternalError(err)
	}

	if !models.AcceptedLoginStatuses[user.Status] {
		return nil, apperrors.ErrAccountStatus(string(user.Status))
	}

	if err := s.userRepo.UpdateLastActive(user.ID); err != nil {
		logger.Warn("failed to update last_active", "user_id", user.ID, "error", err)
	}

	return buildUserResponse(user), nil
}

func (s *AuthServiceImpl) sendWelcomeEmail(user *models.User) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := s.emailProvider.SendWelcome(user.Email, user.FullName); err != nil {
			logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}()
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Phone:        user.Phone,
		Address:      user.Address,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Professional: user.Professional,
	}
	return resp
}
