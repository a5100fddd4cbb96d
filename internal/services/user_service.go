package services

import (
	"nibash_backend/internal/logger"
	"nibash_backend/internal/models"
	"nibash_backend/internal/pkg/email"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/services/dto"
	"nibash_backend/pkg/apperrors"
)

type UserService interface {
	ListAllForAdmin() (*dto.AdminUserListResponse, error)
	UpdateStatus(userID string, req *dto.UpdateUserStatusRequest) error
}

type UserServiceImpl struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	emailProvider    email.Provider
}

func NewUserService(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	emailProvider email.Provider,
) UserService {
	return &UserServiceImpl{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		emailProvider:    emailProvider,
	}
}

// ListAllForAdmin returns every user plus the professional rows for that
// user set, newest first. The join happens here rather than in SQL so the
// payload keeps the two collections separate, the way the admin dashboard
// consumes them.
func (s *UserServiceImpl) ListAllForAdmin() (*dto.AdminUserListResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	professionals, err := s.professionalRepo.FindByUserIDs(userIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byUserID := make(map[string]*models.Professional, len(professionals))
	for i := range professionals {
		byUserID[professionals[i].UserID] = &professionals[i]
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		users[i].Professional = byUserID[users[i].ID]
		responses = append(responses, *buildUserResponse(&users[i]))
	}

	if professionals == nil {
		professionals = []models.Professional{}
	}

	return &dto.AdminUserListResponse{
		Users:         responses,
		Professionals: professionals,
	}, nil
}

// UpdateStatus sets a user's account status. Approving a professional also
// flips the verification flag on their profile.
func (s *UserServiceImpl) UpdateStatus(userID string, req *dto.UpdateUserStatusRequest) error {
	status := models.UserStatus(req.Status)
	if !models.ValidUserStatuses[status] {
		return apperrors.ErrInvalidStatus("user", "Unknown account status")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		return apperrors.InternalError(err)
	}

	if user.Role == models.UserRoleProfessional && status == models.UserStatusApproved {
		if err := s.professionalRepo.SetVerified(userID, true); err != nil &&
			!apperrors.Is(err, repositories.ErrProfessionalNotFound) {
			return apperrors.InternalError(err)
		}
	}

	s.sendStatusEmail(user, status)

	return nil
}

func (s *UserServiceImpl) sendStatusEmail(user *models.User, status models.UserStatus) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := s.emailProvider.SendStatusUpdate(user.Email, user.FullName, string(status)); err != nil {
			logger.Warn("failed to send status email", "user_id", user.ID, "error", err)
		}
	}()
}
