package handlers

import (
	"net/http"

	"nibash_backend/internal/services"
	"nibash_backend/internal/services/dto"
	"nibash_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// AdminListUsers returns every account plus the professional profiles for
// the returned set. Admin role is enforced by middleware.
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	response, err := h.userService.ListAllForAdmin()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"users":         response.Users,
		"professionals": response.Professionals,
	})
}

func (h *UserHandler) AdminUpdateUserStatus(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing user id"))
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateStatus(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated",
	})
}
