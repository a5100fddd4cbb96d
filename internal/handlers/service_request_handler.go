package handlers

import (
	"net/http"

	"nibash_backend/internal/services"
	"nibash_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ServiceRequestHandler struct {
	*BaseHandler
	requestService services.ServiceRequestService
}

func NewServiceRequestHandler(base *BaseHandler, requestService services.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.requestService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"request": request,
	})
}

// Mine returns the authenticated customer's own requests, newest first.
func (h *ServiceRequestHandler) Mine(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListByCustomer(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}

// List returns the request queue filtered by status. Professionals poll the
// default pending queue; role enforcement sits in the route middleware.
func (h *ServiceRequestHandler) List(c *gin.Context) {
	var query dto.ListServiceRequestsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	requests, err := h.requestService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}
