package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	"github.com/zeon-projects/beach-cleanup-api/internal/service"
	appErrors "github.com/zeon-projects/beach-cleanup-api/pkg/errors"
	"github.com/zeon-projects/beach-cleanup-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.Registration, error)
	Count(ctx context.Context) (int, error)
}

// RegistrationHandler exposes the registration write path and stats.
type RegistrationHandler struct {
	registrations registrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations registrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register godoc
// @Summary Submit an event registration
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, appErrors.ErrBadRequest.Message))
		return
	}
	reg, err := h.registrations.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Registration successful", reg.ID, reg)
}

// Count godoc
// @Summary Total registrations so far
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/registrations/count [get]
func (h *RegistrationHandler) Count(c *gin.Context) {
	total, err := h.registrations.Count(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "ok", "", gin.H{"count": total})
}
