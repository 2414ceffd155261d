package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// WebhookHandler ingests engagement callbacks from the mail provider.
type WebhookHandler struct {
	engagement *service.EngagementService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(engagement *service.EngagementService) *WebhookHandler {
	return &WebhookHandler{engagement: engagement}
}

// EmailEvent handles POST /webhooks/email-events requests.
func (h *WebhookHandler) EmailEvent(c echo.Context) error {
	var event dto.EmailEvent
	if err := c.Bind(&event); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.engagement.Apply(c.Request().Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrLeadNotFound):
			return ErrorCode(c, http.StatusNotFound, CodeLeadNotFound, "library lead not found")
		default:
			return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to record email event")
		}
	}

	return Success(c, http.StatusOK, "email event recorded", map[string]any{
		"lead_id":    lead.ID,
		"lead_score": lead.LeadScore,
	})
}
