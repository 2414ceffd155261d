package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// ProposalHandler exposes the admin meeting-proposal endpoint.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler constructs a ProposalHandler.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// Send handles POST /admin/leads/send-meeting-proposal requests.
func (h *ProposalHandler) Send(c echo.Context) error {
	var req dto.IssueProposalRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.proposals.IssueProposal(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLeadType):
			return ErrorCode(c, http.StatusBadRequest, CodeInvalidLead, err.Error())
		case errors.Is(err, service.ErrValidation):
			return ErrorCode(c, http.StatusBadRequest, CodeValidationError, err.Error())
		case errors.Is(err, repository.ErrLeadNotFound):
			return ErrorCode(c, http.StatusNotFound, CodeLeadNotFound, "lead not found")
		case errors.Is(err, service.ErrLeadHasNoEmail):
			return ErrorCode(c, http.StatusBadRequest, CodeInvalidLead, "lead has no email address")
		case errors.Is(err, service.ErrNoSlotsAvailable):
			return ErrorCode(c, http.StatusBadRequest, CodeNoSlotsAvailable, "no meeting slots are open in the proposal window")
		case errors.Is(err, service.ErrEmailSendFailed):
			return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "proposal email could not be sent")
		default:
			return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to send meeting proposal")
		}
	}

	return Success(c, http.StatusOK, "meeting proposal sent", resp)
}
