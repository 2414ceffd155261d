package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/service"
)

// IntakeHandler exposes the public lead capture forms.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler constructs an IntakeHandler.
func NewIntakeHandler(intake *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

// SubmitContact handles POST /leads/contact requests.
func (h *IntakeHandler) SubmitContact(c echo.Context) error {
	var req dto.ContactIntake
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	record, err := h.intake.SubmitContact(c.Request().Context(), req)
	if err != nil {
		return intakeError(c, err)
	}
	return Success(c, http.StatusCreated, "inquiry received", record)
}

// SubmitLibraryDownload handles POST /leads/library-download requests.
func (h *IntakeHandler) SubmitLibraryDownload(c echo.Context) error {
	var req dto.LibraryDownloadIntake
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	record, err := h.intake.SubmitLibraryDownload(c.Request().Context(), req)
	if err != nil {
		return intakeError(c, err)
	}
	return Success(c, http.StatusCreated, "download request received", record)
}

// SubmitDemoRequest handles POST /leads/demo-request requests.
func (h *IntakeHandler) SubmitDemoRequest(c echo.Context) error {
	var req dto.DemoRequestIntake
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	record, err := h.intake.SubmitDemoRequest(c.Request().Context(), req)
	if err != nil {
		return intakeError(c, err)
	}
	return Success(c, http.StatusCreated, "demo request received", record)
}

// SubmitEventRegistration handles POST /leads/event-registration requests.
func (h *IntakeHandler) SubmitEventRegistration(c echo.Context) error {
	var req dto.EventRegistrationIntake
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	record, err := h.intake.SubmitEventRegistration(c.Request().Context(), req)
	if err != nil {
		return intakeError(c, err)
	}
	return Success(c, http.StatusCreated, "event registration received", record)
}

// SubmitPartnership handles POST /leads/partnership requests.
func (h *IntakeHandler) SubmitPartnership(c echo.Context) error {
	var req dto.PartnershipIntake
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	record, err := h.intake.SubmitPartnership(c.Request().Context(), req)
	if err != nil {
		return intakeError(c, err)
	}
	return Success(c, http.StatusCreated, "partnership proposal received", record)
}

func intakeError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrValidation) {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Error(c, http.StatusInternalServerError, "unable to save lead")
}
