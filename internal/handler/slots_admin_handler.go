package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// SlotsAdminHandler exposes meeting slot management to administrators.
type SlotsAdminHandler struct {
	slots *service.SlotsService
}

// NewSlotsAdminHandler constructs a SlotsAdminHandler.
func NewSlotsAdminHandler(slots *service.SlotsService) *SlotsAdminHandler {
	return &SlotsAdminHandler{slots: slots}
}

// List handles GET /admin/meeting-slots requests.
func (h *SlotsAdminHandler) List(c echo.Context) error {
	slots, err := h.slots.ListSlots(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list meeting slots")
	}
	return Success(c, http.StatusOK, "", map[string]any{"meeting_slots": slots})
}

// Get handles GET /admin/meeting-slots/:id requests.
func (h *SlotsAdminHandler) Get(c echo.Context) error {
	slot, err := h.slots.GetSlot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return slotError(c, err)
	}
	return Success(c, http.StatusOK, "", slot)
}

// Create handles POST /admin/meeting-slots requests.
func (h *SlotsAdminHandler) Create(c echo.Context) error {
	var req dto.CreateSlotRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	slot, err := h.slots.CreateSlot(c.Request().Context(), req)
	if err != nil {
		return slotError(c, err)
	}
	return Success(c, http.StatusCreated, "meeting slot created", slot)
}

// Update handles PATCH /admin/meeting-slots/:id requests.
func (h *SlotsAdminHandler) Update(c echo.Context) error {
	var patch dto.UpdateSlotRequest
	if err := c.Bind(&patch); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	slot, err := h.slots.UpdateSlot(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return slotError(c, err)
	}
	return Success(c, http.StatusOK, "meeting slot updated", slot)
}

// Delete handles DELETE /admin/meeting-slots/:id requests.
func (h *SlotsAdminHandler) Delete(c echo.Context) error {
	if err := h.slots.DeleteSlot(c.Request().Context(), c.Param("id")); err != nil {
		return slotError(c, err)
	}
	return Success(c, http.StatusOK, "meeting slot deleted", nil)
}

func slotError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSlotNotFound):
		return ErrorCode(c, http.StatusNotFound, CodeSlotNotFound, "meeting slot not found")
	default:
		return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to manage meeting slot")
	}
}
