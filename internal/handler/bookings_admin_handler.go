package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// BookingsAdminHandler exposes booking management to administrators.
type BookingsAdminHandler struct {
	bookings *service.BookingService
}

// NewBookingsAdminHandler constructs a BookingsAdminHandler.
func NewBookingsAdminHandler(bookings *service.BookingService) *BookingsAdminHandler {
	return &BookingsAdminHandler{bookings: bookings}
}

// List handles GET /admin/bookings requests.
func (h *BookingsAdminHandler) List(c echo.Context) error {
	filter := dto.BookingListFilter{
		Status:  strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
	}
	if raw := c.QueryParam("meeting_slot_id"); raw != "" {
		slotID, err := uuid.Parse(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "meeting_slot_id must be a valid id")
		}
		filter.SlotID = &slotID
	}

	bookings, err := h.bookings.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list bookings")
	}
	return Success(c, http.StatusOK, "", map[string]any{"bookings": bookings})
}

// Get handles GET /admin/bookings/:id requests.
func (h *BookingsAdminHandler) Get(c echo.Context) error {
	booking, err := h.bookings.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return Success(c, http.StatusOK, "", booking)
}

// Cancel handles POST /admin/bookings/:id/cancel requests.
func (h *BookingsAdminHandler) Cancel(c echo.Context) error {
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	booking, err := h.bookings.CancelBooking(c.Request().Context(), c.Param("id"), strings.TrimSpace(req.Reason))
	if err != nil {
		return bookingError(c, err)
	}
	return Success(c, http.StatusOK, "booking cancelled", booking)
}

func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrBookingNotFound):
		return ErrorCode(c, http.StatusNotFound, CodeBookingNotFound, "booking not found")
	case errors.Is(err, repository.ErrBookingNotCancellable):
		return ErrorCode(c, http.StatusConflict, CodeBookingNotCancellable, "booking is not in a cancellable state")
	default:
		return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to manage booking")
	}
}
