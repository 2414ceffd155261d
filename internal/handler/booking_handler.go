package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// BookingHandler exposes the public, token-gated booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Availability handles GET /meetings/availability requests.
func (h *BookingHandler) Availability(c echo.Context) error {
	resp, err := h.bookings.Availability(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return tokenError(c, err)
	}
	return Success(c, http.StatusOK, "", resp)
}

// Book handles POST /meetings/book requests.
func (h *BookingHandler) Book(c echo.Context) error {
	var req dto.BookRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.bookings.Book(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return ErrorCode(c, http.StatusBadRequest, CodeValidationError, "meeting_slot_id must be a valid id")
		case errors.Is(err, repository.ErrSlotNotAvailable), errors.Is(err, repository.ErrSlotNotFound):
			return ErrorCode(c, http.StatusConflict, CodeSlotNotAvailable, "the selected slot is no longer available")
		default:
			return tokenError(c, err)
		}
	}

	return Success(c, http.StatusCreated, "meeting booked", resp)
}

// tokenError maps token lifecycle failures onto HTTP statuses and error
// codes shared by the availability and booking endpoints.
func tokenError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrValidation):
		return ErrorCode(c, http.StatusBadRequest, CodeInvalidToken, "invalid booking token")
	case errors.Is(err, repository.ErrTokenNotFound):
		return ErrorCode(c, http.StatusNotFound, CodeTokenNotFound, "booking token not found")
	case errors.Is(err, service.ErrTokenExpired):
		return ErrorCode(c, http.StatusGone, CodeTokenExpired, "booking token has expired")
	case errors.Is(err, service.ErrTokenAlreadyUsed):
		return ErrorCode(c, http.StatusGone, CodeTokenAlreadyUsed, "booking token was already used")
	case errors.Is(err, repository.ErrLeadNotFound):
		return ErrorCode(c, http.StatusNotFound, CodeLeadNotFound, "lead not found")
	default:
		return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to process booking request")
	}
}
