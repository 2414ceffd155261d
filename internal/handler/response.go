package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse describes the standard envelope returned by the API. Code is
// only set on error responses and identifies the failure independently of
// the human-readable message.
type APIResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Machine-readable error codes carried in the error envelope.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeTokenNotFound         = "TOKEN_NOT_FOUND"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenAlreadyUsed      = "TOKEN_ALREADY_USED"
	CodeLeadNotFound          = "LEAD_NOT_FOUND"
	CodeInvalidLead           = "INVALID_LEAD"
	CodeNoSlotsAvailable      = "NO_SLOTS_AVAILABLE"
	CodeSlotNotFound          = "SLOT_NOT_FOUND"
	CodeSlotNotAvailable      = "SLOT_NOT_AVAILABLE"
	CodeBookingNotFound       = "BOOKING_NOT_FOUND"
	CodeBookingNotCancellable = "BOOKING_NOT_CANCELLABLE"
	CodeInternalError         = "INTERNAL_ERROR"
)

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response without a specific code. The code defaults
// to VALIDATION_ERROR for 4xx statuses and INTERNAL_ERROR otherwise.
func Error(c echo.Context, status int, message string) error {
	code := CodeInternalError
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		code = CodeValidationError
	}
	return ErrorCode(c, status, code, message)
}

// ErrorCode sends an error response carrying a machine-readable code.
func ErrorCode(c echo.Context, status int, code, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	}
	return c.JSON(status, payload)
}
