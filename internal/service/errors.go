package service

import "errors"

// Sentinel errors mapped to response codes by the handler layer.
var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidLeadType  = errors.New("invalid lead type")
	ErrLeadHasNoEmail   = errors.New("lead has no email address")
	ErrNoSlotsAvailable = errors.New("no meeting slots available")
	ErrInvalidToken     = errors.New("invalid token format")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrEmailSendFailed  = errors.New("email send failed")
)
