package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

// LeadsHandler exposes the unified lead stream to administrators.
type LeadsHandler struct {
	leadsService *service.LeadsService
}

// NewLeadsHandler constructs a LeadsHandler.
func NewLeadsHandler(leadsService *service.LeadsService) *LeadsHandler {
	return &LeadsHandler{leadsService: leadsService}
}

// List handles GET /admin/leads requests.
func (h *LeadsHandler) List(c echo.Context) error {
	filter := dto.LeadListFilter{
		SourceType: strings.ToUpper(strings.TrimSpace(c.QueryParam("source_type"))),
		Status:     strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
		Search:     strings.TrimSpace(c.QueryParam("search")),
		ScoreMin:   queryInt(c, "score_min", 0),
		ScoreMax:   queryInt(c, "score_max", 100),
		Page:       queryInt(c, "page", 1),
		PerPage:    queryInt(c, "per_page", 20),
	}

	if raw := c.QueryParam("date_from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &parsed
	}
	if raw := c.QueryParam("date_to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		// Inclusive upper bound.
		end := parsed.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	leads, meta, stats, err := h.leadsService.List(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list leads")
	}

	return Success(c, http.StatusOK, "", map[string]any{
		"leads": leads,
		"meta":  meta,
		"stats": stats,
	})
}

// Activities handles GET /admin/leads/:lead_type/:lead_id/activities requests.
func (h *LeadsHandler) Activities(c echo.Context) error {
	activities, err := h.leadsService.Activities(c.Request().Context(), c.Param("lead_type"), c.Param("lead_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return ErrorCode(c, http.StatusBadRequest, CodeValidationError, err.Error())
		case errors.Is(err, repository.ErrLeadNotFound):
			return ErrorCode(c, http.StatusNotFound, CodeLeadNotFound, "lead not found")
		default:
			return ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "unable to list lead activities")
		}
	}
	return Success(c, http.StatusOK, "", map[string]any{"activities": activities})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
