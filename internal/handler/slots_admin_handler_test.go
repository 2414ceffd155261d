package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service"
)

func slotsHandlerFixture(repo *stubSlotsRepo) *SlotsAdminHandler {
	return NewSlotsAdminHandler(service.NewSlotsService(repo))
}

func TestSlotsAdminHandler_Create(t *testing.T) {
	e := echo.New()
	handler := slotsHandlerFixture(&stubSlotsRepo{})
	start := time.Now().Add(48 * time.Hour).UTC()

	body, _ := json.Marshal(map[string]any{
		"title":        "Intro call",
		"start_time":   start.Format(time.RFC3339),
		"end_time":     start.Add(time.Hour).Format(time.RFC3339),
		"max_bookings": 3,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/meeting-slots", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
}

func TestSlotsAdminHandler_CreateValidation(t *testing.T) {
	e := echo.New()
	handler := slotsHandlerFixture(&stubSlotsRepo{})

	body, _ := json.Marshal(map[string]any{"title": "", "max_bookings": 0})
	req := httptest.NewRequest(http.MethodPost, "/admin/meeting-slots", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
}

func TestSlotsAdminHandler_DeleteNotFound(t *testing.T) {
	e := echo.New()
	handler := slotsHandlerFixture(&stubSlotsRepo{
		deleteSlot: func(ctx context.Context, id uuid.UUID) error {
			return repository.ErrSlotNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/meeting-slots/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	_ = handler.Delete(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
	}
}

func TestSlotsAdminHandler_Update(t *testing.T) {
	e := echo.New()
	slotID := uuid.New()
	handler := slotsHandlerFixture(&stubSlotsRepo{
		update: func(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error) {
			avail := false
			if patch.IsAvailable == nil || *patch.IsAvailable != avail {
				t.Fatalf("patch = %+v", patch)
			}
			return &entity.MeetingSlot{ID: id, Title: "Intro call", IsAvailable: avail}, nil
		},
	})

	body, _ := json.Marshal(map[string]any{"is_available": false})
	req := httptest.NewRequest(http.MethodPatch, "/admin/meeting-slots/"+slotID.String(), bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(slotID.String())

	if err := handler.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}
