package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/repository"
)

// SlotsService manages the operator-facing slot calendar.
type SlotsService struct {
	repo repository.SlotsRepository
}

// NewSlotsService constructs a SlotsService.
func NewSlotsService(repo repository.SlotsRepository) *SlotsService {
	return &SlotsService{repo: repo}
}

// CreateSlot validates and persists a new slot. Slots start life available.
func (s *SlotsService) CreateSlot(ctx context.Context, req dto.CreateSlotRequest) (*entity.MeetingSlot, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}
	if req.MaxBookings < 1 {
		return nil, fmt.Errorf("%w: max_bookings must be at least 1", ErrValidation)
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = int(req.EndTime.Sub(req.StartTime).Minutes())
	}
	if req.Timezone == "" {
		req.Timezone = "Asia/Seoul"
	}
	if req.MeetingType == "" {
		req.MeetingType = "ONLINE"
	}
	if req.MeetingLocation == "" {
		req.MeetingLocation = req.MeetingType
	}

	slot := &entity.MeetingSlot{
		Title:           title,
		Description:     req.Description,
		MeetingType:     req.MeetingType,
		DurationMinutes: req.DurationMinutes,
		MeetingLocation: req.MeetingLocation,
		MeetingURL:      req.MeetingURL,
		OfficeAddress:   req.OfficeAddress,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Timezone:        req.Timezone,
		MaxBookings:     req.MaxBookings,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// UpdateSlot applies a partial update to a slot.
func (s *SlotsService) UpdateSlot(ctx context.Context, id string, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error) {
	slotID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot id", ErrValidation)
	}
	if patch.StartTime != nil && patch.EndTime != nil && !patch.EndTime.After(*patch.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}
	if patch.MaxBookings != nil && *patch.MaxBookings < 1 {
		return nil, fmt.Errorf("%w: max_bookings must be at least 1", ErrValidation)
	}
	return s.repo.Update(ctx, slotID, patch)
}

// DeleteSlot removes a slot.
func (s *SlotsService) DeleteSlot(ctx context.Context, id string) error {
	slotID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid slot id", ErrValidation)
	}
	return s.repo.Delete(ctx, slotID)
}

// GetSlot fetches one slot.
func (s *SlotsService) GetSlot(ctx context.Context, id string) (*entity.MeetingSlot, error) {
	slotID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot id", ErrValidation)
	}
	return s.repo.Get(ctx, slotID)
}

// ListSlots returns every slot for the admin calendar.
func (s *SlotsService) ListSlots(ctx context.Context) ([]entity.MeetingSlot, error) {
	return s.repo.List(ctx)
}
