package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/mailer"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/token"
)

// BookingService drives the token-to-booking state machine. All capacity
// mutation happens inside the repository's booking transaction; this layer
// owns the validation order and the surrounding side effects.
type BookingService struct {
	leads      repository.LeadsRepository
	tokens     repository.TokensRepository
	slots      repository.SlotsRepository
	bookings   repository.BookingsRepository
	activities repository.ActivitiesRepository
	mail       mailer.Sender

	bookingWindowDays int
	now               func() time.Time
}

// NewBookingService constructs a BookingService.
func NewBookingService(
	leads repository.LeadsRepository,
	tokens repository.TokensRepository,
	slots repository.SlotsRepository,
	bookings repository.BookingsRepository,
	activities repository.ActivitiesRepository,
	mail mailer.Sender,
	bookingWindowDays int,
) *BookingService {
	if bookingWindowDays <= 0 {
		bookingWindowDays = 30
	}
	return &BookingService{
		leads:             leads,
		tokens:            tokens,
		slots:             slots,
		bookings:          bookings,
		activities:        activities,
		mail:              mail,
		bookingWindowDays: bookingWindowDays,
		now:               time.Now,
	}
}

// Book validates the token, reserves the chosen slot and creates the booking.
// Validation failures never advance token state, so the customer can retry
// the same link against another slot.
func (s *BookingService) Book(ctx context.Context, req dto.BookRequest) (*dto.BookResponse, error) {
	if !token.ValidFormat(req.Token) {
		return nil, ErrInvalidToken
	}
	slotID, err := uuid.Parse(req.MeetingSlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: meeting_slot_id is required", ErrValidation)
	}

	tok, err := s.tokens.FindByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if err := s.checkConsumable(ctx, tok); err != nil {
		return nil, err
	}

	lead, err := s.leads.Find(ctx, tok.LeadType, tok.LeadID)
	if err != nil {
		return nil, err
	}

	booking, slot, err := s.bookings.Book(ctx, repository.BookingParams{
		TokenID:         tok.ID,
		SlotID:          slotID,
		LeadType:        tok.LeadType,
		LeadID:          tok.LeadID,
		Contact:         lead.Snapshot(),
		RequestedAgenda: req.RequestedAgenda,
	})
	if err != nil {
		if errors.Is(err, repository.ErrTokenConsumed) {
			return nil, ErrTokenAlreadyUsed
		}
		return nil, err
	}

	s.sendConfirmation(ctx, booking, slot)

	return &dto.BookResponse{
		BookingID: booking.ID,
		MeetingSlot: dto.BookedSlot{
			Title:      slot.Title,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			MeetingURL: slot.MeetingURL,
		},
		BookingStatus: booking.BookingStatus,
	}, nil
}

// Availability resolves a token to the open slots a customer may choose
// from, grouped by date within the forward booking window.
func (s *BookingService) Availability(ctx context.Context, tokenValue string) (*dto.AvailabilityResponse, error) {
	if !token.ValidFormat(tokenValue) {
		return nil, ErrInvalidToken
	}
	tok, err := s.tokens.FindByToken(ctx, tokenValue)
	if err != nil {
		return nil, err
	}
	if err := s.checkConsumable(ctx, tok); err != nil {
		return nil, err
	}

	var leadInfo *dto.AvailabilityLead
	lead, err := s.leads.Find(ctx, tok.LeadType, tok.LeadID)
	if err == nil {
		snapshot := lead.Snapshot()
		leadInfo = &dto.AvailabilityLead{
			CompanyName: snapshot.CompanyName,
			ContactName: snapshot.ContactName,
			Email:       snapshot.Email,
		}
	} else if !errors.Is(err, repository.ErrLeadNotFound) {
		return nil, err
	}

	slots, err := s.slots.ListAvailable(ctx, s.bookingWindowDays)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]dto.AvailableSlot, len(slots))
	for _, slot := range slots {
		date := slot.StartTime.UTC().Format("2006-01-02")
		byDate[date] = append(byDate[date], dto.AvailableSlot{
			ID:              slot.ID,
			Title:           slot.Title,
			Description:     slot.Description,
			MeetingType:     slot.MeetingType,
			DurationMinutes: slot.DurationMinutes,
			MeetingLocation: slot.MeetingLocation,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			Timezone:        slot.Timezone,
			AvailableSpots:  slot.AvailableSpots(),
		})
	}

	return &dto.AvailabilityResponse{
		TokenValid:  true,
		ExpiresAt:   tok.ExpiresAt,
		LeadInfo:    leadInfo,
		SlotsByDate: byDate,
		TotalSlots:  len(slots),
	}, nil
}

// GetBooking fetches one booking for the admin view.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entity.Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}
	return s.bookings.Get(ctx, bookingID)
}

// ListBookings returns bookings for the admin view.
func (s *BookingService) ListBookings(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error) {
	return s.bookings.List(ctx, filter)
}

// CancelBooking cancels an active booking and releases its slot seat.
func (s *BookingService) CancelBooking(ctx context.Context, id string, reason string) (*entity.Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}
	if reason == "" {
		reason = "cancelled by operator"
	}
	return s.bookings.Cancel(ctx, bookingID, reason)
}

// checkConsumable enforces the token lifecycle: expiry wins over the used
// flag, and "used" is re-derived from booking existence so a crash between
// booking insert and token consumption still reads as redeemed.
func (s *BookingService) checkConsumable(ctx context.Context, tok *entity.ProposalToken) error {
	if tok.Expired(s.now()) {
		return ErrTokenExpired
	}
	if tok.Used {
		return ErrTokenAlreadyUsed
	}
	if _, err := s.bookings.FindByTokenID(ctx, tok.ID); err == nil {
		return ErrTokenAlreadyUsed
	} else if !errors.Is(err, repository.ErrBookingNotFound) {
		return err
	}
	return nil
}

// Confirmation email failures never fail the booking; the customer already
// holds a confirmed seat.
func (s *BookingService) sendConfirmation(ctx context.Context, booking *entity.Booking, slot *entity.MeetingSlot) {
	meetingURL := ""
	if slot.MeetingURL != nil {
		meetingURL = *slot.MeetingURL
	}
	err := s.mail.SendConfirmation(ctx, mailer.ConfirmationEmail{
		To:              booking.Email,
		ContactName:     booking.ContactName,
		CompanyName:     booking.CompanyName,
		MeetingTitle:    slot.Title,
		StartTime:       slot.StartTime.Format(time.RFC3339),
		EndTime:         slot.EndTime.Format(time.RFC3339),
		Timezone:        slot.Timezone,
		MeetingLocation: slot.MeetingLocation,
		MeetingURL:      meetingURL,
	})
	if err != nil {
		return
	}
	_ = s.activities.Append(ctx, entity.LeadActivity{
		LeadType:    booking.LeadType,
		LeadID:      booking.LeadID,
		Type:        entity.ActivityEmailSent,
		Description: "Meeting confirmation email sent",
		Metadata: map[string]any{
			"email_type": "MEETING_CONFIRMATION",
			"booking_id": booking.ID,
		},
	})
}
