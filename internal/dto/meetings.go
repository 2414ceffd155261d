package dto

import (
	"time"

	"github.com/google/uuid"
)

// IssueProposalRequest is the admin request to mail a scheduling link.
type IssueProposalRequest struct {
	LeadType        string `json:"lead_type"`
	LeadID          string `json:"lead_id"`
	MeetingPurpose  string `json:"meeting_purpose"`
	AdminName       string `json:"admin_name"`
	AdminEmail      string `json:"admin_email"`
	AdminPhone      string `json:"admin_phone"`
	TokenExpiryDays int    `json:"token_expiry_days,omitempty"`
}

// IssueProposalResponse reports the minted token and sizing data.
type IssueProposalResponse struct {
	Token         string    `json:"token"`
	BookingURL    string    `json:"booking_url"`
	ExpiresAt     time.Time `json:"expires_at"`
	ProposedSlots int       `json:"proposed_slots"`
	EmailID       string    `json:"email_id,omitempty"`
}

// BookRequest is the customer booking submission.
type BookRequest struct {
	Token           string  `json:"token"`
	MeetingSlotID   string  `json:"meeting_slot_id"`
	RequestedAgenda *string `json:"requested_agenda,omitempty"`
}

// BookedSlot is the slot summary echoed back on a successful booking.
type BookedSlot struct {
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	MeetingURL *string   `json:"meeting_url,omitempty"`
}

// BookResponse confirms a created booking.
type BookResponse struct {
	BookingID     uuid.UUID  `json:"booking_id"`
	MeetingSlot   BookedSlot `json:"meeting_slot"`
	BookingStatus string     `json:"booking_status"`
}

// AvailableSlot is one bookable window shown to the customer.
type AvailableSlot struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	MeetingType     string    `json:"meeting_type"`
	DurationMinutes int       `json:"duration_minutes"`
	MeetingLocation string    `json:"meeting_location"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Timezone        string    `json:"timezone"`
	AvailableSpots  int       `json:"available_spots"`
}

// AvailabilityLead is the minimal lead snapshot shown on the booking page.
type AvailabilityLead struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
}

// AvailabilityResponse lists open slots for a valid token, grouped by date.
type AvailabilityResponse struct {
	TokenValid  bool                       `json:"token_valid"`
	ExpiresAt   time.Time                  `json:"expires_at"`
	LeadInfo    *AvailabilityLead          `json:"lead_info,omitempty"`
	SlotsByDate map[string][]AvailableSlot `json:"slots_by_date"`
	TotalSlots  int                        `json:"total_slots"`
}

// CreateSlotRequest is the admin payload for a new meeting slot.
type CreateSlotRequest struct {
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	MeetingType     string    `json:"meeting_type"`
	DurationMinutes int       `json:"duration_minutes"`
	MeetingLocation string    `json:"meeting_location"`
	MeetingURL      *string   `json:"meeting_url,omitempty"`
	OfficeAddress   *string   `json:"office_address,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Timezone        string    `json:"timezone"`
	MaxBookings     int       `json:"max_bookings"`
}

// UpdateSlotRequest carries partial slot updates; nil fields are unchanged.
type UpdateSlotRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	MeetingURL      *string    `json:"meeting_url,omitempty"`
	OfficeAddress   *string    `json:"office_address,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	IsAvailable     *bool      `json:"is_available,omitempty"`
	MaxBookings     *int       `json:"max_bookings,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// CancelBookingRequest carries the operator's cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingListFilter contains query parameters for the admin booking list.
type BookingListFilter struct {
	Status  string
	SlotID  *uuid.UUID
	Page    int
	PerPage int
}
