package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking status lifecycle values.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// MeetingSlot is an operator-created window customers can book into.
// CurrentBookings never exceeds MaxBookings; it is incremented only by the
// booking transaction and decremented only by cancellation.
type MeetingSlot struct {
	ID              uuid.UUID `json:"id"`
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
	IsAvailable     bool      `json:"is_available"`
	MaxBookings     int       `json:"max_bookings"`
	CurrentBookings int       `json:"current_bookings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AvailableSpots returns the remaining capacity of the slot.
func (s MeetingSlot) AvailableSpots() int {
	return s.MaxBookings - s.CurrentBookings
}

// ProposalToken is the single-use secret mailed to a lead. Once Used is set
// or ExpiresAt has passed the token is permanently inert. Rows are kept for
// audit and never deleted.
type ProposalToken struct {
	ID        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	LeadType  LeadType   `json:"lead_type"`
	LeadID    uuid.UUID  `json:"lead_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t ProposalToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Booking records one confirmed meeting, with the lead's contact details
// denormalized at booking time.
type Booking struct {
	ID                 uuid.UUID  `json:"id"`
	MeetingSlotID      uuid.UUID  `json:"meeting_slot_id"`
	ProposalTokenID    uuid.UUID  `json:"proposal_token_id"`
	LeadType           LeadType   `json:"lead_type"`
	LeadID             uuid.UUID  `json:"lead_id"`
	CompanyName        string     `json:"company_name"`
	ContactName        string     `json:"contact_name"`
	Email              string     `json:"email"`
	Phone              *string    `json:"phone,omitempty"`
	RequestedAgenda    *string    `json:"requested_agenda,omitempty"`
	BookingStatus      string     `json:"booking_status"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
