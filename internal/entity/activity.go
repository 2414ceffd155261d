package entity

import (
	"time"

	"github.com/google/uuid"
)

// Activity types recorded in the lead journal.
const (
	ActivityMeetingProposed = "MEETING_PROPOSED"
	ActivityMeetingBooked   = "MEETING_BOOKED"
	ActivityMeetingCanceled = "MEETING_CANCELLED"
	ActivityLeadCreated     = "LEAD_CREATED"
	ActivityEmailSent       = "EMAIL_SENT"
	ActivityEmailOpened     = "EMAIL_OPENED"
	ActivityEmailClicked    = "EMAIL_CLICKED"
)

// LeadActivity is one append-only journal entry tied to a lead. Entries are
// never updated or deleted.
type LeadActivity struct {
	ID          uuid.UUID      `json:"id"`
	LeadType    LeadType       `json:"lead_type"`
	LeadID      uuid.UUID      `json:"lead_id"`
	Type        string         `json:"activity_type"`
	Description string         `json:"activity_description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
