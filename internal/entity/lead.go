package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeadType identifies which source table a lead id refers to.
type LeadType string

// Lead source kinds, one per intake channel.
const (
	LeadTypeContact           LeadType = "CONTACT"
	LeadTypeLibraryLead       LeadType = "LIBRARY_LEAD"
	LeadTypeDemoRequest       LeadType = "DEMO_REQUEST"
	LeadTypeEventRegistration LeadType = "EVENT_REGISTRATION"
	LeadTypePartnership       LeadType = "PARTNERSHIP"
)

// Valid reports whether the value is one of the known lead types.
func (t LeadType) Valid() bool {
	switch t {
	case LeadTypeContact, LeadTypeLibraryLead, LeadTypeDemoRequest,
		LeadTypeEventRegistration, LeadTypePartnership:
		return true
	}
	return false
}

// Contact is a row created by the website contact form.
type Contact struct {
	ID              uuid.UUID  `json:"id"`
	CompanyName     string     `json:"company_name"`
	ContactName     string     `json:"contact_name"`
	Email           string     `json:"email"`
	Phone           *string    `json:"phone,omitempty"`
	InquiryType     *string    `json:"inquiry_type,omitempty"`
	Message         *string    `json:"message,omitempty"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LibraryLead is a row created by the content-library download flow.
// Its score is maintained by the download pipeline and engagement webhook,
// not recomputed by the unification layer.
type LibraryLead struct {
	ID                  uuid.UUID  `json:"id"`
	CompanyName         string     `json:"company_name"`
	ContactName         string     `json:"contact_name"`
	Email               string     `json:"email"`
	Phone               *string    `json:"phone,omitempty"`
	LibraryItemTitle    *string    `json:"library_item_title,omitempty"`
	LibraryCategory     *string    `json:"library_category,omitempty"`
	LeadStatus          *string    `json:"lead_status,omitempty"`
	LeadScore           int        `json:"lead_score"`
	MarketingConsent    bool       `json:"marketing_consent"`
	UTMSource           *string    `json:"utm_source,omitempty"`
	UTMMedium           *string    `json:"utm_medium,omitempty"`
	UTMCampaign         *string    `json:"utm_campaign,omitempty"`
	EmailSent           bool       `json:"email_sent"`
	EmailOpened         bool       `json:"email_opened"`
	DownloadLinkClicked bool       `json:"download_link_clicked"`
	LastContactedAt     *time.Time `json:"last_contacted_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// DemoRequest is a row created by the demo request form.
type DemoRequest struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Product     *string   `json:"product,omitempty"`
	Message     *string   `json:"message,omitempty"`
	Status      *string   `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRegistration is a row created when someone signs up for an event.
type EventRegistration struct {
	ID               uuid.UUID `json:"id"`
	EventID          uuid.UUID `json:"event_id"`
	EventName        *string   `json:"event_name,omitempty"`
	EventDescription *string   `json:"event_description,omitempty"`
	CompanyName      string    `json:"company_name"`
	ContactName      string    `json:"contact_name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	Status           *string   `json:"status,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Partnership is a row created by the partnership proposal form.
type Partnership struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"company_name"`
	ContactName     string    `json:"contact_name"`
	Email           string    `json:"email"`
	PartnershipType *string   `json:"partnership_type,omitempty"`
	Proposal        *string   `json:"proposal,omitempty"`
	Status          *string   `json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Lead is the tagged union over the five source kinds. Exactly one of the
// payload pointers is non-nil, matching Type.
type Lead struct {
	Type        LeadType
	Contact     *Contact
	Library     *LibraryLead
	Demo        *DemoRequest
	Event       *EventRegistration
	Partnership *Partnership
}

// ID returns the source-scoped identifier of the underlying record.
func (l Lead) ID() uuid.UUID {
	switch l.Type {
	case LeadTypeContact:
		return l.Contact.ID
	case LeadTypeLibraryLead:
		return l.Library.ID
	case LeadTypeDemoRequest:
		return l.Demo.ID
	case LeadTypeEventRegistration:
		return l.Event.ID
	case LeadTypePartnership:
		return l.Partnership.ID
	}
	return uuid.Nil
}

// ContactSnapshot is the denormalized contact block copied onto bookings.
type ContactSnapshot struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
}

// Snapshot extracts the contact fields of the underlying record.
func (l Lead) Snapshot() ContactSnapshot {
	switch l.Type {
	case LeadTypeContact:
		return ContactSnapshot{l.Contact.CompanyName, l.Contact.ContactName, l.Contact.Email, l.Contact.Phone}
	case LeadTypeLibraryLead:
		return ContactSnapshot{l.Library.CompanyName, l.Library.ContactName, l.Library.Email, l.Library.Phone}
	case LeadTypeDemoRequest:
		return ContactSnapshot{l.Demo.CompanyName, l.Demo.ContactName, l.Demo.Email, l.Demo.Phone}
	case LeadTypeEventRegistration:
		return ContactSnapshot{l.Event.CompanyName, l.Event.ContactName, l.Event.Email, l.Event.Phone}
	case LeadTypePartnership:
		return ContactSnapshot{CompanyName: l.Partnership.CompanyName, ContactName: l.Partnership.ContactName, Email: l.Partnership.Email}
	}
	return ContactSnapshot{}
}

// CreatedAt returns the creation timestamp of the underlying record.
func (l Lead) CreatedAt() time.Time {
	switch l.Type {
	case LeadTypeContact:
		return l.Contact.CreatedAt
	case LeadTypeLibraryLead:
		return l.Library.CreatedAt
	case LeadTypeDemoRequest:
		return l.Demo.CreatedAt
	case LeadTypeEventRegistration:
		return l.Event.CreatedAt
	case LeadTypePartnership:
		return l.Partnership.CreatedAt
	}
	return time.Time{}
}
