package dto

// ContactIntake is the public contact-form submission.
type ContactIntake struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	InquiryType *string `json:"inquiry_type,omitempty"`
	Message     *string `json:"message,omitempty"`
}

// LibraryDownloadIntake is created when a visitor requests a library item.
type LibraryDownloadIntake struct {
	CompanyName      string  `json:"company_name"`
	ContactName      string  `json:"contact_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	LibraryItemTitle string  `json:"library_item_title"`
	LibraryCategory  *string `json:"library_category,omitempty"`
	MarketingConsent bool    `json:"marketing_consent"`
	UTMSource        *string `json:"utm_source,omitempty"`
	UTMMedium        *string `json:"utm_medium,omitempty"`
	UTMCampaign      *string `json:"utm_campaign,omitempty"`
}

// DemoRequestIntake is the public demo-request submission.
type DemoRequestIntake struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Product     *string `json:"product,omitempty"`
	Message     *string `json:"message,omitempty"`
}

// EventRegistrationIntake registers a visitor for an event.
type EventRegistrationIntake struct {
	EventID     string  `json:"event_id"`
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
}

// PartnershipIntake is the public partnership proposal submission.
type PartnershipIntake struct {
	CompanyName     string  `json:"company_name"`
	ContactName     string  `json:"contact_name"`
	Email           string  `json:"email"`
	PartnershipType *string `json:"partnership_type,omitempty"`
	Proposal        *string `json:"proposal,omitempty"`
}

// EmailEvent is the mail provider's engagement callback for library leads.
type EmailEvent struct {
	LeadID string `json:"lead_id"`
	Event  string `json:"event"`
}
