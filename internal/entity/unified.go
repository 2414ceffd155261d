package entity

import (
	"time"

	"github.com/google/uuid"
)

// Normalized status vocabulary shared across all lead sources.
const (
	StatusNew        = "NEW"
	StatusContacted  = "CONTACTED"
	StatusInProgress = "IN_PROGRESS"
	StatusConfirmed  = "CONFIRMED"
	StatusCompleted  = "COMPLETED"
	StatusRejected   = "REJECTED"
	StatusCancelled  = "CANCELLED"
)

// UnifiedLead is the comparable projection of one source record. It is
// derived on read and never stored; every UnifiedLead maps back to exactly
// one source row via (SourceType, LeadID).
type UnifiedLead struct {
	SourceType   LeadType  `json:"source_type"`
	LeadID       uuid.UUID `json:"lead_id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Status       string    `json:"status"`
	Score        int       `json:"score"`
	SourceDetail string    `json:"source_detail"`
	EmailSent    bool      `json:"email_sent"`
	EmailOpened  bool      `json:"email_opened"`
	EmailClicked bool      `json:"email_clicked"`
	DaysOld      int       `json:"days_old"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity time.Time `json:"last_activity"`
}

// LeadStats aggregates the unified stream for the admin dashboard.
type LeadStats struct {
	TotalLeads int              `json:"total_leads"`
	AvgScore   int              `json:"avg_score"`
	ByStatus   map[string]int   `json:"by_status"`
	BySource   map[LeadType]int `json:"by_source"`
}
