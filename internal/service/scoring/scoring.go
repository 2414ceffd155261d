package scoring

import (
	"strings"
	"time"

	"github.com/glec/leads-api/internal/entity"
)

// Score maps a raw source row onto the shared 0-100 priority scale. Library
// leads carry a stored score maintained by the download pipeline; every other
// source is scored from its own signals. The function is pure: the same row
// and clock always yield the same score.
func Score(lead entity.Lead, now time.Time) int {
	switch lead.Type {
	case entity.LeadTypeContact:
		return scoreContact(lead.Contact, now)
	case entity.LeadTypeLibraryLead:
		return clamp(lead.Library.LeadScore)
	case entity.LeadTypeDemoRequest:
		return scoreDemoRequest(lead.Demo)
	case entity.LeadTypeEventRegistration:
		return scoreEventRegistration(lead.Event)
	case entity.LeadTypePartnership:
		return scorePartnership(lead.Partnership)
	}
	return 0
}

// Contacts are scored on recency alone: a fresh inquiry is worth calling
// back, a stale one has cooled.
func scoreContact(record *entity.Contact, now time.Time) int {
	age := now.Sub(record.CreatedAt)
	switch {
	case age <= 7*24*time.Hour:
		return 40
	case age <= 30*24*time.Hour:
		return 20
	default:
		return 10
	}
}

func scoreDemoRequest(record *entity.DemoRequest) int {
	switch normalizeStatusValue(record.Status) {
	case "COMPLETED":
		return 90
	case "SCHEDULED":
		return 80
	case "CONTACTED":
		return 60
	case "NEW":
		return 50
	default:
		return 20
	}
}

func scoreEventRegistration(record *entity.EventRegistration) int {
	switch normalizeStatusValue(record.Status) {
	case "ATTENDED":
		return 70
	case "CONFIRMED":
		return 50
	case "PENDING":
		return 30
	default:
		return 10
	}
}

func scorePartnership(record *entity.Partnership) int {
	switch normalizeStatusValue(record.Status) {
	case "ACCEPTED":
		return 100
	case "REVIEWING":
		return 70
	case "NEW":
		return 50
	default:
		return 20
	}
}

// A missing status falls through to the lowest bucket of its source.
func normalizeStatusValue(status *string) string {
	if status == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*status))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
