package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service/scoring"
)

// EngagementService applies mail-provider callbacks to library leads: it
// flips the engagement flag, recomputes the stored score, and journals the
// event.
type EngagementService struct {
	leads      repository.LeadsRepository
	activities repository.ActivitiesRepository
	now        func() time.Time
}

// NewEngagementService constructs an EngagementService.
func NewEngagementService(leads repository.LeadsRepository, activities repository.ActivitiesRepository) *EngagementService {
	return &EngagementService{leads: leads, activities: activities, now: time.Now}
}

// Apply processes one engagement event for a library lead.
func (s *EngagementService) Apply(ctx context.Context, event dto.EmailEvent) (*entity.LibraryLead, error) {
	leadID, err := uuid.Parse(event.LeadID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lead_id", ErrValidation)
	}
	normalized := strings.ToUpper(strings.TrimSpace(event.Event))
	normalized = strings.ReplaceAll(normalized, ".", "_")

	lead, err := s.leads.GetLibraryLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	enabled := true
	var eventType string
	update := repository.LibraryEngagementUpdate{}
	switch normalized {
	case "SENT", entity.ActivityEmailSent:
		eventType = entity.ActivityEmailSent
		lead.EmailSent = true
		update.EmailSent = &enabled
	case "OPENED", entity.ActivityEmailOpened:
		eventType = entity.ActivityEmailOpened
		lead.EmailOpened = true
		update.EmailOpened = &enabled
	case "CLICKED", entity.ActivityEmailClicked:
		eventType = entity.ActivityEmailClicked
		lead.DownloadLinkClicked = true
		update.DownloadLinkClicked = &enabled
	default:
		return nil, fmt.Errorf("%w: unknown event %q", ErrValidation, event.Event)
	}

	lead.LeadScore = scoring.ComputeLibraryScore(*lead, s.now()).Total
	update.Score = lead.LeadScore

	if err := s.leads.UpdateLibraryEngagement(ctx, leadID, update); err != nil {
		return nil, err
	}

	_ = s.activities.Append(ctx, entity.LeadActivity{
		LeadType:    entity.LeadTypeLibraryLead,
		LeadID:      leadID,
		Type:        eventType,
		Description: "Email engagement recorded",
		Metadata: map[string]any{
			"lead_score": lead.LeadScore,
			"grade":      scoring.Grade(lead.LeadScore),
		},
	})
	return lead, nil
}
