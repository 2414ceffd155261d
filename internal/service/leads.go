package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service/scoring"
)

// LeadsService unifies the five lead sources into one ranked stream. The
// projection is computed on every read; nothing here is stored back.
type LeadsService struct {
	repo       repository.LeadsRepository
	activities repository.ActivitiesRepository
	now        func() time.Time
}

// NewLeadsService constructs a LeadsService.
func NewLeadsService(repo repository.LeadsRepository, activities repository.ActivitiesRepository) *LeadsService {
	return &LeadsService{repo: repo, activities: activities, now: time.Now}
}

// Activities returns the journal for one lead, newest first. The lead must
// exist; an unknown (leadType, leadID) pair reports ErrLeadNotFound rather
// than an empty journal.
func (s *LeadsService) Activities(ctx context.Context, leadType, leadID string) ([]entity.LeadActivity, error) {
	typ := entity.LeadType(strings.ToUpper(strings.TrimSpace(leadType)))
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown lead type %q", ErrValidation, leadType)
	}
	id, err := uuid.Parse(leadID)
	if err != nil {
		return nil, fmt.Errorf("%w: lead_id must be a valid id", ErrValidation)
	}
	if _, err := s.repo.Find(ctx, typ, id); err != nil {
		return nil, err
	}
	return s.activities.ListForLead(ctx, typ, id)
}

// List returns the filtered, ranked unified leads plus pagination meta and
// aggregate statistics over the filtered set.
func (s *LeadsService) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.UnifiedLead, dto.ListMeta, entity.LeadStats, error) {
	if filter.ScoreMax == 0 {
		filter.ScoreMax = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.ListMeta{}, entity.LeadStats{}, err
	}

	now := s.now()
	unified := make([]entity.UnifiedLead, 0, len(records))
	for _, record := range records {
		lead := Normalize(record, now)
		if lead.Score < filter.ScoreMin || lead.Score > filter.ScoreMax {
			continue
		}
		if filter.Status != "" && filter.Status != "ALL" && lead.Status != filter.Status {
			continue
		}
		unified = append(unified, lead)
	}

	// Higher score first; recency breaks ties.
	sort.SliceStable(unified, func(i, j int) bool {
		if unified[i].Score != unified[j].Score {
			return unified[i].Score > unified[j].Score
		}
		return unified[i].CreatedAt.After(unified[j].CreatedAt)
	})

	stats := aggregateStats(unified)

	total := len(unified)
	meta := dto.ListMeta{
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		Total:      total,
		TotalPages: (total + filter.PerPage - 1) / filter.PerPage,
	}

	start := (filter.Page - 1) * filter.PerPage
	if start >= total {
		return []entity.UnifiedLead{}, meta, stats, nil
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}
	return unified[start:end], meta, stats, nil
}

// Normalize projects one source record onto the unified shape. Pure function
// of the record and the clock.
func Normalize(record entity.Lead, now time.Time) entity.UnifiedLead {
	snapshot := record.Snapshot()
	lead := entity.UnifiedLead{
		SourceType:  record.Type,
		LeadID:      record.ID(),
		CompanyName: snapshot.CompanyName,
		ContactName: snapshot.ContactName,
		Email:       snapshot.Email,
		Phone:       snapshot.Phone,
		Score:       scoring.Score(record, now),
		CreatedAt:   record.CreatedAt(),
	}

	switch record.Type {
	case entity.LeadTypeContact:
		lead.UpdatedAt = record.Contact.UpdatedAt
		lead.SourceDetail = firstText(record.Contact.Message, record.Contact.InquiryType)
		if record.Contact.LastContactedAt != nil {
			lead.Status = entity.StatusContacted
		} else {
			lead.Status = entity.StatusNew
		}
	case entity.LeadTypeLibraryLead:
		lead.UpdatedAt = record.Library.UpdatedAt
		lead.SourceDetail = firstText(record.Library.LibraryItemTitle, record.Library.LibraryCategory)
		lead.Status = normalizeStatus(record.Library.LeadStatus)
		lead.EmailSent = record.Library.EmailSent
		lead.EmailOpened = record.Library.EmailOpened
		lead.EmailClicked = record.Library.DownloadLinkClicked
	case entity.LeadTypeDemoRequest:
		lead.UpdatedAt = record.Demo.UpdatedAt
		lead.SourceDetail = firstText(record.Demo.Product, record.Demo.Message)
		lead.Status = normalizeStatus(record.Demo.Status)
	case entity.LeadTypeEventRegistration:
		lead.UpdatedAt = record.Event.UpdatedAt
		lead.SourceDetail = firstText(record.Event.EventName, record.Event.EventDescription)
		lead.Status = normalizeStatus(record.Event.Status)
	case entity.LeadTypePartnership:
		lead.UpdatedAt = record.Partnership.UpdatedAt
		lead.SourceDetail = firstText(record.Partnership.Proposal, record.Partnership.PartnershipType)
		lead.Status = normalizeStatus(record.Partnership.Status)
	}

	lead.DaysOld = int(now.Sub(lead.CreatedAt).Hours() / 24)
	if lead.DaysOld < 0 {
		lead.DaysOld = 0
	}
	lead.LastActivity = lead.UpdatedAt
	return lead
}

// normalizeStatus folds the heterogeneous per-source statuses into the
// shared vocabulary. Unknown or missing statuses read as NEW.
func normalizeStatus(raw *string) string {
	if raw == nil {
		return entity.StatusNew
	}
	switch strings.ToUpper(strings.TrimSpace(*raw)) {
	case "", "NEW", "DOWNLOADED":
		return entity.StatusNew
	case "CONTACTED", "OPENED":
		return entity.StatusContacted
	case "IN_PROGRESS", "PENDING", "REVIEWING", "SCHEDULED", "NURTURING", "QUALIFIED":
		return entity.StatusInProgress
	case "CONFIRMED", "ACCEPTED", "ATTENDED":
		return entity.StatusConfirmed
	case "COMPLETED", "WON", "CONVERTED":
		return entity.StatusCompleted
	case "REJECTED", "LOST":
		return entity.StatusRejected
	case "CANCELLED":
		return entity.StatusCancelled
	default:
		return entity.StatusNew
	}
}

func aggregateStats(leads []entity.UnifiedLead) entity.LeadStats {
	stats := entity.LeadStats{
		TotalLeads: len(leads),
		ByStatus:   make(map[string]int),
		BySource:   make(map[entity.LeadType]int),
	}
	if len(leads) == 0 {
		return stats
	}
	sum := 0
	for _, lead := range leads {
		sum += lead.Score
		stats.ByStatus[lead.Status]++
		stats.BySource[lead.SourceType]++
	}
	stats.AvgScore = sum / len(leads)
	return stats
}

func firstText(candidates ...*string) string {
	for _, candidate := range candidates {
		if candidate != nil && strings.TrimSpace(*candidate) != "" {
			return strings.TrimSpace(*candidate)
		}
	}
	return ""
}
