package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/mailer"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/token"
)

// ProposalService mints single-use scheduling tokens and mails the booking
// link. It sizes the proposal from the count of open slots only; no slot is
// reserved until the customer books.
type ProposalService struct {
	leads      repository.LeadsRepository
	slots      repository.SlotsRepository
	tokens     repository.TokensRepository
	activities repository.ActivitiesRepository
	mail       mailer.Sender

	bookingBaseURL     string
	proposalWindowDays int
	defaultExpiryDays  int
	now                func() time.Time
}

// NewProposalService constructs a ProposalService.
func NewProposalService(
	leads repository.LeadsRepository,
	slots repository.SlotsRepository,
	tokens repository.TokensRepository,
	activities repository.ActivitiesRepository,
	mail mailer.Sender,
	bookingBaseURL string,
	proposalWindowDays int,
	defaultExpiryDays int,
) *ProposalService {
	if proposalWindowDays <= 0 {
		proposalWindowDays = 7
	}
	return &ProposalService{
		leads:              leads,
		slots:              slots,
		tokens:             tokens,
		activities:         activities,
		mail:               mail,
		bookingBaseURL:     bookingBaseURL,
		proposalWindowDays: proposalWindowDays,
		defaultExpiryDays:  defaultExpiryDays,
		now:                time.Now,
	}
}

// proposableLeadTypes are the sources a meeting proposal may target. Demo
// requests and partnerships are handled through their own outreach flows.
var proposableLeadTypes = map[entity.LeadType]bool{
	entity.LeadTypeContact:           true,
	entity.LeadTypeLibraryLead:       true,
	entity.LeadTypeEventRegistration: true,
}

// IssueProposal resolves the lead, checks slot availability, mints and
// persists a token, mails the booking link, and records the outreach.
func (s *ProposalService) IssueProposal(ctx context.Context, req dto.IssueProposalRequest) (*dto.IssueProposalResponse, error) {
	leadType := entity.LeadType(req.LeadType)
	if !proposableLeadTypes[leadType] {
		return nil, ErrInvalidLeadType
	}
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lead_id", ErrValidation)
	}

	lead, err := s.leads.Find(ctx, leadType, leadID)
	if err != nil {
		return nil, err
	}
	snapshot := lead.Snapshot()
	if snapshot.Email == "" {
		return nil, ErrLeadHasNoEmail
	}

	open, err := s.slots.ListAvailable(ctx, s.proposalWindowDays)
	if err != nil {
		return nil, err
	}
	available := len(open)
	if available == 0 {
		return nil, ErrNoSlotsAvailable
	}

	now := s.now()
	value, err := token.New()
	if err != nil {
		return nil, fmt.Errorf("mint proposal token: %w", err)
	}
	expiryDays := req.TokenExpiryDays
	if expiryDays <= 0 {
		expiryDays = s.defaultExpiryDays
	}
	expiresAt := token.Expiry(now, expiryDays)
	bookingURL := token.BookingURL(s.bookingBaseURL, value)

	tok := &entity.ProposalToken{
		Token:     value,
		LeadType:  leadType,
		LeadID:    leadID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Insert(ctx, tok); err != nil {
		return nil, err
	}

	emailID, err := s.mail.SendProposal(ctx, mailer.ProposalEmail{
		To:           snapshot.Email,
		ContactName:  snapshot.ContactName,
		CompanyName:  snapshot.CompanyName,
		BookingURL:   bookingURL,
		ExpiresAt:    expiresAt.Format(time.RFC3339),
		SlotCount:    available,
		SlotPreviews: slotPreviews(open),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	if err := s.activities.Append(ctx, entity.LeadActivity{
		LeadType:    leadType,
		LeadID:      leadID,
		Type:        entity.ActivityMeetingProposed,
		Description: "Meeting proposal email sent",
		Metadata: map[string]any{
			"email_id":       emailID,
			"proposed_slots": available,
			"admin_name":     req.AdminName,
			"expires_at":     expiresAt.Format(time.RFC3339),
		},
	}); err != nil {
		return nil, err
	}

	if err := s.leads.TouchLastContacted(ctx, leadType, leadID); err != nil {
		return nil, err
	}

	return &dto.IssueProposalResponse{
		Token:         value,
		BookingURL:    bookingURL,
		ExpiresAt:     expiresAt,
		ProposedSlots: available,
		EmailID:       emailID,
	}, nil
}

// The email body carries at most three upcoming times; the full list lives
// on the booking page.
const maxSlotPreviews = 3

func slotPreviews(slots []entity.MeetingSlot) []string {
	n := len(slots)
	if n > maxSlotPreviews {
		n = maxSlotPreviews
	}
	previews := make([]string, 0, n)
	for _, slot := range slots[:n] {
		previews = append(previews, fmt.Sprintf("%s %s", slot.StartTime.Format("2006-01-02 15:04"), slot.Title))
	}
	return previews
}
