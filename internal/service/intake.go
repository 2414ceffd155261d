package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/repository"
	"github.com/glec/leads-api/internal/service/scoring"
)

// IntakeService accepts public form submissions, one method per lead source.
// Each submission validates and normalizes contact fields, persists the
// source row, and journals a LEAD_CREATED activity.
type IntakeService struct {
	leads      repository.LeadsRepository
	activities repository.ActivitiesRepository
	validator  *FieldValidator
	now        func() time.Time
}

// NewIntakeService constructs an IntakeService.
func NewIntakeService(leads repository.LeadsRepository, activities repository.ActivitiesRepository, validator *FieldValidator) *IntakeService {
	return &IntakeService{
		leads:      leads,
		activities: activities,
		validator:  validator,
		now:        time.Now,
	}
}

// SubmitContact persists a contact-form inquiry.
func (s *IntakeService) SubmitContact(ctx context.Context, req dto.ContactIntake) (*entity.Contact, error) {
	company, contact, email, phone, err := s.cleanCommon(req.CompanyName, req.ContactName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	record := &entity.Contact{
		CompanyName: company,
		ContactName: contact,
		Email:       email,
		Phone:       phone,
		InquiryType: s.validator.OptionalText(req.InquiryType, 100),
		Message:     s.validator.OptionalText(req.Message, 5000),
	}
	if err := s.leads.CreateContact(ctx, record); err != nil {
		return nil, err
	}
	s.journalCreated(ctx, entity.LeadTypeContact, record.ID, map[string]any{"inquiry_type": record.InquiryType})
	return record, nil
}

// SubmitLibraryDownload persists a library download lead with its initial
// score computed from the submission signals.
func (s *IntakeService) SubmitLibraryDownload(ctx context.Context, req dto.LibraryDownloadIntake) (*entity.LibraryLead, error) {
	company, contact, email, phone, err := s.cleanCommon(req.CompanyName, req.ContactName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	itemTitle, err := s.validator.RequireText("library_item_title", req.LibraryItemTitle, 300)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &entity.LibraryLead{
		CompanyName:      company,
		ContactName:      contact,
		Email:            email,
		Phone:            phone,
		LibraryItemTitle: &itemTitle,
		LibraryCategory:  s.validator.OptionalText(req.LibraryCategory, 100),
		MarketingConsent: req.MarketingConsent,
		UTMSource:        s.validator.OptionalText(req.UTMSource, 200),
		UTMMedium:        s.validator.OptionalText(req.UTMMedium, 200),
		UTMCampaign:      s.validator.OptionalText(req.UTMCampaign, 200),
		CreatedAt:        now,
	}
	record.LeadScore = scoring.ComputeLibraryScore(*record, now).Total

	if err := s.leads.CreateLibraryLead(ctx, record); err != nil {
		return nil, err
	}
	s.journalCreated(ctx, entity.LeadTypeLibraryLead, record.ID, map[string]any{
		"library_item": itemTitle,
		"lead_score":   record.LeadScore,
		"grade":        scoring.Grade(record.LeadScore),
	})
	return record, nil
}

// SubmitDemoRequest persists a demo request.
func (s *IntakeService) SubmitDemoRequest(ctx context.Context, req dto.DemoRequestIntake) (*entity.DemoRequest, error) {
	company, contact, email, phone, err := s.cleanCommon(req.CompanyName, req.ContactName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	record := &entity.DemoRequest{
		CompanyName: company,
		ContactName: contact,
		Email:       email,
		Phone:       phone,
		Product:     s.validator.OptionalText(req.Product, 200),
		Message:     s.validator.OptionalText(req.Message, 5000),
	}
	if err := s.leads.CreateDemoRequest(ctx, record); err != nil {
		return nil, err
	}
	s.journalCreated(ctx, entity.LeadTypeDemoRequest, record.ID, map[string]any{"product": record.Product})
	return record, nil
}

// SubmitEventRegistration persists an event signup.
func (s *IntakeService) SubmitEventRegistration(ctx context.Context, req dto.EventRegistrationIntake) (*entity.EventRegistration, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event_id", ErrValidation)
	}
	company, contact, email, phone, err := s.cleanCommon(req.CompanyName, req.ContactName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	record := &entity.EventRegistration{
		EventID:     eventID,
		CompanyName: company,
		ContactName: contact,
		Email:       email,
		Phone:       phone,
	}
	if err := s.leads.CreateEventRegistration(ctx, record); err != nil {
		return nil, err
	}
	s.journalCreated(ctx, entity.LeadTypeEventRegistration, record.ID, map[string]any{"event_id": eventID})
	return record, nil
}

// SubmitPartnership persists a partnership proposal.
func (s *IntakeService) SubmitPartnership(ctx context.Context, req dto.PartnershipIntake) (*entity.Partnership, error) {
	company, err := s.validator.RequireText("company_name", req.CompanyName, 200)
	if err != nil {
		return nil, err
	}
	contact, err := s.validator.RequireText("contact_name", req.ContactName, 200)
	if err != nil {
		return nil, err
	}
	email, err := s.validator.CleanEmail(req.Email)
	if err != nil {
		return nil, err
	}
	record := &entity.Partnership{
		CompanyName:     company,
		ContactName:     contact,
		Email:           email,
		PartnershipType: s.validator.OptionalText(req.PartnershipType, 100),
		Proposal:        s.validator.OptionalText(req.Proposal, 10000),
	}
	if err := s.leads.CreatePartnership(ctx, record); err != nil {
		return nil, err
	}
	s.journalCreated(ctx, entity.LeadTypePartnership, record.ID, map[string]any{"partnership_type": record.PartnershipType})
	return record, nil
}

func (s *IntakeService) cleanCommon(companyName, contactName, email string, phone *string) (string, string, string, *string, error) {
	company, err := s.validator.RequireText("company_name", companyName, 200)
	if err != nil {
		return "", "", "", nil, err
	}
	contact, err := s.validator.RequireText("contact_name", contactName, 200)
	if err != nil {
		return "", "", "", nil, err
	}
	cleanEmail, err := s.validator.CleanEmail(email)
	if err != nil {
		return "", "", "", nil, err
	}
	cleanPhone, err := s.validator.CleanPhone(phone)
	if err != nil {
		return "", "", "", nil, err
	}
	return company, contact, cleanEmail, cleanPhone, nil
}

// Journal failures do not fail the intake; the source row is already durable.
func (s *IntakeService) journalCreated(ctx context.Context, leadType entity.LeadType, id uuid.UUID, metadata map[string]any) {
	_ = s.activities.Append(ctx, entity.LeadActivity{
		LeadType:    leadType,
		LeadID:      id,
		Type:        entity.ActivityLeadCreated,
		Description: "Lead captured from public form",
		Metadata:    metadata,
	})
}
