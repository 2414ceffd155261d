package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/mailer"
	"github.com/glec/leads-api/internal/repository"
)

func strPtr(s string) *string { return &s }

var errProviderDown = errors.New("provider down")

type stubLeadsRepo struct {
	list              func(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error)
	find              func(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error)
	createContact     func(ctx context.Context, record *entity.Contact) error
	getLibraryLead    func(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error)
	updateEngagement  func(ctx context.Context, id uuid.UUID, update repository.LibraryEngagementUpdate) error
	createLibraryLead func(ctx context.Context, record *entity.LibraryLead) error
}

func (s *stubLeadsRepo) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, nil
}

func (s *stubLeadsRepo) Find(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error) {
	if s.find != nil {
		return s.find(ctx, leadType, id)
	}
	return nil, repository.ErrLeadNotFound
}

func (s *stubLeadsRepo) TouchLastContacted(ctx context.Context, leadType entity.LeadType, id uuid.UUID) error {
	return nil
}

func (s *stubLeadsRepo) CreateContact(ctx context.Context, record *entity.Contact) error {
	if s.createContact != nil {
		return s.createContact(ctx, record)
	}
	record.ID = uuid.New()
	return nil
}

func (s *stubLeadsRepo) CreateLibraryLead(ctx context.Context, record *entity.LibraryLead) error {
	if s.createLibraryLead != nil {
		return s.createLibraryLead(ctx, record)
	}
	record.ID = uuid.New()
	return nil
}

func (s *stubLeadsRepo) CreateDemoRequest(ctx context.Context, record *entity.DemoRequest) error {
	record.ID = uuid.New()
	return nil
}

func (s *stubLeadsRepo) CreateEventRegistration(ctx context.Context, record *entity.EventRegistration) error {
	record.ID = uuid.New()
	return nil
}

func (s *stubLeadsRepo) CreatePartnership(ctx context.Context, record *entity.Partnership) error {
	record.ID = uuid.New()
	return nil
}

func (s *stubLeadsRepo) GetLibraryLead(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error) {
	if s.getLibraryLead != nil {
		return s.getLibraryLead(ctx, id)
	}
	return nil, repository.ErrLeadNotFound
}

func (s *stubLeadsRepo) UpdateLibraryEngagement(ctx context.Context, id uuid.UUID, update repository.LibraryEngagementUpdate) error {
	if s.updateEngagement != nil {
		return s.updateEngagement(ctx, id, update)
	}
	return nil
}

type stubTokensRepo struct {
	insert      func(ctx context.Context, tok *entity.ProposalToken) error
	findByToken func(ctx context.Context, value string) (*entity.ProposalToken, error)
}

func (s *stubTokensRepo) Insert(ctx context.Context, tok *entity.ProposalToken) error {
	if s.insert != nil {
		return s.insert(ctx, tok)
	}
	tok.ID = uuid.New()
	return nil
}

func (s *stubTokensRepo) FindByToken(ctx context.Context, value string) (*entity.ProposalToken, error) {
	if s.findByToken != nil {
		return s.findByToken(ctx, value)
	}
	return nil, repository.ErrTokenNotFound
}

type stubSlotsRepo struct {
	create         func(ctx context.Context, slot *entity.MeetingSlot) error
	update         func(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error)
	deleteSlot     func(ctx context.Context, id uuid.UUID) error
	get            func(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error)
	list           func(ctx context.Context) ([]entity.MeetingSlot, error)
	listAvailable  func(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error)
}

func (s *stubSlotsRepo) Create(ctx context.Context, slot *entity.MeetingSlot) error {
	if s.create != nil {
		return s.create(ctx, slot)
	}
	slot.ID = uuid.New()
	return nil
}

func (s *stubSlotsRepo) Update(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error) {
	if s.update != nil {
		return s.update(ctx, id, patch)
	}
	return nil, errors.New("not implemented")
}

func (s *stubSlotsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteSlot != nil {
		return s.deleteSlot(ctx, id)
	}
	return errors.New("not implemented")
}

func (s *stubSlotsRepo) Get(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, repository.ErrSlotNotFound
}

func (s *stubSlotsRepo) List(ctx context.Context) ([]entity.MeetingSlot, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubSlotsRepo) ListAvailable(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error) {
	if s.listAvailable != nil {
		return s.listAvailable(ctx, windowDays)
	}
	return nil, nil
}


type stubBookingsRepo struct {
	book          func(ctx context.Context, params repository.BookingParams) (*entity.Booking, *entity.MeetingSlot, error)
	get           func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByTokenID func(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error)
	list          func(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error)
	cancel        func(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error)
}

func (s *stubBookingsRepo) Book(ctx context.Context, params repository.BookingParams) (*entity.Booking, *entity.MeetingSlot, error) {
	if s.book != nil {
		return s.book(ctx, params)
	}
	return nil, nil, errors.New("not implemented")
}

func (s *stubBookingsRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, repository.ErrBookingNotFound
}

func (s *stubBookingsRepo) FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error) {
	if s.findByTokenID != nil {
		return s.findByTokenID(ctx, tokenID)
	}
	return nil, repository.ErrBookingNotFound
}

func (s *stubBookingsRepo) List(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, nil
}

func (s *stubBookingsRepo) Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error) {
	if s.cancel != nil {
		return s.cancel(ctx, id, reason)
	}
	return nil, errors.New("not implemented")
}

type stubActivitiesRepo struct {
	appended []entity.LeadActivity
}

func (s *stubActivitiesRepo) Append(ctx context.Context, activity entity.LeadActivity) error {
	s.appended = append(s.appended, activity)
	return nil
}

func (s *stubActivitiesRepo) ListForLead(ctx context.Context, leadType entity.LeadType, leadID uuid.UUID) ([]entity.LeadActivity, error) {
	return s.appended, nil
}

type stubMailer struct {
	proposalErr error
	confirmErr  error
	sent        int
}

func (s *stubMailer) SendProposal(ctx context.Context, email mailer.ProposalEmail) (string, error) {
	if s.proposalErr != nil {
		return "", s.proposalErr
	}
	s.sent++
	return "em_stub_1", nil
}

func (s *stubMailer) SendConfirmation(ctx context.Context, email mailer.ConfirmationEmail) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}
	s.sent++
	return nil
}
