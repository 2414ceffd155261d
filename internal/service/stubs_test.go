package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
	"github.com/glec/leads-api/internal/mailer"
	"github.com/glec/leads-api/internal/repository"
)

func textPtr(s string) *string { return &s }

type mockLeadsRepository struct {
	list                    func(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error)
	find                    func(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error)
	touchLastContacted      func(ctx context.Context, leadType entity.LeadType, id uuid.UUID) error
	createContact           func(ctx context.Context, record *entity.Contact) error
	createLibraryLead       func(ctx context.Context, record *entity.LibraryLead) error
	createDemoRequest       func(ctx context.Context, record *entity.DemoRequest) error
	createEventRegistration func(ctx context.Context, record *entity.EventRegistration) error
	createPartnership       func(ctx context.Context, record *entity.Partnership) error
	getLibraryLead          func(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error)
	updateLibraryEngagement func(ctx context.Context, id uuid.UUID, update repository.LibraryEngagementUpdate) error
}

func (m *mockLeadsRepository) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockLeadsRepository) Find(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error) {
	if m.find != nil {
		return m.find(ctx, leadType, id)
	}
	return nil, errors.New("Find not implemented")
}

func (m *mockLeadsRepository) TouchLastContacted(ctx context.Context, leadType entity.LeadType, id uuid.UUID) error {
	if m.touchLastContacted != nil {
		return m.touchLastContacted(ctx, leadType, id)
	}
	return nil
}

func (m *mockLeadsRepository) CreateContact(ctx context.Context, record *entity.Contact) error {
	if m.createContact != nil {
		return m.createContact(ctx, record)
	}
	return errors.New("CreateContact not implemented")
}

func (m *mockLeadsRepository) CreateLibraryLead(ctx context.Context, record *entity.LibraryLead) error {
	if m.createLibraryLead != nil {
		return m.createLibraryLead(ctx, record)
	}
	return errors.New("CreateLibraryLead not implemented")
}

func (m *mockLeadsRepository) CreateDemoRequest(ctx context.Context, record *entity.DemoRequest) error {
	if m.createDemoRequest != nil {
		return m.createDemoRequest(ctx, record)
	}
	return errors.New("CreateDemoRequest not implemented")
}

func (m *mockLeadsRepository) CreateEventRegistration(ctx context.Context, record *entity.EventRegistration) error {
	if m.createEventRegistration != nil {
		return m.createEventRegistration(ctx, record)
	}
	return errors.New("CreateEventRegistration not implemented")
}

func (m *mockLeadsRepository) CreatePartnership(ctx context.Context, record *entity.Partnership) error {
	if m.createPartnership != nil {
		return m.createPartnership(ctx, record)
	}
	return errors.New("CreatePartnership not implemented")
}

func (m *mockLeadsRepository) GetLibraryLead(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error) {
	if m.getLibraryLead != nil {
		return m.getLibraryLead(ctx, id)
	}
	return nil, errors.New("GetLibraryLead not implemented")
}

func (m *mockLeadsRepository) UpdateLibraryEngagement(ctx context.Context, id uuid.UUID, update repository.LibraryEngagementUpdate) error {
	if m.updateLibraryEngagement != nil {
		return m.updateLibraryEngagement(ctx, id, update)
	}
	return errors.New("UpdateLibraryEngagement not implemented")
}

type mockTokensRepository struct {
	insert      func(ctx context.Context, tok *entity.ProposalToken) error
	findByToken func(ctx context.Context, value string) (*entity.ProposalToken, error)
}

func (m *mockTokensRepository) Insert(ctx context.Context, tok *entity.ProposalToken) error {
	if m.insert != nil {
		return m.insert(ctx, tok)
	}
	return errors.New("Insert not implemented")
}

func (m *mockTokensRepository) FindByToken(ctx context.Context, value string) (*entity.ProposalToken, error) {
	if m.findByToken != nil {
		return m.findByToken(ctx, value)
	}
	return nil, errors.New("FindByToken not implemented")
}

type mockSlotsRepository struct {
	create         func(ctx context.Context, slot *entity.MeetingSlot) error
	update         func(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error)
	deleteSlot     func(ctx context.Context, id uuid.UUID) error
	get            func(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error)
	list           func(ctx context.Context) ([]entity.MeetingSlot, error)
	listAvailable  func(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error)
}

func (m *mockSlotsRepository) Create(ctx context.Context, slot *entity.MeetingSlot) error {
	if m.create != nil {
		return m.create(ctx, slot)
	}
	return errors.New("Create not implemented")
}

func (m *mockSlotsRepository) Update(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error) {
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return nil, errors.New("Update not implemented")
}

func (m *mockSlotsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteSlot != nil {
		return m.deleteSlot(ctx, id)
	}
	return errors.New("Delete not implemented")
}

func (m *mockSlotsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error) {
	if m.get != nil {
		return m.get(ctx, id)
	}
	return nil, errors.New("Get not implemented")
}

func (m *mockSlotsRepository) List(ctx context.Context) ([]entity.MeetingSlot, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockSlotsRepository) ListAvailable(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error) {
	if m.listAvailable != nil {
		return m.listAvailable(ctx, windowDays)
	}
	return nil, errors.New("ListAvailable not implemented")
}


type mockBookingsRepository struct {
	book          func(ctx context.Context, params repository.BookingParams) (*entity.Booking, *entity.MeetingSlot, error)
	get           func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findByTokenID func(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error)
	list          func(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error)
	cancel        func(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error)
}

func (m *mockBookingsRepository) Book(ctx context.Context, params repository.BookingParams) (*entity.Booking, *entity.MeetingSlot, error) {
	if m.book != nil {
		return m.book(ctx, params)
	}
	return nil, nil, errors.New("Book not implemented")
}

func (m *mockBookingsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.get != nil {
		return m.get(ctx, id)
	}
	return nil, errors.New("Get not implemented")
}

func (m *mockBookingsRepository) FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error) {
	if m.findByTokenID != nil {
		return m.findByTokenID(ctx, tokenID)
	}
	return nil, repository.ErrBookingNotFound
}

func (m *mockBookingsRepository) List(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockBookingsRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error) {
	if m.cancel != nil {
		return m.cancel(ctx, id, reason)
	}
	return nil, errors.New("Cancel not implemented")
}

type mockActivitiesRepository struct {
	appended []entity.LeadActivity
	appendFn func(ctx context.Context, activity entity.LeadActivity) error
}

func (m *mockActivitiesRepository) Append(ctx context.Context, activity entity.LeadActivity) error {
	if m.appendFn != nil {
		if err := m.appendFn(ctx, activity); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, activity)
	return nil
}

func (m *mockActivitiesRepository) ListForLead(ctx context.Context, leadType entity.LeadType, leadID uuid.UUID) ([]entity.LeadActivity, error) {
	return m.appended, nil
}

type mockMailer struct {
	proposals     []mailer.ProposalEmail
	confirmations []mailer.ConfirmationEmail
	proposalErr   error
	confirmErr    error
}

func (m *mockMailer) SendProposal(ctx context.Context, email mailer.ProposalEmail) (string, error) {
	if m.proposalErr != nil {
		return "", m.proposalErr
	}
	m.proposals = append(m.proposals, email)
	return "em_test_123", nil
}

func (m *mockMailer) SendConfirmation(ctx context.Context, email mailer.ConfirmationEmail) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmations = append(m.confirmations, email)
	return nil
}
