package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
)

// ErrLeadNotFound indicates that no source row matches (leadType, leadID).
var ErrLeadNotFound = errors.New("lead not found")

// LeadsRepository describes persistence operations across the five lead
// source tables. The unified projection is computed by the service layer on
// read; this repository only returns raw source rows.
type LeadsRepository interface {
	List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error)
	Find(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error)
	TouchLastContacted(ctx context.Context, leadType entity.LeadType, id uuid.UUID) error
	CreateContact(ctx context.Context, record *entity.Contact) error
	CreateLibraryLead(ctx context.Context, record *entity.LibraryLead) error
	CreateDemoRequest(ctx context.Context, record *entity.DemoRequest) error
	CreateEventRegistration(ctx context.Context, record *entity.EventRegistration) error
	CreatePartnership(ctx context.Context, record *entity.Partnership) error
	GetLibraryLead(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error)
	UpdateLibraryEngagement(ctx context.Context, id uuid.UUID, update LibraryEngagementUpdate) error
}

// LibraryEngagementUpdate patches engagement flags and the stored score of a
// library lead. Nil flags are left unchanged.
type LibraryEngagementUpdate struct {
	EmailSent           *bool
	EmailOpened         *bool
	DownloadLinkClicked *bool
	Score               int
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const contactColumns = `id, company_name, contact_name, email, phone, inquiry_type, message, last_contacted_at, created_at, updated_at`

const libraryLeadColumns = `id, company_name, contact_name, email, phone, library_item_title, library_category,
        lead_status, lead_score, marketing_consent, utm_source, utm_medium, utm_campaign,
        email_sent, email_opened, download_link_clicked, last_contacted_at, created_at, updated_at`

const demoRequestColumns = `id, company_name, contact_name, email, phone, product, message, status, created_at, updated_at`

const partnershipColumns = `id, company_name, contact_name, email, partnership_type, proposal, status, created_at, updated_at`

// List fetches raw rows from every requested source table. Search and date
// filters are pushed into SQL; score and normalized-status filters are
// applied by the caller after scoring.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.Lead, error) {
	include := func(t entity.LeadType) bool {
		return filter.SourceType == "" || filter.SourceType == "ALL" || filter.SourceType == string(t)
	}

	var leads []entity.Lead

	if include(entity.LeadTypeContact) {
		where, args := leadFilterClauses(filter, "")
		rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts`+where+` ORDER BY created_at DESC`, args...)
		if err != nil {
			return nil, fmt.Errorf("list contacts: %w", err)
		}
		leads, err = appendContacts(leads, rows)
		if err != nil {
			return nil, err
		}
	}

	if include(entity.LeadTypeLibraryLead) {
		where, args := leadFilterClauses(filter, "")
		rows, err := r.pool.Query(ctx, `SELECT `+libraryLeadColumns+` FROM library_leads`+where+` ORDER BY created_at DESC`, args...)
		if err != nil {
			return nil, fmt.Errorf("list library leads: %w", err)
		}
		leads, err = appendLibraryLeads(leads, rows)
		if err != nil {
			return nil, err
		}
	}

	if include(entity.LeadTypeDemoRequest) {
		where, args := leadFilterClauses(filter, "")
		rows, err := r.pool.Query(ctx, `SELECT `+demoRequestColumns+` FROM demo_requests`+where+` ORDER BY created_at DESC`, args...)
		if err != nil {
			return nil, fmt.Errorf("list demo requests: %w", err)
		}
		leads, err = appendDemoRequests(leads, rows)
		if err != nil {
			return nil, err
		}
	}

	if include(entity.LeadTypeEventRegistration) {
		where, args := leadFilterClauses(filter, "er.")
		query := `
        SELECT er.id, er.event_id, e.title, e.description,
               er.company_name, er.contact_name, er.email, er.phone, er.status,
               er.created_at, er.updated_at
        FROM event_registrations er
        INNER JOIN events e ON er.event_id = e.id` + where + ` ORDER BY er.created_at DESC`
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list event registrations: %w", err)
		}
		leads, err = appendEventRegistrations(leads, rows)
		if err != nil {
			return nil, err
		}
	}

	if include(entity.LeadTypePartnership) {
		where, args := leadFilterClauses(filter, "")
		rows, err := r.pool.Query(ctx, `SELECT `+partnershipColumns+` FROM partnerships`+where+` ORDER BY created_at DESC`, args...)
		if err != nil {
			return nil, fmt.Errorf("list partnerships: %w", err)
		}
		leads, err = appendPartnerships(leads, rows)
		if err != nil {
			return nil, err
		}
	}

	return leads, nil
}

// leadFilterClauses renders the shared WHERE fragment for a source table.
// The alias prefixes column references for joined queries.
func leadFilterClauses(filter dto.LeadListFilter, alias string) (string, []any) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := fmt.Sprintf("%%%s%%", search)
		clauses = append(clauses, fmt.Sprintf("(%[1]scompany_name ILIKE $%[2]d OR %[1]scontact_name ILIKE $%[2]d OR %[1]semail ILIKE $%[2]d)", alias, idx))
		args = append(args, pattern)
		idx++
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, fmt.Sprintf("%screated_at >= $%d", alias, idx))
		args = append(args, *filter.DateFrom)
		idx++
	}
	if filter.DateTo != nil {
		clauses = append(clauses, fmt.Sprintf("%screated_at <= $%d", alias, idx))
		args = append(args, *filter.DateTo)
		idx++
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Find resolves a single source row by its typed identity.
func (r *PGXLeadsRepository) Find(ctx context.Context, leadType entity.LeadType, id uuid.UUID) (*entity.Lead, error) {
	switch leadType {
	case entity.LeadTypeContact:
		row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
		record, err := scanContact(row)
		if err != nil {
			return nil, err
		}
		return &entity.Lead{Type: leadType, Contact: record}, nil
	case entity.LeadTypeLibraryLead:
		row := r.pool.QueryRow(ctx, `SELECT `+libraryLeadColumns+` FROM library_leads WHERE id = $1`, id)
		record, err := scanLibraryLead(row)
		if err != nil {
			return nil, err
		}
		return &entity.Lead{Type: leadType, Library: record}, nil
	case entity.LeadTypeDemoRequest:
		row := r.pool.QueryRow(ctx, `SELECT `+demoRequestColumns+` FROM demo_requests WHERE id = $1`, id)
		record, err := scanDemoRequest(row)
		if err != nil {
			return nil, err
		}
		return &entity.Lead{Type: leadType, Demo: record}, nil
	case entity.LeadTypeEventRegistration:
		row := r.pool.QueryRow(ctx, `
        SELECT er.id, er.event_id, e.title, e.description,
               er.company_name, er.contact_name, er.email, er.phone, er.status,
               er.created_at, er.updated_at
        FROM event_registrations er
        INNER JOIN events e ON er.event_id = e.id
        WHERE er.id = $1`, id)
		record, err := scanEventRegistration(row)
		if err != nil {
			return nil, err
		}
		return &entity.Lead{Type: leadType, Event: record}, nil
	case entity.LeadTypePartnership:
		row := r.pool.QueryRow(ctx, `SELECT `+partnershipColumns+` FROM partnerships WHERE id = $1`, id)
		record, err := scanPartnership(row)
		if err != nil {
			return nil, err
		}
		return &entity.Lead{Type: leadType, Partnership: record}, nil
	default:
		return nil, fmt.Errorf("unknown lead type %q", leadType)
	}
}

// TouchLastContacted stamps the operator-outreach timestamp where the source
// table tracks one; the remaining sources have no such column.
func (r *PGXLeadsRepository) TouchLastContacted(ctx context.Context, leadType entity.LeadType, id uuid.UUID) error {
	var table string
	switch leadType {
	case entity.LeadTypeContact:
		table = "contacts"
	case entity.LeadTypeLibraryLead:
		table = "library_leads"
	default:
		return nil
	}

	_, err := r.pool.Exec(ctx, `UPDATE `+table+` SET last_contacted_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last_contacted_at: %w", err)
	}
	return nil
}

// GetLibraryLead fetches one library lead row.
func (r *PGXLeadsRepository) GetLibraryLead(ctx context.Context, id uuid.UUID) (*entity.LibraryLead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+libraryLeadColumns+` FROM library_leads WHERE id = $1`, id)
	return scanLibraryLead(row)
}

// UpdateLibraryEngagement patches engagement flags and persists the
// recomputed score.
func (r *PGXLeadsRepository) UpdateLibraryEngagement(ctx context.Context, id uuid.UUID, update LibraryEngagementUpdate) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE library_leads
        SET email_sent = COALESCE($2, email_sent),
            email_opened = COALESCE($3, email_opened),
            download_link_clicked = COALESCE($4, download_link_clicked),
            lead_score = $5,
            updated_at = NOW()
        WHERE id = $1`,
		id, update.EmailSent, update.EmailOpened, update.DownloadLinkClicked, update.Score)
	if err != nil {
		return fmt.Errorf("update library engagement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func appendContacts(leads []entity.Lead, rows pgx.Rows) ([]entity.Lead, error) {
	defer rows.Close()
	for rows.Next() {
		record, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, entity.Lead{Type: entity.LeadTypeContact, Contact: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return leads, nil
}

func appendLibraryLeads(leads []entity.Lead, rows pgx.Rows) ([]entity.Lead, error) {
	defer rows.Close()
	for rows.Next() {
		record, err := scanLibraryLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, entity.Lead{Type: entity.LeadTypeLibraryLead, Library: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library leads: %w", err)
	}
	return leads, nil
}

func appendDemoRequests(leads []entity.Lead, rows pgx.Rows) ([]entity.Lead, error) {
	defer rows.Close()
	for rows.Next() {
		record, err := scanDemoRequest(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, entity.Lead{Type: entity.LeadTypeDemoRequest, Demo: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate demo requests: %w", err)
	}
	return leads, nil
}

func appendEventRegistrations(leads []entity.Lead, rows pgx.Rows) ([]entity.Lead, error) {
	defer rows.Close()
	for rows.Next() {
		record, err := scanEventRegistration(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, entity.Lead{Type: entity.LeadTypeEventRegistration, Event: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event registrations: %w", err)
	}
	return leads, nil
}

func appendPartnerships(leads []entity.Lead, rows pgx.Rows) ([]entity.Lead, error) {
	defer rows.Close()
	for rows.Next() {
		record, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, entity.Lead{Type: entity.LeadTypePartnership, Partnership: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partnerships: %w", err)
	}
	return leads, nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		record        entity.Contact
		phone         sql.NullString
		inquiryType   sql.NullString
		message       sql.NullString
		lastContacted sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.CompanyName,
		&record.ContactName,
		&record.Email,
		&phone,
		&inquiryType,
		&message,
		&lastContacted,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	record.Phone = nullStringToPtr(phone)
	record.InquiryType = nullStringToPtr(inquiryType)
	record.Message = nullStringToPtr(message)
	if lastContacted.Valid {
		ts := lastContacted.Time
		record.LastContactedAt = &ts
	}
	return &record, nil
}

func scanLibraryLead(row pgx.Row) (*entity.LibraryLead, error) {
	var (
		record        entity.LibraryLead
		phone         sql.NullString
		itemTitle     sql.NullString
		category      sql.NullString
		status        sql.NullString
		utmSource     sql.NullString
		utmMedium     sql.NullString
		utmCampaign   sql.NullString
		lastContacted sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.CompanyName,
		&record.ContactName,
		&record.Email,
		&phone,
		&itemTitle,
		&category,
		&status,
		&record.LeadScore,
		&record.MarketingConsent,
		&utmSource,
		&utmMedium,
		&utmCampaign,
		&record.EmailSent,
		&record.EmailOpened,
		&record.DownloadLinkClicked,
		&lastContacted,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan library lead: %w", err)
	}
	record.Phone = nullStringToPtr(phone)
	record.LibraryItemTitle = nullStringToPtr(itemTitle)
	record.LibraryCategory = nullStringToPtr(category)
	record.LeadStatus = nullStringToPtr(status)
	record.UTMSource = nullStringToPtr(utmSource)
	record.UTMMedium = nullStringToPtr(utmMedium)
	record.UTMCampaign = nullStringToPtr(utmCampaign)
	if lastContacted.Valid {
		ts := lastContacted.Time
		record.LastContactedAt = &ts
	}
	return &record, nil
}

func scanDemoRequest(row pgx.Row) (*entity.DemoRequest, error) {
	var (
		record  entity.DemoRequest
		phone   sql.NullString
		product sql.NullString
		message sql.NullString
		status  sql.NullString
	)
	err := row.Scan(
		&record.ID,
		&record.CompanyName,
		&record.ContactName,
		&record.Email,
		&phone,
		&product,
		&message,
		&status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan demo request: %w", err)
	}
	record.Phone = nullStringToPtr(phone)
	record.Product = nullStringToPtr(product)
	record.Message = nullStringToPtr(message)
	record.Status = nullStringToPtr(status)
	return &record, nil
}

func scanEventRegistration(row pgx.Row) (*entity.EventRegistration, error) {
	var (
		record      entity.EventRegistration
		eventName   sql.NullString
		description sql.NullString
		phone       sql.NullString
		status      sql.NullString
	)
	err := row.Scan(
		&record.ID,
		&record.EventID,
		&eventName,
		&description,
		&record.CompanyName,
		&record.ContactName,
		&record.Email,
		&phone,
		&status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan event registration: %w", err)
	}
	record.EventName = nullStringToPtr(eventName)
	record.EventDescription = nullStringToPtr(description)
	record.Phone = nullStringToPtr(phone)
	record.Status = nullStringToPtr(status)
	return &record, nil
}

func scanPartnership(row pgx.Row) (*entity.Partnership, error) {
	var (
		record          entity.Partnership
		partnershipType sql.NullString
		proposal        sql.NullString
		status          sql.NullString
	)
	err := row.Scan(
		&record.ID,
		&record.CompanyName,
		&record.ContactName,
		&record.Email,
		&partnershipType,
		&proposal,
		&status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("scan partnership: %w", err)
	}
	record.PartnershipType = nullStringToPtr(partnershipType)
	record.Proposal = nullStringToPtr(proposal)
	record.Status = nullStringToPtr(status)
	return &record, nil
}
