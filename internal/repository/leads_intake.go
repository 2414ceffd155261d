package repository

import (
	"context"
	"fmt"

	"github.com/glec/leads-api/internal/entity"
)

// CreateContact inserts a contact-form row and fills server-side fields.
func (r *PGXLeadsRepository) CreateContact(ctx context.Context, record *entity.Contact) error {
	if record == nil {
		return fmt.Errorf("contact payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO contacts (company_name, contact_name, email, phone, inquiry_type, message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`,
		record.CompanyName, record.ContactName, record.Email,
		stringOrNil(record.Phone), stringOrNil(record.InquiryType), stringOrNil(record.Message))
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// CreateLibraryLead inserts a download-pipeline row with its initial score.
func (r *PGXLeadsRepository) CreateLibraryLead(ctx context.Context, record *entity.LibraryLead) error {
	if record == nil {
		return fmt.Errorf("library lead payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO library_leads (
            company_name, contact_name, email, phone,
            library_item_title, library_category, lead_status, lead_score,
            marketing_consent, utm_source, utm_medium, utm_campaign
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`,
		record.CompanyName, record.ContactName, record.Email, stringOrNil(record.Phone),
		stringOrNil(record.LibraryItemTitle), stringOrNil(record.LibraryCategory),
		stringOrNil(record.LeadStatus), record.LeadScore,
		record.MarketingConsent, stringOrNil(record.UTMSource),
		stringOrNil(record.UTMMedium), stringOrNil(record.UTMCampaign))
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return fmt.Errorf("insert library lead: %w", err)
	}
	return nil
}

// CreateDemoRequest inserts a demo-request row.
func (r *PGXLeadsRepository) CreateDemoRequest(ctx context.Context, record *entity.DemoRequest) error {
	if record == nil {
		return fmt.Errorf("demo request payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO demo_requests (company_name, contact_name, email, phone, product, message, status)
        VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, 'NEW'))
        RETURNING id, created_at, updated_at`,
		record.CompanyName, record.ContactName, record.Email,
		stringOrNil(record.Phone), stringOrNil(record.Product),
		stringOrNil(record.Message), stringOrNil(record.Status))
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return fmt.Errorf("insert demo request: %w", err)
	}
	return nil
}

// CreateEventRegistration inserts an event signup row.
func (r *PGXLeadsRepository) CreateEventRegistration(ctx context.Context, record *entity.EventRegistration) error {
	if record == nil {
		return fmt.Errorf("event registration payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO event_registrations (event_id, company_name, contact_name, email, phone, status)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, 'PENDING'))
        RETURNING id, created_at, updated_at`,
		record.EventID, record.CompanyName, record.ContactName, record.Email,
		stringOrNil(record.Phone), stringOrNil(record.Status))
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return fmt.Errorf("insert event registration: %w", err)
	}
	return nil
}

// CreatePartnership inserts a partnership proposal row.
func (r *PGXLeadsRepository) CreatePartnership(ctx context.Context, record *entity.Partnership) error {
	if record == nil {
		return fmt.Errorf("partnership payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO partnerships (company_name, contact_name, email, partnership_type, proposal, status)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, 'NEW'))
        RETURNING id, created_at, updated_at`,
		record.CompanyName, record.ContactName, record.Email,
		stringOrNil(record.PartnershipType), stringOrNil(record.Proposal), stringOrNil(record.Status))
	if err := row.Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return fmt.Errorf("insert partnership: %w", err)
	}
	return nil
}
