package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glec/leads-api/internal/dto"
	"github.com/glec/leads-api/internal/entity"
)

var (
	// ErrSlotNotAvailable indicates the conditional reservation matched no
	// row: the slot is full, past, disabled, or absent.
	ErrSlotNotAvailable = errors.New("meeting slot not available")
	// ErrTokenConsumed indicates the token was consumed by a concurrent
	// booking between validation and commit.
	ErrTokenConsumed = errors.New("proposal token already consumed")
	// ErrBookingNotFound indicates no booking matches the lookup.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingNotCancellable indicates the booking was already cancelled
	// or completed.
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled")
)

// BookingParams is the input to the booking transaction.
type BookingParams struct {
	TokenID         uuid.UUID
	SlotID          uuid.UUID
	LeadType        entity.LeadType
	LeadID          uuid.UUID
	Contact         entity.ContactSnapshot
	RequestedAgenda *string
}

// BookingsRepository owns the booking rows and the only write path for slot
// capacity. Book executes reservation, booking insert, token consumption and
// the activity append as one transaction: either all four commit or none do.
type BookingsRepository interface {
	Book(ctx context.Context, params BookingParams) (*entity.Booking, *entity.MeetingSlot, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error)
}

// PGXBookingsRepository implements BookingsRepository using pgx.
type PGXBookingsRepository struct {
	pool pgxPool
}

// NewPGXBookingsRepository wires a pgx backed repository.
func NewPGXBookingsRepository(pool *pgxpool.Pool) *PGXBookingsRepository {
	return &PGXBookingsRepository{pool: pool}
}

const bookingColumns = `id, meeting_slot_id, proposal_token_id, lead_type, lead_id,
        company_name, contact_name, email, phone, requested_agenda,
        booking_status, confirmed_at, cancelled_at, cancellation_reason,
        created_at, updated_at`

// reserveSlotSQL is the single conditional update that makes overselling
// impossible: the increment only happens if the row still has capacity at
// execution time, and the WHERE re-checks availability under the row lock.
const reserveSlotSQL = `
        UPDATE meeting_slots
        SET current_bookings = current_bookings + 1, updated_at = NOW()
        WHERE id = $1
          AND is_available = TRUE
          AND start_time >= NOW()
          AND current_bookings < max_bookings
        RETURNING ` + slotColumns

// consumeTokenSQL flips the single-use flag only if it is still clear; a
// concurrent winner leaves no row for the loser, which rolls back its
// reservation.
const consumeTokenSQL = `
        UPDATE meeting_proposal_tokens
        SET used = TRUE, used_at = NOW()
        WHERE id = $1 AND used = FALSE
        RETURNING id`

// Book runs the reservation transaction. On success the returned slot
// reflects the incremented counter.
func (r *PGXBookingsRepository) Book(ctx context.Context, params BookingParams) (*entity.Booking, *entity.MeetingSlot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("start booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := scanSlot(tx.QueryRow(ctx, reserveSlotSQL, params.SlotID))
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, nil, ErrSlotNotAvailable
		}
		return nil, nil, fmt.Errorf("reserve slot: %w", err)
	}

	booking, err := scanBooking(tx.QueryRow(ctx, `
        INSERT INTO meeting_bookings (
            meeting_slot_id, proposal_token_id, lead_type, lead_id,
            company_name, contact_name, email, phone,
            requested_agenda, booking_status, confirmed_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'CONFIRMED', NOW())
        RETURNING `+bookingColumns,
		params.SlotID, params.TokenID, params.LeadType, params.LeadID,
		params.Contact.CompanyName, params.Contact.ContactName, params.Contact.Email,
		stringOrNil(params.Contact.Phone), stringOrNil(params.RequestedAgenda)))
	if err != nil {
		return nil, nil, fmt.Errorf("insert booking: %w", err)
	}

	var consumedID uuid.UUID
	if err := tx.QueryRow(ctx, consumeTokenSQL, params.TokenID).Scan(&consumedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrTokenConsumed
		}
		return nil, nil, fmt.Errorf("consume token: %w", err)
	}

	metadata, err := json.Marshal(map[string]any{
		"booking_id":      booking.ID,
		"meeting_slot_id": params.SlotID,
		"start_time":      slot.StartTime,
		"end_time":        slot.EndTime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal booking metadata: %w", err)
	}
	_, err = tx.Exec(ctx, `
        INSERT INTO lead_activities (lead_type, lead_id, activity_type, activity_description, metadata)
        VALUES ($1, $2, $3, $4, $5::jsonb)`,
		params.LeadType, params.LeadID, entity.ActivityMeetingBooked, "Meeting booked through scheduling link", string(metadata))
	if err != nil {
		return nil, nil, fmt.Errorf("append booking activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit booking tx: %w", err)
	}

	return booking, slot, nil
}

// Get fetches a booking by id.
func (r *PGXBookingsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM meeting_bookings WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// FindByTokenID resolves the booking created by a given proposal token, if
// any. Booking existence, not the token's used flag, is the authoritative
// signal that a link was redeemed.
func (r *PGXBookingsRepository) FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM meeting_bookings WHERE proposal_token_id = $1`, tokenID))
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns bookings matching the filter, newest first.
func (r *PGXBookingsRepository) List(ctx context.Context, filter dto.BookingListFilter) ([]entity.Booking, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.Status != "" && filter.Status != "ALL" {
		clauses = append(clauses, fmt.Sprintf("booking_status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.SlotID != nil {
		clauses = append(clauses, fmt.Sprintf("meeting_slot_id = $%d", idx))
		args = append(args, *filter.SlotID)
		idx++
	}

	query := `SELECT ` + bookingColumns + ` FROM meeting_bookings`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// Cancel flips an active booking to CANCELLED and releases its slot seat in
// the same transaction, preserving the capacity invariant on the way down.
func (r *PGXBookingsRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Booking, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("start cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx, `
        UPDATE meeting_bookings
        SET booking_status = 'CANCELLED', cancelled_at = NOW(), cancellation_reason = $2, updated_at = NOW()
        WHERE id = $1 AND booking_status IN ('PENDING', 'CONFIRMED')
        RETURNING `+bookingColumns, id, reason))
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			// Distinguish "absent" from "present but terminal".
			if _, getErr := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM meeting_bookings WHERE id = $1`, id)); getErr == nil {
				return nil, ErrBookingNotCancellable
			}
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	_, err = tx.Exec(ctx, `
        UPDATE meeting_slots
        SET current_bookings = current_bookings - 1, updated_at = NOW()
        WHERE id = $1 AND current_bookings > 0`, booking.MeetingSlotID)
	if err != nil {
		return nil, fmt.Errorf("release slot seat: %w", err)
	}

	metadata, err := json.Marshal(map[string]any{
		"booking_id":      booking.ID,
		"meeting_slot_id": booking.MeetingSlotID,
		"reason":          reason,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal cancel metadata: %w", err)
	}
	_, err = tx.Exec(ctx, `
        INSERT INTO lead_activities (lead_type, lead_id, activity_type, activity_description, metadata)
        VALUES ($1, $2, $3, $4, $5::jsonb)`,
		booking.LeadType, booking.LeadID, entity.ActivityMeetingCanceled, "Meeting booking cancelled", string(metadata))
	if err != nil {
		return nil, fmt.Errorf("append cancel activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}
	return booking, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		booking      entity.Booking
		phone        sql.NullString
		agenda       sql.NullString
		confirmedAt  sql.NullTime
		cancelledAt  sql.NullTime
		cancelReason sql.NullString
	)
	err := row.Scan(
		&booking.ID,
		&booking.MeetingSlotID,
		&booking.ProposalTokenID,
		&booking.LeadType,
		&booking.LeadID,
		&booking.CompanyName,
		&booking.ContactName,
		&booking.Email,
		&phone,
		&agenda,
		&booking.BookingStatus,
		&confirmedAt,
		&cancelledAt,
		&cancelReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	booking.Phone = nullStringToPtr(phone)
	booking.RequestedAgenda = nullStringToPtr(agenda)
	booking.CancellationReason = nullStringToPtr(cancelReason)
	if confirmedAt.Valid {
		ts := confirmedAt.Time
		booking.ConfirmedAt = &ts
	}
	if cancelledAt.Valid {
		ts := cancelledAt.Time
		booking.CancelledAt = &ts
	}
	return &booking, nil
}
