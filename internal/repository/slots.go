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

// ErrSlotNotFound indicates that no meeting slot matches the identifier.
var ErrSlotNotFound = errors.New("meeting slot not found")

// SlotsRepository describes persistence operations for meeting slots.
// Capacity reservation lives on BookingsRepository so that the conditional
// increment and the booking insert share one transaction.
type SlotsRepository interface {
	Create(ctx context.Context, slot *entity.MeetingSlot) error
	Update(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error)
	List(ctx context.Context) ([]entity.MeetingSlot, error)
	ListAvailable(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error)
}

// PGXSlotsRepository implements SlotsRepository using pgx.
type PGXSlotsRepository struct {
	pool pgxPool
}

// NewPGXSlotsRepository wires a pgx backed repository.
func NewPGXSlotsRepository(pool *pgxpool.Pool) *PGXSlotsRepository {
	return &PGXSlotsRepository{pool: pool}
}

const slotColumns = `id, title, description, meeting_type, duration_minutes, meeting_location,
        meeting_url, office_address, start_time, end_time, timezone,
        is_available, max_bookings, current_bookings, created_at, updated_at`

// availableSlotCondition is the shared availability predicate: operator
// enabled, in the future, and under capacity.
const availableSlotCondition = `is_available = TRUE
        AND start_time >= NOW()
        AND start_time <= NOW() + make_interval(days => $1)
        AND current_bookings < max_bookings`

// Create inserts a new slot. Capacity below one is rejected.
func (r *PGXSlotsRepository) Create(ctx context.Context, slot *entity.MeetingSlot) error {
	if slot == nil {
		return fmt.Errorf("slot payload is nil")
	}
	if slot.MaxBookings < 1 {
		return fmt.Errorf("max_bookings must be at least 1")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO meeting_slots (
            title, description, meeting_type, duration_minutes, meeting_location,
            meeting_url, office_address, start_time, end_time, timezone,
            is_available, max_bookings
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11)
        RETURNING id, current_bookings, is_available, created_at, updated_at`,
		slot.Title, stringOrNil(slot.Description), slot.MeetingType, slot.DurationMinutes,
		slot.MeetingLocation, stringOrNil(slot.MeetingURL), stringOrNil(slot.OfficeAddress),
		slot.StartTime, slot.EndTime, slot.Timezone, slot.MaxBookings)
	if err := row.Scan(&slot.ID, &slot.CurrentBookings, &slot.IsAvailable, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
		return fmt.Errorf("insert meeting slot: %w", err)
	}
	return nil
}

// Update patches slot attributes. MaxBookings can never drop below the
// bookings already taken.
func (r *PGXSlotsRepository) Update(ctx context.Context, id uuid.UUID, patch dto.UpdateSlotRequest) (*entity.MeetingSlot, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	appendSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.MeetingURL != nil {
		appendSet("meeting_url", *patch.MeetingURL)
	}
	if patch.OfficeAddress != nil {
		appendSet("office_address", *patch.OfficeAddress)
	}
	if patch.StartTime != nil {
		appendSet("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		appendSet("end_time", *patch.EndTime)
	}
	if patch.IsAvailable != nil {
		appendSet("is_available", *patch.IsAvailable)
	}
	if patch.DurationMinutes != nil {
		appendSet("duration_minutes", *patch.DurationMinutes)
	}
	if patch.MaxBookings != nil {
		if *patch.MaxBookings < 1 {
			return nil, fmt.Errorf("max_bookings must be at least 1")
		}
		setClauses = append(setClauses, fmt.Sprintf("max_bookings = GREATEST($%d, current_bookings)", idx))
		args = append(args, *patch.MaxBookings)
		idx++
	}

	if len(setClauses) == 0 {
		return r.Get(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE meeting_slots SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), idx, slotColumns)

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("update meeting slot: %w", err)
	}
	return slot, nil
}

// Delete removes a slot by id.
func (r *PGXSlotsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM meeting_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting slot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// Get fetches a slot by id.
func (r *PGXSlotsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.MeetingSlot, error) {
	return scanSlot(r.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM meeting_slots WHERE id = $1`, id))
}

// List returns every slot, newest window first.
func (r *PGXSlotsRepository) List(ctx context.Context) ([]entity.MeetingSlot, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+slotColumns+` FROM meeting_slots ORDER BY start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("list meeting slots: %w", err)
	}
	return scanSlots(rows)
}

// ListAvailable returns bookable slots within the forward window, soonest first.
func (r *PGXSlotsRepository) ListAvailable(ctx context.Context, windowDays int) ([]entity.MeetingSlot, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+slotColumns+`
        FROM meeting_slots
        WHERE `+availableSlotCondition+`
        ORDER BY start_time ASC`, windowDays)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return scanSlots(rows)
}

func scanSlots(rows pgx.Rows) ([]entity.MeetingSlot, error) {
	defer rows.Close()
	var slots []entity.MeetingSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting slots: %w", err)
	}
	return slots, nil
}

func scanSlot(row pgx.Row) (*entity.MeetingSlot, error) {
	var (
		slot          entity.MeetingSlot
		description   sql.NullString
		meetingURL    sql.NullString
		officeAddress sql.NullString
	)
	err := row.Scan(
		&slot.ID,
		&slot.Title,
		&description,
		&slot.MeetingType,
		&slot.DurationMinutes,
		&slot.MeetingLocation,
		&meetingURL,
		&officeAddress,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Timezone,
		&slot.IsAvailable,
		&slot.MaxBookings,
		&slot.CurrentBookings,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan meeting slot: %w", err)
	}
	slot.Description = nullStringToPtr(description)
	slot.MeetingURL = nullStringToPtr(meetingURL)
	slot.OfficeAddress = nullStringToPtr(officeAddress)
	return &slot, nil
}
