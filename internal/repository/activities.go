package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glec/leads-api/internal/entity"
)

// ActivitiesRepository appends to and reads the per-lead activity journal.
// The journal is append-only; booking and cancellation entries are written
// inside the booking transaction instead, so failures there roll back with
// the rest of the work.
type ActivitiesRepository interface {
	Append(ctx context.Context, activity entity.LeadActivity) error
	ListForLead(ctx context.Context, leadType entity.LeadType, leadID uuid.UUID) ([]entity.LeadActivity, error)
}

// PGXActivitiesRepository implements ActivitiesRepository using pgx.
type PGXActivitiesRepository struct {
	pool pgxPool
}

// NewPGXActivitiesRepository wires a pgx backed repository.
func NewPGXActivitiesRepository(pool *pgxpool.Pool) *PGXActivitiesRepository {
	return &PGXActivitiesRepository{pool: pool}
}

// Append writes one journal entry.
func (r *PGXActivitiesRepository) Append(ctx context.Context, activity entity.LeadActivity) error {
	var metadata any
	if activity.Metadata != nil {
		encoded, err := json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
		metadata = string(encoded)
	}
	_, err := r.pool.Exec(ctx, `
        INSERT INTO lead_activities (lead_type, lead_id, activity_type, activity_description, metadata)
        VALUES ($1, $2, $3, $4, $5::jsonb)`,
		activity.LeadType, activity.LeadID, activity.Type, activity.Description, metadata)
	if err != nil {
		return fmt.Errorf("append lead activity: %w", err)
	}
	return nil
}

// ListForLead returns the journal for one lead, newest first.
func (r *PGXActivitiesRepository) ListForLead(ctx context.Context, leadType entity.LeadType, leadID uuid.UUID) ([]entity.LeadActivity, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, lead_type, lead_id, activity_type, activity_description, metadata, created_at
        FROM lead_activities
        WHERE lead_type = $1 AND lead_id = $2
        ORDER BY created_at DESC`, leadType, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead activities: %w", err)
	}
	defer rows.Close()

	var activities []entity.LeadActivity
	for rows.Next() {
		var (
			activity entity.LeadActivity
			raw      []byte
		)
		err := rows.Scan(&activity.ID, &activity.LeadType, &activity.LeadID,
			&activity.Type, &activity.Description, &raw, &activity.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan lead activity: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &activity.Metadata); err != nil {
				return nil, fmt.Errorf("decode activity metadata: %w", err)
			}
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead activities: %w", err)
	}
	return activities, nil
}
