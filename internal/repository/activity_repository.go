package repository

import (
	"context"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// ActivityRepository persists the activity log.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	List(ctx context.Context, page Page) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	db DBTX
}

// NewActivityRepository builds repository.
func NewActivityRepository(db DBTX) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_logs (user_id, user_name, department_name, origin, action, message, metadata)
        VALUES (NULLIF($1, '')::uuid,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.UserID,
		entry.UserName,
		entry.DepartmentName,
		entry.Origin,
		entry.Action,
		entry.Message,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) List(ctx context.Context, page Page) ([]domain.ActivityEntry, error) {
	page = page.Normalize()
	const query = `
        SELECT id, COALESCE(user_id::text, ''), user_name, department_name, origin, action, message, metadata, created_at
        FROM activity_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ActivityEntry{}
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.UserName,
			&e.DepartmentName,
			&e.Origin,
			&e.Action,
			&e.Message,
			&e.Metadata,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
