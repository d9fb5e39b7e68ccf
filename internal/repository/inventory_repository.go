package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// InventoryRepository stores domain and hosting forms in one table keyed by kind.
type InventoryRepository interface {
	Create(ctx context.Context, record *domain.InventoryRecord) error
	Update(ctx context.Context, record *domain.InventoryRecord) error
	Delete(ctx context.Context, kind domain.InventoryKind, id string) error
	GetByID(ctx context.Context, kind domain.InventoryKind, id string) (*domain.InventoryRecord, error)
	List(ctx context.Context, kind domain.InventoryKind, page Page) ([]domain.InventoryRecord, error)
}

type inventoryRepository struct {
	db DBTX
}

// NewInventoryRepository builds repository.
func NewInventoryRepository(db DBTX) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, kind, business_id, name, holder, platform, approved_by, price, live_status,
               list_status, notes, creation_date, expiration_date, created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, record *domain.InventoryRecord) error {
	const query = `
        INSERT INTO inventory_forms (kind, business_id, name, holder, platform, approved_by, price,
            live_status, list_status, notes, creation_date, expiration_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		record.Kind,
		record.BusinessID,
		record.Name,
		record.Holder,
		record.Platform,
		record.ApprovedBy,
		record.Price,
		record.LiveStatus,
		record.ListStatus,
		record.Notes,
		record.CreationDate,
		record.ExpirationDate,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *inventoryRepository) Update(ctx context.Context, record *domain.InventoryRecord) error {
	const query = `
        UPDATE inventory_forms SET business_id=$1, name=$2, holder=$3, platform=$4, approved_by=$5,
            price=$6, live_status=$7, list_status=$8, notes=$9, creation_date=$10, expiration_date=$11,
            updated_at=NOW()
        WHERE id=$12 AND kind=$13
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		record.BusinessID,
		record.Name,
		record.Holder,
		record.Platform,
		record.ApprovedBy,
		record.Price,
		record.LiveStatus,
		record.ListStatus,
		record.Notes,
		record.CreationDate,
		record.ExpirationDate,
		record.ID,
		record.Kind,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
}

func (r *inventoryRepository) Delete(ctx context.Context, kind domain.InventoryKind, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM inventory_forms WHERE id=$1 AND kind=$2`, id, kind)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, kind domain.InventoryKind, id string) (*domain.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_forms WHERE id=$1 AND kind=$2`
	return scanInventory(r.db.QueryRow(ctx, query, id, kind))
}

func (r *inventoryRepository) List(ctx context.Context, kind domain.InventoryKind, page Page) ([]domain.InventoryRecord, error) {
	page = page.Normalize()
	query := `SELECT ` + inventoryColumns + `
        FROM inventory_forms WHERE kind=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.InventoryRecord{}
	for rows.Next() {
		record, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, rows.Err()
}

func scanInventory(row pgx.Row) (*domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.BusinessID,
		&rec.Name,
		&rec.Holder,
		&rec.Platform,
		&rec.ApprovedBy,
		&rec.Price,
		&rec.LiveStatus,
		&rec.ListStatus,
		&rec.Notes,
		&rec.CreationDate,
		&rec.ExpirationDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
