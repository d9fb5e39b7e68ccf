package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// BusinessRepository persists client businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	List(ctx context.Context, page Page) ([]domain.Business, error)
	ListNames(ctx context.Context) ([]domain.BusinessName, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type businessRepository struct {
	db DBTX
}

// NewBusinessRepository builds repository.
func NewBusinessRepository(db DBTX) BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, business_name, business_email, business_number, client_name, website_url,
               status, created_by, created_at, updated_at`

func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	const query = `
        INSERT INTO businesses (business_name, business_email, business_number, client_name, website_url, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		business.BusinessName,
		business.BusinessEmail,
		business.BusinessNumber,
		business.ClientName,
		business.WebsiteURL,
		business.Status,
		business.CreatedBy,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id=$1`
	return scanBusiness(r.db.QueryRow(ctx, query, id))
}

func (r *businessRepository) List(ctx context.Context, page Page) ([]domain.Business, error) {
	page = page.Normalize()
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *business)
	}
	return result, rows.Err()
}

func (r *businessRepository) ListNames(ctx context.Context) ([]domain.BusinessName, error) {
	const query = `SELECT id, business_name FROM businesses ORDER BY business_name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.BusinessName{}
	for rows.Next() {
		var name domain.BusinessName
		if err := rows.Scan(&name.ID, &name.BusinessName); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	return result, rows.Err()
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE businesses SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var b domain.Business
	if err := row.Scan(
		&b.ID,
		&b.BusinessName,
		&b.BusinessEmail,
		&b.BusinessNumber,
		&b.ClientName,
		&b.WebsiteURL,
		&b.Status,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
