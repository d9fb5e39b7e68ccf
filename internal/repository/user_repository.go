package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// UserRepository defines persistence access for back-office users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	List(ctx context.Context, page Page) ([]domain.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.user_name, u.password_hash, u.role, u.department_id, d.name, u.sub_role, u.created_at, u.updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (user_name, password_hash, role, department_id, sub_role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		user.UserName,
		user.PasswordHash,
		user.Role,
		user.DepartmentID,
		user.SubRole,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET role=$1, department_id=$2, sub_role=$3, password_hash=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	return r.db.QueryRow(ctx, query,
		user.Role,
		user.DepartmentID,
		user.SubRole,
		user.PasswordHash,
		user.ID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN departments d ON d.id = u.department_id
        WHERE u.id=$1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN departments d ON d.id = u.department_id
        WHERE u.user_name=$1`
	return scanUser(r.db.QueryRow(ctx, query, userName))
}

func (r *userRepository) List(ctx context.Context, page Page) ([]domain.User, error) {
	page = page.Normalize()
	query := `SELECT ` + userColumns + `
        FROM users u JOIN departments d ON d.id = u.department_id
        ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.PasswordHash,
		&user.Role,
		&user.DepartmentID,
		&user.DepartmentName,
		&user.SubRole,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
