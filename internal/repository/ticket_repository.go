package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// TicketFilter narrows ticket queries. Nil fields are not applied.
type TicketFilter struct {
	CreatedBy    *string
	AssigneeID   *string
	DepartmentID *string
	BusinessID   *string
	ParentID     *string
	Family       *domain.TicketFamily
	Status       *domain.TicketStatus
	Limit        int
	Offset       int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	UpdateAssignees(ctx context.Context, ticketID string, employeeIDs []string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, filter TicketFilter) (map[domain.TicketStatus]int64, error)
}

type ticketRepository struct {
	db DBTX
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db DBTX) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, family, created_by, business_id, parent_id, assignee_department_id,
               assignee_department_name, assignee_employees, status, priority, due_date, details,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (family, created_by, business_id, parent_id, assignee_department_id,
            assignee_department_name, assignee_employees, status, priority, due_date, details)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.Family,
		ticket.CreatedBy,
		ticket.BusinessID,
		ticket.ParentID,
		ticket.AssigneeDepartmentID,
		ticket.AssigneeDepartmentName,
		nonNilIDs(ticket.AssigneeEmployees),
		ticket.Status,
		ticket.Priority,
		ticket.DueDate,
		detailsOrEmpty(ticket.Details),
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET assignee_department_id=$1, assignee_department_name=$2, status=$3,
            priority=$4, due_date=$5, details=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.AssigneeDepartmentID,
		ticket.AssigneeDepartmentName,
		ticket.Status,
		ticket.Priority,
		ticket.DueDate,
		detailsOrEmpty(ticket.Details),
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) UpdateAssignees(ctx context.Context, ticketID string, employeeIDs []string) error {
	const query = `UPDATE tickets SET assignee_employees=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, nonNilIDs(employeeIDs), ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicket(r.db.QueryRow(ctx, query, id))
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	where, args := filter.where()
	page := Page{Limit: filter.Limit, Offset: filter.Offset}.Normalize()

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, page.Limit, page.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context, filter TicketFilter) (map[domain.TicketStatus]int64, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT status, COUNT(*) FROM tickets WHERE %s GROUP BY status`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[domain.TicketStatus]int64{}
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (f TicketFilter) where() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if f.CreatedBy != nil {
		args = append(args, *f.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if f.AssigneeID != nil {
		args = append(args, *f.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(assignee_employees)", len(args)))
	}
	if f.DepartmentID != nil {
		args = append(args, *f.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("assignee_department_id=$%d", len(args)))
	}
	if f.BusinessID != nil {
		args = append(args, *f.BusinessID)
		clauses = append(clauses, fmt.Sprintf("business_id=$%d", len(args)))
	}
	if f.ParentID != nil {
		args = append(args, *f.ParentID)
		clauses = append(clauses, fmt.Sprintf("parent_id=$%d", len(args)))
	}
	if f.Family != nil {
		args = append(args, string(*f.Family))
		clauses = append(clauses, fmt.Sprintf("family=$%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Family,
		&ticket.CreatedBy,
		&ticket.BusinessID,
		&ticket.ParentID,
		&ticket.AssigneeDepartmentID,
		&ticket.AssigneeDepartmentName,
		&ticket.AssigneeEmployees,
		&ticket.Status,
		&ticket.Priority,
		&ticket.DueDate,
		&ticket.Details,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func detailsOrEmpty(d domain.TicketDetails) domain.TicketDetails {
	if d == nil {
		return domain.TicketDetails{}
	}
	return d
}
