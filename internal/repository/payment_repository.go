package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// SalesRange selects credit payments for sales statistics in [From, To).
type SalesRange struct {
	From time.Time
	To   time.Time
	// UserID narrows to payments where the user was fronter or closer.
	UserID *string
}

// PaymentRepository is the append-only payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentHistory) error
	ListRecent(ctx context.Context, page Page) ([]domain.PaymentHistory, error)
	MonthlySales(ctx context.Context, rng SalesRange) ([]domain.MonthlySales, error)
	TopClosers(ctx context.Context, from, to time.Time) ([]domain.CloserSales, error)
}

type paymentRepository struct {
	db DBTX
}

// NewPaymentRepository builds repository.
func NewPaymentRepository(db DBTX) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentHistory) error {
	const query = `
        INSERT INTO payment_history (business_id, ticket_id, fronter_id, closer_id, payment_type, received_payment)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		payment.BusinessID,
		payment.TicketID,
		payment.FronterID,
		payment.CloserID,
		payment.PaymentType,
		payment.ReceivedPayment,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) ListRecent(ctx context.Context, page Page) ([]domain.PaymentHistory, error) {
	page = page.Normalize()
	const query = `
        SELECT p.id, p.business_id, b.business_name, p.ticket_id, COALESCE(t.details->>'work_status', ''),
               p.fronter_id, p.closer_id, COALESCE(c.user_name, ''), p.payment_type, p.received_payment, p.created_at
        FROM payment_history p
        JOIN businesses b ON b.id = p.business_id
        LEFT JOIN tickets t ON t.id = p.ticket_id
        LEFT JOIN users c ON c.id = p.closer_id
        ORDER BY p.created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.PaymentHistory{}
	for rows.Next() {
		var p domain.PaymentHistory
		if err := rows.Scan(
			&p.ID,
			&p.BusinessID,
			&p.BusinessName,
			&p.TicketID,
			&p.TicketWorkType,
			&p.FronterID,
			&p.CloserID,
			&p.CloserName,
			&p.PaymentType,
			&p.ReceivedPayment,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (rng SalesRange) query() (string, []any) {
	args := []any{domain.PaymentTypeCredit, rng.From, rng.To}
	userClause := ""
	if rng.UserID != nil {
		args = append(args, *rng.UserID)
		userClause = fmt.Sprintf(" AND (fronter_id=$%d OR closer_id=$%d)", len(args), len(args))
	}
	query := `
        SELECT EXTRACT(MONTH FROM created_at)::int AS month, SUM(received_payment)
        FROM payment_history
        WHERE payment_type=$1 AND created_at >= $2 AND created_at < $3` + userClause + `
        GROUP BY month
        ORDER BY month ASC`
	return query, args
}

func (r *paymentRepository) MonthlySales(ctx context.Context, rng SalesRange) ([]domain.MonthlySales, error) {
	query, args := rng.query()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.MonthlySales{}
	for rows.Next() {
		var m domain.MonthlySales
		if err := rows.Scan(&m.Month, &m.TotalSales); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *paymentRepository) TopClosers(ctx context.Context, from, to time.Time) ([]domain.CloserSales, error) {
	const query = `
        SELECT p.closer_id, u.user_name, SUM(p.received_payment) AS total
        FROM payment_history p
        JOIN users u ON u.id = p.closer_id
        WHERE p.payment_type=$1 AND p.created_at >= $2 AND p.created_at < $3
        GROUP BY p.closer_id, u.user_name
        ORDER BY total DESC`
	rows, err := r.db.Query(ctx, query, domain.PaymentTypeCredit, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CloserSales{}
	for rows.Next() {
		var c domain.CloserSales
		if err := rows.Scan(&c.CloserID, &c.UserName, &c.TotalSales); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
