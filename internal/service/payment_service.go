package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// PaymentService keeps the payment ledger and the sales statistics built on it.
type PaymentService struct {
	payments   repository.PaymentRepository
	businesses repository.BusinessRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	guard      authorizer
	events     publisher
	now        func() time.Time
}

// PaymentDependencies bundles repositories for the payment service.
type PaymentDependencies struct {
	PaymentRepo  repository.PaymentRepository
	BusinessRepo repository.BusinessRepository
	TicketRepo   repository.TicketRepository
	UserRepo     repository.UserRepository
	Guard        authorizer
	Dispatcher   events.Dispatcher
}

// NewPaymentService creates the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		payments:   deps.PaymentRepo,
		businesses: deps.BusinessRepo,
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		guard:      deps.Guard,
		events:     publisher{dispatcher: deps.Dispatcher},
		now:        time.Now,
	}
}

// RecordPaymentInput is one ledger entry.
type RecordPaymentInput struct {
	BusinessID  string
	TicketID    *string
	FronterID   *string
	CloserID    *string
	PaymentType string
	Amount      decimal.Decimal
}

// ParsePaymentType accepts Credit, Refund or Chargeback.
func ParsePaymentType(value string) (domain.PaymentType, error) {
	switch t := domain.PaymentType(value); t {
	case domain.PaymentTypeCredit, domain.PaymentTypeRefund, domain.PaymentTypeChargeback:
		return t, nil
	case "":
		return domain.PaymentTypeCredit, nil
	default:
		return "", apperrors.NewValidationError("unknown payment_type", map[string]any{"payment_type": value})
	}
}

// RecordPayment appends a payment to the ledger.
func (s *PaymentService) RecordPayment(ctx context.Context, caller Caller, input RecordPaymentInput) (*domain.PaymentHistory, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpRecordPayment, "record a payment", map[string]any{
		"business_id": input.BusinessID,
		"amount":      input.Amount.String(),
	}); err != nil {
		return nil, err
	}
	paymentType, err := ParsePaymentType(input.PaymentType)
	if err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("received_payment must be positive", map[string]any{"received_payment": input.Amount.String()})
	}
	if err := requireID(input.BusinessID, "business_id"); err != nil {
		return nil, err
	}
	business, err := s.businesses.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "business", map[string]any{"business_id": input.BusinessID})
	}
	if input.TicketID != nil {
		if err := requireID(*input.TicketID, "ticket_id"); err != nil {
			return nil, err
		}
		if _, err := s.tickets.GetByID(ctx, *input.TicketID); err != nil {
			return nil, apperrors.NotFoundOr(err, "ticket", map[string]any{"ticket_id": *input.TicketID})
		}
	}
	for field, id := range map[string]*string{"fronter_id": input.FronterID, "closer_id": input.CloserID} {
		if id == nil {
			continue
		}
		if err := requireID(*id, field); err != nil {
			return nil, err
		}
		if _, err := s.users.GetByID(ctx, *id); err != nil {
			return nil, apperrors.NotFoundOr(err, "user", map[string]any{field: *id})
		}
	}

	payment := &domain.PaymentHistory{
		BusinessID:      business.ID,
		BusinessName:    business.BusinessName,
		TicketID:        input.TicketID,
		FronterID:       input.FronterID,
		CloserID:        input.CloserID,
		PaymentType:     paymentType,
		ReceivedPayment: input.Amount,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventPaymentRecorded,
		SubjectID: payment.ID,
		Actor:     caller.actor(),
		Payload: events.PaymentRecordedPayload{
			BusinessID:  payment.BusinessID,
			PaymentType: payment.PaymentType,
			Amount:      payment.ReceivedPayment.StringFixed(2),
		},
	})
	return payment, nil
}

// RemainingSheet lists ledger entries newest first.
func (s *PaymentService) RemainingSheet(ctx context.Context, caller Caller, page repository.Page) ([]domain.PaymentHistory, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadPayments, "fetch the remaining sheet", nil); err != nil {
		return nil, err
	}
	out, err := s.payments.ListRecent(ctx, page.Normalize())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

// SalesQuery selects the window for sales statistics. Zero From/To default to
// the current calendar year.
type SalesQuery struct {
	From   time.Time
	To     time.Time
	UserID *string
}

// MonthlySales sums credit payments per month of the window.
func (s *PaymentService) MonthlySales(ctx context.Context, caller Caller, query SalesQuery) ([]domain.MonthlySales, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadSalesStats, "fetch monthly sales", nil); err != nil {
		return nil, err
	}
	from, to := query.From, query.To
	if from.IsZero() || to.IsZero() {
		year := s.now().UTC().Year()
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
	}
	if !to.After(from) {
		return nil, apperrors.NewValidationError("to must be after from", nil)
	}
	if query.UserID != nil {
		if err := requireID(*query.UserID, "user_id"); err != nil {
			return nil, err
		}
	}
	out, err := s.payments.MonthlySales(ctx, repository.SalesRange{From: from, To: to, UserID: query.UserID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

// TopClosers ranks closers by credit total for one calendar month.
func (s *PaymentService) TopClosers(ctx context.Context, caller Caller, year int, month time.Month) ([]domain.CloserSales, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadSalesStats, "fetch top closers", nil); err != nil {
		return nil, err
	}
	if year == 0 || month == 0 {
		now := s.now().UTC()
		year, month = now.Year(), now.Month()
	}
	if month < time.January || month > time.December {
		return nil, apperrors.NewValidationError("month must be 1-12", map[string]any{"month": int(month)})
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	out, err := s.payments.TopClosers(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}
