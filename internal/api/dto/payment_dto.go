package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest payload.
type RecordPaymentRequest struct {
	BusinessID      string          `json:"business_id" validate:"required,uuid"`
	TicketID        *string         `json:"ticket_id" validate:"omitempty,uuid"`
	FronterID       *string         `json:"fronter_id" validate:"omitempty,uuid"`
	CloserID        *string         `json:"closer_id" validate:"omitempty,uuid"`
	PaymentType     string          `json:"payment_type" validate:"omitempty,oneof=Credit Refund Chargeback"`
	ReceivedPayment decimal.Decimal `json:"received_payment"`
}

// PaymentResponse is one ledger row.
type PaymentResponse struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"business_id"`
	BusinessName    string          `json:"business_name"`
	TicketID        *string         `json:"ticket_id"`
	WorkStatus      string          `json:"work_status,omitempty"`
	FronterID       *string         `json:"fronter_id"`
	CloserID        *string         `json:"closer_id"`
	CloserName      string          `json:"closer_name,omitempty"`
	PaymentType     string          `json:"payment_type"`
	ReceivedPayment decimal.Decimal `json:"received_payment"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MonthlySalesResponse is the credit total of one month.
type MonthlySalesResponse struct {
	Month      int             `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// CloserSalesResponse is the credit total of one closer.
type CloserSalesResponse struct {
	CloserID   string          `json:"closer_id"`
	UserName   string          `json:"user_name"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// ActivityResponse is one activity log line.
type ActivityResponse struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	UserName       string         `json:"user_name"`
	DepartmentName string         `json:"department_name"`
	Origin         string         `json:"origin"`
	Action         string         `json:"action"`
	Message        string         `json:"message"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
