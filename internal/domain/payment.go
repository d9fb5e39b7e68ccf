package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType enumerates ledger entry kinds.
type PaymentType string

const (
	PaymentTypeCredit     PaymentType = "Credit"
	PaymentTypeRefund     PaymentType = "Refund"
	PaymentTypeChargeback PaymentType = "Chargeback"
)

// PaymentHistory is an append-only payment event.
type PaymentHistory struct {
	ID              string
	BusinessID      string
	BusinessName    string
	TicketID        *string
	TicketWorkType  string
	FronterID       *string
	CloserID        *string
	CloserName      string
	PaymentType     PaymentType
	ReceivedPayment decimal.Decimal
	CreatedAt       time.Time
}

// MonthlySales is the credit total of one calendar month.
type MonthlySales struct {
	Month      int
	TotalSales decimal.Decimal
}

// CloserSales is the credit total attributed to one closer.
type CloserSales struct {
	CloserID   string
	UserName   string
	TotalSales decimal.Decimal
}
