package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// PaymentsHandler serves the payment ledger and sales statistics.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// Record POST /payments.
func (h *PaymentsHandler) Record(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.RecordPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	payment, err := h.service.RecordPayment(c.UserContext(), caller, service.RecordPaymentInput{
		BusinessID:  req.BusinessID,
		TicketID:    req.TicketID,
		FronterID:   req.FronterID,
		CloserID:    req.CloserID,
		PaymentType: req.PaymentType,
		Amount:      req.ReceivedPayment,
	})
	if err != nil {
		return err
	}
	return created(c, paymentResponse(payment))
}

// RemainingSheet GET /payments/remaining-sheet.
func (h *PaymentsHandler) RemainingSheet(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	payments, err := h.service.RemainingSheet(c.UserContext(), caller, pageFrom(c))
	if err != nil {
		return err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return data(c, items)
}

// MonthlySales GET /stats/monthly-sales?from=YYYY-MM-DD&to=YYYY-MM-DD&user_id=.
// Both dates are inclusive calendar days.
func (h *PaymentsHandler) MonthlySales(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	sales, err := h.service.MonthlySales(c.UserContext(), caller, service.SalesQuery{
		From:   from,
		To:     to,
		UserID: optionalQuery(c, "user_id"),
	})
	if err != nil {
		return err
	}
	items := make([]dto.MonthlySalesResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, dto.MonthlySalesResponse{Month: s.Month, TotalSales: s.TotalSales})
	}
	return data(c, items)
}

// TopClosers GET /stats/top-closers?year=&month=.
func (h *PaymentsHandler) TopClosers(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return err
	}
	closers, err := h.service.TopClosers(c.UserContext(), caller, year, time.Month(month))
	if err != nil {
		return err
	}
	items := make([]dto.CloserSalesResponse, 0, len(closers))
	for _, s := range closers {
		items = append(items, dto.CloserSalesResponse{CloserID: s.CloserID, UserName: s.UserName, TotalSales: s.TotalSales})
	}
	return data(c, items)
}

func queryDate(c *fiber.Ctx, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid "+key, map[string]any{key: raw, "layout": dateLayout})
	}
	return t, nil
}
