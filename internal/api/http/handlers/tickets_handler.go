package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	assign  *service.AssignmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, assignmentService *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{service: ticketService, assign: assignmentService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), caller, createInput(req))
	if err != nil {
		return err
	}
	return created(c, ticketResponse(ticket))
}

// CreateChildTicket POST /tickets/:id/children.
func (h *TicketsHandler) CreateChildTicket(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.CreateChildTicket(c.UserContext(), caller, c.Params("id"), createInput(req))
	if err != nil {
		return err
	}
	return created(c, ticketResponse(ticket))
}

// ListChildren GET /tickets/:id/children.
func (h *TicketsHandler) ListChildren(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListChildren(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, ticketList(tickets))
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), caller, listFilter(c))
	if err != nil {
		return err
	}
	return data(c, ticketList(tickets))
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, ticketResponse(ticket))
}

// UpdateTicket PUT /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), caller, c.Params("id"), service.TicketInput{
		Department: req.DepartmentName,
		Status:     req.Status,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		Details:    req.Details,
	})
	if err != nil {
		return err
	}
	return data(c, ticketResponse(ticket))
}

// AssignEmployees PUT /tickets/:id/assignees.
func (h *TicketsHandler) AssignEmployees(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.AssignEmployeesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ticket, err := h.assign.AssignEmployees(c.UserContext(), caller, c.Params("id"), req.EmployeeIDs)
	if err != nil {
		return err
	}
	return data(c, ticketResponse(ticket))
}

// ListHistory GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListHistory(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketHistoryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyResponse(e))
	}
	return data(c, items)
}

// AddMessage POST /tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.service.AddMessage(c.UserContext(), caller, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return created(c, messageResponse(msg))
}

// ListMessages GET /tickets/:id/messages.
func (h *TicketsHandler) ListMessages(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.ListMessages(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketMessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, messageResponse(&msgs[i]))
	}
	return data(c, items)
}

// Analytics GET /analytics/tickets.
func (h *TicketsHandler) Analytics(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	counts, err := h.service.GetAnalytics(c.UserContext(), caller, listFilter(c))
	if err != nil {
		return err
	}
	return data(c, counts)
}

func createInput(req dto.CreateTicketRequest) service.TicketInput {
	return service.TicketInput{
		Department: req.DepartmentName,
		BusinessID: req.BusinessID,
		Status:     req.Status,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		Details:    req.Details,
	}
}

func listFilter(c *fiber.Ctx) service.TicketListFilter {
	page := pageFrom(c)
	filter := service.TicketListFilter{
		BusinessID: optionalQuery(c, "business_id"),
		Department: optionalQuery(c, "department"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if family := optionalQuery(c, "family"); family != nil {
		f := domain.TicketFamily(*family)
		filter.Family = &f
	}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.TicketStatus(*status)
		filter.Status = &s
	}
	return filter
}
