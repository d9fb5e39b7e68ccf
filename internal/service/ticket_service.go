package service

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	"github.com/ShabiGardezi/crm-hunfa/internal/routing"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

const maxMessageLength = 5000

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	history     repository.TicketHistoryRepository
	messages    repository.TicketMessageRepository
	departments repository.DepartmentRepository
	businesses  repository.BusinessRepository
	router      *routing.Router
	guard       authorizer
	events      publisher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	HistoryRepo    repository.TicketHistoryRepository
	MessageRepo    repository.TicketMessageRepository
	DepartmentRepo repository.DepartmentRepository
	BusinessRepo   repository.BusinessRepository
	Router         *routing.Router
	Guard          authorizer
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		history:     deps.HistoryRepo,
		messages:    deps.MessageRepo,
		departments: deps.DepartmentRepo,
		businesses:  deps.BusinessRepo,
		router:      deps.Router,
		guard:       deps.Guard,
		events:      publisher{dispatcher: deps.Dispatcher},
	}
}

// TicketInput is the caller supplied part of a ticket.
type TicketInput struct {
	Department string
	BusinessID *string
	Status     string
	Priority   string
	DueDate    *time.Time
	Details    map[string]any
}

// TicketListFilter narrows ticket listings on top of the caller's scope.
type TicketListFilter struct {
	BusinessID *string
	Family     *domain.TicketFamily
	Status     *domain.TicketStatus
	Department *string
	Limit      int
	Offset     int
}

// CreateTicket routes and stores a new business ticket.
func (s *TicketService) CreateTicket(ctx context.Context, caller Caller, input TicketInput) (*domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpCreateTicket, "create a ticket", map[string]any{"department": input.Department})
	if err != nil {
		return nil, err
	}
	if input.BusinessID != nil {
		if err := s.ensureBusiness(ctx, *input.BusinessID); err != nil {
			return nil, err
		}
	}
	ticket, err := s.router.Route(ctx, routing.Request{
		Department: input.Department,
		CreatedBy:  caller.Identity.ID,
		BusinessID: input.BusinessID,
		Status:     input.Status,
		Priority:   input.Priority,
		DueDate:    input.DueDate,
		Details:    input.Details,
	})
	if err != nil {
		return nil, err
	}
	return s.store(ctx, caller, decision, ticket)
}

// CreateChildTicket routes a department ticket under parentID. The parent must
// be visible to the caller.
func (s *TicketService) CreateChildTicket(ctx context.Context, caller Caller, parentID string, input TicketInput) (*domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpCreateTicket, "create a child ticket", map[string]any{"parent_id": parentID})
	if err != nil {
		return nil, err
	}
	parent, err := s.visibleTicket(ctx, caller, parentID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.router.Route(ctx, routing.Request{
		Department: input.Department,
		CreatedBy:  caller.Identity.ID,
		Parent:     parent,
		Status:     input.Status,
		Priority:   input.Priority,
		DueDate:    input.DueDate,
		Details:    input.Details,
	})
	if err != nil {
		return nil, err
	}
	return s.store(ctx, caller, decision, ticket)
}

func (s *TicketService) store(ctx context.Context, caller Caller, decision access.Decision, ticket *domain.Ticket) (*domain.Ticket, error) {
	if !decision.Permits(ticket) {
		return nil, apperrors.NewForbidden("ticket outside of your scope")
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.recordHistory(ctx, caller, ticket.ID, domain.ChangeTypeCreated, nil, map[string]any{
		"department": ticket.AssigneeDepartmentName,
		"status":     ticket.Status,
	}); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		SubjectID: ticket.ID,
		Actor:     caller.actor(),
		Payload: events.TicketCreatedPayload{
			Family:         ticket.Family,
			DepartmentName: ticket.AssigneeDepartmentName,
			BusinessID:     ticket.BusinessID,
			ParentID:       ticket.ParentID,
			Priority:       ticket.Priority,
		},
	})
	return ticket, nil
}

// UpdateTicket replaces the routed part of a ticket. The ticket must lie in
// the caller's update scope.
func (s *TicketService) UpdateTicket(ctx context.Context, caller Caller, ticketID string, input TicketInput) (*domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpUpdateTicket, "update a ticket", map[string]any{"ticket_id": ticketID})
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !decision.Permits(existing) {
		return nil, apperrors.NewForbidden("ticket outside of your scope")
	}

	next, err := s.router.Reroute(ctx, existing, routing.Request{
		Department: input.Department,
		Status:     input.Status,
		Priority:   input.Priority,
		DueDate:    input.DueDate,
		Details:    input.Details,
	})
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, next); err != nil {
		return nil, apperrors.NotFoundOr(err, "ticket", map[string]any{"ticket_id": ticketID})
	}

	if existing.Status != next.Status {
		if err := s.recordHistory(ctx, caller, next.ID, domain.ChangeTypeStatus,
			map[string]any{"status": existing.Status}, map[string]any{"status": next.Status}); err != nil {
			return nil, err
		}
		s.events.publish(ctx, events.Event{
			Type:      events.EventTicketStatusChanged,
			SubjectID: next.ID,
			Actor:     caller.actor(),
			Payload:   events.TicketStatusChangedPayload{OldStatus: existing.Status, NewStatus: next.Status},
		})
	}
	if old, cur := routedFields(existing), routedFields(next); !reflect.DeepEqual(old, cur) {
		if err := s.recordHistory(ctx, caller, next.ID, domain.ChangeTypeDetails, old, cur); err != nil {
			return nil, err
		}
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventTicketUpdated,
		SubjectID: next.ID,
		Actor:     caller.actor(),
	})
	return next, nil
}

// routedFields is the non-status part of a ticket that Reroute replaces.
func routedFields(t *domain.Ticket) map[string]any {
	fields := map[string]any{
		"department": string(t.AssigneeDepartmentName),
		"priority":   string(t.Priority),
		"details":    normalizeDetails(t.Details),
	}
	if t.DueDate != nil {
		fields["due_date"] = t.DueDate.UTC().Format(time.RFC3339)
	}
	return fields
}

// normalizeDetails makes stored and freshly routed details comparable; JSONB
// round trips turn integers into float64.
func normalizeDetails(d domain.TicketDetails) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		switch n := v.(type) {
		case int64:
			out[k] = float64(n)
		case int:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}

// ListTickets returns the tickets visible to the caller, narrowed by filter.
func (s *TicketService) ListTickets(ctx context.Context, caller Caller, filter TicketListFilter) ([]domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "fetch tickets", nil)
	if err != nil {
		return nil, err
	}
	repoFilter, empty, err := s.scopedFilter(ctx, decision, filter)
	if err != nil {
		return nil, err
	}
	if empty {
		return []domain.Ticket{}, nil
	}
	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetAnalytics counts visible tickets per status.
func (s *TicketService) GetAnalytics(ctx context.Context, caller Caller, filter TicketListFilter) (map[domain.TicketStatus]int64, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpReadAnalytics, "fetch ticket analytics", nil)
	if err != nil {
		return nil, err
	}
	repoFilter, empty, err := s.scopedFilter(ctx, decision, filter)
	if err != nil {
		return nil, err
	}
	if empty {
		return map[domain.TicketStatus]int64{}, nil
	}
	counts, err := s.tickets.CountByStatus(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// scopedFilter merges the decision scope with caller filters. empty is true
// when the requested department can never match the scope.
func (s *TicketService) scopedFilter(ctx context.Context, decision access.Decision, filter TicketListFilter) (repository.TicketFilter, bool, error) {
	scope := decision.TicketFilter()
	out := repository.TicketFilter{
		CreatedBy:    scope.CreatedBy,
		AssigneeID:   scope.AssigneeID,
		DepartmentID: scope.DepartmentID,
		BusinessID:   filter.BusinessID,
		Family:       filter.Family,
		Status:       filter.Status,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	if filter.BusinessID != nil {
		if err := requireID(*filter.BusinessID, "business_id"); err != nil {
			return out, false, err
		}
	}
	if filter.Family != nil {
		family, err := ParseTicketFamily(string(*filter.Family))
		if err != nil {
			return out, false, err
		}
		out.Family = &family
	}
	if filter.Department != nil && strings.TrimSpace(*filter.Department) != "" {
		name, err := access.ParseDepartment(*filter.Department)
		if err != nil {
			return out, false, err
		}
		dept, err := s.departments.GetByName(ctx, name)
		if err != nil {
			return out, false, apperrors.NotFoundOr(err, "department", map[string]any{"department": name})
		}
		if out.DepartmentID != nil && *out.DepartmentID != dept.ID {
			return out, true, nil
		}
		out.DepartmentID = &dept.ID
	}
	return out, false, nil
}

// ParseTicketFamily accepts "business" or "department".
func ParseTicketFamily(value string) (domain.TicketFamily, error) {
	switch family := domain.TicketFamily(strings.TrimSpace(value)); family {
	case domain.TicketFamilyBusiness, domain.TicketFamilyDepartment:
		return family, nil
	default:
		return "", apperrors.NewValidationError("unknown ticket family", map[string]any{"family": value})
	}
}

// GetTicket returns a visible ticket. Tickets outside the scope are reported as missing.
func (s *TicketService) GetTicket(ctx context.Context, caller Caller, ticketID string) (*domain.Ticket, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "view a ticket", map[string]any{"ticket_id": ticketID}); err != nil {
		return nil, err
	}
	return s.visibleTicket(ctx, caller, ticketID)
}

// ListChildren returns the visible child tickets of a visible parent.
func (s *TicketService) ListChildren(ctx context.Context, caller Caller, parentID string) ([]domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "fetch child tickets", map[string]any{"parent_id": parentID})
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleTicket(ctx, caller, parentID); err != nil {
		return nil, err
	}
	repoFilter, _, err := s.scopedFilter(ctx, decision, TicketListFilter{Limit: 200})
	if err != nil {
		return nil, err
	}
	repoFilter.ParentID = &parentID
	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListHistory returns the audit trail of a visible ticket.
func (s *TicketService) ListHistory(ctx context.Context, caller Caller, ticketID string) ([]domain.TicketHistory, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "view ticket history", map[string]any{"ticket_id": ticketID}); err != nil {
		return nil, err
	}
	if _, err := s.visibleTicket(ctx, caller, ticketID); err != nil {
		return nil, err
	}
	entries, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// AddMessage appends a chat message to a visible ticket.
func (s *TicketService) AddMessage(ctx context.Context, caller Caller, ticketID, body string) (*domain.TicketMessage, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "post a ticket message", map[string]any{"ticket_id": ticketID}); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message body is required", nil)
	}
	if len([]rune(body)) > maxMessageLength {
		return nil, apperrors.NewValidationError("message body too long", map[string]any{"max_length": maxMessageLength})
	}
	ticket, err := s.visibleTicket(ctx, caller, ticketID)
	if err != nil {
		return nil, err
	}
	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		AuthorID:   caller.Identity.ID,
		AuthorName: caller.Identity.UserName,
		Body:       body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventTicketMessageAdded,
		SubjectID: ticket.ID,
		Actor:     caller.actor(),
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			AuthorName:  msg.AuthorName,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	return msg, nil
}

// ListMessages returns the chat thread of a visible ticket, oldest first.
func (s *TicketService) ListMessages(ctx context.Context, caller Caller, ticketID string) ([]domain.TicketMessage, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadTickets, "read ticket messages", map[string]any{"ticket_id": ticketID}); err != nil {
		return nil, err
	}
	if _, err := s.visibleTicket(ctx, caller, ticketID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// visibleTicket loads a ticket and hides it unless it is in the caller's read scope.
func (s *TicketService) visibleTicket(ctx context.Context, caller Caller, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if caller.Identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	read := access.Decision{
		Identity:  *caller.Identity,
		Operation: access.OpReadTickets,
		Scope:     access.ScopeFor(caller.Identity.Role, access.OpReadTickets),
	}
	if !read.Permits(ticket) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return ticket, nil
}

func (s *TicketService) load(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if err := requireID(ticketID, "ticket_id"); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	return ticket, nil
}

func (s *TicketService) ensureBusiness(ctx context.Context, businessID string) error {
	if err := requireID(businessID, "business_id"); err != nil {
		return err
	}
	if _, err := s.businesses.GetByID(ctx, businessID); err != nil {
		return apperrors.NotFoundOr(err, "business", map[string]any{"business_id": businessID})
	}
	return nil
}

func (s *TicketService) recordHistory(ctx context.Context, caller Caller, ticketID string, change domain.TicketChangeType, oldValue, newValue map[string]any) error {
	if s.history == nil {
		return nil
	}
	entry := &domain.TicketHistory{
		TicketID:    ticketID,
		ChangedByID: caller.Identity.ID,
		ChangeType:  change,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	return apperrors.MapError(s.history.Create(ctx, entry))
}
