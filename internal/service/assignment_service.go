package service

import (
	"context"
	"strings"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

const maxAssignees = 50

// AssignmentService handles ticket assignment operations.
type AssignmentService struct {
	tickets     repository.TicketRepository
	users       repository.UserRepository
	historyRepo repository.TicketHistoryRepository
	guard       authorizer
	events      publisher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.TicketHistoryRepository
	Guard       authorizer
	Dispatcher  events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:     deps.TicketRepo,
		users:       deps.UserRepo,
		historyRepo: deps.HistoryRepo,
		guard:       deps.Guard,
		events:      publisher{dispatcher: deps.Dispatcher},
	}
}

// AssignEmployees replaces the assignee list of a ticket. Unless the caller is
// ADMIN every employee must belong to the ticket's department.
func (s *AssignmentService) AssignEmployees(ctx context.Context, caller Caller, ticketID string, employeeIDs []string) (*domain.Ticket, error) {
	decision, err := authorize(ctx, s.guard, caller, access.OpAssignTicket, "assign employees to a ticket", map[string]any{
		"ticket_id":    ticketID,
		"employee_ids": employeeIDs,
	})
	if err != nil {
		return nil, err
	}
	if err := requireID(ticketID, "ticket_id"); err != nil {
		return nil, err
	}
	ids, err := dedupeIDs(employeeIDs)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	if !decision.Permits(ticket) {
		return nil, apperrors.NewForbidden("ticket outside of your scope")
	}

	for _, id := range ids {
		employee, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.NotFoundOr(err, "user", map[string]any{"user_id": id})
		}
		if caller.Identity.Role != domain.RoleAdmin && employee.DepartmentID != ticket.AssigneeDepartmentID {
			return nil, apperrors.NewForbidden("employee outside ticket department")
		}
	}

	previous := append([]string{}, ticket.AssigneeEmployees...)
	if err := s.tickets.UpdateAssignees(ctx, ticket.ID, ids); err != nil {
		return nil, apperrors.NotFoundOr(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	ticket.AssigneeEmployees = ids

	if s.historyRepo != nil {
		if err := s.historyRepo.Create(ctx, &domain.TicketHistory{
			TicketID:    ticket.ID,
			ChangedByID: caller.Identity.ID,
			ChangeType:  domain.ChangeTypeAssignees,
			OldValue:    map[string]any{"assignee_employees": previous},
			NewValue:    map[string]any{"assignee_employees": ids},
		}); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventTicketAssigned,
		SubjectID: ticket.ID,
		Actor:     caller.actor(),
		Payload:   events.TicketAssignedPayload{Previous: previous, Current: ids},
	})
	return ticket, nil
}

func dedupeIDs(raw []string) ([]string, error) {
	if len(raw) > maxAssignees {
		return nil, apperrors.NewValidationError("too many employees", map[string]any{"max": maxAssignees})
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if err := requireID(id, "employee_id"); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
