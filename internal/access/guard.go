package access

import (
	"context"
	"fmt"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// Operation is an action a caller may attempt.
type Operation int

const (
	OpReadTickets Operation = iota
	OpReadAllTickets
	OpCreateTicket
	OpUpdateTicket
	OpAssignTicket
	OpUpdateBusinessStatus
	OpCreateBusiness
	OpReadBusinesses
	OpCreateUser
	OpManageUsers
	OpReadAnalytics
	OpManageInventory
	OpReadInventory
	OpRecordPayment
	OpReadPayments
	OpReadSalesStats
	OpReadActivity

	numOperations
)

var operationNames = [numOperations]string{
	OpReadTickets:          "read-tickets",
	OpReadAllTickets:       "read-all-tickets",
	OpCreateTicket:         "create-ticket",
	OpUpdateTicket:         "update-ticket",
	OpAssignTicket:         "assign-ticket",
	OpUpdateBusinessStatus: "update-business-status",
	OpCreateBusiness:       "create-business",
	OpReadBusinesses:       "read-businesses",
	OpCreateUser:           "create-user",
	OpManageUsers:          "manage-users",
	OpReadAnalytics:        "read-analytics",
	OpManageInventory:      "manage-inventory",
	OpReadInventory:        "read-inventory",
	OpRecordPayment:        "record-payment",
	OpReadPayments:         "read-payments",
	OpReadSalesStats:       "read-sales-stats",
	OpReadActivity:         "read-activity",
}

func (o Operation) String() string {
	if o < 0 || o >= numOperations {
		return fmt.Sprintf("operation(%d)", int(o))
	}
	return operationNames[o]
}

// Scope is the data partition an allowed operation applies to.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAssigned
	ScopeDepartment
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "own"
	case ScopeAssigned:
		return "assigned"
	case ScopeDepartment:
		return "department"
	case ScopeAll:
		return "all"
	default:
		return "none"
	}
}

// policy maps (role, operation) to a scope. Unlisted pairs are ScopeNone.
var policy = map[domain.Role][numOperations]Scope{
	domain.RoleAdmin: allScopes(),
	domain.RoleTeamLead: {
		OpReadTickets:    ScopeDepartment,
		OpCreateTicket:   ScopeAll,
		OpUpdateTicket:   ScopeDepartment,
		OpAssignTicket:   ScopeDepartment,
		OpReadAnalytics:  ScopeDepartment,
		OpReadBusinesses: ScopeAll,
		OpReadInventory:  ScopeAll,
	},
	domain.RoleEmployee: {
		OpReadTickets:    ScopeAssigned,
		OpUpdateTicket:   ScopeAssigned,
		OpReadAnalytics:  ScopeAssigned,
		OpReadBusinesses: ScopeAll,
	},
	domain.RoleSaleEmployee: {
		OpReadTickets:          ScopeOwn,
		OpCreateTicket:         ScopeOwn,
		OpUpdateTicket:         ScopeOwn,
		OpReadAnalytics:        ScopeOwn,
		OpUpdateBusinessStatus: ScopeAll,
		OpCreateBusiness:       ScopeAll,
		OpReadBusinesses:       ScopeAll,
		OpRecordPayment:        ScopeAll,
	},
	domain.RoleSaleManager: {
		OpReadTickets:          ScopeAll,
		OpReadAllTickets:       ScopeAll,
		OpCreateTicket:         ScopeAll,
		OpUpdateTicket:         ScopeAll,
		OpReadAnalytics:        ScopeAll,
		OpUpdateBusinessStatus: ScopeAll,
		OpCreateBusiness:       ScopeAll,
		OpReadBusinesses:       ScopeAll,
		OpManageInventory:      ScopeAll,
		OpReadInventory:        ScopeAll,
		OpRecordPayment:        ScopeAll,
		OpReadPayments:         ScopeAll,
		OpReadSalesStats:       ScopeAll,
	},
}

func allScopes() [numOperations]Scope {
	var out [numOperations]Scope
	for i := range out {
		out[i] = ScopeAll
	}
	return out
}

// ScopeFor looks up the scope granted to role for op.
func ScopeFor(role domain.Role, op Operation) Scope {
	if op < 0 || op >= numOperations {
		return ScopeNone
	}
	scopes, ok := policy[role]
	if !ok {
		return ScopeNone
	}
	return scopes[op]
}

// IsAllowed reports whether role may perform op on at least some data.
func IsAllowed(role domain.Role, op Operation) bool {
	return ScopeFor(role, op) != ScopeNone
}

// Identity is the authenticated caller as seen by the guard.
type Identity struct {
	ID             string
	UserName       string
	Role           domain.Role
	DepartmentID   string
	DepartmentName domain.DepartmentName
}

// IdentityFromUser projects a user onto an Identity.
func IdentityFromUser(user *domain.User) Identity {
	return Identity{
		ID:             user.ID,
		UserName:       user.UserName,
		Role:           user.Role,
		DepartmentID:   user.DepartmentID,
		DepartmentName: user.DepartmentName,
	}
}

// ActivityRecorder receives authorized attempts. Record must not block.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}

// Attempt describes the request being authorized.
type Attempt struct {
	Operation Operation
	Origin    string
	Action    string
	Metadata  map[string]any
}

// Decision is the outcome of a successful authorization.
type Decision struct {
	Identity  Identity
	Operation Operation
	Scope     Scope
}

// Guard authorizes operations and reports allowed attempts to the activity log.
type Guard struct {
	recorder ActivityRecorder
}

// NewGuard builds a guard. recorder may be nil.
func NewGuard(recorder ActivityRecorder) *Guard {
	return &Guard{recorder: recorder}
}

// Authorize returns the decision for identity attempting op, or a Forbidden error.
func (g *Guard) Authorize(_ context.Context, identity *Identity, attempt Attempt) (Decision, error) {
	if identity == nil || identity.ID == "" {
		return Decision{}, apperrors.NewUnauthorized("authentication required")
	}
	scope := ScopeFor(identity.Role, attempt.Operation)
	if scope == ScopeNone {
		return Decision{}, apperrors.NewForbidden(fmt.Sprintf("role %s may not %s", identity.Role, attempt.Operation))
	}
	g.record(identity, attempt)
	return Decision{Identity: *identity, Operation: attempt.Operation, Scope: scope}, nil
}

func (g *Guard) record(identity *Identity, attempt Attempt) {
	if g == nil || g.recorder == nil {
		return
	}
	action := attempt.Action
	if action == "" {
		action = attempt.Operation.String()
	}
	g.recorder.Record(domain.ActivityEntry{
		UserID:         identity.ID,
		UserName:       identity.UserName,
		DepartmentName: identity.DepartmentName,
		Origin:         attempt.Origin,
		Action:         action,
		Message: fmt.Sprintf("%s : %s from department %s is attempting to %s",
			attempt.Origin, identity.UserName, identity.DepartmentName, action),
		Metadata: attempt.Metadata,
	})
}

// TicketScope is the repository-level ticket partition of a decision.
type TicketScope struct {
	CreatedBy    *string
	AssigneeID   *string
	DepartmentID *string
}

// TicketFilter translates the decision scope into ticket filter fields.
func (d Decision) TicketFilter() TicketScope {
	id := d.Identity.ID
	dept := d.Identity.DepartmentID
	switch d.Scope {
	case ScopeOwn:
		return TicketScope{CreatedBy: &id}
	case ScopeAssigned:
		return TicketScope{AssigneeID: &id}
	case ScopeDepartment:
		return TicketScope{DepartmentID: &dept}
	default:
		return TicketScope{}
	}
}

// Permits reports whether ticket lies inside the decision scope.
func (d Decision) Permits(ticket *domain.Ticket) bool {
	if ticket == nil {
		return false
	}
	switch d.Scope {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return ticket.AssigneeDepartmentID == d.Identity.DepartmentID
	case ScopeAssigned:
		return ticket.HasAssignee(d.Identity.ID)
	case ScopeOwn:
		return ticket.CreatedBy == d.Identity.ID
	default:
		return false
	}
}
