package domain

import "time"

// TicketFamily separates sales-created business tickets from department follow-ups.
type TicketFamily string

const (
	TicketFamilyBusiness   TicketFamily = "business"
	TicketFamilyDepartment TicketFamily = "department"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

// TicketStatus is free-form per department workflow. These are the common labels.
type TicketStatus string

const (
	TicketStatusNotStarted TicketStatus = "Not Started"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusCompleted  TicketStatus = "Completed"
)

// TicketDetails is the department specific payload.
type TicketDetails map[string]any

// Ticket is a unit of work routed to a department.
type Ticket struct {
	ID                     string
	Family                 TicketFamily
	CreatedBy              string
	BusinessID             *string
	ParentID               *string
	AssigneeDepartmentID   string
	AssigneeDepartmentName DepartmentName
	AssigneeEmployees      []string
	Status                 TicketStatus
	Priority               TicketPriority
	DueDate                *time.Time
	Details                TicketDetails
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasAssignee reports whether userID is among the assigned employees.
func (t *Ticket) HasAssignee(userID string) bool {
	for _, id := range t.AssigneeEmployees {
		if id == userID {
			return true
		}
	}
	return false
}
