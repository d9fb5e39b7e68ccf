package domain

import "time"

// TicketChangeType captures what changed in a history entry.
type TicketChangeType string

const (
	ChangeTypeCreated   TicketChangeType = "CREATED"
	ChangeTypeStatus    TicketChangeType = "STATUS_CHANGE"
	ChangeTypeAssignees TicketChangeType = "ASSIGNEES_CHANGE"
	ChangeTypeDetails   TicketChangeType = "DETAILS_CHANGE"
)

// TicketHistory is an immutable audit trail entry.
type TicketHistory struct {
	ID          string
	TicketID    string
	ChangedByID string
	ChangeType  TicketChangeType
	OldValue    map[string]any
	NewValue    map[string]any
	CreatedAt   time.Time
}
