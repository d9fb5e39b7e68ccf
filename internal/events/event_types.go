package events

import (
	"time"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketUpdated         EventType = "ticket_updated"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketMessageAdded    EventType = "ticket_message_added"
	EventBusinessStatusChanged EventType = "business_status_changed"
	EventPaymentRecorded       EventType = "payment_recorded"
)

// AllEventTypes lists every event type services emit.
func AllEventTypes() []EventType {
	return []EventType{
		EventTicketCreated,
		EventTicketUpdated,
		EventTicketStatusChanged,
		EventTicketAssigned,
		EventTicketMessageAdded,
		EventBusinessStatusChanged,
		EventPaymentRecorded,
	}
}

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Family         domain.TicketFamily   `json:"family"`
	DepartmentName domain.DepartmentName `json:"department_name"`
	BusinessID     *string               `json:"business_id,omitempty"`
	ParentID       *string               `json:"parent_id,omitempty"`
	Priority       domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Previous []string `json:"previous"`
	Current  []string `json:"current"`
}

// TicketMessageAddedPayload payload.
type TicketMessageAddedPayload struct {
	MessageID   string `json:"message_id"`
	AuthorName  string `json:"author_name"`
	BodyPreview string `json:"body_preview"`
}

// BusinessStatusChangedPayload payload.
type BusinessStatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	BusinessID  string             `json:"business_id"`
	PaymentType domain.PaymentType `json:"payment_type"`
	Amount      string             `json:"amount"`
}
