package dto

import "time"

// CreateTicketRequest payload. Details holds the department specific fields.
type CreateTicketRequest struct {
	DepartmentName string         `json:"department_name" validate:"required"`
	BusinessID     *string        `json:"business_id" validate:"omitempty,uuid"`
	Priority       string         `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status         string         `json:"status" validate:"max=64"`
	DueDate        *time.Time     `json:"due_date"`
	Details        map[string]any `json:"details"`
}

// UpdateTicketRequest payload. Empty department_name or status keep the current value.
type UpdateTicketRequest struct {
	DepartmentName string         `json:"department_name"`
	Priority       string         `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status         string         `json:"status" validate:"max=64"`
	DueDate        *time.Time     `json:"due_date"`
	Details        map[string]any `json:"details"`
}

// AssignEmployeesRequest replaces the assignee list.
type AssignEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"max=50,dive,uuid"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

// TicketResponse is the API view of a ticket.
type TicketResponse struct {
	ID                     string         `json:"id"`
	Family                 string         `json:"family"`
	CreatedBy              string         `json:"created_by"`
	BusinessID             *string        `json:"business_id"`
	ParentID               *string        `json:"parent_id"`
	AssigneeDepartmentID   string         `json:"assignee_department_id"`
	AssigneeDepartmentName string         `json:"assignee_department_name"`
	AssigneeEmployees      []string       `json:"assignee_employees"`
	Status                 string         `json:"status"`
	Priority               string         `json:"priority"`
	DueDate                *time.Time     `json:"due_date"`
	Details                map[string]any `json:"details"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// TicketHistoryResponse is one audit trail entry.
type TicketHistoryResponse struct {
	ID          string         `json:"id"`
	ChangedByID string         `json:"changed_by_id"`
	ChangeType  string         `json:"change_type"`
	OldValue    map[string]any `json:"old_value"`
	NewValue    map[string]any `json:"new_value"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TicketMessageResponse is one chat message.
type TicketMessageResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
