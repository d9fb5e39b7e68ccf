package handlers

import (
	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
)

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		UserName:       u.UserName,
		Role:           string(u.Role),
		DepartmentID:   u.DepartmentID,
		DepartmentName: string(u.DepartmentName),
		SubRole:        string(u.SubRole),
		CreatedAt:      u.CreatedAt,
	}
}

func ticketResponse(t *domain.Ticket) dto.TicketResponse {
	assignees := t.AssigneeEmployees
	if assignees == nil {
		assignees = []string{}
	}
	details := map[string]any(t.Details)
	if details == nil {
		details = map[string]any{}
	}
	return dto.TicketResponse{
		ID:                     t.ID,
		Family:                 string(t.Family),
		CreatedBy:              t.CreatedBy,
		BusinessID:             t.BusinessID,
		ParentID:               t.ParentID,
		AssigneeDepartmentID:   t.AssigneeDepartmentID,
		AssigneeDepartmentName: string(t.AssigneeDepartmentName),
		AssigneeEmployees:      assignees,
		Status:                 string(t.Status),
		Priority:               string(t.Priority),
		DueDate:                t.DueDate,
		Details:                details,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

func ticketList(tickets []domain.Ticket) []dto.TicketResponse {
	out := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, ticketResponse(&tickets[i]))
	}
	return out
}

func historyResponse(h domain.TicketHistory) dto.TicketHistoryResponse {
	return dto.TicketHistoryResponse{
		ID:          h.ID,
		ChangedByID: h.ChangedByID,
		ChangeType:  string(h.ChangeType),
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		CreatedAt:   h.CreatedAt,
	}
}

func messageResponse(m *domain.TicketMessage) dto.TicketMessageResponse {
	return dto.TicketMessageResponse{
		ID:         m.ID,
		TicketID:   m.TicketID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func businessResponse(b *domain.Business) dto.BusinessResponse {
	return dto.BusinessResponse{
		ID:             b.ID,
		BusinessName:   b.BusinessName,
		BusinessEmail:  b.BusinessEmail,
		BusinessNumber: b.BusinessNumber,
		ClientName:     b.ClientName,
		WebsiteURL:     b.WebsiteURL,
		Status:         b.Status,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func inventoryResponse(r *domain.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:             r.ID,
		Kind:           string(r.Kind),
		BusinessID:     r.BusinessID,
		Name:           r.Name,
		Holder:         r.Holder,
		Platform:       r.Platform,
		ApprovedBy:     r.ApprovedBy,
		Price:          r.Price,
		LiveStatus:     r.LiveStatus,
		ListStatus:     r.ListStatus,
		Notes:          r.Notes,
		CreationDate:   r.CreationDate,
		ExpirationDate: r.ExpirationDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func paymentResponse(p *domain.PaymentHistory) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		BusinessID:      p.BusinessID,
		BusinessName:    p.BusinessName,
		TicketID:        p.TicketID,
		WorkStatus:      p.TicketWorkType,
		FronterID:       p.FronterID,
		CloserID:        p.CloserID,
		CloserName:      p.CloserName,
		PaymentType:     string(p.PaymentType),
		ReceivedPayment: p.ReceivedPayment,
		CreatedAt:       p.CreatedAt,
	}
}

func activityResponse(e domain.ActivityEntry) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		UserName:       e.UserName,
		DepartmentName: string(e.DepartmentName),
		Origin:         e.Origin,
		Action:         e.Action,
		Message:        e.Message,
		Metadata:       e.Metadata,
		CreatedAt:      e.CreatedAt,
	}
}
