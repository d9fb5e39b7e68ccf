// Package routing turns a ticket request into a normalized record for the
// department it is addressed to.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// DepartmentDirectory resolves department rows by name.
type DepartmentDirectory interface {
	GetByName(ctx context.Context, name domain.DepartmentName) (*domain.Department, error)
}

type fieldKind int

const (
	textField fieldKind = iota
	metricField
)

type field struct {
	kind     fieldKind
	required bool
}

var schemas = map[domain.DepartmentName]map[string]field{
	domain.DepartmentWriter: {
		"task_details": {kind: textField, required: true},
		"notes":        {kind: textField},
	},
	domain.DepartmentWordPress: {
		"work_status":      {kind: textField, required: true},
		"service_name":     {kind: textField},
		"service_area":     {kind: textField},
		"referral_website": {kind: textField},
		"notes":            {kind: textField},
	},
	domain.DepartmentSMM: {
		"service_name":      {kind: textField, required: true},
		"platform_name":     {kind: textField, required: true},
		"work_status":       {kind: textField},
		"facebook_url":      {kind: textField},
		"login_credentials": {kind: textField},
		"notes":             {kind: textField},
		"no_of_likes":       {kind: metricField},
		"no_of_gmb_reviews": {kind: metricField},
		"no_of_posts":       {kind: metricField},
	},
}

// RequiredFields returns the sorted required detail keys of dept.
func RequiredFields(dept domain.DepartmentName) []string {
	var out []string
	for key, f := range schemas[dept] {
		if f.required {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Request is the caller supplied part of a ticket.
type Request struct {
	Department string
	CreatedBy  string
	BusinessID *string
	Parent     *domain.Ticket
	Status     string
	Priority   string
	DueDate    *time.Time
	Details    map[string]any
}

// Router resolves departments and validates detail payloads.
type Router struct {
	departments DepartmentDirectory
	now         func() time.Time
}

// NewRouter builds a router backed by dir.
func NewRouter(dir DepartmentDirectory) *Router {
	return &Router{departments: dir, now: time.Now}
}

// Route produces a new ticket for req. The ticket is not persisted and has no ID.
func (r *Router) Route(ctx context.Context, req Request) (*domain.Ticket, error) {
	dept, err := r.resolve(ctx, req.Department)
	if err != nil {
		return nil, err
	}
	details, err := normalize(dept.Name, req.Details)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	t := &domain.Ticket{
		Family:                 domain.TicketFamilyBusiness,
		CreatedBy:              req.CreatedBy,
		BusinessID:             req.BusinessID,
		AssigneeDepartmentID:   dept.ID,
		AssigneeDepartmentName: dept.Name,
		AssigneeEmployees:      []string{},
		Status:                 statusOrDefault(req.Status),
		Priority:               priority,
		DueDate:                req.DueDate,
		Details:                details,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if req.Parent != nil {
		parentID := req.Parent.ID
		t.Family = domain.TicketFamilyDepartment
		t.ParentID = &parentID
		t.BusinessID = req.Parent.BusinessID
	}
	return t, nil
}

// Reroute builds the replacement of existing from req. Identity fields of
// existing are kept. Routed fields omitted from req keep their existing value;
// details given in req replace the existing details as a whole.
func (r *Router) Reroute(ctx context.Context, existing *domain.Ticket, req Request) (*domain.Ticket, error) {
	if existing == nil {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	if strings.TrimSpace(req.Department) == "" {
		req.Department = string(existing.AssigneeDepartmentName)
	}
	if strings.TrimSpace(req.Status) == "" {
		req.Status = string(existing.Status)
	}
	if strings.TrimSpace(req.Priority) == "" {
		req.Priority = string(existing.Priority)
	}
	if req.DueDate == nil {
		req.DueDate = existing.DueDate
	}
	if req.Details == nil {
		req.Details = existing.Details
	}
	next, err := r.Route(ctx, Request{
		Department: req.Department,
		Status:     req.Status,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		Details:    req.Details,
	})
	if err != nil {
		return nil, err
	}
	next.ID = existing.ID
	next.CreatedBy = existing.CreatedBy
	next.Family = existing.Family
	next.ParentID = existing.ParentID
	next.BusinessID = existing.BusinessID
	next.AssigneeEmployees = append([]string{}, existing.AssigneeEmployees...)
	next.CreatedAt = existing.CreatedAt
	return next, nil
}

func (r *Router) resolve(ctx context.Context, name string) (*domain.Department, error) {
	deptName, err := access.ParseDepartment(name)
	if err != nil {
		return nil, err
	}
	if !access.IsRoutable(deptName) {
		return nil, apperrors.NewValidationError("department does not accept tickets", map[string]any{"department": deptName})
	}
	dept, err := r.departments.GetByName(ctx, deptName)
	if err != nil {
		return nil, err
	}
	return dept, nil
}

func normalize(dept domain.DepartmentName, in map[string]any) (domain.TicketDetails, error) {
	schema := schemas[dept]
	for _, key := range RequiredFields(dept) {
		raw, ok := in[key]
		if !ok || raw == nil {
			return nil, missing(dept, key)
		}
		if text, isText := raw.(string); isText && strings.TrimSpace(text) == "" {
			return nil, missing(dept, key)
		}
	}
	out := domain.TicketDetails{}
	for key, f := range schema {
		raw, ok := in[key]
		if !ok || raw == nil {
			if f.required {
				return nil, missing(dept, key)
			}
			continue
		}
		switch f.kind {
		case textField:
			s, ok := raw.(string)
			if !ok {
				return nil, apperrors.NewValidationError(key+" must be a string", map[string]any{"field": key})
			}
			if f.required && strings.TrimSpace(s) == "" {
				return nil, missing(dept, key)
			}
			out[key] = s
		case metricField:
			n, err := metric(raw)
			if err != nil {
				return nil, apperrors.NewValidationError(key+" must be a non-negative integer", map[string]any{"field": key})
			}
			out[key] = n
		}
	}
	return out, nil
}

func missing(dept domain.DepartmentName, key string) error {
	return apperrors.NewValidationError(fmt.Sprintf("%s is required for %s tickets", key, dept),
		map[string]any{"field": key, "department": dept})
}

func metric(raw any) (int64, error) {
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("not an integer")
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, err
		}
		n = i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, err
		}
		n = i
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative")
	}
	return n, nil
}

func parsePriority(value string) (domain.TicketPriority, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.TicketPriorityMedium, nil
	}
	switch p := domain.TicketPriority(value); p {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh, domain.TicketPriorityUrgent:
		return p, nil
	}
	return "", apperrors.NewValidationError("unknown priority", map[string]any{"priority": value})
}

func statusOrDefault(value string) domain.TicketStatus {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.TicketStatusNotStarted
	}
	return domain.TicketStatus(value)
}
