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

const defaultBusinessStatus = "Active"

// BusinessService manages client accounts.
type BusinessService struct {
	businesses repository.BusinessRepository
	guard      authorizer
	events     publisher
}

// NewBusinessService creates the service.
func NewBusinessService(businesses repository.BusinessRepository, guard authorizer, dispatcher events.Dispatcher) *BusinessService {
	return &BusinessService{businesses: businesses, guard: guard, events: publisher{dispatcher: dispatcher}}
}

// CreateBusinessInput carries the fields of a new business.
type CreateBusinessInput struct {
	BusinessName   string
	BusinessEmail  string
	BusinessNumber string
	ClientName     string
	WebsiteURL     string
	Status         string
}

// CreateBusiness stores a new business owned by the caller.
func (s *BusinessService) CreateBusiness(ctx context.Context, caller Caller, input CreateBusinessInput) (*domain.Business, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpCreateBusiness, "create a business", map[string]any{"business_name": input.BusinessName}); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return nil, apperrors.NewValidationError("business_name is required", nil)
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = defaultBusinessStatus
	}
	business := &domain.Business{
		BusinessName:   name,
		BusinessEmail:  strings.TrimSpace(input.BusinessEmail),
		BusinessNumber: strings.TrimSpace(input.BusinessNumber),
		ClientName:     strings.TrimSpace(input.ClientName),
		WebsiteURL:     strings.TrimSpace(input.WebsiteURL),
		Status:         status,
		CreatedBy:      caller.Identity.ID,
	}
	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, apperrors.MapError(err)
	}
	return business, nil
}

// GetBusiness returns one business.
func (s *BusinessService) GetBusiness(ctx context.Context, caller Caller, businessID string) (*domain.Business, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadBusinesses, "view a business", map[string]any{"business_id": businessID}); err != nil {
		return nil, err
	}
	if err := requireID(businessID, "business_id"); err != nil {
		return nil, err
	}
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "business", map[string]any{"business_id": businessID})
	}
	return business, nil
}

// ListBusinesses pages through businesses, newest first.
func (s *BusinessService) ListBusinesses(ctx context.Context, caller Caller, page repository.Page) ([]domain.Business, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadBusinesses, "fetch businesses", nil); err != nil {
		return nil, err
	}
	out, err := s.businesses.List(ctx, page.Normalize())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

// ListBusinessNames returns the id/name pairs used by pickers.
func (s *BusinessService) ListBusinessNames(ctx context.Context, caller Caller) ([]domain.BusinessName, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadBusinesses, "fetch business names", nil); err != nil {
		return nil, err
	}
	out, err := s.businesses.ListNames(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

// UpdateBusinessStatus sets the status label of a business. Authorization is
// checked before the input.
func (s *BusinessService) UpdateBusinessStatus(ctx context.Context, caller Caller, businessID, status string) (*domain.Business, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpUpdateBusinessStatus, "update a business status", map[string]any{
		"business_id": businessID,
		"status":      status,
	}); err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}
	if err := requireID(businessID, "business_id"); err != nil {
		return nil, err
	}
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "business", map[string]any{"business_id": businessID})
	}
	old := business.Status
	if err := s.businesses.UpdateStatus(ctx, businessID, status); err != nil {
		return nil, apperrors.NotFoundOr(err, "business", map[string]any{"business_id": businessID})
	}
	business.Status = status
	if old != status {
		s.events.publish(ctx, events.Event{
			Type:      events.EventBusinessStatusChanged,
			SubjectID: business.ID,
			Actor:     caller.actor(),
			Payload:   events.BusinessStatusChangedPayload{OldStatus: old, NewStatus: status},
		})
	}
	return business, nil
}
