package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// InventoryService manages domain and hosting records.
type InventoryService struct {
	records    repository.InventoryRepository
	businesses repository.BusinessRepository
	guard      authorizer
}

// NewInventoryService creates the service.
func NewInventoryService(records repository.InventoryRepository, businesses repository.BusinessRepository, guard authorizer) *InventoryService {
	return &InventoryService{records: records, businesses: businesses, guard: guard}
}

// InventoryInput carries the editable fields of a record.
type InventoryInput struct {
	BusinessID     *string
	Name           string
	Holder         string
	Platform       string
	ApprovedBy     string
	Price          decimal.Decimal
	LiveStatus     string
	ListStatus     string
	Notes          string
	CreationDate   *time.Time
	ExpirationDate *time.Time
}

// ParseInventoryKind accepts "domain" or "hosting".
func ParseInventoryKind(value string) (domain.InventoryKind, error) {
	switch kind := domain.InventoryKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case domain.InventoryKindDomain, domain.InventoryKindHosting:
		return kind, nil
	default:
		return "", apperrors.NewValidationError("unknown inventory kind", map[string]any{"kind": value})
	}
}

// CreateRecord stores a new record of kind.
func (s *InventoryService) CreateRecord(ctx context.Context, caller Caller, kind string, input InventoryInput) (*domain.InventoryRecord, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageInventory, "create an inventory record", map[string]any{"kind": kind}); err != nil {
		return nil, err
	}
	k, err := ParseInventoryKind(kind)
	if err != nil {
		return nil, err
	}
	record, err := s.build(ctx, k, input)
	if err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// UpdateRecord replaces the editable fields of a record.
func (s *InventoryService) UpdateRecord(ctx context.Context, caller Caller, kind, id string, input InventoryInput) (*domain.InventoryRecord, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageInventory, "update an inventory record", map[string]any{"kind": kind, "id": id}); err != nil {
		return nil, err
	}
	k, err := ParseInventoryKind(kind)
	if err != nil {
		return nil, err
	}
	if err := requireID(id, "id"); err != nil {
		return nil, err
	}
	record, err := s.build(ctx, k, input)
	if err != nil {
		return nil, err
	}
	record.ID = id
	if err := s.records.Update(ctx, record); err != nil {
		return nil, apperrors.NotFoundOr(err, string(k), map[string]any{"id": id})
	}
	return record, nil
}

// DeleteRecord removes a record.
func (s *InventoryService) DeleteRecord(ctx context.Context, caller Caller, kind, id string) error {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageInventory, "delete an inventory record", map[string]any{"kind": kind, "id": id}); err != nil {
		return err
	}
	k, err := ParseInventoryKind(kind)
	if err != nil {
		return err
	}
	if err := requireID(id, "id"); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, k, id); err != nil {
		return apperrors.NotFoundOr(err, string(k), map[string]any{"id": id})
	}
	return nil
}

// GetRecord returns one record.
func (s *InventoryService) GetRecord(ctx context.Context, caller Caller, kind, id string) (*domain.InventoryRecord, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadInventory, "view an inventory record", map[string]any{"kind": kind, "id": id}); err != nil {
		return nil, err
	}
	k, err := ParseInventoryKind(kind)
	if err != nil {
		return nil, err
	}
	if err := requireID(id, "id"); err != nil {
		return nil, err
	}
	record, err := s.records.GetByID(ctx, k, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, string(k), map[string]any{"id": id})
	}
	return record, nil
}

// ListRecords pages through records of kind.
func (s *InventoryService) ListRecords(ctx context.Context, caller Caller, kind string, page repository.Page) ([]domain.InventoryRecord, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadInventory, "fetch inventory records", map[string]any{"kind": kind}); err != nil {
		return nil, err
	}
	k, err := ParseInventoryKind(kind)
	if err != nil {
		return nil, err
	}
	out, err := s.records.List(ctx, k, page.Normalize())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

func (s *InventoryService) build(ctx context.Context, kind domain.InventoryKind, input InventoryInput) (*domain.InventoryRecord, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": input.Price.String()})
	}
	if input.CreationDate != nil && input.ExpirationDate != nil && input.ExpirationDate.Before(*input.CreationDate) {
		return nil, apperrors.NewValidationError("expiration_date precedes creation_date", nil)
	}
	if input.BusinessID != nil {
		if err := requireID(*input.BusinessID, "business_id"); err != nil {
			return nil, err
		}
		if _, err := s.businesses.GetByID(ctx, *input.BusinessID); err != nil {
			return nil, apperrors.NotFoundOr(err, "business", map[string]any{"business_id": *input.BusinessID})
		}
	}
	record := &domain.InventoryRecord{
		Kind:           kind,
		BusinessID:     input.BusinessID,
		Name:           name,
		Holder:         strings.TrimSpace(input.Holder),
		Platform:       strings.TrimSpace(input.Platform),
		ApprovedBy:     strings.TrimSpace(input.ApprovedBy),
		Price:          input.Price,
		LiveStatus:     strings.TrimSpace(input.LiveStatus),
		ListStatus:     strings.TrimSpace(input.ListStatus),
		Notes:          strings.TrimSpace(input.Notes),
		CreationDate:   input.CreationDate,
		ExpirationDate: input.ExpirationDate,
	}
	if record.LiveStatus == "" {
		record.LiveStatus = domain.LiveStatusLive
	}
	if record.ListStatus == "" {
		record.ListStatus = domain.ListStatusListed
	}
	return record, nil
}
