package service

import (
	"context"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// ActivityService reads the activity log written by the activity worker.
type ActivityService struct {
	entries repository.ActivityRepository
	guard   authorizer
}

// NewActivityService creates the service.
func NewActivityService(entries repository.ActivityRepository, guard authorizer) *ActivityService {
	return &ActivityService{entries: entries, guard: guard}
}

// ListActivity pages through the log, newest first.
func (s *ActivityService) ListActivity(ctx context.Context, caller Caller, page repository.Page) ([]domain.ActivityEntry, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpReadActivity, "read the activity log", nil); err != nil {
		return nil, err
	}
	out, err := s.entries.List(ctx, page.Normalize())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}
