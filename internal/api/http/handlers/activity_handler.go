package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
)

// ActivityHandler serves the activity log.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: activityService}
}

// List GET /activity.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListActivity(c.UserContext(), caller, pageFrom(c))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, activityResponse(e))
	}
	return data(c, items)
}
