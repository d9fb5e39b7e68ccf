package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
)

// BusinessesHandler serves client account endpoints.
type BusinessesHandler struct {
	service *service.BusinessService
}

// NewBusinessesHandler constructs handler.
func NewBusinessesHandler(businessService *service.BusinessService) *BusinessesHandler {
	return &BusinessesHandler{service: businessService}
}

// CreateBusiness POST /businesses.
func (h *BusinessesHandler) CreateBusiness(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateBusinessRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	business, err := h.service.CreateBusiness(c.UserContext(), caller, service.CreateBusinessInput{
		BusinessName:   req.BusinessName,
		BusinessEmail:  req.BusinessEmail,
		BusinessNumber: req.BusinessNumber,
		ClientName:     req.ClientName,
		WebsiteURL:     req.WebsiteURL,
		Status:         req.Status,
	})
	if err != nil {
		return err
	}
	return created(c, businessResponse(business))
}

// ListBusinesses GET /businesses. With ?names=true only id/name pairs are returned.
func (h *BusinessesHandler) ListBusinesses(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if c.QueryBool("names", false) {
		names, err := h.service.ListBusinessNames(c.UserContext(), caller)
		if err != nil {
			return err
		}
		items := make([]dto.BusinessNameResponse, 0, len(names))
		for _, n := range names {
			items = append(items, dto.BusinessNameResponse{ID: n.ID, BusinessName: n.BusinessName})
		}
		return data(c, items)
	}
	businesses, err := h.service.ListBusinesses(c.UserContext(), caller, pageFrom(c))
	if err != nil {
		return err
	}
	items := make([]dto.BusinessResponse, 0, len(businesses))
	for i := range businesses {
		items = append(items, businessResponse(&businesses[i]))
	}
	return data(c, items)
}

// GetBusiness GET /businesses/:id.
func (h *BusinessesHandler) GetBusiness(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	business, err := h.service.GetBusiness(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, businessResponse(business))
}

// UpdateStatus POST /businesses/:id/status.
func (h *BusinessesHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBusinessStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	business, err := h.service.UpdateBusinessStatus(c.UserContext(), caller, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return data(c, businessResponse(business))
}
