package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
)

// InventoryHandler serves domain and hosting forms under /inventory/:kind.
type InventoryHandler struct {
	service *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: inventoryService}
}

// Create POST /inventory/:kind.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.InventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	record, err := h.service.CreateRecord(c.UserContext(), caller, c.Params("kind"), inventoryInput(req))
	if err != nil {
		return err
	}
	return created(c, inventoryResponse(record))
}

// List GET /inventory/:kind.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListRecords(c.UserContext(), caller, c.Params("kind"), pageFrom(c))
	if err != nil {
		return err
	}
	items := make([]dto.InventoryResponse, 0, len(records))
	for i := range records {
		items = append(items, inventoryResponse(&records[i]))
	}
	return data(c, items)
}

// Get GET /inventory/:kind/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	record, err := h.service.GetRecord(c.UserContext(), caller, c.Params("kind"), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, inventoryResponse(record))
}

// Update PUT /inventory/:kind/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.InventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	record, err := h.service.UpdateRecord(c.UserContext(), caller, c.Params("kind"), c.Params("id"), inventoryInput(req))
	if err != nil {
		return err
	}
	return data(c, inventoryResponse(record))
}

// Delete DELETE /inventory/:kind/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteRecord(c.UserContext(), caller, c.Params("kind"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func inventoryInput(req dto.InventoryRequest) service.InventoryInput {
	return service.InventoryInput{
		BusinessID:     req.BusinessID,
		Name:           req.Name,
		Holder:         req.Holder,
		Platform:       req.Platform,
		ApprovedBy:     req.ApprovedBy,
		Price:          req.Price,
		LiveStatus:     req.LiveStatus,
		ListStatus:     req.ListStatus,
		Notes:          req.Notes,
		CreationDate:   req.CreationDate,
		ExpirationDate: req.ExpirationDate,
	}
}
