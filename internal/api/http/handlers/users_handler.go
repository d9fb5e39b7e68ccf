package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
)

// UsersHandler serves account administration.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// CreateUser POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), caller, service.CreateUserInput{
		UserName:   req.UserName,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.DepartmentName,
		SubRole:    req.SubRole,
	})
	if err != nil {
		return err
	}
	return created(c, userResponse(user))
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.UserContext(), caller, pageFrom(c))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return data(c, items)
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, userResponse(user))
}

// UpdateUser PUT /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateUser(c.UserContext(), caller, c.Params("id"), service.UpdateUserInput{
		Role:       req.Role,
		Department: req.DepartmentName,
		SubRole:    req.SubRole,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return data(c, userResponse(user))
}

// ListDepartments GET /departments.
func (h *UsersHandler) ListDepartments(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	depts, err := h.service.ListDepartments(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		items = append(items, dto.DepartmentResponse{ID: d.ID, Name: string(d.Name)})
	}
	return data(c, items)
}
