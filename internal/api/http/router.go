package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/api/http/handlers"
	"github.com/ShabiGardezi/crm-hunfa/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Businesses     *handlers.BusinessesHandler
	Inventory      *handlers.InventoryHandler
	Payments       *handlers.PaymentsHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)
	protected.Get("/departments", cfg.Users.ListDepartments)

	users := protected.Group("/users", auth.RequireOperation(access.OpCreateUser, access.OpManageUsers))
	users.Post("", cfg.Users.CreateUser)
	users.Get("", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.Users.UpdateUser)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/children", cfg.Tickets.CreateChildTicket)
	tickets.Get("/:id/children", cfg.Tickets.ListChildren)
	tickets.Put("/:id/assignees", cfg.Tickets.AssignEmployees)
	tickets.Get("/:id/history", cfg.Tickets.ListHistory)
	tickets.Get("/:id/messages", cfg.Tickets.ListMessages)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)
	protected.Get("/analytics/tickets", cfg.Tickets.Analytics)

	businesses := protected.Group("/businesses")
	businesses.Post("", cfg.Businesses.CreateBusiness)
	businesses.Get("", cfg.Businesses.ListBusinesses)
	businesses.Get("/:id", cfg.Businesses.GetBusiness)
	businesses.Post("/:id/status", cfg.Businesses.UpdateStatus)

	inventory := protected.Group("/inventory", auth.RequireOperation(access.OpReadInventory, access.OpManageInventory))
	inventory.Post("/:kind", cfg.Inventory.Create)
	inventory.Get("/:kind", cfg.Inventory.List)
	inventory.Get("/:kind/:id", cfg.Inventory.Get)
	inventory.Put("/:kind/:id", cfg.Inventory.Update)
	inventory.Delete("/:kind/:id", cfg.Inventory.Delete)

	protected.Post("/payments", cfg.Payments.Record)
	protected.Get("/payments/remaining-sheet", cfg.Payments.RemainingSheet)
	protected.Get("/stats/monthly-sales", cfg.Payments.MonthlySales)
	protected.Get("/stats/top-closers", cfg.Payments.TopClosers)

	protected.Get("/activity", auth.RequireOperation(access.OpReadActivity), cfg.Activity.List)
}
