package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/http/handlers"
	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Attachments    *handlers.AttachmentsHandler
	Statuses       *handlers.StatusesHandler
	Categories     *handlers.CategoriesHandler
	Priorities     *handlers.PrioritiesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	users := api.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	// Literal segments before the :id wildcard.
	tickets.Patch("/status", cfg.Tickets.ChangeStatus)
	tickets.Get("/user/:userId", cfg.Tickets.ListByReporter)
	tickets.Get("/assigned/:userId", cfg.Tickets.ListByAssignee)
	tickets.Get("/status/:statusId", cfg.Tickets.ListByStatus)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.DeleteTicket)
	tickets.Get("/:id/history", cfg.Tickets.GetHistory)
	tickets.Post("/:id/comments", cfg.Comments.Add)
	tickets.Get("/:id/comments", cfg.Comments.List)
	tickets.Post("/:id/attachments", cfg.Attachments.Add)
	tickets.Get("/:id/attachments", cfg.Attachments.List)

	statuses := api.Group("/statuses")
	statuses.Get("/", cfg.Statuses.List)
	statuses.Get("/:id", cfg.Statuses.Get)
	statuses.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Statuses.Create)
	statuses.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Statuses.Update)
	statuses.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Statuses.Delete)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Create)
	categories.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Update)
	categories.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Delete)

	priorities := api.Group("/priorities")
	priorities.Get("/", cfg.Priorities.List)
	priorities.Get("/:id", cfg.Priorities.Get)
	priorities.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Priorities.Create)
	priorities.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Priorities.Update)
	priorities.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Priorities.Delete)
}
