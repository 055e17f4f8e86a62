package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Dashboard      *handlers.DashboardHandler
	Reports        *handlers.ReportsHandler
	Lookups        *handlers.LookupsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	tickets := api.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/attachments", cfg.Tickets.AddAttachment)
	tickets.Post("/:id/close", cfg.Tickets.CloseTicket)
	tickets.Post("/:id/reopen", cfg.Tickets.ReopenTicket)

	api.Get("/dashboard", cfg.Dashboard.GetDashboard)

	lookups := api.Group("/lookups")
	lookups.Get("/categories", cfg.Lookups.ListCategories)
	lookups.Get("/internal-systems", cfg.Lookups.ListInternalSystems)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/users/admins", cfg.Auth.ListAdmins)
	admin.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	admin.Patch("/tickets/:id/priority", cfg.Tickets.UpdatePriority)
	admin.Patch("/tickets/:id/assignee", cfg.Tickets.Assign)
	admin.Patch("/tickets/:id/classification", cfg.Tickets.Reclassify)
	admin.Post("/tickets/:id/time-entries", cfg.Tickets.LogTime)
	admin.Get("/tickets/:id/time-entries", cfg.Tickets.ListTimeEntries)
	admin.Delete("/time-entries/:id", cfg.Tickets.DeleteTimeEntry)
	admin.Get("/dashboard/workload", cfg.Dashboard.GetWorkload)
	admin.Get("/reports/summary", cfg.Reports.GetSummary)
	admin.Get("/reports/tickets.csv", cfg.Reports.ExportCSV)
	admin.Get("/metrics", cfg.Health.Metrics)
	admin.Post("/lookups/categories", cfg.Lookups.CreateCategory)
	admin.Put("/lookups/categories/:id", cfg.Lookups.UpdateCategory)
	admin.Post("/lookups/internal-systems", cfg.Lookups.CreateInternalSystem)
	admin.Put("/lookups/internal-systems/:id", cfg.Lookups.UpdateInternalSystem)
}
