package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/api/http/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Employees *handlers.EmployeeHandler
	Health    *handlers.HealthHandler
	// Authenticate validates the bearer token; RequireAdmin must follow it.
	Authenticate fiber.Handler
	RequireAdmin fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	a := api.Group("/auth")
	a.Post("/login", h.Auth.Login)
	a.Post("/register", h.Authenticate, h.RequireAdmin, h.Auth.Register)
	a.Get("/verify", h.Authenticate, h.Auth.Verify)
	a.Post("/logout", h.Authenticate, h.Auth.Logout)

	e := api.Group("/employees", h.Authenticate)
	e.Get("/", h.Employees.List)
	e.Post("/", h.RequireAdmin, h.Employees.Create)
	// registered before /:id so "stats" is not taken for an id
	e.Get("/stats/dashboard", h.RequireAdmin, h.Employees.Stats)
	e.Get("/:id", h.Employees.Get)
	e.Put("/:id", h.Employees.Update)
	e.Delete("/:id", h.RequireAdmin, h.Employees.Delete)
}
