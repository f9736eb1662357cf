package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	tenantHandler *TenantHandler,
	paymentHandler *PaymentHandler,
	contractHandler *ContractHandler,
	roomHandler *RoomHandler,
	healthHandler *HealthHandler,
	requireSession fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Session endpoints (public)
	app.Get("/oauthcallbackdwl", authHandler.GoogleCallback)
	app.Post("/logout", authHandler.Logout)

	api := app.Group("/api")
	api.Post("/login/:username", authHandler.TenantLogin)
	api.Get("/login", authHandler.TenantLoginQuery)
	api.Post("/tenants/logout", authHandler.TenantLogout)
	api.Get("/current-user", authHandler.CurrentUser)

	// Admin console (requires a resolvable session)
	tenants := api.Group("/tenants", requireSession)
	tenants.Post("/", tenantHandler.Register)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Patch("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Delete)
	tenants.Post("/:id/account", tenantHandler.CreateAccount)
	tenants.Post("/:id/lease/renew", tenantHandler.RenewLease)
	tenants.Post("/:id/lease/clear-end", tenantHandler.ClearLeaseEnd)
	tenants.Post("/:id/lease/terminate", tenantHandler.TerminateLease)

	api.Post("/users/:googleId/deactivate", requireSession, authHandler.DeactivateUser)

	payments := api.Group("/payments", requireSession)
	payments.Post("/", paymentHandler.Record)
	payments.Get("/", paymentHandler.List)
	payments.Get("/tenant/:id", paymentHandler.ListByTenant)
	payments.Get("/:id", paymentHandler.Get)

	api.Post("/uploadContract", requireSession, contractHandler.Upload)
	contracts := api.Group("/contracts", requireSession)
	contracts.Get("/tenant/:id", contractHandler.ListByTenant)
	contracts.Get("/:id", contractHandler.Download)

	rooms := api.Group("/rooms", requireSession)
	rooms.Post("/", roomHandler.Create)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/:roomNumber", roomHandler.Get)
	rooms.Put("/:roomNumber", roomHandler.Update)
	rooms.Delete("/:roomNumber", roomHandler.Delete)
}
