package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quickpay-backend/controllers"
	"quickpay-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, ctl *controllers.Controllers, db *gorm.DB) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", ctl.Register)
	api.Post("/login", ctl.Login)
	api.Post("/logout", ctl.Logout)

	// Mock payment endpoints (opaque provider boundary)
	api.Post("/payments/stk-push", ctl.StkPush)
	api.Post("/payments/callback", ctl.PaymentCallback)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for mutating requests
	protected.Use(middlewares.Idempotency(db))

	// Invoices
	protected.Post("/invoice", ctl.CreateInvoice)
	protected.Get("/invoices", ctl.GetInvoices)
	protected.Get("/invoices/selected", ctl.GetSelectedInvoice)
	protected.Delete("/invoices/selected", ctl.ClearSelection)
	protected.Get("/invoice/:id", ctl.GetInvoice)
	protected.Patch("/invoices/:id", ctl.UpdateInvoice)
	protected.Delete("/invoices/:id", ctl.DeleteInvoice)
	protected.Post("/invoices/:id/select", ctl.SelectInvoice)
	protected.Post("/invoices/:id/pay", ctl.PayInvoice)

	// Clients
	protected.Post("/client", ctl.CreateClient)
	protected.Get("/clients", ctl.GetClients)
	protected.Get("/client/:id", ctl.GetClient)
	protected.Put("/client/:id", ctl.UpdateClient)

	// Settings
	protected.Get("/profile", ctl.GetProfile)
	protected.Put("/profile", ctl.UpdateProfile)

	// Notifications
	protected.Get("/notifications", ctl.GetNotifications)
	protected.Put("/notifications/:id/read", ctl.MarkNotificationRead)
	protected.Delete("/notifications", ctl.ClearNotifications)
}
