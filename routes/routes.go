package routes

import (
	"github.com/gofiber/fiber/v2"

	"loyalty-backend/controllers"
	"loyalty-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Get("/customer/:id/balance", controllers.GetCustomerBalance)
	protected.Post("/customer/:id/points-adjustment", controllers.AdjustCustomerPoints)

	// Products
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/product/:id", controllers.UpdateProduct)

	// Invoices (every mutation runs the balance chain in one TX)
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Delete("/invoice/:id", controllers.DeleteInvoice)

	// Payments
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)
	protected.Post("/customers/:id/payments", controllers.CreateCustomerPayment)
	protected.Put("/payments/:id", controllers.UpdatePayment)
	protected.Delete("/payments/:id", controllers.DeletePayment)

	// Redemptions
	protected.Post("/redemption", controllers.CreateRedemption)
	protected.Get("/redemptions", controllers.GetRedemptions)
	protected.Get("/redemption/:id", controllers.GetRedemption)
	protected.Put("/redemption/:id", controllers.UpdateRedemption)
	protected.Delete("/redemption/:id", controllers.DeleteRedemption)
}
