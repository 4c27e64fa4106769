package routes

import (
	"github.com/gofiber/fiber/v2"

	"auto-control-backend/controllers"
	"auto-control-backend/middlewares"
	"auto-control-backend/services"

	"gorm.io/gorm"
)

// Register wires all HTTP routes. Services are constructed here with
// the shared DB handle and injected into their controllers.
func Register(app *fiber.App, db *gorm.DB) {
	customers := controllers.NewCustomerController(services.NewCustomerService(db))
	cars := controllers.NewCarController(services.NewCarService(db))
	parts := controllers.NewPartController(services.NewPartService(db))
	notes := controllers.NewNoteController(services.NewNoteService(db))

	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/register", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Customers
	protected.Post("/customer", customers.Create)
	protected.Get("/customers", customers.List)
	protected.Get("/customer/:id", customers.Get)
	protected.Put("/customer/:id", customers.Update)
	protected.Delete("/customer/:id", customers.Delete)

	// Cars
	protected.Post("/car", cars.Create)
	protected.Get("/cars", cars.List)
	protected.Get("/car/:id", cars.Get)
	protected.Put("/car/:id", cars.Update)
	protected.Delete("/car/:id", cars.Delete)

	// Parts
	protected.Post("/part", parts.Create)
	protected.Get("/parts", parts.List)
	protected.Get("/part/:id", parts.Get)
	protected.Put("/part/:id", parts.Update)
	protected.Delete("/part/:id", parts.Delete)

	// Notes (service orders with line items)
	protected.Post("/note", notes.Create)
	protected.Get("/notes", notes.List)
	protected.Get("/note/:id", notes.Get)
	protected.Put("/note/:id", notes.Update)
	protected.Delete("/note/:id", notes.Delete)
	protected.Get("/note-status", notes.NoteStatuses)
}
