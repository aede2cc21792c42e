package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// SetupRouter registers the stub routes. apiKey may be empty to accept any key.
func SetupRouter(app *fiber.App, handler *Handler, apiKey string) {

	// Middleware
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})

	// Routes
	secured := app.Group("", RequireAPIKey(apiKey))
	{
		secured.Get("/currencies", handler.GetCurrencies)
		secured.Get("/convert", handler.Convert)
	}
}

// NewApp builds the stub service with its routes registered.
func NewApp(handler *Handler, apiKey string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "FX Rates Stub",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	SetupRouter(app, handler, apiKey)
	return app
}
