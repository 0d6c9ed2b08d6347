package restapi

import (
	"github.com/andreyxaxa/Deletion-Request-Mailer/config"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/middleware"
	v1 "github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Deletion request mailer
// @version 1.0.0
// @host localhost:8080
// @BasePath /
func NewRouter(app *fiber.App, cfg *config.Config, dr usecase.DeleteRequestUseCase, mail usecase.MailUseCase, l logger.Interface) {
	// CORS для всех маршрутов, OPTIONS отвечает 204
	app.Use(middleware.CORS())

	// Prometheus metrics
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewDeleteRequestRoutes(apiV1Group, dr, mail, l)
	}

	v1.NewLegacyRoutes(app, dr, mail, l)
}
