package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-dashboard/docs"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/settings"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const defaultTileMaxAge = 300

type WeatherService interface {
	Forecast(ctx context.Context, q models.LocationQuery) (models.View, error)
}

type PlaceResolver interface {
	Resolve(ctx context.Context, q models.LocationQuery) (models.Place, error)
}

// Dependencies are the collaborators behind the HTTP API. Metrics may be nil.
type Dependencies struct {
	Weather  WeatherService
	Places   PlaceResolver
	Tiles    repositories.TileRepository
	Settings settings.Store
	Metrics  *metrics.Collector
	// TileMaxAge is the Cache-Control max-age of proxied tiles, in seconds.
	TileMaxAge int
}

type routes struct {
	deps Dependencies
	l    *logger.Logger
}

func NewRouter(
	app *fiber.App,
	deps Dependencies,
	l *logger.Logger,
) {
	if deps.TileMaxAge <= 0 {
		deps.TileMaxAge = defaultTileMaxAge
	}
	r := &routes{
		deps: deps,
		l:    l,
	}

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Swagger documentation, served from the registered docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/weather", r.handleWeatherCall)
	app.Get("/geocode", r.handleGeocodeCall)
	app.Get("/dashboard", r.handleDashboardCall)
	app.Get("/settings", r.handleGetSettings)
	app.Put("/settings", r.handlePutSettings)
	app.Get("/tile", r.handleTileCall)
}
