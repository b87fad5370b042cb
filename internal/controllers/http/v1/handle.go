package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presenter"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/settings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"City not found"`
}

// apiError maps a failure to its status code and public message.
func apiError(err error) (int, string, string) {
	switch {
	case errors.Is(err, models.ErrMissingLocation):
		return fiber.StatusBadRequest, "Please provide a city name or coordinates", "missing_location"
	case errors.Is(err, models.ErrPlaceNotFound):
		return fiber.StatusNotFound, "City not found", "place_not_found"
	case errors.Is(err, models.ErrIncompleteUpstreamData):
		return fiber.StatusBadGateway, "Forecast data from the provider is incomplete", "incomplete_upstream_data"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway, "Weather service unavailable, try again later", "upstream_unavailable"
	}
	return fiber.StatusInternalServerError, "Internal server error", "internal"
}

func (r *routes) fail(c *fiber.Ctx, err error) error {
	status, msg, kind := apiError(err)
	r.deps.Metrics.RecordError(kind, c.Route().Path)

	fields := map[string]any{
		"route":      c.Route().Path,
		"status":     status,
		"request_id": c.Locals("requestid"),
	}
	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, fields)
	} else {
		fields["err"] = err
		r.l.Info("request rejected", fields)
	}

	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func (r *routes) badRequest(c *fiber.Ctx, msg string) error {
	r.deps.Metrics.RecordError("bad_request", c.Route().Path)
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// GetWeather godoc
// @Summary Get normalized weather
// @Description Resolves a city name or coordinates and returns the normalized hourly series, current sample and daily summaries
// @Tags Weather
// @Produce json
// @Param city query string false "City name" example(Paris)
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(48.8534)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(2.3488)
// @Success 200 {object} models.View "Successful response"
// @Failure 400 {object} ErrorResponse "Missing or invalid location"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 502 {object} ErrorResponse "Provider unavailable or incomplete"
// @Router /weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather?city=Paris"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	params, err := parseLocationParams(c)
	if err != nil {
		return r.badRequest(c, err.Error())
	}

	view, err := r.deps.Weather.Forecast(c.Context(), params.toQuery())
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(view)
}

// GetGeocode godoc
// @Summary Resolve a place name
// @Description Returns the first geocoding candidate for the query
// @Tags Places
// @Produce json
// @Param q query string true "Place name" example(Paris)
// @Success 200 {object} models.Place
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /geocode [get]
func (r *routes) handleGeocodeCall(c *fiber.Ctx) error {
	place, err := r.deps.Places.Resolve(c.Context(), models.LocationQuery{Query: c.Query("q")})
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(place)
}

// GetDashboard godoc
// @Summary Get the rendered dashboard
// @Description Forecast for the location, or the last successful one when none is given, rendered with the stored settings
// @Tags Weather
// @Produce json
// @Param city query string false "City name" example(Paris)
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180)
// @Param unit query string false "Temperature unit override" Enums(C, F)
// @Param time_format query integer false "Clock override" Enums(12, 24)
// @Success 200 {object} presenter.Dashboard
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /dashboard [get]
func (r *routes) handleDashboardCall(c *fiber.Ctx) error {
	params, err := parseLocationParams(c)
	if err != nil {
		return r.badRequest(c, err.Error())
	}
	display, err := parseDisplayParams(c)
	if err != nil {
		return r.badRequest(c, err.Error())
	}

	stored, err := r.deps.Settings.Load()
	if err != nil {
		return r.fail(c, fmt.Errorf("load settings: %w", err))
	}

	query := params.toQuery()
	if params.empty() {
		query = stored.LastQuery.LocationQuery()
	}

	view, err := r.deps.Weather.Forecast(c.Context(), query)
	if err != nil {
		return r.fail(c, err)
	}

	stored.LastQuery = settings.NewLastQuery(query)
	if err := r.deps.Settings.Save(stored); err != nil {
		r.l.Warning("failed to save last query", map[string]any{"err": err})
	}

	return c.JSON(presenter.Present(view, display.apply(stored)))
}

// GetSettings godoc
// @Summary Get display settings
// @Tags Settings
// @Produce json
// @Success 200 {object} settings.Settings
// @Router /settings [get]
func (r *routes) handleGetSettings(c *fiber.Ctx) error {
	s, err := r.deps.Settings.Load()
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(s)
}

// PutSettings godoc
// @Summary Replace display settings
// @Description The stored last query is kept when the body omits it
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body settings.Settings true "New settings"
// @Success 200 {object} settings.Settings
// @Failure 400 {object} ErrorResponse
// @Router /settings [put]
func (r *routes) handlePutSettings(c *fiber.Ctx) error {
	var next settings.Settings
	if err := c.BodyParser(&next); err != nil {
		return r.badRequest(c, "Invalid settings body")
	}
	if err := next.Validate(); err != nil {
		return r.badRequest(c, "unit must be C or F and time_format must be 12 or 24")
	}

	current, err := r.deps.Settings.Load()
	if err != nil {
		return r.fail(c, err)
	}
	if next.LastQuery == nil {
		next.LastQuery = current.LastQuery
	}

	if err := r.deps.Settings.Save(next); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(next)
}

// GetTile godoc
// @Summary Proxy a weather map tile
// @Description Fetches a PNG tile from Meteomatics with server-side credentials
// @Tags Tiles
// @Produce png
// @Param layer query string true "Layer" Enums(pressure, temperature, fronts)
// @Param time query string true "ISO-8601 valid time" example(2025-07-25T12:00:00Z)
// @Param z query integer true "Zoom"
// @Param x query integer true "Tile column"
// @Param y query integer true "Tile row"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /tile [get]
func (r *routes) handleTileCall(c *fiber.Ctx) error {
	params, err := parseTileParams(c)
	if err != nil {
		return r.badRequest(c, err.Error())
	}

	tile, err := r.deps.Tiles.FetchTile(c.Context(), repositories.TileRequest{
		Layer: params.Layer,
		Time:  params.Time,
		Z:     params.Z,
		X:     params.X,
		Y:     params.Y,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUnknownLayer):
			return r.badRequest(c, "Unknown layer")
		case errors.Is(err, repositories.ErrCredentialsNotSet):
			r.deps.Metrics.RecordError("credentials_not_set", c.Route().Path)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Credentials not set"})
		}
		if upstreamErr, ok := repositories.IsUpstreamStatus(err); ok {
			r.deps.Metrics.RecordError("upstream_status", c.Route().Path)
			r.l.Warning("tile request rejected upstream", map[string]any{
				"status": upstreamErr.StatusCode,
				"layer":  params.Layer,
			})
			return c.Status(upstreamErr.StatusCode).SendString(upstreamErr.Body)
		}
		return r.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, tile.ContentType)
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", r.deps.TileMaxAge))
	return c.Send(tile.Data)
}
