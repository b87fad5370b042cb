package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/settings"
)

var validate = validator.New()

type locationParams struct {
	City string   `validate:"max=200"`
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func (p locationParams) toQuery() models.LocationQuery {
	return models.LocationQuery{
		Query:     strings.TrimSpace(p.City),
		Latitude:  p.Lat,
		Longitude: p.Lon,
	}
}

func (p locationParams) empty() bool {
	return strings.TrimSpace(p.City) == "" && (p.Lat == nil || p.Lon == nil)
}

func parseLocationParams(c *fiber.Ctx) (locationParams, error) {
	var p locationParams
	p.City = c.Query("city")

	var err error
	if p.Lat, err = optionalFloat(c.Query("lat")); err != nil {
		return p, errors.New("Invalid latitude format")
	}
	if p.Lon, err = optionalFloat(c.Query("lon")); err != nil {
		return p, errors.New("Invalid longitude format")
	}

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Lat":
				return p, errors.New("Latitude must be between -90 and 90")
			case "Lon":
				return p, errors.New("Longitude must be between -180 and 180")
			}
		}
		return p, err
	}
	return p, nil
}

// displayParams are per-request overrides of the stored settings.
type displayParams struct {
	Unit       string `validate:"omitempty,oneof=C F"`
	TimeFormat string `validate:"omitempty,oneof=12 24"`
}

func parseDisplayParams(c *fiber.Ctx) (displayParams, error) {
	p := displayParams{
		Unit:       strings.ToUpper(c.Query("unit")),
		TimeFormat: c.Query("time_format"),
	}
	if err := validate.Struct(p); err != nil {
		return p, errors.New("unit must be C or F and time_format must be 12 or 24")
	}
	return p, nil
}

func (p displayParams) apply(s settings.Settings) settings.Settings {
	if p.Unit != "" {
		s.Unit = settings.Unit(p.Unit)
	}
	if p.TimeFormat != "" {
		s.TimeFormat, _ = strconv.Atoi(p.TimeFormat)
	}
	return s
}

type tileParams struct {
	Layer string `validate:"required"`
	Time  string `validate:"required"`
	Z     int    `validate:"gte=0,lte=20"`
	X     int    `validate:"gte=0"`
	Y     int    `validate:"gte=0"`
}

func parseTileParams(c *fiber.Ctx) (tileParams, error) {
	p := tileParams{
		Layer: c.Query("layer"),
		Time:  c.Query("time"),
	}

	for name, dst := range map[string]*int{"z": &p.Z, "x": &p.X, "y": &p.Y} {
		v, err := strconv.Atoi(c.Query(name))
		if err != nil {
			return p, errors.New("z, x and y must be integers")
		}
		*dst = v
	}

	if err := validate.Struct(p); err != nil {
		return p, errors.New("layer, time, z, x and y are required and must not be negative")
	}
	return p, nil
}

func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
