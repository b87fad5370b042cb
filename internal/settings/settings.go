package settings

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"weather-dashboard/internal/models"
)

type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

var validate = validator.New()

// Settings holds the display preferences. They are applied when rendering and never
// influence how forecasts are fetched or normalized.
type Settings struct {
	Unit       Unit       `yaml:"unit" json:"unit" validate:"oneof=C F" example:"C"`
	TimeFormat int        `yaml:"time_format" json:"time_format" validate:"oneof=12 24" example:"24"`
	LastQuery  *LastQuery `yaml:"last_query,omitempty" json:"last_query,omitempty"`
}

// LastQuery is the most recent successful dashboard location.
type LastQuery struct {
	Query     string   `yaml:"query,omitempty" json:"query,omitempty" example:"Paris"`
	Latitude  *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

func Default() Settings {
	return Settings{
		Unit:       Celsius,
		TimeFormat: 24,
	}
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func (s Settings) Uses12Hour() bool {
	return s.TimeFormat == 12
}

func NewLastQuery(q models.LocationQuery) *LastQuery {
	return &LastQuery{
		Query:     q.Query,
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
	}
}

func (q *LastQuery) LocationQuery() models.LocationQuery {
	if q == nil {
		return models.LocationQuery{}
	}
	return models.LocationQuery{
		Query:     q.Query,
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
	}
}
