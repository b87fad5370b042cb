package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

var ErrCredentialsNotSet = errors.New("provider credentials not set")

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ForecastRepository fetches one hourly forecast payload from a provider.
type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64, forecastDays int) (models.RawPayload, error)
}

// GeocodingRepository looks up candidate places for a free-text name, most relevant first.
type GeocodingRepository interface {
	Name() string
	Search(ctx context.Context, name string, count int) ([]models.Place, error)
}

type TileRepository interface {
	FetchTile(ctx context.Context, req TileRequest) (Tile, error)
}

// Repositories bundles everything the services need from the outside world.
type Repositories struct {
	Forecast  ForecastRepository
	Geocoding GeocodingRepository
	Tiles     TileRepository
}

func InitRepositories(cfg *config.Config, l *logger.Logger, m *metrics.Collector) (*Repositories, error) {
	forecast, err := initForecastRepository(cfg, l, m)
	if err != nil {
		return nil, err
	}

	geocoding := NewOpenMeteoGeocoder(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.Language,
		l,
		&http.Client{Timeout: cfg.RequestTimeout()},
		m,
	)

	tiles := NewMeteomaticsTileRepository(
		cfg.Tiles.BaseURL,
		cfg.Weather.MeteomaticsUsername,
		cfg.Weather.MeteomaticsPassword,
		l,
		&http.Client{Timeout: cfg.APITimeout(config.ProviderMeteomatics)},
		m,
	)

	return &Repositories{
		Forecast:  forecast,
		Geocoding: geocoding,
		Tiles:     tiles,
	}, nil
}

func initForecastRepository(cfg *config.Config, l *logger.Logger, m *metrics.Collector) (ForecastRepository, error) {
	provider := cfg.Weather.Provider
	client := &http.Client{Timeout: cfg.APITimeout(provider)}

	// Add more cases for new providers; their parameter names go into the normalizer alias table
	switch provider {
	case config.ProviderOpenMeteo:
		return NewOpenMeteoRepository(cfg.APIBaseURL(provider, OpenMeteoBaseURL), l, client, m), nil
	case config.ProviderMeteomatics:
		repo, err := NewMeteomaticsRepository(
			cfg.APIBaseURL(provider, MeteomaticsBaseURL),
			cfg.Weather.MeteomaticsUsername,
			cfg.Weather.MeteomaticsPassword,
			l,
			client,
			m,
		)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.ProviderOpenWeather:
		repo, err := NewOpenWeatherRepository(
			cfg.APIBaseURL(provider, OpenWeatherBaseURL),
			cfg.APIKey(provider),
			l,
			client,
			m,
		)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	return nil, fmt.Errorf("unsupported weather provider %q", provider)
}
