package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/normalizer"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

const (
	DefaultForecastDays   = 4
	DefaultRequestTimeout = 10 * time.Second
)

type PlaceResolver interface {
	Resolve(ctx context.Context, q models.LocationQuery) (models.Place, error)
}

type Options struct {
	ForecastDays int
	Timeout      time.Duration
	// Clock supplies the reference instant for the current sample. Defaults to time.Now.
	Clock func() time.Time
}

// WeatherService represents the weather service.
type WeatherService struct {
	resolver   PlaceResolver
	repo       repositories.ForecastRepository
	normalizer *normalizer.Normalizer
	opts       Options
	l          *logger.Logger
}

func NewWeatherService(
	resolver PlaceResolver,
	repo repositories.ForecastRepository,
	n *normalizer.Normalizer,
	opts Options,
	l *logger.Logger,
) *WeatherService {
	if n == nil {
		n = normalizer.New(nil)
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = DefaultForecastDays
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRequestTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &WeatherService{
		resolver:   resolver,
		repo:       repo,
		normalizer: n,
		opts:       opts,
		l:          l,
	}
}

// Forecast resolves the location, fetches one forecast and normalizes it. The steps run one
// after the other under a single deadline; any failure aborts the whole lookup.
func (s *WeatherService) Forecast(ctx context.Context, q models.LocationQuery) (models.View, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	s.l.Info("starting forecast lookup", map[string]any{
		"location": q.String(),
		"provider": s.repo.Name(),
	})

	place, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return models.View{}, errors.Wrap(err, "resolve place")
	}

	payload, err := s.repo.FetchForecast(ctx, place.Latitude, place.Longitude, s.opts.ForecastDays)
	if err != nil {
		return models.View{}, errors.Wrapf(err, "fetch forecast from %s", s.repo.Name())
	}

	forecast, err := s.normalizer.Normalize(payload, s.opts.Clock())
	if err != nil {
		return models.View{}, errors.Wrapf(err, "normalize %s payload", payload.Provider)
	}

	s.l.Info("completed forecast lookup", map[string]any{
		"place":    place.Name,
		"provider": forecast.Provider,
		"hours":    forecast.Hourly.Len(),
		"days":     len(forecast.Daily),
	})

	return models.NewView(place, forecast), nil
}
