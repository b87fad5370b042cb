package weather_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/logger"
)

// MockResolver implements weather.PlaceResolver for testing
type MockResolver struct {
	place     models.Place
	err       error
	callCount int
}

func (m *MockResolver) Resolve(ctx context.Context, q models.LocationQuery) (models.Place, error) {
	m.callCount++
	if m.err != nil {
		return models.Place{}, m.err
	}
	return m.place, nil
}

// MockRepository implements repositories.ForecastRepository for testing
type MockRepository struct {
	payload     models.RawPayload
	shouldFail  bool
	shouldDelay bool
	callCount   int
	lastLat     float64
	lastLon     float64
	lastDays    int
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) FetchForecast(ctx context.Context, lat, lon float64, forecastDays int) (models.RawPayload, error) {
	m.callCount++
	m.lastLat, m.lastLon, m.lastDays = lat, lon, forecastDays

	if m.shouldDelay {
		select {
		case <-ctx.Done():
			return models.RawPayload{}, &models.UpstreamError{Provider: m.Name(), Err: ctx.Err()}
		case <-time.After(time.Second):
		}
	}

	if m.shouldFail {
		return models.RawPayload{}, &models.UpstreamError{Provider: m.Name(), StatusCode: 503, Body: "down"}
	}

	return m.payload, nil
}

func testLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", io.Discard)
}

func f(v float64) *float64 {
	return &v
}

var berlin = models.Place{Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.41, Timezone: "Europe/Berlin"}

func berlinPayload() models.RawPayload {
	times := []string{"2025-07-25T10:00", "2025-07-25T11:00", "2025-07-25T12:00"}
	temps := []*float64{f(20.04), f(21.5), nil}
	points := make([]models.RawSeriesPoint, len(times))
	for i := range times {
		points[i] = models.RawSeriesPoint{Timestamp: times[i], Value: temps[i]}
	}
	return models.RawPayload{
		Provider: "mock",
		Series:   map[string][]models.RawSeriesPoint{"temperature_2m": points},
	}
}

func newService(resolver *MockResolver, repo *MockRepository, timeout time.Duration) *weather.WeatherService {
	return weather.NewWeatherService(resolver, repo, nil, weather.Options{
		ForecastDays: 4,
		Timeout:      timeout,
		Clock:        func() time.Time { return time.Date(2025, 7, 25, 11, 10, 0, 0, time.UTC) },
	}, testLogger())
}

func TestWeatherService_Forecast_Success(t *testing.T) {
	resolver := &MockResolver{place: berlin}
	repo := &MockRepository{payload: berlinPayload()}
	service := newService(resolver, repo, time.Second)

	view, err := service.Forecast(context.Background(), models.LocationQuery{Query: "Berlin"})
	require.NoError(t, err)

	assert.Equal(t, berlin, view.Place)
	assert.Equal(t, "mock", view.Provider)
	assert.Equal(t, 52.52, repo.lastLat)
	assert.Equal(t, 13.41, repo.lastLon)
	assert.Equal(t, 4, repo.lastDays)

	assert.Equal(t, 3, view.Hourly.Len())
	assert.Equal(t, 1, view.Current.Index)
	require.Len(t, view.Daily, 1)
	assert.Equal(t, "2025-07-25", view.Daily[0].Date)
	assert.InDelta(t, 21.5, *view.Daily[0].MaxTemp, 1e-9)
	assert.InDelta(t, 20.0, *view.Daily[0].MinTemp, 1e-9)
}

func TestWeatherService_Forecast_ResolveFailureSkipsFetch(t *testing.T) {
	resolver := &MockResolver{err: models.ErrPlaceNotFound}
	repo := &MockRepository{}
	service := newService(resolver, repo, time.Second)

	_, err := service.Forecast(context.Background(), models.LocationQuery{Query: "Atlantis"})
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
	assert.Zero(t, repo.callCount)
}

func TestWeatherService_Forecast_UpstreamFailure(t *testing.T) {
	resolver := &MockResolver{place: berlin}
	repo := &MockRepository{shouldFail: true}
	service := newService(resolver, repo, time.Second)

	_, err := service.Forecast(context.Background(), models.LocationQuery{Query: "Berlin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

	var upstreamErr *models.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, 503, upstreamErr.StatusCode)
}

func TestWeatherService_Forecast_IncompletePayload(t *testing.T) {
	resolver := &MockResolver{place: berlin}
	repo := &MockRepository{payload: models.RawPayload{Provider: "mock", Series: map[string][]models.RawSeriesPoint{}}}
	service := newService(resolver, repo, time.Second)

	_, err := service.Forecast(context.Background(), models.LocationQuery{Query: "Berlin"})
	assert.ErrorIs(t, err, models.ErrIncompleteUpstreamData)
}

func TestWeatherService_Forecast_Timeout(t *testing.T) {
	resolver := &MockResolver{place: berlin}
	repo := &MockRepository{shouldDelay: true}
	service := newService(resolver, repo, 20*time.Millisecond)

	start := time.Now()
	_, err := service.Forecast(context.Background(), models.LocationQuery{Query: "Berlin"})
	require.Error(t, err)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWeatherService_Forecast_CallerCancellation(t *testing.T) {
	resolver := &MockResolver{place: berlin}
	repo := &MockRepository{shouldDelay: true}
	service := newService(resolver, repo, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Forecast(ctx, models.LocationQuery{Query: "Berlin"})
	assert.ErrorIs(t, err, context.Canceled)
}
