package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"
)

var openMeteoHourlyParams = []string{
	"temperature_2m",
	"apparent_temperature",
	"pressure_msl",
	"precipitation",
	"windspeed_10m",
	"relativehumidity_2m",
	"weathercode",
}

type OpenMeteoRepository struct {
	baseURL string
	up      *upstream
	l       *logger.Logger
}

func NewOpenMeteoRepository(baseURL string, l *logger.Logger, httpClient HTTPClient, m *metrics.Collector) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	return &OpenMeteoRepository{
		baseURL: baseURL,
		up:      newUpstream("open-meteo", httpClient, l, m),
		l:       l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

// OpenMeteoResponse keeps the hourly block raw so one malformed series does not spoil the rest.
type OpenMeteoResponse struct {
	Latitude         float64                    `json:"latitude"`
	Longitude        float64                    `json:"longitude"`
	Timezone         string                     `json:"timezone"`
	UTCOffsetSeconds int                        `json:"utc_offset_seconds"`
	Hourly           map[string]json.RawMessage `json:"hourly"`
}

func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, lat, lon float64, forecastDays int) (models.RawPayload, error) {
	request := models.ForecastRequest{Lat: lat, Lon: lon, ForecastDays: forecastDays}

	o.l.Info("making openmeteo API request", map[string]any{
		"params": request.RequestParams(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.forecastURL(request), nil)
	if err != nil {
		return models.RawPayload{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.up.do(req)
	if err != nil {
		return models.RawPayload{}, err
	}

	var response OpenMeteoResponse
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		return models.RawPayload{}, o.up.parseError(resp, err)
	}

	payload, err := o.toPayload(response)
	if err != nil {
		return models.RawPayload{}, o.up.parseError(resp, err)
	}
	return payload, nil
}

func (o *OpenMeteoRepository) forecastURL(r models.ForecastRequest) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	q.Set("hourly", strings.Join(openMeteoHourlyParams, ","))
	q.Set("timezone", "auto")
	if r.ForecastDays > 0 {
		q.Set("forecast_days", strconv.Itoa(r.ForecastDays))
	}
	return o.baseURL + "?" + q.Encode()
}

// toPayload pairs every hourly array with the shared time axis. Entries beyond the time
// axis have no timestamp and are dropped; arrays that are not numeric are skipped.
func (o *OpenMeteoRepository) toPayload(r OpenMeteoResponse) (models.RawPayload, error) {
	payload := models.RawPayload{
		Provider:         o.Name(),
		UTCOffsetSeconds: r.UTCOffsetSeconds,
		Series:           make(map[string][]models.RawSeriesPoint),
	}

	rawTimes, ok := r.Hourly["time"]
	if !ok {
		return payload, nil
	}
	var times []string
	if err := json.Unmarshal(rawTimes, &times); err != nil {
		return payload, fmt.Errorf("hourly.time: %w", err)
	}

	names := make([]string, 0, len(r.Hourly))
	for name := range r.Hourly {
		if name != "time" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var values []*float64
		if err := json.Unmarshal(r.Hourly[name], &values); err != nil {
			o.l.Warning("skipping non-numeric hourly series", map[string]any{
				"provider":  o.Name(),
				"parameter": name,
			})
			continue
		}
		if len(values) > len(times) {
			values = values[:len(times)]
		}
		points := make([]models.RawSeriesPoint, len(values))
		for i, v := range values {
			points[i] = models.RawSeriesPoint{Timestamp: times[i], Value: v}
		}
		payload.Series[name] = points
	}

	return payload, nil
}
