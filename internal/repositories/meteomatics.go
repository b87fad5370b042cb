package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	MeteomaticsBaseURL = "https://api.meteomatics.com"

	meteomaticsTimeLayout = "2006-01-02T15:04:05Z"
)

var meteomaticsParams = []string{
	"t_2m:C",
	"t_apparent:C",
	"msl_pressure:hPa",
	"precip_1h:mm",
	"wind_speed_10m:ms",
	"relative_humidity_2m:p",
}

// Meteomatics reports missing or invalid values with these sentinels instead of null.
var meteomaticsSentinels = map[float64]struct{}{
	-999: {},
	-666: {},
}

type MeteomaticsRepository struct {
	baseURL  string
	username string
	password string
	now      func() time.Time
	up       *upstream
	l        *logger.Logger
}

func NewMeteomaticsRepository(
	baseURL, username, password string,
	l *logger.Logger,
	httpClient HTTPClient,
	m *metrics.Collector,
) (*MeteomaticsRepository, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrCredentialsNotSet
	}
	if baseURL == "" {
		baseURL = MeteomaticsBaseURL
	}

	return &MeteomaticsRepository{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		now:      time.Now,
		up:       newUpstream("meteomatics", httpClient, l, m),
		l:        l,
	}, nil
}

func (w *MeteomaticsRepository) Name() string {
	return "meteomatics"
}

type MeteomaticsResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
	Data    []struct {
		Parameter   string `json:"parameter"`
		Coordinates []struct {
			Lat   float64 `json:"lat"`
			Lon   float64 `json:"lon"`
			Dates []struct {
				Date  string   `json:"date"`
				Value *float64 `json:"value"`
			} `json:"dates"`
		} `json:"coordinates"`
	} `json:"data"`
}

func (w *MeteomaticsRepository) FetchForecast(
	ctx context.Context,
	lat float64,
	lon float64,
	forecastDays int,
) (models.RawPayload, error) {
	request := models.ForecastRequest{Lat: lat, Lon: lon, ForecastDays: forecastDays}

	w.l.Info("making meteomatics API request", map[string]any{
		"params": request.RequestParams(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.forecastURL(request), nil)
	if err != nil {
		return models.RawPayload{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(w.username, w.password)

	resp, err := w.up.do(req)
	if err != nil {
		return models.RawPayload{}, err
	}

	var response MeteomaticsResponse
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		return models.RawPayload{}, w.up.parseError(resp, err)
	}
	if response.Status != "" && response.Status != "OK" {
		return models.RawPayload{}, w.up.parseError(resp, fmt.Errorf("status %q", response.Status))
	}

	w.l.Info("parsed API response", map[string]any{
		"parameters": len(response.Data),
	})

	return w.toPayload(response), nil
}

// forecastURL builds {base}/{start}--{end}:PT1H/{params}/{lat},{lon}/json with the
// window starting at the current hour.
func (w *MeteomaticsRepository) forecastURL(r models.ForecastRequest) string {
	days := r.ForecastDays
	if days <= 0 {
		days = 1
	}
	start := w.now().UTC().Truncate(time.Hour)
	end := start.Add(time.Duration(days) * 24 * time.Hour)

	return fmt.Sprintf("%s/%s--%s:PT1H/%s/%s,%s/json",
		w.baseURL,
		start.Format(meteomaticsTimeLayout),
		end.Format(meteomaticsTimeLayout),
		strings.Join(meteomaticsParams, ","),
		formatCoordinate(r.Lat),
		formatCoordinate(r.Lon),
	)
}

func (w *MeteomaticsRepository) toPayload(r MeteomaticsResponse) models.RawPayload {
	payload := models.RawPayload{
		Provider: w.Name(),
		Series:   make(map[string][]models.RawSeriesPoint),
	}

	for _, param := range r.Data {
		if len(param.Coordinates) == 0 {
			continue
		}
		dates := param.Coordinates[0].Dates
		points := make([]models.RawSeriesPoint, len(dates))
		for i, d := range dates {
			value := d.Value
			if value != nil {
				if _, ok := meteomaticsSentinels[*value]; ok {
					value = nil
				}
			}
			points[i] = models.RawSeriesPoint{Timestamp: d.Date, Value: value}
		}
		payload.Series[param.Parameter] = points
	}

	return payload
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
