package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

	// the 5 day forecast has one entry every three hours
	openWeatherStepsPerDay = 8
	openWeatherMaxSteps    = 40

	openWeatherTimeLayout = "2006-01-02T15:04"
)

// Series names produced from the forecast list entries.
const (
	OpenWeatherTemp        = "main.temp"
	OpenWeatherFeelsLike   = "main.feels_like"
	OpenWeatherPressure    = "main.pressure"
	OpenWeatherHumidity    = "main.humidity"
	OpenWeatherWindSpeed   = "wind.speed"
	OpenWeatherRain        = "rain.3h"
	OpenWeatherWeatherCode = "weather.code"
)

type OpenWeatherRepository struct {
	apiKey  string
	baseURL string
	up      *upstream
	l       *logger.Logger
}

func NewOpenWeatherRepository(
	baseURL, apiKey string,
	l *logger.Logger,
	httpClient HTTPClient,
	m *metrics.Collector,
) (*OpenWeatherRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: openweather api key is empty", ErrCredentialsNotSet)
	}
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherRepository{
		apiKey:  apiKey,
		baseURL: baseURL,
		up:      newUpstream("openweather", httpClient, l, m),
		l:       l,
	}, nil
}

func (w *OpenWeatherRepository) Name() string {
	return "openweather"
}

type OpenWeatherResponse struct {
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp      *float64 `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
			Pressure  *float64 `json:"pressure"`
			Humidity  *float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Rain *struct {
			ThreeH *float64 `json:"3h"`
		} `json:"rain"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		// Timezone is the shift from UTC in seconds.
		Timezone int `json:"timezone"`
	} `json:"city"`
}

func (w *OpenWeatherRepository) FetchForecast(
	ctx context.Context,
	lat float64,
	lon float64,
	forecastDays int,
) (models.RawPayload, error) {
	request := models.ForecastRequest{Lat: lat, Lon: lon, ForecastDays: forecastDays}

	w.l.Info("making openweather API request", map[string]any{
		"params": request.RequestParams(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.forecastURL(request), nil)
	if err != nil {
		return models.RawPayload{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.up.do(req)
	if err != nil {
		return models.RawPayload{}, err
	}

	var response OpenWeatherResponse
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		return models.RawPayload{}, w.up.parseError(resp, err)
	}

	w.l.Info("parsed API response", map[string]any{
		"items": len(response.List),
	})

	return w.toPayload(response), nil
}

func (w *OpenWeatherRepository) forecastURL(r models.ForecastRequest) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", w.apiKey)
	if r.ForecastDays > 0 {
		q.Set("cnt", strconv.Itoa(min(r.ForecastDays*openWeatherStepsPerDay, openWeatherMaxSteps)))
	}
	return w.baseURL + "?" + q.Encode()
}

// toPayload turns the list entries into one series per field. Timestamps are rendered in
// the city's local time so days are bucketed the way the other providers bucket them. An
// entry without a rain block had no rain.
func (w *OpenWeatherRepository) toPayload(r OpenWeatherResponse) models.RawPayload {
	payload := models.RawPayload{
		Provider:         w.Name(),
		UTCOffsetSeconds: r.City.Timezone,
		Series:           make(map[string][]models.RawSeriesPoint),
	}
	loc := time.FixedZone("", r.City.Timezone)

	add := func(name, ts string, v *float64) {
		payload.Series[name] = append(payload.Series[name], models.RawSeriesPoint{Timestamp: ts, Value: v})
	}

	for _, item := range r.List {
		ts, ok := openWeatherTimestamp(item.Dt, item.DtTxt, loc)
		if !ok {
			w.l.Warning("skipping forecast entry without a timestamp", map[string]any{
				"provider": w.Name(),
				"dt_txt":   item.DtTxt,
			})
			continue
		}

		rain := new(float64)
		if item.Rain != nil && item.Rain.ThreeH != nil {
			rain = item.Rain.ThreeH
		}
		var code *float64
		if len(item.Weather) > 0 {
			if c, ok := wmoCode(item.Weather[0].ID); ok {
				code = &c
			}
		}

		add(OpenWeatherTemp, ts, item.Main.Temp)
		add(OpenWeatherFeelsLike, ts, item.Main.FeelsLike)
		add(OpenWeatherPressure, ts, item.Main.Pressure)
		add(OpenWeatherHumidity, ts, item.Main.Humidity)
		add(OpenWeatherWindSpeed, ts, item.Wind.Speed)
		add(OpenWeatherRain, ts, rain)
		add(OpenWeatherWeatherCode, ts, code)
	}

	return payload
}

// openWeatherTimestamp prefers the unix time and falls back to dt_txt, which is in UTC.
func openWeatherTimestamp(dt int64, dtTxt string, loc *time.Location) (string, bool) {
	if dt > 0 {
		return time.Unix(dt, 0).In(loc).Format(openWeatherTimeLayout), true
	}
	t, err := time.Parse(time.DateTime, dtTxt)
	if err != nil {
		return "", false
	}
	return t.In(loc).Format(openWeatherTimeLayout), true
}

// wmoCode translates an OpenWeatherMap condition id into the WMO code the dashboard labels.
func wmoCode(id int) (float64, bool) {
	switch {
	case id >= 200 && id < 300:
		return 95, true
	case id >= 300 && id < 400:
		return 53, true
	case id == 500:
		return 61, true
	case id == 501:
		return 63, true
	case id >= 502 && id <= 504:
		return 65, true
	case id == 511:
		return 66, true
	case id >= 520 && id < 600:
		return 80, true
	case id == 600:
		return 71, true
	case id == 601:
		return 73, true
	case id >= 602 && id < 700:
		return 75, true
	case id >= 700 && id < 800:
		return 45, true
	case id == 800:
		return 0, true
	case id == 801:
		return 1, true
	case id == 802:
		return 2, true
	case id == 803, id == 804:
		return 3, true
	}
	return 0, false
}
