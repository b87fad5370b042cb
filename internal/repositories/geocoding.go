package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type OpenMeteoGeocoder struct {
	baseURL  string
	language string
	up       *upstream
	l        *logger.Logger
}

func NewOpenMeteoGeocoder(baseURL, language string, l *logger.Logger, httpClient HTTPClient, m *metrics.Collector) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = OpenMeteoGeocodingURL
	}
	if language == "" {
		language = "en"
	}
	return &OpenMeteoGeocoder{
		baseURL:  baseURL,
		language: language,
		up:       newUpstream("open-meteo-geocoding", httpClient, l, m),
		l:        l,
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return "open-meteo-geocoding"
}

type GeocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Search returns up to count candidates in upstream relevance order. No match is an empty
// slice, not an error.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string, count int) ([]models.Place, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", strconv.Itoa(count))
	q.Set("language", g.language)
	q.Set("format", "json")

	g.l.Info("making geocoding API request", map[string]any{
		"query": name,
		"count": count,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.up.do(req)
	if err != nil {
		return nil, err
	}

	var response GeocodingResponse
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		return nil, g.up.parseError(resp, err)
	}

	places := make([]models.Place, 0, len(response.Results))
	for _, r := range response.Results {
		places = append(places, models.Place{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Timezone:  r.Timezone,
		})
	}
	return places, nil
}
