package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

var ErrUnknownLayer = errors.New("unknown layer")

// TileLayers maps the public layer names to Meteomatics parameters.
var TileLayers = map[string]string{
	"pressure":    "msl_pressure:hPa",
	"temperature": "t_2m:C",
	"fronts":      "surface_fronts",
}

type TileRequest struct {
	Layer string
	Time  string
	Z     int
	X     int
	Y     int
}

type Tile struct {
	ContentType string
	Data        []byte
}

// MeteomaticsTileRepository proxies map tiles so that credentials never reach the browser.
type MeteomaticsTileRepository struct {
	baseURL  string
	username string
	password string
	up       *upstream
	l        *logger.Logger
}

func NewMeteomaticsTileRepository(
	baseURL, username, password string,
	l *logger.Logger,
	httpClient HTTPClient,
	m *metrics.Collector,
) *MeteomaticsTileRepository {
	if baseURL == "" {
		baseURL = MeteomaticsBaseURL
	}
	return &MeteomaticsTileRepository{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		up:       newUpstream("meteomatics-tiles", httpClient, l, m),
		l:        l,
	}
}

func (r *MeteomaticsTileRepository) FetchTile(ctx context.Context, t TileRequest) (Tile, error) {
	param, ok := TileLayers[t.Layer]
	if !ok {
		return Tile{}, fmt.Errorf("%w: %q", ErrUnknownLayer, t.Layer)
	}
	if r.username == "" || r.password == "" {
		return Tile{}, ErrCredentialsNotSet
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.tileURL(param, t), nil)
	if err != nil {
		return Tile{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(r.username, r.password)

	resp, err := r.up.do(req)
	if err != nil {
		return Tile{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return Tile{ContentType: contentType, Data: resp.Body}, nil
}

func (r *MeteomaticsTileRepository) tileURL(param string, t TileRequest) string {
	return fmt.Sprintf("%s/%s/%s/%d/%d/%d/png?model=mix",
		r.baseURL,
		url.PathEscape(t.Time),
		url.PathEscape(param),
		t.Z, t.X, t.Y,
	)
}

// IsUpstreamStatus reports whether err carries an HTTP status from the provider.
func IsUpstreamStatus(err error) (*models.UpstreamError, bool) {
	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0 {
		return upstreamErr, true
	}
	return nil, false
}
