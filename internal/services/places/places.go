package places

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

const (
	DefaultCandidateCount = 5
	DefaultTimezone       = "UTC"
)

// Resolver turns a LocationQuery into a single Place.
type Resolver struct {
	geocoder repositories.GeocodingRepository
	count    int
	l        *logger.Logger
}

func NewResolver(geocoder repositories.GeocodingRepository, count int, l *logger.Logger) *Resolver {
	if count <= 0 {
		count = DefaultCandidateCount
	}
	return &Resolver{
		geocoder: geocoder,
		count:    count,
		l:        l,
	}
}

// Resolve passes explicit coordinates through untouched. Otherwise it makes one geocoding
// call and takes the first candidate as returned by the provider.
func (r *Resolver) Resolve(ctx context.Context, q models.LocationQuery) (models.Place, error) {
	if q.HasCoordinates() {
		return models.Place{
			Name:      fmt.Sprintf("%.4f, %.4f", *q.Latitude, *q.Longitude),
			Latitude:  *q.Latitude,
			Longitude: *q.Longitude,
		}, nil
	}

	name := strings.TrimSpace(q.Query)
	if name == "" {
		return models.Place{}, models.ErrMissingLocation
	}

	candidates, err := r.geocoder.Search(ctx, name, r.count)
	if err != nil {
		return models.Place{}, errors.Wrapf(err, "geocode %q", name)
	}
	if len(candidates) == 0 {
		r.l.Info("no geocoding candidates", map[string]any{"query": name})
		return models.Place{}, errors.Wrapf(models.ErrPlaceNotFound, "geocode %q", name)
	}

	place := candidates[0]
	if place.Timezone == "" {
		place.Timezone = DefaultTimezone
	}

	r.l.Debug("resolved place", map[string]any{
		"query":      name,
		"place":      place.Name,
		"country":    place.Country,
		"candidates": len(candidates),
	})

	return place, nil
}
