package normalizer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"weather-dashboard/internal/models"
)

// DailyHorizon is the number of daily summaries kept in a forecast.
const DailyHorizon = 4

// Normalizer turns provider payloads into the canonical forecast. It holds no mutable state
// and is safe for concurrent use.
type Normalizer struct {
	aliases AliasTable
	horizon int
}

func New(aliases AliasTable) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Normalizer{
		aliases: aliases,
		horizon: DailyHorizon,
	}
}

// Normalize aligns every recognized parameter to the temperature time grid, picks the sample
// nearest to reference and builds the daily summaries. The only error it returns is
// models.ErrIncompleteUpstreamData, when the payload has no temperature series.
func (n *Normalizer) Normalize(payload models.RawPayload, reference time.Time) (models.Forecast, error) {
	series := n.extract(payload)

	anchor, ok := series[models.FieldTemperature]
	if !ok {
		return models.Forecast{}, fmt.Errorf("%w: %s payload has no temperature series",
			models.ErrIncompleteUpstreamData, payload.Provider)
	}

	times := make([]string, len(anchor))
	for i, p := range anchor {
		times[i] = p.Timestamp
	}

	hourly := models.NewHourlySeries(times)
	for _, field := range models.CanonicalFields {
		points := series[field]
		column := hourly.Values[field]
		// mapped by index; a short series leaves a nil tail, a long one is cut to the grid
		for i := range column {
			if i >= len(points) || points[i].Value == nil {
				continue
			}
			column[i] = ptr(*points[i].Value)
		}
	}

	// daily totals are summed from the raw values; rounding happens afterwards
	daily := AggregateDaily(hourly, n.horizon)
	roundSeries(hourly)

	loc := time.FixedZone("", payload.UTCOffsetSeconds)

	return models.Forecast{
		Provider: payload.Provider,
		Hourly:   hourly,
		Current:  CurrentAt(hourly, NearestIndex(hourly.Time, reference, loc)),
		Daily:    daily,
	}, nil
}

func roundSeries(hourly models.HourlySeries) {
	for _, column := range hourly.Values {
		for i, v := range column {
			if v != nil {
				column[i] = ptr(round1(*v))
			}
		}
	}
}

// extract picks one raw series per canonical field. Parameter names are visited in sorted
// order so that the lexically first alias wins when a payload carries two.
func (n *Normalizer) extract(payload models.RawPayload) map[models.Field][]models.RawSeriesPoint {
	names := payload.Parameters()
	sort.Strings(names)

	out := make(map[models.Field][]models.RawSeriesPoint, len(models.CanonicalFields))
	for _, name := range names {
		field, ok := n.aliases[name]
		if !ok {
			continue
		}
		if _, taken := out[field]; taken {
			continue
		}
		out[field] = payload.Series[name]
	}
	return out
}

// CurrentAt slices hourly at index. A negative or out of range index yields an empty sample.
func CurrentAt(hourly models.HourlySeries, index int) models.CurrentSample {
	if index < 0 || index >= hourly.Len() {
		return models.NoCurrentSample()
	}

	ts := hourly.Time[index]
	current := models.CurrentSample{
		Index:  index,
		Time:   &ts,
		Values: make(map[models.Field]*float64, len(models.CanonicalFields)),
	}
	for _, f := range models.CanonicalFields {
		current.Values[f] = hourly.At(f, index)
	}
	return current
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(round1(*v))
}

func ptr(v float64) *float64 {
	return &v
}
