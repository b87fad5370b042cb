package normalizer

import (
	"math"

	"weather-dashboard/internal/models"
)

const dateLength = len("2006-01-02")

type dayBucket struct {
	date    string
	maxTemp *float64
	minTemp *float64
	precip  float64
	codes   map[int]int
}

// AggregateDaily groups the hourly series by the date prefix of each timestamp and returns
// at most limit summaries, in the order the dates first appear. Temperatures and totals are
// rounded to one decimal only once the day is complete.
func AggregateDaily(hourly models.HourlySeries, limit int) []models.DailySummary {
	var buckets []*dayBucket
	byDate := make(map[string]*dayBucket)

	for i, ts := range hourly.Time {
		if len(ts) < dateLength {
			continue
		}
		date := ts[:dateLength]

		b, ok := byDate[date]
		if !ok {
			b = &dayBucket{date: date, codes: make(map[int]int)}
			byDate[date] = b
			buckets = append(buckets, b)
		}

		if t := hourly.At(models.FieldTemperature, i); t != nil {
			if b.maxTemp == nil || *t > *b.maxTemp {
				b.maxTemp = ptr(*t)
			}
			if b.minTemp == nil || *t < *b.minTemp {
				b.minTemp = ptr(*t)
			}
		}

		if p := hourly.At(models.FieldPrecipitation, i); p != nil {
			b.precip += *p
		}

		if c := hourly.At(models.FieldWeatherCode, i); c != nil {
			b.codes[int(math.Round(*c))]++
		}
	}

	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}

	daily := make([]models.DailySummary, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, models.DailySummary{
			Date:        b.date,
			MaxTemp:     roundPtr(b.maxTemp),
			MinTemp:     roundPtr(b.minTemp),
			TotalPrecip: round1(b.precip),
			WeatherCode: modeCode(b.codes),
		})
	}
	return daily
}

// modeCode returns the most frequent code, the smaller code on ties, and 0 when there are none.
func modeCode(counts map[int]int) int {
	mode, best := 0, 0
	for code, n := range counts {
		if n > best || (n == best && code < mode) {
			mode, best = code, n
		}
	}
	return mode
}

