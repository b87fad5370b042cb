package models

import (
	"encoding/json"
)

// Field is a canonical forecast parameter.
type Field string

const (
	FieldTemperature         Field = "temperature"
	FieldApparentTemperature Field = "apparent_temperature"
	FieldPressure            Field = "pressure"
	FieldPrecipitation       Field = "precipitation"
	FieldWindSpeed           Field = "windspeed"
	FieldHumidity            Field = "humidity"
	FieldWeatherCode         Field = "weathercode"
)

// CanonicalFields lists every canonical field in output order.
var CanonicalFields = []Field{
	FieldTemperature,
	FieldApparentTemperature,
	FieldPressure,
	FieldPrecipitation,
	FieldWindSpeed,
	FieldHumidity,
	FieldWeatherCode,
}

// HourlySeries holds every canonical field aligned to one time grid. Each field has exactly
// len(Time) entries; nil marks a missing value.
type HourlySeries struct {
	Time   []string
	Values map[Field][]*float64
}

func NewHourlySeries(times []string) HourlySeries {
	s := HourlySeries{
		Time:   times,
		Values: make(map[Field][]*float64, len(CanonicalFields)),
	}
	for _, f := range CanonicalFields {
		s.Values[f] = make([]*float64, len(times))
	}
	return s
}

func (s HourlySeries) Len() int {
	return len(s.Time)
}

// At returns the value of field at index i, or nil when absent.
func (s HourlySeries) At(field Field, i int) *float64 {
	values := s.Values[field]
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func (s HourlySeries) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(CanonicalFields)+1)
	times := s.Time
	if times == nil {
		times = []string{}
	}
	out["time"] = times
	for _, f := range CanonicalFields {
		values := s.Values[f]
		if values == nil {
			values = make([]*float64, len(times))
		}
		out[string(f)] = values
	}
	return json.Marshal(out)
}

// CurrentSample is one slice of the hourly series chosen as "now". Index is -1 when no
// sample was available, in which case Time and every value are nil.
type CurrentSample struct {
	Index  int
	Time   *string
	Values map[Field]*float64
}

func NoCurrentSample() CurrentSample {
	return CurrentSample{
		Index:  -1,
		Values: make(map[Field]*float64, len(CanonicalFields)),
	}
}

func (c CurrentSample) Available() bool {
	return c.Index >= 0
}

func (c CurrentSample) Get(field Field) *float64 {
	return c.Values[field]
}

func (c CurrentSample) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(CanonicalFields)+2)
	out["index"] = c.Index
	out["time"] = c.Time
	for _, f := range CanonicalFields {
		out[string(f)] = c.Values[f]
	}
	return json.Marshal(out)
}

type DailySummary struct {
	Date        string   `json:"date" example:"2025-07-25"`
	MaxTemp     *float64 `json:"max_temp" example:"24.3"`
	MinTemp     *float64 `json:"min_temp" example:"15.1"`
	TotalPrecip float64  `json:"total_precip" example:"1.2"`
	WeatherCode int      `json:"representative_weather_code" example:"3"`
}
