package presenter

import (
	"fmt"
	"math"
	"strconv"
	"time"
	_ "time/tzdata"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/normalizer"
	"weather-dashboard/internal/settings"
)

const MaxChartPoints = 48

// Dashboard is a View rendered with the caller's unit and time format applied.
type Dashboard struct {
	Location      string         `json:"location" example:"Paris, France"`
	Place         models.Place   `json:"place"`
	Provider      string         `json:"provider" example:"open-meteo"`
	Unit          settings.Unit  `json:"unit" example:"C"`
	TimeFormat    int            `json:"time_format" example:"24"`
	Current       *CurrentCard   `json:"current"`
	Forecast      []ForecastCard `json:"forecast"`
	HourlyChart   HourlyChart    `json:"hourly_chart"`
	PressureChart *PressureChart `json:"pressure_chart,omitempty"`
}

// CurrentCard values are nil when the provider had no data for them.
type CurrentCard struct {
	Time          string   `json:"time" example:"15"`
	Temperature   *int     `json:"temperature" example:"21"`
	FeelsLike     *int     `json:"feels_like" example:"20"`
	Description   string   `json:"description" example:"Partly cloudy"`
	Icon          string   `json:"icon" example:"icon-sun"`
	WindSpeed     *int     `json:"wind_speed" example:"4"`
	Precipitation *float64 `json:"precipitation" example:"0.2"`
	Humidity      *int     `json:"humidity" example:"63"`
	Pressure      *int     `json:"pressure" example:"1013"`
}

type ForecastCard struct {
	Date          string  `json:"date" example:"2025-07-25"`
	Day           string  `json:"day" example:"Fri"`
	Description   string  `json:"description" example:"Overcast"`
	Icon          string  `json:"icon" example:"icon-cloud"`
	Max           *int    `json:"max" example:"24"`
	Min           *int    `json:"min" example:"15"`
	Precipitation float64 `json:"precipitation" example:"1.2"`
}

type HourlyChart struct {
	Labels      []string   `json:"labels"`
	Temperature []*float64 `json:"temperature"`
	WindSpeed   []*float64 `json:"wind_speed"`
	Range       string     `json:"range" example:"15 - 14"`
}

type PressureChart struct {
	Labels   []string   `json:"labels"`
	Pressure []*float64 `json:"pressure"`
	Range    string     `json:"range"`
}

func Present(view models.View, s settings.Settings) Dashboard {
	if s.Unit == "" {
		s.Unit = settings.Celsius
	}
	if s.TimeFormat == 0 {
		s.TimeFormat = 24
	}

	p := presenter{s: s, loc: placeLocation(view.Place.Timezone)}

	return Dashboard{
		Location:      locationName(view.Place),
		Place:         view.Place,
		Provider:      view.Provider,
		Unit:          s.Unit,
		TimeFormat:    s.TimeFormat,
		Current:       p.current(view),
		Forecast:      p.forecast(view.Daily),
		HourlyChart:   p.hourly(view.Hourly),
		PressureChart: p.pressure(view.Hourly),
	}
}

type presenter struct {
	s   settings.Settings
	loc *time.Location
}

// placeLocation resolves an IANA zone name, falling back to UTC.
func placeLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (p presenter) current(view models.View) *CurrentCard {
	c := view.Current
	if !c.Available() {
		return nil
	}

	code := 0
	if v := c.Get(models.FieldWeatherCode); v != nil {
		code = int(math.Round(*v))
	}

	card := &CurrentCard{
		Temperature:   p.wholeDegrees(c.Get(models.FieldTemperature)),
		FeelsLike:     p.wholeDegrees(c.Get(models.FieldApparentTemperature)),
		Description:   WeatherLabel(code),
		Icon:          WeatherIcon(code),
		WindSpeed:     whole(c.Get(models.FieldWindSpeed)),
		Precipitation: c.Get(models.FieldPrecipitation),
		Humidity:      whole(c.Get(models.FieldHumidity)),
		Pressure:      whole(c.Get(models.FieldPressure)),
	}
	if c.Time != nil {
		card.Time = p.hourLabel(*c.Time)
	}
	return card
}

func (p presenter) forecast(daily []models.DailySummary) []ForecastCard {
	cards := make([]ForecastCard, 0, len(daily))
	for _, d := range daily {
		cards = append(cards, ForecastCard{
			Date:          d.Date,
			Day:           shortWeekday(d.Date),
			Description:   WeatherLabel(d.WeatherCode),
			Icon:          WeatherIcon(d.WeatherCode),
			Max:           p.wholeDegrees(d.MaxTemp),
			Min:           p.wholeDegrees(d.MinTemp),
			Precipitation: d.TotalPrecip,
		})
	}
	return cards
}

func (p presenter) hourly(h models.HourlySeries) HourlyChart {
	n := min(h.Len(), MaxChartPoints)

	chart := HourlyChart{
		Labels:      p.labels(h.Time[:n]),
		Temperature: make([]*float64, n),
		WindSpeed:   make([]*float64, n),
	}
	for i := 0; i < n; i++ {
		if v := h.At(models.FieldTemperature, i); v != nil {
			chart.Temperature[i] = round1(p.convert(*v))
		}
		if v := h.At(models.FieldWindSpeed, i); v != nil {
			chart.WindSpeed[i] = round1(*v)
		}
	}
	chart.Range = rangeLabel(chart.Labels)
	return chart
}

// pressure is nil when the series has no pressure value at all.
func (p presenter) pressure(h models.HourlySeries) *PressureChart {
	n := min(h.Len(), MaxChartPoints)

	values := make([]*float64, n)
	found := false
	for i := 0; i < n; i++ {
		if v := h.At(models.FieldPressure, i); v != nil {
			values[i] = round1(*v)
			found = true
		}
	}
	if !found {
		return nil
	}

	labels := p.labels(h.Time[:n])
	return &PressureChart{
		Labels:   labels,
		Pressure: values,
		Range:    rangeLabel(labels),
	}
}

func (p presenter) labels(times []string) []string {
	labels := make([]string, len(times))
	for i, ts := range times {
		labels[i] = p.hourLabel(ts)
	}
	return labels
}

// hourLabel renders the hour of ts in the place's zone: "15" or "3 PM". Timestamps without a
// zone are already wall clock. Unparsable timestamps are returned as they are.
func (p presenter) hourLabel(ts string) string {
	t, ok := normalizer.ParseTimestamp(ts, p.loc)
	if !ok {
		return ts
	}
	hour := t.In(p.loc).Hour()
	if !p.s.Uses12Hour() {
		return strconv.Itoa(hour)
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d %s", hour, suffix)
}

func (p presenter) convert(celsius float64) float64 {
	if p.s.Unit == settings.Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

func (p presenter) wholeDegrees(v *float64) *int {
	if v == nil {
		return nil
	}
	d := int(math.Round(p.convert(*v)))
	return &d
}

func locationName(place models.Place) string {
	if place.Country == "" {
		return place.Name
	}
	return place.Name + ", " + place.Country
}

func shortWeekday(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Weekday().String()[:3]
}

func rangeLabel(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return labels[0] + " - " + labels[len(labels)-1]
}

func whole(v *float64) *int {
	if v == nil {
		return nil
	}
	d := int(math.Round(*v))
	return &d
}

func round1(v float64) *float64 {
	r := math.Round(v*10) / 10
	return &r
}
