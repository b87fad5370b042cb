package presenter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/normalizer"
	"weather-dashboard/internal/settings"
)

func f(v float64) *float64 {
	return &v
}

func testView(hours int, withPressure bool) models.View {
	times := make([]string, hours)
	for i := range times {
		times[i] = fmt.Sprintf("2025-07-%02dT%02d:00", 25+i/24, i%24)
	}
	hourly := models.NewHourlySeries(times)
	for i := range times {
		hourly.Values[models.FieldTemperature][i] = f(20 + float64(i%3)*0.25)
		hourly.Values[models.FieldWindSpeed][i] = f(3.14)
		hourly.Values[models.FieldWeatherCode][i] = f(61)
		if withPressure {
			hourly.Values[models.FieldPressure][i] = f(1013.26)
		}
	}
	current := models.NoCurrentSample()
	if hours > 15 {
		hourly.Values[models.FieldHumidity][15] = f(62.6)
		current = normalizer.CurrentAt(hourly, 15)
	}

	return models.View{
		Place:    models.Place{Name: "Paris", Country: "France"},
		Provider: "open-meteo",
		Hourly:   hourly,
		Current:  current,
		Daily: []models.DailySummary{
			{Date: "2025-07-25", MaxTemp: f(24.5), MinTemp: f(15.4), TotalPrecip: 1.2, WeatherCode: 3},
			{Date: "2025-07-26", MaxTemp: nil, MinTemp: nil, TotalPrecip: 0, WeatherCode: 0},
		},
	}
}

func TestPresent_Celsius24h(t *testing.T) {
	d := Present(testView(72, true), settings.Default())

	assert.Equal(t, "Paris, France", d.Location)
	assert.Equal(t, settings.Celsius, d.Unit)

	require.NotNil(t, d.Current)
	assert.Equal(t, "15", d.Current.Time)
	assert.Equal(t, 20, *d.Current.Temperature)
	assert.Equal(t, "Slight rain", d.Current.Description)
	assert.Equal(t, IconRain, d.Current.Icon)
	assert.Equal(t, 3, *d.Current.WindSpeed)
	assert.Equal(t, 63, *d.Current.Humidity)
	assert.Equal(t, 1013, *d.Current.Pressure)
	assert.Nil(t, d.Current.Precipitation)

	require.Len(t, d.Forecast, 2)
	assert.Equal(t, "Fri", d.Forecast[0].Day)
	assert.Equal(t, 25, *d.Forecast[0].Max)
	assert.Equal(t, 15, *d.Forecast[0].Min)
	assert.Equal(t, "Overcast", d.Forecast[0].Description)
	assert.Equal(t, IconCloud, d.Forecast[0].Icon)
	assert.Equal(t, 1.2, d.Forecast[0].Precipitation)
	assert.Equal(t, "Sat", d.Forecast[1].Day)
	assert.Nil(t, d.Forecast[1].Max)

	chart := d.HourlyChart
	require.Len(t, chart.Labels, MaxChartPoints)
	require.Len(t, chart.Temperature, MaxChartPoints)
	assert.Equal(t, "0", chart.Labels[0])
	assert.Equal(t, "15", chart.Labels[15])
	assert.InDelta(t, 20.5, *chart.Temperature[2], 1e-9)
	assert.InDelta(t, 3.1, *chart.WindSpeed[0], 1e-9)
	assert.Equal(t, "0 - 23", chart.Range)

	require.NotNil(t, d.PressureChart)
	assert.Len(t, d.PressureChart.Pressure, MaxChartPoints)
	assert.InDelta(t, 1013.3, *d.PressureChart.Pressure[0], 1e-9)
}

func TestPresent_Fahrenheit12h(t *testing.T) {
	d := Present(testView(24, true), settings.Settings{Unit: settings.Fahrenheit, TimeFormat: 12})

	require.NotNil(t, d.Current)
	assert.Equal(t, "3 PM", d.Current.Time)
	assert.Equal(t, 68, *d.Current.Temperature)

	assert.Equal(t, 76, *d.Forecast[0].Max)
	assert.Equal(t, 60, *d.Forecast[0].Min)

	chart := d.HourlyChart
	assert.Equal(t, "12 AM", chart.Labels[0])
	assert.Equal(t, "12 PM", chart.Labels[12])
	assert.InDelta(t, 68.0, *chart.Temperature[0], 1e-9)
	assert.InDelta(t, 68.9, *chart.Temperature[2], 1e-9)
	assert.Equal(t, "12 AM - 11 PM", chart.Range)
}

func TestPresent_NoPressureOmitsChart(t *testing.T) {
	d := Present(testView(30, false), settings.Default())

	assert.Nil(t, d.PressureChart)
	assert.Len(t, d.HourlyChart.Labels, 30)
	require.NotNil(t, d.Current)
	assert.Nil(t, d.Current.Pressure)
}

func TestPresent_NoCurrentSample(t *testing.T) {
	d := Present(testView(0, false), settings.Default())

	assert.Nil(t, d.Current)
	assert.Empty(t, d.HourlyChart.Labels)
	assert.Equal(t, "", d.HourlyChart.Range)
}

func TestWeatherLabelAndIcon(t *testing.T) {
	tests := []struct {
		code  int
		label string
		icon  string
	}{
		{0, "Clear", IconSun},
		{2, "Partly cloudy", IconSun},
		{3, "Overcast", IconCloud},
		{48, "Rime fog", IconFog},
		{57, "Weather", IconRain},
		{81, "Weather", IconRain},
		{95, "Thunderstorm", IconStorm},
		{71, "Weather", IconSun},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, WeatherLabel(tt.code), "label for %d", tt.code)
		assert.Equal(t, tt.icon, WeatherIcon(tt.code), "icon for %d", tt.code)
	}
}

func TestPresent_ZonedTimestampsUsePlaceTimezone(t *testing.T) {
	times := []string{"2024-06-01T10:00:00Z", "2024-06-01T22:00:00Z"}
	hourly := models.NewHourlySeries(times)
	hourly.Values[models.FieldTemperature][0] = f(18)
	hourly.Values[models.FieldTemperature][1] = f(14)

	view := models.View{
		Place:    models.Place{Name: "Berlin", Country: "Germany", Timezone: "Europe/Berlin"},
		Provider: "meteomatics",
		Hourly:   hourly,
		Current:  normalizer.CurrentAt(hourly, 0),
	}

	d := Present(view, settings.Default())
	assert.Equal(t, []string{"12", "0"}, d.HourlyChart.Labels)
	assert.Equal(t, "12", d.Current.Time)

	d = Present(view, settings.Settings{Unit: settings.Celsius, TimeFormat: 12})
	assert.Equal(t, []string{"12 PM", "12 AM"}, d.HourlyChart.Labels)

	// without a known zone the labels stay in UTC
	view.Place.Timezone = "Mars/Olympus"
	d = Present(view, settings.Default())
	assert.Equal(t, []string{"10", "22"}, d.HourlyChart.Labels)

	view.Place.Timezone = ""
	d = Present(view, settings.Default())
	assert.Equal(t, []string{"10", "22"}, d.HourlyChart.Labels)
}

func TestPresent_LocalTimestampsKeepWallClock(t *testing.T) {
	view := testView(24, false)
	view.Place.Timezone = "America/New_York"

	d := Present(view, settings.Default())
	assert.Equal(t, "0", d.HourlyChart.Labels[0])
	assert.Equal(t, "15", d.Current.Time)
}
