package models

import "fmt"

// Forecast is the normalized form of one upstream payload.
type Forecast struct {
	Provider string         `json:"provider" example:"open-meteo"`
	Hourly   HourlySeries   `json:"hourly"`
	Current  CurrentSample  `json:"current"`
	Daily    []DailySummary `json:"daily"`
}

// ForecastRequest describes one outbound forecast call.
type ForecastRequest struct {
	Lat          float64
	Lon          float64
	ForecastDays int
}

func (f ForecastRequest) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f days: %d", f.Lat, f.Lon, f.ForecastDays)
}
