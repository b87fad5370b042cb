package models

// View is the canonical view model handed to renderers.
type View struct {
	Place    Place          `json:"place"`
	Provider string         `json:"provider" example:"open-meteo"`
	Hourly   HourlySeries   `json:"hourly"`
	Current  CurrentSample  `json:"current"`
	Daily    []DailySummary `json:"daily"`
}

func NewView(place Place, forecast Forecast) View {
	daily := forecast.Daily
	if daily == nil {
		daily = []DailySummary{}
	}
	return View{
		Place:    place,
		Provider: forecast.Provider,
		Hourly:   forecast.Hourly,
		Current:  forecast.Current,
		Daily:    daily,
	}
}
