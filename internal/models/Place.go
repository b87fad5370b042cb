package models

import "fmt"

type Place struct {
	Name      string  `json:"name" example:"Paris"`
	Country   string  `json:"country" example:"France"`
	Latitude  float64 `json:"latitude" example:"48.8534"`
	Longitude float64 `json:"longitude" example:"2.3488"`
	Timezone  string  `json:"timezone,omitempty" example:"Europe/Paris"`
}

// LocationQuery is the caller's location input: either a free-text query or explicit coordinates.
type LocationQuery struct {
	Query     string
	Latitude  *float64
	Longitude *float64
}

func (q LocationQuery) HasCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

func (q LocationQuery) String() string {
	if q.HasCoordinates() {
		return fmt.Sprintf("lat: %.4f lon: %.4f", *q.Latitude, *q.Longitude)
	}
	return fmt.Sprintf("query: %q", q.Query)
}
