package models

// RawSeriesPoint is a single upstream sample. Value is nil when the provider reported no data.
type RawSeriesPoint struct {
	Timestamp string
	Value     *float64
}

// RawPayload is a forecast response after the provider-specific parse step, grouped by the
// provider's own parameter names.
type RawPayload struct {
	Provider string
	// UTCOffsetSeconds is applied to timestamps that carry no zone of their own.
	UTCOffsetSeconds int
	Series           map[string][]RawSeriesPoint
}

func (p RawPayload) Parameters() []string {
	params := make([]string, 0, len(p.Series))
	for name := range p.Series {
		params = append(params, name)
	}
	return params
}
