package normalizer

import (
	"time"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp. Timestamps without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NearestIndex returns the index of the timestamp closest to reference, or -1 when no
// timestamp parses. Ties go to the earlier index.
func NearestIndex(times []string, reference time.Time, loc *time.Location) int {
	best := -1
	var bestDiff time.Duration

	for i, s := range times {
		t, ok := ParseTimestamp(s, loc)
		if !ok {
			continue
		}

		diff := t.Sub(reference)
		if diff < 0 {
			diff = -diff
		}

		if best == -1 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	return best
}
