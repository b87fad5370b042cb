package presenter

// weatherLabels covers the WMO codes the providers commonly report. Anything else is "Weather".
var weatherLabels = map[int]string{
	0:  "Clear",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	80: "Showers",
	95: "Thunderstorm",
}

const (
	IconSun   = "icon-sun"
	IconCloud = "icon-cloud"
	IconFog   = "icon-fog"
	IconRain  = "icon-rain"
	IconStorm = "icon-storm"
)

func WeatherLabel(code int) string {
	if label, ok := weatherLabels[code]; ok {
		return label
	}
	return "Weather"
}

func WeatherIcon(code int) string {
	switch {
	case code == 3:
		return IconCloud
	case code >= 45 && code <= 48:
		return IconFog
	case code >= 51 && code <= 57, code >= 61 && code <= 65, code >= 80 && code <= 82:
		return IconRain
	case code >= 95:
		return IconStorm
	default:
		return IconSun
	}
}
