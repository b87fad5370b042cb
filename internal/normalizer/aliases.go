package normalizer

import "weather-dashboard/internal/models"

// AliasTable maps upstream parameter names to canonical fields. Supporting another provider
// means adding its parameter names here.
type AliasTable map[string]models.Field

// DefaultAliases covers the Open-Meteo hourly parameters, the Meteomatics parameter
// identifiers and the OpenWeatherMap series requested by the repositories.
var DefaultAliases = AliasTable{
	// open-meteo
	"temperature_2m":       models.FieldTemperature,
	"apparent_temperature": models.FieldApparentTemperature,
	"pressure_msl":         models.FieldPressure,
	"precipitation":        models.FieldPrecipitation,
	"windspeed_10m":        models.FieldWindSpeed,
	"wind_speed_10m":       models.FieldWindSpeed,
	"relativehumidity_2m":  models.FieldHumidity,
	"relative_humidity_2m": models.FieldHumidity,
	"weathercode":          models.FieldWeatherCode,
	"weather_code":         models.FieldWeatherCode,

	// meteomatics
	"t_2m:C":                 models.FieldTemperature,
	"t_apparent:C":           models.FieldApparentTemperature,
	"msl_pressure:hPa":       models.FieldPressure,
	"precip_1h:mm":           models.FieldPrecipitation,
	"wind_speed_10m:ms":      models.FieldWindSpeed,
	"relative_humidity_2m:p": models.FieldHumidity,

	// openweathermap, flattened from the forecast list entries
	"main.temp":       models.FieldTemperature,
	"main.feels_like": models.FieldApparentTemperature,
	"main.pressure":   models.FieldPressure,
	"main.humidity":   models.FieldHumidity,
	"wind.speed":      models.FieldWindSpeed,
	"rain.3h":         models.FieldPrecipitation,
	"weather.code":    models.FieldWeatherCode,
}

