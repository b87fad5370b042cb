package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Weather.APIs = []WeatherAPIConfig{
		{
			Name:    "open-meteo",
			Timeout: 30,
		},
	}
	return cfg
}

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "weather-dashboard", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10, config.Server.ReadTimeout)
	assert.Equal(t, 10, config.Server.WriteTimeout)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, ProviderOpenMeteo, config.Weather.Provider)
	assert.Equal(t, 4, config.Weather.ForecastDays)
	assert.Equal(t, 5, config.Geocoding.Count)

	// Without config file, weather APIs should be empty
	assert.Len(t, config.Weather.APIs, 0)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEATHER_PROVIDER", "meteomatics")
	t.Setenv("METEOMATICS_USERNAME", "user")
	t.Setenv("METEOMATICS_PASSWORD", "secret")
	t.Setenv("GEOCODING_LANGUAGE", "de")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, ProviderMeteomatics, config.Weather.Provider)
	assert.Equal(t, "user", config.Weather.MeteomaticsUsername)
	assert.Equal(t, "secret", config.Weather.MeteomaticsPassword)
	assert.Equal(t, "de", config.Geocoding.Language)
	assert.True(t, config.IsProduction())
}

func TestConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7070\"\nweather:\n  forecast_days: 3\n"), 0o600))

	provider := NewFileConfigProvider(path)
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, 3, config.Weather.ForecastDays)
	// untouched keys keep their defaults
	assert.Equal(t, 10, config.Weather.RequestTimeout)

	t.Setenv("SERVER_PORT", "6060")
	config, err = NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.Equal(t, "6060", config.Server.Port)
}

func TestConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := NewConfigWithProvider(NewFileConfigProvider(path))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("config/config.yaml")

	err := provider.Validate(validConfig())
	assert.NoError(t, err)

	// Test invalid config - missing app name
	invalidConfig := validConfig()
	invalidConfig.App.Name = ""
	err = provider.Validate(invalidConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")

	// meteomatics requires credentials
	noCreds := validConfig()
	noCreds.Weather.Provider = ProviderMeteomatics
	err = provider.Validate(noCreds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "meteomatics credentials not set")

	unknown := validConfig()
	unknown.Weather.Provider = "weatherstack"
	unknown.Log.Level = "loud"
	err = provider.Validate(unknown)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "weatherstack")
	assert.Contains(t, err.Error(), "log.level")

	badFormat := validConfig()
	badFormat.Log.Format = "xml"
	err = provider.Validate(badFormat)
	assert.ErrorContains(t, err, "log.format")

	console := validConfig()
	console.Log.Format = "console"
	assert.NoError(t, provider.Validate(console))

	// openweather requires an api key, from the environment or its apis entry
	noKey := validConfig()
	noKey.Weather.Provider = ProviderOpenWeather
	err = provider.Validate(noKey)
	assert.ErrorContains(t, err, "openweather api key not set")

	keyed := validConfig()
	keyed.Weather.Provider = ProviderOpenWeather
	keyed.Weather.APIs = append(keyed.Weather.APIs, WeatherAPIConfig{Name: ProviderOpenWeather, APIKey: "from-yaml"})
	assert.NoError(t, provider.Validate(keyed))
}

func TestConfigAPIKey(t *testing.T) {
	config := validConfig()
	assert.Empty(t, config.APIKey(ProviderOpenWeather))

	config.Weather.APIs = append(config.Weather.APIs, WeatherAPIConfig{Name: ProviderOpenWeather, APIKey: "from-yaml"})
	assert.Equal(t, "from-yaml", config.APIKey(ProviderOpenWeather))

	config.Weather.OpenWeatherAPIKey = "from-env"
	assert.Equal(t, "from-env", config.APIKey(ProviderOpenWeather))
	assert.Empty(t, config.APIKey(ProviderOpenMeteo))
}

func TestConfigOpenWeatherKeyFromEnvironment(t *testing.T) {
	t.Setenv("WEATHER_PROVIDER", ProviderOpenWeather)
	t.Setenv("OPENWEATHER_API_KEY", "abc123")

	config, err := NewConfigWithProvider(NewFileConfigProvider("nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenWeather, config.Weather.Provider)
	assert.Equal(t, "abc123", config.APIKey(ProviderOpenWeather))
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		App: AppConfig{
			Env: "development",
		},
		Weather: WeatherConfig{
			RequestTimeout: 10,
			APIs: []WeatherAPIConfig{
				{
					Name:    "open-meteo",
					Timeout: 30,
				},
				{
					Name:    "meteomatics",
					BaseURL: "http://localhost:9999",
				},
			},
		},
	}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	api, found := config.GetWeatherAPIByName("open-meteo")
	assert.True(t, found)
	assert.Equal(t, "open-meteo", api.Name)

	api, found = config.GetWeatherAPIByName("nonexistent")
	assert.False(t, found)
	assert.Nil(t, api)

	apis := config.GetWeatherAPIs()
	assert.Len(t, apis, 2)
	assert.Equal(t, "open-meteo", apis[0].Name)
	assert.Equal(t, "meteomatics", apis[1].Name)

	assert.Equal(t, "30s", config.APITimeout("open-meteo").String())
	assert.Equal(t, "10s", config.APITimeout("meteomatics").String())
	assert.Equal(t, "http://localhost:9999", config.APIBaseURL("meteomatics", "fallback"))
	assert.Equal(t, "fallback", config.APIBaseURL("open-meteo", "fallback"))
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: validConfig()}
	mockProvider.config.App.Name = "test-app"

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	_, err = NewConfigWithProvider(&MockConfigProvider{err: os.ErrPermission})
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestConfigFileLoading(t *testing.T) {
	// the test binary runs inside config/, so the shipped file is config.yaml here
	config, err := NewConfigWithProvider(NewFileConfigProvider("config.yaml"))
	require.NoError(t, err)

	require.Len(t, config.Weather.APIs, 3)
	assert.Equal(t, "open-meteo", config.Weather.APIs[0].Name)
	assert.Equal(t, "meteomatics", config.Weather.APIs[1].Name)
	assert.Equal(t, "https://api.meteomatics.com", config.Weather.APIs[1].BaseURL)
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
