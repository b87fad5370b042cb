package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

// Provider names understood by the repositories.
const (
	ProviderOpenMeteo   = "open-meteo"
	ProviderMeteomatics = "meteomatics"
	ProviderOpenWeather = "openweather"
)

// Config is assembled from code defaults, the YAML file, a .env file and the environment,
// in that order of increasing precedence.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Weather   WeatherConfig   `yaml:"weather"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Tiles     TilesConfig     `yaml:"tiles"`
	Settings  SettingsConfig  `yaml:"settings"`
	Sentry    SentryConfig    `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

type WeatherConfig struct {
	// Provider selects the forecast API by name from APIs.
	Provider       string             `yaml:"provider" split_words:"true"`
	ForecastDays   int                `yaml:"forecast_days" split_words:"true"`
	RequestTimeout int                `yaml:"request_timeout" split_words:"true"`
	APIs           []WeatherAPIConfig `yaml:"apis" ignored:"true"`

	MeteomaticsUsername string `yaml:"-" envconfig:"METEOMATICS_USERNAME"`
	MeteomaticsPassword string `yaml:"-" envconfig:"METEOMATICS_PASSWORD"`
	OpenWeatherAPIKey   string `yaml:"-" envconfig:"OPENWEATHER_API_KEY"`
}

type WeatherAPIConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	// Timeout is in seconds.
	Timeout int `yaml:"timeout"`
}

type GeocodingConfig struct {
	BaseURL  string `yaml:"base_url" split_words:"true"`
	Count    int    `yaml:"count" split_words:"true"`
	Language string `yaml:"language" split_words:"true"`
}

type TilesConfig struct {
	BaseURL string `yaml:"base_url" split_words:"true"`
	// CacheMaxAge is the max-age in seconds sent to browsers with each tile.
	CacheMaxAge int `yaml:"cache_max_age" split_words:"true"`
}

type SettingsConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: ".env"}
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cfg, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := provider.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cfg := defaultConfig()

	if err := p.loadFromFile(cfg); err != nil {
		return nil, err
	}

	// .env values never override variables already present in the environment
	if err := godotenv.Load(p.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", p.envFile, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file on cfg. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(cfg *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var problems []string

	if strings.TrimSpace(config.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if config.Server.ReadTimeout <= 0 || config.Server.WriteTimeout <= 0 || config.Server.IdleTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", config.Log.Level))
	}
	switch config.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of json, console", config.Log.Format))
	}
	for _, api := range config.Weather.APIs {
		if strings.TrimSpace(api.Name) == "" {
			problems = append(problems, "weather.apis[].name is required")
		}
		if api.Timeout < 0 {
			problems = append(problems, fmt.Sprintf("weather.apis[%s].timeout must not be negative", api.Name))
		}
	}
	switch config.Weather.Provider {
	case ProviderOpenMeteo:
	case ProviderMeteomatics:
		if config.Weather.MeteomaticsUsername == "" || config.Weather.MeteomaticsPassword == "" {
			problems = append(problems, "meteomatics credentials not set")
		}
	case ProviderOpenWeather:
		if config.APIKey(ProviderOpenWeather) == "" {
			problems = append(problems, "openweather api key not set")
		}
	default:
		problems = append(problems, fmt.Sprintf("weather.provider %q is not supported", config.Weather.Provider))
	}
	if config.Weather.ForecastDays < 1 || config.Weather.ForecastDays > 16 {
		problems = append(problems, "weather.forecast_days must be between 1 and 16")
	}
	if config.Weather.RequestTimeout <= 0 {
		problems = append(problems, "weather.request_timeout must be positive")
	}
	if config.Geocoding.Count <= 0 {
		problems = append(problems, "geocoding.count must be positive")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Weather: WeatherConfig{
			Provider:       ProviderOpenMeteo,
			ForecastDays:   4,
			RequestTimeout: 10,
		},
		Geocoding: GeocodingConfig{
			BaseURL:  "https://geocoding-api.open-meteo.com/v1/search",
			Count:    5,
			Language: "en",
		},
		Tiles: TilesConfig{
			BaseURL:     "https://api.meteomatics.com",
			CacheMaxAge: 300,
		},
		Settings: SettingsConfig{
			Path: "data/settings.yaml",
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) GetWeatherAPIByName(name string) (*WeatherAPIConfig, bool) {
	for i := range c.Weather.APIs {
		if c.Weather.APIs[i].Name == name {
			return &c.Weather.APIs[i], true
		}
	}
	return nil, false
}

func (c *Config) GetWeatherAPIs() []WeatherAPIConfig {
	return c.Weather.APIs
}

// RequestTimeout bounds one end-to-end forecast lookup.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Weather.RequestTimeout) * time.Second
}

// APITimeout returns the per-call timeout of the named API, falling back to the request timeout.
func (c *Config) APITimeout(name string) time.Duration {
	if api, ok := c.GetWeatherAPIByName(name); ok && api.Timeout > 0 {
		return time.Duration(api.Timeout) * time.Second
	}
	return c.RequestTimeout()
}

// APIKey returns the key of the named API. OPENWEATHER_API_KEY takes precedence over the
// api_key of the openweather entry.
func (c *Config) APIKey(name string) string {
	if name == ProviderOpenWeather && c.Weather.OpenWeatherAPIKey != "" {
		return c.Weather.OpenWeatherAPIKey
	}
	if api, ok := c.GetWeatherAPIByName(name); ok {
		return api.APIKey
	}
	return ""
}

// APIBaseURL returns the configured base URL of the named API, or fallback.
func (c *Config) APIBaseURL(name, fallback string) string {
	if api, ok := c.GetWeatherAPIByName(name); ok && api.BaseURL != "" {
		return api.BaseURL
	}
	return fallback
}
