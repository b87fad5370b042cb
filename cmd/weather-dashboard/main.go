package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/config"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/normalizer"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/places"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/internal/settings"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0
// @description Resolves places, fetches hourly forecasts from Open-Meteo, Meteomatics or OpenWeatherMap and serves them normalized or rendered for the dashboard.

// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Forecast lookups and the rendered dashboard
// @tag.name Places
// @tag.name Settings
// @tag.name Tiles
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook, err = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		if err != nil {
			log.Fatalf("cannot init sentry: %v", err)
		}
		writers = append(writers, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	collector := metrics.NewCollector("weather_dashboard")

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
		StackTrace:   !cnf.IsProduction(),
	})

	repos, err := repositories.InitRepositories(cnf, l, collector)
	if err != nil {
		l.Fatal("cannot init repositories", map[string]any{"err": err})
	}

	resolver := places.NewResolver(repos.Geocoding, cnf.Geocoding.Count, l)

	service := weather.NewWeatherService(
		resolver,
		repos.Forecast,
		normalizer.New(normalizer.DefaultAliases),
		weather.Options{
			ForecastDays: cnf.Weather.ForecastDays,
			Timeout:      cnf.RequestTimeout(),
		},
		l,
	)

	v1.NewRouter(
		app,
		v1.Dependencies{
			Weather:    service,
			Places:     resolver,
			Tiles:      repos.Tiles,
			Settings:   settings.NewFileStore(cnf.Settings.Path),
			Metrics:    collector,
			TileMaxAge: cnf.Tiles.CacheMaxAge,
		},
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"provider": repos.Forecast.Name(),
		"env":      cnf.App.Env,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
