package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Middleware(t *testing.T) {
	c := NewCollector("test")

	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/weather", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/metrics", c.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.APIRequestsTotal.WithLabelValues("/weather", "GET", "404")))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_api_requests_total")
}

func TestCollector_ObserveUpstream(t *testing.T) {
	c := NewCollector("test")

	c.ObserveUpstream("open-meteo", "success", 120*time.Millisecond)
	c.ObserveUpstream("open-meteo", "error", time.Second)
	c.ObserveUpstream("open-meteo", "success", 80*time.Millisecond)
	c.SetBreakerState("open-meteo", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.UpstreamRequestsTotal.WithLabelValues("open-meteo", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamRequestsTotal.WithLabelValues("open-meteo", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("open-meteo")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveUpstream("x", "success", time.Second)
		c.SetBreakerState("x", 1)
		c.RecordError("x", "/")
	})
}
