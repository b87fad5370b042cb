package repositories

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	maxErrorBodyLength = 512
	maxResponseBytes   = 8 << 20

	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// callerGoneError marks a call abandoned because the request context ended.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return e.err.Error() }
func (e *callerGoneError) Unwrap() error { return e.err }

type upstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// upstream performs single-shot calls to one provider. Calls go through a circuit breaker
// that fails fast after repeated transport or 5xx failures; nothing is ever retried.
type upstream struct {
	name    string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Collector
	l       *logger.Logger
}

func newUpstream(name string, client HTTPClient, l *logger.Logger, m *metrics.Collector) *upstream {
	if client == nil {
		client = http.DefaultClient
	}

	u := &upstream{
		name:    name,
		client:  client,
		metrics: m,
		l:       l,
	}

	u.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		// a caller that gave up says nothing about the provider's health
		IsSuccessful: func(err error) bool {
			var gone *callerGoneError
			return err == nil || errors.As(err, &gone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			})
			m.SetBreakerState(name, int(to))
		},
	})

	return u
}

// do sends req and returns the full body of a 2xx response. Every failure is a
// *models.UpstreamError.
func (u *upstream) do(req *http.Request) (*upstreamResponse, error) {
	start := time.Now()

	u.l.Debug("sending upstream request", map[string]any{
		"provider": u.name,
		"method":   req.Method,
		"path":     req.URL.Path,
	})

	result, err := u.breaker.Execute(func() (interface{}, error) {
		resp, err := u.client.Do(req)
		if err != nil {
			return nil, u.callError(req, fmt.Errorf("failed to do request: %w", err))
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, u.callError(req, fmt.Errorf("failed to read response body: %w", err))
		}

		out := &upstreamResponse{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}
		// only provider-side failures count against the breaker
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, u.statusError(out)
		}
		return out, nil
	})

	if err != nil {
		var upstreamErr *models.UpstreamError
		var gone *callerGoneError
		outcome := "transport_error"
		switch {
		case errors.As(err, &upstreamErr):
			outcome = "http_error"
		case errors.As(err, &gone):
			outcome = "cancelled"
			upstreamErr = &models.UpstreamError{Provider: u.name, Err: gone.err}
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = "breaker_open"
			upstreamErr = &models.UpstreamError{Provider: u.name, Err: err}
		default:
			upstreamErr = &models.UpstreamError{Provider: u.name, Err: err}
		}
		u.metrics.ObserveUpstream(u.name, outcome, time.Since(start))
		u.l.Warning("upstream request failed", map[string]any{
			"provider": u.name,
			"outcome":  outcome,
			"err":      upstreamErr,
		})
		return nil, upstreamErr
	}

	resp := result.(*upstreamResponse)

	u.l.Info("received upstream response", map[string]any{
		"provider": u.name,
		"status":   resp.StatusCode,
		"bytes":    len(resp.Body),
		"took_ms":  time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		u.metrics.ObserveUpstream(u.name, "http_error", time.Since(start))
		return nil, u.statusError(resp)
	}

	u.metrics.ObserveUpstream(u.name, "success", time.Since(start))
	return resp, nil
}

// callError tags err when the request's own context has ended.
func (u *upstream) callError(req *http.Request, err error) error {
	if req.Context().Err() != nil {
		return &callerGoneError{err: err}
	}
	return err
}

func (u *upstream) statusError(resp *upstreamResponse) *models.UpstreamError {
	body := string(resp.Body)
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength]
	}
	return &models.UpstreamError{
		Provider:   u.name,
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}

// parseError reports a 2xx body that could not be decoded.
func (u *upstream) parseError(resp *upstreamResponse, err error) *models.UpstreamError {
	body := string(resp.Body)
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength]
	}
	return &models.UpstreamError{
		Provider: u.name,
		Body:     body,
		Err:      fmt.Errorf("failed to parse JSON response: %w", err),
	}
}
