package observe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/pkg/logger"
)

func newTestHook() (*SentryHook, *[]*sentry.Event) {
	var captured []*sentry.Event
	return &SentryHook{
		appEnv:  "test",
		appName: "weather-dashboard",
		capture: func(e *sentry.Event) { captured = append(captured, e) },
	}, &captured
}

func TestNewSentryHook_RequiresDSN(t *testing.T) {
	_, err := NewSentryHook("test", "weather-dashboard", "", false)
	assert.Error(t, err)
}

func TestSentryHook_ForwardsErrors(t *testing.T) {
	hook, captured := newTestHook()
	l := logger.New(logger.Options{AppName: "weather-dashboard", AppEnv: "test", Level: "debug"}, hook)

	l.Info("not forwarded")
	l.Warning("not forwarded either")
	l.Error(errors.New("geocoding failed"), map[string]any{"query": "Paris"})

	require.Len(t, *captured, 1)
	event := (*captured)[0]
	assert.Equal(t, "geocoding failed", event.Message)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "test", event.Environment)
	assert.Equal(t, "geocoding failed", event.Extra["Error"])
	require.Len(t, event.Exception, 1)
}

func TestSentryHook_IgnoresGarbage(t *testing.T) {
	hook, captured := newTestHook()
	var buf bytes.Buffer
	hook.SetLogger(logger.NewZapLogger("test", &buf))

	n, err := hook.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, *captured)
	assert.Contains(t, buf.String(), "[SentryHook] json.Unmarshal data")
}
