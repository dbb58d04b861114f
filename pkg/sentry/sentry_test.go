package sentry

import (
	"errors"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDSN = "https://public@sentry.example.com/1"

func TestSentry_Builder(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)
	err := errors.New("search backend unavailable")
	extras := map[string]interface{}{"query": "dune"}
	tags := map[string]string{"backend": "tmdb"}
	values := map[string]sentrygo.Context{"session": {"id": "abc"}}

	s := new(Sentry)
	result := s.WithContext(ctx).
		WithError(err).
		WithMessage("search failed").
		WithLevel(sentrygo.LevelWarning).
		WithExtras(extras).
		WithTags(tags).
		WithContextValues(values)

	assert.Same(t, s, result, "builder methods should return the same instance")
	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, "search failed", s.message)
	assert.Equal(t, sentrygo.LevelWarning, s.level)
	assert.Equal(t, extras, s.extras)
	assert.Equal(t, tags, s.tags)
	assert.Equal(t, values, s.contextValues)
}

func TestSentry_Constructors(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)

	assert.Equal(t, ctx, WithContext(ctx).context)
	assert.Equal(t, map[string]interface{}{"k": "v"}, WithExtras(map[string]interface{}{"k": "v"}).extras)
	assert.Equal(t, map[string]string{"env": "test"}, WithTags(map[string]string{"env": "test"}).tags)
}

func TestSentry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		appEnv   string
		dsn      string
		expected bool
	}{
		{name: "local never sends", appEnv: "local", dsn: testDSN, expected: false},
		{name: "missing dsn never sends", appEnv: "production", dsn: "", expected: false},
		{name: "production with dsn sends", appEnv: "production", dsn: testDSN, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)

			assert.Equal(t, tt.expected, enabled())
		})
	}
}

func TestSentry_LevelMethods(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	tests := []struct {
		name     string
		call     func(*Sentry)
		expected sentrygo.Level
	}{
		{name: "Warning", call: func(s *Sentry) { s.Warning("m") }, expected: sentrygo.LevelWarning},
		{name: "Error", call: func(s *Sentry) { s.Error(errors.New("boom")) }, expected: sentrygo.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(Sentry)

			tt.call(s)

			assert.Equal(t, tt.expected, s.level)
		})
	}

	t.Run("Warning sends a message", func(t *testing.T) {
		s := WithExtras(map[string]interface{}{"error": "status 503"})
		s.Warning("cannot load trending movies")
		assert.Equal(t, "cannot load trending movies", s.message)
		assert.Nil(t, s.error)
	})
}

func TestSentry_Fatal(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	original := FlushTime
	FlushTime = 0
	t.Cleanup(func() { FlushTime = original })

	s := WithTags(map[string]string{"backend": "tmdb"})
	s.Fatal(errors.New("cannot start: port in use"))

	assert.Equal(t, sentrygo.LevelFatal, s.level)
	assert.EqualError(t, s.error, "cannot start: port in use")
}

func TestSentry_Sending(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", testDSN)
	require.NoError(t, sentrygo.Init(sentrygo.ClientOptions{Dsn: testDSN}))
	t.Cleanup(func() { sentrygo.Flush(0) })

	assert.NotPanics(t, func() {
		WithTags(map[string]string{"backend": "tmdb"}).
			WithExtras(map[string]interface{}{"query": "dune"}).
			Error(errors.New("search failed"))
		new(Sentry).Warning("slow search backend")
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("uses hub stored on echo context", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := new(Sentry).
		WithLevel(sentrygo.LevelError).
		WithExtras(map[string]interface{}{"query": "up"}).
		WithTags(map[string]string{"env": "test"}).
		WithContextValues(map[string]sentrygo.Context{"session": {"id": "abc"}})

	scope := sentrygo.NewScope()

	assert.NotPanics(t, func() { s.configScope(scope) })
}
