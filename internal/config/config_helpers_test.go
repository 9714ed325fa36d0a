package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{name: "unset falls back to default", want: 42},
		{name: "valid integer", value: "100", set: true, want: 100},
		{name: "negative integer", value: "-10", set: true, want: -10},
		{name: "garbage falls back to default", value: "not-a-number", set: true, want: 42},
		{name: "float falls back to default", value: "42.5", set: true, want: 42},
		{name: "empty falls back to default", value: "", set: true, want: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_INT_VAR", tt.value)
			} else {
				os.Unsetenv("TEST_INT_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	fallback := 5 * time.Minute
	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{name: "unset falls back to default", want: fallback},
		{name: "minutes", value: "10m", set: true, want: 10 * time.Minute},
		{name: "compound duration", value: "1h30m45s", set: true, want: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "garbage falls back to default", value: "not-a-duration", set: true, want: fallback},
		{name: "bare number has no unit", value: "100", set: true, want: fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_DURATION_VAR", tt.value)
			} else {
				os.Unsetenv("TEST_DURATION_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", fallback))
		})
	}
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("custom pool sizing", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		// A typo in a deploy manifest must not take the pool down.
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "bad-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})
}
