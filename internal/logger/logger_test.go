package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "earnings-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	Info("reward recorded", "user_id", "spotter-1", "amount", 0.25)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	// Base attributes stamped on every line make multi-service log
	// aggregation filterable.
	assert.Equal(t, "earnings-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])

	assert.Equal(t, "reward recorded", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "spotter-1", entry["user_id"])
	assert.Equal(t, 0.25, entry["amount"])
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestConfigDefaults(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, DefaultServiceName, config.ServiceName)
	assert.NotEmpty(t, config.Level)
	assert.NotEmpty(t, config.Format)
}

func TestProductionConfig(t *testing.T) {
	config := ProductionConfig()

	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "prod", config.Environment)
	assert.False(t, config.AddSource, "source locations stay out of prod logs")
}

func TestDevelopmentConfig(t *testing.T) {
	config := DevelopmentConfig()

	assert.Equal(t, "text", config.Format)
	assert.Equal(t, "debug", config.Level)
	assert.True(t, config.AddSource)
}
