package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	updateInterval = 20
	port = 8000
	coins = ""
	metricsPath = "/metrics"
	apiBaseURL = ""
}

func TestOverrideFromEnv(t *testing.T) {
	resetFlags()

	t.Setenv("UPDATE_INTERVAL", "45")
	t.Setenv("EXPORTER_PORT", "9100")
	t.Setenv("COINS", "bitcoin,solana")
	t.Setenv("METRICS_PATH", "/prom")
	t.Setenv("COINGECKO_URL", "http://localhost:9999/api/v3")

	require.NoError(t, overrideFromEnv())

	assert.Equal(t, 45, updateInterval)
	assert.Equal(t, 9100, port)
	assert.Equal(t, "bitcoin,solana", coins)
	assert.Equal(t, "/prom", metricsPath)
	assert.Equal(t, "http://localhost:9999/api/v3", apiBaseURL)
}

func TestOverrideFromEnv_InvalidInterval(t *testing.T) {
	resetFlags()
	t.Setenv("UPDATE_INTERVAL", "twenty")

	assert.Error(t, overrideFromEnv())
}

func TestOverrideFromEnv_InvalidPort(t *testing.T) {
	resetFlags()
	t.Setenv("EXPORTER_PORT", "http")

	assert.Error(t, overrideFromEnv())
}

func TestOverrideFromEnv_EmptyEnvKeepsFlags(t *testing.T) {
	resetFlags()

	require.NoError(t, overrideFromEnv())

	assert.Equal(t, 20, updateInterval)
	assert.Equal(t, 8000, port)
	assert.Equal(t, "", coins)
}
