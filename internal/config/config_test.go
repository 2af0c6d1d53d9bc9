package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-assistant/internal/weather"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OpenWeather.BaseURL)
	assert.Equal(t, "metric", cfg.OpenWeather.Units)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.FetchMaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.WatchInterval)
	assert.Equal(t, 50, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.WatchLocations)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
	t.Setenv("OPENAI_API_KEY", "sk-key")
	t.Setenv("OPENWEATHERMAP_UNITS", "imperial")
	t.Setenv("FETCH_MAX_RETRIES", "2")
	t.Setenv("WATCH_LOCATIONS", "Paris,FR; London ;;Tokyo")
	t.Setenv("WATCH_INTERVAL", "30m")
	t.Setenv("PORT", "9090")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "owm-key", cfg.OpenWeather.APIKey)
	assert.Equal(t, "sk-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "imperial", cfg.OpenWeather.Units)
	assert.Equal(t, 2, cfg.FetchMaxRetries)
	assert.Equal(t, LocationList{"Paris,FR", "London", "Tokyo"}, cfg.WatchLocations)
	assert.Equal(t, 30*time.Minute, cfg.WatchInterval)
	assert.Equal(t, "9090", cfg.Port)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad duration":  {"HTTP_TIMEOUT", "soon"},
		"bad units":     {"OPENWEATHERMAP_UNITS", "kelvin"},
		"bad base url":  {"OPENWEATHERMAP_BASE_URL", "not a url"},
		"too many":      {"FETCH_MAX_RETRIES", "50"},
		"short watch":   {"WATCH_INTERVAL", "10s"},
		"non-numeric":   {"PORT", "http"},
		"bad llm url":   {"OPENAI_BASE_URL", "::"},
		"negative keep": {"STORE_MAX_HISTORY", "-1"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLocationList_Decode(t *testing.T) {
	var l LocationList
	require.NoError(t, l.Decode(" ; Lima ;"))
	assert.Equal(t, LocationList{weather.Location("Lima")}, l)
}
