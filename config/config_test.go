package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	config, err := NewConfig("nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, "123:abc", config.Bot.Token)
	assert.Equal(t, "weather-bot", config.App.Name)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, 60, config.Bot.PollTimeout)
	assert.Equal(t, "https://yandex.ru/pogoda/voronezh", config.Weather.URL)
	assert.Equal(t, 10*time.Second, config.Weather.Timeout)
	assert.False(t, config.Weather.FallbackEnabled)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, "info", config.Log.Level)
	assert.Empty(t, config.Log.SentryDSN)
}

func TestNewConfig_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	os.Unsetenv("BOT_TOKEN")

	config, err := NewConfig("nonexistent.yaml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("WEATHER_FALLBACK_ENABLED", "true")

	config, err := NewConfig("nonexistent.yaml")
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, 3*time.Second, config.Weather.Timeout)
	assert.True(t, config.Weather.FallbackEnabled)
}

func TestNewConfig_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: file-bot
weather:
  timeout: 5s
  url: http://example.test/pogoda
log:
  level: warn
`), 0o600))

	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("LOG_LEVEL", "error")

	config, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file-bot", config.App.Name)
	assert.Equal(t, 5*time.Second, config.Weather.Timeout)
	assert.Equal(t, "http://example.test/pogoda", config.Weather.URL)
	assert.Equal(t, "error", config.Log.Level)
	// untouched by the file
	assert.Equal(t, "8080", config.Server.Port)
}

func TestNewConfig_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))
	t.Setenv("BOT_TOKEN", "123:abc")

	_, err := NewConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestConfigValidation(t *testing.T) {
	valid := defaults()
	valid.Bot.Token = "123:abc"
	assert.NoError(t, valid.Validate())

	invalid := defaults()
	invalid.Bot.Token = "  "
	invalid.App.Name = ""
	invalid.Weather.Timeout = 0
	invalid.Weather.FallbackEnabled = true
	invalid.Weather.FallbackURL = ""

	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot.token is required")
	assert.Contains(t, err.Error(), "app.name is required")
	assert.Contains(t, err.Error(), "weather.timeout must be positive")
	assert.Contains(t, err.Error(), "weather.fallback_url is required")
}

func TestConfigFileLoading(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	config, err := NewConfig("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "weather-bot", config.App.Name)
	assert.Equal(t, 10*time.Second, config.Weather.Timeout)
	assert.Equal(t, "https://wttr.in/Воронеж?format=3", config.Weather.FallbackURL)
}
