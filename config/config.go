package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	App     AppConfig     `yaml:"app"`
	Bot     BotConfig     `yaml:"bot"`
	Weather WeatherConfig `yaml:"weather"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type AppConfig struct {
	Name string `yaml:"name" envconfig:"APP_NAME"`
	Env  string `yaml:"env" envconfig:"APP_ENV"`
}

type BotConfig struct {
	Token       string `yaml:"-" envconfig:"BOT_TOKEN" required:"true"`
	Debug       bool   `yaml:"debug" envconfig:"BOT_DEBUG"`
	PollTimeout int    `yaml:"poll_timeout" envconfig:"BOT_POLL_TIMEOUT"`
}

type WeatherConfig struct {
	URL             string        `yaml:"url" envconfig:"WEATHER_URL"`
	UserAgent       string        `yaml:"user_agent" envconfig:"WEATHER_USER_AGENT"`
	Timeout         time.Duration `yaml:"timeout" envconfig:"WEATHER_TIMEOUT"`
	FallbackEnabled bool          `yaml:"fallback_enabled" envconfig:"WEATHER_FALLBACK_ENABLED"`
	FallbackURL     string        `yaml:"fallback_url" envconfig:"WEATHER_FALLBACK_URL"`
}

type ServerConfig struct {
	Port string `yaml:"port" envconfig:"HTTP_PORT"`
}

type LogConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	SentryDSN string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
}

// NewConfig starts from defaults, loads .env and the YAML file at path when
// present, then applies environment overrides and validates the result.
// Only variables that are set override earlier values.
func NewConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cnf := defaults()

	if err := loadFromFile(path, &cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Name: "weather-bot",
			Env:  "development",
		},
		Bot: BotConfig{
			PollTimeout: 60,
		},
		Weather: WeatherConfig{
			URL:         "https://yandex.ru/pogoda/voronezh",
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:     10 * time.Second,
			FallbackURL: "https://wttr.in/Воронеж?format=3",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func loadFromFile(path string, cnf *Config) error {
	yamlData, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Bot.Token) == "" {
		problems = append(problems, "bot.token is required")
	}
	if c.App.Name == "" {
		problems = append(problems, "app.name is required")
	}
	if c.Weather.URL == "" {
		problems = append(problems, "weather.url is required")
	}
	if c.Weather.Timeout <= 0 {
		problems = append(problems, "weather.timeout must be positive")
	}
	if c.Weather.FallbackEnabled && c.Weather.FallbackURL == "" {
		problems = append(problems, "weather.fallback_url is required when fallback is enabled")
	}
	if c.Bot.PollTimeout < 0 {
		problems = append(problems, "bot.poll_timeout must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
