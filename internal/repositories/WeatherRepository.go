package repositories

import (
	"context"
	"net/http"

	"weather-bot/config"
	"weather-bot/internal/models"
	"weather-bot/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherRepository interface {
	Name() string
	FetchReport(ctx context.Context) (models.WeatherReport, error)
}

// InitWeatherRepositories returns the sources in the order they should be tried.
func InitWeatherRepositories(cfg *config.Config, l *logger.Logger) []WeatherRepository {
	httpClient := &http.Client{Timeout: cfg.Weather.Timeout}

	repos := []WeatherRepository{
		NewYandexRepository(cfg.Weather.URL, cfg.Weather.UserAgent, l, httpClient),
	}

	if cfg.Weather.FallbackEnabled {
		repos = append(repos, NewWttrRepository(cfg.Weather.FallbackURL, l, httpClient))
	}

	return repos
}
