package repositories

import (
	"context"
	"errors"
	"strings"

	"weather-bot/internal/models"
	"weather-bot/pkg/logger"
)

const WttrBaseURL = "https://wttr.in/Воронеж?format=3"

// WttrRepository reads the one-line plain-text report of wttr.in.
type WttrRepository struct {
	URL        string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewWttrRepository(url string, l *logger.Logger, httpClient HTTPClient) *WttrRepository {
	if url == "" {
		url = WttrBaseURL
	}

	return &WttrRepository{
		URL:        url,
		httpClient: httpClient,
		l:          l,
	}
}

func (w *WttrRepository) Name() string {
	return "wttr"
}

func (w *WttrRepository) FetchReport(ctx context.Context) (models.WeatherReport, error) {
	w.l.Info("making wttr request", map[string]any{
		"url": w.URL,
	})

	body, err := fetchPage(ctx, w.httpClient, w.l, w.URL, "")
	if err != nil {
		return models.WeatherReport{}, err
	}

	summary := strings.TrimSpace(string(body))
	if summary == "" {
		return models.WeatherReport{}, errors.New("empty wttr response")
	}

	report := models.NewWeatherReport()
	report.Summary = summary

	return report, nil
}
