package repositories

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"weather-bot/internal/models"
	"weather-bot/pkg/logger"
)

const (
	YandexPogodaURL  = "https://yandex.ru/pogoda/voronezh"
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Yandex.Pogoda markup hooks. The page has no stability contract, so each
// one is looked up on its own and may miss.
const (
	selectorTemperature = "span.temp__value"
	selectorCondition   = "div.link__condition"
	selectorFeelsLike   = "dd.term__value"
	selectorForecastDay = "div.forecast-briefly__day"
	selectorDayPartTime = "span.forecast-briefly__time"
)

// YandexRepository scrapes the current conditions page of Yandex.Pogoda.
type YandexRepository struct {
	URL        string
	UserAgent  string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewYandexRepository(url, userAgent string, l *logger.Logger, httpClient HTTPClient) *YandexRepository {
	if url == "" {
		url = YandexPogodaURL
	}
	if userAgent == "" {
		userAgent = DesktopUserAgent
	}

	return &YandexRepository{
		URL:        url,
		UserAgent:  userAgent,
		httpClient: httpClient,
		l:          l,
	}
}

func (y *YandexRepository) Name() string {
	return "yandex"
}

func (y *YandexRepository) FetchReport(ctx context.Context) (models.WeatherReport, error) {
	y.l.Info("making yandex page request", map[string]any{
		"url": y.URL,
	})

	body, err := fetchPage(ctx, y.httpClient, y.l, y.URL, y.UserAgent)
	if err != nil {
		return models.WeatherReport{}, err
	}

	report, err := parseYandexPage(bytes.NewReader(body))
	if err != nil {
		return models.WeatherReport{}, err
	}

	y.l.Info("parsed yandex page", map[string]any{
		"temperature": report.CurrentTemperature,
		"condition":   report.Condition,
		"dayParts":    len(report.DayParts),
	})

	return report, nil
}

// parseYandexPage extracts what it can; missing pieces stay NotAvailable.
func parseYandexPage(r io.Reader) (models.WeatherReport, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	report := models.NewWeatherReport()
	report.CurrentTemperature = firstText(doc.Selection, selectorTemperature)
	report.Condition = firstText(doc.Selection, selectorCondition)
	report.FeelsLike = firstText(doc.Selection, selectorFeelsLike)

	today := doc.Find(selectorForecastDay).First()
	report.DayParts = models.PairDayParts(
		texts(today.Find(selectorDayPartTime)),
		texts(today.Find(selectorTemperature)),
	)

	return report, nil
}

func firstText(s *goquery.Selection, selector string) string {
	text := s.Find(selector).First().Text()
	if strings.TrimSpace(text) == "" {
		return models.NotAvailable
	}
	return text
}

func texts(s *goquery.Selection) []string {
	return s.Map(func(_ int, el *goquery.Selection) string {
		return el.Text()
	})
}
