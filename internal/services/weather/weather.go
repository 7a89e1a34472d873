package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weather-bot/internal/models"
	"weather-bot/internal/repositories"
	"weather-bot/pkg/logger"
	"weather-bot/pkg/metrics"
)

// FallbackText is the only failure a user ever sees.
const FallbackText = "⚠️ Не удалось получить данные о погоде. Попробуйте позже."

// Result is either a report or the fallback text, never both.
type Result struct {
	Report   *models.WeatherReport
	Fallback string
}

func (r Result) OK() bool {
	return r.Report != nil
}

// Text renders the result into a message that can always be sent.
func (r Result) Text() string {
	if !r.OK() {
		return r.Fallback
	}
	return Render(*r.Report)
}

// WeatherService asks each source in turn until one answers.
type WeatherService struct {
	repos   []repositories.WeatherRepository
	l       *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewWeatherService(repos []repositories.WeatherRepository, l *logger.Logger, m *metrics.Metrics) *WeatherService {
	return &WeatherService{
		repos:   repos,
		l:       l,
		metrics: m,
		now:     time.Now,
	}
}

// Fetch never fails; errors are logged and turned into the fallback result.
func (s *WeatherService) Fetch(ctx context.Context) Result {
	for _, repo := range s.repos {
		start := time.Now()
		report, err := repo.FetchReport(ctx)
		s.metrics.ObserveWeatherFetch(repo.Name(), err, time.Since(start))

		if err != nil {
			s.l.Error(errors.Wrapf(err, "fetch weather from %s", repo.Name()), map[string]any{
				"repo": repo.Name(),
			})
			continue
		}

		report.FetchedAt = s.now()

		return Result{Report: &report}
	}

	return Result{Fallback: FallbackText}
}

// FetchWeatherReport returns the message text for the current weather.
func (s *WeatherService) FetchWeatherReport(ctx context.Context) string {
	return s.Fetch(ctx).Text()
}
