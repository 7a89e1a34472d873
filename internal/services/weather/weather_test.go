package weather_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-bot/internal/models"
	"weather-bot/internal/repositories"
	"weather-bot/internal/services/weather"
	"weather-bot/pkg/logger"
	"weather-bot/pkg/metrics"
)

// MockRepository implements WeatherRepository for testing
type MockRepository struct {
	name       string
	shouldFail bool
	report     models.WeatherReport
	callCount  int
}

func (m *MockRepository) Name() string {
	return m.name
}

func (m *MockRepository) FetchReport(ctx context.Context) (models.WeatherReport, error) {
	m.callCount++

	if m.shouldFail {
		return models.WeatherReport{}, errors.New("mock repository error")
	}

	return m.report, nil
}

func newTestLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", "test", "debug", io.Discard)
}

var datePattern = regexp.MustCompile(`📅 \d{2}\.\d{2}\.\d{4}\n`)

func TestWeatherService_Fetch_Success(t *testing.T) {
	report := models.NewWeatherReport()
	report.CurrentTemperature = "+14"
	report.Condition = "Ясно"
	report.FeelsLike = "+12"
	report.DayParts = []models.DayPart{{Label: "утром", Temperature: "+9"}}

	repo := &MockRepository{name: "yandex", report: report}
	m := metrics.New("test")
	service := weather.NewWeatherService([]repositories.WeatherRepository{repo}, newTestLogger(), m)

	result := service.Fetch(context.Background())

	require.True(t, result.OK())
	assert.Equal(t, "+14", result.Report.CurrentTemperature)
	assert.False(t, result.Report.FetchedAt.IsZero())

	text := result.Text()
	assert.Regexp(t, datePattern, text)
	assert.Contains(t, text, "🌡 Температура: +14°C\n")
	assert.Contains(t, text, "• утром: +9°C\n")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherFetchTotal.WithLabelValues("yandex", "ok")))
}

func TestResult_OK(t *testing.T) {
	report := models.NewWeatherReport()
	report.Summary = "Воронеж: +1°C"

	ok := weather.Result{Report: &report}
	assert.True(t, ok.OK())
	assert.Equal(t, weather.Render(report), ok.Text())

	failed := weather.Result{Fallback: weather.FallbackText}
	assert.False(t, failed.OK())
	assert.Equal(t, weather.FallbackText, failed.Text())
}

func TestWeatherService_Fetch_AllFailures(t *testing.T) {
	repos := []repositories.WeatherRepository{
		&MockRepository{name: "failure-repo-1", shouldFail: true},
		&MockRepository{name: "failure-repo-2", shouldFail: true},
	}
	m := metrics.New("test")
	service := weather.NewWeatherService(repos, newTestLogger(), m)

	result := service.Fetch(context.Background())

	assert.False(t, result.OK())
	assert.Nil(t, result.Report)
	assert.Equal(t, weather.FallbackText, result.Text())
	assert.Equal(t, 1, repos[0].(*MockRepository).callCount)
	assert.Equal(t, 1, repos[1].(*MockRepository).callCount)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherFetchTotal.WithLabelValues("failure-repo-2", "error")))
}

func TestWeatherService_Fetch_FallbackSource(t *testing.T) {
	secondary := models.NewWeatherReport()
	secondary.Summary = "Воронеж: ☀️ +20°C"

	primary := &MockRepository{name: "yandex", shouldFail: true}
	backup := &MockRepository{name: "wttr", report: secondary}
	service := weather.NewWeatherService(
		[]repositories.WeatherRepository{primary, backup},
		newTestLogger(),
		metrics.New("test"),
	)

	text := service.FetchWeatherReport(context.Background())

	assert.Equal(t, "🌤 **Погода в Воронеже**\n\nВоронеж: ☀️ +20°C", text)
	assert.Equal(t, 1, primary.callCount)
	assert.Equal(t, 1, backup.callCount)
}

func TestWeatherService_Fetch_StopsAtFirstSuccess(t *testing.T) {
	primary := &MockRepository{name: "yandex", report: models.NewWeatherReport()}
	backup := &MockRepository{name: "wttr"}
	service := weather.NewWeatherService(
		[]repositories.WeatherRepository{primary, backup},
		newTestLogger(),
		metrics.New("test"),
	)

	result := service.Fetch(context.Background())

	assert.True(t, result.OK())
	assert.Equal(t, 0, backup.callCount)
}

func TestWeatherService_Fetch_EmptyRepositories(t *testing.T) {
	service := weather.NewWeatherService(nil, newTestLogger(), metrics.New("test"))

	assert.Equal(t, weather.FallbackText, service.FetchWeatherReport(context.Background()))
}

func TestWeatherService_FetchWeatherReport_PageFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			timeout: time.Second,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			timeout: time.Second,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
			timeout: 20 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(tt.handler)
			defer mockServer.Close()

			l := newTestLogger()
			repo := repositories.NewYandexRepository(mockServer.URL, "", l, &http.Client{Timeout: tt.timeout})
			service := weather.NewWeatherService([]repositories.WeatherRepository{repo}, l, metrics.New("test"))

			text := service.FetchWeatherReport(context.Background())

			assert.Equal(t, "⚠️ Не удалось получить данные о погоде. Попробуйте позже.", text)
		})
	}
}

func TestWeatherService_FetchWeatherReport_ChangedPage(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>new design</h1></body></html>`))
	}))
	defer mockServer.Close()

	l := newTestLogger()
	repo := repositories.NewYandexRepository(mockServer.URL, "", l, mockServer.Client())
	service := weather.NewWeatherService([]repositories.WeatherRepository{repo}, l, metrics.New("test"))

	text := service.FetchWeatherReport(context.Background())

	assert.NotEmpty(t, text)
	assert.Contains(t, text, "🌡 Температура: Н/Д°C\n")
	assert.Contains(t, text, "📝 Состояние: Н/Д\n")
	assert.Contains(t, text, "🤔 Ощущается как: Н/Д°C\n")
	assert.NotContains(t, text, "**Прогноз на день:**")
	assert.Contains(t, text, "📊 *Источник: Яндекс.Погода*")
}
