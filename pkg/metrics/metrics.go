package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	UpdatesTotal         *prometheus.CounterVec
	WeatherFetchTotal    *prometheus.CounterVec
	WeatherFetchDuration *prometheus.HistogramVec
}

// New constructs and registers all bot metrics under the given namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		UpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "updates_total",
				Help:      "Total Telegram updates handled",
			},
			[]string{"kind", "trigger"},
		),

		WeatherFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_fetch_total",
				Help:      "Total weather source fetches",
			},
			[]string{"source", "result"},
		),

		WeatherFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "weather_fetch_duration_seconds",
				Help:      "Histogram of weather source fetch latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
	}

	reg.MustRegister(
		m.UpdatesTotal,
		m.WeatherFetchTotal,
		m.WeatherFetchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveUpdate(kind, trigger string) {
	m.UpdatesTotal.WithLabelValues(kind, trigger).Inc()
}

func (m *Metrics) ObserveWeatherFetch(source string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.WeatherFetchTotal.WithLabelValues(source, result).Inc()
	m.WeatherFetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
