package httpserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"weather-bot/pkg/metrics"
)

// InitFiberServer builds the operational server: liveness, readiness and
// Prometheus metrics. ready reports whether the bot is polling.
func InitFiberServer(appName string, m *metrics.Metrics, ready func() bool) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
		ReadinessProbe: func(*fiber.Ctx) bool {
			return ready()
		},
	}))

	s.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	return s
}
