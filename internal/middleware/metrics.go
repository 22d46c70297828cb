package middleware

import (
	"sync"

	"inkwell/internal/observability"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics registers the HTTP metrics collectors once per process and
// mounts the /metrics endpoint on app. Both share the default registry with
// the domain counters in observability.
func InitMetrics(app *fiber.App) fiber.Handler {
	promOnce.Do(func() {
		prom = fiberprometheus.NewWithDefaultRegistry(observability.ServiceName)
	})
	prom.RegisterAt(app, "/metrics")
	return prom.Middleware
}
