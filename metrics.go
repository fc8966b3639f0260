package homepage

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var notesSynced = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "homepage",
	Name:      "notes_synced",
	Help:      "Number of published notes after the last content sync.",
})

// setupMetrics adds request instrumentation and exposes /metrics. Each App
// gets its own registry.
func (a *App) setupMetrics() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		notesSynced,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "homepage",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	a.Echo.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: reg,
	}))
}
