package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nocturne_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ViewsCounted counts view increments that actually hit the stored counter,
	// as opposed to requests deduplicated by the rolling window.
	ViewsCounted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nocturne_views_counted_total",
		Help: "View increments applied vs deduplicated",
	}, []string{"outcome"})

	// TagVotesRejected counts tag votes rejected by the per-user budget.
	TagVotesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nocturne_tag_votes_rejected_total",
		Help: "Tag votes rejected because the vote budget was exhausted",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
