package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands observed by the cache hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})

// PostViews counts successful view-count increments on post reads.
var PostViews = promauto.NewCounter(prometheus.CounterOpts{
	Name: "inkwell_post_views_total",
	Help: "Total number of recorded post views.",
})

// CommentModerations counts moderation decisions by resulting status.
var CommentModerations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_comment_moderations_total",
	Help: "Total number of comment moderation decisions.",
}, []string{"status"})

// InitMetrics creates the HTTP metrics collector for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware records request duration and status metrics for
// every route.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
