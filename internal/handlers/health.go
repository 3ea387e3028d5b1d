package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nativedelight/internal/logger"
)

// HealthChecker is implemented by backends that can be probed, such as the
// MongoDB catalog.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

func Health(checker HealthChecker, logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		defer handlePanic(c, logg, route)

		if checker != nil {
			if err := checker.Ping(c.Request.Context()); err != nil {
				logg.Error(c.Request.Context(), "catalog backend unreachable", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func Metrics(gatherer prometheus.Gatherer) gin.HandlerFunc {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
