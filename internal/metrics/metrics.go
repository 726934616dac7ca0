// Package metrics holds the prometheus collectors for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListsArchived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyst_lists_archived_total",
		Help: "Lists archived, partitioned by reason (DELETED or EXPIRED).",
	}, []string{"reason"})

	ForgottenItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyst_forgotten_items_created_total",
		Help: "Incomplete items rescued from expired lists.",
	})

	ForgottenItemsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyst_forgotten_items_recovered_total",
		Help: "Forgotten items consumed, partitioned by outcome (dismissed, reactivated, moved).",
	}, []string{"outcome"})

	SharesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyst_shares_created_total",
		Help: "Share invitations minted.",
	})

	SharesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyst_shares_accepted_total",
		Help: "Share invitations accepted.",
	})

	SharesRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyst_shares_revoked_total",
		Help: "Shares revoked by their owner.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lyst_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Middleware records per-request latency keyed by the matched route
// template rather than the raw path, to keep label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
