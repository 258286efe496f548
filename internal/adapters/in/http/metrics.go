package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the request and matching collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	matchesFound    prometheus.Histogram
	matchSearches   *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freight_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "freight_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		matchesFound: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "freight_matches_found",
				Help:    "Number of vehicles returned by a match search",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		matchSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freight_match_searches_total",
				Help: "Total number of match searches by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveMatches records the size of one match result.
func (m *Metrics) ObserveMatches(n int) {
	if m == nil {
		return
	}
	outcome := "matched"
	if n == 0 {
		outcome = "empty"
	}
	m.matchSearches.WithLabelValues(outcome).Inc()
	m.matchesFound.Observe(float64(n))
}

// Middleware counts requests by route template so path ids do not explode
// label cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				status = statusOf(err)
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
