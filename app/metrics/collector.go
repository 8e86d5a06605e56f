package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests that matched no registered route, keeping
// the route label bounded to the router's own patterns.
const unmatchedRoute = "unknown"

// Collector groups the gateway's Prometheus collectors on a dedicated registry.
type Collector struct {
	PaymentIntents *prometheus.CounterVec
	WebhookEvents  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		PaymentIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_intents_total",
			Help:      "Payment intent creation attempts by result.",
		}, []string{"result"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Processor webhook deliveries by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		registry: registry,
	}
	registry.MustRegister(c.PaymentIntents, c.WebhookEvents, c.HTTPRequests)

	return c
}

func (c *Collector) PaymentIntentCreated(result string) {
	c.PaymentIntents.WithLabelValues(result).Inc()
}

func (c *Collector) WebhookEventHandled(outcome string) {
	c.WebhookEvents.WithLabelValues(outcome).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts requests by method, matched route and final status.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := ctx.Path()
			if route == "" {
				route = unmatchedRoute
			}
			c.HTTPRequests.WithLabelValues(ctx.Request().Method, route, strconv.Itoa(status)).Inc()

			return err
		}
	}
}
