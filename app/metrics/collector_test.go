package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector("gateway", prometheus.NewRegistry())

	c.PaymentIntentCreated("success")
	c.PaymentIntentCreated("success")
	c.WebhookEventHandled("ignored")

	if got := testutil.ToFloat64(c.PaymentIntents.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected 2 successful intents, got %v", got)
	}
	if got := testutil.ToFloat64(c.WebhookEvents.WithLabelValues("ignored")); got != 1 {
		t.Fatalf("expected 1 ignored webhook, got %v", got)
	}
}

func TestCollectorMiddlewareRecordsRouteAndStatus(t *testing.T) {
	c := NewCollector("gateway", prometheus.NewRegistry())
	e := echo.New()
	e.Use(c.Middleware())
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	if got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "/health", "204")); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestCollectorMiddlewareRecordsHTTPErrors(t *testing.T) {
	c := NewCollector("gateway", prometheus.NewRegistry())
	e := echo.New()
	e.Use(c.Middleware())
	e.GET("/boom", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "/boom", "418")); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("gateway", prometheus.NewRegistry())
	c.PaymentIntentCreated("upstream_error")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `gateway_payment_intents_total{result="upstream_error"} 1`) {
		t.Fatalf("expected payment intent counter in exposition, got %s", rec.Body.String())
	}
}

func TestCollectorMiddlewareCollapsesUnmatchedRoutes(t *testing.T) {
	c := NewCollector("gateway", prometheus.NewRegistry())
	e := echo.New()
	e.Use(c.Middleware())
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusNoContent)
	})

	for _, path := range []string{"/nope1", "/nope2", "/wp-admin/setup.php"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}

	if got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")); got != 3 {
		t.Fatalf("expected 3 requests under the unmatched label, got %v", got)
	}
	if got := testutil.CollectAndCount(c.HTTPRequests); got != 1 {
		t.Fatalf("expected a single series for unmatched paths, got %d", got)
	}
}
