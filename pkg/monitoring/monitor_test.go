package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	counter := RequestCounter.WithLabelValues("GET", "/ping", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("request counter = %v, want 1", got)
	}
}

func TestCollectorsCarryServiceNamespace(t *testing.T) {
	desc := RequestCounter.WithLabelValues("GET", "/ping", "200").Desc().String()
	if !strings.Contains(desc, "aluminify_http_requests_total") {
		t.Fatalf("counter desc %q does not carry the service namespace", desc)
	}
}
