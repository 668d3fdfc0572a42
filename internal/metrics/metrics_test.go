package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()
	router := gin.New()
	router.Use(reg.Middleware())
	router.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("GET", "/products/:id", "404")))
}

func TestObserveWorkflow(t *testing.T) {
	reg := NewRegistry()

	reg.ObserveWorkflow(processor.OutcomeProcessed, []processor.Notification{
		{Type: processor.NotificationCustomerEmail},
		{Type: processor.NotificationSalesTeamAlert},
	})
	reg.ObserveWorkflow(processor.OutcomeNotFound, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Workflows.WithLabelValues(processor.OutcomeProcessed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Workflows.WithLabelValues(processor.OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Notifications.WithLabelValues(processor.NotificationSalesTeamAlert)))
}

func TestHandler_Exposes(t *testing.T) {
	reg := NewRegistry()
	reg.ObserveCache("product", true)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `ecommerce_cache_lookups_total{key="product",result="hit"} 1`)
}
