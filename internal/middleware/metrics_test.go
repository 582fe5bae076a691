package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/service"
)

func buildMeteredRouter(metricsSvc *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(metricsSvc))
	router.GET("/courses/:course_id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	metricsSvc := service.NewMetricsService()
	router := buildMeteredRouter(metricsSvc)

	w := performRequest(router, http.MethodGet, "/courses/CS101", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The scrape endpoint never feeds its own histograms.
	w = performRequest(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := scrapeMetrics(t, metricsSvc)
	assert.Contains(t, body, `path="/courses/:course_id"`)
	assert.NotContains(t, body, `path="/metrics"`)
}

func TestMetricsNilServiceIsPassThrough(t *testing.T) {
	router := buildMeteredRouter(nil)

	w := performRequest(router, http.MethodGet, "/courses/CS101", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func scrapeMetrics(t *testing.T, metricsSvc *service.MetricsService) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	w := performRequest(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.True(t, strings.Contains(body, "http_request"), "scrape output missing request metrics")
	return body
}
