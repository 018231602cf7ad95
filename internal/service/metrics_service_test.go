package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceDiscoveryPass(t *testing.T) {
	m := NewMetricsService()
	m.ObserveDiscoveryPass("members", "rating", 10, 4, 1, time.Millisecond)
	m.ObserveDiscoveryPass("members", "rating", 10, 6, 0, time.Millisecond)

	assert.Equal(t, 20.0, testutil.ToFloat64(m.passItems.WithLabelValues("members", "in")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.passItems.WithLabelValues("members", "out")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.passItems.WithLabelValues("members", "skipped")))

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.DiscoveryPasses)
	assert.EqualValues(t, 1, snap.SkippedItems)
}

func TestMetricsServiceCacheRatio(t *testing.T) {
	m := NewMetricsService()
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 1e-9)
	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.CacheHits)
	assert.EqualValues(t, 1, snap.CacheMisses)
}

func TestMetricsServiceHandlerAndNilSafety(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/members", http.StatusOK, 5*time.Millisecond)
	m.RecordExportJob("feed", "FINISHED")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/members",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `export_jobs_total{scope="feed",status="FINISHED"} 1`)

	var nilMetrics *MetricsService
	nilMetrics.ObserveDiscoveryPass("feed", "recent", 1, 1, 0, time.Millisecond)
	nilMetrics.RecordCacheOperation(true, time.Millisecond)
	assert.Equal(t, MetricsSnapshot{}, nilMetrics.Snapshot())
	w = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
