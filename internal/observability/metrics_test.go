package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// TestDefaultMetricsConfig verifies the default config values
func TestDefaultMetricsConfig(t *testing.T) {
	cfg := DefaultMetricsConfig()
	assert.NotNil(t, cfg)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "ferro", cfg.ServiceName)
	assert.Equal(t, "/metrics", cfg.PrometheusPath)
}

// TestNewMetricsProvider_Disabled creates a disabled provider
func TestNewMetricsProvider_Disabled(t *testing.T) {
	cfg := &MetricsConfig{
		Enabled:     false,
		ServiceName: "test-service",
	}
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, mp)
}

// TestNewMetricsProvider_Enabled creates an enabled provider
func TestNewMetricsProvider_Enabled(t *testing.T) {
	cfg := DefaultMetricsConfig()
	cfg.ServiceName = "test-metrics-enabled"
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, mp)
	// Shutdown cleanly
	err = mp.Shutdown(context.Background())
	assert.NoError(t, err)
}

// TestMetricsProvider_Handler_Disabled returns NotFoundHandler when disabled
func TestMetricsProvider_Handler_Disabled(t *testing.T) {
	cfg := &MetricsConfig{Enabled: false, ServiceName: "disabled"}
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)

	handler := mp.Handler()
	assert.NotNil(t, handler)

	// Should return 404
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// TestMetricsProvider_Recorders_Nil verifies no panic when disabled
func TestMetricsProvider_Recorders_Nil(t *testing.T) {
	cfg := &MetricsConfig{Enabled: false, ServiceName: "disabled"}
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		mp.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
		mp.RecordResponse(ctx, "/", ResultJSON)
		mp.RecordPartialRender(ctx, "/")
		mp.RecordAssetRefresh(ctx)
	})
}

// TestMetricsProvider_Recorders_Enabled records without error
func TestMetricsProvider_Recorders_Enabled(t *testing.T) {
	cfg := DefaultMetricsConfig()
	cfg.ServiceName = "test-recorders"
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	defer mp.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordHTTPRequest(ctx, "GET", "/users", 200, 25*time.Millisecond)
	mp.RecordResponse(ctx, "/users", ResultHTML)
	mp.RecordResponse(ctx, "/users", ResultConflict)
	mp.RecordPartialRender(ctx, "/users")
	mp.RecordAssetRefresh(ctx)
}

// TestMetricsProvider_Handler_ServesMetrics scrapes the registry
func TestMetricsProvider_Handler_ServesMetrics(t *testing.T) {
	cfg := DefaultMetricsConfig()
	cfg.ServiceName = "test-scrape"
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	defer mp.Shutdown(context.Background())

	mp.RecordResponse(context.Background(), "/", ResultJSON)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	mp.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "inertia_responses_total")
}

// TestMetricsProvider_Meter returns the meter
func TestMetricsProvider_Meter(t *testing.T) {
	cfg := &MetricsConfig{Enabled: false, ServiceName: "meter-test"}
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter())
}

// TestMetricsProvider_Shutdown_Disabled shuts down without a provider
func TestMetricsProvider_Shutdown_Disabled(t *testing.T) {
	cfg := &MetricsConfig{Enabled: false, ServiceName: "shutdown-test"}
	mp, err := NewMetricsProvider(cfg, testLogger())
	require.NoError(t, err)
	assert.NoError(t, mp.Shutdown(context.Background()))
}
