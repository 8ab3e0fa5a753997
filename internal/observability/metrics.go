package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Render outcome labels recorded on inertia_responses_total.
const (
	ResultJSON     = "json"
	ResultHTML     = "html"
	ResultFallback = "fallback"
	ResultConflict = "conflict"
	ResultRedirect = "redirect"
	ResultError    = "error"
)

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	PrometheusPath string `mapstructure:"prometheus_path"`
}

// DefaultMetricsConfig returns default metrics configuration
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled:        true,
		ServiceName:    "ferro",
		PrometheusPath: "/metrics",
	}
}

// MetricsProvider manages OpenTelemetry metrics
type MetricsProvider struct {
	config        *MetricsConfig
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	logger        *zap.Logger
	registry      *prometheus.Registry
	handler       http.Handler

	// Common metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	inertiaResponses    metric.Int64Counter
	versionConflicts    metric.Int64Counter
	partialRenders      metric.Int64Counter
	assetVersionRefresh metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(config *MetricsConfig, logger *zap.Logger) (*MetricsProvider, error) {
	if !config.Enabled {
		return &MetricsProvider{
			config: config,
			meter:  otel.Meter(config.ServiceName),
			logger: logger,
		}, nil
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Create Prometheus exporter with the registry
	exporter, err := otelprometheus.New(
		otelprometheus.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(config.ServiceName)

	mp := &MetricsProvider{
		config:        config,
		meterProvider: meterProvider,
		meter:         meter,
		logger:        logger,
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	// Initialize common metrics
	if err := mp.initMetrics(); err != nil {
		return nil, err
	}

	logger.Info("OpenTelemetry metrics initialized",
		zap.String("service", config.ServiceName),
		zap.String("prometheus_path", config.PrometheusPath),
	)

	return mp, nil
}

// initMetrics initializes common metrics
func (mp *MetricsProvider) initMetrics() error {
	var err error

	// HTTP metrics
	mp.httpRequestsTotal, err = mp.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return err
	}

	mp.httpRequestDuration, err = mp.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	// Protocol metrics
	mp.inertiaResponses, err = mp.meter.Int64Counter(
		"inertia_responses_total",
		metric.WithDescription("Total Inertia responses by outcome"),
	)
	if err != nil {
		return err
	}

	mp.versionConflicts, err = mp.meter.Int64Counter(
		"inertia_version_conflicts_total",
		metric.WithDescription("Total 409 responses caused by a stale asset version"),
	)
	if err != nil {
		return err
	}

	mp.partialRenders, err = mp.meter.Int64Counter(
		"inertia_partial_renders_total",
		metric.WithDescription("Total partial reload renders"),
	)
	if err != nil {
		return err
	}

	mp.assetVersionRefresh, err = mp.meter.Int64Counter(
		"asset_version_refreshes_total",
		metric.WithDescription("Total asset manifest re-hashes"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordHTTPRequest records an HTTP request metric
func (mp *MetricsProvider) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if mp.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(path),
		AttrHTTPStatusCode.Int(statusCode),
	)

	mp.httpRequestsTotal.Add(ctx, 1, attrs)
	mp.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordResponse records the outcome of a protocol response.
func (mp *MetricsProvider) RecordResponse(ctx context.Context, route, result string) {
	if mp.inertiaResponses == nil {
		return
	}

	mp.inertiaResponses.Add(ctx, 1, metric.WithAttributes(
		AttrHTTPRoute.String(route),
		AttrRenderResult.String(result),
	))
	if result == ResultConflict {
		mp.versionConflicts.Add(ctx, 1)
	}
}

// RecordPartialRender counts a partial reload render.
func (mp *MetricsProvider) RecordPartialRender(ctx context.Context, route string) {
	if mp.partialRenders == nil {
		return
	}
	mp.partialRenders.Add(ctx, 1, metric.WithAttributes(
		AttrHTTPRoute.String(route),
	))
}

// RecordAssetRefresh counts an asset version re-hash.
func (mp *MetricsProvider) RecordAssetRefresh(ctx context.Context) {
	if mp.assetVersionRefresh == nil {
		return
	}
	mp.assetVersionRefresh.Add(ctx, 1)
}

// Handler returns an HTTP handler for Prometheus metrics
func (mp *MetricsProvider) Handler() http.Handler {
	if mp.handler != nil {
		return mp.handler
	}
	return http.NotFoundHandler()
}

// Meter returns the meter for creating custom metrics
func (mp *MetricsProvider) Meter() metric.Meter {
	return mp.meter
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}
