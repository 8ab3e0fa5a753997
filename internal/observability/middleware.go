package observability

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ferrohq/ferro/internal/inertia"
)

// TracingMiddleware returns a Gin middleware for HTTP tracing
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName)
	propagator := otel.GetTextMapPropagator()

	return func(c *gin.Context) {
		// Extract trace context from incoming request
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		// Start span
		spanName := c.FullPath()
		if spanName == "" {
			spanName = c.Request.URL.Path
		}

		view := inertia.View(c.Request)
		ctx, span := tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				AttrHTTPMethod.String(c.Request.Method),
				AttrHTTPURL.String(c.Request.URL.String()),
				AttrHTTPRoute.String(spanName),
				AttrInertiaRequest.Bool(inertia.IsInertia(view)),
			),
		)
		defer span.End()

		// Set context
		c.Request = c.Request.WithContext(ctx)

		// Process request
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// Add response attributes
		statusCode := c.Writer.Status()
		span.SetAttributes(
			AttrHTTPStatusCode.Int(statusCode),
			AttrRenderResult.String(classifyResponse(c)),
			attribute.Int64("http.response_time_ms", duration.Milliseconds()),
		)

		// Set span status based on HTTP status code
		if statusCode >= 400 && statusCode != 409 {
			span.SetStatus(codes.Error, "HTTP error")
		} else {
			span.SetStatus(codes.Ok, "")
		}

		// Record errors
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				span.RecordError(err.Err)
			}
		}
	}
}

// MetricsMiddleware records HTTP and protocol metrics for every request.
func MetricsMiddleware(mp *MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := c.Request.Context()

		mp.RecordHTTPRequest(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
		mp.RecordResponse(ctx, route, classifyResponse(c))

		view := inertia.View(c.Request)
		if _, ok := view.Header(inertia.HeaderPartialData); ok && inertia.IsInertia(view) {
			mp.RecordPartialRender(ctx, route)
		}
	}
}

// classifyResponse maps a finished response onto a render outcome label
// by looking at the status code and the protocol headers the engine set.
func classifyResponse(c *gin.Context) string {
	status := c.Writer.Status()
	h := c.Writer.Header()

	switch {
	case status == 409 && h.Get(inertia.HeaderLocation) != "":
		return ResultConflict
	case status == 302 || status == 303:
		return ResultRedirect
	case status >= 500:
		return ResultError
	case h.Get(inertia.HeaderInertia) == "true":
		return ResultJSON
	case strings.HasPrefix(h.Get(inertia.HeaderContentType), "application/json"):
		return ResultFallback
	default:
		return ResultHTML
	}
}
