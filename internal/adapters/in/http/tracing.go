package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request, continuing any trace context the
// caller propagated. Without a configured provider the spans are no-ops.
func Tracing(service string) echo.MiddlewareFunc {
	tracer := otel.Tracer(service)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			parent := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			spanCtx, span := tracer.Start(parent, req.Method+" "+ctx.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPMethodKey.String(req.Method),
					semconv.HTTPRouteKey.String(ctx.Path()),
					semconv.HTTPTargetKey.String(req.URL.Path),
					semconv.NetHostNameKey.String(req.Host),
				),
			)
			defer span.End()

			ctx.SetRequest(req.WithContext(spanCtx))

			err := next(ctx)
			if err != nil {
				span.RecordError(err)
			}

			status := ctx.Response().Status
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			return err
		}
	}
}
