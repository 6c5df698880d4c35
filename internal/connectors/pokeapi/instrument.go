package pokeapi

import (
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/pokeelt/internal/logger"
)

// TracerName is the instrumentation scope of request spans.
const TracerName = "github.com/custodia-labs/pokeelt/internal/connectors/pokeapi"

// instrument wraps every request of client in a span and logs it at debug
// level. A nil tracer uses the global provider.
func instrument(client *resty.Client, tracer trace.Tracer) {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), "http "+req.Method, trace.WithSpanKind(trace.SpanKindClient))
		req.SetContext(ctx)
		logger.Debug("%s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		span := trace.SpanFromContext(res.Request.Context())
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", res.Request.Method),
			attribute.String("http.url", res.Request.URL),
			attribute.Int("http.status_code", res.StatusCode()),
		)
		if !res.IsSuccess() {
			span.SetStatus(codes.Error, res.Status())
		}

		logger.Debug("%s %s -> %d in %s", res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		span := trace.SpanFromContext(req.Context())
		defer span.End()

		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		span.SetAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL),
		)

		logger.Debug("%s %s failed: %v", req.Method, req.URL, err)
	})
}
