package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const groupIDAttribute = "racha.group_id"

var apiTracer = otel.Tracer("racha-league/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan only opens child spans for handlers. Helpers and middleware share
// the request span, and untraced requests (health checks) stay span-free.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// startHandlerSpan opens the handler span and tags it with the racha group
// taken from the route, when the route has one.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx, span := startSpan(r.Context(), name)
	if groupID := strings.TrimSpace(r.PathValue("groupID")); groupID != "" {
		span.SetAttributes(attribute.String(groupIDAttribute, groupID))
	}
	return ctx, span
}
