package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "partnerconsole"

// StartSubmitSpan starts a span around an onboarding submission.
func StartSubmitSpan(ctx context.Context, sessionID string, directors, ubos int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "onboarding.submit",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.Int("onboarding.directors", directors),
			attribute.Int("onboarding.ubos", ubos),
		),
	)
}

// StartToggleSpan starts a span around an activation or deactivation.
func StartToggleSpan(ctx context.Context, action, short string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "tenant."+action,
		trace.WithAttributes(attribute.String("tenant.short", short)),
	)
}
