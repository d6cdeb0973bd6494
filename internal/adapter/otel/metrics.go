package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "partnerconsole"

// Metrics holds the console metric instruments. A nil *Metrics records nothing.
type Metrics struct {
	APICalls       metric.Int64Counter
	APIDuration    metric.Float64Histogram
	TenantsCreated metric.Int64Counter
	Toggles        metric.Int64Counter
	Logins         metric.Int64Counter
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.APICalls, err = meter.Int64Counter("partnerconsole.api.calls",
		metric.WithDescription("Remote API calls by operation and outcome"))
	if err != nil {
		return nil, err
	}

	m.APIDuration, err = meter.Float64Histogram("partnerconsole.api.duration_seconds",
		metric.WithDescription("Remote API call duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.TenantsCreated, err = meter.Int64Counter("partnerconsole.tenants.created",
		metric.WithDescription("Partners created through the onboarding wizard"))
	if err != nil {
		return nil, err
	}

	m.Toggles, err = meter.Int64Counter("partnerconsole.tenants.toggles",
		metric.WithDescription("Partner activations and deactivations"))
	if err != nil {
		return nil, err
	}

	m.Logins, err = meter.Int64Counter("partnerconsole.logins",
		metric.WithDescription("Login attempts by outcome"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordAPICall counts one remote call and its duration.
func (m *Metrics) RecordAPICall(ctx context.Context, op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	)
	m.APICalls.Add(ctx, 1, attrs)
	m.APIDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordTenantCreated counts a created partner.
func (m *Metrics) RecordTenantCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.TenantsCreated.Add(ctx, 1)
}

// RecordToggle counts an activation or deactivation attempt.
func (m *Metrics) RecordToggle(ctx context.Context, action string, ok bool) {
	if m == nil {
		return
	}
	m.Toggles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("ok", ok),
	))
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
