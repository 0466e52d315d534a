package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// LifecycleMetrics holds the counters emitted by the lifecycle manager.
// All instruments come from the global meter, so with telemetry disabled
// every recording is a no-op.
type LifecycleMetrics struct {
	transitionsRequested metric.Int64Counter
	transitionsDenied    metric.Int64Counter
	reconciliations      metric.Int64Counter
	statusDriftForced    metric.Int64Counter
	schemaAmbiguities    metric.Int64Counter
}

// NewLifecycleMetrics registers the lifecycle instruments.
func NewLifecycleMetrics() (*LifecycleMetrics, error) {
	meter := Meter("")
	m := &LifecycleMetrics{}

	var err error
	if m.transitionsRequested, err = meter.Int64Counter(
		"tokenlife.transitions.requested",
		metric.WithDescription("Lifecycle transitions submitted to the directory"),
	); err != nil {
		return nil, err
	}
	if m.transitionsDenied, err = meter.Int64Counter(
		"tokenlife.transitions.denied",
		metric.WithDescription("Transitions rejected before any directory call"),
	); err != nil {
		return nil, err
	}
	if m.reconciliations, err = meter.Int64Counter(
		"tokenlife.reconciliations",
		metric.WithDescription("Post-transition refetches reconciled against the requested status"),
	); err != nil {
		return nil, err
	}
	if m.statusDriftForced, err = meter.Int64Counter(
		"tokenlife.status_drift.forced",
		metric.WithDescription("Reconciliations where the directory read lagged and the requested status was kept"),
	); err != nil {
		return nil, err
	}
	if m.schemaAmbiguities, err = meter.Int64Counter(
		"tokenlife.schema.ambiguities",
		metric.WithDescription("Token payload fields where the two naming conventions disagreed"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LifecycleMetrics) TransitionRequested(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.transitionsRequested.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *LifecycleMetrics) TransitionDenied(ctx context.Context, action, kind string) {
	if m == nil {
		return
	}
	m.transitionsDenied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("kind", kind),
	))
}

func (m *LifecycleMetrics) Reconciled(ctx context.Context, confirmed bool) {
	if m == nil {
		return
	}
	m.reconciliations.Add(ctx, 1, metric.WithAttributes(attribute.Bool("confirmed", confirmed)))
}

func (m *LifecycleMetrics) StatusDriftForced(ctx context.Context, requested string) {
	if m == nil {
		return
	}
	m.statusDriftForced.Add(ctx, 1, metric.WithAttributes(attribute.String("requested", requested)))
}

func (m *LifecycleMetrics) SchemaAmbiguity(ctx context.Context, field string) {
	if m == nil {
		return
	}
	m.schemaAmbiguities.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}
