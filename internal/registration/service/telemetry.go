package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aussiebroadwan/quizbank/internal/registration/service"

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "registration_operations_total",
		Help: "Registration and login operations by outcome.",
	},
	[]string{"operation", "outcome"},
)

var pendingPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "registration_pending_purged_total",
	Help: "Expired pending registrations removed by housekeeping.",
})

// startSpan opens a span for op using the global tracer provider.
func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(attrs...))
}

// finish records the outcome of op on both the span and the counter.
// Outcome is "ok" or the error reason.
func finish(span trace.Span, op string, err error) {
	defer span.End()

	if err == nil {
		operationsTotal.WithLabelValues(op, "ok").Inc()
		return
	}

	outcome := string(KindInternal)
	var se *Error
	if errors.As(err, &se) {
		outcome = se.Reason
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()

	span.SetAttributes(attribute.String("registration.outcome", outcome))
	if se == nil || se.Kind == KindInternal || se.Kind == KindDeliveryFailed {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}
