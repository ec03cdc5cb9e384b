package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	reconcileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fleetshard",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation loops in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"namespace", "name", "controller"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fleetshard",
			Name:      "reconcile_errors_total",
			Help:      "Total number of reconciliation errors",
		},
		[]string{"namespace", "name", "controller", "reason"},
	)

	strimziHandoverInProgressGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fleetshard",
			Name:      "strimzi_handover_in_progress",
			Help:      "Whether a ManagedKafka is moving to another Strimzi version (1 = in progress)",
		},
		[]string{"namespace", "name"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcileDurationHistogram,
		reconcileErrorsTotal,
		strimziHandoverInProgressGauge,
	)
}

// ReconcileMetrics provides helpers to record reconcile-level metrics for a
// specific controller and ManagedKafka.
type ReconcileMetrics struct {
	namespace  string
	name       string
	controller string
}

// NewReconcileMetrics creates a new ReconcileMetrics instance.
func NewReconcileMetrics(namespace, name, controller string) *ReconcileMetrics {
	return &ReconcileMetrics{
		namespace:  namespace,
		name:       name,
		controller: controller,
	}
}

// ObserveDuration records the duration of a reconcile loop in seconds.
func (m *ReconcileMetrics) ObserveDuration(durationSeconds float64) {
	reconcileDurationHistogram.
		WithLabelValues(m.namespace, m.name, m.controller).
		Observe(durationSeconds)
}

// IncrementError increments the reconcile error counter with the given reason.
// Reason values should be low-cardinality strings.
func (m *ReconcileMetrics) IncrementError(reason string) {
	reconcileErrorsTotal.
		WithLabelValues(m.namespace, m.name, m.controller, reason).
		Inc()
}

// SetHandoverInProgress records whether a Strimzi handover is in flight.
func (m *ReconcileMetrics) SetHandoverInProgress(inProgress bool) {
	value := 0.0
	if inProgress {
		value = 1
	}
	strimziHandoverInProgressGauge.WithLabelValues(m.namespace, m.name).Set(value)
}

// Clear removes the per-resource series once the ManagedKafka is gone.
func (m *ReconcileMetrics) Clear() {
	strimziHandoverInProgressGauge.DeleteLabelValues(m.namespace, m.name)
}
