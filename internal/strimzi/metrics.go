package strimzi

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

const (
	handoverActionPause        = "pause"
	handoverActionUnpause      = "unpause"
	handoverActionReasonClear  = "reason_cleared"
	handoverActionVersionLabel = "version_label"

	watchDeployments = "deployments"
	watchKafkas      = "kafkas"
)

var (
	strimziVersionReadyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fleetshard",
			Subsystem: "strimzi",
			Name:      "version_ready",
			Help:      "Installed Strimzi operator versions (1 = ready, 0 = not ready)",
		},
		[]string{"version"},
	)

	statusPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fleetshard",
			Subsystem: "strimzi",
			Name:      "status_publish_errors_total",
			Help:      "Total number of failed attempts to publish Strimzi versions on the agent status",
		},
	)

	handoverActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fleetshard",
			Subsystem: "strimzi",
			Name:      "handover_actions_total",
			Help:      "Total number of pause/unpause/handover mutations proposed for Kafka resources",
		},
		[]string{"action"},
	)

	watchesArmedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fleetshard",
			Subsystem: "strimzi",
			Name:      "watches_armed_total",
			Help:      "Total number of lazily created informers",
		},
		[]string{"watch"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		strimziVersionReadyGauge,
		statusPublishErrorsTotal,
		handoverActionsTotal,
		watchesArmedTotal,
	)
}

// observeVersions replaces the version gauge contents with the given snapshot.
func observeVersions(versions []managedkafkav1alpha1.StrimziVersionStatus) {
	strimziVersionReadyGauge.Reset()
	for _, v := range versions {
		value := 0.0
		if v.Ready {
			value = 1
		}
		strimziVersionReadyGauge.WithLabelValues(v.Version).Set(value)
	}
}
