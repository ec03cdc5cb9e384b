// Package status maintains the conditions of ManagedKafka resources.
package status

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

// SetReady sets the Ready condition of managedKafka. LastTransitionTime only moves
// when the status flips, so repeated calls with the same values are no-ops.
func SetReady(managedKafka *managedkafkav1alpha1.ManagedKafka, status metav1.ConditionStatus, reason managedkafkav1alpha1.ManagedKafkaConditionReason, message string) {
	meta.SetStatusCondition(&managedKafka.Status.Conditions, metav1.Condition{
		Type:               string(managedkafkav1alpha1.ManagedKafkaConditionReady),
		Status:             status,
		Reason:             string(reason),
		Message:            message,
		ObservedGeneration: managedKafka.Generation,
		LastTransitionTime: metav1.Now(),
	})
}

// Ready returns the Ready condition of managedKafka, or nil.
func Ready(managedKafka *managedkafkav1alpha1.ManagedKafka) *metav1.Condition {
	return meta.FindStatusCondition(managedKafka.Status.Conditions, string(managedkafkav1alpha1.ManagedKafkaConditionReady))
}

// IsReady returns true if the Ready condition has Status=True.
func IsReady(managedKafka *managedkafkav1alpha1.ManagedKafka) bool {
	return meta.IsStatusConditionTrue(managedKafka.Status.Conditions, string(managedkafkav1alpha1.ManagedKafkaConditionReady))
}

// ReadyReason returns the reason of the Ready condition, or "" when it is not set.
func ReadyReason(managedKafka *managedkafkav1alpha1.ManagedKafka) managedkafkav1alpha1.ManagedKafkaConditionReason {
	if condition := Ready(managedKafka); condition != nil {
		return managedkafkav1alpha1.ManagedKafkaConditionReason(condition.Reason)
	}
	return ""
}
