package managedkafka

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
	kafkacluster "github.com/bf2/fleetshard-operator/internal/kafka"
)

// isHandoverInProgress reports whether the Kafka is still moving to the requested
// Strimzi version: either the selector label has not moved yet, or our pause reason
// is still set while the new operator rolls the cluster.
func isHandoverInProgress(managedKafka *managedkafkav1alpha1.ManagedKafka, labelledVersion string, annotations map[string]string) bool {
	return labelledVersion != managedKafka.Spec.Versions.Strimzi ||
		annotations[constants.AnnotationPauseReason] == constants.PauseReasonStrimziUpdating
}

// readyCondition derives the ManagedKafka Ready condition from the Kafka status.
func readyCondition(kafka *unstructured.Unstructured, handover bool) (metav1.ConditionStatus, managedkafkav1alpha1.ManagedKafkaConditionReason, string) {
	ready := kafkacluster.IsConditionTrue(kafka, constants.KafkaConditionReady)

	if handover {
		if ready {
			return metav1.ConditionTrue, managedkafkav1alpha1.ReasonStrimziUpdating, "Moving Kafka to the requested Strimzi version"
		}
		return metav1.ConditionFalse, managedkafkav1alpha1.ReasonStrimziUpdating, "Moving Kafka to the requested Strimzi version"
	}

	if ready {
		if kafkacluster.IsUpdating(kafka) {
			return metav1.ConditionTrue, managedkafkav1alpha1.ReasonUpdating, "Kafka is being updated"
		}
		return metav1.ConditionTrue, managedkafkav1alpha1.ReasonReady, ""
	}

	for _, condition := range kafkacluster.Conditions(kafka) {
		if condition.Type != constants.KafkaConditionNotReady || condition.Status != "True" {
			continue
		}
		if condition.Reason == constants.KafkaReasonCreating {
			return metav1.ConditionFalse, managedkafkav1alpha1.ReasonInstalling, condition.Message
		}
		return metav1.ConditionFalse, managedkafkav1alpha1.ReasonError, condition.Message
	}
	return metav1.ConditionFalse, managedkafkav1alpha1.ReasonInstalling, "Waiting for Strimzi to report the Kafka status"
}
