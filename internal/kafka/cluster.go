// Package kafka derives readiness of a Strimzi Kafka resource from its status.
package kafka

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
	"github.com/bf2/fleetshard-operator/internal/strimzi"
)

// Condition is the subset of a Strimzi status condition used by the operator.
type Condition struct {
	Type    string
	Status  string
	Reason  string
	Message string
}

// Cluster answers readiness questions about the Kafka backing a ManagedKafka. The
// Kafka shares the namespace and name of its ManagedKafka.
type Cluster struct {
	kafkas strimzi.KafkaLookup
}

var _ strimzi.KafkaCluster = (*Cluster)(nil)

// NewCluster returns a Cluster reading Kafka resources from kafkas.
func NewCluster(kafkas strimzi.KafkaLookup) *Cluster {
	return &Cluster{kafkas: kafkas}
}

// IsReadyNotUpdating reports whether the Kafka is Ready, fully reconciled for its
// current generation and not paused.
func (c *Cluster) IsReadyNotUpdating(managedKafka *managedkafkav1alpha1.ManagedKafka) bool {
	kafka := c.kafkas.GetLocalKafka(managedKafka.Namespace, managedKafka.Name)
	if kafka == nil {
		return false
	}
	return IsConditionTrue(kafka, constants.KafkaConditionReady) &&
		!IsConditionTrue(kafka, constants.KafkaConditionReconciliationPaused) &&
		!IsUpdating(kafka)
}

// IsReconciliationPaused reports whether Strimzi acknowledged the pause annotation.
func (c *Cluster) IsReconciliationPaused(managedKafka *managedkafkav1alpha1.ManagedKafka) bool {
	kafka := c.kafkas.GetLocalKafka(managedKafka.Namespace, managedKafka.Name)
	if kafka == nil {
		return false
	}
	return IsConditionTrue(kafka, constants.KafkaConditionReconciliationPaused)
}

// IsUpdating reports whether Strimzi has not yet reconciled the latest generation.
func IsUpdating(kafka *unstructured.Unstructured) bool {
	observed, found, err := unstructured.NestedInt64(kafka.Object, "status", "observedGeneration")
	if err != nil || !found {
		return true
	}
	return observed != kafka.GetGeneration()
}

// IsConditionTrue reports whether the Kafka carries conditionType with status True.
func IsConditionTrue(kafka *unstructured.Unstructured, conditionType string) bool {
	for _, condition := range Conditions(kafka) {
		if condition.Type == conditionType {
			return condition.Status == "True"
		}
	}
	return false
}

// Conditions returns the status conditions of the Kafka. Malformed entries are skipped.
func Conditions(kafka *unstructured.Unstructured) []Condition {
	raw, found, err := unstructured.NestedSlice(kafka.Object, "status", "conditions")
	if err != nil || !found {
		return nil
	}
	conditions := make([]Condition, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		condition := Condition{}
		condition.Type, _ = fields["type"].(string)
		condition.Status, _ = fields["status"].(string)
		condition.Reason, _ = fields["reason"].(string)
		condition.Message, _ = fields["message"].(string)
		if condition.Type == "" {
			continue
		}
		conditions = append(conditions, condition)
	}
	return conditions
}
