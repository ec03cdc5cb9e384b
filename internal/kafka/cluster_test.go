package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

type kafkaCache map[string]*unstructured.Unstructured

func (c kafkaCache) GetLocalKafka(namespace, name string) *unstructured.Unstructured {
	return c[namespace+"/"+name]
}

func newKafka(generation, observedGeneration int64, conditions ...map[string]interface{}) *unstructured.Unstructured {
	kafka := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "kafka.strimzi.io/v1beta2",
		"kind":       "Kafka",
		"metadata": map[string]interface{}{
			"namespace":  "mk-1",
			"name":       "my-cluster",
			"generation": generation,
		},
	}}
	status := map[string]interface{}{}
	if observedGeneration > 0 {
		status["observedGeneration"] = observedGeneration
	}
	if len(conditions) > 0 {
		items := make([]interface{}, 0, len(conditions))
		for _, condition := range conditions {
			items = append(items, condition)
		}
		status["conditions"] = items
	}
	kafka.Object["status"] = status
	return kafka
}

func condition(conditionType, status string) map[string]interface{} {
	return map[string]interface{}{"type": conditionType, "status": status}
}

func newManagedKafka() *managedkafkav1alpha1.ManagedKafka {
	return &managedkafkav1alpha1.ManagedKafka{
		ObjectMeta: metav1.ObjectMeta{Namespace: "mk-1", Name: "my-cluster"},
	}
}

func TestIsReadyNotUpdating(t *testing.T) {
	tests := []struct {
		name  string
		kafka *unstructured.Unstructured
		want  bool
	}{
		{
			name:  "missing kafka",
			kafka: nil,
			want:  false,
		},
		{
			name:  "ready and reconciled",
			kafka: newKafka(3, 3, condition("Ready", "True")),
			want:  true,
		},
		{
			name:  "ready but generation not observed",
			kafka: newKafka(4, 3, condition("Ready", "True")),
			want:  false,
		},
		{
			name:  "no observed generation",
			kafka: newKafka(1, 0, condition("Ready", "True")),
			want:  false,
		},
		{
			name:  "not ready",
			kafka: newKafka(3, 3, condition("NotReady", "True")),
			want:  false,
		},
		{
			name:  "ready condition false",
			kafka: newKafka(3, 3, condition("Ready", "False")),
			want:  false,
		},
		{
			name:  "paused",
			kafka: newKafka(3, 3, condition("Ready", "True"), condition("ReconciliationPaused", "True")),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := kafkaCache{}
			if tt.kafka != nil {
				cache["mk-1/my-cluster"] = tt.kafka
			}
			require.Equal(t, tt.want, NewCluster(cache).IsReadyNotUpdating(newManagedKafka()))
		})
	}
}

func TestIsReconciliationPaused(t *testing.T) {
	cache := kafkaCache{}
	cluster := NewCluster(cache)
	require.False(t, cluster.IsReconciliationPaused(newManagedKafka()))

	cache["mk-1/my-cluster"] = newKafka(3, 3, condition("Ready", "True"))
	require.False(t, cluster.IsReconciliationPaused(newManagedKafka()))

	cache["mk-1/my-cluster"] = newKafka(3, 3, condition("ReconciliationPaused", "True"))
	require.True(t, cluster.IsReconciliationPaused(newManagedKafka()))
}

func TestConditionsSkipsMalformedEntries(t *testing.T) {
	kafka := newKafka(1, 1)
	kafka.Object["status"].(map[string]interface{})["conditions"] = []interface{}{
		"garbage",
		map[string]interface{}{"status": "True"},
		map[string]interface{}{"type": "Ready", "status": "True", "reason": "Done", "message": "ok"},
	}

	require.Equal(t, []Condition{
		{Type: "Ready", Status: "True", Reason: "Done", Message: "ok"},
	}, Conditions(kafka))
	require.True(t, IsConditionTrue(kafka, "Ready"))
	require.False(t, IsConditionTrue(kafka, "NotReady"))
}
