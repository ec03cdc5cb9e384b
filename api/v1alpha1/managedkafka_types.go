/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ManagedKafkaConditionType is the type of a ManagedKafka status condition.
type ManagedKafkaConditionType string

const (
	// ManagedKafkaConditionReady reports whether the Kafka instance is usable.
	ManagedKafkaConditionReady ManagedKafkaConditionType = "Ready"
)

// ManagedKafkaConditionReason is the machine readable reason of a ManagedKafka condition.
type ManagedKafkaConditionReason string

const (
	ReasonInstalling      ManagedKafkaConditionReason = "Installing"
	ReasonUpdating        ManagedKafkaConditionReason = "Updating"
	ReasonStrimziUpdating ManagedKafkaConditionReason = "StrimziUpdating"
	ReasonKafkaUpdating   ManagedKafkaConditionReason = "KafkaUpdating"
	ReasonError           ManagedKafkaConditionReason = "Error"
	ReasonReady           ManagedKafkaConditionReason = "Ready"
)

// Versions identifies the Kafka and Strimzi versions of a ManagedKafka.
type Versions struct {
	// Kafka is the Apache Kafka version of the cluster.
	// +optional
	Kafka string `json:"kafka,omitempty"`

	// Strimzi is the Strimzi operator version that must own the Kafka resource.
	// It matches the name of an installed Strimzi operator Deployment.
	// +kubebuilder:validation:MinLength=1
	Strimzi string `json:"strimzi"`
}

// ManagedKafkaSpec defines the desired state of ManagedKafka.
type ManagedKafkaSpec struct {
	// Versions requested for this instance.
	Versions Versions `json:"versions"`

	// Deleted marks the instance for removal by the control plane.
	// +optional
	Deleted bool `json:"deleted,omitempty"`
}

// ManagedKafkaStatus defines the observed state of ManagedKafka.
type ManagedKafkaStatus struct {
	// Conditions represent the latest available observations of the instance.
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// Versions reports the versions currently in effect. Versions.Strimzi is
	// the value of the version selector label on the Kafka resource.
	// +optional
	Versions Versions `json:"versions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=mk
// +kubebuilder:printcolumn:name="Strimzi",type="string",JSONPath=".spec.versions.strimzi"
// +kubebuilder:printcolumn:name="Current",type="string",JSONPath=".status.versions.strimzi"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// ManagedKafka is the Schema for the managedkafkas API.
type ManagedKafka struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ManagedKafkaSpec `json:"spec"`

	// +optional
	Status ManagedKafkaStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ManagedKafkaList contains a list of ManagedKafka.
type ManagedKafkaList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ManagedKafka `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ManagedKafka{}, &ManagedKafkaList{})
}
