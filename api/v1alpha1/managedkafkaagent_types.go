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

// StrimziVersionStatus reports an installed Strimzi operator and its readiness.
type StrimziVersionStatus struct {
	// Version is the name of the Strimzi operator Deployment.
	Version string `json:"version"`
	// Ready is true once the Deployment is fully rolled out.
	Ready bool `json:"ready"`
}

// ManagedKafkaAgentSpec defines the desired state of ManagedKafkaAgent.
type ManagedKafkaAgentSpec struct {
	// ClusterID identifies the data plane cluster within the fleet.
	// +optional
	ClusterID string `json:"clusterId,omitempty"`
}

// ManagedKafkaAgentStatus defines the observed state of ManagedKafkaAgent.
type ManagedKafkaAgentStatus struct {
	// Conditions represent the latest available observations of the agent.
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// Strimzi lists the Strimzi operator versions installed on the cluster.
	// +optional
	Strimzi []StrimziVersionStatus `json:"strimzi,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=mka

// ManagedKafkaAgent is the Schema for the managedkafkaagents API.
// A single instance exists per data plane cluster; it carries fleet-wide status.
type ManagedKafkaAgent struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ManagedKafkaAgentSpec `json:"spec,omitempty"`

	// Status is nil until the agent has been initialized by the sync component.
	// +optional
	Status *ManagedKafkaAgentStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ManagedKafkaAgentList contains a list of ManagedKafkaAgent.
type ManagedKafkaAgentList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ManagedKafkaAgent `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ManagedKafkaAgent{}, &ManagedKafkaAgentList{})
}
