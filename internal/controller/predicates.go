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

package controller

import (
	"k8s.io/apimachinery/pkg/api/equality"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

// ManagedKafkaPredicate filters ManagedKafka events down to the changes that can
// move a Strimzi handover forward:
//   - create and delete
//   - spec changes (generation), in particular spec.versions.strimzi
//   - deletion timestamp, label and annotation changes
//
// Status-only updates are dropped: the controller writes the status itself and
// Kafka changes reach it through their own event source.
func ManagedKafkaPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldObj, ok := e.ObjectOld.(*managedkafkav1alpha1.ManagedKafka)
			if !ok {
				return true
			}
			newObj, ok := e.ObjectNew.(*managedkafkav1alpha1.ManagedKafka)
			if !ok {
				return true
			}

			if oldObj.GetGeneration() != newObj.GetGeneration() {
				return true
			}
			if !equality.Semantic.DeepEqual(oldObj.GetDeletionTimestamp(), newObj.GetDeletionTimestamp()) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldObj.GetLabels(), newObj.GetLabels()) {
				return true
			}
			return !equality.Semantic.DeepEqual(oldObj.GetAnnotations(), newObj.GetAnnotations())
		},
		GenericFunc: func(event.GenericEvent) bool {
			return true
		},
	}
}
