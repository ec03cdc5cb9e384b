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

package managedkafka

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/equality"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/log"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
	controllermetrics "github.com/bf2/fleetshard-operator/internal/controller"
	operatorerrors "github.com/bf2/fleetshard-operator/internal/errors"
	kafkacluster "github.com/bf2/fleetshard-operator/internal/kafka"
	"github.com/bf2/fleetshard-operator/internal/logging"
	"github.com/bf2/fleetshard-operator/internal/status"
	"github.com/bf2/fleetshard-operator/internal/strimzi"
)

// ManagedKafkaReconciler keeps the coordination metadata of the Strimzi Kafka
// backing each ManagedKafka in line with the requested Strimzi version.
//
// The Kafka spec itself is owned elsewhere; this controller only writes the
// version selector label and the pause annotations, and reports progress on the
// ManagedKafka status.
type ManagedKafkaReconciler struct {
	client.Client
	Scheme      *runtime.Scheme
	Coordinator *strimzi.Coordinator
	Kafkas      strimzi.KafkaLookup
	// KafkaEvents, when set, triggers a reconcile for every Kafka change.
	KafkaEvents <-chan event.GenericEvent
}

// +kubebuilder:rbac:groups=managedkafka.bf2.org,resources=managedkafkas,verbs=get;list;watch
// +kubebuilder:rbac:groups=managedkafka.bf2.org,resources=managedkafkas/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=managedkafka.bf2.org,resources=managedkafkaagents,verbs=get;list;watch
// +kubebuilder:rbac:groups=managedkafka.bf2.org,resources=managedkafkaagents/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=kafka.strimzi.io,resources=kafkas,verbs=get;list;watch;patch
// +kubebuilder:rbac:groups=apps,resources=deployments;replicasets,verbs=get;list;watch

// Reconcile runs one step of the Strimzi handover for a ManagedKafka.
func (r *ManagedKafkaReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	reconcileMetrics := controllermetrics.NewReconcileMetrics(req.Namespace, req.Name, constants.ControllerNameManagedKafka)
	startTime := time.Now()
	var reconcileErr error
	defer func() {
		reconcileMetrics.ObserveDuration(time.Since(startTime).Seconds())
		if reconcileErr != nil {
			reconcileMetrics.IncrementError(operatorerrors.Reason(reconcileErr))
		}
	}()

	logger := log.FromContext(ctx).WithValues(
		"managedkafka_namespace", req.Namespace,
		"managedkafka_name", req.Name,
		"controller", constants.ControllerNameManagedKafka,
	)

	managedKafka := &managedkafkav1alpha1.ManagedKafka{}
	if err := r.Get(ctx, req.NamespacedName, managedKafka); err != nil {
		if apierrors.IsNotFound(err) {
			logger.V(1).Info("ManagedKafka resource not found; assuming it was deleted")
			reconcileMetrics.Clear()
			return ctrl.Result{}, nil
		}
		reconcileErr = fmt.Errorf("failed to get ManagedKafka %s: %w", req.NamespacedName, err)
		return resultForError(logger, reconcileErr)
	}

	if !managedKafka.DeletionTimestamp.IsZero() || managedKafka.Spec.Deleted {
		logger.V(1).Info("ManagedKafka is being deleted; skipping Strimzi coordination")
		reconcileMetrics.Clear()
		return ctrl.Result{}, nil
	}

	original := managedKafka.DeepCopy()
	result, err := r.reconcileKafka(ctx, logger, managedKafka, reconcileMetrics)
	if statusErr := r.patchStatus(ctx, original, managedKafka); statusErr != nil && err == nil {
		err = statusErr
	}
	if err != nil {
		reconcileErr = err
		return resultForError(logger, reconcileErr)
	}
	return result, nil
}

// reconcileKafka applies the coordinator decisions to the Kafka and records the
// outcome on managedKafka.Status. It does not persist the status.
func (r *ManagedKafkaReconciler) reconcileKafka(
	ctx context.Context,
	logger logr.Logger,
	managedKafka *managedkafkav1alpha1.ManagedKafka,
	reconcileMetrics *controllermetrics.ReconcileMetrics,
) (ctrl.Result, error) {
	kafka := r.Kafkas.GetLocalKafka(managedKafka.Namespace, managedKafka.Name)
	if kafka == nil {
		exists, err := r.kafkaExists(ctx, managedKafka)
		if err != nil {
			status.SetReady(managedKafka, metav1.ConditionFalse, managedkafkav1alpha1.ReasonError, err.Error())
			return ctrl.Result{}, err
		}
		if exists {
			// The coordinator reads the Kafka from the informer cache only. Acting before
			// the cache has it would take the requested version as the current one.
			logger.V(1).Info("Kafka not in the local cache yet")
			return ctrl.Result{RequeueAfter: constants.RequeueShort}, nil
		}
		status.SetReady(managedKafka, metav1.ConditionFalse, managedkafkav1alpha1.ReasonInstalling, "Waiting for the Kafka resource to be created")
		return ctrl.Result{RequeueAfter: constants.RequeueStandard}, nil
	}

	if r.Coordinator.HasStrimziChanged(managedKafka) && !r.Coordinator.IsStrimziVersionReady(managedKafka) {
		message := fmt.Sprintf("Strimzi version %s is not installed or not ready", managedKafka.Spec.Versions.Strimzi)
		logger.Info(message, "current", r.Coordinator.CurrentStrimziVersion(managedKafka))
		status.SetReady(managedKafka, metav1.ConditionFalse, managedkafkav1alpha1.ReasonError, message)
		reconcileMetrics.SetHandoverInProgress(false)
		return ctrl.Result{RequeueAfter: constants.RequeueStandard}, nil
	}

	cluster := kafkacluster.NewCluster(r.Kafkas)
	annotations := cloneOrEmpty(kafka.GetAnnotations())
	labels := cloneOrEmpty(kafka.GetLabels())

	r.Coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
	r.Coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

	if !maps.Equal(annotations, kafka.GetAnnotations()) || !maps.Equal(labels, kafka.GetLabels()) {
		patched := kafka.DeepCopy()
		patched.SetAnnotations(annotations)
		patched.SetLabels(labels)
		if err := r.Patch(ctx, patched, client.MergeFrom(kafka)); err != nil {
			if apierrors.IsNotFound(err) {
				return ctrl.Result{RequeueAfter: constants.RequeueShort}, nil
			}
			err = fmt.Errorf("failed to patch Kafka %s/%s: %w", kafka.GetNamespace(), kafka.GetName(), err)
			status.SetReady(managedKafka, metav1.ConditionFalse, managedkafkav1alpha1.ReasonError, err.Error())
			return ctrl.Result{}, err
		}
		logging.LogKafkaMetadataChange(logger, logging.KafkaMetadataChange{
			Kafka:          kafka.GetNamespace() + "/" + kafka.GetName(),
			VersionLabel:   r.Coordinator.VersionLabel(),
			OldLabels:      kafka.GetLabels(),
			NewLabels:      labels,
			OldAnnotations: kafka.GetAnnotations(),
			NewAnnotations: annotations,
		})
	}

	handover := isHandoverInProgress(managedKafka, labels[r.Coordinator.VersionLabel()], annotations)
	reconcileMetrics.SetHandoverInProgress(handover)

	managedKafka.Status.Versions.Strimzi = labels[r.Coordinator.VersionLabel()]
	if version, found, _ := unstructured.NestedString(kafka.Object, "spec", "kafka", "version"); found {
		managedKafka.Status.Versions.Kafka = version
	}
	conditionStatus, reason, message := readyCondition(kafka, handover)
	status.SetReady(managedKafka, conditionStatus, reason, message)

	if handover {
		return ctrl.Result{RequeueAfter: constants.RequeueShort}, nil
	}
	return ctrl.Result{RequeueAfter: constants.RequeueStandard}, nil
}

// kafkaExists reads the Kafka from the API server, bypassing the informer cache.
func (r *ManagedKafkaReconciler) kafkaExists(ctx context.Context, managedKafka *managedkafkav1alpha1.ManagedKafka) (bool, error) {
	kafka := &unstructured.Unstructured{}
	kafka.SetGroupVersionKind(strimzi.KafkaGVK)
	if err := r.Get(ctx, client.ObjectKeyFromObject(managedKafka), kafka); err != nil {
		switch {
		case apierrors.IsNotFound(err):
			return false, nil
		case operatorerrors.IsCRDMissingError(err):
			return false, operatorerrors.WrapCRDMissing(fmt.Errorf("kafkas.kafka.strimzi.io CRD is not installed: %w", err))
		default:
			return false, fmt.Errorf("failed to get Kafka %s: %w", client.ObjectKeyFromObject(managedKafka), err)
		}
	}
	return true, nil
}

func (r *ManagedKafkaReconciler) patchStatus(ctx context.Context, original, managedKafka *managedkafkav1alpha1.ManagedKafka) error {
	if equality.Semantic.DeepEqual(original.Status, managedKafka.Status) {
		return nil
	}
	if err := r.Status().Patch(ctx, managedKafka, client.MergeFrom(original)); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to update ManagedKafka %s/%s status: %w", managedKafka.Namespace, managedKafka.Name, err)
	}
	return nil
}

// resultForError maps an error to a controller result. Transient API errors requeue
// after a fixed delay and missing prerequisites are retried on the standard interval.
// Anything else goes back to the rate limiter.
func resultForError(logger logr.Logger, err error) (ctrl.Result, error) {
	shouldRequeue, requeueAfter := operatorerrors.ShouldRequeue(err)
	switch {
	case !shouldRequeue:
		logger.Error(err, "Reconcile failed; waiting for the next change", "reason", operatorerrors.Reason(err))
		return ctrl.Result{RequeueAfter: constants.RequeueStandard}, nil
	case requeueAfter > 0:
		logger.V(1).Info("Reconcile hit a transient error; requeueing", "error", err.Error(), "requeueAfter", requeueAfter)
		return ctrl.Result{RequeueAfter: requeueAfter}, nil
	default:
		return ctrl.Result{}, err
	}
}

func cloneOrEmpty(in map[string]string) map[string]string {
	if in == nil {
		return map[string]string{}
	}
	return maps.Clone(in)
}
