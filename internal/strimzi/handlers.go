package strimzi

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
)

// apiCallTimeout bounds the remote calls made from informer callbacks.
const apiCallTimeout = 30 * time.Second

// DeploymentEventHandler feeds the VersionRegistry from the namespace-scoped
// Strimzi operator Deployment informer. Deployments without the Strimzi name
// prefix (drain cleaner, other operators) are ignored.
type DeploymentEventHandler struct {
	registry  *VersionRegistry
	publisher StatusPublisher
	logger    logr.Logger
}

var _ cache.ResourceEventHandler = (*DeploymentEventHandler)(nil)

// NewDeploymentEventHandler creates a handler recording into registry and
// notifying publisher after every significant change.
func NewDeploymentEventHandler(registry *VersionRegistry, publisher StatusPublisher, logger logr.Logger) *DeploymentEventHandler {
	return &DeploymentEventHandler{
		registry:  registry,
		publisher: publisher,
		logger:    logger,
	}
}

// OnAdd records the Deployment and publishes unconditionally, including during the
// initial listing, so the agent status and the Kafka informer catch up after a restart.
func (h *DeploymentEventHandler) OnAdd(obj interface{}, _ bool) {
	deployment, ok := obj.(*appsv1.Deployment)
	if !ok || !IsStrimziDeployment(deployment.Name) {
		return
	}
	h.logger.V(1).Info("Add event received for Deployment", "deployment", client.ObjectKeyFromObject(deployment))

	h.registry.RecordObserved(deployment.Name, IsDeploymentReady(deployment))
	h.publish()
}

// OnUpdate only acts on readiness transitions. Spec or metadata updates that leave
// readiness unchanged produce no registry write and no publication.
func (h *DeploymentEventHandler) OnUpdate(oldObj, newObj interface{}) {
	oldDeployment, ok := oldObj.(*appsv1.Deployment)
	if !ok {
		return
	}
	newDeployment, ok := newObj.(*appsv1.Deployment)
	if !ok || !IsStrimziDeployment(newDeployment.Name) {
		return
	}
	h.logger.V(1).Info("Update event received for Deployment", "deployment", client.ObjectKeyFromObject(newDeployment))

	ready := IsDeploymentReady(newDeployment)
	if ready == IsDeploymentReady(oldDeployment) {
		return
	}
	h.registry.RecordObserved(newDeployment.Name, ready)
	h.publish()
}

// OnDelete removes the Deployment from the registry, including when only a
// tombstone was delivered.
func (h *DeploymentEventHandler) OnDelete(obj interface{}) {
	deployment, ok := obj.(*appsv1.Deployment)
	if !ok {
		tombstone, isTombstone := obj.(cache.DeletedFinalStateUnknown)
		if !isTombstone {
			return
		}
		deployment, ok = tombstone.Obj.(*appsv1.Deployment)
		if !ok {
			return
		}
	}
	if !IsStrimziDeployment(deployment.Name) {
		return
	}
	h.logger.V(1).Info("Delete event received for Deployment", "deployment", client.ObjectKeyFromObject(deployment))

	h.registry.RecordRemoved(deployment.Name)
	h.publish()
}

func (h *DeploymentEventHandler) publish() {
	if h.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), apiCallTimeout)
	defer cancel()
	h.publisher.Publish(ctx)
}

// DeploymentWatchArmer creates the namespace-scoped Strimzi Deployment informer.
type DeploymentWatchArmer interface {
	ArmDeploymentInformer(namespace string) error
}

// ReplicaSetEventHandler discovers the namespace hosting the Strimzi operators.
//
// Deployment events for the Strimzi bundle are not reliably delivered at first sight
// on every platform, but the ReplicaSets labelled as part of managed-kafka are. The
// first such ReplicaSet is resolved to its owning Deployment and the Deployment
// informer is armed in that namespace. Arming is a compare-and-swap on armed, so it
// happens at most once; a failed attempt releases the guard for the next event.
type ReplicaSetEventHandler struct {
	clientset kubernetes.Interface
	armer     DeploymentWatchArmer
	armed     atomic.Bool
	logger    logr.Logger
}

var _ cache.ResourceEventHandler = (*ReplicaSetEventHandler)(nil)

// NewReplicaSetEventHandler creates a discovery handler. clientset is used to resolve
// the owning Deployment of the first observed ReplicaSet.
func NewReplicaSetEventHandler(clientset kubernetes.Interface, armer DeploymentWatchArmer, logger logr.Logger) *ReplicaSetEventHandler {
	return &ReplicaSetEventHandler{
		clientset: clientset,
		armer:     armer,
		logger:    logger,
	}
}

// OnAdd arms the Deployment informer on the first observed ReplicaSet.
func (h *ReplicaSetEventHandler) OnAdd(obj interface{}, _ bool) {
	replicaSet, ok := obj.(*appsv1.ReplicaSet)
	if !ok {
		return
	}
	h.logger.V(1).Info("Add event received for ReplicaSet", "replicaSet", client.ObjectKeyFromObject(replicaSet))
	h.tryArm(replicaSet)
}

// OnUpdate only matters while no Deployment informer is armed, which happens after
// a failed first attempt. Resyncs then give discovery another chance.
func (h *ReplicaSetEventHandler) OnUpdate(_, newObj interface{}) {
	if h.armed.Load() {
		return
	}
	replicaSet, ok := newObj.(*appsv1.ReplicaSet)
	if !ok {
		return
	}
	h.tryArm(replicaSet)
}

// OnDelete is a no-op.
func (h *ReplicaSetEventHandler) OnDelete(interface{}) {}

// Armed reports whether the Deployment informer has been armed.
func (h *ReplicaSetEventHandler) Armed() bool {
	return h.armed.Load()
}

func (h *ReplicaSetEventHandler) tryArm(replicaSet *appsv1.ReplicaSet) {
	if !h.armed.CompareAndSwap(false, true) {
		return
	}

	namespace, err := h.owningDeploymentNamespace(replicaSet)
	if err == nil {
		h.logger.Info("Creating informer for Strimzi operator Deployments", "namespace", namespace)
		err = h.armer.ArmDeploymentInformer(namespace)
	}
	if err != nil {
		h.logger.Error(err, "Failed to arm Strimzi Deployment informer", "replicaSet", client.ObjectKeyFromObject(replicaSet))
		h.armed.Store(false)
		return
	}
	watchesArmedTotal.WithLabelValues(watchDeployments).Inc()
}

// owningDeploymentNamespace resolves the Deployment owning replicaSet. The Deployment
// is fetched rather than inferred so that a ReplicaSet left over from a removed
// Deployment does not arm an informer in a namespace without Strimzi.
func (h *ReplicaSetEventHandler) owningDeploymentNamespace(replicaSet *appsv1.ReplicaSet) (string, error) {
	owner := metav1.GetControllerOf(replicaSet)
	if owner == nil {
		refs := replicaSet.GetOwnerReferences()
		if len(refs) == 0 {
			return "", fmt.Errorf("ReplicaSet %s/%s has no owner", replicaSet.Namespace, replicaSet.Name)
		}
		owner = &refs[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiCallTimeout)
	defer cancel()

	deployment, err := h.clientset.AppsV1().Deployments(replicaSet.Namespace).Get(ctx, owner.Name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get Deployment %s/%s owning ReplicaSet %s: %w", replicaSet.Namespace, owner.Name, replicaSet.Name, err)
	}
	return deployment.Namespace, nil
}

// KafkaEventHandler forwards Kafka changes as generic events so that the owning
// ManagedKafka is reconciled as soon as Strimzi reports a pause or readiness change.
type KafkaEventHandler struct {
	events chan<- event.GenericEvent
	logger logr.Logger
}

var _ cache.ResourceEventHandler = (*KafkaEventHandler)(nil)

// NewKafkaEventHandler creates a handler sending to events.
func NewKafkaEventHandler(events chan<- event.GenericEvent, logger logr.Logger) *KafkaEventHandler {
	return &KafkaEventHandler{events: events, logger: logger}
}

func (h *KafkaEventHandler) OnAdd(obj interface{}, _ bool) { h.forward(obj) }

func (h *KafkaEventHandler) OnUpdate(_, newObj interface{}) { h.forward(newObj) }

func (h *KafkaEventHandler) OnDelete(obj interface{}) {
	if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = tombstone.Obj
	}
	h.forward(obj)
}

// forward never blocks the informer; a dropped event is recovered by the
// periodic requeue of the ManagedKafka reconciler.
func (h *KafkaEventHandler) forward(obj interface{}) {
	kafka, ok := obj.(client.Object)
	if !ok {
		return
	}
	select {
	case h.events <- event.GenericEvent{Object: kafka}:
	default:
		h.logger.V(1).Info("Kafka event dropped; queue is full", "kafka", client.ObjectKeyFromObject(kafka))
	}
}
