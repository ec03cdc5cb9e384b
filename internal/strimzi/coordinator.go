package strimzi

import (
	"github.com/go-logr/logr"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
)

// KafkaCluster exposes the readiness predicates the coordinator depends on. They are
// computed by the enclosing reconciler from the observed Kafka resource.
type KafkaCluster interface {
	IsReadyNotUpdating(managedKafka *managedkafkav1alpha1.ManagedKafka) bool
	IsReconciliationPaused(managedKafka *managedkafkav1alpha1.ManagedKafka) bool
}

// Coordinator hands a Kafka resource over from one Strimzi operator version to
// another without a lock, using only the version selector label and the pause
// annotations carried by the Kafka resource:
//
//	Stable            no pause, label = current version
//	AwaitingPause     desired version changed, Kafka still updating
//	PausedForHandover pause + reason set once the Kafka is ready and not updating
//	HandedOver        label = desired version, pause removed in the same pass
//	Stable            pause reason removed once the Kafka is ready again
//
// Both operations mutate the map supplied by the caller and never perform I/O.
type Coordinator struct {
	versionLabel string
	kafkas       KafkaLookup
	registry     *VersionRegistry
	logger       logr.Logger
}

// NewCoordinator creates a coordinator. versionLabel must match the custom resource
// selector configured on the Strimzi operator Deployments.
func NewCoordinator(versionLabel string, kafkas KafkaLookup, registry *VersionRegistry, logger logr.Logger) *Coordinator {
	if versionLabel == "" {
		versionLabel = constants.DefaultStrimziVersionLabel
	}
	return &Coordinator{
		versionLabel: versionLabel,
		kafkas:       kafkas,
		registry:     registry,
		logger:       logger,
	}
}

// VersionLabel returns the label key used to pin a Kafka to a Strimzi version.
func (c *Coordinator) VersionLabel() string {
	return c.versionLabel
}

// TogglePauseReconciliation pauses or unpauses the Strimzi reconciliation of the
// Kafka backing managedKafka.
//
// Keys it may touch in annotations:
//   - AnnotationPauseReconciliation: added (if absent) when a version change is
//     requested and the Kafka is ready and not updating; removed when a version
//     change is requested, the Kafka reports the pause and the reason is ours.
//   - AnnotationPauseReason: set to PauseReasonStrimziUpdating together with the
//     pause; removed once the version is consistent and the Kafka is ready again.
//
// A pause set by anyone else (no reason, or another reason) is never removed.
func (c *Coordinator) TogglePauseReconciliation(managedKafka *managedkafkav1alpha1.ManagedKafka, cluster KafkaCluster, annotations map[string]string) {
	if c.HasStrimziChanged(managedKafka) {
		c.logger.Info("Strimzi version change requested",
			"managedKafka", managedKafka.Namespace+"/"+managedKafka.Name,
			"from", c.CurrentStrimziVersion(managedKafka),
			"to", managedKafka.Spec.Versions.Strimzi)

		switch {
		case cluster.IsReadyNotUpdating(managedKafka):
			c.pauseReconcile(managedKafka, annotations)
			annotations[constants.AnnotationPauseReason] = constants.PauseReasonStrimziUpdating
		case cluster.IsReconciliationPaused(managedKafka) && isPauseReasonStrimziUpdate(annotations):
			c.unpauseReconcile(managedKafka, annotations)
		}
		return
	}

	if cluster.IsReadyNotUpdating(managedKafka) && isPauseReasonStrimziUpdate(annotations) {
		delete(annotations, constants.AnnotationPauseReason)
		handoverActionsTotal.WithLabelValues(handoverActionReasonClear).Inc()
	}
}

// ChangeStrimziVersion sets the version selector label in labels. It is the only
// key this operation touches.
//
// While the Kafka is paused and a change is pending the label moves to the desired
// version, which makes the new Strimzi operator the owner. In every other state the
// label keeps the version currently owning the Kafka.
func (c *Coordinator) ChangeStrimziVersion(managedKafka *managedkafkav1alpha1.ManagedKafka, cluster KafkaCluster, labels map[string]string) {
	current := c.CurrentStrimziVersion(managedKafka)

	if cluster.IsReconciliationPaused(managedKafka) && c.HasStrimziChanged(managedKafka) {
		desired := managedKafka.Spec.Versions.Strimzi
		c.logger.Info("Handing Kafka over to Strimzi version",
			"managedKafka", managedKafka.Namespace+"/"+managedKafka.Name,
			"from", current, "to", desired)
		labels[c.versionLabel] = desired
		handoverActionsTotal.WithLabelValues(handoverActionVersionLabel).Inc()
		return
	}
	labels[c.versionLabel] = current
}

// HasStrimziChanged reports whether the requested Strimzi version differs from the
// one currently owning the Kafka.
func (c *Coordinator) HasStrimziChanged(managedKafka *managedkafkav1alpha1.ManagedKafka) bool {
	return c.CurrentStrimziVersion(managedKafka) != managedKafka.Spec.Versions.Strimzi
}

// CurrentStrimziVersion returns the version selector label of the cached Kafka. When
// the Kafka or its label does not exist yet, the requested version is returned, so
// the first creation is never seen as a change.
func (c *Coordinator) CurrentStrimziVersion(managedKafka *managedkafkav1alpha1.ManagedKafka) string {
	if c.kafkas != nil {
		if kafka := c.kafkas.GetLocalKafka(managedKafka.Namespace, managedKafka.Name); kafka != nil {
			if version, ok := kafka.GetLabels()[c.versionLabel]; ok {
				return version
			}
		}
	}
	return managedKafka.Spec.Versions.Strimzi
}

// IsStrimziVersionReady reports whether the requested Strimzi version is installed
// and its operator Deployment is ready.
func (c *Coordinator) IsStrimziVersionReady(managedKafka *managedkafkav1alpha1.ManagedKafka) bool {
	if c.registry == nil {
		return false
	}
	status, ok := c.registry.Lookup(managedKafka.Spec.Versions.Strimzi)
	return ok && status.Ready
}

func (c *Coordinator) pauseReconcile(managedKafka *managedkafkav1alpha1.ManagedKafka, annotations map[string]string) {
	if _, ok := annotations[constants.AnnotationPauseReconciliation]; ok {
		return
	}
	c.logger.V(1).Info("Pause reconcile", "managedKafka", managedKafka.Name)
	annotations[constants.AnnotationPauseReconciliation] = constants.AnnotationValueTrue
	handoverActionsTotal.WithLabelValues(handoverActionPause).Inc()
}

func (c *Coordinator) unpauseReconcile(managedKafka *managedkafkav1alpha1.ManagedKafka, annotations map[string]string) {
	if _, ok := annotations[constants.AnnotationPauseReconciliation]; !ok {
		return
	}
	c.logger.V(1).Info("Unpause reconcile", "managedKafka", managedKafka.Name)
	delete(annotations, constants.AnnotationPauseReconciliation)
	handoverActionsTotal.WithLabelValues(handoverActionUnpause).Inc()
}

func isPauseReasonStrimziUpdate(annotations map[string]string) bool {
	return annotations[constants.AnnotationPauseReason] == constants.PauseReasonStrimziUpdating
}
