package strimzi

import (
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

const (
	versionLabel = "managedkafka.bf2.org/strimziVersion"
	pauseKey     = "strimzi.io/pause-reconciliation"
	reasonKey    = "managedkafka.bf2.org/pause-reason"

	strimzi0211 = "strimzi-cluster-operator.v0.21.1"
	strimzi0230 = "strimzi-cluster-operator.v0.23.0"
)

type kafkaCache map[string]*unstructured.Unstructured

func (c kafkaCache) GetLocalKafka(namespace, name string) *unstructured.Unstructured {
	return c[namespace+"/"+name]
}

type stubCluster struct {
	readyNotUpdating bool
	paused           bool
}

func (s stubCluster) IsReadyNotUpdating(*managedkafkav1alpha1.ManagedKafka) bool { return s.readyNotUpdating }

func (s stubCluster) IsReconciliationPaused(*managedkafkav1alpha1.ManagedKafka) bool { return s.paused }

var _ = Describe("Coordinator", func() {
	var (
		kafkas       kafkaCache
		registry     *VersionRegistry
		coordinator  *Coordinator
		managedKafka *managedkafkav1alpha1.ManagedKafka
		annotations  map[string]string
		labels       map[string]string
	)

	observeKafka := func(version string) {
		kafka := newKafka("mk-1", "my-cluster", version)
		kafkas["mk-1/my-cluster"] = kafka
	}

	BeforeEach(func() {
		kafkas = kafkaCache{}
		registry = NewVersionRegistry()
		coordinator = NewCoordinator("", kafkas, registry, logr.Discard())
		managedKafka = &managedkafkav1alpha1.ManagedKafka{
			ObjectMeta: metav1.ObjectMeta{Namespace: "mk-1", Name: "my-cluster"},
			Spec: managedkafkav1alpha1.ManagedKafkaSpec{
				Versions: managedkafkav1alpha1.Versions{Kafka: "2.7.0", Strimzi: strimzi0230},
			},
		}
		annotations = map[string]string{}
		labels = map[string]string{}
	})

	It("uses the default version label", func() {
		Expect(coordinator.VersionLabel()).To(Equal(versionLabel))
		Expect(NewCoordinator("example.com/strimzi", kafkas, registry, logr.Discard()).VersionLabel()).
			To(Equal("example.com/strimzi"))
	})

	Context("when the Kafka does not exist yet", func() {
		It("uses the requested version without pausing", func() {
			Expect(coordinator.HasStrimziChanged(managedKafka)).To(BeFalse())

			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{}, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{}, labels)

			Expect(annotations).To(BeEmpty())
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})
	})

	Context("when the Kafka carries no version label", func() {
		It("falls back to the requested version", func() {
			kafka := newKafka("mk-1", "my-cluster", "")
			kafka.SetLabels(nil)
			kafkas["mk-1/my-cluster"] = kafka

			Expect(coordinator.CurrentStrimziVersion(managedKafka)).To(Equal(strimzi0230))
		})
	})

	Context("when the versions are consistent", func() {
		BeforeEach(func() {
			observeKafka(strimzi0230)
		})

		It("leaves the Kafka alone", func() {
			cluster := stubCluster{readyNotUpdating: true}
			coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

			Expect(annotations).To(BeEmpty())
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})

		It("clears our pause reason once the Kafka is ready", func() {
			annotations[reasonKey] = "strimziupdating"

			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{readyNotUpdating: true}, annotations)

			Expect(annotations).NotTo(HaveKey(reasonKey))
		})

		It("keeps our pause reason while the Kafka is still rolling", func() {
			annotations[reasonKey] = "strimziupdating"

			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{}, annotations)

			Expect(annotations).To(HaveKeyWithValue(reasonKey, "strimziupdating"))
		})

		It("never touches a pause set by someone else", func() {
			annotations[pauseKey] = "true"
			annotations[reasonKey] = "maintenance"

			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{readyNotUpdating: true, paused: true}, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{readyNotUpdating: true, paused: true}, labels)

			Expect(annotations).To(Equal(map[string]string{pauseKey: "true", reasonKey: "maintenance"}))
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})
	})

	Context("when moving from 0.21.1 to 0.23.0", func() {
		BeforeEach(func() {
			observeKafka(strimzi0211)
		})

		It("reports the pending change", func() {
			Expect(coordinator.CurrentStrimziVersion(managedKafka)).To(Equal(strimzi0211))
			Expect(coordinator.HasStrimziChanged(managedKafka)).To(BeTrue())
		})

		It("waits while the Kafka is updating", func() {
			cluster := stubCluster{}
			coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

			Expect(annotations).To(BeEmpty())
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0211}))
		})

		It("pauses a ready Kafka and keeps the current owner", func() {
			cluster := stubCluster{readyNotUpdating: true}
			coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

			Expect(annotations).To(Equal(map[string]string{pauseKey: "true", reasonKey: "strimziupdating"}))
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0211}))
		})

		It("does not overwrite an existing pause annotation", func() {
			annotations[pauseKey] = "custom"

			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{readyNotUpdating: true}, annotations)

			Expect(annotations).To(HaveKeyWithValue(pauseKey, "custom"))
			Expect(annotations).To(HaveKeyWithValue(reasonKey, "strimziupdating"))
		})

		It("hands over and unpauses once Strimzi reports the pause", func() {
			annotations[pauseKey] = "true"
			annotations[reasonKey] = "strimziupdating"
			cluster := stubCluster{paused: true}

			coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

			Expect(annotations).To(Equal(map[string]string{reasonKey: "strimziupdating"}))
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})

		It("keeps a foreign pause while still handing over", func() {
			annotations[pauseKey] = "true"
			cluster := stubCluster{paused: true}

			coordinator.TogglePauseReconciliation(managedKafka, cluster, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, cluster, labels)

			Expect(annotations).To(Equal(map[string]string{pauseKey: "true"}))
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})

		It("only writes the version label", func() {
			labels["app"] = "kafka"
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{paused: true}, labels)

			Expect(labels).To(Equal(map[string]string{"app": "kafka", versionLabel: strimzi0230}))
		})

		It("completes the full handover over successive passes", func() {
			By("pausing the ready Kafka")
			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{readyNotUpdating: true}, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{readyNotUpdating: true}, labels)
			Expect(annotations).To(HaveKeyWithValue(pauseKey, "true"))
			Expect(labels).To(HaveKeyWithValue(versionLabel, strimzi0211))

			By("handing over once the pause is acknowledged")
			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{paused: true}, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{paused: true}, labels)
			Expect(annotations).NotTo(HaveKey(pauseKey))
			Expect(labels).To(HaveKeyWithValue(versionLabel, strimzi0230))

			By("observing the new owner on the Kafka")
			observeKafka(strimzi0230)
			Expect(coordinator.HasStrimziChanged(managedKafka)).To(BeFalse())

			By("waiting for the new operator to roll the Kafka")
			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{}, annotations)
			Expect(annotations).To(HaveKeyWithValue(reasonKey, "strimziupdating"))

			By("clearing the reason once the Kafka is ready")
			coordinator.TogglePauseReconciliation(managedKafka, stubCluster{readyNotUpdating: true}, annotations)
			coordinator.ChangeStrimziVersion(managedKafka, stubCluster{readyNotUpdating: true}, labels)
			Expect(annotations).To(BeEmpty())
			Expect(labels).To(Equal(map[string]string{versionLabel: strimzi0230}))
		})
	})

	Context("when checking the requested version", func() {
		It("requires the version to be installed and ready", func() {
			Expect(coordinator.IsStrimziVersionReady(managedKafka)).To(BeFalse())

			registry.RecordObserved(strimzi0230, false)
			Expect(coordinator.IsStrimziVersionReady(managedKafka)).To(BeFalse())

			registry.RecordObserved(strimzi0230, true)
			Expect(coordinator.IsStrimziVersionReady(managedKafka)).To(BeTrue())
		})

		It("reports not ready without a registry", func() {
			Expect(NewCoordinator("", kafkas, nil, logr.Discard()).IsStrimziVersionReady(managedKafka)).To(BeFalse())
		})
	})
})
