package strimzi

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"

	"github.com/bf2/fleetshard-operator/internal/constants"
)

// Options configures a Manager.
type Options struct {
	// Client reads and writes the ManagedKafkaAgent.
	Client client.Client
	// Clientset backs the ReplicaSet and Deployment informers.
	Clientset kubernetes.Interface
	// Dynamic backs the Kafka informer.
	Dynamic dynamic.Interface
	// Namespace is where the ManagedKafkaAgent lives.
	Namespace string
	// VersionLabel overrides constants.DefaultStrimziVersionLabel.
	VersionLabel string
	// Resync overrides constants.InformerResync.
	Resync time.Duration
	// KafkaEvents, when set, receives an event for every Kafka change.
	KafkaEvents chan<- event.GenericEvent
	Logger      logr.Logger
}

// Manager tracks the installed Strimzi operator versions and coordinates the
// handover of Kafka resources between them. It is created once at startup, added
// to the controller manager as a Runnable and discarded at shutdown.
type Manager struct {
	registry    *VersionRegistry
	informers   *Informers
	coordinator *Coordinator
}

// NewManager wires the registry, informers, publisher and coordinator together.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	resync := opts.Resync
	if resync == 0 {
		resync = constants.InformerResync
	}

	registry := NewVersionRegistry()
	inf := newInformers(opts.Clientset, opts.Dynamic, resync, logger.WithName("informers"))
	publisher := NewAgentStatusPublisher(opts.Client, opts.Namespace, registry, inf, logger.WithName("status-publisher"))

	inf.replicaSetHandler = NewReplicaSetEventHandler(opts.Clientset, inf, logger.WithName("discovery"))
	inf.deploymentHandler = NewDeploymentEventHandler(registry, publisher, logger.WithName("deployments"))
	if opts.KafkaEvents != nil {
		inf.kafkaHandler = NewKafkaEventHandler(opts.KafkaEvents, logger.WithName("kafkas"))
	}

	return &Manager{
		registry:    registry,
		informers:   inf,
		coordinator: NewCoordinator(opts.VersionLabel, inf, registry, logger.WithName("coordinator")),
	}
}

// Start implements manager.Runnable. It blocks until ctx is done.
func (m *Manager) Start(ctx context.Context) error {
	return m.informers.Start(ctx)
}

// Registry returns the version registry.
func (m *Manager) Registry() *VersionRegistry {
	return m.registry
}

// Coordinator returns the handover coordinator.
func (m *Manager) Coordinator() *Coordinator {
	return m.coordinator
}

// Kafkas returns the local Kafka cache.
func (m *Manager) Kafkas() KafkaLookup {
	return m.informers
}
