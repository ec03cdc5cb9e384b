package strimzi

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
)

// StatusPublisher propagates the registry contents after a significant change.
type StatusPublisher interface {
	Publish(ctx context.Context)
}

// KafkaWatchArmer creates the Kafka informer once at least one Strimzi version exists.
type KafkaWatchArmer interface {
	EnsureKafkaInformer() error
}

// AgentStatusPublisher writes the installed Strimzi versions to the singleton
// ManagedKafkaAgent status and arms the Kafka informer when a version is known.
//
// Failures are logged and never retried here: the next registry change
// recomputes the full list from a fresh snapshot anyway.
type AgentStatusPublisher struct {
	client     client.Client
	namespace  string
	registry   *VersionRegistry
	kafkaWatch KafkaWatchArmer
	logger     logr.Logger
}

// NewAgentStatusPublisher creates a publisher for the agent living in namespace.
// kafkaWatch may be nil when no Kafka informer should be armed.
func NewAgentStatusPublisher(c client.Client, namespace string, registry *VersionRegistry, kafkaWatch KafkaWatchArmer, logger logr.Logger) *AgentStatusPublisher {
	return &AgentStatusPublisher{
		client:     c,
		namespace:  namespace,
		registry:   registry,
		kafkaWatch: kafkaWatch,
		logger:     logger,
	}
}

// Publish pushes the current registry snapshot.
func (p *AgentStatusPublisher) Publish(ctx context.Context) {
	versions := p.registry.Versions()
	observeVersions(versions)

	if err := p.updateAgentStatus(ctx, versions); err != nil {
		statusPublishErrorsTotal.Inc()
		p.logger.Error(err, "Failed to publish Strimzi versions")
	}

	if len(versions) == 0 || p.kafkaWatch == nil {
		return
	}
	if err := p.kafkaWatch.EnsureKafkaInformer(); err != nil {
		p.logger.Error(err, "Failed to create Kafka informer")
	}
}

func (p *AgentStatusPublisher) updateAgentStatus(ctx context.Context, versions []managedkafkav1alpha1.StrimziVersionStatus) error {
	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	key := types.NamespacedName{Namespace: p.namespace, Name: constants.AgentResourceName}
	if err := p.client.Get(ctx, key, agent); err != nil {
		if apierrors.IsNotFound(err) {
			p.logger.V(1).Info("ManagedKafkaAgent not found; skipping Strimzi versions update", "agent", key)
			return nil
		}
		return fmt.Errorf("failed to get ManagedKafkaAgent %s: %w", key, err)
	}
	// The sync component initializes the status block; until then there is nothing to update.
	if agent.Status == nil {
		return nil
	}

	p.logger.V(1).Info("Updating Strimzi versions", "versions", versions)
	agent.Status.Strimzi = versions
	if err := p.client.Status().Update(ctx, agent); err != nil {
		return fmt.Errorf("failed to update ManagedKafkaAgent %s status: %w", key, err)
	}
	return nil
}
