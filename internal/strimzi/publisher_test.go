package strimzi

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

const agentNamespace = "kas-fleetshard"

type fakeKafkaWatch struct {
	calls int
	err   error
}

func (w *fakeKafkaWatch) EnsureKafkaInformer() error {
	w.calls++
	return w.err
}

func newPublisherClient(t *testing.T, objs ...client.Object) client.Client {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, managedkafkav1alpha1.AddToScheme(scheme))
	return fake.NewClientBuilder().
		WithScheme(scheme).
		WithStatusSubresource(&managedkafkav1alpha1.ManagedKafkaAgent{}).
		WithObjects(objs...).
		Build()
}

func newAgent(status *managedkafkav1alpha1.ManagedKafkaAgentStatus) *managedkafkav1alpha1.ManagedKafkaAgent {
	return &managedkafkav1alpha1.ManagedKafkaAgent{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "managed-agent",
			Namespace: agentNamespace,
		},
		Spec: managedkafkav1alpha1.ManagedKafkaAgentSpec{
			ClusterID: "cluster-1",
		},
		Status: status,
	}
}

func TestPublishUpdatesAgentStatus(t *testing.T) {
	ctx := context.Background()
	c := newPublisherClient(t, newAgent(&managedkafkav1alpha1.ManagedKafkaAgentStatus{}))

	registry := NewVersionRegistry()
	registry.RecordObserved("strimzi-cluster-operator.v0.22.1", true)
	registry.RecordObserved("strimzi-cluster-operator.v0.23.0", false)
	watch := &fakeKafkaWatch{}

	NewAgentStatusPublisher(c, agentNamespace, registry, watch, logr.Discard()).Publish(ctx)

	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: agentNamespace, Name: "managed-agent"}, agent))
	require.NotNil(t, agent.Status)
	require.Equal(t, []managedkafkav1alpha1.StrimziVersionStatus{
		{Version: "strimzi-cluster-operator.v0.22.1", Ready: true},
		{Version: "strimzi-cluster-operator.v0.23.0", Ready: false},
	}, agent.Status.Strimzi)
	require.Equal(t, 1, watch.calls)
}

func TestPublishOverwritesPreviousVersions(t *testing.T) {
	ctx := context.Background()
	c := newPublisherClient(t, newAgent(&managedkafkav1alpha1.ManagedKafkaAgentStatus{
		Strimzi: []managedkafkav1alpha1.StrimziVersionStatus{
			{Version: "strimzi-cluster-operator.v0.21.1", Ready: true},
		},
	}))

	registry := NewVersionRegistry()
	registry.RecordObserved("strimzi-cluster-operator.v0.23.0", true)

	NewAgentStatusPublisher(c, agentNamespace, registry, nil, logr.Discard()).Publish(ctx)

	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: agentNamespace, Name: "managed-agent"}, agent))
	require.Equal(t, []managedkafkav1alpha1.StrimziVersionStatus{
		{Version: "strimzi-cluster-operator.v0.23.0", Ready: true},
	}, agent.Status.Strimzi)
}

func TestPublishSkipsAgentWithoutStatus(t *testing.T) {
	ctx := context.Background()
	c := newPublisherClient(t, newAgent(nil))

	registry := NewVersionRegistry()
	registry.RecordObserved("strimzi-cluster-operator.v0.23.0", true)
	watch := &fakeKafkaWatch{}

	NewAgentStatusPublisher(c, agentNamespace, registry, watch, logr.Discard()).Publish(ctx)

	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: agentNamespace, Name: "managed-agent"}, agent))
	require.Nil(t, agent.Status)
	// The Kafka informer does not depend on the agent.
	require.Equal(t, 1, watch.calls)
}

func TestPublishWithoutAgent(t *testing.T) {
	c := newPublisherClient(t)

	registry := NewVersionRegistry()
	registry.RecordObserved("strimzi-cluster-operator.v0.23.0", true)
	watch := &fakeKafkaWatch{}

	require.NotPanics(t, func() {
		NewAgentStatusPublisher(c, agentNamespace, registry, watch, logr.Discard()).Publish(context.Background())
	})
	require.Equal(t, 1, watch.calls)
}

func TestPublishEmptyRegistryDoesNotArmKafkaWatch(t *testing.T) {
	ctx := context.Background()
	c := newPublisherClient(t, newAgent(&managedkafkav1alpha1.ManagedKafkaAgentStatus{
		Strimzi: []managedkafkav1alpha1.StrimziVersionStatus{
			{Version: "strimzi-cluster-operator.v0.23.0", Ready: true},
		},
	}))
	watch := &fakeKafkaWatch{}

	NewAgentStatusPublisher(c, agentNamespace, NewVersionRegistry(), watch, logr.Discard()).Publish(ctx)

	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: agentNamespace, Name: "managed-agent"}, agent))
	require.Empty(t, agent.Status.Strimzi)
	require.Equal(t, 0, watch.calls)
}

func TestPublishToleratesKafkaWatchFailure(t *testing.T) {
	c := newPublisherClient(t, newAgent(&managedkafkav1alpha1.ManagedKafkaAgentStatus{}))

	registry := NewVersionRegistry()
	registry.RecordObserved("strimzi-cluster-operator.v0.23.0", true)
	watch := &fakeKafkaWatch{err: errors.New("informers are not started")}
	publisher := NewAgentStatusPublisher(c, agentNamespace, registry, watch, logr.Discard())

	publisher.Publish(context.Background())
	publisher.Publish(context.Background())
	require.Equal(t, 2, watch.calls)
}

func TestPublishedVersionsMatchReplayedRegistry(t *testing.T) {
	ctx := context.Background()
	c := newPublisherClient(t, newAgent(&managedkafkav1alpha1.ManagedKafkaAgentStatus{}))

	deployments := []*appsv1.Deployment{
		newStrimziDeployment("strimzi-cluster-operator.v0.21.1", ptr.To[int32](1), 1, 1),
		newStrimziDeployment("strimzi-cluster-operator.v0.22.1", ptr.To[int32](1), 1, 0),
		newStrimziDeployment("strimzi-cluster-operator.v0.23.0", ptr.To[int32](2), 2, 2),
	}

	registry := NewVersionRegistry()
	handler := NewDeploymentEventHandler(registry,
		NewAgentStatusPublisher(c, agentNamespace, registry, nil, logr.Discard()), logr.Discard())
	for _, d := range deployments {
		handler.OnAdd(d, true)
	}
	handler.OnUpdate(deployments[1], newStrimziDeployment("strimzi-cluster-operator.v0.22.1", ptr.To[int32](1), 1, 1))

	agent := &managedkafkav1alpha1.ManagedKafkaAgent{}
	require.NoError(t, c.Get(ctx, types.NamespacedName{Namespace: agentNamespace, Name: "managed-agent"}, agent))

	// A restarted process only sees the current Deployments, in listing order.
	replayed := NewVersionRegistry()
	replayHandler := NewDeploymentEventHandler(replayed, nil, logr.Discard())
	for _, d := range []*appsv1.Deployment{
		newStrimziDeployment("strimzi-cluster-operator.v0.23.0", ptr.To[int32](2), 2, 2),
		newStrimziDeployment("strimzi-cluster-operator.v0.22.1", ptr.To[int32](1), 1, 1),
		newStrimziDeployment("strimzi-cluster-operator.v0.21.1", ptr.To[int32](1), 1, 1),
	} {
		replayHandler.OnAdd(d, true)
	}

	require.ElementsMatch(t, agent.Status.Strimzi, slices.Collect(replayed.Snapshot()))
}
