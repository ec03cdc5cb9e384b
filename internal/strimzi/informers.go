package strimzi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/bf2/fleetshard-operator/internal/constants"
)

var (
	// KafkaGVR identifies the Strimzi Kafka custom resource.
	KafkaGVR = schema.GroupVersionResource{Group: "kafka.strimzi.io", Version: "v1beta2", Resource: "kafkas"}
	// KafkaGVK is the kind of the Strimzi Kafka custom resource.
	KafkaGVK = schema.GroupVersionKind{Group: "kafka.strimzi.io", Version: "v1beta2", Kind: "Kafka"}
)

// errInformersNotStarted is returned when a lazy informer is requested before Start.
var errInformersNotStarted = errors.New("informers are not started")

// KafkaLookup reads Kafka resources from the local informer cache.
type KafkaLookup interface {
	// GetLocalKafka returns the cached Kafka, or nil when it is unknown or the
	// Kafka informer is not armed yet. Callers must not mutate the result.
	GetLocalKafka(namespace, name string) *unstructured.Unstructured
}

// Informers owns the watches of the Strimzi manager: a cluster-wide ReplicaSet
// informer started with the process, a namespace-scoped Deployment informer armed by
// discovery, and a Kafka informer armed once a Strimzi version is known.
type Informers struct {
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
	resync    time.Duration
	logger    logr.Logger

	replicaSetHandler cache.ResourceEventHandler
	deploymentHandler cache.ResourceEventHandler
	kafkaHandler      cache.ResourceEventHandler

	mu        sync.Mutex
	ctx       context.Context
	shutdowns []func()

	kafkaArmed  atomic.Bool
	kafkaLister atomic.Pointer[cache.GenericLister]
}

func newInformers(clientset kubernetes.Interface, dyn dynamic.Interface, resync time.Duration, logger logr.Logger) *Informers {
	return &Informers{
		clientset: clientset,
		dynamic:   dyn,
		resync:    resync,
		logger:    logger,
	}
}

// Start runs the ReplicaSet discovery informer and blocks until ctx is done, then
// stops every informer created so far.
func (i *Informers) Start(ctx context.Context) error {
	i.mu.Lock()
	i.ctx = ctx
	i.mu.Unlock()

	selector := labels.SelectorFromSet(labels.Set{
		constants.LabelAppPartOf: constants.LabelValuePartOfManagedKafka,
	}).String()
	factory := informers.NewSharedInformerFactoryWithOptions(i.clientset, i.resync,
		informers.WithTweakListOptions(func(opts *metav1.ListOptions) {
			opts.LabelSelector = selector
		}),
	)
	if _, err := factory.Apps().V1().ReplicaSets().Informer().AddEventHandler(i.replicaSetHandler); err != nil {
		return fmt.Errorf("failed to register ReplicaSet event handler: %w", err)
	}
	i.logger.Info("Starting ReplicaSet informer", "labelSelector", selector)
	factory.Start(ctx.Done())

	<-ctx.Done()

	factory.Shutdown()
	i.mu.Lock()
	shutdowns := i.shutdowns
	i.shutdowns = nil
	i.mu.Unlock()
	for _, shutdown := range shutdowns {
		shutdown()
	}
	return nil
}

// ArmDeploymentInformer starts an informer on the Deployments of namespace.
// Name filtering happens in the event handler.
func (i *Informers) ArmDeploymentInformer(namespace string) error {
	ctx, err := i.runContext()
	if err != nil {
		return err
	}

	factory := informers.NewSharedInformerFactoryWithOptions(i.clientset, i.resync, informers.WithNamespace(namespace))
	if _, err := factory.Apps().V1().Deployments().Informer().AddEventHandler(i.deploymentHandler); err != nil {
		return fmt.Errorf("failed to register Deployment event handler: %w", err)
	}
	factory.Start(ctx.Done())
	i.addShutdown(factory.Shutdown)
	return nil
}

// EnsureKafkaInformer starts the cluster-wide Kafka informer the first time it is called.
func (i *Informers) EnsureKafkaInformer() error {
	if !i.kafkaArmed.CompareAndSwap(false, true) {
		return nil
	}
	ctx, err := i.runContext()
	if err != nil {
		i.kafkaArmed.Store(false)
		return err
	}

	i.logger.Info("Creating Kafka informer", "resource", KafkaGVR.String())
	factory := dynamicinformer.NewDynamicSharedInformerFactory(i.dynamic, i.resync)
	informer := factory.ForResource(KafkaGVR)
	if i.kafkaHandler != nil {
		if _, err := informer.Informer().AddEventHandler(i.kafkaHandler); err != nil {
			i.kafkaArmed.Store(false)
			return fmt.Errorf("failed to register Kafka event handler: %w", err)
		}
	}
	lister := informer.Lister()
	i.kafkaLister.Store(&lister)
	factory.Start(ctx.Done())
	i.addShutdown(factory.Shutdown)

	watchesArmedTotal.WithLabelValues(watchKafkas).Inc()
	return nil
}

// GetLocalKafka implements KafkaLookup.
func (i *Informers) GetLocalKafka(namespace, name string) *unstructured.Unstructured {
	lister := i.kafkaLister.Load()
	if lister == nil {
		return nil
	}
	obj, err := (*lister).ByNamespace(namespace).Get(name)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			i.logger.Error(err, "Failed to read Kafka from cache", "namespace", namespace, "name", name)
		}
		return nil
	}
	kafka, ok := obj.(*unstructured.Unstructured)
	if !ok {
		return nil
	}
	return kafka
}

func (i *Informers) runContext() (context.Context, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.ctx == nil {
		return nil, errInformersNotStarted
	}
	return i.ctx, nil
}

func (i *Informers) addShutdown(shutdown func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.shutdowns = append(i.shutdowns, shutdown)
}
