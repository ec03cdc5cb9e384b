package managedkafka

import (
	"time"

	"golang.org/x/time/rate"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/source"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
	controllerutil "github.com/bf2/fleetshard-operator/internal/controller"
)

// SetupWithManager registers the ManagedKafka controller.
//
// Kafka resources are not watched through the manager cache: the Strimzi manager
// owns a dynamic informer for them and forwards its events on KafkaEvents. A Kafka
// shares the namespace and name of its ManagedKafka, so the event maps directly to
// a request.
func (r *ManagedKafkaReconciler) SetupWithManager(mgr ctrl.Manager) error {
	b := ctrl.NewControllerManagedBy(mgr).
		For(&managedkafkav1alpha1.ManagedKafka{}, builder.WithPredicates(controllerutil.ManagedKafkaPredicate())).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: 2,
			RateLimiter: workqueue.NewTypedMaxOfRateLimiter(
				workqueue.NewTypedItemExponentialFailureRateLimiter[ctrl.Request](1*time.Second, 60*time.Second),
				&workqueue.TypedBucketRateLimiter[ctrl.Request]{Limiter: rate.NewLimiter(rate.Limit(10), 100)},
			),
		})

	if r.KafkaEvents != nil {
		b = b.WatchesRawSource(source.Channel(r.KafkaEvents, &handler.EnqueueRequestForObject{}))
	}

	return b.Named(constants.ControllerNameManagedKafka).Complete(r)
}
