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
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that exec-entrypoint and run can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/filters"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
	"github.com/bf2/fleetshard-operator/internal/constants"
	managedkafkacontroller "github.com/bf2/fleetshard-operator/internal/controller/managedkafka"
	"github.com/bf2/fleetshard-operator/internal/strimzi"
)

// kafkaEventBuffer bounds the Kafka events waiting for the controller queue.
const kafkaEventBuffer = 256

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(managedkafkav1alpha1.AddToScheme(scheme))
}

type options struct {
	metricsAddr          string
	probeAddr            string
	enableLeaderElection bool
	secureMetrics        bool
	enableHTTP2          bool
	metricsCertPath      string
	metricsCertName      string
	metricsCertKey       string
	strimziVersionLabel  string
	informerResync       time.Duration
	zap                  zap.Options
}

func parseFlags(args []string) (*options, error) {
	opts := &options{
		zap: zap.Options{Development: true},
	}

	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	fs.StringVar(&opts.metricsAddr, "metrics-bind-address", ":8443", "The address the metrics endpoint binds to.")
	fs.StringVar(&opts.probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	fs.BoolVar(&opts.enableLeaderElection, "leader-elect", false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	fs.BoolVar(&opts.secureMetrics, "metrics-secure", true,
		"If set, the metrics endpoint is served securely via HTTPS. Use --metrics-secure=false to use HTTP instead.")
	fs.StringVar(&opts.metricsCertPath, "metrics-cert-path", "",
		"The directory that contains the metrics server certificate.")
	fs.StringVar(&opts.metricsCertName, "metrics-cert-name", "tls.crt", "The name of the metrics server certificate file.")
	fs.StringVar(&opts.metricsCertKey, "metrics-cert-key", "tls.key", "The name of the metrics server key file.")
	fs.BoolVar(&opts.enableHTTP2, "enable-http2", false,
		"If set, HTTP/2 will be enabled for the metrics server")
	fs.StringVar(&opts.strimziVersionLabel, "strimzi-version-label", constants.DefaultStrimziVersionLabel,
		"Label pinning a Kafka resource to a Strimzi operator version. "+
			"Must match STRIMZI_CUSTOM_RESOURCE_SELECTOR of the Strimzi Deployments.")
	fs.DurationVar(&opts.informerResync, "informer-resync", constants.InformerResync,
		"Resync period of the Strimzi Deployment and Kafka informers.")
	opts.zap.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.strimziVersionLabel == "" {
		return nil, errors.New("--strimzi-version-label must not be empty")
	}
	return opts, nil
}

// operatorNamespace returns the namespace of the ManagedKafkaAgent.
func operatorNamespace() string {
	if namespace := os.Getenv(constants.EnvPodNamespace); namespace != "" {
		return namespace
	}
	return constants.DefaultOperatorNamespace
}

// Run starts the ManagedKafka controller manager together with the Strimzi
// version discovery.
func Run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zap)))

	// if the enable-http2 flag is false (the default), http/2 should be disabled
	// due to its vulnerabilities. More specifically, disabling http/2 will
	// prevent from being vulnerable to the HTTP/2 Stream Cancellation and
	// Rapid Reset CVEs.
	var tlsOpts []func(*tls.Config)
	if !opts.enableHTTP2 {
		tlsOpts = append(tlsOpts, func(c *tls.Config) {
			setupLog.Info("disabling http/2")
			c.NextProtos = []string{"http/1.1"}
		})
	}

	metricsServerOptions := metricsserver.Options{
		BindAddress:   opts.metricsAddr,
		SecureServing: opts.secureMetrics,
		TLSOpts:       tlsOpts,
	}
	if opts.secureMetrics {
		metricsServerOptions.FilterProvider = filters.WithAuthenticationAndAuthorization
	}
	if len(opts.metricsCertPath) > 0 {
		setupLog.Info("Initializing metrics certificate watcher using provided certificates",
			"metrics-cert-path", opts.metricsCertPath, "metrics-cert-name", opts.metricsCertName, "metrics-cert-key", opts.metricsCertKey)
		metricsServerOptions.CertDir = opts.metricsCertPath
		metricsServerOptions.CertName = opts.metricsCertName
		metricsServerOptions.KeyName = opts.metricsCertKey
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsServerOptions,
		HealthProbeBindAddress: opts.probeAddr,
		LeaderElection:         opts.enableLeaderElection,
		LeaderElectionID:       "fleetshard-operator-leader.managedkafka.bf2.org",
		// The agent status is read and written from informer callbacks. Reading it
		// through the cache would hand out stale resource versions.
		Client: client.Options{
			Cache: &client.CacheOptions{
				DisableFor: []client.Object{&managedkafkav1alpha1.ManagedKafkaAgent{}},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("unable to start manager: %w", err)
	}

	config := mgr.GetConfig()
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("unable to create Kubernetes clientset: %w", err)
	}
	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("unable to create dynamic client: %w", err)
	}

	namespace := operatorNamespace()
	setupLog.Info("Using operator namespace", "namespace", namespace)

	kafkaEvents := make(chan event.GenericEvent, kafkaEventBuffer)
	strimziManager := strimzi.NewManager(strimzi.Options{
		Client:       mgr.GetClient(),
		Clientset:    clientset,
		Dynamic:      dynamicClient,
		Namespace:    namespace,
		VersionLabel: opts.strimziVersionLabel,
		Resync:       opts.informerResync,
		KafkaEvents:  kafkaEvents,
		Logger:       ctrl.Log.WithName("strimzi-manager"),
	})
	if err := mgr.Add(strimziManager); err != nil {
		return fmt.Errorf("unable to add Strimzi manager: %w", err)
	}

	if err := (&managedkafkacontroller.ManagedKafkaReconciler{
		Client:      mgr.GetClient(),
		Scheme:      mgr.GetScheme(),
		Coordinator: strimziManager.Coordinator(),
		Kafkas:      strimziManager.Kafkas(),
		KafkaEvents: kafkaEvents,
	}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to create controller %s: %w", constants.ControllerNameManagedKafka, err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	setupLog.Info("starting controller manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		return fmt.Errorf("problem running manager: %w", err)
	}
	return nil
}
