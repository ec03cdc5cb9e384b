package constants

// Well-known resource names.
const (
	// StrimziDeploymentPrefix identifies Strimzi cluster operator Deployments. The full
	// Deployment name doubles as the Strimzi version identifier.
	StrimziDeploymentPrefix = "strimzi-cluster-operator"

	// AgentResourceName is the name of the singleton ManagedKafkaAgent.
	AgentResourceName = "managed-agent"

	// DefaultOperatorNamespace is used when POD_NAMESPACE is not set.
	DefaultOperatorNamespace = "kas-fleetshard"
)

// Controller names.
const (
	ControllerNameManagedKafka = "managedkafka"
)
