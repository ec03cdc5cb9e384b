package constants

// Common Kubernetes label keys used by the operator.
const (
	LabelAppName      = "app.kubernetes.io/name"
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
	LabelAppPartOf    = "app.kubernetes.io/part-of"

	// DefaultStrimziVersionLabel pins a Kafka resource to one installed Strimzi operator.
	// It must match STRIMZI_CUSTOM_RESOURCE_SELECTOR in the Strimzi Deployment(s).
	DefaultStrimziVersionLabel = "managedkafka.bf2.org/strimziVersion"
)

// Common label values used by the operator.
const (
	LabelValuePartOfManagedKafka        = "managed-kafka"
	LabelValueManagedByFleetshard       = "kas-fleetshard-operator"
	LabelValueAppNameFleetshardOperator = "kas-fleetshard-operator"
)
