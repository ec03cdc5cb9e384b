package constants

// Strimzi Kafka status condition types.
const (
	KafkaConditionReady                = "Ready"
	KafkaConditionNotReady             = "NotReady"
	KafkaConditionReconciliationPaused = "ReconciliationPaused"
)

// Strimzi sets these reasons on the NotReady condition while a rolling update runs.
const (
	KafkaReasonCreating = "Creating"
)
