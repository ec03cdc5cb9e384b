package constants

// Annotation keys shared with the Strimzi cluster operator. The values are part of
// the handover protocol and must match what Strimzi expects byte for byte.
const (
	// AnnotationPauseReconciliation stops Strimzi from reconciling a Kafka resource
	// while it is set to AnnotationValueTrue.
	AnnotationPauseReconciliation = "strimzi.io/pause-reconciliation"
	// AnnotationPauseReason records why the fleetshard operator paused a Kafka resource.
	AnnotationPauseReason = "managedkafka.bf2.org/pause-reason"

	AnnotationValueTrue = "true"

	// PauseReasonStrimziUpdating marks a pause requested for a Strimzi version handover.
	PauseReasonStrimziUpdating = "strimziupdating"
)
