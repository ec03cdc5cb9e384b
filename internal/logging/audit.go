package logging

import (
	"slices"

	"github.com/go-logr/logr"

	"github.com/bf2/fleetshard-operator/internal/constants"
)

// Audit event types for changes the operator makes to Strimzi Kafka resources.
const (
	EventKafkaPaused                = "kafka_paused"
	EventKafkaUnpaused              = "kafka_unpaused"
	EventKafkaPauseReasonCleared    = "kafka_pause_reason_cleared"
	EventKafkaStrimziVersionChanged = "kafka_strimzi_version_changed"
)

// LogAuditEvent logs a structured audit event for operator actions.
// Audit events are distinct from regular debug/info logs and are tagged
// with "audit=true" for easy filtering in log aggregation systems.
// Fields are emitted in key order.
func LogAuditEvent(logger logr.Logger, eventType string, fields map[string]string) {
	auditLogger := logger.WithValues("audit", "true", "event_type", eventType)
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		auditLogger = auditLogger.WithValues(key, fields[key])
	}
	auditLogger.Info("Operator audit event")
}

// KafkaMetadataChange is a patch of the coordination metadata of one Kafka.
type KafkaMetadataChange struct {
	// Kafka is the namespace/name of the patched resource.
	Kafka          string
	VersionLabel   string
	OldLabels      map[string]string
	NewLabels      map[string]string
	OldAnnotations map[string]string
	NewAnnotations map[string]string
}

// LogKafkaMetadataChange emits one audit event per coordination action found in
// change and returns how many were emitted.
func LogKafkaMetadataChange(logger logr.Logger, change KafkaMetadataChange) int {
	emitted := 0
	emit := func(eventType string, fields map[string]string) {
		fields["kafka"] = change.Kafka
		LogAuditEvent(logger, eventType, fields)
		emitted++
	}

	oldPause, wasPaused := change.OldAnnotations[constants.AnnotationPauseReconciliation]
	newPause, isPaused := change.NewAnnotations[constants.AnnotationPauseReconciliation]
	switch {
	case !wasPaused && isPaused:
		emit(EventKafkaPaused, map[string]string{
			"reason": change.NewAnnotations[constants.AnnotationPauseReason],
			"value":  newPause,
		})
	case wasPaused && !isPaused:
		emit(EventKafkaUnpaused, map[string]string{"value": oldPause})
	}

	_, hadReason := change.OldAnnotations[constants.AnnotationPauseReason]
	_, hasReason := change.NewAnnotations[constants.AnnotationPauseReason]
	if hadReason && !hasReason {
		emit(EventKafkaPauseReasonCleared, map[string]string{
			"reason": change.OldAnnotations[constants.AnnotationPauseReason],
		})
	}

	from := change.OldLabels[change.VersionLabel]
	to := change.NewLabels[change.VersionLabel]
	if from != to {
		emit(EventKafkaStrimziVersionChanged, map[string]string{"from": from, "to": to})
	}
	return emitted
}
