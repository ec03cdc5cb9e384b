package constants

import "time"

// Requeue intervals used by controllers.
const (
	RequeueShort    = 5 * time.Second
	RequeueStandard = 1 * time.Minute

	// InformerResync is the resync period of the Strimzi and Kafka informers.
	InformerResync = 10 * time.Minute
)
