package constants

// Environment variable keys read by the operator.
const (
	EnvPodNamespace = "POD_NAMESPACE"
)
