package strimzi

import (
	"strings"

	appsv1 "k8s.io/api/apps/v1"

	"github.com/bf2/fleetshard-operator/internal/constants"
)

// IsDeploymentReady reports whether a Deployment is fully rolled out: the desired
// replica count is known, every replica exists and at least that many are available.
func IsDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment == nil || deployment.Spec.Replicas == nil {
		return false
	}
	desired := *deployment.Spec.Replicas
	return deployment.Status.Replicas == desired && deployment.Status.AvailableReplicas >= desired
}

// IsStrimziDeployment reports whether name follows the Strimzi cluster operator naming convention.
func IsStrimziDeployment(name string) bool {
	return strings.HasPrefix(name, constants.StrimziDeploymentPrefix)
}
