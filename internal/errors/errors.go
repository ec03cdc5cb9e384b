// Package errors classifies failures of the reconcile loop into transient errors,
// which are requeued with a short delay, and permanent ones, which wait for a change
// of the watched resources.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
)

// ErrTransientKubernetesAPI indicates a transient Kubernetes API error that should be retried.
// This includes optimistic concurrency conflicts, rate limiting and temporary server errors.
var ErrTransientKubernetesAPI = errors.New("transient Kubernetes API error")

// ErrPermanentConfig indicates a configuration error that requires user intervention.
var ErrPermanentConfig = errors.New("permanent configuration error")

// ErrPermanentPrerequisitesMissing indicates that a prerequisite, such as the Strimzi
// Kafka CRD or a ready Strimzi operator, is missing.
var ErrPermanentPrerequisitesMissing = errors.New("permanent prerequisites missing")

// transientRequeueDelay is used for every transient error.
const transientRequeueDelay = 5 * time.Second

// IsTransientKubernetesAPI checks if an error is a transient Kubernetes API error.
func IsTransientKubernetesAPI(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransientKubernetesAPI) {
		return true
	}

	if apierrors.IsConflict(err) ||
		apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"context deadline exceeded",
		"i/o timeout",
		"the object has been modified",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// WrapTransientKubernetesAPI wraps an error as a transient Kubernetes API error.
func WrapTransientKubernetesAPI(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTransientKubernetesAPI) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransientKubernetesAPI, err)
}

// WrapPermanentConfig wraps an error as a permanent configuration error.
func WrapPermanentConfig(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanentConfig, err)
}

// WrapPermanentPrerequisitesMissing wraps an error as a permanent prerequisites missing error.
func WrapPermanentPrerequisitesMissing(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanentPrerequisitesMissing, err)
}

// IsPermanent checks if an error requires user intervention.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrPermanentConfig) || errors.Is(err, ErrPermanentPrerequisitesMissing)
}

// ShouldRequeue determines if an error should trigger a requeue and after what delay.
// A zero delay leaves backoff to the controller-runtime rate limiter.
func ShouldRequeue(err error) (bool, time.Duration) {
	if err == nil {
		return false, 0
	}
	if IsTransientKubernetesAPI(err) {
		return true, transientRequeueDelay
	}
	if IsPermanent(err) {
		return false, 0
	}
	return true, 0
}

// IsCRDMissingError checks if an error indicates that a CRD is not installed.
func IsCRDMissingError(err error) bool {
	if err == nil {
		return false
	}
	if meta.IsNoMatchError(err) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no matches for kind") ||
		strings.Contains(errStr, "could not find the requested resource")
}

// WrapCRDMissing wraps an error as a permanent prerequisites error for missing CRDs.
func WrapCRDMissing(err error) error {
	if err == nil {
		return nil
	}
	if IsCRDMissingError(err) {
		return WrapPermanentPrerequisitesMissing(fmt.Errorf("CRD not installed: %w", err))
	}
	return err
}

// Reason returns a low-cardinality classification of err for metrics labels.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTransientKubernetesAPI(err):
		return "TransientKubernetesAPI"
	case errors.Is(err, ErrPermanentPrerequisitesMissing):
		return "PrerequisitesMissing"
	case errors.Is(err, ErrPermanentConfig):
		return "Config"
	default:
		return "Error"
	}
}
