package strimzi

import (
	"iter"
	"slices"
	"sync"

	managedkafkav1alpha1 "github.com/bf2/fleetshard-operator/api/v1alpha1"
)

// VersionRegistry is the in-memory projection of the Strimzi operator Deployments
// observed by the informers. It lives as long as the operator process and is never
// persisted: on restart it is rebuilt from the informers' initial listing.
//
// Entries are keyed by Deployment name. Snapshots list entries in the order each
// name was first recorded; re-recording an existing name keeps its position.
type VersionRegistry struct {
	mu       sync.RWMutex
	order    []string
	versions map[string]managedkafkav1alpha1.StrimziVersionStatus
}

// NewVersionRegistry returns an empty registry.
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{
		versions: make(map[string]managedkafkav1alpha1.StrimziVersionStatus),
	}
}

// RecordObserved upserts the readiness of the given Strimzi version. Last write wins.
func (r *VersionRegistry) RecordObserved(identity string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.versions[identity]; !ok {
		r.order = append(r.order, identity)
	}
	r.versions[identity] = managedkafkav1alpha1.StrimziVersionStatus{
		Version: identity,
		Ready:   ready,
	}
}

// RecordRemoved forgets the given Strimzi version. Unknown identities are ignored,
// since informer replays can deliver deletes for entries never added in this process.
func (r *VersionRegistry) RecordRemoved(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.versions[identity]; !ok {
		return
	}
	delete(r.versions, identity)
	r.order = slices.DeleteFunc(r.order, func(name string) bool { return name == identity })
}

// Snapshot returns a point-in-time copy of the registry as a sequence. The copy is
// taken when Snapshot is called, so ranging over it never blocks writers and can be
// repeated any number of times with the same result.
func (r *VersionRegistry) Snapshot() iter.Seq[managedkafkav1alpha1.StrimziVersionStatus] {
	return slices.Values(r.Versions())
}

// Versions returns a copy of the registry contents.
func (r *VersionRegistry) Versions() []managedkafkav1alpha1.StrimziVersionStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]managedkafkav1alpha1.StrimziVersionStatus, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.versions[name])
	}
	return out
}

// Lookup returns the record for identity, if any.
func (r *VersionRegistry) Lookup(identity string) (managedkafkav1alpha1.StrimziVersionStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.versions[identity]
	return v, ok
}

// Len returns the number of known Strimzi versions.
func (r *VersionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.versions)
}
