// Package lifecycle tracks the backend resources created during a test run and removes them again
// in dependency-safe order.
package lifecycle

import (
	"context"
	"sync"
)

// Kind is a type of resource that the harness creates and must clean up.
type Kind string

const (
	KindCategory Kind = "category"
	KindItem     Kind = "item"
	KindOrder    Kind = "order"
)

// AllKinds lists the kinds in dependency order: each kind may reference the ones before it.
var AllKinds = []Kind{KindCategory, KindItem, KindOrder}

// CollectionPath returns the endpoint of the collection that resources of this kind belong to.
func (k Kind) CollectionPath() string {
	switch k {
	case KindCategory:
		return "/categories"
	case KindItem:
		return "/items"
	case KindOrder:
		return "/orders"
	default:
		return "/" + string(k)
	}
}

// Resource identifies one created resource.
type Resource struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// Path returns the item-level endpoint of the resource.
func (r Resource) Path() string {
	return r.Kind.CollectionPath() + "/" + r.ID
}

func (r Resource) String() string {
	return string(r.Kind) + " " + r.ID
}

// Remover deletes a single resource on the backend. It returns false if the deletion failed.
// Implementations are expected to record the attempt themselves.
type Remover interface {
	Remove(ctx context.Context, r Resource) bool
}

// TeardownResult summarizes one Teardown call.
type TeardownResult struct {
	Attempted []Resource
	Failed    []Resource
}

// Manager remembers created resources in global creation order. It is safe for concurrent use.
type Manager struct {
	created []Resource
	lock    sync.Mutex
}

func NewManager() *Manager {
	return &Manager{}
}

// Record adds a resource. The order of Record calls across all kinds is the creation order used
// by Teardown.
func (m *Manager) Record(kind Kind, id string) {
	m.lock.Lock()
	m.created = append(m.created, Resource{Kind: kind, ID: id})
	m.lock.Unlock()
}

// Forget drops a resource that has already been deleted by a scenario, so Teardown will not try
// to delete it again. It returns false if the resource was not being tracked.
func (m *Manager) Forget(kind Kind, id string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i, r := range m.created {
		if r.Kind == kind && r.ID == id {
			m.created = append(m.created[:i], m.created[i+1:]...)
			return true
		}
	}
	return false
}

// Resources returns all tracked resources in creation order.
func (m *Manager) Resources() []Resource {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]Resource(nil), m.created...)
}

// IDs returns the ids of tracked resources of one kind, in creation order.
func (m *Manager) IDs(kind Kind) []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	var ret []string
	for _, r := range m.created {
		if r.Kind == kind {
			ret = append(ret, r.ID)
		}
	}
	return ret
}

// First returns the earliest tracked resource id of one kind.
func (m *Manager) First(kind Kind) (string, bool) {
	ids := m.IDs(kind)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ByKind returns the tracked ids grouped by kind, in AllKinds order.
func (m *Manager) ByKind() map[Kind][]string {
	ret := make(map[Kind][]string)
	for _, k := range AllKinds {
		if ids := m.IDs(k); len(ids) > 0 {
			ret[k] = ids
		}
	}
	return ret
}

// Teardown deletes every tracked resource in strict reverse creation order, so that a resource is
// always removed before anything it references. A failed deletion does not stop the remaining
// ones. The tracked list is cleared first, so calling Teardown again issues no deletions.
func (m *Manager) Teardown(ctx context.Context, remover Remover) TeardownResult {
	m.lock.Lock()
	resources := m.created
	m.created = nil
	m.lock.Unlock()

	var result TeardownResult
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		result.Attempted = append(result.Attempted, r)
		if !remover.Remove(ctx, r) {
			result.Failed = append(result.Failed, r)
		}
	}
	return result
}
