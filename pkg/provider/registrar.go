package provider

import (
	"sort"
	"sync"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/emirpasic/gods/sets/hashset"
)

// RegisterFunc is called once for every namespace that shows up in the
// audit data for the first time.
type RegisterFunc func(namespace string)

// Registrar tracks which namespaces have been announced to a RegisterFunc.
// Each Provider owns one, so entries never leak between providers.
type Registrar struct {
	mu         sync.Mutex
	registered *hashset.Set
	register   RegisterFunc
	closed     bool
}

func NewRegistrar(register RegisterFunc) *Registrar {
	return &Registrar{
		registered: hashset.New(),
		register:   register,
	}
}

// Sync registers namespaces of data that have not been registered yet and
// returns them sorted. Syncing the same data twice registers nothing, and
// a closed Registrar registers nothing at all.
func (r *Registrar) Sync(data polaris.AuditData) []string {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	var added []string
	for _, namespace := range polaris.GetNamespaces(data) {
		if r.registered.Contains(namespace) {
			continue
		}
		r.registered.Add(namespace)
		added = append(added, namespace)
	}
	r.mu.Unlock()

	if r.register != nil {
		for _, namespace := range added {
			r.register(namespace)
		}
	}
	return added
}

// Registered returns the sorted namespaces registered so far.
func (r *Registrar) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	namespaces := make([]string, 0, r.registered.Size())
	for _, v := range r.registered.Values() {
		namespaces = append(namespaces, v.(string))
	}
	sort.Strings(namespaces)
	return namespaces
}

// Reset forgets every registered namespace.
func (r *Registrar) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registered.Clear()
}

// Close forgets every registered namespace and makes later calls to Sync
// no-ops.
func (r *Registrar) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.registered.Clear()
}
