package payload

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Check is one link in a family's validation chain. It receives the owning
// payload, the field name, and the raw input. When the check claims the
// field it returns (normalized, true, nil) on success or an error on
// rejection, and no further checks run. When it returns claimed=false the
// chain falls through, ultimately to the generic per-type validators.
type Check func(p *Payload, field string, raw any) (any, bool, error)

// Factory constructs a nested payload for a Class-typed field or element.
type Factory func() *Payload

// Family describes one payload kind: its schema, its validation chain, and
// the constructors for any Class-typed fields. A single Family value is
// built per kind and shared read-only by every payload of that kind.
type Family struct {
	// Name is the short registry key for the family ("email", "wifi").
	Name string

	// Schema is the immutable field table. The PayloadType and
	// PayloadVersion entries carry the family's pinned values.
	Schema *types.Schema

	// Checks run in order before the generic validators; the first check
	// that claims a field decides it.
	Checks []Check

	// Factories maps Class-typed field names to constructors, consulted
	// when the container lazily materializes a nested payload.
	Factories map[string]Factory
}

// New constructs an empty payload of this family.
func (f *Family) New() *Payload {
	p := &Payload{family: f}
	p.fields = newContainer(f.Schema, p)
	return p
}

// The family registry. Families register at init time; lookups come from
// callers that build payloads from configuration input.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Family)
)

// Register adds a family to the registry, keyed by Family.Name.
// Registering a duplicate name panics; families are package-level
// declarations and a collision is a programming error.
func Register(f *Family) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[f.Name]; dup {
		panic(fmt.Sprintf("payload family %q registered twice", f.Name))
	}
	registry[f.Name] = f
}

// Lookup returns the registered family with the given name.
func Lookup(name string) (*Family, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Families returns the registered family names in sorted order.
func Families() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
