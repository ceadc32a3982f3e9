package payload

import (
	"fmt"

	"github.com/mesh-intelligence/profileforge/pkg/types"
	"github.com/mesh-intelligence/profileforge/pkg/validate"
)

// Dict is a homogeneous, mutation-intercepting string-keyed map. Every
// stored value has passed validation against the declared element type.
// Unlike Array, keyed overwrite and delete are permitted: dictionaries are
// keyed, not positional.
type Dict struct {
	elem   types.TypeTag
	check  elementCheck
	keys   []string
	values map[string]any
}

// NewDict constructs an empty typed dictionary whose values validate with
// the generic validator for the given element type.
func NewDict(elem types.TypeTag) *Dict {
	return newDictWithCheck(elem, func(raw any) (any, error) {
		return validate.Value(elem, raw)
	})
}

func newDictWithCheck(elem types.TypeTag, check elementCheck) *Dict {
	return &Dict{elem: elem, check: check, values: make(map[string]any)}
}

// ElemType returns the declared element type.
func (d *Dict) ElemType() types.TypeTag {
	return d.elem
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.values)
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set validates the value and stores it under key. A failed validation
// leaves the dictionary unchanged.
func (d *Dict) Set(key string, raw any) error {
	if key == "" {
		return fmt.Errorf("%w: dictionary key must not be empty", types.ErrInvalidValue)
	}
	v, err := d.check(raw)
	if err != nil {
		return err
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
	return nil
}

// Delete removes the entry under key. Unknown keys are a no-op.
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clear removes every entry.
func (d *Dict) Clear() {
	d.keys = nil
	d.values = make(map[string]any)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}
