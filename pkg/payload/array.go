package payload

import (
	"fmt"

	"github.com/mesh-intelligence/profileforge/pkg/types"
	"github.com/mesh-intelligence/profileforge/pkg/validate"
)

// elementCheck validates one element for a typed array or dict.
type elementCheck func(raw any) (any, error)

// Array is a homogeneous, mutation-intercepting sequence. Every element
// has passed validation against the declared element type. Indexed
// overwrite and indexed delete are forbidden: property-list arrays have no
// sparse or keyed semantics, so only ordered bulk mutation (append,
// prepend, splice) and end removal (pop, shift) are offered.
type Array struct {
	elem  types.TypeTag
	check elementCheck
	items []any
}

// NewArray constructs an empty typed array whose elements validate with
// the generic validator for the given element type. Arrays inside a
// payload are created by the container instead, wired to the owning
// family's validation chain.
func NewArray(elem types.TypeTag) *Array {
	return newArrayWithCheck(elem, func(raw any) (any, error) {
		return validate.Value(elem, raw)
	})
}

func newArrayWithCheck(elem types.TypeTag, check elementCheck) *Array {
	return &Array{elem: elem, check: check}
}

// ElemType returns the declared element type.
func (a *Array) ElemType() types.TypeTag {
	return a.elem
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// Get returns the element at index i.
func (a *Array) Get(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Items returns a copy of the element slice, for enumeration.
func (a *Array) Items() []any {
	out := make([]any, len(a.items))
	copy(out, a.items)
	return out
}

// Append validates every value and, only if all pass, appends them in
// order. All-or-nothing: one bad value means no mutation at all.
func (a *Array) Append(vals ...any) error {
	checked, err := a.checkAll(vals)
	if err != nil {
		return err
	}
	a.items = append(a.items, checked...)
	return nil
}

// Prepend validates every value and, only if all pass, inserts them at the
// front in order. All-or-nothing, like Append.
func (a *Array) Prepend(vals ...any) error {
	checked, err := a.checkAll(vals)
	if err != nil {
		return err
	}
	a.items = append(checked, a.items...)
	return nil
}

// Pop removes and returns the last element.
func (a *Array) Pop() (any, bool) {
	if len(a.items) == 0 {
		return nil, false
	}
	v := a.items[len(a.items)-1]
	a.items = a.items[:len(a.items)-1]
	return v, true
}

// Shift removes and returns the first element.
func (a *Array) Shift() (any, bool) {
	if len(a.items) == 0 {
		return nil, false
	}
	v := a.items[0]
	a.items = a.items[1:]
	return v, true
}

// Splice removes length elements starting at offset, inserts vals in their
// place, and returns the removed elements. A negative offset counts from
// the end; a negative length means "through the end". Inserted values are
// validated before any mutation (all-or-nothing).
func (a *Array) Splice(offset, length int, vals ...any) ([]any, error) {
	if offset < 0 {
		offset += len(a.items)
	}
	if offset < 0 || offset > len(a.items) {
		return nil, fmt.Errorf("%w: splice offset out of range", types.ErrInvalidValue)
	}
	if length < 0 || offset+length > len(a.items) {
		length = len(a.items) - offset
	}
	checked, err := a.checkAll(vals)
	if err != nil {
		return nil, err
	}

	removed := make([]any, length)
	copy(removed, a.items[offset:offset+length])

	rest := make([]any, 0, len(a.items)-length+len(checked))
	rest = append(rest, a.items[:offset]...)
	rest = append(rest, checked...)
	rest = append(rest, a.items[offset+length:]...)
	a.items = rest
	return removed, nil
}

// Set always fails: indexed overwrite is not part of the array protocol.
func (a *Array) Set(i int, v any) error {
	return fmt.Errorf("%w: indexed overwrite on a typed array", types.ErrUnsupportedOperation)
}

// Delete always fails: indexed delete is not part of the array protocol.
func (a *Array) Delete(i int) error {
	return fmt.Errorf("%w: indexed delete on a typed array", types.ErrUnsupportedOperation)
}

func (a *Array) checkAll(vals []any) ([]any, error) {
	checked := make([]any, len(vals))
	for i, raw := range vals {
		v, err := a.check(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		checked[i] = v
	}
	return checked, nil
}
