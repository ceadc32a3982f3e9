package payload

import (
	"fmt"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Container is the mutation-intercepting field store behind a payload.
// Every value it holds has passed validation against the field's
// descriptor, so the stored state is well-typed at all times. The
// container holds a non-owning back-reference to its payload, followed
// only to resolve family-specific validation; ownership runs strictly
// downward from payload to container to nested values.
type Container struct {
	schema *types.Schema
	owner  *Payload
	values map[string]any
	order  []string
}

func newContainer(schema *types.Schema, owner *Payload) *Container {
	return &Container{
		schema: schema,
		owner:  owner,
		values: make(map[string]any),
	}
}

// HasField reports whether the field is declared in the schema,
// independent of whether a value has been set.
func (c *Container) HasField(field string) bool {
	return c.schema.Has(field)
}

// IsSet reports whether the field has a materialized value. Fields with a
// pinned value always read as set.
func (c *Container) IsSet(field string) bool {
	if desc, ok := c.schema.Get(field); ok && desc.Fixed() {
		return true
	}
	_, ok := c.values[field]
	return ok
}

// Get returns the field's value. Pinned values always win. An unset field
// of type Array, Dict, or Class materializes an empty typed collection or
// a freshly constructed nested payload, stores it, and returns it, so
// callers can mutate nested structure in place without creating it first.
// Any other unset field returns nil with no error; use IsSet to
// distinguish absence.
func (c *Container) Get(field string) (any, error) {
	desc, ok := c.schema.Get(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownField, field)
	}
	if desc.Fixed() {
		return desc.FixedValue, nil
	}
	if v, ok := c.values[field]; ok {
		return v, nil
	}
	switch desc.Type {
	case types.TypeArray:
		arr := newArrayWithCheck(desc.Subtype, c.owner.elementCheck(field, desc))
		c.store(field, arr)
		return arr, nil
	case types.TypeDict:
		d := newDictWithCheck(desc.Subtype, c.owner.elementCheck(field, desc))
		c.store(field, d)
		return d, nil
	case types.TypeClass:
		factory, ok := c.owner.family.Factories[field]
		if !ok {
			return nil, nil
		}
		child := factory()
		c.store(field, child)
		return child, nil
	}
	return nil, nil
}

// Set validates raw through the owning payload's validation chain and, on
// success, stores the normalized value. Validation happens strictly before
// mutation: a failed Set leaves prior state untouched. Fields with a
// pinned value are never settable.
func (c *Container) Set(field string, raw any) error {
	desc, ok := c.schema.Get(field)
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownField, field)
	}
	if desc.Fixed() {
		return fmt.Errorf("%w: %q has a fixed value", types.ErrInvalidValue, field)
	}
	v, err := c.owner.ValidateField(field, raw)
	if err != nil {
		return err
	}
	c.store(field, v)
	return nil
}

// Delete removes the field's materialized value. Deleting a field that was
// never set is a no-op.
func (c *Container) Delete(field string) {
	if _, ok := c.values[field]; !ok {
		return
	}
	delete(c.values, field)
	for i, name := range c.order {
		if name == field {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear removes every materialized value.
func (c *Container) Clear() {
	c.values = make(map[string]any)
	c.order = nil
}

// Fields returns the materialized field names in insertion order. This is
// "what has actually been set", distinct from enumerating the schema.
func (c *Container) Fields() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of materialized fields.
func (c *Container) Len() int {
	return len(c.values)
}

func (c *Container) store(field string, v any) {
	if _, exists := c.values[field]; !exists {
		c.order = append(c.order, field)
	}
	c.values[field] = v
}
