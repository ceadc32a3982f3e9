// Package payload implements the typed storage engine for configuration
// profile payloads: the mutation-intercepting container, the homogeneous
// typed array and dictionary collections, and the payload object that ties
// a family schema to its container. All mutation passes through validation
// before any state changes, so a payload tree is well-typed at all times.
package payload

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/profileforge/pkg/types"
	"github.com/mesh-intelligence/profileforge/pkg/validate"
)

// Payload couples a family schema with a typed container. Payloads form a
// strict ownership tree: a payload owns its container, which owns any
// collections and nested payloads it has materialized.
type Payload struct {
	family *Family
	fields *Container
}

// Family returns the payload's family.
func (p *Payload) Family() *Family {
	return p.family
}

// Schema returns the family's schema.
func (p *Payload) Schema() *types.Schema {
	return p.family.Schema
}

// Fields returns the payload's container for reading and mutating field
// values.
func (p *Payload) Fields() *Container {
	return p.fields
}

// Get is shorthand for Fields().Get.
func (p *Payload) Get(field string) (any, error) {
	return p.fields.Get(field)
}

// Set is shorthand for Fields().Set.
func (p *Payload) Set(field string, raw any) error {
	return p.fields.Set(field, raw)
}

// ValidateField resolves the value a Set would store for the field,
// without storing it. The family's checks run in order and the first one
// to claim the field decides; unclaimed fields fall through to the
// generic per-type validators (or, for composite types, to the structural
// checks below).
func (p *Payload) ValidateField(field string, raw any) (any, error) {
	desc, ok := p.family.Schema.Get(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownField, field)
	}
	for _, check := range p.family.Checks {
		v, claimed, err := check(p, field, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		if claimed {
			return v, nil
		}
	}
	v, err := p.defaultValidate(field, desc, raw)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return v, nil
}

// defaultValidate dispatches by declared type. Scalars go to the generic
// validators. A Class field accepts only a payload object. Array and Dict
// fields accept a whole replacement collection ([]any / map[string]any),
// validated element by element into a fresh typed collection before
// anything is stored.
func (p *Payload) defaultValidate(field string, desc types.FieldDescriptor, raw any) (any, error) {
	switch desc.Type {
	case types.TypeClass:
		return p.checkClass(field, raw)
	case types.TypeArray:
		vals, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected element slice, got %T", types.ErrInvalidValue, raw)
		}
		arr := newArrayWithCheck(desc.Subtype, p.elementCheck(field, desc))
		if err := arr.Append(vals...); err != nil {
			return nil, err
		}
		return arr, nil
	case types.TypeDict:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected string-keyed map, got %T", types.ErrInvalidValue, raw)
		}
		d := newDictWithCheck(desc.Subtype, p.elementCheck(field, desc))
		for k, v := range m {
			if err := d.Set(k, v); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return validate.Value(desc.Type, raw)
	}
}

// checkClass enforces the nested-payload identity check: the value must be
// a payload object, and when the field has a registered factory the value
// must be of the same family the factory constructs.
func (p *Payload) checkClass(field string, raw any) (*Payload, error) {
	if raw == nil {
		return nil, types.ErrMissingInput
	}
	child, ok := raw.(*Payload)
	if !ok {
		return nil, fmt.Errorf("%w: expected nested payload, got %T", types.ErrInvalidValue, raw)
	}
	if factory, ok := p.family.Factories[field]; ok {
		if want := factory().family; child.family != want {
			return nil, fmt.Errorf("%w: payload family %q, want %q",
				types.ErrInvalidValue, child.family.Name, want.Name)
		}
	}
	return child, nil
}

// elementCheck builds the per-element validator for an Array or Dict
// field. Class elements get the identity check; everything else goes to
// the generic validator for the subtype.
func (p *Payload) elementCheck(field string, desc types.FieldDescriptor) elementCheck {
	if desc.Subtype == types.TypeClass {
		return func(raw any) (any, error) {
			return p.checkClass(field, raw)
		}
	}
	return func(raw any) (any, error) {
		return validate.Value(desc.Subtype, raw)
	}
}

// PopulateIDs fills every unset UUID field with a fresh random UUID and
// every unset Identifier field with a generated identifier, then recurses
// into materialized Class fields and into the elements of materialized
// collections whose element type is Class. Already-set values are never
// overwritten, so a second call changes nothing.
func (p *Payload) PopulateIDs() error {
	for _, name := range p.family.Schema.Names() {
		desc, _ := p.family.Schema.Get(name)
		switch desc.Type {
		case types.TypeUUID:
			if !p.fields.IsSet(name) {
				if err := p.fields.Set(name, uuid.New()); err != nil {
					return err
				}
			}
		case types.TypeIdentifier:
			if !p.fields.IsSet(name) {
				if err := p.fields.Set(name, newIdentifier()); err != nil {
					return err
				}
			}
		case types.TypeClass:
			if child, ok := p.fields.values[name].(*Payload); ok {
				if err := child.PopulateIDs(); err != nil {
					return err
				}
			}
		case types.TypeArray:
			if desc.Subtype != types.TypeClass {
				continue
			}
			if arr, ok := p.fields.values[name].(*Array); ok {
				for _, el := range arr.items {
					if child, ok := el.(*Payload); ok {
						if err := child.PopulateIDs(); err != nil {
							return err
						}
					}
				}
			}
		case types.TypeDict:
			if desc.Subtype != types.TypeClass {
				continue
			}
			if d, ok := p.fields.values[name].(*Dict); ok {
				for _, key := range d.keys {
					if child, ok := d.values[key].(*Payload); ok {
						if err := child.PopulateIDs(); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// newIdentifier generates a pseudo-random identifier that satisfies the
// identifier grammar.
func newIdentifier() string {
	u := uuid.New()
	return "payload-" + hex.EncodeToString(u[:6])
}

// Exportable reports whether every required field is satisfied. Required
// collections must be non-empty; required Class fields, and the payload
// elements of required Class-typed collections, must themselves be
// exportable. Recursion into dictionaries visits values. Fields with a
// pinned value are always satisfied. The check short-circuits on the
// first failure.
func (p *Payload) Exportable() bool {
	for _, name := range p.family.Schema.Names() {
		desc, _ := p.family.Schema.Get(name)
		if desc.Optional || desc.Fixed() {
			continue
		}
		v, set := p.fields.values[name]
		if !set {
			return false
		}
		switch desc.Type {
		case types.TypeClass:
			child, ok := v.(*Payload)
			if !ok || !child.Exportable() {
				return false
			}
		case types.TypeArray:
			arr, ok := v.(*Array)
			if !ok || arr.Len() == 0 {
				return false
			}
			if desc.Subtype == types.TypeClass {
				for _, el := range arr.items {
					if child, ok := el.(*Payload); !ok || !child.Exportable() {
						return false
					}
				}
			}
		case types.TypeDict:
			d, ok := v.(*Dict)
			if !ok || d.Len() == 0 {
				return false
			}
			if desc.Subtype == types.TypeClass {
				for _, key := range d.keys {
					if child, ok := d.values[key].(*Payload); !ok || !child.Exportable() {
						return false
					}
				}
			}
		}
	}
	return true
}
