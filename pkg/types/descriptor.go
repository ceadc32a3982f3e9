package types

import (
	"errors"
	"fmt"
)

// Target identifies a platform that a field may apply to.
type Target string

// Supported platform targets.
const (
	TargetIOS   Target = "iOS"
	TargetMacOS Target = "macOS"
)

// FieldDescriptor is the schema metadata for a single payload field.
type FieldDescriptor struct {
	Type       TypeTag           // Declared value type.
	Subtype    TypeTag           // Element type; set iff Type is Array or Dict.
	Optional   bool              // Optional fields never block exportability.
	Unique     bool              // Value must be unique across payloads (identity fields).
	Private    bool              // Value is sensitive (passwords and similar).
	FixedValue any               // Pinned value; the field is never externally settable.
	Targets    map[Target]string // Platform -> minimum version; at least one entry.
}

// Descriptor invariant errors, reported by Check.
var (
	errUnknownType    = errors.New("descriptor type is not a recognized type tag")
	errSubtypeMissing = errors.New("container descriptor requires a subtype")
	errSubtypeExtra   = errors.New("subtype is only valid on array and dict descriptors")
	errNoTargets      = errors.New("descriptor must list at least one target")
)

// Check verifies the descriptor invariants: the type tag is recognized, a
// subtype is present exactly when the type is a container, and at least one
// target platform is listed.
func (d FieldDescriptor) Check() error {
	if !d.Type.IsValid() {
		return errUnknownType
	}
	if d.Type.IsContainer() {
		if !d.Subtype.IsValid() {
			return errSubtypeMissing
		}
	} else if d.Subtype != TypeInvalid {
		return errSubtypeExtra
	}
	if len(d.Targets) == 0 {
		return errNoTargets
	}
	return nil
}

// AppliesTo reports whether the field is defined for the given target.
func (d FieldDescriptor) AppliesTo(target Target) bool {
	_, ok := d.Targets[target]
	return ok
}

// MinVersion returns the minimum platform version for the given target.
func (d FieldDescriptor) MinVersion(target Target) (string, bool) {
	v, ok := d.Targets[target]
	return v, ok
}

// Fixed reports whether the field carries a pinned value.
func (d FieldDescriptor) Fixed() bool {
	return d.FixedValue != nil
}

func (d FieldDescriptor) String() string {
	if d.Type.IsContainer() {
		return fmt.Sprintf("%s of %s", d.Type, d.Subtype)
	}
	return d.Type.String()
}
