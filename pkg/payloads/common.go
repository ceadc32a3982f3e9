package payloads

import (
	"fmt"
	"regexp"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
	"github.com/mesh-intelligence/profileforge/pkg/validate"
)

// Target version shorthands for schema tables.
func both(ios, macOS string) map[types.Target]string {
	return map[types.Target]string{types.TargetIOS: ios, types.TargetMacOS: macOS}
}

func iosOnly(v string) map[types.Target]string {
	return map[types.Target]string{types.TargetIOS: v}
}

func macOnly(v string) map[types.Target]string {
	return map[types.Target]string{types.TargetMacOS: v}
}

// baseline is the target set for the common keys, present since the first
// profile-capable releases.
func baseline() map[types.Target]string {
	return both("5.0", "10.7")
}

// commonSchema returns the keys every payload family shares. Families
// extend this table and pin PayloadType to their own value.
func commonSchema(payloadType string) *types.Schema {
	return types.NewSchema(
		types.Field{Name: "PayloadIdentifier", Desc: types.FieldDescriptor{Type: types.TypeIdentifier, Unique: true, Targets: baseline()}},
		types.Field{Name: "PayloadUUID", Desc: types.FieldDescriptor{Type: types.TypeUUID, Unique: true, Targets: baseline()}},
		types.Field{Name: "PayloadDisplayName", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "PayloadDescription", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "PayloadOrganization", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "PayloadType", Desc: types.FieldDescriptor{Type: types.TypeString, FixedValue: payloadType, Targets: baseline()}},
		types.Field{Name: "PayloadVersion", Desc: types.FieldDescriptor{Type: types.TypeInteger, FixedValue: 1, Targets: baseline()}},
	)
}

// enumCheck claims the named field and restricts it to a fixed value set.
func enumCheck(field string, allowed ...string) payload.Check {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(p *payload.Payload, name string, raw any) (any, bool, error) {
		if name != field {
			return nil, false, nil
		}
		s, ok := raw.(string)
		if !ok || !set[s] {
			return nil, false, fmt.Errorf("%w: must be one of %v", types.ErrInvalidValue, allowed)
		}
		return s, true, nil
	}
}

// portCheck claims the named fields and restricts them to valid TCP port
// numbers.
func portCheck(fields ...string) payload.Check {
	claimed := make(map[string]bool, len(fields))
	for _, f := range fields {
		claimed[f] = true
	}
	return func(p *payload.Payload, name string, raw any) (any, bool, error) {
		if !claimed[name] {
			return nil, false, nil
		}
		n, err := validate.Integer(raw)
		if err != nil {
			return nil, false, err
		}
		if n < 1 || n > 65534 {
			return nil, false, fmt.Errorf("%w: port %d is outside [1, 65534]", types.ErrInvalidValue, n)
		}
		return n, true, nil
	}
}

// hostnamePattern matches a plain DNS hostname: labels of letters, digits,
// and interior hyphens, dot-separated.
var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)

// hostnameCheck claims the named fields and requires a DNS hostname.
func hostnameCheck(fields ...string) payload.Check {
	claimed := make(map[string]bool, len(fields))
	for _, f := range fields {
		claimed[f] = true
	}
	return func(p *payload.Payload, name string, raw any) (any, bool, error) {
		if !claimed[name] {
			return nil, false, nil
		}
		s, ok := raw.(string)
		if !ok || !hostnamePattern.MatchString(s) {
			return nil, false, fmt.Errorf("%w: not a valid hostname", types.ErrInvalidValue)
		}
		return s, true, nil
	}
}

// emailPattern is a permissive mailbox syntax check: one @, no whitespace,
// a dotted domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// emailCheck claims the named field and requires mailbox syntax.
func emailCheck(field string) payload.Check {
	return func(p *payload.Payload, name string, raw any) (any, bool, error) {
		if name != field {
			return nil, false, nil
		}
		s, ok := raw.(string)
		if !ok || !emailPattern.MatchString(s) {
			return nil, false, fmt.Errorf("%w: not a valid email address", types.ErrInvalidValue)
		}
		return s, true, nil
	}
}
