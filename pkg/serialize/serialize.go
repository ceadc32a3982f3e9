// Package serialize converts a validated payload tree into the generic
// value tree its property-list renderer understands, applying platform
// target and minimum-version filtering along the way. The renderer
// (howett.net/plist) owns the textual wire forms: real-number formatting,
// the date layout, base64 data wrapping, and the plist envelope.
package serialize

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Options control export-time filtering.
type Options struct {
	// Target restricts the export to fields defined for one platform.
	// Empty means no filtering.
	Target types.Target

	// MinVersion excludes fields introduced after this platform version.
	// Requires Target.
	MinVersion string

	// Strict turns any field exclusion into ErrIncompleteExport instead
	// of a silent omission.
	Strict bool
}

// Serialize converts the payload's set fields into a renderer-ready
// dictionary, in schema order. Fields not defined for the requested
// target, or introduced after the requested minimum version, are omitted;
// with Strict set, the first such exclusion fails the export instead.
func Serialize(p *payload.Payload, opts Options) (map[string]any, error) {
	if opts.MinVersion != "" && opts.Target == "" {
		return nil, types.ErrTargetRequired
	}

	schema := p.Schema()
	fields := p.Fields()
	out := make(map[string]any)
	for _, name := range schema.Names() {
		desc, _ := schema.Get(name)
		if !fields.IsSet(name) {
			continue
		}
		if opts.Target != "" {
			min, ok := desc.MinVersion(opts.Target)
			if !ok {
				if opts.Strict {
					return nil, fmt.Errorf("%w: %q is not defined for %s", types.ErrIncompleteExport, name, opts.Target)
				}
				continue
			}
			if opts.MinVersion != "" && compareVersions(min, opts.MinVersion) > 0 {
				if opts.Strict {
					return nil, fmt.Errorf("%w: %q requires %s %s", types.ErrIncompleteExport, name, opts.Target, min)
				}
				continue
			}
		}
		v, err := fields.Get(name)
		if err != nil {
			return nil, err
		}
		node, err := encodeValue(desc.Type, desc.Subtype, v, opts)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = node
	}
	return out, nil
}

// encodeValue converts one stored value to its value-tree node by declared
// type. Data streams are read from their current position to end of
// stream; by convention values land in storage positioned at the start,
// and the serializer does not reposition them.
func encodeValue(tag, subtype types.TypeTag, v any, opts Options) (any, error) {
	switch tag {
	case types.TypeString, types.TypeIdentifier:
		return v.(string), nil
	case types.TypeInteger:
		return toInt64(v)
	case types.TypeReal:
		return toFloat64(v)
	case types.TypeBoolean:
		return v.(bool), nil
	case types.TypeData, types.TypeNSDataBlob:
		rs, ok := v.(io.ReadSeeker)
		if !ok {
			return nil, fmt.Errorf("%w: stored data is %T", types.ErrInvalidValue, v)
		}
		raw, err := io.ReadAll(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: reading data stream: %v", types.ErrStreamUnusable, err)
		}
		return raw, nil
	case types.TypeDate:
		return v.(time.Time).UTC().Truncate(time.Second), nil
	case types.TypeUUID:
		return v.(uuid.UUID).String(), nil
	case types.TypeArray:
		arr := v.(*payload.Array)
		nodes := make([]any, 0, arr.Len())
		for _, el := range arr.Items() {
			node, err := encodeValue(subtype, types.TypeInvalid, el, opts)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		return nodes, nil
	case types.TypeDict:
		d := v.(*payload.Dict)
		nodes := make(map[string]any, d.Len())
		for _, key := range d.Keys() {
			el, _ := d.Get(key)
			node, err := encodeValue(subtype, types.TypeInvalid, el, opts)
			if err != nil {
				return nil, err
			}
			nodes[key] = node
		}
		return nodes, nil
	case types.TypeClass:
		return Serialize(v.(*payload.Payload), opts)
	default:
		return nil, fmt.Errorf("%w: cannot serialize type %s", types.ErrInvalidValue, tag)
	}
}

// toInt64 widens stored and pinned integer values. Pinned values come from
// schema tables written with untyped constants, so plain int shows up.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: stored integer is %T", types.ErrInvalidValue, v)
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: stored real is %T", types.ErrInvalidValue, v)
	}
}
