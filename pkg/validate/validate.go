// Package validate implements the per-type value validators. Each validator
// is a pure function that takes an arbitrary input and returns either the
// normalized value or an error from pkg/types: ErrMissingInput when nothing
// was given, ErrInvalidValue (wrapped with a reason) when the input was
// present but unacceptable, and ErrStreamUnusable for a data stream that
// fails its probe.
//
// Class values are not handled here; nested payload identity is checked by
// the typed container that owns the field.
package validate

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Value dispatches raw to the validator for the given type tag and returns
// the normalized value. NSDataBlob values validate as Data. Array, Dict,
// and Class have no scalar validator; asking for one is an error.
func Value(tag types.TypeTag, raw any) (any, error) {
	switch tag {
	case types.TypeString:
		return String(raw)
	case types.TypeInteger:
		return Integer(raw)
	case types.TypeReal:
		return Real(raw)
	case types.TypeBoolean:
		return Boolean(raw)
	case types.TypeData, types.TypeNSDataBlob:
		return Data(raw)
	case types.TypeDate:
		return Date(raw)
	case types.TypeIdentifier:
		return Identifier(raw)
	case types.TypeUUID:
		return UUID(raw)
	default:
		return nil, fmt.Errorf("%w: no scalar validator for type %s", types.ErrInvalidValue, tag)
	}
}

// String accepts a non-empty Go string that is valid UTF-8.
func String(raw any) (string, error) {
	if raw == nil {
		return "", types.ErrMissingInput
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", types.ErrInvalidValue, raw)
	}
	if s == "" {
		return "", fmt.Errorf("%w: string must not be empty", types.ErrInvalidValue)
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", types.ErrInvalidValue)
	}
	return s, nil
}

// integerPattern matches an optionally signed base-10 integer with no
// fractional part.
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Integer accepts any Go integer kind within the signed 64-bit range, or a
// string holding an optionally signed base-10 integer. Values normalize to
// int64; the 64-bit width is a deliberate portable pin, not arbitrary
// precision.
func Integer(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, types.ErrMissingInput
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", types.ErrInvalidValue, v)
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", types.ErrInvalidValue, v)
		}
		return int64(v), nil
	case string:
		if !integerPattern.MatchString(v) {
			return 0, fmt.Errorf("%w: %q is not a base-10 integer", types.ErrInvalidValue, v)
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is out of the signed 64-bit range", types.ErrInvalidValue, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", types.ErrInvalidValue, raw)
	}
}

// realPattern matches an optionally signed base-10 real number with an
// optional fraction and an optional signed exponent.
var realPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Real accepts any Go numeric kind or a string holding a base-10 real
// number, optionally signed and with an optional e/E exponent. Values
// normalize to float64 (IEEE-754 double).
func Real(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, types.ErrMissingInput
	case float32:
		return float64(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: real must be finite", types.ErrInvalidValue)
		}
		return v, nil
	case string:
		if !realPattern.MatchString(v) {
			return 0, fmt.Errorf("%w: %q is not a base-10 real number", types.ErrInvalidValue, v)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", types.ErrInvalidValue, v, err)
		}
		return f, nil
	default:
		if n, err := Integer(raw); err == nil {
			return float64(n), nil
		}
		return 0, fmt.Errorf("%w: expected real, got %T", types.ErrInvalidValue, raw)
	}
}

// Boolean normalizes any truthy or falsy input to a bool. Strings parse
// with strconv.ParseBool first ("true", "false", "1", "0" and casings),
// then fall back to non-empty-is-true. Numbers are true when non-zero.
// A nil input is ErrMissingInput; boolean is the one type where "absent"
// and "false" must not be conflated.
func Boolean(raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, types.ErrMissingInput
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
		return v != "", nil
	case float32:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		if n, err := Integer(raw); err == nil {
			return n != 0, nil
		}
		return false, fmt.Errorf("%w: expected boolean, got %T", types.ErrInvalidValue, raw)
	}
}

// Data accepts either an already-open readable, seekable byte stream, or a
// non-empty raw byte slice. A stream is probed with a one-byte read and a
// relative seek back; failure of either is ErrStreamUnusable. The probe
// restores the position it found, but makes no stronger guarantee: callers
// that need the full content seek to the start themselves. A byte slice is
// wrapped in a fresh in-memory reader positioned at offset zero. Text is
// not binary data: strings are rejected.
func Data(raw any) (io.ReadSeeker, error) {
	switch v := raw.(type) {
	case nil:
		return nil, types.ErrMissingInput
	case io.ReadSeeker:
		// A read may deliver its final byte together with io.EOF; data
		// accompanied by an error is still a successful probe.
		var probe [1]byte
		n, err := v.Read(probe[:])
		if n == 0 && err != nil {
			return nil, fmt.Errorf("%w: probe read: %v", types.ErrStreamUnusable, err)
		}
		if _, err := v.Seek(-int64(n), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("%w: probe seek: %v", types.ErrStreamUnusable, err)
		}
		return v, nil
	case []byte:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: data must not be empty", types.ErrInvalidValue)
		}
		return bytes.NewReader(v), nil
	case string:
		return nil, fmt.Errorf("%w: text is not binary data", types.ErrInvalidValue)
	default:
		return nil, fmt.Errorf("%w: expected byte stream or byte slice, got %T", types.ErrInvalidValue, raw)
	}
}

// identifierPattern matches a domain-name-like identifier: dot-separated
// labels of letters, digits, and hyphens, where no label starts with a
// digit or hyphen. The grammar admits no whitespace or newlines.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*(\.[A-Za-z][A-Za-z0-9-]*)*$`)

// Identifier accepts a string that satisfies the String rules and
// additionally matches the reverse-DNS identifier grammar.
func Identifier(raw any) (string, error) {
	s, err := String(raw)
	if err != nil {
		return "", err
	}
	if !identifierPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q is not a valid identifier", types.ErrInvalidValue, s)
	}
	return s, nil
}

// UUID accepts a uuid.UUID directly, a 16-byte slice, or a string in any
// form uuid.Parse understands (canonical, braced, URN, or bare hex).
// Equality is on the 128-bit contents, never the textual form.
func UUID(raw any) (uuid.UUID, error) {
	switch v := raw.(type) {
	case nil:
		return uuid.Nil, types.ErrMissingInput
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case []byte:
		u, err := uuid.FromBytes(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %v", types.ErrInvalidValue, err)
		}
		return u, nil
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %q is not a UUID", types.ErrInvalidValue, v)
		}
		return u, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: expected UUID, got %T", types.ErrInvalidValue, raw)
	}
}
