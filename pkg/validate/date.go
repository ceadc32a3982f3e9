package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// relativeDayPattern matches the supported relative phrases:
// "N days ago" and "in N days".
var relativeDayPattern = regexp.MustCompile(`^(?:in ([0-9]+) days?|([0-9]+) days? ago)$`)

// Date accepts an already-constructed timestamp as-is, or a string that
// parses as a date. Strings get a best-effort flexible parse: absolute
// date-times and bare dates go through dateparse, and a small set of
// relative phrases ("today", "tomorrow", "yesterday", "N days ago",
// "in N days") resolve against the current clock. Ambiguous relative
// phrases ("last year") are rejected. The zero time is rejected; every
// accepted timestamp is finite and offset-aware.
func Date(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, types.ErrMissingInput
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero timestamp", types.ErrInvalidValue)
		}
		return v, nil
	case string:
		if t, ok := parseRelative(v); ok {
			return t, nil
		}
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a recognizable date", types.ErrInvalidValue, v)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: expected date, got %T", types.ErrInvalidValue, raw)
	}
}

// parseRelative resolves the supported relative day phrases against the
// current clock.
func parseRelative(s string) (time.Time, bool) {
	now := time.Now()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "now":
		return now, true
	case "today":
		return now, true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	}
	m := relativeDayPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return time.Time{}, false
	}
	if m[1] != "" {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, n), true
	}
	n, _ := strconv.Atoi(m[2])
	return now.AddDate(0, 0, -n), true
}
