package serialize

import (
	"strconv"
	"strings"
)

// compareVersions compares two dotted-decimal platform versions segment by
// segment, numerically, so "10.10" sorts after "10.7". Missing segments
// count as zero; a non-numeric segment counts as zero. Returns -1, 0, or 1.
// Semver libraries are the wrong tool here: platform versions have no
// prerelease grammar and two-segment forms are the norm.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}
