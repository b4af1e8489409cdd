package procvars

import "strconv"

type countKind int

const (
	countAbsent countKind = iota
	countPresentUnknown
	countKnown
)

// Count is a tagged best-effort polyp count. "Present but count not
// parseable" is distinct from "absent" and must never be collapsed
// into a numeric sentinel downstream.
type Count struct {
	kind countKind
	n    int
}

// CountAbsent means no polyp was detected.
func CountAbsent() Count { return Count{kind: countAbsent} }

// CountPresentUnknown means a polyp was detected but no count could be
// parsed from the text.
func CountPresentUnknown() Count { return Count{kind: countPresentUnknown} }

// CountOf means exactly n polyps were reported.
func CountOf(n int) Count { return Count{kind: countKnown, n: n} }

// Absent reports whether no polyp was found.
func (c Count) Absent() bool { return c.kind == countAbsent }

// Known returns the parsed count and whether one exists.
func (c Count) Known() (int, bool) { return c.n, c.kind == countKnown }

func (c Count) String() string {
	switch c.kind {
	case countKnown:
		return strconv.Itoa(c.n)
	case countPresentUnknown:
		return "unknown"
	}
	return "0"
}
