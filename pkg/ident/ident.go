// Package ident provides interned, pointer-comparable identifiers.
//
// Variable names flow unchanged through every pass of the pipeline
// (parser through assign homes); interning them once means every later
// comparison is a pointer compare instead of a byte-by-byte string
// compare, and every pass can use Identifier as a map key without
// re-hashing the backing bytes each time. Primitive-op names and block
// labels are not interned: they are plain strings.
package ident

import "sync"

// Identifier is an immutable, interned name shared by reference. Two
// Identifiers produced from equal strings are the same Identifier.
type Identifier struct {
	entry *entry
}

type entry struct {
	text string
}

var (
	mu    sync.Mutex
	table = map[string]*entry{}
)

// Intern returns the canonical Identifier for s, creating it on first use.
func Intern(s string) Identifier {
	mu.Lock()
	defer mu.Unlock()

	if e, ok := table[s]; ok {
		return Identifier{entry: e}
	}

	e := &entry{text: s}
	table[s] = e
	return Identifier{entry: e}
}

// String returns the underlying text.
func (id Identifier) String() string {
	if id.entry == nil {
		return ""
	}
	return id.entry.text
}

// Zero reports whether id is the zero value (never interned).
func (id Identifier) Zero() bool {
	return id.entry == nil
}

// Less orders two Identifiers using natural sort: numeric suffixes are
// compared as numbers, so "tmp.2" sorts before "tmp.10". This is the
// ordering every pass that enumerates variables or labels must use
// (assign-homes' variable enumeration, frame finalization's block
// linearization, explicate-control's locals list).
func Less(a, b Identifier) bool {
	return NaturalLess(a.String(), b.String())
}

// NaturalLess compares two strings by natural order: runs of digits are
// compared numerically rather than lexically, so "tmp.2" < "tmp.10" even
// though the byte-wise comparison would disagree. Non-digit runs compare
// as plain bytes. No natural-sort library exists anywhere in the example
// pack's dependency graph (see DESIGN.md), so this mirrors the original
// source's use of the "natord" crate by hand.
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]

		if isDigit(ca) && isDigit(cb) {
			ni, na := scanNumber(a, i)
			nj, nb := scanNumber(b, j)
			if na != nb {
				return na < nb
			}
			i, j = ni, nj
			continue
		}

		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}

	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNumber reads consecutive digits from s starting at i and returns
// the index just past them and their numeric value.
func scanNumber(s string, i int) (next int, value int64) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	var v int64
	for k := start; k < i; k++ {
		v = v*10 + int64(s[k]-'0')
	}
	return i, v
}
