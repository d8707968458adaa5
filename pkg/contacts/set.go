package contacts

import (
	"slices"
	"strings"
)

// Set is an insertion-ordered set of non-empty strings.
// The zero value is an empty set. Sets are values: every operation that
// changes membership returns a new Set and leaves the receiver untouched.
type Set struct {
	items []string
}

// NewSet builds a set from values, trimming each one and skipping empties
// and duplicates.
func NewSet(values ...string) Set {
	var s Set
	for _, v := range values {
		s.items = appendUnique(s.items, v)
	}
	return s
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.items) == 0
}

// Values returns the members in insertion order.
func (s Set) Values() []string {
	return slices.Clone(s.items)
}

// Contains reports whether v is a member.
func (s Set) Contains(v string) bool {
	return slices.Contains(s.items, v)
}

// Union returns the receiver's members followed by other's new members in
// their original order.
func (s Set) Union(other Set) Set {
	if other.IsEmpty() {
		return s
	}
	out := Set{items: slices.Clip(slices.Clone(s.items))}
	for _, v := range other.items {
		out.items = appendUnique(out.items, v)
	}
	return out
}

// Overlaps reports whether the two sets share at least one member.
// Two empty sets never overlap.
func (s Set) Overlaps(other Set) bool {
	for _, v := range s.items {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

// Join renders the members separated by sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.items, sep)
}

// Equal reports whether both sets have the same members, ignoring order.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func appendUnique(items []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" || slices.Contains(items, v) {
		return items
	}
	return append(items, v)
}
