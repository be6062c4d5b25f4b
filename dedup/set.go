package dedup

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Set is a set of tool or sample names.
type Set map[string]struct{}

func NewSet(members ...string) Set {
	s := make(Set, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s Set) Add(m string) {
	s[m] = struct{}{}
}

func (s Set) Contains(m string) bool {
	_, ok := s[m]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Union returns a new set holding the members of s and every set in others.
// None of the inputs are modified.
func (s Set) Union(others ...Set) Set {
	n := len(s)
	for _, o := range others {
		n += len(o)
	}
	ans := make(Set, n)
	for m := range s {
		ans[m] = struct{}{}
	}
	for _, o := range others {
		for m := range o {
			ans[m] = struct{}{}
		}
	}
	return ans
}

// Sorted returns the members of s in lexical order.
func (s Set) Sorted() []string {
	ans := make([]string, 0, len(s))
	for m := range s {
		ans = append(ans, m)
	}
	slices.Sort(ans)
	return ans
}

// String joins the sorted members with commas.
func (s Set) String() string {
	return strings.Join(s.Sorted(), ",")
}
