package navigator

import (
	"strings"

	"github.com/operator-framework/fasb/pkg/solver"
)

// Facets are the atoms that are brave but not cautious consequences
// under some assumptions, in program order.
type Facets []solver.Atom

// NewFacets returns brave \ cautious. An empty cautious set yields
// every brave consequence.
func NewFacets(brave, cautious []solver.Atom) Facets {
	return Facets(solver.Difference(brave, cautious))
}

// Contains reports whether the atom of a token of either orientation
// is a facet.
func (fs Facets) Contains(token string) bool {
	a, _, err := solver.ParseToken(token)
	if err != nil {
		return false
	}
	for _, f := range fs {
		if f == a {
			return true
		}
	}
	return false
}

// Tokens returns the inclusive token of every facet.
func (fs Facets) Tokens() []string {
	ts := make([]string, len(fs))
	for i, f := range fs {
		ts[i] = f.String()
	}
	return ts
}

// Orientations returns the inclusive and exclusive token of every
// facet, interleaved.
func (fs Facets) Orientations() []string {
	ts := make([]string, 0, 2*len(fs))
	for _, f := range fs {
		ts = append(ts, f.String(), f.Exclusive())
	}
	return ts
}

func (fs Facets) String() string {
	return strings.Join(fs.Orientations(), " ")
}
