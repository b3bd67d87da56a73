package navigator

import (
	"strings"

	"github.com/operator-framework/fasb/pkg/solver"
)

// Route is the ordered sequence of facet tokens activated during a
// navigation session. Tokens may repeat.
type Route []string

// ParseRoute splits a route given as whitespace separated tokens,
// optionally enclosed in angle brackets.
func ParseRoute(s string) Route {
	s = strings.NewReplacer("<", " ", ">", " ").Replace(s)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return Route(fields)
}

// Activate appends a token.
func (r *Route) Activate(token string) {
	*r = append(*r, token)
}

// DeactivateAny removes every occurrence of token and returns the
// positions removed, each relative to the route as it was when that
// occurrence was removed.
func (r *Route) DeactivateAny(token string) []int {
	var positions []int
	for {
		pos := r.index(token)
		if pos < 0 {
			return positions
		}
		*r = append((*r)[:pos], (*r)[pos+1:]...)
		positions = append(positions, pos)
	}
}

func (r Route) index(token string) int {
	for i, t := range r {
		if t == token {
			return i
		}
	}
	return -1
}

// Contains reports whether token was activated.
func (r Route) Contains(token string) bool {
	return r.index(token) >= 0
}

// PeekStep returns a copy of r extended by token.
func (r Route) PeekStep(token string) Route {
	return r.PeekSteps(token)
}

// PeekSteps returns a copy of r extended by tokens.
func (r Route) PeekSteps(tokens ...string) Route {
	peek := make(Route, 0, len(r)+len(tokens))
	peek = append(peek, r...)
	return append(peek, tokens...)
}

func (r Route) String() string {
	var b strings.Builder
	b.WriteString("< ")
	for _, t := range r {
		b.WriteString(t)
		b.WriteString(" ")
	}
	b.WriteString(">")
	return b.String()
}

// Inverse returns the token of the opposite orientation.
func Inverse(token string) string {
	if strings.HasPrefix(token, solver.ExclusivePrefix) {
		return token[len(solver.ExclusivePrefix):]
	}
	return solver.ExclusivePrefix + token
}
