package solver

import (
	"fmt"
	"strings"
	"unicode"
)

// Atom is a ground proposition of a program. Two atoms are equal if
// and only if their canonical representations are equal, so Atom
// values can be used as map keys.
type Atom struct {
	predicate string
	arity     int
	repr      string
}

// Predicate returns the name of the atom's predicate.
func (a Atom) Predicate() string {
	return a.predicate
}

// Arity returns the number of arguments of the atom.
func (a Atom) Arity() int {
	return a.arity
}

// String returns the canonical representation, which never contains
// whitespace.
func (a Atom) String() string {
	return a.repr
}

// Exclusive returns the representation of the atom's exclusive
// orientation.
func (a Atom) Exclusive() string {
	return ExclusivePrefix + a.repr
}

// Signature returns the predicate signature "name/arity".
func (a Atom) Signature() Signature {
	return Signature{Name: a.predicate, Arity: a.arity}
}

// ExclusivePrefix marks the exclusive orientation of a facet token.
const ExclusivePrefix = "~"

// Signature identifies a predicate by name and arity.
type Signature struct {
	Name  string
	Arity int
}

func (s Signature) String() string {
	return fmt.Sprintf("%s/%d", s.Name, s.Arity)
}

// Literal is a signed reference to an Atom of an Oracle session. The
// positive literal of the i-th atom is i+1 and its negation is -(i+1).
type Literal int32

// LitNull is the zero Literal and refers to no atom.
const LitNull Literal = 0

// Negate returns the literal of opposite polarity.
func (l Literal) Negate() Literal {
	return -l
}

// Positive reports whether l asserts its atom.
func (l Literal) Positive() bool {
	return l > 0
}

// Index returns the index of the atom that l refers to.
func (l Literal) Index() int {
	if l < 0 {
		return int(-l) - 1
	}
	return int(l) - 1
}

// ParseAtom parses a single ground atom such as "set_obj_cell(1,1)"
// into its canonical form. Whitespace inside the atom is rejected.
func ParseAtom(s string) (Atom, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Atom{}, &ParseError{Token: s, Reason: "empty atom"}
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Atom{}, &ParseError{Token: s, Reason: "whitespace inside atom"}
	}
	p := newParser("token", s)
	a, err := p.atom()
	if err != nil {
		return Atom{}, &ParseError{Token: s, Reason: err.Error()}
	}
	if !p.at(eofToken) {
		return Atom{}, &ParseError{Token: s, Reason: "trailing input"}
	}
	return a, nil
}

// ParseToken splits a facet token into its atom and orientation. A
// leading "~" selects the exclusive orientation.
func ParseToken(token string) (Atom, bool, error) {
	t := strings.TrimSpace(token)
	inclusive := true
	if strings.HasPrefix(t, ExclusivePrefix) {
		inclusive = false
		t = t[len(ExclusivePrefix):]
	}
	a, err := ParseAtom(t)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Token = token
		}
		return Atom{}, false, err
	}
	return a, inclusive, nil
}

// Model is the set of shown atoms true in one answer set, in program
// order.
type Model []Atom

// Contains reports whether a is true in m.
func (m Model) Contains(a Atom) bool {
	for _, b := range m {
		if a == b {
			return true
		}
	}
	return false
}

// Strings returns the canonical representations of the atoms in m.
func (m Model) Strings() []string {
	s := make([]string, len(m))
	for i, a := range m {
		s[i] = a.String()
	}
	return s
}

func (m Model) String() string {
	return strings.Join(m.Strings(), " ")
}

// Key returns a string identifying m among models of the same program.
func (m Model) Key() string {
	return strings.Join(m.Strings(), "\x00")
}
