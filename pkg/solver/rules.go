package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"
)

// Rule implementations are the statements of a ground program. Each
// rule knows how to render itself as program text and how to
// contribute to the completion of the program.
type Rule interface {
	String() string
	Head() []Atom
	Body() Body
	apply(d *litMapping)
}

// Body is a conjunction of positive and default-negated atoms.
type Body struct {
	Positive []Atom
	Negative []Atom
}

// Empty reports whether b has no literals.
func (b Body) Empty() bool {
	return len(b.Positive) == 0 && len(b.Negative) == 0
}

func (b Body) String() string {
	s := make([]string, 0, len(b.Positive)+len(b.Negative))
	for _, a := range b.Positive {
		s = append(s, a.String())
	}
	for _, a := range b.Negative {
		s = append(s, "not "+a.String())
	}
	return strings.Join(s, ", ")
}

func (b Body) atoms() []Atom {
	return append(append([]Atom(nil), b.Positive...), b.Negative...)
}

func joinAtoms(as []Atom, sep string) string {
	s := make([]string, len(as))
	for i, a := range as {
		s[i] = a.String()
	}
	return strings.Join(s, sep)
}

func withBody(head string, b Body) string {
	if b.Empty() {
		return head + "."
	}
	if head == "" {
		return fmt.Sprintf(":- %s.", b)
	}
	return fmt.Sprintf("%s :- %s.", head, b)
}

type disjunction struct {
	head []Atom
	body Body
}

func (r disjunction) String() string {
	return withBody(joinAtoms(r.head, ";"), r.body)
}

func (r disjunction) Head() []Atom {
	return r.head
}

func (r disjunction) Body() Body {
	return r.body
}

// apply encodes body -> h1 | ... | hn, and registers body plus the
// falsity of every other head as support for each head.
func (r disjunction) apply(d *litMapping) {
	b := d.body(r.body)
	hs := d.litsOf(r.head)
	d.assert(d.c.Or(b.Not(), d.c.Ors(hs...)))
	for i, h := range r.head {
		ms := []z.Lit{b}
		for j, o := range hs {
			if j != i {
				ms = append(ms, o.Not())
			}
		}
		d.support(h, d.c.Ands(ms...), r.body.Positive)
	}
}

// Fact returns the rule "a."
func Fact(a Atom) Rule {
	return disjunction{head: []Atom{a}}
}

// Disjunction returns the rule "h1;...;hn :- pos, not neg." A single
// head atom yields a normal rule.
func Disjunction(head []Atom, pos, neg []Atom) Rule {
	return disjunction{head: head, body: Body{Positive: pos, Negative: neg}}
}

type choice struct {
	head         []Atom
	lower, upper int
	body         Body
}

func (r choice) String() string {
	h := fmt.Sprintf("{%s}", joinAtoms(r.head, ";"))
	switch {
	case r.lower == r.upper:
		h = fmt.Sprintf("%s = %d", h, r.lower)
	default:
		if r.lower > 0 {
			h = fmt.Sprintf("%d %s", r.lower, h)
		}
		if r.upper >= 0 {
			h = fmt.Sprintf("%s %d", h, r.upper)
		}
	}
	return withBody(h, r.body)
}

func (r choice) Head() []Atom {
	return r.head
}

func (r choice) Body() Body {
	return r.body
}

func (r choice) apply(d *litMapping) {
	b := d.body(r.body)
	hs := d.litsOf(r.head)
	for _, h := range r.head {
		d.support(h, b, r.body.Positive)
	}

	n := len(hs)
	if r.lower > n {
		d.assert(b.Not())
		return
	}
	if r.lower <= 0 && (r.upper < 0 || r.upper >= n) {
		return
	}
	cs := d.c.CardSort(hs)
	if r.lower > 0 {
		d.assert(d.c.Or(b.Not(), cs.Geq(r.lower)))
	}
	if r.upper >= 0 && r.upper < n {
		d.assert(d.c.Or(b.Not(), cs.Leq(r.upper)))
	}
}

// Choice returns the rule "lower {h1;...;hn} upper :- pos, not neg."
// A negative upper bound leaves the choice unbounded from above.
func Choice(head []Atom, lower, upper int, pos, neg []Atom) Rule {
	return choice{head: head, lower: lower, upper: upper, body: Body{Positive: pos, Negative: neg}}
}

type integrity struct {
	body Body
}

func (r integrity) String() string {
	if r.body.Empty() {
		return ":- ."
	}
	return withBody("", r.body)
}

func (r integrity) Head() []Atom {
	return nil
}

func (r integrity) Body() Body {
	return r.body
}

func (r integrity) apply(d *litMapping) {
	d.assert(d.body(r.body).Not())
}

// Integrity returns the constraint ":- pos, not neg."
func Integrity(pos, neg []Atom) Rule {
	return integrity{body: Body{Positive: pos, Negative: neg}}
}

// Denial returns the constraint ":- not a1, ..., not an." which
// removes every answer set in which none of the atoms holds.
func Denial(atoms []Atom) Rule {
	return Integrity(nil, atoms)
}
