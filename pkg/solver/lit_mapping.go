package solver

import (
	"fmt"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// support is one way of deriving an atom: the circuit literal of the
// supporting body together with the positive body atoms that must be
// founded first.
type support struct {
	lit z.Lit
	pos []int
}

// valuer is satisfied by a solver that has found a model.
type valuer interface {
	Value(m z.Lit) bool
}

// litMapping performs translation between the atoms of a Program and
// the variables that appear in the SAT formula. Rules are compiled
// into a circuit holding the completion of the program; loop formulas
// for non-tight programs are derived from the recorded supports.
type litMapping struct {
	atoms    []Atom
	index    map[Atom]int
	lits     []z.Lit
	shown    []bool
	supports [][]support
	roots    []z.Lit
	c        *logic.C
	tight    bool
}

// newLitMapping returns a new litMapping with its state initialized
// from the provided program. Atoms are numbered in order of first
// appearance.
func newLitMapping(p *Program) (*litMapping, error) {
	d := litMapping{
		index: make(map[Atom]int),
		c:     logic.NewCCap(4 * len(p.Rules())),
	}

	// First pass to assign lits:
	for _, r := range p.Rules() {
		for _, a := range r.Head() {
			d.add(a)
		}
		for _, a := range r.Body().atoms() {
			d.add(a)
		}
	}
	d.shown = make([]bool, len(d.atoms))
	for i, a := range d.atoms {
		d.shown[i] = p.Shown(a)
	}
	d.supports = make([][]support, len(d.atoms))

	tight, err := d.analyze(p.Rules())
	if err != nil {
		return nil, err
	}
	d.tight = tight

	for _, r := range p.Rules() {
		r.apply(&d)
	}

	// Completion: an atom is true only if one of its supports is.
	for i, m := range d.lits {
		ss := make([]z.Lit, len(d.supports[i]))
		for j, s := range d.supports[i] {
			ss[j] = s.lit
		}
		d.assert(d.c.Or(m.Not(), d.c.Ors(ss...)))
	}

	return &d, nil
}

func (d *litMapping) add(a Atom) {
	if _, ok := d.index[a]; ok {
		return
	}
	d.index[a] = len(d.atoms)
	d.atoms = append(d.atoms, a)
	d.lits = append(d.lits, d.c.Lit())
}

func (d *litMapping) litsOf(as []Atom) []z.Lit {
	ms := make([]z.Lit, len(as))
	for i, a := range as {
		ms[i] = d.lits[d.index[a]]
	}
	return ms
}

func (d *litMapping) body(b Body) z.Lit {
	ms := d.litsOf(b.Positive)
	for _, m := range d.litsOf(b.Negative) {
		ms = append(ms, m.Not())
	}
	return d.c.Ands(ms...)
}

func (d *litMapping) assert(m z.Lit) {
	d.roots = append(d.roots, m)
}

func (d *litMapping) support(h Atom, m z.Lit, pos []Atom) {
	i := d.index[h]
	s := support{lit: m, pos: make([]int, len(pos))}
	for j, a := range pos {
		s.pos[j] = d.index[a]
	}
	d.supports[i] = append(d.supports[i], s)
}

// LitOf returns the positive circuit literal of the atom referenced
// by l, negated if l is negative.
func (d *litMapping) LitOf(l Literal) z.Lit {
	m := d.lits[l.Index()]
	if l.Positive() {
		return m
	}
	return m.Not()
}

// LiteralOf returns the Literal of an atom of the program.
func (d *litMapping) LiteralOf(a Atom) (Literal, bool) {
	i, ok := d.index[a]
	if !ok {
		return LitNull, false
	}
	return Literal(i + 1), true
}

// AddConstraints adds the clauses of the embedded circuit to the
// solver g. The asserted roots are never added as clauses; they are
// assumed on every search by AssumeConstraints.
func (d *litMapping) AddConstraints(g inter.Adder) {
	d.c.ToCnf(g)
}

func (d *litMapping) AssumeConstraints(s inter.S) {
	s.Assume(d.c.T)
	s.Assume(d.roots...)
}

// Model returns the shown atoms that are true in the current model of
// g.
func (d *litMapping) Model(g valuer) Model {
	var m Model
	for i, a := range d.atoms {
		if d.shown[i] && g.Value(d.lits[i]) {
			m = append(m, a)
		}
	}
	return m
}

// Block returns the clause excluding the current assignment of every
// atom in g.
func (d *litMapping) Block(g valuer, dst []z.Lit) []z.Lit {
	dst = dst[:0]
	for _, m := range d.lits {
		if g.Value(m) {
			dst = append(dst, m.Not())
		} else {
			dst = append(dst, m)
		}
	}
	return dst
}

// Unfounded returns the indices of atoms true in the current model of
// g that cannot be derived from the reduct of the program with respect
// to that model. The model is an answer set if and only if the result
// is empty.
func (d *litMapping) Unfounded(g valuer) []int {
	if d.tight {
		return nil
	}
	derived := make([]bool, len(d.atoms))
	for changed := true; changed; {
		changed = false
		for i, m := range d.lits {
			if derived[i] || !g.Value(m) {
				continue
			}
			for _, s := range d.supports[i] {
				if !g.Value(s.lit) || !founded(derived, s.pos) {
					continue
				}
				derived[i] = true
				changed = true
				break
			}
		}
	}
	var u []int
	for i, m := range d.lits {
		if g.Value(m) && !derived[i] {
			u = append(u, i)
		}
	}
	return u
}

// LoopFormula returns, for the unfounded set u, the clauses stating
// that no atom of u holds unless some support external to u does.
func (d *litMapping) LoopFormula(u []int) [][]z.Lit {
	in := make(map[int]bool, len(u))
	for _, i := range u {
		in[i] = true
	}
	var external []z.Lit
	for _, i := range u {
		for _, s := range d.supports[i] {
			if !intersects(in, s.pos) {
				external = append(external, s.lit)
			}
		}
	}
	clauses := make([][]z.Lit, len(u))
	for j, i := range u {
		clauses[j] = append([]z.Lit{d.lits[i].Not()}, external...)
	}
	return clauses
}

func founded(set []bool, is []int) bool {
	for _, i := range is {
		if !set[i] {
			return false
		}
	}
	return true
}

func intersects(set map[int]bool, is []int) bool {
	for _, i := range is {
		if set[i] {
			return true
		}
	}
	return false
}

// analyze computes the strongly connected components of the positive
// dependency graph. It reports whether the program is tight and
// rejects disjunctive rules with two heads in one component.
func (d *litMapping) analyze(rules []Rule) (bool, error) {
	edges := make([][]int, len(d.atoms))
	self := false
	for _, r := range rules {
		for _, h := range r.Head() {
			hi := d.index[h]
			for _, p := range r.Body().Positive {
				pi := d.index[p]
				if pi == hi {
					self = true
				}
				edges[hi] = append(edges[hi], pi)
			}
		}
	}

	component, sizes := tarjan(edges)
	tight := !self
	for _, n := range sizes {
		if n > 1 {
			tight = false
		}
	}
	if tight {
		return true, nil
	}

	for _, r := range rules {
		h := r.Head()
		if _, ok := r.(disjunction); !ok || len(h) < 2 {
			continue
		}
		seen := make(map[int]Atom, len(h))
		for _, a := range h {
			k := component[d.index[a]]
			if b, ok := seen[k]; ok && sizes[k] > 1 {
				return false, &UnsupportedProgram{
					Rule:   r.String(),
					Reason: fmt.Sprintf("head atoms %s and %s depend positively on each other", b, a),
				}
			}
			seen[k] = a
		}
	}
	return false, nil
}

// tarjan labels every node with its strongly connected component and
// returns the size of each component.
func tarjan(edges [][]int) ([]int, []int) {
	var (
		index   = make([]int, len(edges))
		low     = make([]int, len(edges))
		onStack = make([]bool, len(edges))
		comp    = make([]int, len(edges))
		stack   []int
		sizes   []int
		counter = 1
	)

	var visit func(v int)
	visit = func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range edges[v] {
			if index[w] == 0 {
				visit(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}
		if low[v] != index[v] {
			return
		}
		k, n := len(sizes), 0
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp[w] = k
			n++
			if w == v {
				break
			}
		}
		sizes = append(sizes, n)
	}

	for v := range edges {
		if index[v] == 0 {
			visit(v)
		}
	}
	return comp, sizes
}
