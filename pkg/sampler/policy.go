package sampler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/operator-framework/fasb/pkg/solver"
)

// Policy fills a collection.
type Policy interface {
	fmt.Stringer
	Sample(ctx context.Context, s *Sampler, c *Collection) error
}

type Heuristic string

const (
	Naive                  Heuristic = "naive"
	NaivePlus              Heuristic = "naive-plus"
	NaiveSieve             Heuristic = "naive-sieve"
	SieveMin               Heuristic = "sieve-min"
	SieveMax               Heuristic = "sieve-max"
	DGreedy                Heuristic = "dgreedy"
	DGreedySieve           Heuristic = "dgreedy-sieve"
	DGreedySieveMax        Heuristic = "dgreedy-sieve-max"
	DGreedySieveMaxPlus    Heuristic = "dgreedy-sieve-max-plus"
	DGreedySieveMaxAll     Heuristic = "dgreedy-sieve-max-all"
	DGreedySieveMaxPlusAll Heuristic = "dgreedy-sieve-max-plus-all"
)

// Heuristics lists every heuristic by name.
var Heuristics = []Heuristic{
	Naive, NaivePlus, NaiveSieve, SieveMin, SieveMax, DGreedy, DGreedySieve,
	DGreedySieveMax, DGreedySieveMaxPlus, DGreedySieveMaxAll, DGreedySieveMaxPlusAll,
}

// ParseHeuristic accepts heuristic names case-insensitively, with
// either dashes or underscores.
func ParseHeuristic(s string) (Heuristic, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	name = strings.TrimPrefix(name, "--")
	if name == "" {
		return DGreedySieveMax, nil
	}
	for _, h := range Heuristics {
		if string(h) == name || strings.ReplaceAll(string(h), "-", "") == name {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown heuristic %q", s)
}

// NewPolicy returns the policy of a heuristic. size bounds the number
// of models DGreedy collects; 0 means no bound.
func NewPolicy(h Heuristic, size int) (Policy, error) {
	switch h {
	case Naive:
		return naive{}, nil
	case NaivePlus:
		return naive{plus: true}, nil
	case NaiveSieve:
		return naive{sieve: true}, nil
	case SieveMin:
		return sieve{coverMost: true}, nil
	case SieveMax:
		return sieve{}, nil
	case DGreedy:
		return dGreedy{size: size}, nil
	case DGreedySieve:
		return dGreedySieve{}, nil
	case DGreedySieveMax:
		return dGreedySieve{steer: true}, nil
	case DGreedySieveMaxPlus:
		return dGreedySieve{steer: true, plus: true}, nil
	case DGreedySieveMaxAll:
		return dGreedySieve{steer: true, all: true}, nil
	case DGreedySieveMaxPlusAll:
		return dGreedySieve{steer: true, plus: true, all: true}, nil
	}
	return nil, errors.Errorf("unknown heuristic %q", h)
}

// naive samples with SGreedy, optionally on a session restricted to
// answer sets containing a target atom.
type naive struct {
	plus  bool
	sieve bool
}

func (p naive) String() string {
	switch {
	case p.plus:
		return string(NaivePlus)
	case p.sieve:
		return string(NaiveSieve)
	}
	return string(Naive)
}

func (p naive) Sample(ctx context.Context, s *Sampler, c *Collection) error {
	o := s.oracle
	if p.sieve {
		var err error
		if o, err = s.sieved(c.Missing()); err != nil {
			return err
		}
	}
	return s.sGreedy(ctx, o, c, p.plus)
}

// dGreedy runs DGreedy on the whole program.
type dGreedy struct {
	size int
}

func (dGreedy) String() string {
	return string(DGreedy)
}

func (p dGreedy) Sample(ctx context.Context, s *Sampler, c *Collection) error {
	return s.DGreedy(ctx, nil, p.size, c)
}

// sieve collects one model per round on a session restricted to answer
// sets containing a missing atom, steered by the facet orientation
// whose activation leaves the most (coverMost) or the fewest missing
// atoms undetermined.
type sieve struct {
	coverMost bool
}

func (p sieve) String() string {
	if p.coverMost {
		return string(SieveMin)
	}
	return string(SieveMax)
}

func (p sieve) Sample(ctx context.Context, s *Sampler, c *Collection) error {
	c.sharePerCovered = true
	for !c.Done() {
		missing := c.Missing()
		o, err := s.sieved(missing)
		if err != nil {
			return err
		}
		l, ok := o.LiteralOf(missing[0])
		if !ok {
			c.markUnreachable(missing[0])
			continue
		}
		if len(missing) > 1 {
			if l, err = p.steer(ctx, o, missing, l); err != nil {
				return err
			}
		}

		m, ok, err := solver.FindOne(ctx, o, []solver.Literal{l})
		if err != nil {
			return err
		}
		if !ok {
			if m, ok, err = solver.FindOne(ctx, o, nil); err != nil {
				return err
			}
		}
		if !ok {
			for _, a := range missing {
				c.markUnreachable(a)
			}
			continue
		}
		s.collect(c, m)
	}
	return nil
}

func (p sieve) steer(ctx context.Context, o solver.Oracle, missing []solver.Atom, l solver.Literal) (solver.Literal, error) {
	fs, err := solver.Facets(ctx, o, nil)
	if err != nil {
		return l, err
	}
	best := len(missing)
	if p.coverMost {
		best = 0
	}
	for _, f := range fs {
		fl, ok := o.LiteralOf(f)
		if !ok {
			continue
		}
		for _, cand := range []solver.Literal{fl, fl.Negate()} {
			under, err := solver.Facets(ctx, o, []solver.Literal{cand})
			if err != nil {
				return l, err
			}
			n := len(intersect(under, missing))
			if p.coverMost && n >= best {
				l, best = cand, n
				if n == len(missing)-1 {
					return l, nil
				}
			}
			if !p.coverMost && n <= best {
				l, best = cand, n
				if n == 0 {
					return l, nil
				}
			}
		}
	}
	return l, nil
}

// dGreedySieve runs delta-greedy rounds on sessions restricted to
// answer sets containing a missing atom. With steer, every round
// starts from the orientation leaving the fewest missing atoms
// undetermined, chosen among the missing atoms or, with all, among
// every facet. plus breaks ties by the number of target atoms the
// orientation leaves unpinned.
type dGreedySieve struct {
	steer bool
	plus  bool
	all   bool
}

func (p dGreedySieve) String() string {
	switch {
	case !p.steer:
		return string(DGreedySieve)
	case p.plus && p.all:
		return string(DGreedySieveMaxPlusAll)
	case p.plus:
		return string(DGreedySieveMaxPlus)
	case p.all:
		return string(DGreedySieveMaxAll)
	}
	return string(DGreedySieveMax)
}

func (p dGreedySieve) Sample(ctx context.Context, s *Sampler, c *Collection) error {
	for !c.Done() {
		missing := c.Missing()
		if p.steer && len(missing) == 1 {
			return p.last(ctx, s, c, missing[0])
		}

		o, err := s.sieved(missing)
		if err != nil {
			return err
		}
		var seed []solver.Literal
		if p.steer {
			var ok bool
			if seed, ok, err = p.choose(ctx, s, o, c, missing); err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		before := c.Len()
		if err := s.dGreedy(ctx, o, seed, notIn(missing), 0, c); err != nil {
			return err
		}
		if c.Len() == before {
			// no answer set holds any missing atom
			for _, a := range missing {
				c.markUnreachable(a)
			}
		}
	}
	return nil
}

// last covers a single missing atom with one model.
func (p dGreedySieve) last(ctx context.Context, s *Sampler, c *Collection, a solver.Atom) error {
	o, err := s.sieved([]solver.Atom{a})
	if err != nil {
		return err
	}
	m, ok, err := solver.FindOne(ctx, o, nil)
	if err != nil {
		return err
	}
	if !ok {
		c.markUnreachable(a)
		return nil
	}
	s.collect(c, m)
	return nil
}

// choose scores both orientations of the candidates and returns the
// seed of the next round. An inclusive orientation without any answer
// set marks its atom unreachable and reports false.
func (p dGreedySieve) choose(ctx context.Context, s *Sampler, o solver.Oracle, c *Collection, missing []solver.Atom) ([]solver.Literal, bool, error) {
	candidates := missing
	if p.all {
		fs, err := solver.Facets(ctx, o, nil)
		if err != nil {
			return nil, false, err
		}
		candidates = fs
	}

	var best scored
	for _, a := range candidates {
		l, ok := o.LiteralOf(a)
		if !ok {
			continue
		}
		for _, cand := range []solver.Literal{l, l.Negate()} {
			sc, err := p.score(ctx, s, o, cand, missing, c.Target())
			if err != nil {
				return nil, false, err
			}
			if !sc.consistent {
				if cand == l {
					c.markUnreachable(a)
					return nil, false, nil
				}
				continue
			}
			if !best.consistent || sc.beats(best, p.plus) {
				best = sc
				if sc.facets == 0 && !p.plus {
					return []solver.Literal{best.lit}, true, nil
				}
			}
		}
	}
	if !best.consistent {
		return nil, true, nil
	}
	return []solver.Literal{best.lit}, true, nil
}

type scored struct {
	lit        solver.Literal
	consistent bool
	facets     int
	plus       int
}

// beats prefers fewer undetermined missing atoms; with plus, ties go
// to the lower facet_count + (|T| - trues).
func (sc scored) beats(other scored, plus bool) bool {
	if sc.facets != other.facets {
		return sc.facets < other.facets
	}
	if plus {
		return sc.plus < other.plus
	}
	return true
}

func (p dGreedySieve) score(ctx context.Context, s *Sampler, o solver.Oracle, l solver.Literal, missing, target []solver.Atom) (scored, error) {
	lits := []solver.Literal{l}
	brave, err := o.Consequences(ctx, solver.Brave, lits)
	if err != nil {
		return scored{}, err
	}
	if len(brave) == 0 {
		return scored{lit: l}, nil
	}
	cautious, err := s.cautious(ctx, o, lits)
	if err != nil {
		return scored{}, err
	}
	n := len(intersect(solver.Difference(brave, cautious), missing))
	trues := len(intersect(cautious, target))
	return scored{
		lit:        l,
		consistent: true,
		facets:     n,
		plus:       n + len(target) - trues,
	}, nil
}

// sieved builds a session whose answer sets contain at least one of
// atoms.
func (s *Sampler) sieved(atoms []solver.Atom) (solver.Oracle, error) {
	p := s.program.With(solver.Denial(atoms))
	o, err := s.build(p.Source())
	if err != nil {
		return nil, errors.Wrap(err, "building sieved session")
	}
	return o, nil
}

func intersect(as, bs []solver.Atom) []solver.Atom {
	in := ignoring(bs)
	var out []solver.Atom
	for _, a := range as {
		if in(a) {
			out = append(out, a)
		}
	}
	return out
}

func notIn(atoms []solver.Atom) func(solver.Atom) bool {
	in := ignoring(atoms)
	return func(a solver.Atom) bool {
		return !in(a)
	}
}
