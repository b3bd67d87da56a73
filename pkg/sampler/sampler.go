package sampler

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/fasb/pkg/cache"
	"github.com/operator-framework/fasb/pkg/metrics"
	"github.com/operator-framework/fasb/pkg/solver"
)

// Observer is notified about every model added to a collection.
type Observer interface {
	Collected(index int, m solver.Model, covered float64)
}

type NopObserver struct{}

func (NopObserver) Collected(int, solver.Model, float64) {}

// Sampler assembles collections of answer sets of one program. It owns
// its sessions; sieving heuristics build further sessions from the
// program text extended by a denial of the missing atoms.
type Sampler struct {
	program  *solver.Program
	oracle   solver.Oracle
	build    solver.Builder
	cache    *cache.Cache
	logger   logrus.FieldLogger
	observer Observer
}

type Option func(*Sampler) error

// WithBuilder sets how sessions are created from program text.
func WithBuilder(b solver.Builder) Option {
	return func(s *Sampler) error {
		s.build = b
		return nil
	}
}

func WithCache(c *cache.Cache) Option {
	return func(s *Sampler) error {
		s.cache = c
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Sampler) error {
		s.logger = logger
		return nil
	}
}

func WithObserver(o Observer) Option {
	return func(s *Sampler) error {
		s.observer = o
		return nil
	}
}

var defaults = []Option{
	func(s *Sampler) error {
		if s.logger == nil {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			s.logger = logger
		}
		return nil
	},
	func(s *Sampler) error {
		if s.build == nil {
			s.build = solver.NewBuilder(solver.WithLogger(s.logger))
		}
		return nil
	},
	func(s *Sampler) error {
		if s.cache != nil {
			return nil
		}
		c, err := cache.New(cache.WithLogger(s.logger))
		s.cache = c
		return err
	},
	func(s *Sampler) error {
		if s.observer == nil {
			s.observer = NopObserver{}
		}
		return nil
	},
}

// New returns a sampler over the answer sets of source.
func New(source string, options ...Option) (*Sampler, error) {
	s := Sampler{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	o, err := s.build(source)
	if err != nil {
		return nil, errors.Wrap(err, "building session")
	}
	s.oracle = o
	s.program = o.Program()
	return &s, nil
}

// Run samples a collection for target with policy. An empty target
// samples for the facets of the program.
func (s *Sampler) Run(ctx context.Context, policy Policy, target []solver.Atom) (*Collection, error) {
	if len(target) == 0 {
		t, err := s.Template(ctx)
		if err != nil {
			return nil, err
		}
		target = t
	}
	start := time.Now()
	c := NewCollection(target)
	err := policy.Sample(ctx, s, c)
	metrics.SetSampleSize(policy.String(), c.Len())

	d := c.Diagnostics()
	s.logger.WithFields(logrus.Fields{
		"heuristic": policy.String(),
		"models":    d.Models,
		"missing":   len(d.Missing),
		"diversity": d.Diversity,
		"r":         d.Representativeness,
		"elapsed":   time.Since(start),
	}).Debug("sampled")
	return c, err
}

// Template returns the facets of the program.
func (s *Sampler) Template(ctx context.Context) ([]solver.Atom, error) {
	return s.TemplateUnder(ctx, nil)
}

// TemplateUnder returns the facets under a route of tokens.
func (s *Sampler) TemplateUnder(ctx context.Context, route []string) ([]solver.Atom, error) {
	lits, err := solver.Literals(s.oracle, route)
	if err != nil {
		return nil, err
	}
	return solver.Facets(ctx, s.oracle, lits)
}

func (s *Sampler) collect(c *Collection, m solver.Model) bool {
	if !c.Add(m) {
		return false
	}
	s.observer.Collected(c.Len(), m, c.Covered())
	return true
}

// cautious returns the cautious consequences of a session under lits,
// memoized per program text and assumptions.
func (s *Sampler) cautious(ctx context.Context, o solver.Oracle, lits []solver.Literal) ([]solver.Atom, error) {
	key := cache.LiteralKey(cache.Scope(o.Program().Source()), lits)
	if cc, ok := s.cache.Cautious(key); ok {
		return cc, nil
	}
	cc, err := o.Consequences(ctx, solver.Cautious, lits)
	if err != nil {
		return nil, err
	}
	s.cache.PutCautious(key, cc)
	return cc, nil
}

// DGreedy collects up to k models under route, or as many as it finds
// if k is 0. After every model it forbids the atoms of that model that
// are not cautious consequences of the route, driving the next model
// away from the ones seen.
func (s *Sampler) DGreedy(ctx context.Context, route []string, k int, c *Collection) error {
	seed, err := solver.Literals(s.oracle, route)
	if err != nil {
		return err
	}
	cc, err := s.cautious(ctx, s.oracle, seed)
	if err != nil {
		return err
	}
	return s.dGreedy(ctx, s.oracle, seed, ignoring(cc), k, c)
}

// dGreedy solves under seed repeatedly. Each model extends seed by the
// negations of its atoms that are not ignored. It stops on an empty
// model, on a model that adds no negation after the first one, or when
// the seed becomes unsatisfiable.
func (s *Sampler) dGreedy(ctx context.Context, o solver.Oracle, seed []solver.Literal, ignore func(solver.Atom) bool, k int, c *Collection) error {
	seed = append([]solver.Literal(nil), seed...)
	for i, added := 0, 0; k == 0 || added < k; i++ {
		m, ok, err := solver.FindOne(ctx, o, seed)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		var forcing []solver.Literal
		for _, a := range m {
			if ignore(a) {
				continue
			}
			if l, ok := o.LiteralOf(a); ok {
				forcing = append(forcing, l.Negate())
			}
		}
		if len(m) == 0 || (len(forcing) == 0 && i > 0) {
			return nil
		}
		seed = append(seed, forcing...)
		if s.collect(c, m) {
			added++
		}
		if len(forcing) == 0 {
			return nil
		}
	}
	return nil
}

// SGreedy picks a target atom not observed yet, asserts it and keeps
// the first model that observes something new. Atoms that cannot be
// true are marked unreachable.
func (s *Sampler) SGreedy(ctx context.Context, c *Collection) error {
	return s.sGreedy(ctx, s.oracle, c, false)
}

// SGreedyPlus is SGreedy that first tries to avoid target atoms
// already observed, falling back to SGreedy when that is impossible.
func (s *Sampler) SGreedyPlus(ctx context.Context, c *Collection) error {
	return s.sGreedy(ctx, s.oracle, c, true)
}

func (s *Sampler) sGreedy(ctx context.Context, o solver.Oracle, c *Collection, avoid bool) error {
	for !c.Done() {
		t := c.Missing()[0]
		l, ok := o.LiteralOf(t)
		if !ok {
			c.markUnreachable(t)
			continue
		}

		assumptions := []solver.Literal{l}
		if avoid {
			for _, a := range c.Target() {
				if c.Frequency(a) == 0 {
					continue
				}
				if al, ok := o.LiteralOf(a); ok {
					assumptions = append(assumptions, al.Negate())
				}
			}
		}

		found, err := s.firstCovering(ctx, o, assumptions, c)
		if err != nil {
			return err
		}
		if !found && avoid && len(assumptions) > 1 {
			found, err = s.firstCovering(ctx, o, assumptions[:1], c)
			if err != nil {
				return err
			}
		}
		if !found {
			c.markUnreachable(t)
		}
	}
	return nil
}

// firstCovering enumerates models under assumptions and collects the
// first one that observes a missing target atom.
func (s *Sampler) firstCovering(ctx context.Context, o solver.Oracle, assumptions []solver.Literal, c *Collection) (bool, error) {
	it, err := o.Solve(ctx, assumptions)
	if err != nil {
		return false, err
	}
	defer it.Close()
	for it.Next(ctx) {
		m := it.Model()
		if c.Covers(m) {
			return s.collect(c, m), nil
		}
	}
	return false, it.Err()
}

func ignoring(atoms []solver.Atom) func(solver.Atom) bool {
	set := make(map[solver.Atom]struct{}, len(atoms))
	for _, a := range atoms {
		set[a] = struct{}{}
	}
	return func(a solver.Atom) bool {
		_, ok := set[a]
		return ok
	}
}
