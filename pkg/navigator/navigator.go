package navigator

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/fasb/pkg/cache"
	"github.com/operator-framework/fasb/pkg/metrics"
	"github.com/operator-framework/fasb/pkg/solver"
)

// DefaultN is the number of answer sets shown by default.
const DefaultN = 3

// Navigator holds one navigation session over the answer sets of a
// program. It owns its Oracle and is not safe for concurrent use.
type Navigator struct {
	id       string
	oracle   solver.Oracle
	cache    *cache.Cache
	scope    uint64
	logger   logrus.FieldLogger
	observer Observer
	rand     *rand.Rand
	n        int

	route   Route
	active  []solver.Literal
	initial Facets
	current Facets
	pace    float64
}

type Option func(*Navigator) error

// WithCache shares a cache between navigators. Entries are scoped by
// program text.
func WithCache(c *cache.Cache) Option {
	return func(n *Navigator) error {
		n.cache = c
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(n *Navigator) error {
		n.logger = logger
		return nil
	}
}

func WithObserver(o Observer) Option {
	return func(n *Navigator) error {
		n.observer = o
		return nil
	}
}

// WithRand sets the source of random steps.
func WithRand(r *rand.Rand) Option {
	return func(n *Navigator) error {
		n.rand = r
		return nil
	}
}

// WithN sets the number of answer sets NavigateN returns.
func WithN(count int) Option {
	return func(n *Navigator) error {
		if count < 0 {
			return errors.Errorf("invalid answer set count %d", count)
		}
		n.n = count
		return nil
	}
}

var defaults = []Option{
	func(n *Navigator) error {
		if n.logger == nil {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			n.logger = logger
		}
		return nil
	},
	func(n *Navigator) error {
		if n.cache != nil {
			return nil
		}
		c, err := cache.New(cache.WithLogger(n.logger))
		n.cache = c
		return err
	},
	func(n *Navigator) error {
		if n.observer == nil {
			n.observer = NopObserver{}
		}
		return nil
	},
	func(n *Navigator) error {
		if n.rand == nil {
			n.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return nil
	},
}

// New starts a navigation session. It fails if the program has no
// answer set.
func New(ctx context.Context, o solver.Oracle, options ...Option) (*Navigator, error) {
	n := Navigator{
		id:     uuid.New().String(),
		oracle: o,
		n:      DefaultN,
	}
	for _, option := range append(options, defaults...) {
		if err := option(&n); err != nil {
			return nil, err
		}
	}
	n.logger = n.logger.WithField("session", n.id)
	n.scope = cache.Scope(o.Program().Source())

	start := time.Now()
	ok, err := o.Satisfiable(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "checking satisfiability")
	}
	if !ok {
		return nil, solver.NotSatisfiable{}
	}
	fs, err := n.FacetsUnder(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "computing initial facets")
	}
	n.initial, n.current = fs, fs

	n.logger.WithFields(logrus.Fields{
		"facets":  len(fs),
		"elapsed": time.Since(start),
	}).Debug("started navigation")
	metrics.SetCurrentFacets(len(fs))
	return &n, nil
}

// ID identifies the session in logs.
func (n *Navigator) ID() string {
	return n.id
}

// Program returns the program text.
func (n *Navigator) Program() string {
	return n.oracle.Program().Source()
}

// N returns the default number of answer sets to navigate.
func (n *Navigator) N() int {
	return n.n
}

func (n *Navigator) Route() Route {
	return append(Route(nil), n.route...)
}

// Active returns the literals of the route.
func (n *Navigator) Active() []solver.Literal {
	return append([]solver.Literal(nil), n.active...)
}

func (n *Navigator) InitialFacets() Facets {
	return n.initial
}

func (n *Navigator) CurrentFacets() Facets {
	return n.current
}

// Pace is the share of facet orientations of the initial facets that
// the route has resolved.
func (n *Navigator) Pace() float64 {
	return n.pace
}

// Activate appends tokens to the route. A token that does not resolve
// to a literal is skipped; the others are still activated and the
// parse errors are returned together.
func (n *Navigator) Activate(ctx context.Context, tokens ...string) error {
	var (
		errs      *multierror.Error
		activated int
	)
	err := n.apply(ctx, func() {
		for _, t := range tokens {
			t = strings.TrimSpace(t)
			l, err := n.oracle.Literal(t)
			if err != nil {
				n.logger.WithError(err).WithField("token", t).Warn("skipping facet")
				errs = multierror.Append(errs, err)
				continue
			}
			n.route.Activate(t)
			n.active = append(n.active, l)
			activated++
		}
	})
	if err != nil {
		return err
	}
	for i := 0; i < activated; i++ {
		metrics.EmitActivation()
	}
	return errs.ErrorOrNil()
}

// DeactivateAny removes every occurrence of the tokens from the route.
func (n *Navigator) DeactivateAny(ctx context.Context, tokens ...string) error {
	return n.apply(ctx, func() {
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			t = strings.TrimSpace(t)
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			for _, pos := range n.route.DeactivateAny(t) {
				n.active = append(n.active[:pos], n.active[pos+1:]...)
			}
		}
	})
}

// Clear empties the route.
func (n *Navigator) Clear(ctx context.Context) error {
	return n.apply(ctx, func() {
		n.route = nil
		n.active = nil
	})
}

// apply changes the route and recomputes the facets. The route is
// restored when the facets cannot be computed.
func (n *Navigator) apply(ctx context.Context, change func()) error {
	route := append(Route(nil), n.route...)
	active := append([]solver.Literal(nil), n.active...)
	change()
	if err := n.update(ctx); err != nil {
		n.route, n.active = route, active
		return err
	}
	return nil
}

func (n *Navigator) update(ctx context.Context) error {
	start := time.Now()
	fs, err := n.FacetsUnder(ctx, n.active)
	if err != nil {
		return errors.Wrapf(err, "updating route %s", n.route)
	}
	n.current = fs
	n.pace = 0
	if len(n.initial) > 0 {
		n.pace = 1 - float64(len(fs)*2)/float64(len(n.initial)*2)
	}

	metrics.SetCurrentFacets(len(fs))
	n.observer.Updated(UpdateEvent{
		Route:   n.Route(),
		Facets:  len(fs),
		Pace:    n.pace,
		Elapsed: time.Since(start),
	})
	return nil
}

// Literals resolves the tokens of a route, dropping those that do not
// resolve.
func (n *Navigator) Literals(r Route) []solver.Literal {
	lits := make([]solver.Literal, 0, len(r))
	for _, t := range r {
		if l, err := n.oracle.Literal(t); err == nil {
			lits = append(lits, l)
		}
	}
	return lits
}

// FacetsUnder returns the facets under the assumptions.
func (n *Navigator) FacetsUnder(ctx context.Context, lits []solver.Literal) (Facets, error) {
	key := cache.LiteralKey(n.scope, lits)
	if fs, ok := n.cache.Facets(key); ok {
		return Facets(fs), nil
	}
	atoms, err := solver.Facets(ctx, n.oracle, lits)
	if err != nil {
		return nil, err
	}
	fs := Facets(atoms)
	n.cache.PutFacets(key, fs)
	return fs, nil
}

// Count returns the number of answer sets under a route.
func (n *Navigator) Count(ctx context.Context, r Route) (int, error) {
	key := cache.RouteKey(n.scope, r)
	if c, ok := n.cache.Count(key); ok {
		return c, nil
	}
	c, err := n.oracle.Count(ctx, n.Literals(r))
	if err != nil {
		return 0, err
	}
	n.cache.PutCount(key, c)
	return c, nil
}

// AbsolutePace is the share of answer sets the route has excluded.
func (n *Navigator) AbsolutePace(ctx context.Context) (float64, error) {
	initial, err := n.Count(ctx, nil)
	if err != nil {
		return 0, err
	}
	count, err := n.Count(ctx, n.route)
	if err != nil {
		return 0, err
	}
	if initial == 0 {
		return 0, nil
	}
	return float64(initial-count) / float64(initial), nil
}

// RouteSafe reports whether a route admits an answer set.
func (n *Navigator) RouteSafe(ctx context.Context, r Route) (bool, error) {
	return n.oracle.Satisfiable(ctx, n.Literals(r))
}

// RouteMaximalSafe reports whether a route is safe and no facet under
// it can be activated, in its inclusive orientation, without losing
// safety.
func (n *Navigator) RouteMaximalSafe(ctx context.Context, r Route) (bool, error) {
	ok, err := n.RouteSafe(ctx, r)
	if err != nil || !ok {
		return false, err
	}
	fs, err := n.FacetsUnder(ctx, n.Literals(r))
	if err != nil {
		return false, err
	}
	for _, f := range fs {
		ok, err := n.RouteSafe(ctx, r.PeekStep(f.String()))
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// CurrentRouteIsMaximalSafe checks the route of the session.
func (n *Navigator) CurrentRouteIsMaximalSafe(ctx context.Context) (bool, error) {
	return n.RouteMaximalSafe(ctx, n.route)
}

// PeekSteps returns the route of the session extended by tokens.
func (n *Navigator) PeekSteps(tokens ...string) Route {
	return n.route.PeekSteps(tokens...)
}

// Navigate returns up to count answer sets under the route, or all of
// them if count is 0. Consecutive answer sets that look the same are
// reported once.
func (n *Navigator) Navigate(ctx context.Context, count int) ([]solver.Model, error) {
	it, err := n.oracle.Solve(ctx, n.active)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var models []solver.Model
	prev := ""
	for it.Next(ctx) {
		m := it.Model()
		if len(models) > 0 && m.Key() == prev {
			continue
		}
		prev = m.Key()
		models = append(models, m)
		if count > 0 && len(models) == count {
			break
		}
	}
	return models, it.Err()
}

// NavigateN returns the default number of answer sets.
func (n *Navigator) NavigateN(ctx context.Context) ([]solver.Model, error) {
	return n.Navigate(ctx, n.n)
}

// Step returns the suggestions of mode for the next activation. Modes
// without a ranking suggest every orientation of every current facet.
func (n *Navigator) Step(ctx context.Context, mode Mode) ([]string, error) {
	fs, err := mode.Filter(ctx, n)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		return n.current.Orientations(), nil
	}
	return fs, nil
}
