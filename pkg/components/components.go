package components

import (
	"context"
	"io"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/operator-framework/fasb/pkg/solver"
)

// Class is a group of facet orientations that induce the same
// consequence set.
type Class struct {
	// Key is the shared consequence set, in program order.
	Key []solver.Atom
	// Members are the facet tokens of the group.
	Members []string
	// Content is the union of the other consequence set of the members,
	// sorted by representation.
	Content []solver.Atom
}

// footprint holds the singleton consequences of one facet orientation.
type footprint struct {
	token     string
	inclusive bool
	brave     []solver.Atom
	cautious  []solver.Atom
}

// Analyzer partitions the facets of a program under a route by their
// consequence footprint. Sessions are never shared between goroutines:
// every worker builds its own session from the program text.
type Analyzer struct {
	source  string
	build   solver.Builder
	workers int
	logger  logrus.FieldLogger
}

type Option func(*Analyzer) error

// WithWorkers bounds the number of sessions queried in parallel.
func WithWorkers(n int) Option {
	return func(a *Analyzer) error {
		if n < 0 {
			return errors.Errorf("invalid worker count %d", n)
		}
		a.workers = n
		return nil
	}
}

func WithBuilder(b solver.Builder) Option {
	return func(a *Analyzer) error {
		a.build = b
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Analyzer) error {
		a.logger = logger
		return nil
	}
}

var defaults = []Option{
	func(a *Analyzer) error {
		if a.logger == nil {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			a.logger = logger
		}
		return nil
	},
	func(a *Analyzer) error {
		if a.build == nil {
			a.build = solver.NewBuilder(solver.WithLogger(a.logger))
		}
		return nil
	},
	func(a *Analyzer) error {
		if a.workers == 0 {
			a.workers = runtime.GOMAXPROCS(0)
		}
		return nil
	},
}

func New(source string, options ...Option) (*Analyzer, error) {
	a := Analyzer{source: source}
	for _, option := range append(options, defaults...) {
		if err := option(&a); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// Components groups both orientations of every facet by their cautious
// consequences. The content of a class is the union of the brave
// consequences of its members.
func (a *Analyzer) Components(ctx context.Context, route []string) ([]Class, error) {
	fps, err := a.footprints(ctx, route)
	if err != nil {
		return nil, err
	}
	return group(fps, byCautious, nil), nil
}

// RelatedComponents groups both orientations of every facet by their
// brave consequences. The content of a class is the union of the
// cautious consequences of its members.
func (a *Analyzer) RelatedComponents(ctx context.Context, route []string) ([]Class, error) {
	fps, err := a.footprints(ctx, route)
	if err != nil {
		return nil, err
	}
	return group(fps, byBrave, nil), nil
}

// Interiors groups the inclusive orientations like Components does.
func (a *Analyzer) Interiors(ctx context.Context, route []string) ([]Class, error) {
	fps, err := a.footprints(ctx, route)
	if err != nil {
		return nil, err
	}
	return group(fps, byCautious, func(f footprint) bool { return f.inclusive }), nil
}

// Exteriors groups the exclusive orientations like Components does.
func (a *Analyzer) Exteriors(ctx context.Context, route []string) ([]Class, error) {
	fps, err := a.footprints(ctx, route)
	if err != nil {
		return nil, err
	}
	return group(fps, byCautious, func(f footprint) bool { return !f.inclusive }), nil
}

func byCautious(f footprint) (key, payload []solver.Atom) {
	return f.cautious, f.brave
}

func byBrave(f footprint) (key, payload []solver.Atom) {
	return f.brave, f.cautious
}

// group partitions footprints in order of first appearance of their key.
func group(fps []footprint, split func(footprint) ([]solver.Atom, []solver.Atom), keep func(footprint) bool) []Class {
	var classes []Class
	index := make(map[string]int)
	contents := make(map[string]map[solver.Atom]struct{})
	for _, f := range fps {
		if keep != nil && !keep(f) {
			continue
		}
		key, payload := split(f)
		k := keyOf(key)
		i, ok := index[k]
		if !ok {
			i = len(classes)
			index[k] = i
			classes = append(classes, Class{Key: key})
			contents[k] = make(map[solver.Atom]struct{})
		}
		classes[i].Members = append(classes[i].Members, f.token)
		for _, p := range payload {
			contents[k][p] = struct{}{}
		}
	}
	for k, i := range index {
		content := make([]solver.Atom, 0, len(contents[k]))
		for p := range contents[k] {
			content = append(content, p)
		}
		sort.Slice(content, func(x, y int) bool {
			return content[x].String() < content[y].String()
		})
		classes[i].Content = content
	}
	return classes
}

func keyOf(atoms []solver.Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// footprints computes the singleton consequences of both orientations
// of every facet under route. The inclusive orientation of a facet
// precedes its exclusive one.
func (a *Analyzer) footprints(ctx context.Context, route []string) ([]footprint, error) {
	start := time.Now()
	o, err := a.build(a.source)
	if err != nil {
		return nil, errors.Wrap(err, "building session")
	}
	base, err := solver.Literals(o, route)
	if err != nil {
		return nil, err
	}
	fs, err := solver.Facets(ctx, o, base)
	if err != nil {
		return nil, err
	}

	fps := make([]footprint, 0, 2*len(fs))
	for _, f := range fs {
		fps = append(fps,
			footprint{token: f.String(), inclusive: true},
			footprint{token: f.Exclusive()},
		)
	}

	jobs := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range fps {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	workers := a.workers
	if workers > len(fps) {
		workers = len(fps)
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			session, err := a.build(a.source)
			if err != nil {
				return errors.Wrap(err, "building worker session")
			}
			for i := range jobs {
				if err := a.query(ctx, session, base, &fps[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"facets":  len(fs),
		"workers": workers,
		"elapsed": time.Since(start),
	}).Debug("computed footprints")
	return fps, nil
}

func (a *Analyzer) query(ctx context.Context, o solver.Oracle, base []solver.Literal, f *footprint) error {
	l, err := o.Literal(f.token)
	if err != nil {
		return err
	}
	lits := append(append([]solver.Literal(nil), base...), l)
	if f.brave, err = o.Consequences(ctx, solver.Brave, lits); err != nil {
		return errors.Wrapf(err, "brave consequences of %s", f.token)
	}
	if f.cautious, err = o.Consequences(ctx, solver.Cautious, lits); err != nil {
		return errors.Wrapf(err, "cautious consequences of %s", f.token)
	}
	return nil
}
