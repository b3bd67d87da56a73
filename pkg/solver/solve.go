package solver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Incomplete is returned when the search is interrupted before an
// answer could be determined.
var Incomplete = errors.New("cancelled before a solution could be found")

// NotSatisfiable is returned when a program has no answer set under
// the listed assumptions.
type NotSatisfiable []string

func (e NotSatisfiable) Error() string {
	const msg = "program not satisfiable"
	if len(e) == 0 {
		return msg
	}
	return fmt.Sprintf("%s under %s", msg, strings.Join(e, ", "))
}

// ParseError reports a facet token or program text that could not be
// resolved.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Token, e.Reason)
}

// UnsupportedProgram is returned for programs outside of the class
// the oracle can decide.
type UnsupportedProgram struct {
	Rule   string
	Reason string
}

func (e *UnsupportedProgram) Error() string {
	return fmt.Sprintf("unsupported rule %q: %s", e.Rule, e.Reason)
}

// OracleError wraps a failure of the underlying solver while
// answering a query.
type OracleError struct {
	Op  string
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Cause() error {
	return e.Err
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// EnumMode selects which consequences are computed.
type EnumMode int

const (
	Brave EnumMode = iota
	Cautious
)

func (m EnumMode) String() string {
	switch m {
	case Brave:
		return "brave"
	case Cautious:
		return "cautious"
	}
	return fmt.Sprintf("EnumMode(%d)", int(m))
}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o solverfakes/fake_oracle.go . Oracle

// Oracle answers queries about the answer sets of one program under
// sets of assumptions. An Oracle is not safe for concurrent use.
type Oracle interface {
	// Satisfiable reports whether an answer set exists.
	Satisfiable(ctx context.Context, assumptions []Literal) (bool, error)
	// Consequences returns the shown atoms true in some (Brave) or
	// all (Cautious) answer sets. It returns an empty set when the
	// assumptions are unsatisfiable.
	Consequences(ctx context.Context, mode EnumMode, assumptions []Literal) ([]Atom, error)
	// Solve starts a pull-based enumeration of answer sets.
	Solve(ctx context.Context, assumptions []Literal) (Models, error)
	// Count returns the number of answer sets.
	Count(ctx context.Context, assumptions []Literal) (int, error)
	// Literal resolves a facet token, optionally "~"-prefixed.
	Literal(token string) (Literal, error)
	// LiteralOf returns the positive literal of a program atom.
	LiteralOf(a Atom) (Literal, bool)
	// Atoms returns the shown atoms of the program in program order.
	Atoms() []Atom
	// Program returns the parsed program.
	Program() *Program
}

// Models is a cooperative enumeration of answer sets. Callers stop
// early by not calling Next again; Close releases the handle.
type Models interface {
	Next(ctx context.Context) bool
	Model() Model
	Err() error
	Close() error
}

// Builder constructs an Oracle session from program text.
type Builder func(source string) (Oracle, error)

// NewBuilder returns a Builder creating sessions with the given
// options.
func NewBuilder(options ...Option) Builder {
	return func(source string) (Oracle, error) {
		return New(source, options...)
	}
}

type session struct {
	program *Program
	d       *litMapping
	g       *gini.Gini
	tracer  Tracer
	logger  logrus.FieldLogger
	shown   []Atom
	buffer  []z.Lit
}

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// New parses ground program text and returns an Oracle session for
// it. An unsatisfiable program is not an error at this point.
func New(source string, options ...Option) (Oracle, error) {
	p, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return NewFromProgram(p, options...)
}

// NewFromProgram returns an Oracle session for a parsed program.
func NewFromProgram(p *Program, options ...Option) (Oracle, error) {
	s := session{program: p}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}

	d, err := newLitMapping(p)
	if err != nil {
		return nil, err
	}
	s.d = d
	s.g = gini.NewV(d.c.Len())
	d.AddConstraints(s.g)
	for i, a := range d.atoms {
		if d.shown[i] {
			s.shown = append(s.shown, a)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"atoms": len(d.atoms),
		"shown": len(s.shown),
		"rules": len(p.Rules()),
		"tight": d.tight,
	}).Debug("compiled program")
	return &s, nil
}

type Option func(s *session) error

// WithTracer sets the tracer notified about rejected candidate models.
func WithTracer(t Tracer) Option {
	return func(s *session) error {
		s.tracer = t
		return nil
	}
}

// WithLogger sets the logger of the session.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *session) error {
		s.logger = logger
		return nil
	}
}

var defaults = []Option{
	func(s *session) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *session) error {
		if s.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			s.logger = l
		}
		return nil
	},
}

func (s *session) Program() *Program {
	return s.program
}

func (s *session) Atoms() []Atom {
	return s.shown
}

func (s *session) Literal(token string) (Literal, error) {
	a, inclusive, err := ParseToken(token)
	if err != nil {
		return LitNull, err
	}
	l, ok := s.d.LiteralOf(a)
	if !ok {
		return LitNull, &ParseError{Token: token, Reason: "unknown atom"}
	}
	if !inclusive {
		l = l.Negate()
	}
	return l, nil
}

func (s *session) LiteralOf(a Atom) (Literal, bool) {
	return s.d.LiteralOf(a)
}

func (s *session) lits(assumptions []Literal) ([]z.Lit, error) {
	ms := make([]z.Lit, len(assumptions))
	for i, l := range assumptions {
		if l == LitNull || l.Index() >= len(s.d.atoms) {
			return nil, &OracleError{Op: "assume", Err: errors.Errorf("unknown literal %d", l)}
		}
		ms[i] = s.d.LitOf(l)
	}
	return ms, nil
}

// search solves g under the assumptions until it finds an answer set
// or proves there is none. Candidate models that are not answer sets
// are excluded by their loop formulas, which are taught to g and to
// the session solver.
func (s *session) search(ctx context.Context, g *gini.Gini, assumptions []z.Lit) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, &OracleError{Op: "solve", Err: err}
		}
		s.d.AssumeConstraints(g)
		g.Assume(assumptions...)
		switch g.Solve() {
		case unsatisfiable:
			return false, nil
		case satisfiable:
			u := s.d.Unfounded(g)
			if len(u) == 0 {
				return true, nil
			}
			s.tracer.Trace(position{d: s.d, candidate: s.d.Model(g), unfounded: u})
			for _, clause := range s.d.LoopFormula(u) {
				addClause(g, clause)
				if g != s.g {
					addClause(s.g, clause)
				}
			}
		default:
			return false, &OracleError{Op: "solve", Err: Incomplete}
		}
	}
}

func addClause(g *gini.Gini, ms []z.Lit) {
	for _, m := range ms {
		g.Add(m)
	}
	g.Add(0)
}

func (s *session) Satisfiable(ctx context.Context, assumptions []Literal) (bool, error) {
	ms, err := s.lits(assumptions)
	if err != nil {
		return false, err
	}
	return s.search(ctx, s.g, ms)
}

func (s *session) Solve(ctx context.Context, assumptions []Literal) (Models, error) {
	ms, err := s.lits(assumptions)
	if err != nil {
		return nil, err
	}
	return &models{s: s, g: s.g.Copy(), assumptions: ms}, nil
}

func (s *session) Count(ctx context.Context, assumptions []Literal) (int, error) {
	it, err := s.Solve(ctx, assumptions)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	n := 0
	for it.Next(ctx) {
		n++
	}
	return n, it.Err()
}

// models enumerates answer sets on a private copy of the session
// solver, blocking each answer set once it has been reported.
type models struct {
	s           *session
	g           *gini.Gini
	assumptions []z.Lit
	model       Model
	block       []z.Lit
	err         error
	done        bool
}

func (it *models) Next(ctx context.Context) bool {
	if it.done {
		return false
	}
	ok, err := it.s.search(ctx, it.g, it.assumptions)
	if err != nil || !ok {
		it.err = err
		it.done = true
		it.model = nil
		return false
	}
	it.model = it.s.d.Model(it.g)
	if len(it.s.d.lits) == 0 {
		it.done = true
		return true
	}
	it.block = it.s.d.Block(it.g, it.block)
	addClause(it.g, it.block)
	return true
}

func (it *models) Model() Model {
	return it.model
}

func (it *models) Err() error {
	return it.err
}

func (it *models) Close() error {
	it.done = true
	it.g = nil
	return nil
}

// FindOne returns the first answer set under the assumptions, if
// there is one.
func FindOne(ctx context.Context, o Oracle, assumptions []Literal) (Model, bool, error) {
	it, err := o.Solve(ctx, assumptions)
	if err != nil {
		return nil, false, err
	}
	defer it.Close()
	if !it.Next(ctx) {
		return nil, false, it.Err()
	}
	return it.Model(), true, nil
}

// Literals resolves facet tokens. It fails on the first token that
// does not resolve.
func Literals(o Oracle, tokens []string) ([]Literal, error) {
	lits := make([]Literal, 0, len(tokens))
	for _, t := range tokens {
		l, err := o.Literal(t)
		if err != nil {
			return nil, err
		}
		lits = append(lits, l)
	}
	return lits, nil
}

// Facets returns the brave consequences under the assumptions that are
// not cautious consequences, in program order.
func Facets(ctx context.Context, o Oracle, assumptions []Literal) ([]Atom, error) {
	brave, err := o.Consequences(ctx, Brave, assumptions)
	if err != nil {
		return nil, err
	}
	cautious, err := o.Consequences(ctx, Cautious, assumptions)
	if err != nil {
		return nil, err
	}
	return Difference(brave, cautious), nil
}

// Difference returns the atoms of as that are not in bs, keeping the
// order of as. An empty bs returns as itself.
func Difference(as, bs []Atom) []Atom {
	if len(bs) == 0 {
		return as
	}
	skip := make(map[Atom]struct{}, len(bs))
	for _, b := range bs {
		skip[b] = struct{}{}
	}
	out := make([]Atom, 0, len(as))
	for _, a := range as {
		if _, ok := skip[a]; !ok {
			out = append(out, a)
		}
	}
	return out
}
