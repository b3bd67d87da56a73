package solver

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/pkg/errors"
)

const eofToken = scanner.EOF

// Program is a parsed ground logic program.
type Program struct {
	source  string
	rules   []Rule
	show    []Signature
	hasShow bool
}

// Parse reads ground program text. Variables are rejected, so the
// text must already be grounded.
func Parse(source string) (*Program, error) {
	p := newParser("program", source)
	prog := &Program{source: source}
	for !p.at(eofToken) {
		if err := p.statement(prog); err != nil {
			return nil, errors.Wrap(err, "parsing program")
		}
	}
	return prog, nil
}

// NewProgram builds a program from rules. If no signature is given,
// every atom is shown.
func NewProgram(rules []Rule, show ...Signature) *Program {
	prog := &Program{rules: rules, show: show, hasShow: len(show) > 0}
	prog.source = prog.String()
	return prog
}

// Source returns the program text the program was parsed from.
func (p *Program) Source() string {
	return p.source
}

// Rules returns the rules in program order.
func (p *Program) Rules() []Rule {
	return p.rules
}

// Shown reports whether a is visible in models and consequences.
func (p *Program) Shown(a Atom) bool {
	if !p.hasShow {
		return true
	}
	for _, s := range p.show {
		if s == a.Signature() {
			return true
		}
	}
	return false
}

// With returns a new program consisting of p's text followed by the
// given rules.
func (p *Program) With(rules ...Rule) *Program {
	var b strings.Builder
	b.WriteString(p.source)
	for _, r := range rules {
		b.WriteString("\n")
		b.WriteString(r.String())
	}
	return &Program{
		source:  b.String(),
		rules:   append(append([]Rule(nil), p.rules...), rules...),
		show:    p.show,
		hasShow: p.hasShow,
	}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, r := range p.rules {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	for _, s := range p.show {
		fmt.Fprintf(&b, "#show %s.\n", s)
	}
	return b.String()
}

type parser struct {
	s    scanner.Scanner
	tok  rune
	text string
	err  error
}

func newParser(name, src string) *parser {
	p := &parser{}
	p.s.Init(strings.NewReader(src))
	p.s.Filename = name
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("%s: %s", s.Position, msg)
		}
	}
	p.next()
	return p
}

func (p *parser) next() {
	for {
		p.tok = p.s.Scan()
		if p.tok != '%' {
			break
		}
		for ch := p.s.Peek(); ch != '\n' && ch != scanner.EOF; ch = p.s.Peek() {
			p.s.Next()
		}
	}
	p.text = p.s.TokenText()
}

func (p *parser) at(tok rune) bool {
	return p.tok == tok
}

func (p *parser) errorf(format string, args ...interface{}) error {
	if p.err != nil {
		return p.err
	}
	return fmt.Errorf("%s: %s", p.s.Position, fmt.Sprintf(format, args...))
}

func (p *parser) expect(tok rune) error {
	if p.tok != tok {
		return p.errorf("expected %s, found %q", scanner.TokenString(tok), p.text)
	}
	p.next()
	return nil
}

func (p *parser) integer() (int, error) {
	neg := false
	if p.at('-') {
		neg = true
		p.next()
	}
	if !p.at(scanner.Int) {
		return 0, p.errorf("expected integer, found %q", p.text)
	}
	var n int
	if _, err := fmt.Sscan(p.text, &n); err != nil {
		return 0, p.errorf("invalid integer %q", p.text)
	}
	p.next()
	if neg {
		n = -n
	}
	return n, nil
}

func (p *parser) statement(prog *Program) error {
	if p.at('#') {
		return p.directive(prog)
	}

	var (
		head     []Atom
		isChoice bool
		err      error
	)
	lower, upper := 0, -1
	switch {
	case p.at(':'):
	case p.at('{') || p.at(scanner.Int):
		isChoice = true
		head, lower, upper, err = p.choiceHead()
	default:
		head, err = p.disjunction()
	}
	if err != nil {
		return err
	}

	var pos, neg []Atom
	if p.at(':') {
		p.next()
		if err := p.expect('-'); err != nil {
			return err
		}
		if !p.at('.') {
			if pos, neg, err = p.body(); err != nil {
				return err
			}
		}
	}
	if err := p.expect('.'); err != nil {
		return err
	}

	switch {
	case isChoice:
		prog.rules = append(prog.rules, Choice(head, lower, upper, pos, neg))
	case len(head) == 0:
		prog.rules = append(prog.rules, Integrity(pos, neg))
	default:
		prog.rules = append(prog.rules, Disjunction(head, pos, neg))
	}
	return nil
}

func (p *parser) directive(prog *Program) error {
	p.next()
	if !p.at(scanner.Ident) || p.text != "show" {
		return p.errorf("unsupported directive #%s", p.text)
	}
	p.next()
	prog.hasShow = true
	if p.at('.') {
		p.next()
		return nil
	}
	if !p.at(scanner.Ident) {
		return p.errorf("expected predicate name, found %q", p.text)
	}
	name := p.text
	p.next()
	if err := p.expect('/'); err != nil {
		return err
	}
	arity, err := p.integer()
	if err != nil {
		return err
	}
	prog.show = append(prog.show, Signature{Name: name, Arity: arity})
	return p.expect('.')
}

func (p *parser) choiceHead() ([]Atom, int, int, error) {
	lower, upper := 0, -1
	if p.at(scanner.Int) {
		n, err := p.integer()
		if err != nil {
			return nil, 0, 0, err
		}
		lower = n
	}
	if err := p.expect('{'); err != nil {
		return nil, 0, 0, err
	}
	var head []Atom
	for !p.at('}') {
		a, err := p.atom()
		if err != nil {
			return nil, 0, 0, err
		}
		head = append(head, a)
		if p.at(';') {
			p.next()
			continue
		}
		if !p.at('}') {
			return nil, 0, 0, p.errorf("expected ; or }, found %q", p.text)
		}
	}
	p.next()

	switch {
	case p.at('='):
		p.next()
		if p.at('=') {
			p.next()
		}
		n, err := p.integer()
		if err != nil {
			return nil, 0, 0, err
		}
		lower, upper = n, n
	case p.at(scanner.Int):
		n, err := p.integer()
		if err != nil {
			return nil, 0, 0, err
		}
		upper = n
	}
	return head, lower, upper, nil
}

func (p *parser) disjunction() ([]Atom, error) {
	var head []Atom
	for {
		a, err := p.atom()
		if err != nil {
			return nil, err
		}
		head = append(head, a)
		if p.at(';') || p.at('|') {
			p.next()
			continue
		}
		return head, nil
	}
}

func (p *parser) body() (pos, neg []Atom, err error) {
	for {
		negated := false
		if p.at(scanner.Ident) && p.text == "not" {
			negated = true
			p.next()
		}
		a, err := p.atom()
		if err != nil {
			return nil, nil, err
		}
		if negated {
			neg = append(neg, a)
		} else {
			pos = append(pos, a)
		}
		if !p.at(',') {
			return pos, neg, nil
		}
		p.next()
	}
}

func (p *parser) atom() (Atom, error) {
	if !p.at(scanner.Ident) {
		return Atom{}, p.errorf("expected atom, found %q", p.text)
	}
	name := p.text
	if r := []rune(name)[0]; unicode.IsUpper(r) || r == '_' {
		return Atom{}, p.errorf("variable %s in ground program", name)
	}
	p.next()
	args, err := p.arguments()
	if err != nil {
		return Atom{}, err
	}
	return newAtom(name, args), nil
}

func (p *parser) arguments() ([]string, error) {
	if !p.at('(') {
		return nil, nil
	}
	p.next()
	var args []string
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.at(',') {
			p.next()
			continue
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) term() (string, error) {
	switch {
	case p.at('-') || p.at(scanner.Int):
		n, err := p.integer()
		if err != nil {
			return "", err
		}
		return fmt.Sprint(n), nil
	case p.at(scanner.String):
		s := p.text
		p.next()
		return s, nil
	case p.at(scanner.Ident):
		a, err := p.atom()
		if err != nil {
			return "", err
		}
		return a.String(), nil
	}
	return "", p.errorf("expected term, found %q", p.text)
}

func newAtom(name string, args []string) Atom {
	repr := name
	if len(args) > 0 {
		repr = fmt.Sprintf("%s(%s)", name, strings.Join(args, ","))
	}
	return Atom{predicate: name, arity: len(args), repr: repr}
}

// NewAtom constructs an atom from a predicate name and canonical
// argument terms.
func NewAtom(name string, args ...interface{}) Atom {
	s := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case Atom:
			s[i] = v.String()
		case string:
			s[i] = v
		default:
			s[i] = fmt.Sprint(v)
		}
	}
	return newAtom(name, s)
}
