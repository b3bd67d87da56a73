package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	type tc struct {
		Name     string
		Source   string
		Expected []string
		Error    bool
	}

	for _, tt := range []tc{
		{
			Name:     "disjunctions and facts",
			Source:   "a;b. c|d :- b. e.",
			Expected: []string{"a;b.", "c;d :- b.", "e."},
		},
		{
			Name:     "default negation",
			Source:   "a :- not b, c.",
			Expected: []string{"a :- c, not b."},
		},
		{
			Name:     "choice bounds",
			Source:   "{a;b} = 1. {a;b} == 1. 1 {a;b} 2 :- c. {a}.",
			Expected: []string{"{a;b} = 1.", "{a;b} = 1.", "1 {a;b} 2 :- c.", "{a}."},
		},
		{
			Name:     "integrity constraints",
			Source:   ":- a, not b. :- .",
			Expected: []string{":- a, not b.", ":- ."},
		},
		{
			Name:     "comments",
			Source:   "% a comment\na. % trailing\n",
			Expected: []string{"a."},
		},
		{
			Name:     "terms",
			Source:   "cell(1, -2, \"x y\", f(g, 3)).",
			Expected: []string{"cell(1,-2,\"x y\",f(g,3))."},
		},
		{
			Name:   "variables are rejected",
			Source: "a(X) :- b(X).",
			Error:  true,
		},
		{
			Name:   "missing period",
			Source: "a :- b",
			Error:  true,
		},
		{
			Name:   "unknown directive",
			Source: "#const n = 3.",
			Error:  true,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			p, err := Parse(tt.Source)
			if tt.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var rules []string
			for _, r := range p.Rules() {
				rules = append(rules, r.String())
			}
			assert.Equal(t, tt.Expected, rules)
		})
	}
}

func TestShow(t *testing.T) {
	type tc struct {
		Name   string
		Source string
		Atom   Atom
		Shown  bool
	}

	for _, tt := range []tc{
		{Name: "no directive", Source: "a.", Atom: NewAtom("a"), Shown: true},
		{Name: "hide all", Source: "a. #show.", Atom: NewAtom("a"), Shown: false},
		{Name: "signature", Source: "p(1). #show p/1.", Atom: NewAtom("p", 1), Shown: true},
		{Name: "other arity", Source: "p. p(1). #show p/1.", Atom: NewAtom("p"), Shown: false},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			p, err := Parse(tt.Source)
			require.NoError(t, err)
			assert.Equal(t, tt.Shown, p.Shown(tt.Atom))
		})
	}
}

func TestProgramWith(t *testing.T) {
	p, err := Parse("a;b;c.")
	require.NoError(t, err)

	denied := p.With(Denial([]Atom{NewAtom("a"), NewAtom("b")}))
	assert.Equal(t, "a;b;c.\n:- not a, not b.", denied.Source())
	assert.Len(t, p.Rules(), 1)
	assert.Len(t, denied.Rules(), 2)

	o, err := NewFromProgram(denied)
	require.NoError(t, err)
	brave, err := o.Consequences(context.Background(), Brave, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, reprs(brave))
}

func TestNewProgram(t *testing.T) {
	p := NewProgram([]Rule{
		Fact(NewAtom("cell", 1)),
		Choice([]Atom{NewAtom("set", 1, 1), NewAtom("set", 1, 2)}, 1, 1, []Atom{NewAtom("cell", 1)}, nil),
	}, Signature{Name: "set", Arity: 2})

	assert.Equal(t, "cell(1).\n{set(1,1);set(1,2)} = 1 :- cell(1).\n#show set/2.\n", p.Source())

	parsed, err := Parse(p.Source())
	require.NoError(t, err)
	assert.Equal(t, p.String(), parsed.String())
}
