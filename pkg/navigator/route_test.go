package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/fasb/pkg/solver"
)

func TestParseRoute(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  Route
	}{
		{name: "empty", input: "", want: nil},
		{name: "brackets only", input: "< >", want: nil},
		{name: "plain", input: "a ~b c", want: Route{"a", "~b", "c"}},
		{name: "displayed", input: "< a ~b >", want: Route{"a", "~b"}},
		{name: "extra whitespace", input: "  <a\t~b>  ", want: Route{"a", "~b"}},
		{name: "atoms with arguments", input: "< q(1,2) ~q(2,1) >", want: Route{"q(1,2)", "~q(2,1)"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRoute(tc.input))
		})
	}
}

func TestRouteString(t *testing.T) {
	assert.Equal(t, "< >", Route(nil).String())
	assert.Equal(t, "< a ~b >", Route{"a", "~b"}.String())
	assert.Equal(t, Route{"a", "~b"}, ParseRoute(Route{"a", "~b"}.String()))
}

func TestRouteDeactivateAny(t *testing.T) {
	for _, tc := range []struct {
		name      string
		route     Route
		token     string
		want      Route
		positions []int
	}{
		{name: "absent", route: Route{"a", "b"}, token: "c", want: Route{"a", "b"}},
		{name: "single", route: Route{"a", "b"}, token: "a", want: Route{"b"}, positions: []int{0}},
		{name: "repeated", route: Route{"a", "b", "a", "c", "a"}, token: "a", want: Route{"b", "c"}, positions: []int{0, 1, 2}},
		{name: "orientation matters", route: Route{"a", "~a"}, token: "~a", want: Route{"a"}, positions: []int{1}},
		{name: "all", route: Route{"b", "b"}, token: "b", want: Route{}, positions: []int{0, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := append(Route(nil), tc.route...)
			assert.Equal(t, tc.positions, r.DeactivateAny(tc.token))
			assert.Equal(t, tc.want, r)
		})
	}
}

func TestRoutePeek(t *testing.T) {
	r := Route{"a"}
	peek := r.PeekSteps("b", "~c")
	assert.Equal(t, Route{"a", "b", "~c"}, peek)
	assert.Equal(t, Route{"a"}, r)

	peek[0] = "z"
	assert.Equal(t, Route{"a"}, r)
	assert.True(t, peek.Contains("~c"))
	assert.False(t, peek.Contains("c"))
	assert.Equal(t, Route{"a", "d"}, r.PeekStep("d"))
}

func TestInverse(t *testing.T) {
	assert.Equal(t, "~a", Inverse("a"))
	assert.Equal(t, "a", Inverse("~a"))
	assert.Equal(t, "set(1,2)", Inverse(Inverse("set(1,2)")))
}

func TestNewFacets(t *testing.T) {
	a, b, c := solver.NewAtom("a"), solver.NewAtom("b"), solver.NewAtom("c", 1)

	fs := NewFacets([]solver.Atom{a, b, c}, []solver.Atom{b})
	assert.Equal(t, Facets{a, c}, fs)
	assert.Equal(t, []string{"a", "c(1)"}, fs.Tokens())
	assert.Equal(t, []string{"a", "~a", "c(1)", "~c(1)"}, fs.Orientations())
	assert.Equal(t, "a ~a c(1) ~c(1)", fs.String())

	assert.True(t, fs.Contains("~c(1)"))
	assert.True(t, fs.Contains(" a"))
	assert.False(t, fs.Contains("b"))
	assert.False(t, fs.Contains("c(1"))

	require.Equal(t, Facets{a, b}, NewFacets([]solver.Atom{a, b}, nil))
	assert.Empty(t, NewFacets(nil, nil))
}
