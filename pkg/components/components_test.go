package components

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/fasb/pkg/solver"
)

const pi1 = "a;b. c;d :- b. e."

type class struct {
	Key     []string
	Members []string
	Content []string
}

func render(classes []Class) []class {
	strs := func(as []solver.Atom) []string {
		out := make([]string, len(as))
		for i, a := range as {
			out[i] = a.String()
		}
		sort.Strings(out)
		return out
	}
	if len(classes) == 0 {
		return nil
	}
	out := make([]class, len(classes))
	for i, c := range classes {
		out[i] = class{Key: strs(c.Key), Members: c.Members, Content: strs(c.Content)}
	}
	return out
}

func TestAnalyzer(t *testing.T) {
	type analysis func(*Analyzer, context.Context, []string) ([]Class, error)
	for _, tc := range []struct {
		name     string
		analysis analysis
		route    []string
		expected []class
	}{
		{
			name:     "components",
			analysis: (*Analyzer).Components,
			expected: []class{
				{Key: []string{"a", "e"}, Members: []string{"a", "~b"}, Content: []string{"a", "e"}},
				{Key: []string{"b", "e"}, Members: []string{"~a", "b"}, Content: []string{"b", "c", "d", "e"}},
				{Key: []string{"b", "c", "e"}, Members: []string{"c"}, Content: []string{"b", "c", "e"}},
				{Key: []string{"e"}, Members: []string{"~c", "~d"}, Content: []string{"a", "b", "c", "d", "e"}},
				{Key: []string{"b", "d", "e"}, Members: []string{"d"}, Content: []string{"b", "d", "e"}},
			},
		},
		{
			name:     "related components",
			analysis: (*Analyzer).RelatedComponents,
			expected: []class{
				{Key: []string{"a", "e"}, Members: []string{"a", "~b"}, Content: []string{"a", "e"}},
				{Key: []string{"b", "c", "d", "e"}, Members: []string{"~a", "b"}, Content: []string{"b", "e"}},
				{Key: []string{"b", "c", "e"}, Members: []string{"c"}, Content: []string{"b", "c", "e"}},
				{Key: []string{"a", "b", "d", "e"}, Members: []string{"~c"}, Content: []string{"e"}},
				{Key: []string{"b", "d", "e"}, Members: []string{"d"}, Content: []string{"b", "d", "e"}},
				{Key: []string{"a", "b", "c", "e"}, Members: []string{"~d"}, Content: []string{"e"}},
			},
		},
		{
			name:     "interiors",
			analysis: (*Analyzer).Interiors,
			expected: []class{
				{Key: []string{"a", "e"}, Members: []string{"a"}, Content: []string{"a", "e"}},
				{Key: []string{"b", "e"}, Members: []string{"b"}, Content: []string{"b", "c", "d", "e"}},
				{Key: []string{"b", "c", "e"}, Members: []string{"c"}, Content: []string{"b", "c", "e"}},
				{Key: []string{"b", "d", "e"}, Members: []string{"d"}, Content: []string{"b", "d", "e"}},
			},
		},
		{
			name:     "exteriors",
			analysis: (*Analyzer).Exteriors,
			expected: []class{
				{Key: []string{"b", "e"}, Members: []string{"~a"}, Content: []string{"b", "c", "d", "e"}},
				{Key: []string{"a", "e"}, Members: []string{"~b"}, Content: []string{"a", "e"}},
				{Key: []string{"e"}, Members: []string{"~c", "~d"}, Content: []string{"a", "b", "c", "d", "e"}},
			},
		},
		{
			name:     "components under route",
			analysis: (*Analyzer).Components,
			route:    []string{"b"},
			expected: []class{
				{Key: []string{"b", "c", "e"}, Members: []string{"c", "~d"}, Content: []string{"b", "c", "e"}},
				{Key: []string{"b", "d", "e"}, Members: []string{"~c", "d"}, Content: []string{"b", "d", "e"}},
			},
		},
		{
			name:     "no facets",
			analysis: (*Analyzer).Components,
			route:    []string{"a"},
		},
	} {
		for _, workers := range []int{1, 3, 0} {
			t.Run(tc.name, func(t *testing.T) {
				a, err := New(pi1, WithWorkers(workers))
				require.NoError(t, err)
				classes, err := tc.analysis(a, context.Background(), tc.route)
				require.NoError(t, err)
				if diff := cmp.Diff(tc.expected, render(classes)); diff != "" {
					t.Errorf("unexpected classes with %d workers (-want +got):\n%s", workers, diff)
				}
			})
		}
	}
}

func TestAnalyzerErrors(t *testing.T) {
	_, err := New(pi1, WithWorkers(-1))
	assert.Error(t, err)

	a, err := New(pi1)
	require.NoError(t, err)
	_, err = a.Components(context.Background(), []string{"zz"})
	var perr *solver.ParseError
	assert.ErrorAs(t, err, &perr)

	// the first build serves the facet query, later ones the workers
	boom := errors.New("boom")
	builds := 0
	failing := func(source string) (solver.Oracle, error) {
		builds++
		if builds > 1 {
			return nil, boom
		}
		return solver.New(source)
	}
	a, err = New(pi1, WithBuilder(failing), WithWorkers(1))
	require.NoError(t, err)
	_, err = a.Interiors(context.Background(), nil)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, err = New(pi1)
	require.NoError(t, err)
	_, err = a.Exteriors(ctx, nil)
	assert.Error(t, err)
}
