package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/fasb/pkg/solver"
)

func TestRouteKey(t *testing.T) {
	type tc struct {
		Name  string
		A, B  []string
		Equal bool
	}

	scope := Scope("a;b.")
	for _, tt := range []tc{
		{Name: "same route", A: []string{"a", "~b"}, B: []string{"a", "~b"}, Equal: true},
		{Name: "order matters", A: []string{"a", "~b"}, B: []string{"~b", "a"}, Equal: false},
		{Name: "token boundaries", A: []string{"ab", "c"}, B: []string{"a", "bc"}, Equal: false},
		{Name: "empty", A: nil, B: []string{}, Equal: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Equal, RouteKey(scope, tt.A) == RouteKey(scope, tt.B))
		})
	}

	assert.NotEqual(t, RouteKey(Scope("a."), []string{"a"}), RouteKey(Scope("b."), []string{"a"}))
}

func TestLiteralKey(t *testing.T) {
	scope := Scope("a;b.")
	assert.Equal(t, LiteralKey(scope, []solver.Literal{1, -2}), LiteralKey(scope, []solver.Literal{1, -2}))
	assert.NotEqual(t, LiteralKey(scope, []solver.Literal{1, -2}), LiteralKey(scope, []solver.Literal{1, 2}))
}

func TestRankingWrittenOnce(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := RouteKey(0, []string{"a"})
	_, ok := c.Ranking(MaxFacetCounting, key)
	assert.False(t, ok)

	require.NoError(t, c.PutRanking(MaxFacetCounting, key, []string{"b", "~c"}))
	got, ok := c.Ranking(MaxFacetCounting, key)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "~c"}, got)

	err = c.PutRanking(MaxFacetCounting, key, []string{"d"})
	var dup DuplicateEntry
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, MaxFacetCounting, dup.Table)

	// tables are independent
	require.NoError(t, c.PutRanking(MinFacetCounting, key, nil))
	assert.Equal(t, 1, c.Len(MinFacetCounting))
	assert.Equal(t, 0, c.Len(MaxAbsolute))
}

func TestEviction(t *testing.T) {
	c, err := New(WithSize(2))
	require.NoError(t, err)

	for _, r := range []string{"a", "b", "c"} {
		require.NoError(t, c.PutRanking(MinAbsolute, RouteKey(0, []string{r}), []string{r}))
	}
	assert.Equal(t, 2, c.Len(MinAbsolute))
	_, ok := c.Ranking(MinAbsolute, RouteKey(0, []string{"a"}))
	assert.False(t, ok)

	// an evicted key may be written again
	assert.NoError(t, c.PutRanking(MinAbsolute, RouteKey(0, []string{"a"}), []string{"a"}))
}

func TestMemos(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := LiteralKey(1, []solver.Literal{-1})
	c.PutFacets(key, []solver.Atom{solver.NewAtom("b")})
	fs, ok := c.Facets(key)
	require.True(t, ok)
	assert.Equal(t, "b", fs[0].String())

	c.PutCount(key, 2)
	n, ok := c.Count(key)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	c.PutCautious(key, nil)
	_, ok = c.Cautious(key)
	assert.True(t, ok)

	c.Purge()
	_, ok = c.Count(key)
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := LiteralKey(0, []solver.Literal{solver.Literal(i + 1)})
			c.PutCount(key, i)
			n, ok := c.Count(key)
			assert.True(t, ok)
			assert.Equal(t, i, n)
		}(i)
	}
	wg.Wait()
}
