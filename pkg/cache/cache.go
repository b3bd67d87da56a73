package cache

import (
	"fmt"
	"io"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/fasb/pkg/metrics"
	"github.com/operator-framework/fasb/pkg/solver"
)

// DefaultSize bounds every table of a Cache created without WithSize.
const DefaultSize = 1000

// Table selects one of the ranking tables.
type Table int

const (
	MaxAbsolute Table = iota
	MinAbsolute
	MaxFacetCounting
	MinFacetCounting
)

var tableNames = [...]string{
	MaxAbsolute:      "max-absolute",
	MinAbsolute:      "min-absolute",
	MaxFacetCounting: "max-facet-counting",
	MinFacetCounting: "min-facet-counting",
}

func (t Table) String() string {
	if t < 0 || int(t) >= len(tableNames) {
		return fmt.Sprintf("Table(%d)", int(t))
	}
	return tableNames[t]
}

const (
	facetsTable   = "facets"
	countsTable   = "counts"
	cautiousTable = "cautious"
)

// Key identifies an entry. Keys are hashes of a scope, which tells
// programs apart, and an ordered route or literal signature.
type Key uint64

type routeKey struct {
	Scope  uint64
	Tokens []string
}

type literalKey struct {
	Scope    uint64
	Literals []int32
}

func hash(v interface{}) Key {
	h, err := hashstructure.Hash(v, nil)
	if err != nil {
		// hashstructure only fails on kinds these keys do not contain.
		panic(err)
	}
	return Key(h)
}

// Scope returns the scope of a program given its source text.
func Scope(source string) uint64 {
	return uint64(hash(source))
}

// RouteKey returns the key of a route. Token order matters and token
// boundaries are preserved.
func RouteKey(scope uint64, tokens []string) Key {
	return hash(routeKey{Scope: scope, Tokens: tokens})
}

// LiteralKey returns the key of an ordered assumption signature.
func LiteralKey(scope uint64, lits []solver.Literal) Key {
	ls := make([]int32, len(lits))
	for i, l := range lits {
		ls[i] = int32(l)
	}
	return hash(literalKey{Scope: scope, Literals: ls})
}

// DuplicateEntry is returned when a ranking is stored twice under the
// same key.
type DuplicateEntry struct {
	Table Table
	Key   Key
}

func (e DuplicateEntry) Error() string {
	return fmt.Sprintf("%s already holds an entry for key %x", e.Table, uint64(e.Key))
}

// Cache memoizes rankings, facet sets, model counts and cautious
// consequences. It is safe for concurrent use; every access holds the
// lock only for the duration of one read or write.
type Cache struct {
	logger   logrus.FieldLogger
	size     int
	rankings [len(tableNames)]*lru.Cache[Key, []string]
	facets   *lru.Cache[Key, []solver.Atom]
	counts   *lru.Cache[Key, int]
	cautious *lru.Cache[Key, []solver.Atom]
	m        sync.Mutex
}

type Option func(*Cache)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithSize sets the capacity of each table.
func WithSize(size int) Option {
	return func(c *Cache) {
		c.size = size
	}
}

func New(options ...Option) (*Cache, error) {
	c := Cache{
		logger: func() logrus.FieldLogger {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			return logger
		}(),
		size: DefaultSize,
	}
	for _, opt := range options {
		opt(&c)
	}

	var err error
	for i := range c.rankings {
		if c.rankings[i], err = lru.New[Key, []string](c.size); err != nil {
			return nil, err
		}
	}
	if c.facets, err = lru.New[Key, []solver.Atom](c.size); err != nil {
		return nil, err
	}
	if c.counts, err = lru.New[Key, int](c.size); err != nil {
		return nil, err
	}
	if c.cautious, err = lru.New[Key, []solver.Atom](c.size); err != nil {
		return nil, err
	}
	return &c, nil
}

// Ranking returns the ranked facet tokens stored for key.
func (c *Cache) Ranking(t Table, key Key) ([]string, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	v, ok := c.rankings[t].Get(key)
	metrics.CacheLookup(t.String(), ok)
	return v, ok
}

// PutRanking stores a ranking. Rankings are written once per key; a
// second write under a key still present is a DuplicateEntry.
func (c *Cache) PutRanking(t Table, key Key, tokens []string) error {
	c.m.Lock()
	defer c.m.Unlock()
	if c.rankings[t].Contains(key) {
		return DuplicateEntry{Table: t, Key: key}
	}
	if c.rankings[t].Add(key, tokens) {
		c.logger.WithField("table", t.String()).Debug("evicted ranking")
	}
	return nil
}

func (c *Cache) Facets(key Key) ([]solver.Atom, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	v, ok := c.facets.Get(key)
	metrics.CacheLookup(facetsTable, ok)
	return v, ok
}

func (c *Cache) PutFacets(key Key, facets []solver.Atom) {
	c.m.Lock()
	defer c.m.Unlock()
	c.facets.Add(key, facets)
}

func (c *Cache) Count(key Key) (int, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	v, ok := c.counts.Get(key)
	metrics.CacheLookup(countsTable, ok)
	return v, ok
}

func (c *Cache) PutCount(key Key, n int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.counts.Add(key, n)
}

// Cautious returns memoized cautious consequences.
func (c *Cache) Cautious(key Key) ([]solver.Atom, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	v, ok := c.cautious.Get(key)
	metrics.CacheLookup(cautiousTable, ok)
	return v, ok
}

func (c *Cache) PutCautious(key Key, atoms []solver.Atom) {
	c.m.Lock()
	defer c.m.Unlock()
	c.cautious.Add(key, atoms)
}

// Len returns the number of entries held by a ranking table.
func (c *Cache) Len(t Table) int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.rankings[t].Len()
}

// Purge empties every table.
func (c *Cache) Purge() {
	c.m.Lock()
	defer c.m.Unlock()
	for _, r := range c.rankings {
		r.Purge()
	}
	c.facets.Purge()
	c.counts.Purge()
	c.cautious.Purge()
}
