package sampler

import (
	"math"
	"sort"

	"github.com/operator-framework/fasb/pkg/solver"
)

// Collection accumulates distinct answer sets together with how often
// each target atom was observed true in them.
type Collection struct {
	target      []solver.Atom
	models      []solver.Model
	seen        map[string]struct{}
	frequency   map[solver.Atom]int
	missing     map[solver.Atom]struct{}
	unreachable []solver.Atom
	sizes       []int

	// sharePerCovered measures bin shares against the observed target
	// atoms instead of the whole target set.
	sharePerCovered bool
}

// NewCollection starts an empty collection for a target set. Duplicate
// target atoms are ignored.
func NewCollection(target []solver.Atom) *Collection {
	c := &Collection{
		seen:      make(map[string]struct{}),
		frequency: make(map[solver.Atom]int, len(target)),
		missing:   make(map[solver.Atom]struct{}, len(target)),
	}
	for _, a := range target {
		if _, ok := c.frequency[a]; ok {
			continue
		}
		c.target = append(c.target, a)
		c.frequency[a] = 0
		c.missing[a] = struct{}{}
	}
	return c
}

// Add records m unless an identical model was recorded before. It
// reports whether m was new.
func (c *Collection) Add(m solver.Model) bool {
	key := m.Key()
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	c.models = append(c.models, m)
	c.sizes = append(c.sizes, len(m))
	for _, a := range m {
		if _, ok := c.frequency[a]; ok {
			c.frequency[a]++
		}
		delete(c.missing, a)
	}
	return true
}

// Covers reports whether m would observe a target atom not observed
// yet.
func (c *Collection) Covers(m solver.Model) bool {
	for _, a := range m {
		if _, ok := c.missing[a]; ok {
			return true
		}
	}
	return false
}

// markUnreachable removes an atom that no answer set makes true from
// the missing set.
func (c *Collection) markUnreachable(a solver.Atom) {
	if _, ok := c.missing[a]; !ok {
		return
	}
	delete(c.missing, a)
	c.unreachable = append(c.unreachable, a)
}

func (c *Collection) Target() []solver.Atom {
	return c.target
}

func (c *Collection) Models() []solver.Model {
	return c.models
}

func (c *Collection) Len() int {
	return len(c.models)
}

// Sizes returns the number of atoms of every model, in collection
// order.
func (c *Collection) Sizes() []int {
	return c.sizes
}

// Frequency returns how many collected models contain a.
func (c *Collection) Frequency(a solver.Atom) int {
	return c.frequency[a]
}

// Missing returns the target atoms no collected model contains, in
// target order.
func (c *Collection) Missing() []solver.Atom {
	var ms []solver.Atom
	for _, a := range c.target {
		if _, ok := c.missing[a]; ok {
			ms = append(ms, a)
		}
	}
	return ms
}

func (c *Collection) Done() bool {
	return len(c.missing) == 0
}

// Unreachable returns the target atoms found to be false in every
// answer set.
func (c *Collection) Unreachable() []solver.Atom {
	return c.unreachable
}

// Covered returns the share of target atoms observed so far.
func (c *Collection) Covered() float64 {
	if len(c.target) == 0 {
		return 1
	}
	return float64(len(c.target)-len(c.missing)-len(c.unreachable)) / float64(len(c.target))
}

// Bin groups target atoms observed equally often.
type Bin struct {
	Frequency int
	Atoms     []solver.Atom
	// Share is the fraction of the target set in the bin, or of the
	// observed target atoms for the sieve heuristics.
	Share float64
}

// Diagnostics describe how evenly a collection observes its target.
type Diagnostics struct {
	Models     int
	Population int
	Entropy    float64
	// Diversity is 2 to the power of Entropy.
	Diversity float64
	// Representativeness is 1 - |T - Diversity| / |T|.
	Representativeness float64
	Bins               []Bin
	Sizes              []int
	Missing            []solver.Atom
}

func (c *Collection) Diagnostics() Diagnostics {
	d := Diagnostics{
		Models:  len(c.models),
		Sizes:   c.sizes,
		Missing: c.Missing(),
	}
	for _, a := range c.target {
		d.Population += c.frequency[a]
	}
	d.Entropy = entropy(c.target, c.frequency, d.Population)
	d.Diversity = math.Pow(2, d.Entropy)
	if t := float64(len(c.target)); t > 0 {
		d.Representativeness = 1 - math.Abs(t-d.Diversity)/t
	}

	bins := make(map[int]*Bin)
	for _, a := range c.target {
		f := c.frequency[a]
		b, ok := bins[f]
		if !ok {
			b = &Bin{Frequency: f}
			bins[f] = b
		}
		b.Atoms = append(b.Atoms, a)
	}
	base := len(c.target)
	if c.sharePerCovered {
		base = 0
		for _, a := range c.target {
			if c.frequency[a] > 0 {
				base++
			}
		}
	}
	for _, b := range bins {
		if base > 0 {
			b.Share = float64(len(b.Atoms)) / float64(base)
		}
		d.Bins = append(d.Bins, *b)
	}
	sort.Slice(d.Bins, func(i, j int) bool {
		return d.Bins[i].Frequency < d.Bins[j].Frequency
	})
	return d
}

// entropy is the Shannon entropy in bits of the observation
// distribution. Atoms never observed contribute nothing.
func entropy(target []solver.Atom, frequency map[solver.Atom]int, population int) float64 {
	if population == 0 {
		return 0
	}
	h := 0.0
	for _, a := range target {
		f := frequency[a]
		if f == 0 {
			continue
		}
		p := float64(f) / float64(population)
		h -= p * math.Log2(p)
	}
	return h
}
