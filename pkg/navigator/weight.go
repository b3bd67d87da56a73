package navigator

import (
	"context"
	"fmt"
	"strings"

	"github.com/operator-framework/fasb/pkg/cache"
)

// Weighted is the weight of activating a token.
type Weighted struct {
	Token  string
	Weight int
}

// Zoomed is the share of the remaining uncertainty that activating a
// token removes.
type Zoomed struct {
	Token string
	Zoom  float64
}

// Weight scores the activation of a facet orientation.
type Weight interface {
	fmt.Stringer
	// Eval returns the weight of activating token on the current route.
	Eval(ctx context.Context, n *Navigator, token string) (int, error)
	// Zoom returns the normalized weight of activating token.
	Zoom(ctx context.Context, n *Navigator, token string) (float64, error)
	// Weights evaluates both orientations of every current facet, each
	// inclusive token directly followed by its exclusive one.
	Weights(ctx context.Context, n *Navigator) ([]Weighted, error)
	// Zooms is like Weights for zooms.
	Zooms(ctx context.Context, n *Navigator) ([]Zoomed, error)
	// FindZoom returns the first orientation of a current facet whose
	// zoom is at least bound, or at most bound if higher is false.
	FindZoom(ctx context.Context, n *Navigator, bound float64, higher bool) (string, bool, error)

	table(highest bool) cache.Table
}

type WeightKind string

const (
	AbsoluteWeight      WeightKind = "absolute"
	FacetCountingWeight WeightKind = "facet-counting"
)

// ParseWeightKind accepts the long and short names of a weight.
func ParseWeightKind(s string) (WeightKind, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "--") {
	case "abs", "absolute":
		return AbsoluteWeight, nil
	case "", "fc", "facet-counting":
		return FacetCountingWeight, nil
	}
	return "", fmt.Errorf("unknown weight %q", s)
}

// NewWeight returns the weight of a kind, FacetCounting by default.
func NewWeight(k WeightKind) Weight {
	if k == AbsoluteWeight {
		return Absolute{}
	}
	return FacetCounting{}
}

// FacetCounting weighs a token by the number of facet orientations its
// activation resolves.
type FacetCounting struct{}

func (FacetCounting) String() string {
	return string(FacetCountingWeight)
}

func (FacetCounting) table(highest bool) cache.Table {
	if highest {
		return cache.MaxFacetCounting
	}
	return cache.MinFacetCounting
}

func (FacetCounting) Eval(ctx context.Context, n *Navigator, token string) (int, error) {
	fs, err := n.FacetsUnder(ctx, n.Literals(n.route.PeekStep(token)))
	if err != nil {
		return 0, err
	}
	return (len(n.current) - len(fs)) * 2, nil
}

func (FacetCounting) Zoom(ctx context.Context, n *Navigator, token string) (float64, error) {
	initial := len(n.initial) * 2
	if initial == 0 {
		return 0, nil
	}
	fs, err := n.FacetsUnder(ctx, n.Literals(n.route.PeekStep(token)))
	if err != nil {
		return 0, err
	}
	return float64(initial-len(fs)*2)/float64(initial) - n.pace, nil
}

func (w FacetCounting) Weights(ctx context.Context, n *Navigator) ([]Weighted, error) {
	ws := make([]Weighted, 0, 2*len(n.current))
	for i, t := range n.current.Orientations() {
		v, err := w.Eval(ctx, n, t)
		if err != nil {
			return nil, err
		}
		ws = append(ws, Weighted{Token: t, Weight: v})
		n.observer.Progress("weights", i+1, 2*len(n.current))
	}
	return ws, nil
}

func (w FacetCounting) Zooms(ctx context.Context, n *Navigator) ([]Zoomed, error) {
	zs := make([]Zoomed, 0, 2*len(n.current))
	for _, t := range n.current.Orientations() {
		z, err := w.Zoom(ctx, n, t)
		if err != nil {
			return nil, err
		}
		zs = append(zs, Zoomed{Token: t, Zoom: z})
	}
	return zs, nil
}

// FindZoom scans inclusive orientations before exclusive ones when
// looking for a higher zoom, and the other way round otherwise.
func (w FacetCounting) FindZoom(ctx context.Context, n *Navigator, bound float64, higher bool) (string, bool, error) {
	inclusive := n.current.Tokens()
	exclusive := make([]string, len(inclusive))
	for i, t := range inclusive {
		exclusive[i] = Inverse(t)
	}
	order := [][]string{inclusive, exclusive}
	if !higher {
		order = [][]string{exclusive, inclusive}
	}
	for _, ts := range order {
		for _, t := range ts {
			z, err := w.Zoom(ctx, n, t)
			if err != nil {
				return "", false, err
			}
			if within(z, bound, higher) {
				return t, true, nil
			}
		}
	}
	return "", false, nil
}

// Absolute weighs a token by the number of answer sets its activation
// excludes. Since answer sets split exactly between a facet and its
// negation, one count yields the weights of both orientations.
type Absolute struct{}

func (Absolute) String() string {
	return string(AbsoluteWeight)
}

func (Absolute) table(highest bool) cache.Table {
	if highest {
		return cache.MaxAbsolute
	}
	return cache.MinAbsolute
}

func (Absolute) pair(ctx context.Context, n *Navigator, token string) (int, int, error) {
	count, err := n.Count(ctx, n.route)
	if err != nil {
		return 0, 0, err
	}
	peek, err := n.Count(ctx, n.route.PeekStep(token))
	if err != nil {
		return 0, 0, err
	}
	weight := count - peek
	return weight, count - weight, nil
}

func (w Absolute) Eval(ctx context.Context, n *Navigator, token string) (int, error) {
	v, _, err := w.pair(ctx, n, token)
	return v, err
}

func (Absolute) zoomPair(ctx context.Context, n *Navigator, token string) (float64, float64, error) {
	initial, err := n.Count(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	count, err := n.Count(ctx, n.route)
	if err != nil {
		return 0, 0, err
	}
	peek, err := n.Count(ctx, n.route.PeekStep(token))
	if err != nil {
		return 0, 0, err
	}
	if initial == 0 {
		return 0, 0, nil
	}
	total := float64(initial)
	pace := float64(initial-count) / total
	return float64(initial-peek)/total - pace, float64(initial-(count-peek))/total - pace, nil
}

func (w Absolute) Zoom(ctx context.Context, n *Navigator, token string) (float64, error) {
	z, _, err := w.zoomPair(ctx, n, token)
	return z, err
}

func (w Absolute) Weights(ctx context.Context, n *Navigator) ([]Weighted, error) {
	ws := make([]Weighted, 0, 2*len(n.current))
	for i, f := range n.current {
		v, inv, err := w.pair(ctx, n, f.String())
		if err != nil {
			return nil, err
		}
		ws = append(ws, Weighted{Token: f.String(), Weight: v}, Weighted{Token: f.Exclusive(), Weight: inv})
		n.observer.Progress("weights", i+1, len(n.current))
	}
	return ws, nil
}

func (w Absolute) Zooms(ctx context.Context, n *Navigator) ([]Zoomed, error) {
	zs := make([]Zoomed, 0, 2*len(n.current))
	for _, f := range n.current {
		z, inv, err := w.zoomPair(ctx, n, f.String())
		if err != nil {
			return nil, err
		}
		zs = append(zs, Zoomed{Token: f.String(), Zoom: z}, Zoomed{Token: f.Exclusive(), Zoom: inv})
	}
	return zs, nil
}

func (w Absolute) FindZoom(ctx context.Context, n *Navigator, bound float64, higher bool) (string, bool, error) {
	for _, f := range n.current {
		z, inv, err := w.zoomPair(ctx, n, f.String())
		if err != nil {
			return "", false, err
		}
		if within(z, bound, higher) {
			return f.String(), true, nil
		}
		if within(inv, bound, higher) {
			return f.Exclusive(), true, nil
		}
	}
	return "", false, nil
}

func within(z, bound float64, higher bool) bool {
	if higher {
		return z >= bound
	}
	return z <= bound
}
