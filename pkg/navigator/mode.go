package navigator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/operator-framework/fasb/pkg/cache"
)

// Mode decides which facet orientations to suggest next.
type Mode interface {
	fmt.Stringer
	Weight() Weight
	// Filter returns the orientations of the current facets the mode
	// suggests. A nil result means the mode does not rank facets.
	Filter(ctx context.Context, n *Navigator) ([]string, error)
}

type ModeKind string

const (
	GoalOrientedMode         ModeKind = "goal-oriented"
	StrictlyGoalOrientedMode ModeKind = "strictly-goal-oriented"
	ExploreMode              ModeKind = "explore"
)

// ParseModeKind accepts the long and short names of a mode.
func ParseModeKind(s string) (ModeKind, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "--") {
	case "", "go", "goal-oriented":
		return GoalOrientedMode, nil
	case "sgo", "strictly-goal-oriented":
		return StrictlyGoalOrientedMode, nil
	case "expl", "explore":
		return ExploreMode, nil
	}
	return "", fmt.Errorf("unknown navigation mode %q", s)
}

// NewMode combines a mode kind with a weight.
func NewMode(k ModeKind, w Weight) Mode {
	switch k {
	case StrictlyGoalOrientedMode:
		return StrictlyGoalOriented{W: w}
	case ExploreMode:
		return Explore{W: w}
	}
	return GoalOriented{W: w}
}

// GoalOriented leaves the choice among all current facets to the
// caller.
type GoalOriented struct {
	W Weight
}

func (m GoalOriented) String() string {
	return fmt.Sprintf("%s (%s)", GoalOrientedMode, m.W)
}

func (m GoalOriented) Weight() Weight {
	return m.W
}

func (m GoalOriented) Filter(_ context.Context, n *Navigator) ([]string, error) {
	n.observer.Filtered(FilterEvent{
		Mode:   m.String(),
		Route:  n.Route(),
		Kept:   2 * len(n.current),
		Total:  2 * len(n.current),
		Cached: true,
	})
	return nil, nil
}

// StrictlyGoalOriented suggests the orientations of maximal weight.
type StrictlyGoalOriented struct {
	W Weight
}

func (m StrictlyGoalOriented) String() string {
	return fmt.Sprintf("%s (%s)", StrictlyGoalOrientedMode, m.W)
}

func (m StrictlyGoalOriented) Weight() Weight {
	return m.W
}

func (m StrictlyGoalOriented) Filter(ctx context.Context, n *Navigator) ([]string, error) {
	return rank(ctx, n, m, true)
}

// Explore suggests the orientations of minimal weight.
type Explore struct {
	W Weight
}

func (m Explore) String() string {
	return fmt.Sprintf("%s (%s)", ExploreMode, m.W)
}

func (m Explore) Weight() Weight {
	return m.W
}

func (m Explore) Filter(ctx context.Context, n *Navigator) ([]string, error) {
	return rank(ctx, n, m, false)
}

// rank returns every orientation whose weight is extremal, in facet
// order with the inclusive orientation first. Rankings are cached per
// route.
func rank(ctx context.Context, n *Navigator, m Mode, highest bool) ([]string, error) {
	start := time.Now()
	w := m.Weight()
	table := w.table(highest)
	key := cache.RouteKey(n.scope, n.route)
	total := 2 * len(n.current)

	if fs, ok := n.cache.Ranking(table, key); ok {
		n.observer.Filtered(FilterEvent{Mode: m.String(), Route: n.Route(), Kept: len(fs), Total: total, Cached: true})
		return append([]string{}, fs...), nil
	}

	ws, err := w.Weights(ctx, n)
	if err != nil {
		return nil, errors.Wrapf(err, "ranking facets for %s", m)
	}
	fs := []string{}
	if len(ws) > 0 {
		best := ws[0].Weight
		for _, v := range ws[1:] {
			if (highest && v.Weight > best) || (!highest && v.Weight < best) {
				best = v.Weight
			}
		}
		for _, v := range ws {
			if v.Weight == best {
				fs = append(fs, v.Token)
			}
		}
	}

	if err := n.cache.PutRanking(table, key, fs); err != nil {
		return nil, err
	}
	n.observer.Filtered(FilterEvent{Mode: m.String(), Route: n.Route(), Kept: len(fs), Total: total, Elapsed: time.Since(start)})
	return fs, nil
}
