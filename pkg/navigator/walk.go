package navigator

import (
	"context"

	"github.com/pkg/errors"
)

// FindZoomHigherThan returns the first orientation of a current facet
// whose zoom under w is at least bound.
func (n *Navigator) FindZoomHigherThan(ctx context.Context, w Weight, bound float64) (string, bool, error) {
	return w.FindZoom(ctx, n, bound, true)
}

// FindZoomLowerThan returns the first orientation of a current facet
// whose zoom under w is at most bound.
func (n *Navigator) FindZoomLowerThan(ctx context.Context, w Weight, bound float64) (string, bool, error) {
	return w.FindZoom(ctx, n, bound, false)
}

// ActivateZoomHigherThan activates the result of FindZoomHigherThan,
// if there is one.
func (n *Navigator) ActivateZoomHigherThan(ctx context.Context, w Weight, bound float64) (string, bool, error) {
	return n.activateFound(ctx, w, bound, true)
}

// ActivateZoomLowerThan activates the result of FindZoomLowerThan, if
// there is one.
func (n *Navigator) ActivateZoomLowerThan(ctx context.Context, w Weight, bound float64) (string, bool, error) {
	return n.activateFound(ctx, w, bound, false)
}

func (n *Navigator) activateFound(ctx context.Context, w Weight, bound float64, higher bool) (string, bool, error) {
	t, ok, err := w.FindZoom(ctx, n, bound, higher)
	if err != nil || !ok {
		return "", false, err
	}
	return t, true, n.Activate(ctx, t)
}

// RandomSafeSteps activates up to steps randomly chosen facets, stopping
// early once the route is maximal safe. Under GoalOriented the choice is
// among the inclusive orientations of the current facets, otherwise
// among the suggestions of mode. It returns the number of steps taken.
func (n *Navigator) RandomSafeSteps(ctx context.Context, mode Mode, steps int) (int, error) {
	taken := 0
	for steps < 0 || taken != steps {
		done, err := n.CurrentRouteIsMaximalSafe(ctx)
		if err != nil {
			return taken, err
		}
		if done {
			break
		}

		candidates, err := mode.Filter(ctx, n)
		if err != nil {
			return taken, err
		}
		if candidates == nil {
			candidates = n.current.Tokens()
		}
		if len(candidates) == 0 {
			return taken, errors.Errorf("no facet to activate on route %s", n.route)
		}

		if err := n.Activate(ctx, candidates[n.rand.Intn(len(candidates))]); err != nil {
			return taken, err
		}
		taken++
	}
	return taken, nil
}

// RandomSafeWalk takes random steps until the route is maximal safe.
func (n *Navigator) RandomSafeWalk(ctx context.Context, mode Mode) (int, error) {
	return n.RandomSafeSteps(ctx, mode, -1)
}
