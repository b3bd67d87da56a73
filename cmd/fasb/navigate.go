package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/operator-framework/fasb/pkg/navigator"
)

func newFacetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "facets PROGRAM",
		Short: "Print the facets under the route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			return a.printer.Print(newFacetsView(nav.Route(), nav.CurrentFacets(), nav.Pace()))
		},
	}
}

func newInitialFacetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "initial-facets PROGRAM",
		Short: "Print the facets of the program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			return a.printer.Print(newFacetsView(nil, nav.InitialFacets(), 0))
		},
	}
}

func newNavigateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "navigate PROGRAM",
		Short: "Print answer sets under the route",
		Long: `Print up to --number answer sets under the route, all of them if
--number is 0.

        $ fasb navigate -n 0 --route "a ~b" program.lp
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			ms, err := nav.NavigateN(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(newModelsView(nav.Route(), ms))
		},
	}
}

func newStepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "step PROGRAM",
		Short: "Suggest the facets to activate next",
		Long: `Rank the current facets with the navigation mode and weight.
Goal-oriented navigation suggests every orientation of every facet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			mode := a.mode()
			suggestions, err := nav.Step(cmd.Context(), mode)
			if err != nil {
				return err
			}
			return a.printer.Print(stepView{
				Mode:        mode.String(),
				Route:       nonNil(nav.Route()),
				Suggestions: nonNil(suggestions),
			})
		},
	}
}

func newWeightsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weights PROGRAM",
		Short: "Print the weight of both orientations of every current facet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			w := a.mode().Weight()
			ws, err := w.Weights(cmd.Context(), nav)
			if err != nil {
				return err
			}
			return a.printer.Print(newWeightsView(w, ws))
		},
	}
}

func newZoomsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "zooms PROGRAM",
		Short: "Print the zoom of both orientations of every current facet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			w := a.mode().Weight()
			zs, err := w.Zooms(cmd.Context(), nav)
			if err != nil {
				return err
			}
			return a.printer.Print(newZoomsView(w, zs))
		},
	}
}

func newZoomCmd(a *app, higher bool) *cobra.Command {
	var activate bool
	use, short := "zoom-lower PROGRAM BOUND", "Find a facet whose zoom is at most BOUND"
	if higher {
		use, short = "zoom-higher PROGRAM BOUND", "Find a facet whose zoom is at least BOUND"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Wrapf(err, "invalid bound %q", args[1])
			}
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}

			w := a.mode().Weight()
			find := nav.FindZoomLowerThan
			switch {
			case higher && activate:
				find = nav.ActivateZoomHigherThan
			case higher:
				find = nav.FindZoomHigherThan
			case activate:
				find = nav.ActivateZoomLowerThan
			}
			token, found, err := find(cmd.Context(), w, bound)
			if err != nil {
				return err
			}
			return a.printer.Print(zoomView{
				Bound:     bound,
				Higher:    higher,
				Found:     found,
				Token:     token,
				Activated: found && activate,
				Route:     nonNil(nav.Route()),
			})
		},
	}
	cmd.Flags().BoolVar(&activate, "activate", false, "activate the facet found")
	return cmd
}

func newSafeCmd(a *app, maximal bool) *cobra.Command {
	use, short := "safe PROGRAM", "Check whether the route admits an answer set"
	if maximal {
		use, short = "maximal-safe PROGRAM", "Check whether no facet can be added to the safe route"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			route := navigator.ParseRoute(a.route)
			check := nav.RouteSafe
			if maximal {
				check = nav.RouteMaximalSafe
			}
			safe, err := check(cmd.Context(), route)
			if err != nil {
				return err
			}
			return a.printer.Print(safeView{Route: nonNil(route), Maximal: maximal, Safe: safe})
		},
	}
}

func newRandomWalkCmd(a *app) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "random-walk PROGRAM",
		Short: "Activate random facets until the route is maximal safe",
		Long: `Activate randomly chosen facets, among the suggestions of the
navigation mode, until the route is maximal safe or --steps facets
were activated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.session(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			var taken int
			if steps > 0 {
				taken, err = nav.RandomSafeSteps(cmd.Context(), a.mode(), steps)
			} else {
				taken, err = nav.RandomSafeWalk(cmd.Context(), a.mode())
			}
			if err != nil {
				return err
			}
			return a.printer.Print(walkView{
				Steps:  taken,
				Facets: newFacetsView(nav.Route(), nav.CurrentFacets(), nav.Pace()),
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "maximum number of facets to activate, 0 for a full walk")
	return cmd
}
