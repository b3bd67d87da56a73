package main

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/fasb/pkg/lib/filemonitor"
	"github.com/operator-framework/fasb/pkg/solver"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch PROGRAM",
		Short: "Print the facets under the route whenever the program changes",
		Long: `Print the facets under the route, then again every time the
program file is saved. Versions of the file that do not parse are
reported and skipped. Stops on SIGINT or SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			show := func(p *solver.Program) {
				nav, err := a.sessionFor(ctx, p.Source(), false)
				if err != nil {
					a.logger.WithError(err).Warn("unable to navigate program")
					return
				}
				if err := a.printer.Print(newFacetsView(nav.Route(), nav.CurrentFacets(), nav.Pace())); err != nil {
					a.logger.WithError(err).Warn("unable to print facets")
				}
			}

			store, err := filemonitor.NewProgramStore(args[0], show)
			if err != nil {
				return err
			}
			w, err := filemonitor.NewWatch(a.logger, []string{store.Dir()}, store.HandleProgramUpdate)
			if err != nil {
				return err
			}
			show(store.Program())
			w.Run(ctx)
			<-w.Done()
			return nil
		},
	}
}
