package main

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/operator-framework/fasb/pkg/components"
	"github.com/operator-framework/fasb/pkg/navigator"
)

type analysis func(*components.Analyzer, context.Context, []string) ([]components.Class, error)

var analyses = map[string]analysis{
	"components": (*components.Analyzer).Components,
	"related":    (*components.Analyzer).RelatedComponents,
	"interiors":  (*components.Analyzer).Interiors,
	"exteriors":  (*components.Analyzer).Exteriors,
}

func newComponentsCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "components PROGRAM",
		Short: "Group the facets under the route by their consequences",
		Long: `Group both orientations of every facet under the route by the
consequences they induce.

  components  by cautious consequences, content is the brave union
  related     by brave consequences, content is the cautious union
  interiors   inclusive orientations only, grouped like components
  exteriors   exclusive orientations only, grouped like components`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := analyses[kind]
			if !ok {
				return errors.Errorf("unknown analysis %q", kind)
			}
			source, err := a.readProgram(args[0])
			if err != nil {
				return err
			}
			analyzer, err := components.New(source,
				components.WithBuilder(a.builder()),
				components.WithLogger(a.logger),
				components.WithWorkers(a.cfg.Workers),
			)
			if err != nil {
				return err
			}
			classes, err := run(analyzer, cmd.Context(), navigator.ParseRoute(a.route))
			if err != nil {
				return err
			}
			return a.printer.Print(newComponentsView(kind, classes))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "components", "components, related, interiors or exteriors")
	cmd.Flags().Int("workers", runtime.GOMAXPROCS(0), "number of sessions queried in parallel")
	return cmd
}
