package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/sampler"
	"github.com/operator-framework/fasb/pkg/solver"
)

// sampleLogger reports every collected model at debug level.
type sampleLogger struct {
	logger logrus.FieldLogger
}

func (l sampleLogger) Collected(index int, m solver.Model, covered float64) {
	l.logger.WithFields(logrus.Fields{
		"index":   index,
		"atoms":   len(m),
		"covered": covered,
	}).Debug("collected answer set")
}

// restrict extends a program by integrity constraints that keep only
// the answer sets on route.
func restrict(source string, route navigator.Route) (string, error) {
	if len(route) == 0 {
		return source, nil
	}
	prog, err := solver.Parse(source)
	if err != nil {
		return "", err
	}
	rules := make([]solver.Rule, 0, len(route))
	for _, t := range route {
		atom, inclusive, err := solver.ParseToken(t)
		if err != nil {
			return "", err
		}
		if inclusive {
			rules = append(rules, solver.Integrity(nil, []solver.Atom{atom}))
		} else {
			rules = append(rules, solver.Integrity([]solver.Atom{atom}, nil))
		}
	}
	return prog.With(rules...).Source(), nil
}

func newSampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample PROGRAM",
		Short: "Collect a diverse set of answer sets",
		Long: `Collect answer sets on the route until every facet under the route is
observed true in one of them, and report how evenly the collection covers the
facets.

        $ fasb sample --heuristic dgreedy-sieve-max-plus program.lp
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source, err := a.readProgram(args[0])
			if err != nil {
				return err
			}
			p, err := sampler.NewPolicy(a.cfg.Heuristic, a.cfg.SampleSize)
			if err != nil {
				return err
			}
			source, err = restrict(source, navigator.ParseRoute(a.route))
			if err != nil {
				return err
			}
			s, err := sampler.New(source,
				sampler.WithBuilder(a.builder()),
				sampler.WithCache(a.cache),
				sampler.WithLogger(a.logger),
				sampler.WithObserver(sampleLogger{logger: a.logger}),
			)
			if err != nil {
				return err
			}
			target, err := s.Template(ctx)
			if err != nil {
				return err
			}
			if len(target) == 0 {
				a.logger.Warn("no facets to cover")
				return a.printer.Print(newSampleView(p, sampler.NewCollection(nil)))
			}
			c, err := s.Run(ctx, p, target)
			if err != nil {
				return err
			}
			return a.printer.Print(newSampleView(p, c))
		},
	}
	cmd.Flags().String("heuristic", string(sampler.DGreedySieveMax), "sampling heuristic")
	cmd.Flags().Int("sample-size", 0, "maximum number of answer sets for dgreedy, 0 for no bound")
	return cmd
}
