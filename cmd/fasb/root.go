package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/operator-framework/fasb/pkg/cache"
	"github.com/operator-framework/fasb/pkg/config"
	"github.com/operator-framework/fasb/pkg/metrics"
	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/output"
	"github.com/operator-framework/fasb/pkg/solver"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	logger *logrus.Logger

	configPath  string
	debug       bool
	logFormat   string
	route       string
	modeName    string
	weightName  string
	jq          string
	color       bool
	metricsAddr string

	cfg     *config.Config
	printer *output.Printer
	cache   *cache.Cache
}

// Boolean shorthand flags for --mode and --weight, mapped to the value
// they select.
var (
	modeAliases = map[string]navigator.ModeKind{
		"go":                     navigator.GoalOrientedMode,
		"goal-oriented":          navigator.GoalOrientedMode,
		"sgo":                    navigator.StrictlyGoalOrientedMode,
		"strictly-goal-oriented": navigator.StrictlyGoalOrientedMode,
		"expl":                   navigator.ExploreMode,
		"explore":                navigator.ExploreMode,
	}
	weightAliases = map[string]navigator.WeightKind{
		"abs":            navigator.AbsoluteWeight,
		"absolute":       navigator.AbsoluteWeight,
		"fc":             navigator.FacetCountingWeight,
		"facet-counting": navigator.FacetCountingWeight,
	}
)

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	logger := logrus.New()
	logger.SetOutput(errOut)
	a := &app{in: in, out: out, logger: logger}

	rootCmd := &cobra.Command{
		Use:   "fasb",
		Short: "fasb",
		Long: `A faceted answer set browser: navigate the answer sets of a ground
logic program by activating facets, rank facets by their weight and
sample diverse collections of answer sets.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path of a YAML configuration file")
	flags.BoolVar(&a.debug, "debug", false, "use debug log level")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format, text or json")
	flags.StringVarP(&a.route, "route", "r", "", `facets to activate first, e.g. "a ~b c"`)
	flags.StringVar(&a.modeName, "mode", "", "navigation mode: go, sgo or explore")
	flags.StringVar(&a.weightName, "weight", "", "facet weight: fc or absolute")
	flags.IntP("number", "n", navigator.DefaultN, "number of answer sets to show, 0 for all")
	flags.Int("cache-size", cache.DefaultSize, "capacity of every cache table")
	flags.StringP("output", "o", string(output.Text), "output format: text, json or yaml")
	flags.StringVar(&a.jq, "jq", "", "jq expression filtering json or yaml output")
	flags.BoolVar(&a.color, "color", false, "highlight facets in text output")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	for alias, k := range modeAliases {
		flags.Bool(alias, false, "shorthand for --mode="+string(k))
	}
	for alias, k := range weightAliases {
		flags.Bool(alias, false, "shorthand for --weight="+string(k))
	}

	rootCmd.AddCommand(
		newFacetsCmd(a),
		newInitialFacetsCmd(a),
		newNavigateCmd(a),
		newStepCmd(a),
		newWeightsCmd(a),
		newZoomsCmd(a),
		newZoomCmd(a, true),
		newZoomCmd(a, false),
		newSafeCmd(a, false),
		newSafeCmd(a, true),
		newRandomWalkCmd(a),
		newSampleCmd(a),
		newComponentsCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and prepares
// logging, output and the cache.
func (a *app) setup(cmd *cobra.Command) error {
	if a.debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}
	switch strings.ToLower(a.logFormat) {
	case "json":
		a.logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		a.logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return errors.Errorf("unknown log format %q", a.logFormat)
	}

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := a.override(cmd.Flags(), cfg); err != nil {
		return err
	}
	a.cfg = cfg

	p, err := output.NewPrinter(a.out, cfg.Output, output.WithQuery(a.jq), output.WithColor(a.color))
	if err != nil {
		return err
	}
	a.printer = p

	c, err := cache.New(cache.WithSize(cfg.CacheSize), cache.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.cache = c

	if a.metricsAddr != "" {
		a.serveMetrics(cmd.Context())
	}
	return nil
}

// override applies the flags set on the command line over cfg.
func (a *app) override(flags *pflag.FlagSet, cfg *config.Config) error {
	raw := map[string]interface{}{}

	var modes []navigator.ModeKind
	if flags.Changed("mode") {
		k, err := navigator.ParseModeKind(a.modeName)
		if err != nil {
			return err
		}
		modes = append(modes, k)
	}
	for alias := range modeAliases {
		if set, _ := flags.GetBool(alias); set {
			modes = append(modes, modeAliases[alias])
		}
	}
	for _, k := range modes {
		if k != modes[0] {
			return errors.Errorf("conflicting navigation modes %s and %s", modes[0], k)
		}
		raw["mode"] = string(k)
	}

	var weights []navigator.WeightKind
	if flags.Changed("weight") {
		k, err := navigator.ParseWeightKind(a.weightName)
		if err != nil {
			return err
		}
		weights = append(weights, k)
	}
	for alias := range weightAliases {
		if set, _ := flags.GetBool(alias); set {
			weights = append(weights, weightAliases[alias])
		}
	}
	for _, k := range weights {
		if k != weights[0] {
			return errors.Errorf("conflicting weights %s and %s", weights[0], k)
		}
		raw["weight"] = string(k)
	}

	for flag, key := range map[string]string{
		"number":      "n",
		"cache-size":  "cacheSize",
		"output":      "output",
		"heuristic":   "heuristic",
		"sample-size": "sampleSize",
		"workers":     "workers",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			raw[key] = f.Value.String()
		}
	}
	return cfg.Decode(raw)
}

var registerMetrics sync.Once

func (a *app) serveMetrics(ctx context.Context) {
	registerMetrics.Do(metrics.Register)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: a.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.logger.Infof("serving metrics on %s", a.metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Warn("metrics server stopped")
		}
	}()
	go func() {
		<-ctx.Done()
		server.Close()
	}()
}

// readProgram reads program text from a file, or from standard input
// if path is "-".
func (a *app) readProgram(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(a.in)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// oracle returns a session instrumented with the prometheus emitters.
func (a *app) oracle(source string) (solver.Oracle, error) {
	o, err := solver.New(source, solver.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	return solver.NewInstrumentedOracle(o, metrics.RegisterOracleQuerySuccess, metrics.RegisterOracleQueryFailure), nil
}

func (a *app) builder() solver.Builder {
	return a.oracle
}

func (a *app) mode() navigator.Mode {
	return navigator.NewMode(a.cfg.Mode, navigator.NewWeight(a.cfg.Weight))
}

// session starts a navigator on the program at path. Unless bare is
// set, the --route facets are activated; tokens that do not resolve are
// reported and skipped.
func (a *app) session(ctx context.Context, path string, bare bool) (*navigator.Navigator, error) {
	source, err := a.readProgram(path)
	if err != nil {
		return nil, err
	}
	return a.sessionFor(ctx, source, bare)
}

func (a *app) sessionFor(ctx context.Context, source string, bare bool) (*navigator.Navigator, error) {
	o, err := a.oracle(source)
	if err != nil {
		return nil, err
	}
	nav, err := navigator.New(ctx, o,
		navigator.WithCache(a.cache),
		navigator.WithLogger(a.logger),
		navigator.WithN(a.cfg.N),
		navigator.WithObserver(navigator.NewLoggingObserver(a.logger, 2)),
	)
	if err != nil {
		return nil, err
	}
	if bare {
		return nav, nil
	}
	if route := navigator.ParseRoute(a.route); len(route) > 0 {
		if err := nav.Activate(ctx, route...); err != nil {
			var partial *multierror.Error
			if !errors.As(err, &partial) {
				return nil, err
			}
			a.logger.WithError(err).Warn("route partially activated")
		}
	}
	return nav, nil
}
