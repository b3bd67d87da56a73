package navigator_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/fasb/pkg/cache"
	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/solver"
	"github.com/operator-framework/fasb/pkg/solver/solverfakes"
)

var (
	fc  = navigator.FacetCounting{}
	abs = navigator.Absolute{}
)

var _ = Describe("Navigator", func() {
	var (
		ctx context.Context
		nav *navigator.Navigator
		c   *cache.Cache
	)

	BeforeEach(func() {
		ctx = context.Background()
		nav, c = start(ctx, pi1)
	})

	Context("when a session starts", func() {
		It("computes the initial facets", func() {
			Expect(nav.InitialFacets().Tokens()).To(Equal([]string{"a", "b", "c", "d"}))
			Expect(nav.CurrentFacets()).To(Equal(nav.InitialFacets()))
			Expect(nav.Route()).To(BeEmpty())
			Expect(nav.Pace()).To(BeZero())
			Expect(nav.ID()).NotTo(BeEmpty())
			Expect(nav.Program()).To(Equal(pi1))
		})

		It("rejects a program without answer sets", func() {
			o, err := solver.New(unsat)
			Expect(err).NotTo(HaveOccurred())
			_, err = navigator.New(ctx, o)
			Expect(err).To(BeAssignableToTypeOf(solver.NotSatisfiable{}))
		})

		It("reports oracle failures", func() {
			p, err := solver.Parse(pi1)
			Expect(err).NotTo(HaveOccurred())
			o := &solverfakes.FakeOracle{}
			o.ProgramReturns(p)
			o.SatisfiableReturns(false, errors.New("oracle down"))
			_, err = navigator.New(ctx, o)
			Expect(err).To(MatchError(ContainSubstring("oracle down")))
		})

		It("rejects a negative answer set count", func() {
			o, err := solver.New(pi1)
			Expect(err).NotTo(HaveOccurred())
			_, err = navigator.New(ctx, o, navigator.WithN(-1))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when facets are activated", func() {
		It("narrows the current facets", func() {
			Expect(nav.Activate(ctx, "~a")).To(Succeed())
			Expect(nav.CurrentFacets().Tokens()).To(Equal([]string{"c", "d"}))
			Expect(nav.Pace()).To(BeNumerically("~", 0.5))

			Expect(nav.Activate(ctx, "c")).To(Succeed())
			Expect(nav.CurrentFacets()).To(BeEmpty())
			Expect(nav.Pace()).To(BeNumerically("~", 1.0))
			Expect(nav.Route().String()).To(Equal("< ~a c >"))
		})

		It("skips tokens that do not name an atom", func() {
			err := nav.Activate(ctx, "a", "bla", " ~c ")
			Expect(err).To(HaveOccurred())
			var perr *solver.ParseError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Token).To(Equal("bla"))
			Expect(nav.Route()).To(Equal(navigator.Route{"a", "~c"}))
			Expect(nav.Active()).To(HaveLen(2))
		})

		It("resolves every facet when all orientations are active", func() {
			Expect(nav.Activate(ctx, "a", "b", "c", "d", "e", "~a", "~b", "~c", "~d", "~e")).To(Succeed())
			Expect(nav.Active()).To(HaveLen(10))
			Expect(nav.Pace()).To(BeNumerically("~", 1.0))

			Expect(nav.Clear(ctx)).To(Succeed())
			Expect(nav.Route()).To(BeEmpty())
			Expect(nav.Pace()).To(BeZero())
		})

		It("restores the facets when deactivated", func() {
			before := nav.CurrentFacets()
			Expect(nav.Activate(ctx, "b")).To(Succeed())
			Expect(nav.Activate(ctx, "~c", "~c", "~c")).To(Succeed())
			Expect(nav.Active()).To(HaveLen(4))

			Expect(nav.DeactivateAny(ctx, "~c", "~c")).To(Succeed())
			Expect(nav.Route()).To(Equal(navigator.Route{"b"}))
			Expect(nav.Active()).To(Equal(nav.Literals(navigator.Route{"b"})))

			Expect(nav.DeactivateAny(ctx, "b")).To(Succeed())
			Expect(nav.CurrentFacets()).To(Equal(before))
			Expect(nav.Pace()).To(BeZero())
		})

		It("keeps the route when the facets cannot be computed", func() {
			backing, err := solver.New(pi1)
			Expect(err).NotTo(HaveOccurred())
			o := &solverfakes.FakeOracle{}
			o.ProgramReturns(backing.Program())
			o.SatisfiableReturns(true, nil)
			o.LiteralStub = backing.Literal
			o.ConsequencesStub = func(ctx context.Context, mode solver.EnumMode, lits []solver.Literal) ([]solver.Atom, error) {
				if len(lits) > 1 {
					return nil, errors.New("oracle down")
				}
				return backing.Consequences(ctx, mode, lits)
			}
			fresh, err := cache.New()
			Expect(err).NotTo(HaveOccurred())
			n, err := navigator.New(ctx, o, navigator.WithCache(fresh))
			Expect(err).NotTo(HaveOccurred())

			Expect(n.Activate(ctx, "b")).To(Succeed())
			Expect(n.Activate(ctx, "c", "~d")).To(MatchError(ContainSubstring("oracle down")))
			Expect(n.Route()).To(Equal(navigator.Route{"b"}))
			Expect(n.Active()).To(HaveLen(1))
			Expect(n.CurrentFacets().Tokens()).To(Equal([]string{"c", "d"}))
		})

		It("ignores tokens that are not on the route", func() {
			Expect(nav.Activate(ctx, "a")).To(Succeed())
			Expect(nav.DeactivateAny(ctx, "bla", "~a")).To(Succeed())
			Expect(nav.Route()).To(Equal(navigator.Route{"a"}))
		})
	})

	Context("when counting answer sets", func() {
		DescribeTable("the count under a route",
			func(route navigator.Route, expected int) {
				Expect(nav.Count(ctx, route)).To(Equal(expected))
			},
			Entry("empty", navigator.Route{}, 3),
			Entry("a", navigator.Route{"a"}, 1),
			Entry("~b", navigator.Route{"~b"}, 1),
			Entry("b c", navigator.Route{"b", "c"}, 1),
			Entry("~c ~d", navigator.Route{"~c", "~d"}, 1),
			Entry("b", navigator.Route{"b"}, 2),
			Entry("~a", navigator.Route{"~a"}, 2),
			Entry("~d", navigator.Route{"~d"}, 2),
			Entry("~e", navigator.Route{"~e"}, 0),
			Entry("e", navigator.Route{"e"}, 3),
		)

		It("memoizes counts per route", func() {
			Expect(nav.Count(ctx, navigator.Route{"b"})).To(Equal(2))
			_, ok := c.Count(cache.RouteKey(cache.Scope(pi1), []string{"b"}))
			Expect(ok).To(BeTrue())
			_, ok = c.Count(cache.RouteKey(cache.Scope(pi1), []string{"~b"}))
			Expect(ok).To(BeFalse())
		})

		It("computes the absolute pace", func() {
			Expect(nav.Activate(ctx, "b")).To(Succeed())
			Expect(nav.AbsolutePace(ctx)).To(BeNumerically("~", 1.0/3))
		})
	})

	Context("when checking routes", func() {
		DescribeTable("safety",
			func(route navigator.Route, expected bool) {
				Expect(nav.RouteSafe(ctx, route)).To(Equal(expected))
			},
			Entry("empty", navigator.Route{}, true),
			Entry("a", navigator.Route{"a"}, true),
			Entry("b d", navigator.Route{"b", "d"}, true),
			Entry("~c", navigator.Route{"~c"}, true),
			Entry("a ~a", navigator.Route{"a", "~a"}, false),
			Entry("a b", navigator.Route{"a", "b"}, false),
			Entry("c d", navigator.Route{"c", "d"}, false),
			Entry("~e", navigator.Route{"~e"}, false),
		)

		DescribeTable("maximal safety of the current route",
			func(route navigator.Route, expected bool) {
				Expect(nav.Activate(ctx, route...)).To(Succeed())
				Expect(nav.CurrentRouteIsMaximalSafe(ctx)).To(Equal(expected))
			},
			Entry("a ~b ~c ~d", navigator.Route{"a", "~b", "~c", "~d"}, true),
			Entry("b ~a c ~d", navigator.Route{"b", "~a", "c", "~d"}, true),
			Entry("b ~a ~c d", navigator.Route{"b", "~a", "~c", "d"}, true),
			Entry("~c e", navigator.Route{"~c", "e"}, false),
			Entry("~d e", navigator.Route{"~d", "e"}, false),
			Entry("b ~a", navigator.Route{"b", "~a"}, false),
			Entry("empty", navigator.Route{}, false),
			Entry("unsafe", navigator.Route{"a", "b"}, false),
		)

		It("checks the given route rather than the current one", func() {
			Expect(nav.Activate(ctx, "b")).To(Succeed())
			Expect(nav.RouteMaximalSafe(ctx, navigator.Route{"a"})).To(BeTrue())
			Expect(nav.CurrentRouteIsMaximalSafe(ctx)).To(BeFalse())
		})

		It("peeks without changing the route", func() {
			Expect(nav.Activate(ctx, "b")).To(Succeed())
			Expect(nav.PeekSteps("c", "~d")).To(Equal(navigator.Route{"b", "c", "~d"}))
			Expect(nav.Route()).To(Equal(navigator.Route{"b"}))
		})
	})

	Context("when weighing facets", func() {
		DescribeTable("facet-counting weights",
			func(token string, expected int) {
				Expect(fc.Eval(ctx, nav, token)).To(Equal(expected))
			},
			Entry("a", "a", 8),
			Entry("~b", "~b", 8),
			Entry("c", "c", 8),
			Entry("d", "d", 8),
			Entry("b", "b", 4),
			Entry("~a", "~a", 4),
			Entry("~c", "~c", 2),
			Entry("~d", "~d", 2),
		)

		It("computes absolute weights of both orientations", func() {
			Expect(abs.Weights(ctx, nav)).To(Equal([]navigator.Weighted{
				{Token: "a", Weight: 2}, {Token: "~a", Weight: 1},
				{Token: "b", Weight: 1}, {Token: "~b", Weight: 2},
				{Token: "c", Weight: 2}, {Token: "~c", Weight: 1},
				{Token: "d", Weight: 2}, {Token: "~d", Weight: 1},
			}))
		})

		DescribeTable("facet-counting zooms",
			func(token string, expected float64) {
				Expect(fc.Zoom(ctx, nav, token)).To(BeNumerically("~", expected))
			},
			Entry("a", "a", 1.0),
			Entry("~b", "~b", 1.0),
			Entry("b", "b", 0.5),
			Entry("~c", "~c", 0.25),
			Entry("~d", "~d", 0.25),
		)

		DescribeTable("absolute zooms",
			func(token string, expected float64) {
				Expect(abs.Zoom(ctx, nav, token)).To(BeNumerically("~", expected))
			},
			Entry("a", "a", 2.0/3),
			Entry("~b", "~b", 2.0/3),
			Entry("b", "b", 1.0/3),
			Entry("~c", "~c", 1.0/3),
		)

		It("pairs absolute zooms", func() {
			zs, err := abs.Zooms(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(zs).To(HaveLen(8))
			Expect(zs[0].Token).To(Equal("a"))
			Expect(zs[0].Zoom).To(BeNumerically("~", 2.0/3))
			Expect(zs[1].Token).To(Equal("~a"))
			Expect(zs[1].Zoom).To(BeNumerically("~", 1.0/3))
		})

		It("takes the route into account", func() {
			Expect(nav.Activate(ctx, "~a")).To(Succeed())
			Expect(fc.Eval(ctx, nav, "c")).To(Equal(4))
			Expect(fc.Zoom(ctx, nav, "c")).To(BeNumerically("~", 0.5))
			Expect(abs.Eval(ctx, nav, "c")).To(Equal(1))
			Expect(abs.Zoom(ctx, nav, "c")).To(BeNumerically("~", 1.0/3))
		})
	})

	Context("when looking for zooms", func() {
		DescribeTable("the first matching orientation",
			func(w navigator.Weight, higher bool, bound float64, expected string) {
				var (
					t   string
					ok  bool
					err error
				)
				if higher {
					t, ok, err = nav.FindZoomHigherThan(ctx, w, bound)
				} else {
					t, ok, err = nav.FindZoomLowerThan(ctx, w, bound)
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(Equal(expected != ""))
				Expect(t).To(Equal(expected))
			},
			Entry("facet-counting higher", fc, true, 0.9, "a"),
			Entry("facet-counting higher, first match", fc, true, 0.6, "a"),
			Entry("facet-counting lower scans exclusive first", fc, false, 0.3, "~c"),
			Entry("facet-counting lower, first exclusive", fc, false, 0.6, "~a"),
			Entry("facet-counting out of range", fc, true, 1.1, ""),
			Entry("absolute higher", abs, true, 0.6, "a"),
			Entry("absolute lower", abs, false, 0.4, "~a"),
			Entry("absolute out of range", abs, false, 0.1, ""),
		)

		It("activates the zoom it finds", func() {
			t, ok, err := nav.ActivateZoomHigherThan(ctx, fc, 0.9)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(t).To(Equal("a"))
			Expect(nav.Route()).To(Equal(navigator.Route{"a"}))
			Expect(nav.Pace()).To(BeNumerically("~", 1.0))

			_, ok, err = nav.ActivateZoomLowerThan(ctx, fc, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(nav.Route()).To(Equal(navigator.Route{"a"}))
		})
	})

	Context("when filtering facets", func() {
		DescribeTable("the suggestions of a mode",
			func(m navigator.Mode, expected []string) {
				fs, err := m.Filter(ctx, nav)
				Expect(err).NotTo(HaveOccurred())
				if expected == nil {
					Expect(fs).To(BeNil())
					return
				}
				Expect(fs).To(Equal(expected))
			},
			Entry("goal-oriented", navigator.GoalOriented{W: fc}, []string(nil)),
			Entry("goal-oriented absolute", navigator.GoalOriented{W: abs}, []string(nil)),
			Entry("strictly goal-oriented", navigator.StrictlyGoalOriented{W: fc}, []string{"a", "~b", "c", "d"}),
			Entry("explore", navigator.Explore{W: fc}, []string{"~c", "~d"}),
			Entry("strictly goal-oriented absolute", navigator.StrictlyGoalOriented{W: abs}, []string{"a", "~b", "c", "d"}),
			Entry("explore absolute", navigator.Explore{W: abs}, []string{"~a", "b", "~c", "~d"}),
		)

		It("caches rankings per route", func() {
			m := navigator.StrictlyGoalOriented{W: fc}
			first, err := m.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len(cache.MaxFacetCounting)).To(Equal(1))

			second, err := m.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
			Expect(c.Len(cache.MaxFacetCounting)).To(Equal(1))

			Expect(nav.Activate(ctx, "b")).To(Succeed())
			_, err = m.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len(cache.MaxFacetCounting)).To(Equal(2))
			Expect(c.Len(cache.MinFacetCounting)).To(BeZero())
		})

		It("returns an empty ranking once every facet is resolved", func() {
			Expect(nav.Activate(ctx, "a")).To(Succeed())
			fs, err := navigator.Explore{W: abs}.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(fs).NotTo(BeNil())
			Expect(fs).To(BeEmpty())
		})

		It("steps through every orientation without a ranking", func() {
			fs, err := nav.Step(ctx, navigator.GoalOriented{W: fc})
			Expect(err).NotTo(HaveOccurred())
			Expect(fs).To(Equal([]string{"a", "~a", "b", "~b", "c", "~c", "d", "~d"}))
		})
	})

	Context("when walking randomly", func() {
		DescribeTable("ends on a maximal safe route",
			func(m navigator.Mode) {
				steps, err := nav.RandomSafeWalk(ctx, m)
				Expect(err).NotTo(HaveOccurred())
				Expect(steps).To(BeNumerically(">", 0))
				Expect(nav.Route()).To(HaveLen(steps))
				Expect(nav.CurrentRouteIsMaximalSafe(ctx)).To(BeTrue())
				Expect(nav.Navigate(ctx, 0)).To(HaveLen(1))
			},
			Entry("goal-oriented", navigator.GoalOriented{W: fc}),
			Entry("strictly goal-oriented", navigator.StrictlyGoalOriented{W: fc}),
			Entry("strictly goal-oriented absolute", navigator.StrictlyGoalOriented{W: abs}),
		)

		It("stops after the given number of steps", func() {
			steps, err := nav.RandomSafeSteps(ctx, navigator.Explore{W: fc}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(1))
			Expect(nav.Route()).To(HaveLen(1))
		})

		It("takes no step on a maximal safe route", func() {
			Expect(nav.Activate(ctx, "a", "~b", "~c", "~d")).To(Succeed())
			Expect(nav.RandomSafeWalk(ctx, navigator.GoalOriented{W: fc})).To(BeZero())
		})
	})

	Context("when navigating answer sets", func() {
		It("enumerates answer sets under the route", func() {
			ms, err := nav.Navigate(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(HaveLen(3))

			Expect(nav.Activate(ctx, "b")).To(Succeed())
			ms, err = nav.Navigate(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			var got []string
			for _, m := range ms {
				got = append(got, m.String())
			}
			Expect(got).To(ConsistOf("b c e", "b d e"))
		})

		It("stops after the requested number", func() {
			Expect(nav.Navigate(ctx, 2)).To(HaveLen(2))
			Expect(nav.NavigateN(ctx)).To(HaveLen(navigator.DefaultN))
		})

		It("uses the configured default", func() {
			nav, _ = start(ctx, pi1, navigator.WithN(1))
			Expect(nav.N()).To(Equal(1))
			Expect(nav.NavigateN(ctx)).To(HaveLen(1))
		})
	})
})
