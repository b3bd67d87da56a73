package navigator_test

import (
	"context"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/fasb/pkg/navigator"
)

var _ = Describe("Navigator on larger programs", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with a nine by nine assignment", func() {
		var nav *navigator.Navigator

		BeforeEach(func() {
			nav, _ = start(ctx, grid())
		})

		It("finds every placement as a facet", func() {
			Expect(nav.InitialFacets()).To(HaveLen(81))
		})

		DescribeTable("resolves literals",
			func(token string, ok bool) {
				err := nav.Activate(ctx, token)
				if ok {
					Expect(err).NotTo(HaveOccurred())
					Expect(nav.Route()).To(HaveLen(1))
				} else {
					Expect(err).To(HaveOccurred())
					Expect(nav.Route()).To(BeEmpty())
				}
			},
			Entry("fact", "obj(1)", true),
			Entry("other fact", "cell(1)", true),
			Entry("shown atom", "set_obj_cell(1,1)", true),
			Entry("padded", "  set_obj_cell(1,1) ", true),
			Entry("misspelled object", "ojb(1)", false),
			Entry("misspelled cell", "clel(1)", false),
			Entry("spaced arguments", "set_obj_cell(1, 1)", false),
		)

		It("weighs every orientation alike", func() {
			ws, err := navigator.FacetCounting{}.Weights(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(ws).To(HaveLen(162))
			for _, w := range ws {
				if strings.HasPrefix(w.Token, "~") {
					Expect(w.Weight).To(Equal(2), w.Token)
				} else {
					Expect(w.Weight).To(Equal(34), w.Token)
				}
			}
		})

		It("suggests every facet in one orientation", func() {
			fc := navigator.FacetCounting{}
			sgo, err := navigator.StrictlyGoalOriented{W: fc}.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(sgo).To(Equal(nav.CurrentFacets().Tokens()))

			expl, err := navigator.Explore{W: fc}.Filter(ctx, nav)
			Expect(err).NotTo(HaveOccurred())
			Expect(expl).To(HaveLen(81))
			for _, t := range expl {
				Expect(t).To(HavePrefix("~"))
			}
		})

		It("keeps the pace across deactivation", func() {
			first := nav.CurrentFacets().Tokens()[0]
			Expect(nav.Activate(ctx, first)).To(Succeed())
			Expect(nav.CurrentFacets()).To(HaveLen(64))
			Expect(nav.Pace()).To(BeNumerically("~", 1-128.0/162, 1e-9))

			second := nav.CurrentFacets().Tokens()[0]
			Expect(nav.Activate(ctx, second, second, second)).To(Succeed())
			Expect(nav.Active()).To(HaveLen(4))
			Expect(nav.DeactivateAny(ctx, second)).To(Succeed())
			Expect(nav.Route()).To(Equal(navigator.Route{first}))
			Expect(nav.Pace()).To(BeNumerically("~", 1-128.0/162, 1e-9))

			excluded := navigator.Inverse(nav.CurrentFacets().Tokens()[3])
			Expect(nav.Activate(ctx, excluded)).To(Succeed())
			Expect(nav.DeactivateAny(ctx, excluded, excluded, excluded)).To(Succeed())
			Expect(nav.Route()).To(Equal(navigator.Route{first}))

			Expect(nav.DeactivateAny(ctx, first)).To(Succeed())
			Expect(nav.Route()).To(BeEmpty())
			Expect(nav.Pace()).To(BeZero())
		})
	})

	Context("with thirty queens", func() {
		It("finds every square as a facet", func() {
			if testing.Short() {
				Skip("thirty queens take a while")
			}
			nav, _ := start(ctx, queens(30))
			Expect(nav.InitialFacets()).To(HaveLen(900))
		})
	})

	It("counts the solutions of eight queens", func() {
		nav, _ := start(ctx, queens(8))
		Expect(nav.Count(ctx, navigator.Route{})).To(Equal(92))
	})
})
