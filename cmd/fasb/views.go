package main

import (
	"fmt"
	"strings"

	"github.com/operator-framework/fasb/pkg/components"
	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/output"
	"github.com/operator-framework/fasb/pkg/sampler"
	"github.com/operator-framework/fasb/pkg/solver"
)

type facetsView struct {
	Route  []string `json:"route"`
	Facets []string `json:"facets"`
	Pace   float64  `json:"pace"`
}

func newFacetsView(r navigator.Route, fs navigator.Facets, pace float64) facetsView {
	return facetsView{Route: nonNil(r), Facets: nonNil(fs.Tokens()), Pace: pace}
}

func (v facetsView) Text(p output.Palette) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Route(navigator.Route(v.Route).String()))
	fmt.Fprintf(&b, "%s\n", p.Tokens(v.Facets))
	fmt.Fprintf(&b, "%d facets, pace %s", len(v.Facets), p.Value(fmt.Sprintf("%.4f", v.Pace)))
	return b.String()
}

type modelsView struct {
	Route  []string   `json:"route"`
	Models [][]string `json:"models"`
}

func newModelsView(r navigator.Route, ms []solver.Model) modelsView {
	v := modelsView{Route: nonNil(r), Models: make([][]string, len(ms))}
	for i, m := range ms {
		v.Models[i] = nonNil(m.Strings())
	}
	return v
}

func (v modelsView) Text(p output.Palette) string {
	var b strings.Builder
	for i, m := range v.Models {
		fmt.Fprintf(&b, "Answer: %d\n%s\n", i+1, strings.Join(m, " "))
	}
	if len(v.Models) == 0 {
		b.WriteString("UNSATISFIABLE\n")
	} else {
		fmt.Fprintf(&b, "SATISFIABLE %s\n", p.Value(len(v.Models)))
	}
	return b.String()
}

type stepView struct {
	Mode        string   `json:"mode"`
	Route       []string `json:"route"`
	Suggestions []string `json:"suggestions"`
}

func (v stepView) Text(p output.Palette) string {
	return fmt.Sprintf("%s %s\n%s", v.Mode, p.Route(navigator.Route(v.Route).String()), p.Tokens(v.Suggestions))
}

type weightRow struct {
	Token  string `json:"token"`
	Weight int    `json:"weight"`
}

type weightsView struct {
	Weight  string      `json:"weight"`
	Weights []weightRow `json:"weights"`
}

func newWeightsView(w navigator.Weight, ws []navigator.Weighted) weightsView {
	v := weightsView{Weight: w.String(), Weights: make([]weightRow, len(ws))}
	for i, x := range ws {
		v.Weights[i] = weightRow{Token: x.Token, Weight: x.Weight}
	}
	return v
}

func (v weightsView) Text(p output.Palette) string {
	var b strings.Builder
	for _, w := range v.Weights {
		fmt.Fprintf(&b, "%s %s\n", p.Token(w.Token), p.Value(w.Weight))
	}
	return b.String()
}

type zoomRow struct {
	Token string  `json:"token"`
	Zoom  float64 `json:"zoom"`
}

type zoomsView struct {
	Weight string    `json:"weight"`
	Zooms  []zoomRow `json:"zooms"`
}

func newZoomsView(w navigator.Weight, zs []navigator.Zoomed) zoomsView {
	v := zoomsView{Weight: w.String(), Zooms: make([]zoomRow, len(zs))}
	for i, z := range zs {
		v.Zooms[i] = zoomRow{Token: z.Token, Zoom: z.Zoom}
	}
	return v
}

func (v zoomsView) Text(p output.Palette) string {
	var b strings.Builder
	for _, z := range v.Zooms {
		fmt.Fprintf(&b, "%s %s\n", p.Token(z.Token), p.Value(fmt.Sprintf("%.4f", z.Zoom)))
	}
	return b.String()
}

type zoomView struct {
	Bound     float64  `json:"bound"`
	Higher    bool     `json:"higher"`
	Found     bool     `json:"found"`
	Token     string   `json:"token,omitempty"`
	Activated bool     `json:"activated"`
	Route     []string `json:"route"`
}

func (v zoomView) Text(p output.Palette) string {
	if !v.Found {
		relation := "lower"
		if v.Higher {
			relation = "higher"
		}
		return fmt.Sprintf("no facet with a zoom %s than %g", relation, v.Bound)
	}
	if v.Activated {
		return fmt.Sprintf("%s\n%s", p.Token(v.Token), p.Route(navigator.Route(v.Route).String()))
	}
	return p.Token(v.Token)
}

type safeView struct {
	Route   []string `json:"route"`
	Maximal bool     `json:"maximal"`
	Safe    bool     `json:"safe"`
}

func (v safeView) Text(p output.Palette) string {
	property := "safe"
	if v.Maximal {
		property = "maximal safe"
	}
	verdict := "is"
	if !v.Safe {
		verdict = "is not"
	}
	return fmt.Sprintf("%s %s %s", p.Route(navigator.Route(v.Route).String()), verdict, property)
}

type walkView struct {
	Steps  int        `json:"steps"`
	Facets facetsView `json:"facets"`
}

func (v walkView) Text(p output.Palette) string {
	return fmt.Sprintf("%d steps\n%s", v.Steps, v.Facets.Text(p))
}

type binView struct {
	Frequency int      `json:"frequency"`
	Atoms     []string `json:"atoms"`
	Share     float64  `json:"share"`
}

type sampleView struct {
	Heuristic          string     `json:"heuristic"`
	Target             []string   `json:"target"`
	Models             [][]string `json:"models"`
	Entropy            float64    `json:"entropy"`
	Diversity          float64    `json:"diversity"`
	Representativeness float64    `json:"representativeness"`
	Bins               []binView  `json:"bins"`
	Sizes              []int      `json:"sizes"`
	Missing            []string   `json:"missing"`
	Unreachable        []string   `json:"unreachable"`
}

func newSampleView(p sampler.Policy, c *sampler.Collection) sampleView {
	d := c.Diagnostics()
	v := sampleView{
		Heuristic:          p.String(),
		Target:             atomStrings(c.Target()),
		Models:             make([][]string, 0, c.Len()),
		Bins:               make([]binView, 0, len(d.Bins)),
		Entropy:            d.Entropy,
		Diversity:          d.Diversity,
		Representativeness: d.Representativeness,
		Sizes:              nonNil(d.Sizes),
		Missing:            atomStrings(d.Missing),
		Unreachable:        atomStrings(c.Unreachable()),
	}
	for _, m := range c.Models() {
		v.Models = append(v.Models, nonNil(m.Strings()))
	}
	for _, bin := range d.Bins {
		v.Bins = append(v.Bins, binView{Frequency: bin.Frequency, Atoms: atomStrings(bin.Atoms), Share: bin.Share})
	}
	return v
}

func (v sampleView) Text(p output.Palette) string {
	var b strings.Builder
	for i, m := range v.Models {
		fmt.Fprintf(&b, "Answer: %d\n%s\n", i+1, strings.Join(m, " "))
	}
	fmt.Fprintf(&b, "%s: %d models over %d target atoms\n", v.Heuristic, len(v.Models), len(v.Target))
	fmt.Fprintf(&b, "entropy %s, diversity %s, representativeness %s\n",
		p.Value(fmt.Sprintf("%.4f", v.Entropy)),
		p.Value(fmt.Sprintf("%.4f", v.Diversity)),
		p.Value(fmt.Sprintf("%.4f", v.Representativeness)))
	for _, bin := range v.Bins {
		fmt.Fprintf(&b, "frequency %d: %d atoms (%.2f%%)\n", bin.Frequency, len(bin.Atoms), 100*bin.Share)
	}
	if len(v.Unreachable) > 0 {
		fmt.Fprintf(&b, "unreachable: %s\n", strings.Join(v.Unreachable, " "))
	}
	return b.String()
}

type classView struct {
	Key     []string `json:"key"`
	Members []string `json:"members"`
	Content []string `json:"content"`
}

type componentsView struct {
	Kind    string      `json:"kind"`
	Classes []classView `json:"classes"`
}

func newComponentsView(kind string, classes []components.Class) componentsView {
	v := componentsView{Kind: kind, Classes: make([]classView, len(classes))}
	for i, c := range classes {
		v.Classes[i] = classView{
			Key:     atomStrings(c.Key),
			Members: nonNil(c.Members),
			Content: atomStrings(c.Content),
		}
	}
	return v
}

func (v componentsView) Text(p output.Palette) string {
	var b strings.Builder
	for _, c := range v.Classes {
		fmt.Fprintf(&b, "%s\n  key: %s\n  content: %s\n", p.Tokens(c.Members), strings.Join(c.Key, " "), strings.Join(c.Content, " "))
	}
	return b.String()
}

func atomStrings(as []solver.Atom) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.String()
	}
	return out
}

// nonNil keeps empty lists as [] in structured output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
