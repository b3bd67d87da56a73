package solver

import (
	"fmt"
	"io"
)

// SearchPosition describes a candidate model that satisfied the
// completion of the program but was rejected as an answer set.
type SearchPosition interface {
	Candidate() Model
	Unfounded() []Atom
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nCandidate:\n")
	for _, a := range p.Candidate() {
		fmt.Fprintf(t.Writer, "- %s\n", a)
	}
	fmt.Fprintf(t.Writer, "Unfounded:\n")
	for _, a := range p.Unfounded() {
		fmt.Fprintf(t.Writer, "- %s\n", a)
	}
}

type position struct {
	d         *litMapping
	candidate Model
	unfounded []int
}

func (p position) Candidate() Model {
	return p.candidate
}

func (p position) Unfounded() []Atom {
	as := make([]Atom, len(p.unfounded))
	for i, j := range p.unfounded {
		as[i] = p.d.atoms[j]
	}
	return as
}
