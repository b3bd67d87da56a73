package solver

import (
	"context"

	"github.com/go-air/gini/z"
)

func (s *session) Consequences(ctx context.Context, mode EnumMode, assumptions []Literal) ([]Atom, error) {
	ms, err := s.lits(assumptions)
	if err != nil {
		return nil, err
	}
	ok, err := s.search(ctx, s.g, ms)
	if err != nil || !ok {
		return nil, err
	}

	var in []bool
	switch mode {
	case Brave:
		in, err = s.brave(ctx, ms)
	case Cautious:
		in, err = s.cautious(ctx, ms)
	default:
		return nil, &OracleError{Op: "consequences", Err: Incomplete}
	}
	if err != nil {
		return nil, err
	}

	var result []Atom
	for i, a := range s.d.atoms {
		if in[i] {
			result = append(result, a)
		}
	}
	return result, nil
}

// brave accumulates the shown atoms of successive answer sets, each
// required to contain at least one shown atom not seen before. It
// expects the session solver to hold a model.
func (s *session) brave(ctx context.Context, ms []z.Lit) ([]bool, error) {
	found := make([]bool, len(s.d.atoms))
	s.collect(found, true)
	for {
		s.buffer = s.buffer[:0]
		for i, m := range s.d.lits {
			if s.d.shown[i] && !found[i] {
				s.buffer = append(s.buffer, m)
			}
		}
		if len(s.buffer) == 0 {
			return found, nil
		}
		ok, err := s.searchWith(ctx, ms, s.buffer, found, true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return found, nil
		}
	}
}

// cautious intersects the shown atoms of successive answer sets, each
// required to falsify at least one atom of the current intersection.
func (s *session) cautious(ctx context.Context, ms []z.Lit) ([]bool, error) {
	kept := make([]bool, len(s.d.atoms))
	s.collect(kept, true)
	for {
		s.buffer = s.buffer[:0]
		for i, m := range s.d.lits {
			if kept[i] {
				s.buffer = append(s.buffer, m.Not())
			}
		}
		if len(s.buffer) == 0 {
			return kept, nil
		}
		ok, err := s.searchWith(ctx, ms, s.buffer, kept, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return kept, nil
		}
	}
}

// collect updates set from the current model: with union it adds the
// true shown atoms, otherwise it removes the false ones.
func (s *session) collect(set []bool, union bool) {
	for i, m := range s.d.lits {
		if !s.d.shown[i] {
			continue
		}
		v := s.g.Value(m)
		switch {
		case union && v:
			set[i] = true
		case !union && !v:
			set[i] = false
		}
	}
}

// searchWith searches under the assumptions and the temporary clause,
// and collects the model found into set. The clause is guarded by a
// fresh selector literal that is retired afterwards; retiring it
// resets the assignment, so the model must be read first.
func (s *session) searchWith(ctx context.Context, assumptions []z.Lit, clause []z.Lit, set []bool, union bool) (bool, error) {
	sel := s.d.c.Lit()
	s.g.Add(sel.Not())
	for _, m := range clause {
		s.g.Add(m)
	}
	s.g.Add(0)
	as := make([]z.Lit, 0, len(assumptions)+1)
	as = append(as, assumptions...)
	as = append(as, sel)
	ok, err := s.search(ctx, s.g, as)
	if err == nil && ok {
		s.collect(set, union)
	}
	s.g.Add(sel.Not())
	s.g.Add(0)
	return ok, err
}
