package navigator_test

import (
	"fmt"
	"strings"
)

const (
	pi1   = "a;b. c;d :- b. e."
	unsat = "p. :- p."
)

// grid places nine objects on nine cells, one object per cell and at
// most one cell per object. Every placement is a facet.
func grid() string {
	var b strings.Builder
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "cell(%d). obj(%d).\n", i, i)
	}
	for c := 1; c <= 9; c++ {
		head := make([]string, 9)
		for x := 1; x <= 9; x++ {
			head[x-1] = fmt.Sprintf("set_obj_cell(%d,%d)", x, c)
		}
		fmt.Fprintf(&b, "{%s} = 1 :- cell(%d).\n", strings.Join(head, ";"), c)
	}
	for x := 1; x <= 9; x++ {
		for c1 := 1; c1 <= 9; c1++ {
			for c2 := c1 + 1; c2 <= 9; c2++ {
				fmt.Fprintf(&b, ":- set_obj_cell(%d,%d), set_obj_cell(%d,%d).\n", x, c1, x, c2)
			}
		}
	}
	b.WriteString("#show set_obj_cell/2.\n")
	return b.String()
}

// queens places n non-attacking queens on an n by n board.
func queens(n int) string {
	q := func(i, j int) string {
		return fmt.Sprintf("q(%d,%d)", i, j)
	}
	var b strings.Builder
	for i := 1; i <= n; i++ {
		row := make([]string, n)
		col := make([]string, n)
		for j := 1; j <= n; j++ {
			row[j-1] = q(i, j)
			col[j-1] = q(j, i)
		}
		fmt.Fprintf(&b, "{%s} = 1.\n", strings.Join(row, ";"))
		fmt.Fprintf(&b, "{%s} = 1.\n", strings.Join(col, ";"))
	}
	for i1 := 1; i1 <= n; i1++ {
		for j1 := 1; j1 <= n; j1++ {
			for d := 1; i1+d <= n; d++ {
				if j1+d <= n {
					fmt.Fprintf(&b, ":- %s, %s.\n", q(i1, j1), q(i1+d, j1+d))
				}
				if j1-d >= 1 {
					fmt.Fprintf(&b, ":- %s, %s.\n", q(i1, j1), q(i1+d, j1-d))
				}
			}
		}
	}
	return b.String()
}
