// Package verify cross-checks a decoded display wiring with a SAT solver.
//
// The problem is encoded directly: one variable per (wire, segment) pair,
// exactly one segment per wire and one wire per segment, and every codeword
// must light exactly the segments of some digit with the same number of
// segments. A first solve finds a wiring; a second solve with that wiring
// blocked proves whether it is the only one.
package verify

import (
	"errors"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"crosswarped.com/segdecode/pkg/primitives"
)

// ErrUnsatisfiable means no wiring at all is consistent with the codewords.
var ErrUnsatisfiable = errors.New("no wiring satisfies the codewords")

// Result is the outcome of a verification.
type Result struct {
	// Wiring maps each wire 'a'-'g' to its segment 'A'-'G'.
	Wiring map[rune]rune
	// Unique is true if no other wiring satisfies the codewords.
	Unique bool
}

type problem struct {
	c    *logic.C
	vars [primitives.NumSegments][primitives.NumSegments]z.Lit
}

func newProblem() *problem {
	p := &problem{c: logic.NewC()}
	for w := range p.vars {
		for s := range p.vars[w] {
			p.vars[w][s] = p.c.Lit()
		}
	}
	return p
}

func (p *problem) exactlyOne(lits []z.Lit) z.Lit {
	clauses := []z.Lit{p.c.Ors(lits...)}
	for i := range lits {
		for j := i + 1; j < len(lits); j++ {
			clauses = append(clauses, p.c.Or(lits[i].Not(), lits[j].Not()))
		}
	}
	return p.c.Ands(clauses...)
}

func (p *problem) permutation() z.Lit {
	var clauses []z.Lit
	for w := range p.vars {
		clauses = append(clauses, p.exactlyOne(p.vars[w][:]))
	}
	for s := range primitives.NumSegments {
		col := make([]z.Lit, primitives.NumSegments)
		for w := range p.vars {
			col[w] = p.vars[w][s]
		}
		clauses = append(clauses, p.exactlyOne(col))
	}
	return p.c.Ands(clauses...)
}

// codeword requires the wires of code to light the segments of one digit.
func (p *problem) codeword(code primitives.Codeword) (z.Lit, error) {
	var options []z.Lit
	for d := range 10 {
		pattern, err := primitives.DigitPattern(d)
		if err != nil {
			return z.LitNull, err
		}
		if len(pattern) != code.Len() {
			continue
		}

		var within []z.Lit
		for _, wire := range code {
			if wire < primitives.WireMin || wire > primitives.WireMax {
				return z.LitNull, fmt.Errorf("%w: wire %q", primitives.ErrOutOfRange, wire)
			}
			segs := make([]z.Lit, 0, len(pattern))
			for _, seg := range pattern {
				segs = append(segs, p.vars[wire-primitives.WireMin][seg-primitives.SegmentMin])
			}
			within = append(within, p.c.Ors(segs...))
		}
		options = append(options, p.c.Ands(within...))
	}

	if len(options) == 0 {
		return z.LitNull, fmt.Errorf("codeword %q has %d wires, no digit matches", string(code), code.Len())
	}
	return p.c.Ors(options...), nil
}

// Wiring finds the wiring implied by the codewords and reports whether it is unique.
func Wiring(codewords []string) (Result, error) {
	p := newProblem()

	clauses := []z.Lit{p.permutation()}
	seen := make(map[primitives.Codeword]bool)
	for _, raw := range codewords {
		code := primitives.Canonicalize(raw)
		if seen[code] {
			continue
		}
		seen[code] = true

		m, err := p.codeword(code)
		if err != nil {
			return Result{}, err
		}
		clauses = append(clauses, m)
	}
	root := p.c.Ands(clauses...)

	g := gini.New()
	p.c.ToCnf(g)

	g.Assume(root)
	if g.Solve() != 1 {
		return Result{}, ErrUnsatisfiable
	}

	res := Result{Wiring: make(map[rune]rune, primitives.NumSegments)}
	chosen := make([]z.Lit, 0, primitives.NumSegments)
	for w := range p.vars {
		for s, v := range p.vars[w] {
			if g.Value(v) {
				res.Wiring[primitives.WireMin+rune(w)] = primitives.SegmentMin + rune(s)
				chosen = append(chosen, v)
			}
		}
	}

	// Block the wiring just found and look for another.
	for _, v := range chosen {
		g.Add(v.Not())
	}
	g.Add(z.LitNull)

	g.Assume(root)
	res.Unique = g.Solve() != 1
	return res, nil
}
