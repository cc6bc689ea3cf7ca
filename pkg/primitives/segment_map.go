package primitives

import (
	"fmt"
	"slices"
	"strings"
)

// SegmentMap tracks, for each scrambled wire, the true segments it could still be
// wired to. Candidates are only ever removed.
type SegmentMap struct {
	candidates [NumSegments]*CharSet
}

// NewSegmentMap returns a map where every wire could be every segment.
func NewSegmentMap() *SegmentMap {
	m := &SegmentMap{}
	for i := range m.candidates {
		m.candidates[i] = FullCharSet(SegmentMin, SegmentMax)
	}
	return m
}

func wireIndex(wire rune) (int, error) {
	if wire < WireMin || wire > WireMax {
		return 0, fmt.Errorf("%w: wire %q", ErrOutOfRange, wire)
	}
	return int(wire - WireMin), nil
}

// Eliminate rules out segment for wire. It is a no-op if already ruled out.
func (m *SegmentMap) Eliminate(wire, segment rune) error {
	i, err := wireIndex(wire)
	if err != nil {
		return err
	}
	return m.candidates[i].Remove(segment)
}

// Candidates returns a copy of the segments still possible for wire.
func (m *SegmentMap) Candidates(wire rune) (*CharSet, error) {
	i, err := wireIndex(wire)
	if err != nil {
		return nil, err
	}
	return m.candidates[i].Clone(), nil
}

// Counts returns the number of candidates left for each wire, 'a' first.
func (m *SegmentMap) Counts() [NumSegments]int {
	var out [NumSegments]int
	for i, c := range m.candidates {
		out[i] = c.Count()
	}
	return out
}

// IsSolved reports whether every wire has exactly one candidate and no two
// wires share one.
func (m *SegmentMap) IsSolved() bool {
	seen := SegmentSet()
	for _, c := range m.candidates {
		if c.Count() != 1 {
			return false
		}
		seen.AddAll(c)
	}
	return seen.IsFull()
}

// Assignment returns the segment each wire is wired to, indexed from 'a'. It
// fails unless IsSolved.
func (m *SegmentMap) Assignment() ([NumSegments]rune, error) {
	var out [NumSegments]rune
	if !m.IsSolved() {
		return out, fmt.Errorf("segment map is not a bijection: %s", m)
	}
	for i, c := range m.candidates {
		out[i] = c.Runes()[0]
	}
	return out, nil
}

// Expand returns every cleartext segment pattern the codeword could be showing
// given what is known so far. Patterns are canonical (sorted), and any
// substitution that maps two wires onto the same segment is dropped, since it
// would light fewer segments than the codeword has wires.
func (m *SegmentMap) Expand(code Codeword) (map[string]bool, error) {
	partial := [][]rune{{}}

	for _, wire := range code {
		i, err := wireIndex(wire)
		if err != nil {
			return nil, err
		}
		candidates := m.candidates[i].Runes()

		next := make([][]rune, 0, len(partial)*len(candidates))
		for _, p := range partial {
			for _, seg := range candidates {
				if slices.Contains(p, seg) {
					continue
				}
				next = append(next, append(slices.Clone(p), seg))
			}
		}
		partial = next
	}

	want := code.Len()
	out := make(map[string]bool, len(partial))
	for _, p := range partial {
		if len(p) != want {
			continue
		}
		slices.Sort(p)
		out[string(p)] = true
	}
	return out, nil
}

// UpdateFromAssignment narrows the map given that code displays digit: a lit
// wire cannot drive an unlit segment, and an unlit wire cannot drive a lit one.
func (m *SegmentMap) UpdateFromAssignment(code Codeword, digit int) error {
	codeOn, err := code.Wires()
	if err != nil {
		return err
	}
	codeOff := codeOn.Complement()
	clearOn, err := DigitSegments(digit)
	if err != nil {
		return err
	}
	clearOff := clearOn.Complement()

	for _, wire := range codeOn.Runes() {
		for _, seg := range clearOff.Runes() {
			if err := m.Eliminate(wire, seg); err != nil {
				return err
			}
		}
	}

	for _, wire := range codeOff.Runes() {
		for _, seg := range clearOn.Runes() {
			if err := m.Eliminate(wire, seg); err != nil {
				return err
			}
		}
	}
	return nil
}

// String renders each wire's candidates, e.g. "a:A b:BD c:CF ...".
func (m *SegmentMap) String() string {
	parts := make([]string, len(m.candidates))
	for i, c := range m.candidates {
		parts[i] = fmt.Sprintf("%c:%s", WireMin+rune(i), c)
	}
	return strings.Join(parts, " ")
}
