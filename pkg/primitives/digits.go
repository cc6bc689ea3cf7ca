package primitives

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Lowercase letters are scrambled wire labels, capitals are true segment identities.
const (
	WireMin    = 'a'
	WireMax    = 'g'
	SegmentMin = 'A'
	SegmentMax = 'G'

	// NumSegments is the size of both alphabets.
	NumSegments = 7
)

// digitPatterns maps each digit to its lit segments on a standard display:
//
//	 AAAA
//	B    C
//	B    C
//	 DDDD
//	E    F
//	E    F
//	 GGGG
var digitPatterns = [10]string{
	0: "ABCEFG",
	1: "CF",
	2: "ACDEG",
	3: "ACDFG",
	4: "BCDF",
	5: "ABDFG",
	6: "ABDEFG",
	7: "ACF",
	8: "ABCDEFG",
	9: "ABCDFG",
}

// DigitPattern returns the canonical segment string lit for digit d.
func DigitPattern(d int) (string, error) {
	if d < 0 || d > 9 {
		return "", fmt.Errorf("digit %d out of range", d)
	}
	return digitPatterns[d], nil
}

// DigitSegments returns the lit segments for digit d as a set.
func DigitSegments(d int) (*CharSet, error) {
	p, err := DigitPattern(d)
	if err != nil {
		return nil, err
	}
	set := SegmentSet()
	for _, r := range p {
		set.Add(r)
	}
	return set, nil
}

// PatternDigit is the inverse of DigitPattern. The pattern must be canonical (sorted).
func PatternDigit(pattern string) (int, bool) {
	i := slices.Index(digitPatterns[:], pattern)
	return i, i >= 0
}

// DigitSet is a small bitmask of digits 0-9.
type DigitSet uint16

func DigitsOf(ds ...int) DigitSet {
	var s DigitSet
	for _, d := range ds {
		s |= 1 << d
	}
	return s
}

func (s DigitSet) Contains(d int) bool {
	return d >= 0 && d <= 9 && s&(1<<d) != 0
}

func (s DigitSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// Digits returns the members in ascending order.
func (s DigitSet) Digits() []int {
	out := make([]int, 0, s.Count())
	for d := range 10 {
		if s.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DigitSet) String() string {
	parts := make([]string, 0, s.Count())
	for _, d := range s.Digits() {
		parts = append(parts, fmt.Sprint(d))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// DigitState is what is known about the digit a codeword displays.
//
// A state with one candidate is decided, several candidates is undecided, and
// no candidates marks a codeword whose length matches no digit at all.
type DigitState struct {
	candidates DigitSet
}

func Decided(d int) DigitState {
	return DigitState{candidates: DigitsOf(d)}
}

func Undecided(s DigitSet) DigitState {
	return DigitState{candidates: s}
}

// Invalid is the state of a codeword that cannot be any digit.
var Invalid = DigitState{}

// StateForLength classifies a codeword by its number of lit wires.
func StateForLength(n int) DigitState {
	switch n {
	case 2:
		return Decided(1)
	case 3:
		return Decided(7)
	case 4:
		return Decided(4)
	case 5:
		return Undecided(DigitsOf(2, 3, 5))
	case 6:
		return Undecided(DigitsOf(0, 6, 9))
	case 7:
		return Decided(8)
	default:
		return Invalid
	}
}

// Digit returns the decided digit, if any.
func (s DigitState) Digit() (int, bool) {
	if s.candidates.Count() != 1 {
		return 0, false
	}
	return bits.TrailingZeros16(uint16(s.candidates)), true
}

func (s DigitState) IsDecided() bool {
	return s.candidates.Count() == 1
}

func (s DigitState) IsInvalid() bool {
	return s.candidates == 0
}

// Candidates returns the digits still possible.
func (s DigitState) Candidates() DigitSet {
	return s.candidates
}

func (s DigitState) String() string {
	if d, ok := s.Digit(); ok {
		return fmt.Sprintf("Decided(%d)", d)
	}
	if s.IsInvalid() {
		return "Invalid"
	}
	return "Undecided" + s.candidates.String()
}

// Codeword is a canonical set of lit wires: sorted, without repeats.
type Codeword string

// Canonicalize sorts and deduplicates the characters of s.
func Canonicalize(s string) Codeword {
	rs := []rune(s)
	slices.Sort(rs)
	return Codeword(slices.Compact(rs))
}

// Len returns the number of lit wires.
func (c Codeword) Len() int {
	return len([]rune(c))
}

// Wires returns the codeword as a set over the wire alphabet.
func (c Codeword) Wires() (*CharSet, error) {
	set := WireSet()
	for _, r := range c {
		if err := set.Add(r); err != nil {
			return nil, fmt.Errorf("codeword %q: %w", string(c), err)
		}
	}
	return set, nil
}
