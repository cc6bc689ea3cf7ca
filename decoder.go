package segdecode

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"crosswarped.com/segdecode/pkg/primitives"
)

var (
	// ErrMalformedCodeword means a codeword lights a number of wires no digit uses.
	ErrMalformedCodeword = errors.New("malformed codeword")

	// ErrUnsolvable means an elimination pass resolved nothing while codewords
	// were still undecided.
	ErrUnsolvable = errors.New("constraints unsolvable")

	// ErrUnrecognizedOutput means a codeword given to Decode was not among the
	// inputs, or was never decided.
	ErrUnrecognizedOutput = errors.New("unrecognized output codeword")
)

// Decoder recovers the wiring of one scrambled display from its ten codewords.
type Decoder struct {
	segments *primitives.SegmentMap
	digits   map[primitives.Codeword]primitives.DigitState
	passes   int
}

// Build constructs a Decoder from the ten input codewords of one puzzle line.
//
// Codewords with a length that settles their digit (1, 4, 7 and 8) narrow the
// wiring first. The remaining codewords are then resolved in passes: a
// codeword is decided once exactly one of its candidate digits is still
// reachable by some wiring consistent with everything known so far.
func Build(inputs []string) (*Decoder, error) {
	d := &Decoder{
		segments: primitives.NewSegmentMap(),
		digits:   make(map[primitives.Codeword]primitives.DigitState, len(inputs)),
	}

	codes := make([]primitives.Codeword, 0, len(inputs))
	for _, in := range inputs {
		codes = append(codes, primitives.Canonicalize(in))
	}
	// The shorter codes have unique solutions, so do them first.
	slices.SortStableFunc(codes, func(a, b primitives.Codeword) int {
		return cmp.Compare(a.Len(), b.Len())
	})

	for _, code := range codes {
		state := primitives.StateForLength(code.Len())
		if state.IsInvalid() {
			return nil, fmt.Errorf("%w: %q has %d wires", ErrMalformedCodeword, string(code), code.Len())
		}
		if n, ok := state.Digit(); ok {
			if err := d.segments.UpdateFromAssignment(code, n); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedCodeword, err)
			}
		}
		d.digits[code] = state
	}

	if err := d.resolve(); err != nil {
		return nil, err
	}
	// A full line with repeated codewords has fewer than ten constraints and
	// may leave the wiring open even though every codeword was decided.
	if len(inputs) == NumInputs && len(d.digits) < NumInputs && !d.segments.IsSolved() {
		return nil, fmt.Errorf("%w: %d distinct codewords leave wiring %s", ErrUnsolvable, len(d.digits), d.segments)
	}
	return d, nil
}

// resolve grinds through the undecided codewords until every one is decided.
func (d *Decoder) resolve() error {
	undecided := make([]primitives.Codeword, 0, len(d.digits))
	for code, state := range d.digits {
		if !state.IsDecided() {
			undecided = append(undecided, code)
		}
	}
	slices.SortFunc(undecided, func(a, b primitives.Codeword) int {
		return cmp.Or(cmp.Compare(a.Len(), b.Len()), cmp.Compare(a, b))
	})

	for len(undecided) > 0 {
		d.passes++

		remaining := make([]primitives.Codeword, 0, len(undecided))
		for _, code := range undecided {
			n, ok, err := d.confirm(code)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedCodeword, err)
			}
			if !ok {
				remaining = append(remaining, code)
				continue
			}

			if err := d.segments.UpdateFromAssignment(code, n); err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedCodeword, err)
			}
			d.digits[code] = primitives.Decided(n)
		}

		if len(remaining) == len(undecided) {
			return fmt.Errorf("%w: pass %d left %d codewords undecided (%s), wiring %s",
				ErrUnsolvable, d.passes, len(remaining), joinCodes(remaining), d.segments)
		}
		undecided = remaining
	}
	return nil
}

// confirm returns the single candidate digit of code that the current wiring
// can still produce, or false if zero or several remain.
func (d *Decoder) confirm(code primitives.Codeword) (int, bool, error) {
	plausible, err := d.segments.Expand(code)
	if err != nil {
		return 0, false, err
	}

	var matches []int
	for _, n := range d.digits[code].Candidates().Digits() {
		pattern, err := primitives.DigitPattern(n)
		if err != nil {
			return 0, false, err
		}
		if plausible[pattern] {
			matches = append(matches, n)
		}
	}

	if len(matches) != 1 {
		return 0, false, nil
	}
	return matches[0], true, nil
}

// Decode translates a codeword, in any order and possibly with repeated wires,
// into the digit it displays.
func (d *Decoder) Decode(code string) (int, error) {
	c := primitives.Canonicalize(code)
	state, ok := d.digits[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q was not among the inputs", ErrUnrecognizedOutput, code)
	}
	n, ok := state.Digit()
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s", ErrUnrecognizedOutput, code, state)
	}
	return n, nil
}

// Passes returns how many elimination passes Build needed after the
// length-only assignments.
func (d *Decoder) Passes() int {
	return d.passes
}

// Digits returns the decided digit of every distinct input codeword.
func (d *Decoder) Digits() map[string]int {
	out := make(map[string]int, len(d.digits))
	for code, state := range d.digits {
		if n, ok := state.Digit(); ok {
			out[string(code)] = n
		}
	}
	return out
}

// Wiring returns the recovered wire-to-segment bijection.
func (d *Decoder) Wiring() (Wiring, error) {
	a, err := d.segments.Assignment()
	if err != nil {
		return Wiring{}, err
	}
	return Wiring{segments: a}, nil
}

func joinCodes(codes []primitives.Codeword) string {
	s := make([]string, len(codes))
	for i, c := range codes {
		s[i] = string(c)
	}
	return fmt.Sprint(s)
}
