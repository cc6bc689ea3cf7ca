package segdecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"crosswarped.com/segdecode/pkg/primitives"
)

// NumInputs is the number of codewords on the left of every puzzle line.
const NumInputs = 10

var (
	// ErrMalformedLine means a puzzle line could not be split into codewords.
	ErrMalformedLine = errors.New("malformed puzzle line")

	// ErrValueOverflow means the decoded outputs do not fit in an int.
	ErrValueOverflow = errors.New("decoded value overflows int")
)

var validCodeword = regexp.MustCompile(`^[a-g]+$`)

// Policy decides what happens to a line when one of its outputs cannot be decoded.
type Policy int

const (
	// PolicyDiscardLine fails the whole line.
	PolicyDiscardLine Policy = iota
	// PolicySkipDigit drops the undecodable output and keeps the other digits.
	PolicySkipDigit
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "discard-line", "discard":
		return PolicyDiscardLine, nil
	case "skip-digit", "skip":
		return PolicySkipDigit, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want discard-line or skip-digit)", s)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyDiscardLine:
		return "discard-line"
	case PolicySkipDigit:
		return "skip-digit"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Puzzle is one parsed line: ten scrambled inputs and the outputs to read.
type Puzzle struct {
	Inputs  []string
	Outputs []string
}

// ParsePuzzle splits "<10 codewords> | <outputs>" and checks that every
// codeword uses only the wires 'a'-'g'. Codeword lengths are left to Build.
func ParsePuzzle(line string) (Puzzle, error) {
	ins, outs, ok := strings.Cut(line, "|")
	if !ok {
		return Puzzle{}, fmt.Errorf("%w: missing '|' separator", ErrMalformedLine)
	}
	if strings.Contains(outs, "|") {
		return Puzzle{}, fmt.Errorf("%w: more than one '|' separator", ErrMalformedLine)
	}

	p := Puzzle{
		Inputs:  strings.Fields(ins),
		Outputs: strings.Fields(outs),
	}

	if len(p.Inputs) != NumInputs {
		return Puzzle{}, fmt.Errorf("%w: %d input codewords, want %d", ErrMalformedLine, len(p.Inputs), NumInputs)
	}
	if len(p.Outputs) == 0 {
		return Puzzle{}, fmt.Errorf("%w: no output codewords", ErrMalformedLine)
	}
	for _, in := range p.Inputs {
		if !validCodeword.MatchString(in) {
			return Puzzle{}, fmt.Errorf("%w: invalid character in input %q", ErrMalformedLine, in)
		}
	}
	for _, out := range p.Outputs {
		if !validCodeword.MatchString(out) {
			return Puzzle{}, fmt.Errorf("%w: invalid character in output %q", ErrMalformedLine, out)
		}
	}
	return p, nil
}

// Outcome is the result of solving one puzzle.
type Outcome struct {
	// Value is the outputs read as one decimal number, most significant first.
	Value int
	// Skipped lists outputs dropped under PolicySkipDigit.
	Skipped []string
	// Decoder is nil if Build failed.
	Decoder *Decoder
}

// Solve decodes the puzzle's outputs into a single number.
func (p Puzzle) Solve(policy Policy) (Outcome, error) {
	dec, err := Build(p.Inputs)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Decoder: dec}
	var errs []error
	for _, code := range p.Outputs {
		n, err := dec.Decode(code)
		if err != nil {
			if policy == PolicyDiscardLine {
				errs = append(errs, err)
				continue
			}
			out.Skipped = append(out.Skipped, code)
			continue
		}
		if out.Value > (math.MaxInt-n)/10 {
			return Outcome{Decoder: dec}, fmt.Errorf("%w: %d outputs", ErrValueOverflow, len(p.Outputs))
		}
		out.Value = out.Value*10 + n
	}

	if len(errs) > 0 {
		return Outcome{Decoder: dec}, errors.Join(errs...)
	}
	return out, nil
}

// CountUnique counts the outputs whose length alone identifies 1, 4, 7 or 8.
// Repeated wires are counted once, as Decode does.
func (p Puzzle) CountUnique() int {
	count := 0
	for _, code := range p.Outputs {
		switch primitives.Canonicalize(code).Len() {
		case 2, 3, 4, 7:
			count++
		}
	}
	return count
}
