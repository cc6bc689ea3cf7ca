package segdecode

import (
	"context"
	"iter"
	"math/rand/v2"
	"strings"

	"crosswarped.com/segdecode/pkg/primitives"
)

// GeneratedPuzzle is a puzzle line together with the answer it was built from.
type GeneratedPuzzle struct {
	Line   string
	Wiring Wiring
	Value  int
}

// Generator produces random, solvable puzzle lines.
type Generator struct {
	NumOutputs int

	rand *rand.Rand
}

func CreateGenerator(numOutputs int, rand *rand.Rand) *Generator {
	if numOutputs <= 0 {
		numOutputs = 4
	}
	return &Generator{
		NumOutputs: numOutputs,
		rand:       rand,
	}
}

func (g *Generator) shuffled(s []rune) string {
	g.rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return string(s)
}

// Next builds one puzzle under a fresh random wiring.
func (g *Generator) Next() GeneratedPuzzle {
	// wireFor[i] is the wire driving segment 'A'+i.
	wireFor := []rune(g.shuffled([]rune("abcdefg")))

	assignment := make(map[rune]rune, len(wireFor))
	for i, wire := range wireFor {
		assignment[wire] = primitives.SegmentMin + rune(i)
	}
	// A shuffled permutation of distinct wires always forms a valid wiring.
	wiring, _ := NewWiring(assignment)

	codes := make([]string, 10)
	for d := range codes {
		pattern, _ := primitives.DigitPattern(d)
		wires := make([]rune, 0, len(pattern))
		for _, seg := range pattern {
			wires = append(wires, wireFor[seg-primitives.SegmentMin])
		}
		codes[d] = g.shuffled(wires)
	}

	inputs := make([]string, len(codes))
	copy(inputs, codes)
	g.rand.Shuffle(len(inputs), func(i, j int) {
		inputs[i], inputs[j] = inputs[j], inputs[i]
	})

	value := 0
	outputs := make([]string, g.NumOutputs)
	for i := range outputs {
		d := g.rand.IntN(10)
		value = value*10 + d
		// Outputs are rescrambled so they rarely match their input spelling.
		outputs[i] = g.shuffled([]rune(codes[d]))
	}

	return GeneratedPuzzle{
		Line:   strings.Join(inputs, " ") + " | " + strings.Join(outputs, " "),
		Wiring: wiring,
		Value:  value,
	}
}

// Puzzles yields puzzles until the consumer stops or ctx is done.
func (g *Generator) Puzzles(ctx context.Context) iter.Seq[GeneratedPuzzle] {
	return func(yield func(GeneratedPuzzle) bool) {
		for ctx.Err() == nil {
			if !yield(g.Next()) {
				return
			}
		}
	}
}
