package segdecode

import (
	"fmt"
	"strings"

	"crosswarped.com/segdecode/pkg/primitives"
)

// Wiring is the recovered bijection from scrambled wires to true segments.
//
// It represents a 'definite' solution of one puzzle line.
type Wiring struct {
	segments [primitives.NumSegments]rune
}

// NewWiring builds a Wiring from a wire to segment map, e.g. 'a' -> 'C'. Every
// wire 'a'-'g' must be present and map to a distinct segment 'A'-'G'.
func NewWiring(m map[rune]rune) (Wiring, error) {
	var w Wiring
	seen := primitives.SegmentSet()
	for wire := primitives.WireMin; wire <= primitives.WireMax; wire++ {
		seg, ok := m[wire]
		if !ok {
			return Wiring{}, fmt.Errorf("wire %c is unassigned", wire)
		}
		if seen.Contains(seg) {
			return Wiring{}, fmt.Errorf("segment %c is assigned twice", seg)
		}
		if err := seen.Add(seg); err != nil {
			return Wiring{}, err
		}
		w.segments[wire-primitives.WireMin] = seg
	}
	return w, nil
}

// Get returns the segment driven by wire, or 0 if wire is not a wire label.
func (w Wiring) Get(wire rune) rune {
	if wire < primitives.WireMin || wire > primitives.WireMax {
		return 0
	}
	return w.segments[wire-primitives.WireMin]
}

// Map returns the wiring as a wire to segment map.
func (w Wiring) Map() map[rune]rune {
	out := make(map[rune]rune, len(w.segments))
	for i, seg := range w.segments {
		out[primitives.WireMin+rune(i)] = seg
	}
	return out
}

// Translate rewrites a codeword as the canonical segment pattern it lights.
func (w Wiring) Translate(code string) (string, error) {
	set := primitives.SegmentSet()
	for _, wire := range primitives.Canonicalize(code) {
		seg := w.Get(wire)
		if seg == 0 {
			return "", fmt.Errorf("%w: wire %q", primitives.ErrOutOfRange, wire)
		}
		set.Add(seg)
	}
	return set.String(), nil
}

// Repr renders the wiring as "a:C b:F ...".
func (w Wiring) Repr() string {
	parts := make([]string, len(w.segments))
	for i, seg := range w.segments {
		parts[i] = fmt.Sprintf("%c:%c", primitives.WireMin+rune(i), seg)
	}
	return strings.Join(parts, " ")
}

func (w Wiring) DebugString() string {
	return fmt.Sprintf("Wiring{segments: %q}", string(w.segments[:]))
}
