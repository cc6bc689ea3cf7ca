package verify

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const classic = "acedgfb cdfbe gcdfa fbcad dab cefabd cdfgeb eafb cagedb ab"

func TestWiring_Classic(t *testing.T) {
	res, err := Wiring(strings.Fields(classic))
	if err != nil {
		t.Fatalf("Wiring: %v", err)
	}
	if !res.Unique {
		t.Error("classic wiring reported as not unique")
	}

	want := map[rune]rune{
		'd': 'A',
		'e': 'B',
		'a': 'C',
		'f': 'D',
		'g': 'E',
		'b': 'F',
		'c': 'G',
	}
	if diff := cmp.Diff(want, res.Wiring); diff != "" {
		t.Errorf("Wiring mismatch (-want +got):\n%s", diff)
	}
}

func TestWiring_Identity(t *testing.T) {
	codes := []string{"abcefg", "cf", "acdeg", "acdfg", "bcdf", "abdfg", "abdefg", "acf", "abcdefg", "abcdfg"}
	res, err := Wiring(codes)
	if err != nil {
		t.Fatalf("Wiring: %v", err)
	}
	if !res.Unique {
		t.Error("identity wiring reported as not unique")
	}
	for w, s := range res.Wiring {
		if s != w-'a'+'A' {
			t.Errorf("wire %c -> %c, want %c", w, s, w-'a'+'A')
		}
	}
}

func TestWiring_Ambiguous(t *testing.T) {
	// 1, 7 and 4 replaced by copies of 8: many wirings fit.
	codes := strings.Fields("acedgfb cdfbe gcdfa fbcad acedgfb cefabd cdfgeb acedgfb cagedb acedgfb")
	res, err := Wiring(codes)
	if err != nil {
		t.Fatalf("Wiring: %v", err)
	}
	if res.Unique {
		t.Error("wiring reported as unique with 1, 4 and 7 missing")
	}
	if len(res.Wiring) != 7 {
		t.Errorf("got %d wires assigned, want 7", len(res.Wiring))
	}
}

func TestWiring_Errors(t *testing.T) {
	t.Run("length one", func(t *testing.T) {
		if _, err := Wiring([]string{"a", "ab"}); err == nil {
			t.Error("Wiring with a one-wire codeword succeeded")
		}
	})

	t.Run("contradiction", func(t *testing.T) {
		// Two different two-wire codewords cannot both be 1.
		_, err := Wiring([]string{"ab", "cd"})
		if !errors.Is(err, ErrUnsatisfiable) {
			t.Errorf("Wiring = %v, want ErrUnsatisfiable", err)
		}
	})
}
