package primitives

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// identityCode returns the codeword that displays d when wire 'a' drives segment 'A', and so on.
func identityCode(t testing.TB, d int) Codeword {
	t.Helper()
	p, err := DigitPattern(d)
	if err != nil {
		t.Fatal(err)
	}
	return Codeword(strings.ToLower(p))
}

func TestNewSegmentMap(t *testing.T) {
	m := NewSegmentMap()
	for i, n := range m.Counts() {
		if n != NumSegments {
			t.Errorf("wire %c has %d candidates, want %d", WireMin+rune(i), n, NumSegments)
		}
	}
	if m.IsSolved() {
		t.Error("fresh map reports solved")
	}
	if _, err := m.Assignment(); err == nil {
		t.Error("Assignment() on fresh map succeeded, want error")
	}
}

func TestSegmentMap_Eliminate(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		once := NewSegmentMap()
		twice := NewSegmentMap()

		if err := once.Eliminate('c', 'A'); err != nil {
			t.Fatal(err)
		}
		for range 2 {
			if err := twice.Eliminate('c', 'A'); err != nil {
				t.Fatal(err)
			}
		}

		if once.String() != twice.String() {
			t.Errorf("once = %s, twice = %s", once, twice)
		}
		c, _ := twice.Candidates('c')
		if c.String() != "BCDEFG" {
			t.Errorf("Candidates('c') = %s, want BCDEFG", c)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		m := NewSegmentMap()
		if err := m.Eliminate('h', 'A'); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Eliminate('h') = %v, want ErrOutOfRange", err)
		}
		if err := m.Eliminate('a', 'a'); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Eliminate('a','a') = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("candidates are copies", func(t *testing.T) {
		m := NewSegmentMap()
		c, _ := m.Candidates('a')
		c.Remove('A')
		if m.Counts()[0] != NumSegments {
			t.Error("mutating Candidates() result changed the map")
		}
	})
}

func TestSegmentMap_UpdateFromAssignment(t *testing.T) {
	m := NewSegmentMap()
	for _, d := range []int{1, 7, 4} {
		if err := m.UpdateFromAssignment(identityCode(t, d), d); err != nil {
			t.Fatalf("UpdateFromAssignment(%d): %v", d, err)
		}
	}

	want := "a:A b:BD c:CF d:BD e:EG f:CF g:EG"
	if got := m.String(); got != want {
		t.Errorf("after 1, 7, 4: %s, want %s", got, want)
	}

	if err := m.UpdateFromAssignment("ab", 10); err == nil {
		t.Error("UpdateFromAssignment with digit 10 succeeded, want error")
	}
	if err := m.UpdateFromAssignment("az", 1); err == nil {
		t.Error("UpdateFromAssignment with wire 'z' succeeded, want error")
	}
}

func TestSegmentMap_MonotonicToBijection(t *testing.T) {
	m := NewSegmentMap()
	prev := m.Counts()

	for _, d := range []int{1, 7, 4, 8, 2, 3, 5, 0, 6, 9} {
		if err := m.UpdateFromAssignment(identityCode(t, d), d); err != nil {
			t.Fatalf("UpdateFromAssignment(%d): %v", d, err)
		}
		cur := m.Counts()
		for i := range cur {
			if cur[i] > prev[i] {
				t.Fatalf("after digit %d wire %c grew from %d to %d", d, WireMin+rune(i), prev[i], cur[i])
			}
			if cur[i] == 0 {
				t.Fatalf("after digit %d wire %c has no candidates", d, WireMin+rune(i))
			}
		}
		prev = cur
	}

	if !m.IsSolved() {
		t.Fatalf("map not solved: %s", m)
	}
	got, err := m.Assignment()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([NumSegments]rune{'A', 'B', 'C', 'D', 'E', 'F', 'G'}, got); diff != "" {
		t.Errorf("Assignment() mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentMap_Expand(t *testing.T) {
	narrowed := func() *SegmentMap {
		m := NewSegmentMap()
		for _, d := range []int{1, 7, 4} {
			if err := m.UpdateFromAssignment(identityCode(t, d), d); err != nil {
				t.Fatal(err)
			}
		}
		return m
	}

	tests := []struct {
		name  string
		m     *SegmentMap
		code  Codeword
		want  map[string]bool
		count int
	}{
		{
			name:  "unconstrained pair",
			m:     NewSegmentMap(),
			code:  "ab",
			count: 21,
		},
		{
			name:  "all wires unconstrained",
			m:     NewSegmentMap(),
			code:  "abcdefg",
			want:  map[string]bool{"ABCDEFG": true},
			count: 1,
		},
		{
			name:  "one after narrowing",
			m:     narrowed(),
			code:  "cf",
			want:  map[string]bool{"CF": true},
			count: 1,
		},
		{
			name: "five wires after narrowing",
			m:    narrowed(),
			code: "acdeg",
			want: map[string]bool{
				"ACDEG": true,
				"ABCEG": true,
				"ADEFG": true,
				"ABEFG": true,
			},
			count: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.Expand(tt.code)
			if err != nil {
				t.Fatalf("Expand(%q): %v", tt.code, err)
			}
			if len(got) != tt.count {
				t.Errorf("Expand(%q) returned %d patterns, want %d", tt.code, len(got), tt.count)
			}
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tt.code, diff)
				}
			}
			for p := range got {
				if len(p) != tt.code.Len() {
					t.Errorf("Expand(%q) returned %q with length %d", tt.code, p, len(p))
				}
			}
		})
	}

	t.Run("out of range wire", func(t *testing.T) {
		if _, err := NewSegmentMap().Expand("ax"); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Expand(\"ax\") = %v, want ErrOutOfRange", err)
		}
	})
}

func TestSegmentMap_IsSolvedNeedsBijection(t *testing.T) {
	m := NewSegmentMap()
	// Every wire narrowed to 'A': one candidate each, but not a bijection.
	for w := WireMin; w <= WireMax; w++ {
		for s := SegmentMin + 1; s <= SegmentMax; s++ {
			if err := m.Eliminate(w, s); err != nil {
				t.Fatal(err)
			}
		}
	}
	if m.IsSolved() {
		t.Error("IsSolved() = true with every wire on segment A")
	}
	if _, err := m.Assignment(); err == nil {
		t.Error("Assignment() succeeded on a non-bijective map")
	}
}
