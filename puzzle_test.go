package segdecode

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const classicLine = classicInputs + " | " + classicOutputs

func TestParsePuzzle(t *testing.T) {
	p, err := ParsePuzzle(classicLine)
	if err != nil {
		t.Fatalf("ParsePuzzle: %v", err)
	}
	if len(p.Inputs) != NumInputs {
		t.Errorf("got %d inputs, want %d", len(p.Inputs), NumInputs)
	}
	if diff := cmp.Diff([]string{"cdfeb", "fcadb", "cdfeb", "cdfbac"}, p.Outputs); diff != "" {
		t.Errorf("Outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePuzzle_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing separator", classicInputs + " " + classicOutputs},
		{"two separators", classicLine + " | ab"},
		{"nine inputs", "cdfbe gcdfa fbcad dab cefabd cdfgeb eafb cagedb ab | ab"},
		{"no outputs", classicInputs + " |   "},
		{"bad input character", "acedgfb cdfbe gcdfa fbcad dab cefabd cdfgeb eafb cagedb aB | ab"},
		{"bad output character", classicInputs + " | cdfeb x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePuzzle(tt.line); !errors.Is(err, ErrMalformedLine) {
				t.Errorf("ParsePuzzle() error = %v, want ErrMalformedLine", err)
			}
		})
	}
}

func TestPuzzle_Solve(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		policy      Policy
		wantValue   int
		wantSkipped []string
		wantErr     error
	}{
		{
			name:      "classic",
			line:      classicLine,
			wantValue: 5353,
		},
		{
			name:      "leading zero",
			line:      classicInputs + " | cagedb ab",
			wantValue: 1,
		},
		{
			name:    "unknown output discards line",
			line:    classicInputs + " | cdfeb abc fcadb",
			policy:  PolicyDiscardLine,
			wantErr: ErrUnrecognizedOutput,
		},
		{
			name:        "unknown output skipped",
			line:        classicInputs + " | cdfeb abc fcadb",
			policy:      PolicySkipDigit,
			wantValue:   53,
			wantSkipped: []string{"abc"},
		},
		{
			name:    "too many outputs for an int",
			line:    classicInputs + " |" + strings.Repeat(" dab", 25),
			wantErr: ErrValueOverflow,
		},
		{
			name:    "malformed codeword",
			line:    "a cdfbe gcdfa fbcad dab cefabd cdfgeb eafb cagedb ab | ab",
			policy:  PolicySkipDigit,
			wantErr: ErrMalformedCodeword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePuzzle(tt.line)
			if err != nil {
				t.Fatalf("ParsePuzzle: %v", err)
			}
			out, err := p.Solve(tt.policy)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Solve() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if out.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", out.Value, tt.wantValue)
			}
			if diff := cmp.Diff(tt.wantSkipped, out.Skipped); diff != "" {
				t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPuzzle_CountUnique(t *testing.T) {
	p, err := ParsePuzzle(classicInputs + " | fdgacbe cefdb cefbgd gcbe")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.CountUnique(); got != 2 {
		t.Errorf("CountUnique() = %d, want 2", got)
	}
}

func TestPuzzle_CountUniqueRepeatedWires(t *testing.T) {
	p, err := ParsePuzzle(classicInputs + " | aab bbaa cdfbac")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.CountUnique(); got != 2 {
		t.Errorf("CountUnique() = %d, want 2", got)
	}

	out, err := p.Solve(PolicyDiscardLine)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if out.Value != 113 {
		t.Errorf("Value = %d, want 113", out.Value)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyDiscardLine, false},
		{"discard-line", PolicyDiscardLine, false},
		{"Skip-Digit", PolicySkipDigit, false},
		{"skip", PolicySkipDigit, false},
		{"ignore", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
