package segdecode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"crosswarped.com/segdecode/internal/verify"
)

// ErrAmbiguousWiring means the independent SAT check could not confirm the
// decoder's wiring as the only one.
var ErrAmbiguousWiring = errors.New("wiring not confirmed")

// Line is one line of puzzle input. Number is 1-based and only used for reporting.
type Line struct {
	Number int
	Text   string
}

// LinesOf numbers raw lines from 1.
func LinesOf(texts []string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Number: i + 1, Text: t}
	}
	return out
}

type Options struct {
	Policy Policy
	// Workers solves lines concurrently when greater than one.
	Workers int
	// Verify cross-checks every solved wiring with a SAT solver.
	Verify bool
	Logger *slog.Logger
}

// LineResult is the outcome for one line. A failed line contributes nothing
// to the total.
type LineResult struct {
	Line    Line
	Value   int
	Skipped []string
	Wiring  string
	Err     error
}

type Report struct {
	Results []LineResult
	// Total sums the values of every line that did not fail.
	Total int
	// UniqueCount is the number of outputs identifiable by length alone.
	UniqueCount int
	Solved      int
	Failed      int
}

// SolveAll solves every line independently. Results keep the order of lines.
// If ctx is cancelled, lines not yet started fail with the context's error.
func SolveAll(ctx context.Context, lines []Line, opts Options) Report {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]LineResult, len(lines))
	uniques := make([]int, len(lines))
	solve := func(i int) {
		if err := ctx.Err(); err != nil {
			results[i] = LineResult{Line: lines[i], Err: err}
			return
		}
		results[i], uniques[i] = solveLine(lines[i], opts)
	}

	workers := max(opts.Workers, 1)
	if workers == 1 {
		for i := range lines {
			solve(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					solve(i)
				}
			}()
		}
		for i := range lines {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	rep := Report{Results: results}
	for i, r := range results {
		rep.UniqueCount += uniques[i]
		if r.Err == nil && rep.Total > math.MaxInt-r.Value {
			r = LineResult{Line: r.Line, Err: fmt.Errorf("%w: total exceeds %d", ErrValueOverflow, math.MaxInt)}
			results[i] = r
		}
		if r.Err != nil {
			rep.Failed++
			logger.Warn("line failed", "line", r.Line.Number, "err", r.Err)
			continue
		}
		rep.Solved++
		rep.Total += r.Value
		logger.Debug("line solved", "line", r.Line.Number, "value", r.Value, "wiring", r.Wiring, "skipped", len(r.Skipped))
	}
	return rep
}

func solveLine(line Line, opts Options) (LineResult, int) {
	res := LineResult{Line: line}

	p, err := ParsePuzzle(line.Text)
	if err != nil {
		res.Err = err
		return res, 0
	}
	unique := p.CountUnique()

	out, err := p.Solve(opts.Policy)
	if err != nil {
		res.Err = err
		return res, unique
	}
	res.Value = out.Value
	res.Skipped = out.Skipped

	if w, err := out.Decoder.Wiring(); err == nil {
		res.Wiring = w.Repr()
		if opts.Verify {
			if err := crossCheck(p, w); err != nil {
				return LineResult{Line: line, Err: err}, unique
			}
		}
	} else if opts.Verify {
		return LineResult{Line: line, Err: fmt.Errorf("%w: %v", ErrAmbiguousWiring, err)}, unique
	}
	return res, unique
}

func crossCheck(p Puzzle, w Wiring) error {
	v, err := verify.Wiring(p.Inputs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAmbiguousWiring, err)
	}
	if !v.Unique {
		return fmt.Errorf("%w: more than one wiring fits the inputs", ErrAmbiguousWiring)
	}
	sat, err := NewWiring(v.Wiring)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAmbiguousWiring, err)
	}
	if sat != w {
		return fmt.Errorf("%w: decoder found %s, solver found %s", ErrAmbiguousWiring, w.Repr(), sat.Repr())
	}
	return nil
}
