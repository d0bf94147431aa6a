// Package search brute-forces pairs of patched parameters over an Intcode
// program, looking for the pair whose run satisfies a goal.
//
// Every trial runs on its own clone of the program tape, so trials run in
// parallel with nothing shared between them.
package search

import (
	"context"
	"log"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/tape"
)

const (
	NOUN_ADDRESS   = 1  // Default noun patch address.
	VERB_ADDRESS   = 2  // Default verb patch address.
	RESULT_ADDRESS = 0  // Default result address.
	PARAMETER_MAX  = 99 // Default upper bound of both parameters.
)

// Range is an inclusive range of parameter values.
type Range struct {
	Lo int64
	Hi int64
}

// Len is the number of values in the range, saturating at math.MaxInt64.
func (r Range) Len() (n int64) {
	if r.Hi < r.Lo {
		return
	}

	n = r.Hi - r.Lo + 1
	if n <= 0 {
		n = math.MaxInt64
	}
	return
}

// Trial is the outcome of running the program with one parameter pair.
type Trial struct {
	Noun   int64
	Verb   int64
	Result int64   // Result cell after halt.
	Output []int64 // Output sequence.
}

// Search state.
type Search struct {
	Verbose bool // If set, enables verbose logging.

	Program *tape.Tape // Pristine program, cloned for every trial.
	Inputs  []int64    // Input stream supplied to every trial.
	Goal    Goal       // Goal to satisfy.

	Noun Range
	Verb Range

	NounAddress   int64
	VerbAddress   int64
	ResultAddress int64

	Workers    int  // Parallel trials. Zero uses one per CPU.
	SkipFaults bool // If set, a failing trial is skipped instead of aborting the search.
}

// NewSearch creates a search over nouns and verbs 0 to 99, patched at
// addresses 1 and 2, with the result read from address 0.
func NewSearch(program *tape.Tape, goal Goal) (s *Search) {
	s = &Search{
		Program:       program,
		Goal:          goal,
		Noun:          Range{0, PARAMETER_MAX},
		Verb:          Range{0, PARAMETER_MAX},
		NounAddress:   NOUN_ADDRESS,
		VerbAddress:   VERB_ADDRESS,
		ResultAddress: RESULT_ADDRESS,
	}

	return
}

// Trial runs the program once with a noun and verb patched in.
func (s *Search) Trial(noun, verb int64) (trial Trial, err error) {
	trial.Noun = noun
	trial.Verb = verb

	tp := s.Program.Clone()
	if err = tp.Write(s.NounAddress, noun); err != nil {
		return
	}
	if err = tp.Write(s.VerbAddress, verb); err != nil {
		return
	}

	m := cpu.NewMachine(tp)
	trial.Output, err = m.Run(s.Inputs...)
	if err != nil {
		return
	}

	trial.Result, err = tp.Read(s.ResultAddress)
	return
}

// Run searches the noun and verb ranges in row-major order, and returns the
// earliest trial in that order which either satisfies the goal or fails.
// Trials run in parallel; the outcome is the same as a serial search,
// regardless of scheduling.
func (s *Search) Run(ctx context.Context) (match Trial, err error) {
	if s.Goal == nil {
		err = ErrGoal
		return
	}

	// Every trial needs a distinct grid index.
	rows, cols := s.Noun.Len(), s.Verb.Len()
	if rows == math.MaxInt64 || cols == math.MaxInt64 || (rows > 0 && cols > math.MaxInt64/rows) {
		err = ErrRange
		return
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)

	// Grid indices of the earliest match and the earliest failure.
	var lock sync.Mutex
	best := int64(-1)
	failed := int64(-1)
	var failure error

	// Must be called with lock held.
	settled := func(index int64) bool {
		return (best >= 0 && index > best) || (failed >= 0 && index > failed)
	}

	fail := func(index int64, err error) {
		lock.Lock()
		defer lock.Unlock()
		if failed < 0 || index < failed {
			failed = index
			failure = err
		}
	}

	width := s.Verb.Len()
	for noun, verb := range internal.IterGrid(s.Noun.Lo, s.Noun.Hi, s.Verb.Lo, s.Verb.Hi) {
		if ctx.Err() != nil {
			break
		}

		index := (noun-s.Noun.Lo)*width + (verb - s.Verb.Lo)

		// Everything after a match or a failure is later in order.
		lock.Lock()
		done := settled(index)
		lock.Unlock()
		if done {
			break
		}

		g.Go(func() error {
			lock.Lock()
			done := settled(index)
			lock.Unlock()
			if done {
				return nil
			}

			trial, err := s.Trial(noun, verb)
			if err != nil {
				if s.SkipFaults {
					if s.Verbose {
						log.Printf("search: skip %v,%v: %v", noun, verb, err)
					}
					return nil
				}
				fail(index, &ErrTrial{Noun: noun, Verb: verb, Err: err})
				return nil
			}

			ok, err := s.Goal(trial)
			if err != nil {
				fail(index, &ErrTrial{Noun: noun, Verb: verb, Err: err})
				return nil
			}
			if !ok {
				return nil
			}

			if s.Verbose {
				log.Printf("search: match %v,%v result %v", noun, verb, trial.Result)
			}

			lock.Lock()
			defer lock.Unlock()
			if best < 0 || index < best {
				best = index
				match = trial
			}
			return nil
		})
	}

	_ = g.Wait()

	if failed >= 0 && (best < 0 || failed < best) {
		match = Trial{}
		err = failure
		return
	}

	if best < 0 {
		err = ErrNoMatch
		if ctx.Err() != nil {
			err = ctx.Err()
		}
	}

	return
}
