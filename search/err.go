package search

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoMatch = errors.New(f("no match"))
	ErrGoal    = errors.New(f("goal invalid"))
	ErrRange   = errors.New(f("search range too large"))
)

// ErrTrial is the failure of a single trial.
type ErrTrial struct {
	Noun int64
	Verb int64
	Err  error
}

func (err *ErrTrial) Error() string {
	return f("trial %v,%v %v", err.Noun, err.Verb, err.Err)
}

func (err *ErrTrial) Unwrap() error {
	return err.Err
}
