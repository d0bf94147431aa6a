package tape

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrParse       = errors.New(f("parse"))
	ErrOutOfBounds = errors.New(f("out of bounds"))
	ErrCapacity    = errors.New(f("capacity smaller than program"))
)

// ErrToken is a program token that is not a base-10 signed integer.
type ErrToken struct {
	Index int    // Index of the token in the program text.
	Token string // The offending token.
	Err   error  // Underlying conversion error.
}

func (err *ErrToken) Error() string {
	return f("token %d '%v' is not a number", err.Index, err.Token)
}

func (err *ErrToken) Unwrap() error {
	return err.Err
}

func (err *ErrToken) Is(target error) bool {
	return target == ErrParse
}

// ErrAddress is an address outside of the tape.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %d out of bounds", int64(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrOutOfBounds
}
