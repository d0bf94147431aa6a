package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrHalted         = errors.New(f("machine halted"))
	ErrFaulted        = errors.New(f("machine faulted"))
	ErrInputExhausted = errors.New(f("input exhausted"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))
	ErrModeUnknown   = errors.New(f("parameter mode unknown"))
	ErrModeWrite     = errors.New(f("immediate mode write target"))
)

// ErrCode is the instruction word that failed to decode or execute.
type ErrCode Code

func (ec ErrCode) Error() string {
	word := Code(ec)
	ins, err := word.Decode()
	if err != nil {
		return f("code %v", int64(word))
	}
	return f("code %v %v", int64(word), ins.String())
}

func (ec ErrCode) Is(err error) (ok bool) {
	target, ok := err.(ErrCode)
	ok = ok && target == ec
	return
}
