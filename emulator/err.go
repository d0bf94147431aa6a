package emulator

import (
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  int64
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %04d %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
