package cpu

import (
	"github.com/ezrec/intcode/tape"
)

// Cursor walks the tape one cell at a time during the fetch, decode and
// execute cycle. Operands are consumed strictly left to right.
type Cursor struct {
	Ip   int64 // Address of the next cell to consume.
	Base int64 // Relative base register.

	tape  *tape.Tape
	ins   Instruction
	param int
}

// Fetch reads and decodes the instruction word at Ip, and advances past it.
func (cur *Cursor) Fetch() (code Code, ins Instruction, err error) {
	word, err := cur.tape.Read(cur.Ip)
	if err != nil {
		return
	}
	cur.Ip++

	code = Code(word)
	ins, err = code.Decode()
	if err != nil {
		return
	}

	cur.ins = ins
	cur.param = 0

	return
}

// operand consumes the next operand cell, returning its raw value and mode.
func (cur *Cursor) operand() (raw int64, mode Mode, err error) {
	raw, err = cur.tape.Read(cur.Ip)
	if err != nil {
		return
	}
	cur.Ip++

	mode = cur.ins.Modes[cur.param]
	cur.param++

	return
}

// Value consumes the next operand and returns the value it refers to.
func (cur *Cursor) Value() (value int64, err error) {
	raw, mode, err := cur.operand()
	if err != nil {
		return
	}

	switch mode {
	case MODE_IMMEDIATE:
		value = raw
	case MODE_POSITION:
		value, err = cur.tape.Read(raw)
	case MODE_RELATIVE:
		value, err = cur.tape.Read(cur.Base + raw)
	default:
		err = ErrModeUnknown
	}

	return
}

// Target consumes the next operand and resolves it as a write address.
func (cur *Cursor) Target() (address int64, err error) {
	raw, mode, err := cur.operand()
	if err != nil {
		return
	}

	switch mode {
	case MODE_POSITION:
		address = raw
	case MODE_RELATIVE:
		address = cur.Base + raw
	case MODE_IMMEDIATE:
		err = ErrModeWrite
	default:
		err = ErrModeUnknown
	}

	return
}
