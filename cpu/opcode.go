package cpu

import (
	"strings"
)

// Opcode is the operation selected by the two low-order decimal digits of an
// instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_ARB  = Opcode(9)  // arb
	OP_HALT = Opcode(99) // halt
)

// Params returns the number of operands that follow the opcode.
func (op Opcode) Params() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 3
	case OP_JT, OP_JF:
		return 2
	case OP_IN, OP_OUT, OP_ARB:
		return 1
	}

	return 0
}

// Target returns the operand index written by the opcode, or -1.
func (op Opcode) Target() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 2
	case OP_IN:
		return 0
	}

	return -1
}

// Mode is an operand access mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Writable returns true if the mode can resolve a write target.
func (mode Mode) Writable() bool {
	return mode != MODE_IMMEDIATE
}

// Code is a raw instruction word, as stored on the tape.
type Code int64

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode Opcode
	Modes  [3]Mode
}

// Decode splits the instruction word into its opcode and parameter modes.
// Every digit above the opcode must be a valid mode, even when the opcode
// has fewer operands.
func (code Code) Decode() (ins Instruction, err error) {
	if code < 0 {
		err = ErrOpcodeUnknown
		return
	}

	ins.Opcode = Opcode(code % 100)
	switch ins.Opcode {
	case OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JT, OP_JF, OP_LT, OP_EQ, OP_ARB, OP_HALT:
		// pass
	default:
		err = ErrOpcodeUnknown
		return
	}

	digits := code / 100
	for n := 0; digits != 0; n++ {
		mode := Mode(digits % 10)
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE, MODE_RELATIVE:
			// pass
		default:
			err = ErrModeUnknown
			return
		}
		if n < len(ins.Modes) {
			ins.Modes[n] = mode
		}
		digits /= 10
	}

	return
}

// Code encodes the instruction back into an instruction word.
func (ins Instruction) Code() (code Code) {
	for n := len(ins.Modes) - 1; n >= 0; n-- {
		code = code*10 + Code(ins.Modes[n])
	}

	return code*100 + Code(ins.Opcode)
}

// String returns the disassembly of the instruction, ie 'add.imm.pos.rel'.
func (ins Instruction) String() string {
	words := []string{ins.Opcode.String()}
	for n := range ins.Opcode.Params() {
		words = append(words, ins.Modes[n].String())
	}

	return strings.Join(words, ".")
}
