package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/intcode/tape"
)

// Machine is the execution context for a single run of an Intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Tape   *tape.Tape // Program and data memory, owned by the machine.
	Input  Queue      // Values consumed by input instructions.
	Output []int64    // Values appended by output instructions.

	Ticks int // Instructions executed.

	cursor Cursor
	halted bool
	fault  error // Fatal error that stopped the machine.
}

// NewMachine creates a machine that owns tp, with the program counter and
// relative base at zero.
func NewMachine(tp *tape.Tape) (m *Machine) {
	m = &Machine{
		Tape: tp,
	}
	m.cursor.tape = tp

	return
}

// Ip returns the program counter.
func (m *Machine) Ip() int64 {
	return m.cursor.Ip
}

// Base returns the relative base register.
func (m *Machine) Base() int64 {
	return m.cursor.Base
}

// Halted is true once the machine has executed a halt instruction.
func (m *Machine) Halted() bool {
	return m.halted
}

// Err returns the fatal error that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.fault
}

// check returns the error that prevents the machine from running.
func (m *Machine) check() error {
	if m.fault != nil {
		return errors.Join(ErrFaulted, m.fault)
	}
	if m.halted {
		return ErrHalted
	}
	return nil
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"ip", "base", "halt", "fault", "ticks", "input", "output"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%04d", m.cursor.Ip)
		case "base":
			strval = fmt.Sprintf("%04d", m.cursor.Base)
		case "halt":
			strval = fmt.Sprintf("%v", m.halted)
		case "fault":
			strval = fmt.Sprintf("%v", m.fault != nil)
		case "ticks":
			strval = fmt.Sprintf("%d", m.Ticks)
		case "input":
			strval = fmt.Sprintf("%d pending", m.Input.Len())
		case "output":
			strval = fmt.Sprintf("%d values", len(m.Output))
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Run appends inputs to the input stream and executes instructions until
// the machine halts. The output sequence is returned, and is partial if an
// error aborted the run.
func (m *Machine) Run(inputs ...int64) (output []int64, err error) {
	err = m.check()
	if err != nil {
		output = m.Output
		return
	}

	m.Input.Push(inputs...)

	for !m.halted {
		err = m.Tick()
		if err != nil {
			break
		}
	}

	output = m.Output
	return
}

// RunWithoutInput executes the program with an empty input stream.
func (m *Machine) RunWithoutInput() (output []int64, err error) {
	return m.Run()
}

// Tick fetches, decodes and executes a single instruction.
// Any error is fatal: the machine keeps it, and refuses to tick again.
func (m *Machine) Tick() (err error) {
	err = m.check()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			m.fault = err
		}
	}()

	ip := m.cursor.Ip
	code, ins, err := m.cursor.Fetch()
	if err != nil {
		if !errors.Is(err, tape.ErrOutOfBounds) {
			err = errors.Join(ErrCode(code), err)
		}
		return
	}

	if m.Verbose {
		log.Printf("%04d: %v", ip, ins)
	}

	err = m.execute(&m.cursor, ins)
	if err != nil {
		err = errors.Join(ErrCode(code), err)
		return
	}

	m.Ticks++

	if m.halted && m.Verbose {
		log.Printf("cpu: halt after %v ticks", m.Ticks)
	}

	return
}

// execute consumes the operands of a decoded instruction through cur and
// applies its effect.
func (m *Machine) execute(cur *Cursor, ins Instruction) (err error) {
	switch ins.Opcode {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, dst int64
		if a, err = cur.Value(); err != nil {
			return
		}
		if b, err = cur.Value(); err != nil {
			return
		}
		if dst, err = cur.Target(); err != nil {
			return
		}
		err = m.Tape.Write(dst, doAlu(ins.Opcode, a, b))
	case OP_IN:
		var dst int64
		if dst, err = cur.Target(); err != nil {
			return
		}
		value, ok := m.Input.Pop()
		if !ok {
			err = ErrInputExhausted
			return
		}
		err = m.Tape.Write(dst, value)
	case OP_OUT:
		var value int64
		if value, err = cur.Value(); err != nil {
			return
		}
		m.Output = append(m.Output, value)
	case OP_JT, OP_JF:
		var cond, target int64
		if cond, err = cur.Value(); err != nil {
			return
		}
		if target, err = cur.Value(); err != nil {
			return
		}
		if (cond != 0) == (ins.Opcode == OP_JT) {
			cur.Ip = target
		}
	case OP_ARB:
		var value int64
		if value, err = cur.Value(); err != nil {
			return
		}
		cur.Base += value
	case OP_HALT:
		m.halted = true
	default:
		err = ErrOpcodeUnknown
	}

	return
}

// doAlu computes the value written by an arithmetic or comparison opcode.
func doAlu(op Opcode, a, b int64) (output int64) {
	switch op {
	case OP_ADD:
		output = a + b
	case OP_MUL:
		output = a * b
	case OP_LT:
		if a < b {
			output = 1
		}
	case OP_EQ:
		if a == b {
			output = 1
		}
	}

	return
}
