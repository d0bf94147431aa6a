// Package cpu implements the Intcode instruction decoder and execution engine.
//
// A Machine owns a tape.Tape holding both program and data, a program
// counter and a relative base register. Each tick fetches the instruction
// word at the program counter, decodes its opcode and parameter modes, and
// consumes its operands through a Cursor before applying the effect.
//
// Input is a finite, pre-supplied Queue. Running out of input, decoding a
// bad instruction word, or touching memory outside the tape aborts the run
// with an error; there is no recovery path inside the machine.
package cpu
