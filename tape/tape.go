// Package tape implements the flat, zero-extended integer memory shared by
// Intcode program text and data.
package tape

import (
	"iter"
	"strconv"
	"strings"
)

const (
	TAPE_CAPACITY = 10_000 // Minimum number of cells in a loaded tape.
)

// Tape is a fixed capacity array of signed cells.
type Tape struct {
	cells  []int64
	length int // Number of cells supplied by the program text.
}

// Load parses comma-separated integers into a tape of
// max(TAPE_CAPACITY, program length) cells.
func Load(text string) (tp *Tape, err error) {
	program, err := Parse(text)
	if err != nil {
		return
	}

	return New(program, max(TAPE_CAPACITY, len(program)))
}

// LoadCapacity parses comma-separated integers into a tape of exactly
// capacity cells. Cells past the program are zero. Fails with ErrCapacity
// if the program does not fit.
func LoadCapacity(text string, capacity int) (tp *Tape, err error) {
	program, err := Parse(text)
	if err != nil {
		return
	}

	return New(program, capacity)
}

// Parse converts program text into its cell values.
func Parse(text string) (program []int64, err error) {
	words := strings.Split(strings.TrimSpace(text), ",")

	program = make([]int64, 0, len(words))
	for n, word := range words {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			program = nil
			err = &ErrToken{Index: n, Token: word, Err: err}
			return
		}
		program = append(program, value)
	}

	return
}

// New creates a tape holding a copy of program, padded with zeros to
// capacity cells.
func New(program []int64, capacity int) (tp *Tape, err error) {
	if capacity < len(program) {
		err = ErrCapacity
		return
	}

	tp = &Tape{
		cells:  make([]int64, capacity),
		length: len(program),
	}
	copy(tp.cells, program)

	return
}

// Len is the number of cells supplied by the program text.
func (tp *Tape) Len() int {
	return tp.length
}

// Capacity is the number of addressable cells.
func (tp *Tape) Capacity() int {
	return len(tp.cells)
}

// Read returns the cell at address.
func (tp *Tape) Read(address int64) (value int64, err error) {
	if address < 0 || address >= int64(len(tp.cells)) {
		err = ErrAddress(address)
		return
	}

	value = tp.cells[address]
	return
}

// Write overwrites the cell at address.
func (tp *Tape) Write(address int64, value int64) (err error) {
	if address < 0 || address >= int64(len(tp.cells)) {
		err = ErrAddress(address)
		return
	}

	tp.cells[address] = value
	return
}

// Clone returns an independent copy of the tape.
func (tp *Tape) Clone() *Tape {
	cells := make([]int64, len(tp.cells))
	copy(cells, tp.cells)

	return &Tape{
		cells:  cells,
		length: tp.length,
	}
}

// Program returns a copy of the first Len() cells.
func (tp *Tape) Program() (cells []int64) {
	cells = make([]int64, tp.length)
	copy(cells, tp.cells)
	return
}

// Cells iterates over the first Len() cells, by address.
func (tp *Tape) Cells() iter.Seq2[int64, int64] {
	return func(yield func(address int64, value int64) bool) {
		for n, value := range tp.cells[:tp.length] {
			if !yield(int64(n), value) {
				return
			}
		}
	}
}

// String returns the program cells in program text form.
func (tp *Tape) String() string {
	words := make([]string, 0, tp.length)
	for _, value := range tp.Cells() {
		words = append(words, strconv.FormatInt(value, 10))
	}

	return strings.Join(words, ",")
}
