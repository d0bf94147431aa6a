package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/intcode/tape"
)

// Listing is one disassembled entry of a program.
type Listing struct {
	Ip          int64       // Address of the first word.
	Words       []int64     // Instruction word and operands, or a single data word.
	Instruction Instruction // Decoded instruction, if not Data.
	Data        bool        // Set if the word does not decode as an instruction.
}

// String returns the listing line, ie '0004: add.imm.pos.pos 100 -1 4'.
func (lst Listing) String() string {
	var text string
	if lst.Data {
		text = fmt.Sprintf("%04d: .data", lst.Ip)
	} else {
		text = fmt.Sprintf("%04d: %v", lst.Ip, lst.Instruction)
	}

	words := lst.Words
	if !lst.Data {
		words = words[1:]
	}
	for _, word := range words {
		text += fmt.Sprintf(" %d", word)
	}

	return strings.TrimSpace(text)
}

// Disassemble iterates over the program cells of tp. Words that do not
// decode, or whose operands run past the program, are listed as data.
func Disassemble(tp *tape.Tape) iter.Seq[Listing] {
	return func(yield func(lst Listing) bool) {
		cells := tp.Program()
		for ip := 0; ip < len(cells); {
			lst := Listing{Ip: int64(ip)}
			ins, err := Code(cells[ip]).Decode()
			count := 1 + ins.Opcode.Params()
			if err != nil || ip+count > len(cells) {
				lst.Data = true
				count = 1
			} else {
				lst.Instruction = ins
			}
			lst.Words = cells[ip : ip+count]
			if !yield(lst) {
				return
			}
			ip += count
		}
	}
}

// Find returns the listing entry that covers address ip, if any.
func Find(tp *tape.Tape, ip int64) (lst Listing, ok bool) {
	for lst = range Disassemble(tp) {
		if ip >= lst.Ip && ip < lst.Ip+int64(len(lst.Words)) {
			ok = true
			return
		}
	}

	lst = Listing{}
	return
}
