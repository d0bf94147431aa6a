// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/search"
	"github.com/ezrec/intcode/tape"
	"github.com/ezrec/intcode/translate"
)

// parseValues parses a comma separated list of integers.
func parseValues(text string) (values []int64, err error) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		var value int64
		value, err = strconv.ParseInt(strings.TrimSpace(word), 10, 64)
		if err != nil {
			return
		}
		values = append(values, value)
	}

	return
}

// parsePatches parses a comma separated list of 'address=value' pairs.
func parsePatches(text string) (patches [][2]int64, err error) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		address, value, ok := strings.Cut(word, "=")
		if !ok {
			err = fmt.Errorf("patch '%v' is not address=value", word)
			return
		}
		var pair [2]int64
		pair[0], err = strconv.ParseInt(strings.TrimSpace(address), 10, 64)
		if err != nil {
			return
		}
		pair[1], err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return
		}
		patches = append(patches, pair)
	}

	return
}

// parseRange parses an inclusive 'lo:hi' range.
func parseRange(text string) (r search.Range, err error) {
	lo, hi, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("range '%v' is not lo:hi", text)
		return
	}

	r.Lo, err = strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return
	}
	r.Hi, err = strconv.ParseInt(hi, 10, 64)
	return
}

// printMatch writes a search match as noun, verb and 100*noun+verb.
func printMatch(w io.Writer, match search.Trial) {
	fmt.Fprintf(w, "%d %d %d\n", match.Noun, match.Verb, 100*match.Noun+match.Verb)
}

// printMemory writes the listed cells of the emulator's last run.
func printMemory(w io.Writer, emu *emulator.Emulator, addresses []int64) (err error) {
	for _, address := range addresses {
		var value int64
		value, err = emu.Read(address)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "%d: %d\n", address, value)
	}

	return
}

// replayMatch re-runs the program with a search match patched in, so its
// memory can be inspected.
func replayMatch(s *search.Search, match search.Trial) (emu *emulator.Emulator, err error) {
	emu = emulator.NewEmulator(s.Program)
	if err = emu.Poke(s.NounAddress, match.Noun); err != nil {
		return
	}
	if err = emu.Poke(s.VerbAddress, match.Verb); err != nil {
		return
	}

	_, err = emu.Run(s.Inputs...)
	return
}

func main() {
	var program string
	var input string
	var patch string
	var memory string
	var listing bool
	var goal string
	var nouns string
	var verbs string
	var workers int
	var verbose bool

	flag.StringVar(&program, "p", "-", "Intcode program file")
	flag.StringVar(&input, "i", "", "Comma separated input values")
	flag.StringVar(&patch, "s", "", "Comma separated address=value patches")
	flag.StringVar(&memory, "m", "", "Comma separated addresses to print after the run")
	flag.BoolVar(&listing, "l", false, "Print a disassembly listing, do not execute")
	flag.StringVar(&goal, "goal", "", "Starlark goal expression for a noun/verb search")
	flag.StringVar(&nouns, "n", "0:99", "Noun search range")
	flag.StringVar(&verbs, "V", "0:99", "Verb search range")
	flag.IntVar(&workers, "j", 0, "Parallel search trials (0 for one per CPU)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var text []byte
	var err error
	if program == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(program)
	}
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	tp, err := tape.Load(string(text))
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	inputs, err := parseValues(input)
	if err != nil {
		log.Fatalf("-i: %v", err)
	}

	patches, err := parsePatches(patch)
	if err != nil {
		log.Fatalf("-s: %v", err)
	}

	addresses, err := parseValues(memory)
	if err != nil {
		log.Fatalf("-m: %v", err)
	}

	if listing {
		for lst := range cpu.Disassemble(tp) {
			fmt.Println(lst)
		}
		return
	}

	if len(goal) != 0 {
		goalFunc, err := search.CompileGoal(goal)
		if err != nil {
			log.Fatalf("-goal: %v", err)
		}

		for _, pair := range patches {
			err = tp.Write(pair[0], pair[1])
			if err != nil {
				log.Fatalf("-s: %v", err)
			}
		}

		s := search.NewSearch(tp, goalFunc)
		s.Verbose = verbose
		s.Inputs = inputs
		s.Workers = workers
		s.Noun, err = parseRange(nouns)
		if err != nil {
			log.Fatalf("-n: %v", err)
		}
		s.Verb, err = parseRange(verbs)
		if err != nil {
			log.Fatalf("-V: %v", err)
		}

		match, err := s.Run(context.Background())
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}

		printMatch(os.Stdout, match)

		if len(addresses) != 0 {
			emu, err := replayMatch(s, match)
			if err != nil {
				log.Fatalf("%v: %v", program, err)
			}
			err = printMemory(os.Stdout, emu, addresses)
			if err != nil {
				log.Fatalf("-m: %v", err)
			}
		}
		return
	}

	emu := emulator.NewEmulator(tp)
	emu.Verbose = verbose

	for _, pair := range patches {
		err = emu.Poke(pair[0], pair[1])
		if err != nil {
			log.Fatalf("-s: %v", err)
		}
	}

	output, err := emu.Run(inputs...)
	for _, value := range output {
		fmt.Println(value)
	}
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	err = printMemory(os.Stdout, emu, addresses)
	if err != nil {
		log.Fatalf("-m: %v", err)
	}

	if verbose {
		translate.Fprintf(os.Stderr, "%v ticks\n", emu.Ticks())
	}
}
