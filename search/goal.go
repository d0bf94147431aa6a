package search

import (
	"errors"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Goal reports if a trial is the one being searched for.
type Goal func(trial Trial) (ok bool, err error)

// Result returns a goal matching trials whose result cell is value.
func Result(value int64) Goal {
	return func(trial Trial) (bool, error) {
		return trial.Result == value, nil
	}
}

var goalNames = []string{"noun", "verb", "result", "output"}

// CompileGoal compiles a Starlark expression over 'noun', 'verb', 'result'
// and 'output' into a goal, ie 'result == 19690720'.
func CompileGoal(expr string) (goal Goal, err error) {
	isPredeclared := func(name string) bool {
		return slices.Contains(goalNames, name)
	}

	opts := syntax.FileOptions{}
	src := "rc=" + expr + "\n"
	_, prog, err := starlark.SourceProgramOptions(&opts, "goal", src, isPredeclared)
	if err != nil {
		err = errors.Join(ErrGoal, err)
		return
	}

	goal = func(trial Trial) (ok bool, err error) {
		output := make([]starlark.Value, len(trial.Output))
		for n, value := range trial.Output {
			output[n] = starlark.MakeInt64(value)
		}

		pred := starlark.StringDict{
			"noun":   starlark.MakeInt64(trial.Noun),
			"verb":   starlark.MakeInt64(trial.Verb),
			"result": starlark.MakeInt64(trial.Result),
			"output": starlark.NewList(output),
		}

		thread := starlark.Thread{Name: "goal"}
		dict, err := prog.Init(&thread, pred)
		if err != nil {
			err = errors.Join(ErrGoal, err)
			return
		}

		rc, found := dict["rc"]
		if !found {
			err = ErrGoal
			return
		}

		ok = bool(rc.Truth())
		return
	}

	return
}
