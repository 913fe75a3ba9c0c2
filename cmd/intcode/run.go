// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"os"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	inputKey  = "input"
	asciiKey  = "ascii"
	dumpKey   = "dump"
	noEditKey = "no-edit"
)

var errNoInput = errors.New("program waiting for input")

// flushReader flushes pending output before reading, so that interactive
// programs show their prompt.
type flushReader struct {
	r vm.Reader
	w *bufio.Writer
}

func (f flushReader) ReadCell() (vm.Cell, bool, error) {
	if err := f.w.Flush(); err != nil {
		return 0, false, errors.Wrap(err, "flush output")
	}
	return f.r.ReadCell()
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program",
		Long: `Run loads the program in FILE and runs it until it halts.

Input values are taken from --input if set, or read from stdin otherwise, one
integer per line, with line editing if stdin is a terminal. Output values
are printed one per line.

In ASCII mode, stdin is read as text, one character per value, and --input is
a single line of text. Output values in the ASCII range are printed as
characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0])
		},
	}
	f := cmd.Flags()
	f.String(inputKey, "", "comma separated input `values`")
	f.Bool(asciiKey, false, "ASCII mode")
	f.Bool(dumpKey, false, "dump the instance state and memory upon exit")
	f.Bool(noEditKey, false, "disable line editing when stdin is a terminal")
	traceFlag(f, "log every executed instruction")
	return cmd
}

func (a *app) run(ctx context.Context, fileName string) (err error) {
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(a.stdout)
	defer func() {
		if e := out.Flush(); err == nil {
			err = errors.Wrap(e, "flush output")
		}
	}()

	isASCII := a.v.GetBool(asciiKey)
	var (
		in vm.Reader
		w  vm.Writer
		ed *lineEditor
	)
	switch s := a.v.GetString(inputKey); {
	case s != "" && isASCII:
		in = ascii.Input(s)
	case s != "":
		values, err := vm.ParseString(s)
		if err != nil {
			return errors.Wrap(err, "input")
		}
		in = vm.NewQueue(values...)
	case isTerminal(a.stdin) && !a.v.GetBool(noEditKey):
		prompt := "? "
		if isASCII {
			prompt = ""
		}
		if ed, err = newLineEditor(prompt, a.stdin.(*os.File), a.stdout, a.stderr); err != nil {
			return err
		}
		defer ed.Close()
		in = flushReader{lineInput(ed.next, isASCII), out}
	case isASCII:
		in = flushReader{ascii.NewReader(a.stdin), out}
	default:
		in = flushReader{vm.NewLineReader(a.stdin), out}
	}
	if isASCII {
		w = ascii.NewWriter(out)
	} else {
		w = vm.NewTextWriter(out)
	}

	i, err := vm.New(prog,
		vm.Input(in),
		vm.Output(w),
		vm.Logger(a.log.New("program", fileName)),
		vm.Trace(a.v.GetBool(traceKey)))
	if err != nil {
		return err
	}

	st, err := i.RunContext(ctx)
	if a.v.GetBool(dumpKey) {
		if e := dumpVM(i, out); err == nil {
			err = e
		}
	}
	if err != nil {
		return err
	}
	if ed != nil && ed.err != nil {
		return ed.err
	}
	if st != vm.Halted {
		return errors.Wrapf(errNoInput, "@pc=%d", i.PC)
	}
	a.log.Info("program halted", "instructions", i.InstructionCount(), "memory", i.Mem.Len())
	return nil
}
