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
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// lineEditor reads input lines from the terminal, with line editing and
// history.
type lineEditor struct {
	rl  *readline.Instance
	err error
}

func newLineEditor(prompt string, stdin *os.File, stdout, stderr io.Writer) (*lineEditor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		return nil, errors.Wrap(err, "readline")
	}
	return &lineEditor{rl: rl}, nil
}

// next returns the next line, or nil on end of input or interrupt. Other
// errors are kept in e.err.
func (e *lineEditor) next() *string {
	line, err := e.rl.Readline()
	if err != nil {
		if err != io.EOF && err != readline.ErrInterrupt {
			e.err = errors.Wrap(err, "readline")
		}
		return nil
	}
	return &line
}

func (e *lineEditor) Close() error {
	return e.rl.Close()
}

// lineInput returns a Reader pulling input lines from next. In ASCII mode,
// each line is fed to the program one character at a time, followed by a new
// line. Otherwise each non blank line must hold a single integer.
func lineInput(next func() *string, isASCII bool) vm.Reader {
	if !isASCII {
		return vm.StringReader(func() *string {
			for s := next(); s != nil; s = next() {
				if strings.TrimSpace(*s) != "" {
					return s
				}
			}
			return nil
		})
	}
	q := vm.NewQueue()
	return vm.ReaderFunc(func() (vm.Cell, bool, error) {
		if q.Len() == 0 {
			if s := next(); s != nil {
				q.Push(ascii.Encode(*s)...)
			}
		}
		return q.ReadCell()
	})
}
