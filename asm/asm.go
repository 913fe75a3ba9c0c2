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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
)

// Error is an assembly error at a given position in the source.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the list of errors returned by Assemble, sorted by position.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser()
	prog, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// Disassemble writes a disassembly of the instruction at position pc in mem
// to the specified io.Writer and returns the position of the next instruction
// and any write error.
//
// Words that do not decode to a valid instruction are written as a .dat
// directive. If the instruction is truncated by the end of mem, missing
// operands are shown as ???.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := errw.New(w)

	word := mem[pc]
	op, modes, err := vm.Decode(word)
	pc++
	if err != nil {
		ew.WriteString(".dat ")
		ew.WriteString(strconv.FormatInt(int64(word), 10))
		return pc, ew.Err
	}
	ew.WriteString(op.String())
	for k := 0; k < op.Arity(); k++ {
		if pc >= len(mem) {
			ew.WriteString(" ???")
			break
		}
		switch modes[k] {
		case vm.Immediate:
			ew.WriteString(" #")
		case vm.Relative:
			ew.WriteString(" @")
		default:
			ew.WriteString(" ")
		}
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer, one instruction per line. The base argument
// specifies the real address of the first cell (mem[0]). It will return any
// write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := errw.New(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "%6d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.WriteString("\n")
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
